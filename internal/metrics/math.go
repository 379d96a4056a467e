package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

// safeDiv returns 0 instead of NaN or ±Inf.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// optionalDiv is safeDiv for figures that must read as unavailable when the
// denominator is zero.
func optionalDiv(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	r = round(r, 2)
	return &r
}

func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func percent(part, whole int) float64 {
	return round(safeDiv(float64(part)*100, float64(whole)), 1)
}

func ptr(v float64) *float64 {
	return &v
}
