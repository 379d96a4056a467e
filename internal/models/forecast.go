package models

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	DefaultSafetyBufferPercent = 17.5
	DefaultGrowthRatePercent   = 0.0

	MinSafetyBufferPercent = 0.0
	MaxSafetyBufferPercent = 50.0
	MinGrowthRatePercent   = -25.0
	MaxGrowthRatePercent   = 300.0
)

// ForecastParams are the user-adjustable inputs of the inventory forecast.
// CurrentInventoryPacks is keyed by canonical product name.
type ForecastParams struct {
	SafetyBufferPercent   float64        `json:"safety_buffer_percent"`
	GrowthRatePercent     float64        `json:"growth_rate_percent"`
	CurrentInventoryPacks map[string]int `json:"current_inventory_packs,omitempty"`
}

func DefaultForecastParams() ForecastParams {
	return ForecastParams{
		SafetyBufferPercent: DefaultSafetyBufferPercent,
		GrowthRatePercent:   DefaultGrowthRatePercent,
	}
}

func (p ForecastParams) Validate() error {
	if !finite(p.SafetyBufferPercent) || !finite(p.GrowthRatePercent) {
		return fmt.Errorf("forecast percentages must be finite numbers")
	}
	if p.SafetyBufferPercent < MinSafetyBufferPercent || p.SafetyBufferPercent > MaxSafetyBufferPercent {
		return fmt.Errorf("safety buffer must be between %.0f and %.0f percent, got %g",
			MinSafetyBufferPercent, MaxSafetyBufferPercent, p.SafetyBufferPercent)
	}
	if p.GrowthRatePercent < MinGrowthRatePercent || p.GrowthRatePercent > MaxGrowthRatePercent {
		return fmt.Errorf("growth rate must be between %.0f and %.0f percent, got %g",
			MinGrowthRatePercent, MaxGrowthRatePercent, p.GrowthRatePercent)
	}
	for product, packs := range p.CurrentInventoryPacks {
		if packs < 0 {
			return fmt.Errorf("current inventory for %q cannot be negative", product)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Key is a stable string form of the parameters, used for memoisation.
func (p ForecastParams) Key() string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(p.SafetyBufferPercent, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(p.GrowthRatePercent, 'f', -1, 64))
	for _, product := range slices.Sorted(maps.Keys(p.CurrentInventoryPacks)) {
		b.WriteByte('|')
		b.WriteString(product)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(p.CurrentInventoryPacks[product]))
	}
	return b.String()
}
