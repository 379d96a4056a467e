package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	amountNoise   = regexp.MustCompile(`[^0-9.\-]`)
	amountNumeric = regexp.MustCompile(`-?\d*\.?\d+`)
)

// dateLayouts covers the order platform and subscription app exports plus the
// usual spreadsheet re-saves of them.
var dateLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 3:04:05 PM",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseAmount extracts a currency amount rounded to cents. Everything except
// digits, sign and decimal point is discarded first, so "$1,234.50" reads as
// 1234.50. Anything unparseable is 0.
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return roundCents(n)
	case float32:
		return roundCents(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case decimal.Decimal:
		return n.Round(2).InexactFloat64()
	}

	cleaned := amountNoise.ReplaceAllString(stringValue(v), "")
	token := amountNumeric.FindString(cleaned)
	if token == "" {
		return 0
	}
	d, err := decimal.NewFromString(token)
	if err != nil {
		return 0
	}
	return d.Round(2).InexactFloat64()
}

func roundCents(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// ParseQuantity reads a non-negative integer count, defaulting to 0.
func ParseQuantity(v any) int {
	var q int
	switch n := v.(type) {
	case int:
		q = n
	case int64:
		q = int(n)
	case float64:
		if !math.IsNaN(n) && !math.IsInf(n, 0) {
			q = int(n)
		}
	default:
		s := strings.TrimSpace(stringValue(v))
		if i, err := strconv.Atoi(s); err == nil {
			q = i
		} else if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			q = int(f)
		}
	}
	if q < 0 {
		return 0
	}
	return q
}

// ParseDate returns nil for blank or unrecognised values.
func ParseDate(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return nil
		}
		return &t
	}
	s := strings.TrimSpace(stringValue(v))
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// Text returns the trimmed string form of a cell.
func Text(v any) string {
	return strings.TrimSpace(stringValue(v))
}
