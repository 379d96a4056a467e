package metrics

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pouch-dashboard/internal/models"
)

const forecastWindowMonths = 3

var (
	hundred        = decimal.NewFromInt(100)
	packSizeTokens = []struct {
		token string
		size  int
	}{{"28", 28}, {"14", 14}, {"7", 7}, {"3", 3}}
)

// PackSize infers pouches per pack from the product name, 0 when unknown.
func PackSize(productName string) int {
	for _, p := range packSizeTokens {
		if strings.Contains(productName, p.token) {
			return p.size
		}
	}
	return 0
}

// ForecastInventory projects the next three months of demand per product from
// the units sold in the three months up to now.
//
//	baseNeed    = ceil(units × (1 + growth))
//	forecast    = ceil(units × (1 + buffer) × (1 + growth))
//	safetyStock = forecast − baseNeed
//
// units over three months equals avgMonthlyConsumption × 3. The math runs in
// decimal so 90 × 1.175 is exactly 105.75 before the ceiling.
func ForecastInventory(orders []models.NormalizedOrder, params models.ForecastParams, now time.Time) models.InventoryForecast {
	windowStart := now.AddDate(0, -forecastWindowMonths, 0)
	forecast := models.InventoryForecast{
		WindowStart: windowStart,
		WindowEnd:   now,
		Params:      params,
		Products:    []models.ProductForecast{},
	}

	units := make(map[string]int)
	for _, o := range orders {
		if o.CreatedAt == nil || o.ProductName == "" || o.Quantity <= 0 {
			continue
		}
		if o.CreatedAt.Before(windowStart) || o.CreatedAt.After(now) {
			continue
		}
		units[o.ProductName] += o.Quantity
	}

	growth := hundred.Add(decimal.NewFromFloat(params.GrowthRatePercent))
	buffer := hundred.Add(decimal.NewFromFloat(params.SafetyBufferPercent))

	for name, sold := range units {
		u := decimal.NewFromInt(int64(sold))
		baseNeed := int(u.Mul(growth).Div(hundred).Ceil().IntPart())
		total := int(u.Mul(buffer).Mul(growth).Div(hundred).Div(hundred).Ceil().IntPart())
		if baseNeed < 0 {
			baseNeed = 0
		}
		if total < baseNeed {
			total = baseNeed
		}

		pack := PackSize(name)
		onHand := params.CurrentInventoryPacks[name]
		if onHand < 0 {
			onHand = 0
		}
		pouches := total * pack

		pf := models.ProductForecast{
			ProductName:           name,
			PackSize:              pack,
			Past3MonthUnits:       sold,
			AvgMonthlyConsumption: round(float64(sold)/forecastWindowMonths, 2),
			BaseNeed:              baseNeed,
			SafetyStock:           total - baseNeed,
			ForecastUnits:         total,
			ForecastPouches:       pouches,
			CurrentInventoryPacks: onHand,
			NetOrderRequired:      max(0, pouches-onHand*pack),
		}
		forecast.Products = append(forecast.Products, pf)
		forecast.TotalForecastUnits += pf.ForecastUnits
		forecast.TotalForecastPouches += pf.ForecastPouches
		forecast.TotalNetOrder += pf.NetOrderRequired
	}

	slices.SortFunc(forecast.Products, func(a, b models.ProductForecast) int {
		if a.ForecastUnits != b.ForecastUnits {
			return b.ForecastUnits - a.ForecastUnits
		}
		return strings.Compare(a.ProductName, b.ProductName)
	})
	return forecast
}
