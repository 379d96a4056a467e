package metrics

import (
	"slices"
	"strings"

	"pouch-dashboard/internal/models"
)

const topProductsLimit = 10

// SummarizeOrders computes GMV, AOV and unit counts overall and per platform,
// revenue per month and the best selling products. Undated orders count in
// the totals but not in the monthly series.
func SummarizeOrders(orders []models.NormalizedOrder) models.OrderSummary {
	summary := models.OrderSummary{
		ByPlatform:     make(map[models.Platform]models.PlatformTotals, len(models.Platforms)),
		MonthlyRevenue: []models.MonthlyRevenue{},
		TopProducts:    []models.ProductSales{},
	}

	monthly := make(map[string]*models.MonthlyRevenue)
	products := make(map[string]*models.ProductSales)

	for _, o := range orders {
		addOrder(&summary.PlatformTotals, o)
		pt := summary.ByPlatform[o.Platform]
		addOrder(&pt, o)
		summary.ByPlatform[o.Platform] = pt

		if month := o.Month(); month != "" {
			m, ok := monthly[month]
			if !ok {
				m = &models.MonthlyRevenue{Month: month, ByPlatform: make(map[models.Platform]float64)}
				monthly[month] = m
			}
			m.Total += o.Total
			m.ByPlatform[o.Platform] += o.Total
		} else {
			summary.UndatedOrders++
		}

		if o.ProductName != "" {
			ps, ok := products[o.ProductName]
			if !ok {
				ps = &models.ProductSales{ProductName: o.ProductName}
				products[o.ProductName] = ps
			}
			ps.Units += o.Quantity
			ps.Revenue += o.Total
		}
	}

	finishTotals(&summary.PlatformTotals)
	for p, pt := range summary.ByPlatform {
		finishTotals(&pt)
		summary.ByPlatform[p] = pt
	}

	for _, m := range monthly {
		m.Total = round(m.Total, 2)
		for p, v := range m.ByPlatform {
			m.ByPlatform[p] = round(v, 2)
		}
		summary.MonthlyRevenue = append(summary.MonthlyRevenue, *m)
	}
	slices.SortFunc(summary.MonthlyRevenue, func(a, b models.MonthlyRevenue) int {
		return strings.Compare(a.Month, b.Month)
	})

	for _, ps := range products {
		ps.Revenue = round(ps.Revenue, 2)
		summary.TopProducts = append(summary.TopProducts, *ps)
	}
	slices.SortFunc(summary.TopProducts, func(a, b models.ProductSales) int {
		if a.Units != b.Units {
			return b.Units - a.Units
		}
		return strings.Compare(a.ProductName, b.ProductName)
	})
	if len(summary.TopProducts) > topProductsLimit {
		summary.TopProducts = summary.TopProducts[:topProductsLimit]
	}
	return summary
}

func addOrder(t *models.PlatformTotals, o models.NormalizedOrder) {
	t.GMV += o.Total
	t.Units += o.Quantity
	if o.Paid() {
		t.PaidOrders++
	}
}

func finishTotals(t *models.PlatformTotals) {
	t.GMV = round(t.GMV, 2)
	t.AOV = round(safeDiv(t.GMV, float64(t.PaidOrders)), 2)
}
