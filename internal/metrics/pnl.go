package metrics

import "pouch-dashboard/internal/models"

var (
	revenueCategories = []models.FinancialCategory{
		models.ShopifyIncome,
		models.TikTokIncome,
		models.OtherIncome,
		models.ShopifyDiscounts,
		models.TikTokDiscounts,
	}
	cogsCategories = []models.FinancialCategory{
		models.CostOfGoodsSold,
		models.InwardShipping,
		models.OutwardShipping,
		models.MerchantFees,
	}
)

// RollupPL sums the classified statement per month and per category and
// derives revenue, gross profit and net income. Discounts are carried as
// negative amounts and are added into revenue, not subtracted.
func RollupPL(stmt models.PLStatement) models.PLSummary {
	summary := models.PLSummary{
		Months:         stmt.Months,
		MonthlyData:    make(map[string]map[models.FinancialCategory]float64, len(stmt.Months)),
		CategoryTotals: make(map[models.FinancialCategory]float64, len(models.FinancialCategories)),
		Monthly:        make([]models.PLMonth, 0, len(stmt.Months)),
	}
	if stmt.Empty() {
		return summary
	}
	summary.Available = true

	for _, month := range stmt.Months {
		summary.MonthlyData[month] = emptyCategoryMap()
	}
	for _, cat := range models.FinancialCategories {
		summary.CategoryTotals[cat] = 0
	}

	for _, row := range stmt.Rows {
		for i, month := range stmt.Months {
			if i >= models.MonthsPerYear {
				break
			}
			v := row.MonthlyValues[i]
			summary.MonthlyData[month][row.Category] += v
			summary.CategoryTotals[row.Category] += v
		}
	}

	for _, month := range stmt.Months {
		cats := summary.MonthlyData[month]
		roundCategories(cats)
		m := derive(cats)
		m.Month = month
		summary.Monthly = append(summary.Monthly, m)
	}

	roundCategories(summary.CategoryTotals)
	totals := derive(summary.CategoryTotals)
	summary.TotalGrossRevenue = totals.Revenue
	summary.COGSWithShipping = totals.COGSWithShipping
	summary.GrossProfit = totals.GrossProfit
	summary.MarketingExpenses = summary.CategoryTotals[models.MarketingExpenses]
	summary.OperatingExpenses = summary.CategoryTotals[models.OperatingExpenses]
	summary.TotalExpenses = totals.Expenses
	summary.NetIncome = totals.NetIncome
	if totals.Revenue != 0 {
		summary.GrossMarginPercent = ptr(round(totals.GrossProfit/totals.Revenue*100, 1))
		summary.NetMarginPercent = ptr(round(totals.NetIncome/totals.Revenue*100, 1))
	}
	return summary
}

func derive(cats map[models.FinancialCategory]float64) models.PLMonth {
	var revenue, cogs float64
	for _, c := range revenueCategories {
		revenue += cats[c]
	}
	for _, c := range cogsCategories {
		cogs += cats[c]
	}
	expenses := cogs + cats[models.MarketingExpenses] + cats[models.OperatingExpenses]

	return models.PLMonth{
		Revenue:          round(revenue, 2),
		COGSWithShipping: round(cogs, 2),
		GrossProfit:      round(revenue-cogs, 2),
		Expenses:         round(expenses, 2),
		NetIncome:        round(revenue-expenses, 2),
	}
}

func emptyCategoryMap() map[models.FinancialCategory]float64 {
	m := make(map[models.FinancialCategory]float64, len(models.FinancialCategories))
	for _, c := range models.FinancialCategories {
		m[c] = 0
	}
	return m
}

func roundCategories(m map[models.FinancialCategory]float64) {
	for k, v := range m {
		m[k] = round(v, 2)
	}
}
