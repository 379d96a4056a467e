package models

type FinancialCategory string

const (
	ShopifyIncome     FinancialCategory = "Shopify Income"
	TikTokIncome      FinancialCategory = "TikTok Income"
	ShopifyDiscounts  FinancialCategory = "Shopify Discounts"
	TikTokDiscounts   FinancialCategory = "TikTok Discounts"
	OtherIncome       FinancialCategory = "Other Income"
	CostOfGoodsSold   FinancialCategory = "Cost of Goods Sold"
	InwardShipping    FinancialCategory = "Inward Shipping"
	OutwardShipping   FinancialCategory = "Outward Shipping"
	MerchantFees      FinancialCategory = "Merchant Fees"
	MarketingExpenses FinancialCategory = "Marketing Expenses"
	OperatingExpenses FinancialCategory = "Operating Expenses"
	Uncategorized     FinancialCategory = "Uncategorized"
)

// FinancialCategories lists every category in reporting order.
var FinancialCategories = []FinancialCategory{
	ShopifyIncome,
	TikTokIncome,
	ShopifyDiscounts,
	TikTokDiscounts,
	OtherIncome,
	CostOfGoodsSold,
	InwardShipping,
	OutwardShipping,
	MerchantFees,
	MarketingExpenses,
	OperatingExpenses,
	Uncategorized,
}

const MonthsPerYear = 12

type PLRow struct {
	AccountLabel  string                 `json:"account_label"`
	MonthlyValues [MonthsPerYear]float64 `json:"monthly_values"`
	Category      FinancialCategory      `json:"category"`
}

// YTD sums the row across all months.
func (r PLRow) YTD() float64 {
	var sum float64
	for _, v := range r.MonthlyValues {
		sum += v
	}
	return sum
}

// PLStatement is the filtered, classified P&L export. Months holds the header
// names of the month columns actually present (at most twelve).
type PLStatement struct {
	Months []string `json:"months"`
	Rows   []PLRow  `json:"rows"`
}

func (s PLStatement) Empty() bool {
	return len(s.Rows) == 0
}
