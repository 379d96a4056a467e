package models

import "time"

type PLMonth struct {
	Month            string  `json:"month"`
	Revenue          float64 `json:"revenue"`
	COGSWithShipping float64 `json:"cogs_with_shipping"`
	GrossProfit      float64 `json:"gross_profit"`
	Expenses         float64 `json:"expenses"`
	NetIncome        float64 `json:"net_income"`
}

type PLSummary struct {
	Available          bool                                     `json:"available"`
	Months             []string                                 `json:"months"`
	MonthlyData        map[string]map[FinancialCategory]float64 `json:"monthly_data"`
	CategoryTotals     map[FinancialCategory]float64            `json:"category_totals"`
	Monthly            []PLMonth                                `json:"monthly"`
	TotalGrossRevenue  float64                                  `json:"total_gross_revenue"`
	COGSWithShipping   float64                                  `json:"cogs_with_shipping"`
	GrossProfit        float64                                  `json:"gross_profit"`
	MarketingExpenses  float64                                  `json:"marketing_expenses"`
	OperatingExpenses  float64                                  `json:"operating_expenses"`
	TotalExpenses      float64                                  `json:"total_expenses"`
	NetIncome          float64                                  `json:"net_income"`
	GrossMarginPercent *float64                                 `json:"gross_margin_percent"`
	NetMarginPercent   *float64                                 `json:"net_margin_percent"`
}

type CohortRetention struct {
	Cohort      string  `json:"cohort"`
	Size        int     `json:"size"`
	Active30    int     `json:"active_30"`
	Active60    int     `json:"active_60"`
	Active90    int     `json:"active_90"`
	Retention30 float64 `json:"retention_30"`
	Retention60 float64 `json:"retention_60"`
	Retention90 float64 `json:"retention_90"`
}

// CustomerValue holds lifetime value and acquisition cost figures. Nil
// pointers mean the figure is unavailable and serialise as null.
type CustomerValue struct {
	TotalSubscriptionRevenue float64  `json:"total_subscription_revenue"`
	TotalPayments            int      `json:"total_payments"`
	UniqueSubscribers        int      `json:"unique_subscribers"`
	AvgPurchaseValue         float64  `json:"avg_purchase_value"`
	PurchaseFrequency        float64  `json:"purchase_frequency"`
	AvgLifespanMonths        float64  `json:"avg_lifespan_months"`
	CLV                      float64  `json:"clv"`
	ThreeYearLTV             float64  `json:"three_year_ltv"`
	TotalNewCustomers        int      `json:"total_new_customers"`
	MarketingExpense         *float64 `json:"marketing_expense"`
	CAC                      *float64 `json:"cac"`
	LTVToGrossProfit         *float64 `json:"ltv_to_gross_profit"`
	LTVToCAC                 *float64 `json:"ltv_to_cac"`
}

type RepeatPurchaseMonth struct {
	Month      string  `json:"month"`
	New        int     `json:"new"`
	Repeat     int     `json:"repeat"`
	Total      int     `json:"total"`
	RepeatRate float64 `json:"repeat_rate"`
}

type RepeatPurchaseSummary struct {
	Overall    []RepeatPurchaseMonth              `json:"overall"`
	ByPlatform map[Platform][]RepeatPurchaseMonth `json:"by_platform"`
}

type ProductForecast struct {
	ProductName           string  `json:"product_name"`
	PackSize              int     `json:"pack_size"`
	Past3MonthUnits       int     `json:"past_3_month_units"`
	AvgMonthlyConsumption float64 `json:"avg_monthly_consumption"`
	BaseNeed              int     `json:"base_need"`
	SafetyStock           int     `json:"safety_stock"`
	ForecastUnits         int     `json:"forecast_units"`
	ForecastPouches       int     `json:"forecast_pouches"`
	CurrentInventoryPacks int     `json:"current_inventory_packs"`
	NetOrderRequired      int     `json:"net_order_required"`
}

type InventoryForecast struct {
	WindowStart          time.Time         `json:"window_start"`
	WindowEnd            time.Time         `json:"window_end"`
	Params               ForecastParams    `json:"params"`
	Products             []ProductForecast `json:"products"`
	TotalForecastUnits   int               `json:"total_forecast_units"`
	TotalForecastPouches int               `json:"total_forecast_pouches"`
	TotalNetOrder        int               `json:"total_net_order"`
}

type PlatformTotals struct {
	GMV        float64 `json:"gmv"`
	PaidOrders int     `json:"paid_orders"`
	AOV        float64 `json:"aov"`
	Units      int     `json:"units"`
}

type MonthlyRevenue struct {
	Month      string               `json:"month"`
	Total      float64              `json:"total"`
	ByPlatform map[Platform]float64 `json:"by_platform"`
}

type ProductSales struct {
	ProductName string  `json:"product_name"`
	Units       int     `json:"units"`
	Revenue     float64 `json:"revenue"`
}

type OrderSummary struct {
	PlatformTotals
	ByPlatform     map[Platform]PlatformTotals `json:"by_platform"`
	MonthlyRevenue []MonthlyRevenue            `json:"monthly_revenue"`
	TopProducts    []ProductSales              `json:"top_products"`
	UndatedOrders  int                         `json:"undated_orders"`
}

type CancellationBreakdown struct {
	Category CancellationCategory `json:"category"`
	Count    int                  `json:"count"`
	Percent  float64              `json:"percent"`
}

type SubscriptionSummary struct {
	Total         int                        `json:"total"`
	StatusCounts  map[SubscriptionStatus]int `json:"status_counts"`
	MRR           float64                    `json:"mrr"`
	ARR           float64                    `json:"arr"`
	ChurnRate     float64                    `json:"churn_rate"`
	Cancellations []CancellationBreakdown    `json:"cancellations"`
	Insights      []string                   `json:"insights"`
}

// Dashboard is everything computed once per dataset load.
type Dashboard struct {
	DatasetVersion string                `json:"dataset_version"`
	ComputedAt     time.Time             `json:"computed_at"`
	Orders         OrderSummary          `json:"orders"`
	Subscriptions  SubscriptionSummary   `json:"subscriptions"`
	PL             PLSummary             `json:"pnl"`
	Cohorts        []CohortRetention     `json:"cohorts"`
	CustomerValue  CustomerValue         `json:"customer_value"`
	RepeatPurchase RepeatPurchaseSummary `json:"repeat_purchase"`
}
