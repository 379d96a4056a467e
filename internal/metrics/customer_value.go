package metrics

import (
	"time"

	"pouch-dashboard/internal/models"
)

const (
	daysPerMonth       = 30
	threeYearLTVMonths = 36
)

// CustomerValue computes CLV from the subscription export and CAC from the
// P&L marketing spend. Ratios whose inputs are missing stay nil.
//
//	avgPurchaseValue  = subscription revenue / payments
//	purchaseFrequency = payments / unique subscribers
//	CLV               = avgPurchaseValue × purchaseFrequency × avgLifespanMonths
//	CAC               = marketing spend / distinct customers (orders ∪ subscriptions)
func CustomerValue(subs []models.SubscriptionRecord, orders []models.NormalizedOrder, pl models.PLSummary, now time.Time) models.CustomerValue {
	var cv models.CustomerValue

	subscribers := make(map[string]struct{})
	var lifespanMonths float64
	var lifespans int
	for _, sub := range subs {
		cv.TotalSubscriptionRevenue += sub.TotalSubscriptionRevenue
		cv.TotalPayments += sub.TotalNumberOfPayments
		if sub.Email != "" {
			subscribers[sub.Email] = struct{}{}
		}
		if months, ok := lifespan(sub, now); ok {
			lifespanMonths += months
			lifespans++
		}
	}

	cv.UniqueSubscribers = len(subscribers)
	avgPurchase := safeDiv(cv.TotalSubscriptionRevenue, float64(cv.TotalPayments))
	frequency := safeDiv(float64(cv.TotalPayments), float64(cv.UniqueSubscribers))
	avgLifespan := safeDiv(lifespanMonths, float64(lifespans))
	clv := avgPurchase * frequency * avgLifespan

	cv.TotalSubscriptionRevenue = round(cv.TotalSubscriptionRevenue, 2)
	cv.AvgPurchaseValue = round(avgPurchase, 2)
	cv.PurchaseFrequency = round(frequency, 2)
	cv.AvgLifespanMonths = round(avgLifespan, 2)
	cv.CLV = round(clv, 2)
	cv.ThreeYearLTV = round(avgPurchase*frequency*threeYearLTVMonths, 2)

	customers := make(map[string]struct{}, len(subscribers))
	for email := range subscribers {
		customers[email] = struct{}{}
	}
	for _, o := range orders {
		if o.Paid() && o.CustomerEmail != "" {
			customers[o.CustomerEmail] = struct{}{}
		}
	}
	cv.TotalNewCustomers = len(customers)

	if !pl.Available {
		return cv
	}

	marketing := pl.MarketingExpenses
	cv.MarketingExpense = ptr(marketing)
	cac := round(safeDiv(marketing, float64(cv.TotalNewCustomers)), 2)
	cv.CAC = ptr(cac)

	if cv.UniqueSubscribers > 0 {
		cv.LTVToGrossProfit = optionalDiv(clv, pl.GrossProfit)
		cv.LTVToCAC = optionalDiv(clv, cac)
	}
	return cv
}

// lifespan is the subscription length in 30-day months. Subscriptions that
// ended without a cancellation date are assumed to have run one month per
// payment; active ones run until now.
func lifespan(sub models.SubscriptionRecord, now time.Time) (float64, bool) {
	if sub.OrderPlacedDate == nil {
		return 0, false
	}
	start := *sub.OrderPlacedDate

	var end time.Time
	switch {
	case sub.CancelledOn != nil:
		end = *sub.CancelledOn
	case !sub.IsActive():
		end = start.AddDate(0, sub.TotalNumberOfPayments, 0)
	default:
		end = now
	}

	days := end.Sub(start).Hours() / 24
	if days < 0 {
		days = 0
	}
	return days / daysPerMonth, true
}
