package metrics

import (
	"fmt"
	"slices"

	"pouch-dashboard/internal/models"
)

// insightThreshold is the share of cancellations (percent) a reason needs
// before it gets an actionable insight.
const insightThreshold = 15.0

var cancellationOrder = []models.CancellationCategory{
	models.CancelTaste,
	models.CancelPrice,
	models.CancelOrderedTooMany,
	models.CancelOneTimePurchase,
	models.CancelWrongProduct,
	models.CancelNoLongerNeeded,
	models.CancelDeliveryIssues,
	models.CancelCustomerService,
	models.CancelFoundAlternative,
	models.CancelOther,
	models.CancelNoReasonIndicated,
}

var cancellationInsights = map[models.CancellationCategory]string{
	models.CancelTaste:            "offer a flavour swap or sampler before the cancel step",
	models.CancelPrice:            "test a retention discount or a lower-priced pack size",
	models.CancelOrderedTooMany:   "promote skip-a-delivery and longer delivery intervals",
	models.CancelOneTimePurchase:  "make the one-time purchase option clearer at checkout",
	models.CancelWrongProduct:     "review product page copy and pack size selection",
	models.CancelNoLongerNeeded:   "offer a pause instead of a cancellation",
	models.CancelDeliveryIssues:   "review carrier performance and delivery notifications",
	models.CancelCustomerService:  "audit support response times",
	models.CancelFoundAlternative: "review competitor pricing and positioning",
}

// SummarizeSubscriptions reports status counts, recurring revenue from active
// subscriptions, churn and the cancellation reason mix.
func SummarizeSubscriptions(subs []models.SubscriptionRecord) models.SubscriptionSummary {
	summary := models.SubscriptionSummary{
		Total:         len(subs),
		StatusCounts:  make(map[models.SubscriptionStatus]int),
		Cancellations: []models.CancellationBreakdown{},
		Insights:      []string{},
	}

	reasons := make(map[models.CancellationCategory]int)
	cancelled := 0
	for _, sub := range subs {
		summary.StatusCounts[sub.Status]++
		if sub.IsActive() {
			summary.MRR += sub.FinalPrice
		}
		if sub.Status == models.StatusCancelled {
			cancelled++
			cat := sub.CancellationCategory
			if cat == "" {
				cat = models.CancelNoReasonIndicated
			}
			reasons[cat]++
		}
	}

	summary.MRR = round(summary.MRR, 2)
	summary.ARR = round(summary.MRR*12, 2)
	summary.ChurnRate = percent(cancelled, len(subs))

	for _, cat := range cancellationOrder {
		if n := reasons[cat]; n > 0 {
			summary.Cancellations = append(summary.Cancellations, models.CancellationBreakdown{
				Category: cat,
				Count:    n,
				Percent:  percent(n, cancelled),
			})
		}
	}
	slices.SortStableFunc(summary.Cancellations, func(a, b models.CancellationBreakdown) int {
		return b.Count - a.Count
	})

	for _, c := range summary.Cancellations {
		action, ok := cancellationInsights[c.Category]
		if !ok || c.Percent < insightThreshold {
			continue
		}
		summary.Insights = append(summary.Insights,
			fmt.Sprintf("%s accounts for %.1f%% of cancellations: %s.", c.Category, c.Percent, action))
	}
	return summary
}
