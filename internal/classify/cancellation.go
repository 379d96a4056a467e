package classify

import (
	"strings"

	"pouch-dashboard/internal/models"
)

type cancellationRule struct {
	match    predicate
	category models.CancellationCategory
}

// cancellationRules are checked in priority order. Customers often give more
// than one reason ("too expensive and didn't like the taste"); taste wins over
// price, price over quantity and so on.
var cancellationRules = []cancellationRule{
	{anyOf("taste", "flavor", "flavour", "didn't like", "did not like", "don't like", "texture", "smell"), models.CancelTaste},
	{anyOf("price", "expensive", "cost", "afford", "budget", "cheaper", "money"), models.CancelPrice},
	{anyOf("too many", "to many", "too much", "enough", "stock up", "stocked up", "surplus", "backlog"), models.CancelOrderedTooMany},
	{anyOf("one time", "one-time", "onetime", "single purchase", "just wanted to try", "only wanted", "trial"), models.CancelOneTimePurchase},
	{anyOf("wrong", "mistake", "accident", "didn't mean", "did not mean"), models.CancelWrongProduct},
	{anyOf("no longer", "don't need", "do not need", "not needed", "quit", "stopped", "pregnan", "doctor", "health"), models.CancelNoLongerNeeded},
	{anyOf("deliver", "shipping", "shipment", "late", "arrive", "lost", "damaged", "courier"), models.CancelDeliveryIssues},
	{anyOf("customer service", "support", "rude", "no response", "unhelpful"), models.CancelCustomerService},
	{anyOf("alternative", "competitor", "another brand", "other brand", "switched", "found a", "elsewhere"), models.CancelFoundAlternative},
}

// ClassifyCancellation buckets a free-text cancellation reason.
func ClassifyCancellation(reason string) models.CancellationCategory {
	r := strings.ToLower(strings.TrimSpace(reason))
	if r == "" {
		return models.CancelNoReasonIndicated
	}
	for _, rule := range cancellationRules {
		if rule.match(r) {
			return rule.category
		}
	}
	return models.CancelOther
}

// AnnotateCancellations returns a copy of records with CancellationCategory
// filled in. Records without a reason get No Reason Indicated.
func AnnotateCancellations(records []models.SubscriptionRecord) []models.SubscriptionRecord {
	out := make([]models.SubscriptionRecord, len(records))
	for i, rec := range records {
		rec.CancellationCategory = ClassifyCancellation(rec.CancellationReason)
		out[i] = rec
	}
	return out
}
