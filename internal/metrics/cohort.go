package metrics

import (
	"slices"
	"time"

	"pouch-dashboard/internal/models"
)

var retentionCheckpoints = [3]int{30, 60, 90}

// CohortRetention groups subscriptions by the UTC calendar month of their first
// order and counts how many were still active 30, 60 and 90 days after the
// start of that month. Records without an order date are left out.
func CohortRetention(subs []models.SubscriptionRecord) []models.CohortRetention {
	groups := make(map[string][]models.SubscriptionRecord)
	starts := make(map[string]time.Time)

	for _, sub := range subs {
		if sub.OrderPlacedDate == nil {
			continue
		}
		placed := sub.OrderPlacedDate.UTC()
		key := placed.Format(models.MonthLayout)
		if _, ok := starts[key]; !ok {
			starts[key] = time.Date(placed.Year(), placed.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
		groups[key] = append(groups[key], sub)
	}

	cohorts := make([]models.CohortRetention, 0, len(groups))
	for key, members := range groups {
		var active [3]int
		for i, days := range retentionCheckpoints {
			checkpoint := starts[key].AddDate(0, 0, days)
			for _, sub := range members {
				if activeAt(sub, checkpoint) {
					active[i]++
				}
			}
		}

		size := len(members)
		cohorts = append(cohorts, models.CohortRetention{
			Cohort:      key,
			Size:        size,
			Active30:    active[0],
			Active60:    active[1],
			Active90:    active[2],
			Retention30: percent(active[0], size),
			Retention60: percent(active[1], size),
			Retention90: percent(active[2], size),
		})
	}

	slices.SortFunc(cohorts, func(a, b models.CohortRetention) int {
		if a.Cohort < b.Cohort {
			return -1
		}
		if a.Cohort > b.Cohort {
			return 1
		}
		return 0
	})
	return cohorts
}

// activeAt decides whether a subscription was running at checkpoint. A pause
// that had already happened counts as inactive; a cancellation counts only
// once its date has passed.
func activeAt(sub models.SubscriptionRecord, checkpoint time.Time) bool {
	if sub.CancelledOn != nil && !sub.CancelledOn.After(checkpoint) {
		return false
	}
	switch {
	case sub.Status == models.StatusPaused:
		return sub.PausedOn != nil && sub.PausedOn.After(checkpoint)
	case sub.CancelledOn != nil:
		return true
	case sub.Status == models.StatusActive:
		return true
	}
	return false
}
