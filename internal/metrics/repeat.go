package metrics

import (
	"slices"
	"strings"

	"pouch-dashboard/internal/models"
)

// RepeatPurchase reports, for every month, how many purchasing customers were
// new versus returning. Each platform is measured against the customer's first
// order on that platform, so someone can be new to TikTok in a month where they
// are a repeat customer overall.
func RepeatPurchase(orders []models.NormalizedOrder) models.RepeatPurchaseSummary {
	summary := models.RepeatPurchaseSummary{
		Overall:    repeatByMonth(orders),
		ByPlatform: make(map[models.Platform][]models.RepeatPurchaseMonth, len(models.Platforms)),
	}
	for _, p := range models.Platforms {
		scoped := make([]models.NormalizedOrder, 0, len(orders))
		for _, o := range orders {
			if o.Platform == p {
				scoped = append(scoped, o)
			}
		}
		summary.ByPlatform[p] = repeatByMonth(scoped)
	}
	return summary
}

func repeatByMonth(orders []models.NormalizedOrder) []models.RepeatPurchaseMonth {
	firstMonth := make(map[string]string)
	buyers := make(map[string]map[string]struct{})

	for _, o := range orders {
		if !o.Paid() || o.CreatedAt == nil || o.CustomerEmail == "" {
			continue
		}
		month := o.Month()
		if first, ok := firstMonth[o.CustomerEmail]; !ok || month < first {
			firstMonth[o.CustomerEmail] = month
		}
		if buyers[month] == nil {
			buyers[month] = make(map[string]struct{})
		}
		buyers[month][o.CustomerEmail] = struct{}{}
	}

	result := make([]models.RepeatPurchaseMonth, 0, len(buyers))
	for month, customers := range buyers {
		m := models.RepeatPurchaseMonth{Month: month, Total: len(customers)}
		for email := range customers {
			if firstMonth[email] == month {
				m.New++
			} else {
				m.Repeat++
			}
		}
		m.RepeatRate = percent(m.Repeat, m.Total)
		result = append(result, m)
	}

	slices.SortFunc(result, func(a, b models.RepeatPurchaseMonth) int {
		return strings.Compare(a.Month, b.Month)
	})
	return result
}
