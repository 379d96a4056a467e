package metrics

import (
	"time"

	"pouch-dashboard/internal/models"
)

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func order(platform models.Platform, email string, created *time.Time, total float64, product string, qty int) models.NormalizedOrder {
	return models.NormalizedOrder{
		OrderID:       email + "-" + product,
		CreatedAt:     created,
		Total:         total,
		ProductName:   product,
		Quantity:      qty,
		Platform:      platform,
		CustomerEmail: email,
	}
}
