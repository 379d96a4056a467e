package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pouch-dashboard/internal/models"
)

func TestParseSubscriptions(t *testing.T) {
	rows := []models.RawRow{
		{
			"Customer Email":             "Carol@Example.com",
			"Status":                     "Active",
			"Order Placed Date":          "2024-01-10",
			"Final Price":                "$29.99",
			"Total Subscription Revenue": "$119.96",
			"Total Number Of Payments":   "4",
		},
		{
			"Customer Email":      "dan@example.com",
			"Status":              "CANCELED",
			"Order Placed Date":   "2024-01-12",
			"Cancelled On":        "2024-02-20",
			"Cancellation Reason": "Too expensive",
		},
	}

	subs := ParseSubscriptions(rows)
	require.Len(t, subs, 2)

	assert.Equal(t, "carol@example.com", subs[0].Email)
	assert.Equal(t, models.StatusActive, subs[0].Status)
	assert.True(t, subs[0].IsActive())
	assert.Equal(t, 29.99, subs[0].FinalPrice)
	assert.Equal(t, 119.96, subs[0].TotalSubscriptionRevenue)
	assert.Equal(t, 4, subs[0].TotalNumberOfPayments)
	assert.Nil(t, subs[0].CancelledOn)

	assert.Equal(t, models.StatusCancelled, subs[1].Status)
	require.NotNil(t, subs[1].CancelledOn)
	assert.Equal(t, "Too expensive", subs[1].CancellationReason)
	assert.Empty(t, subs[1].CancellationCategory)
}
