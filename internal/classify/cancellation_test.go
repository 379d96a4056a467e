package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pouch-dashboard/internal/models"
)

func TestClassifyCancellation(t *testing.T) {
	tests := []struct {
		reason string
		want   models.CancellationCategory
	}{
		{"Didn't like the flavor", models.CancelTaste},
		{"Too expensive", models.CancelPrice},
		{"Too expensive and didn't like the taste", models.CancelTaste},
		{"I have too many pouches", models.CancelOrderedTooMany},
		{"Only wanted a one-time order", models.CancelOneTimePurchase},
		{"Ordered the wrong strength", models.CancelWrongProduct},
		{"I quit nicotine", models.CancelNoLongerNeeded},
		{"Package arrived weeks after", models.CancelDeliveryIssues},
		{"Customer service never replied", models.CancelCustomerService},
		{"Switched to another brand", models.CancelFoundAlternative},
		{"Moving abroad", models.CancelOther},
		{"", models.CancelNoReasonIndicated},
		{"   ", models.CancelNoReasonIndicated},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCancellation(tt.reason))
		})
	}
}

func TestAnnotateCancellations(t *testing.T) {
	records := []models.SubscriptionRecord{
		{Email: "a@x.com", Status: models.StatusCancelled, CancellationReason: "price"},
		{Email: "b@x.com", Status: models.StatusActive},
	}

	out := AnnotateCancellations(records)
	require.Len(t, out, 2)
	assert.Equal(t, models.CancelPrice, out[0].CancellationCategory)
	assert.Equal(t, models.CancelNoReasonIndicated, out[1].CancellationCategory)

	assert.Empty(t, records[0].CancellationCategory)
}
