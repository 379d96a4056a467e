package ingest

import (
	"strings"

	"pouch-dashboard/internal/models"
)

const (
	colSubEmail         = "Customer Email"
	colSubStatus        = "Status"
	colSubPlaced        = "Order Placed Date"
	colSubCancelledOn   = "Cancelled On"
	colSubPausedOn      = "Paused On"
	colSubFinalPrice    = "Final Price"
	colSubTotalRevenue  = "Total Subscription Revenue"
	colSubTotalPayments = "Total Number Of Payments"
	colSubReason        = "Cancellation Reason"
)

// ParseSubscriptions maps subscription export rows onto SubscriptionRecord.
// CancellationCategory is left for the classifier to fill in.
func ParseSubscriptions(rows []models.RawRow) []models.SubscriptionRecord {
	records := make([]models.SubscriptionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.SubscriptionRecord{
			Email:                    NormalizeEmail(row[colSubEmail]),
			Status:                   normalizeStatus(Text(row[colSubStatus])),
			OrderPlacedDate:          ParseDate(row[colSubPlaced]),
			CancelledOn:              ParseDate(row[colSubCancelledOn]),
			PausedOn:                 ParseDate(row[colSubPausedOn]),
			FinalPrice:               ParseAmount(row[colSubFinalPrice]),
			TotalSubscriptionRevenue: ParseAmount(row[colSubTotalRevenue]),
			TotalNumberOfPayments:    ParseQuantity(row[colSubTotalPayments]),
			CancellationReason:       Text(row[colSubReason]),
		})
	}
	return records
}

func normalizeStatus(s string) models.SubscriptionStatus {
	s = strings.ToLower(s)
	if s == "canceled" {
		return models.StatusCancelled
	}
	return models.SubscriptionStatus(s)
}
