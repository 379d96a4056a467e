package models

import "time"

type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusPaused    SubscriptionStatus = "paused"
)

type CancellationCategory string

const (
	CancelTaste             CancellationCategory = "Taste"
	CancelPrice             CancellationCategory = "Price"
	CancelOrderedTooMany    CancellationCategory = "Ordered too Many"
	CancelOneTimePurchase   CancellationCategory = "One-time Purchase"
	CancelWrongProduct      CancellationCategory = "Wrong Product"
	CancelNoLongerNeeded    CancellationCategory = "No Longer Needed"
	CancelDeliveryIssues    CancellationCategory = "Delivery Issues"
	CancelCustomerService   CancellationCategory = "Customer Service"
	CancelFoundAlternative  CancellationCategory = "Found Alternative"
	CancelOther             CancellationCategory = "Other"
	CancelNoReasonIndicated CancellationCategory = "No Reason Indicated"
)

type SubscriptionRecord struct {
	Email                    string               `json:"email"`
	Status                   SubscriptionStatus   `json:"status"`
	OrderPlacedDate          *time.Time           `json:"order_placed_date"`
	CancelledOn              *time.Time           `json:"cancelled_on"`
	PausedOn                 *time.Time           `json:"paused_on"`
	FinalPrice               float64              `json:"final_price"`
	TotalSubscriptionRevenue float64              `json:"total_subscription_revenue"`
	TotalNumberOfPayments    int                  `json:"total_number_of_payments"`
	CancellationReason       string               `json:"cancellation_reason,omitempty"`
	CancellationCategory     CancellationCategory `json:"cancellation_category,omitempty"`
}

func (s SubscriptionRecord) IsActive() bool {
	return s.Status == StatusActive
}
