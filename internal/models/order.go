package models

import "time"

type Platform string

const (
	PlatformShopify Platform = "shopify"
	PlatformTikTok  Platform = "tiktok"
)

var Platforms = []Platform{PlatformShopify, PlatformTikTok}

// RawRow is one parsed CSV line keyed by column name. Values are strings
// from CSV input or numbers when supplied by a caller.
type RawRow map[string]any

// Table keeps the header order alongside the rows; the P&L source depends on
// column position rather than column name.
type Table struct {
	Header []string
	Rows   []RawRow
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

type NormalizedOrder struct {
	OrderID       string     `json:"order_id"`
	CreatedAt     *time.Time `json:"created_at"`
	Total         float64    `json:"total"`
	ProductName   string     `json:"product_name"`
	Quantity      int        `json:"quantity"`
	Platform      Platform   `json:"platform"`
	CustomerEmail string     `json:"customer_email"`
}

// Month returns the "2006-01" bucket of the order, or "" when the date is unknown.
func (o NormalizedOrder) Month() string {
	if o.CreatedAt == nil {
		return ""
	}
	return o.CreatedAt.Format(MonthLayout)
}

// Paid reports whether the order counts as a purchase.
func (o NormalizedOrder) Paid() bool {
	return o.Total > 0
}

const MonthLayout = "2006-01"
