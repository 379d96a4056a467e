package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pouch-dashboard/internal/models"
)

func TestCanonicalProductName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pack-728", "28-Pouch Pack"},
		{"Nicotine Pouches 14 count", "14-Pouch Pack"},
		{"Trial 7ct", "7-Pouch Pack"},
		{"Gift Card", "Gift Card"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalProductName(tt.in))
		})
	}
}

func TestNormalizeOrders_Shopify(t *testing.T) {
	rows := []models.RawRow{
		{
			"Name":              "#1001",
			"Created at":        "2024-01-15 10:30:00 -0500",
			"Total":             "$56.00",
			"Lineitem name":     "Mint 28 Pack",
			"Lineitem quantity": "2",
			"Email":             "  Alice@Example.COM ",
		},
		{
			"Name":              "#1001",
			"Created at":        "2024-01-15 10:30:00 -0500",
			"Total":             "",
			"Lineitem name":     "Citrus 14",
			"Lineitem quantity": "1",
			"Email":             "alice@example.com",
		},
	}

	orders, err := NormalizeOrders(models.PlatformShopify, rows)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "#1001", first.OrderID)
	assert.Equal(t, 56.00, first.Total)
	assert.Equal(t, "28-Pouch Pack", first.ProductName)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "alice@example.com", first.CustomerEmail)
	assert.Equal(t, models.PlatformShopify, first.Platform)
	require.NotNil(t, first.CreatedAt)
	assert.Equal(t, "2024-01", first.Month())

	second := orders[1]
	assert.Zero(t, second.Total)
	assert.False(t, second.Paid())
	assert.Equal(t, "14-Pouch Pack", second.ProductName)
	assert.Equal(t, 1, second.Quantity)
}

func TestNormalizeOrders_TikTok(t *testing.T) {
	rows := []models.RawRow{
		{
			"Order ID":     "576000111",
			"Created Time": "02/03/2024 11:15:00 PM",
			"Order Amount": "29.99",
			"Product Name": "Pouches 7 pack",
			"Quantity":     "3",
			"Buyer Email":  "bob@example.com",
		},
		{
			"Order ID":     "576000112",
			"Created Time": "garbage",
			"Order Amount": "oops",
			"Quantity":     "-1",
		},
	}

	orders, err := NormalizeOrders(models.PlatformTikTok, rows)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, 29.99, orders[0].Total)
	assert.Equal(t, "7-Pouch Pack", orders[0].ProductName)
	assert.Equal(t, 3, orders[0].Quantity)
	assert.Equal(t, "2024-02", orders[0].Month())

	bad := orders[1]
	assert.Nil(t, bad.CreatedAt)
	assert.Empty(t, bad.Month())
	assert.Zero(t, bad.Total)
	assert.Zero(t, bad.Quantity)
	assert.Empty(t, bad.CustomerEmail)
}

func TestNormalizeOrders_UnknownPlatform(t *testing.T) {
	_, err := NormalizeOrders(models.Platform("amazon"), nil)
	assert.Error(t, err)
}

func TestNormalizeOrders_DoesNotMutateRows(t *testing.T) {
	row := models.RawRow{"Email": " X@Y.com ", "Total": "$5"}
	_, err := NormalizeOrders(models.PlatformShopify, []models.RawRow{row})
	require.NoError(t, err)
	assert.Equal(t, " X@Y.com ", row["Email"])
	assert.Equal(t, "$5", row["Total"])
}
