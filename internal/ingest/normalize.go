package ingest

import (
	"fmt"
	"strings"

	"pouch-dashboard/internal/models"
)

// orderColumns names the export columns of one order platform.
type orderColumns struct {
	OrderID  string
	Created  string
	Total    string
	Product  string
	Quantity string
	Email    string
}

var platformColumns = map[models.Platform]orderColumns{
	models.PlatformShopify: {
		OrderID:  "Name",
		Created:  "Created at",
		Total:    "Total",
		Product:  "Lineitem name",
		Quantity: "Lineitem quantity",
		Email:    "Email",
	},
	models.PlatformTikTok: {
		OrderID:  "Order ID",
		Created:  "Created Time",
		Total:    "Order Amount",
		Product:  "Product Name",
		Quantity: "Quantity",
		Email:    "Buyer Email",
	},
}

// packSizeTokens is checked in order; "Pack-728" is a 28 pack.
var packSizeTokens = []string{"28", "14", "7"}

// NormalizeOrders maps platform-specific export rows onto NormalizedOrder.
// Malformed cells degrade to zero values; no row is ever rejected.
func NormalizeOrders(platform models.Platform, rows []models.RawRow) ([]models.NormalizedOrder, error) {
	cols, ok := platformColumns[platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q", platform)
	}

	orders := make([]models.NormalizedOrder, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, models.NormalizedOrder{
			OrderID:       Text(row[cols.OrderID]),
			CreatedAt:     ParseDate(row[cols.Created]),
			Total:         ParseAmount(row[cols.Total]),
			ProductName:   CanonicalProductName(Text(row[cols.Product])),
			Quantity:      ParseQuantity(row[cols.Quantity]),
			Platform:      platform,
			CustomerEmail: NormalizeEmail(row[cols.Email]),
		})
	}
	return orders, nil
}

// CanonicalProductName folds product labels onto "{N}-Pouch Pack" using the
// first pack-size token found. Labels without a token are returned as is.
func CanonicalProductName(label string) string {
	for _, token := range packSizeTokens {
		if strings.Contains(label, token) {
			return token + "-Pouch Pack"
		}
	}
	return label
}

func NormalizeEmail(v any) string {
	return strings.ToLower(Text(v))
}
