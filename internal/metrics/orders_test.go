package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pouch-dashboard/internal/models"
)

func TestSummarizeOrders(t *testing.T) {
	orders := []models.NormalizedOrder{
		order(models.PlatformShopify, "a@x.com", day(2024, time.January, 5), 56, "28-Pouch Pack", 2),
		// second line item of the same Shopify order carries no total
		order(models.PlatformShopify, "a@x.com", day(2024, time.January, 5), 0, "14-Pouch Pack", 1),
		order(models.PlatformTikTok, "b@x.com", nil, 30, "7-Pouch Pack", 3),
	}

	s := SummarizeOrders(orders)

	assert.Equal(t, 86.0, s.GMV)
	assert.Equal(t, 2, s.PaidOrders)
	assert.Equal(t, 43.0, s.AOV)
	assert.Equal(t, 6, s.Units)
	assert.Equal(t, 1, s.UndatedOrders)

	shopify := s.ByPlatform[models.PlatformShopify]
	assert.Equal(t, 56.0, shopify.GMV)
	assert.Equal(t, 1, shopify.PaidOrders)
	assert.Equal(t, 56.0, shopify.AOV)
	assert.Equal(t, 3, shopify.Units)
	assert.Equal(t, 30.0, s.ByPlatform[models.PlatformTikTok].GMV)

	require.Len(t, s.MonthlyRevenue, 1)
	assert.Equal(t, "2024-01", s.MonthlyRevenue[0].Month)
	assert.Equal(t, 56.0, s.MonthlyRevenue[0].Total)
	assert.Equal(t, 56.0, s.MonthlyRevenue[0].ByPlatform[models.PlatformShopify])

	require.Len(t, s.TopProducts, 3)
	assert.Equal(t, "7-Pouch Pack", s.TopProducts[0].ProductName)
	assert.Equal(t, "28-Pouch Pack", s.TopProducts[1].ProductName)
	assert.Equal(t, "14-Pouch Pack", s.TopProducts[2].ProductName)
}

func TestSummarizeOrders_Empty(t *testing.T) {
	s := SummarizeOrders(nil)

	assert.Zero(t, s.GMV)
	assert.Zero(t, s.AOV)
	assert.NotNil(t, s.MonthlyRevenue)
	assert.NotNil(t, s.TopProducts)
}
