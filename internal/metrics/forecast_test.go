package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pouch-dashboard/internal/models"
)

var forecastNow = time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)

func TestPackSize(t *testing.T) {
	assert.Equal(t, 28, PackSize("28-Pouch Pack"))
	assert.Equal(t, 14, PackSize("14-Pouch Pack"))
	assert.Equal(t, 7, PackSize("7-Pouch Pack"))
	assert.Equal(t, 3, PackSize("3 pack sampler"))
	assert.Equal(t, 0, PackSize("Gift Card"))
}

func TestForecastInventory(t *testing.T) {
	orders := []models.NormalizedOrder{
		order(models.PlatformShopify, "a@x.com", day(2024, time.March, 1), 60, "28-Pouch Pack", 60),
		order(models.PlatformTikTok, "b@x.com", day(2024, time.February, 1), 30, "28-Pouch Pack", 30),
		order(models.PlatformShopify, "c@x.com", day(2024, time.April, 1), 10, "7-Pouch Pack", 10),
		// outside the window or undated
		order(models.PlatformShopify, "d@x.com", day(2023, time.December, 1), 10, "28-Pouch Pack", 500),
		order(models.PlatformShopify, "e@x.com", nil, 10, "28-Pouch Pack", 500),
	}
	params := models.ForecastParams{
		SafetyBufferPercent:   17.5,
		GrowthRatePercent:     0,
		CurrentInventoryPacks: map[string]int{"28-Pouch Pack": 10},
	}

	f := ForecastInventory(orders, params, forecastNow)

	require.Len(t, f.Products, 2)

	p28 := f.Products[0]
	assert.Equal(t, "28-Pouch Pack", p28.ProductName)
	assert.Equal(t, 90, p28.Past3MonthUnits)
	assert.Equal(t, 30.0, p28.AvgMonthlyConsumption)
	assert.Equal(t, 90, p28.BaseNeed)
	assert.Equal(t, 16, p28.SafetyStock)
	assert.Equal(t, 106, p28.ForecastUnits)
	assert.Equal(t, 2968, p28.ForecastPouches)
	assert.Equal(t, 10, p28.CurrentInventoryPacks)
	assert.Equal(t, 2688, p28.NetOrderRequired)

	p7 := f.Products[1]
	assert.Equal(t, 10, p7.BaseNeed)
	assert.Equal(t, 12, p7.ForecastUnits)
	assert.Equal(t, 2, p7.SafetyStock)
	assert.Equal(t, 84, p7.NetOrderRequired)

	assert.Equal(t, 118, f.TotalForecastUnits)
	assert.Equal(t, 3052, f.TotalForecastPouches)
	assert.Equal(t, 2772, f.TotalNetOrder)
	assert.Equal(t, forecastNow, f.WindowEnd)
}

func TestForecastInventory_Growth(t *testing.T) {
	orders := []models.NormalizedOrder{
		order(models.PlatformShopify, "a@x.com", day(2024, time.March, 1), 90, "14-Pouch Pack", 90),
	}

	tests := []struct {
		name     string
		buffer   float64
		growth   float64
		base     int
		forecast int
	}{
		{"growth only", 0, 10, 99, 99},
		{"shrinking demand", 17.5, -25, 68, 80},
		{"tripled", 0, 200, 270, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ForecastInventory(orders, models.ForecastParams{
				SafetyBufferPercent: tt.buffer,
				GrowthRatePercent:   tt.growth,
			}, forecastNow)

			require.Len(t, f.Products, 1)
			assert.Equal(t, tt.base, f.Products[0].BaseNeed)
			assert.Equal(t, tt.forecast, f.Products[0].ForecastUnits)
			assert.Equal(t, tt.forecast-tt.base, f.Products[0].SafetyStock)
		})
	}
}

func TestForecastInventory_OverstockedNeedsNothing(t *testing.T) {
	orders := []models.NormalizedOrder{
		order(models.PlatformShopify, "a@x.com", day(2024, time.March, 1), 30, "7-Pouch Pack", 3),
	}

	f := ForecastInventory(orders, models.ForecastParams{
		SafetyBufferPercent:   0,
		CurrentInventoryPacks: map[string]int{"7-Pouch Pack": 100},
	}, forecastNow)

	require.Len(t, f.Products, 1)
	assert.Zero(t, f.Products[0].NetOrderRequired)
}

func TestForecastInventory_UnknownPackSize(t *testing.T) {
	orders := []models.NormalizedOrder{
		order(models.PlatformShopify, "a@x.com", day(2024, time.March, 1), 30, "Gift Card", 4),
	}

	f := ForecastInventory(orders, models.DefaultForecastParams(), forecastNow)

	require.Len(t, f.Products, 1)
	assert.Zero(t, f.Products[0].PackSize)
	assert.Zero(t, f.Products[0].ForecastPouches)
	assert.Zero(t, f.Products[0].NetOrderRequired)
}

func TestForecastInventory_NoOrders(t *testing.T) {
	f := ForecastInventory(nil, models.DefaultForecastParams(), forecastNow)

	assert.NotNil(t, f.Products)
	assert.Empty(t, f.Products)
	assert.Zero(t, f.TotalForecastUnits)
}
