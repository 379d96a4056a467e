package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForecastParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  ForecastParams
		wantErr bool
	}{
		{"defaults", DefaultForecastParams(), false},
		{"bounds", ForecastParams{SafetyBufferPercent: 50, GrowthRatePercent: -25}, false},
		{"upper growth", ForecastParams{GrowthRatePercent: 300}, false},
		{"buffer too high", ForecastParams{SafetyBufferPercent: 50.5}, true},
		{"negative buffer", ForecastParams{SafetyBufferPercent: -1}, true},
		{"growth too low", ForecastParams{GrowthRatePercent: -30}, true},
		{"growth too high", ForecastParams{GrowthRatePercent: 301}, true},
		{"NaN buffer", ForecastParams{SafetyBufferPercent: math.NaN()}, true},
		{"NaN growth", ForecastParams{GrowthRatePercent: math.NaN()}, true},
		{"infinite growth", ForecastParams{GrowthRatePercent: math.Inf(1)}, true},
		{"negative inventory", ForecastParams{CurrentInventoryPacks: map[string]int{"28-Pouch Pack": -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestForecastParams_Key(t *testing.T) {
	a := ForecastParams{
		SafetyBufferPercent:   17.5,
		CurrentInventoryPacks: map[string]int{"b": 2, "a": 1},
	}
	b := ForecastParams{
		SafetyBufferPercent:   17.5,
		CurrentInventoryPacks: map[string]int{"a": 1, "b": 2},
	}

	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "17.5|0|a=1|b=2", a.Key())

	b.CurrentInventoryPacks["b"] = 3
	assert.NotEqual(t, a.Key(), b.Key())
	assert.NotEqual(t, DefaultForecastParams().Key(), ForecastParams{SafetyBufferPercent: 10}.Key())
}

func TestNormalizedOrder(t *testing.T) {
	o := NormalizedOrder{Total: 0}
	assert.False(t, o.Paid())
	assert.Empty(t, o.Month())
}
