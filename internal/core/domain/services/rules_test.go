package services_test

import (
	"testing"

	"dispatchsim/internal/core/domain/model/route"
	"dispatchsim/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestFuelCost(t *testing.T) {
	assert.InDelta(t, 50.0, services.FuelCost(10, route.Low), 1e-9)
	assert.InDelta(t, 50.0, services.FuelCost(10, route.Medium), 1e-9)
	assert.InDelta(t, 70.0, services.FuelCost(10, route.High), 1e-9)
	assert.InDelta(t, 0.0, services.FuelCost(0, route.High), 1e-9)

	for _, d := range []float64{0, 0.5, 1, 3.33, 12.75, 100, 987.65} {
		assert.InDelta(t, services.FuelCost(d, route.Low)+2*d, services.FuelCost(d, route.High), 0.011, "distance %v", d)
	}
}

func TestLatePenalty(t *testing.T) {
	testCases := []struct {
		actual, base float64
		want         float64
	}{
		{30, 30, 0},
		{40, 30, 0},
		{40.01, 30, 50},
		{15, 30, 0},
		{100, 30, 50},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.want, services.LatePenalty(tc.actual, tc.base), 1e-9, "actual %v base %v", tc.actual, tc.base)
	}
}

func TestHighValueBonus(t *testing.T) {
	assert.InDelta(t, 150.0, services.HighValueBonus(1500, true), 1e-9)
	assert.InDelta(t, 0.0, services.HighValueBonus(1500, false), 1e-9)
	assert.InDelta(t, 0.0, services.HighValueBonus(800, true), 1e-9)
	assert.InDelta(t, 0.0, services.HighValueBonus(1000, true), 1e-9)
	assert.InDelta(t, 123.46, services.HighValueBonus(1234.56, true), 1e-9)
}

func TestFatigueAdjustedTime(t *testing.T) {
	assert.Equal(t, 78.0, services.FatigueAdjustedTime(60, true))
	assert.Equal(t, 60.0, services.FatigueAdjustedTime(60, false))
	assert.Equal(t, 39.0, services.FatigueAdjustedTime(30, true))
}

func TestOrderProfit(t *testing.T) {
	assert.InDelta(t, 1020.0, services.OrderProfit(1000, 100, 50, 30), 1e-9)
	assert.InDelta(t, -30.0, services.OrderProfit(100, 0, 50, 80), 1e-9)
}

func TestEfficiencyScore(t *testing.T) {
	assert.Equal(t, 0.0, services.EfficiencyScore(0, 0))
	assert.Equal(t, 100.0, services.EfficiencyScore(10, 10))
	assert.Equal(t, 80.0, services.EfficiencyScore(8, 10))
	assert.Equal(t, 66.67, services.EfficiencyScore(2, 3))
}
