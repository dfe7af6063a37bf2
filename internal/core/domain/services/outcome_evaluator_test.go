package services_test

import (
	"testing"

	"dispatchsim/internal/core/domain/model/driver"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/domain/model/route"
	"dispatchsim/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutcomeEvaluator(t *testing.T) {
	_, err := services.NewOutcomeEvaluator(nil)

	require.ErrorIs(t, err, services.ErrNoiseSourceIsRequired)
}

func TestOutcomeEvaluator_Evaluate(t *testing.T) {
	assignment := func(t *testing.T, d *driver.Driver, ro order.RoutedOrder) services.Assignment {
		plan, err := services.NewAllocator().Allocate([]*driver.Driver{d}, []order.RoutedOrder{ro}, 8)
		require.NoError(t, err)
		require.Len(t, plan.Assignments, 1)
		return plan.Assignments[0]
	}

	t.Run("on time high value order on high traffic", func(t *testing.T) {
		evaluator, err := services.NewOutcomeEvaluator(fixedNoise(10))
		require.NoError(t, err)
		ro := newRoutedOrderOn(t, "ORD-1", 1500, 30, 10, route.High, baseTime)

		outcome := evaluator.Evaluate(assignment(t, newDriver(t, "Asha", 0, 0), ro))

		assert.Equal(t, "ORD-1", outcome.OrderID)
		assert.Equal(t, "Asha", outcome.DriverName)
		assert.InDelta(t, 40.0, outcome.ActualMinutes, 1e-9)
		assert.True(t, outcome.IsOnTime)
		assert.InDelta(t, 70.0, outcome.FuelCost, 1e-9)
		assert.InDelta(t, 150.0, outcome.HighValueBonus, 1e-9)
		assert.InDelta(t, 0.0, outcome.LatePenalty, 1e-9)
		assert.InDelta(t, 1580.0, outcome.Profit, 1e-9)
	})

	t.Run("fatigued driver is late against the base time", func(t *testing.T) {
		evaluator, err := services.NewOutcomeEvaluator(fixedNoise(10))
		require.NoError(t, err)
		ro := newRoutedOrderOn(t, "ORD-1", 1500, 30, 10, route.Low, baseTime)

		outcome := evaluator.Evaluate(assignment(t, newDriver(t, "Tired", 0, 70), ro))

		assert.True(t, outcome.FatigueApplied)
		assert.InDelta(t, 39.0, outcome.EstimatedMinutes, 1e-9)
		assert.InDelta(t, 49.0, outcome.ActualMinutes, 1e-9)
		assert.False(t, outcome.IsOnTime)
		assert.InDelta(t, 50.0, outcome.LatePenalty, 1e-9)
		assert.InDelta(t, 0.0, outcome.HighValueBonus, 1e-9)
		assert.InDelta(t, 1400.0, outcome.Profit, 1e-9)
	})

	t.Run("fatigued driver can still be on time thanks to noise", func(t *testing.T) {
		evaluator, err := services.NewOutcomeEvaluator(fixedNoise(-10))
		require.NoError(t, err)
		ro := newRoutedOrderOn(t, "ORD-1", 500, 60, 10, route.Low, baseTime)

		outcome := evaluator.Evaluate(assignment(t, newDriver(t, "Tired", 0, 70), ro))

		assert.InDelta(t, 68.0, outcome.ActualMinutes, 1e-9)
		assert.True(t, outcome.IsOnTime)
	})

	t.Run("offset is clamped to the noise bound", func(t *testing.T) {
		evaluator, err := services.NewOutcomeEvaluator(fixedNoise(45))
		require.NoError(t, err)
		ro := newRoutedOrder(t, "ORD-1", 500, 60)

		outcome := evaluator.Evaluate(assignment(t, newDriver(t, "Asha", 0, 0), ro))

		assert.InDelta(t, 70.0, outcome.ActualMinutes, 1e-9)
	})
}

func TestUniformNoise_StaysInBounds(t *testing.T) {
	noise := services.UniformNoise{}

	for i := 0; i < 1000; i++ {
		offset := noise.NextOffset(-services.NoiseBoundMinutes, services.NoiseBoundMinutes)
		assert.GreaterOrEqual(t, offset, -services.NoiseBoundMinutes)
		assert.Less(t, offset, services.NoiseBoundMinutes)
	}
}
