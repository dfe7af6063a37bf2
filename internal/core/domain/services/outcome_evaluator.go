package services

import (
	"errors"
	"math/rand/v2"

	"dispatchsim/internal/core/domain/model/simulation"
)

// NoiseBoundMinutes bounds the random deviation of a delivery from its estimate.
const NoiseBoundMinutes = 10.0

var ErrNoiseSourceIsRequired = errors.New("noise source is required")

// NoiseSource yields the deviation of an actual delivery from its estimate.
type NoiseSource interface {
	NextOffset(minOffset, maxOffset float64) float64
}

// UniformNoise draws offsets uniformly from [min, max).
type UniformNoise struct{}

func (UniformNoise) NextOffset(minOffset, maxOffset float64) float64 {
	return minOffset + rand.Float64()*(maxOffset-minOffset)
}

// OutcomeEvaluator turns an assignment into a simulated delivery outcome.
type OutcomeEvaluator struct {
	noise NoiseSource
}

func NewOutcomeEvaluator(noise NoiseSource) (*OutcomeEvaluator, error) {
	if noise == nil {
		return nil, ErrNoiseSourceIsRequired
	}
	return &OutcomeEvaluator{noise: noise}, nil
}

// Evaluate simulates the delivery and prices it. The on-time check compares
// against the route's base time, not the fatigue-adjusted estimate.
func (e *OutcomeEvaluator) Evaluate(a Assignment) simulation.OrderOutcome {
	offset := min(max(e.noise.NextOffset(-NoiseBoundMinutes, NoiseBoundMinutes), -NoiseBoundMinutes), NoiseBoundMinutes)
	actual := a.EstimatedMinutes + offset

	base := float64(a.Order.Route.BaseTimeMinutes())
	isOnTime := actual <= base+GracePeriodMinutes

	value := a.Order.Order.ValueRs()
	fuel := FuelCost(a.Order.Route.DistanceKm(), a.Order.Route.TrafficLevel())
	penalty := LatePenalty(actual, base)
	bonus := HighValueBonus(value, isOnTime)

	return simulation.OrderOutcome{
		OrderID:          a.Order.Order.ID(),
		DriverID:         a.Driver.ID(),
		DriverName:       a.Driver.Name(),
		ValueRs:          value,
		FuelCost:         fuel,
		LatePenalty:      penalty,
		HighValueBonus:   bonus,
		Profit:           OrderProfit(value, bonus, penalty, fuel),
		IsOnTime:         isOnTime,
		EstimatedMinutes: a.EstimatedMinutes,
		ActualMinutes:    actual,
		FatigueApplied:   a.FatigueApplied,
	}
}

// EvaluateAll evaluates assignments in plan order.
func (e *OutcomeEvaluator) EvaluateAll(assignments []Assignment) []simulation.OrderOutcome {
	outcomes := make([]simulation.OrderOutcome, 0, len(assignments))
	for _, a := range assignments {
		outcomes = append(outcomes, e.Evaluate(a))
	}
	return outcomes
}
