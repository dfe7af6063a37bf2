package services

import (
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/route"
)

const (
	FuelCostPerKm             = 5.0
	HighTrafficSurchargePerKm = 2.0

	// GracePeriodMinutes is how late a delivery may be before it is penalised.
	GracePeriodMinutes = 10.0
	LatePenaltyRs      = 50.0

	HighValueThresholdRs = 1000.0
	HighValueBonusRate   = 0.10

	FatigueSlowdownFactor = 1.3
)

// FuelCost is 5 Rs/km, plus 2 Rs/km on High traffic routes.
func FuelCost(distanceKm float64, traffic route.TrafficLevel) float64 {
	cost := distanceKm * FuelCostPerKm
	if traffic == route.High {
		cost += distanceKm * HighTrafficSurchargePerKm
	}
	return kernel.RoundCurrency(cost)
}

// LatePenalty is charged when the delivery took longer than the base time
// plus the grace period.
func LatePenalty(actualMinutes, baseMinutes float64) float64 {
	if actualMinutes > baseMinutes+GracePeriodMinutes {
		return LatePenaltyRs
	}
	return 0
}

// HighValueBonus pays 10% of the order value for on-time orders above 1000 Rs.
func HighValueBonus(valueRs float64, isOnTime bool) float64 {
	if valueRs > HighValueThresholdRs && isOnTime {
		return kernel.RoundCurrency(valueRs * HighValueBonusRate)
	}
	return 0
}

// FatigueAdjustedTime slows fatigued drivers down by 30%.
func FatigueAdjustedTime(baseMinutes float64, isFatigued bool) float64 {
	if isFatigued {
		return kernel.RoundCurrency(baseMinutes * FatigueSlowdownFactor)
	}
	return baseMinutes
}

// OrderProfit may be negative.
func OrderProfit(valueRs, bonus, penalty, fuelCost float64) float64 {
	return kernel.RoundCurrency(valueRs + bonus - penalty - fuelCost)
}

// EfficiencyScore is the on-time percentage, 0 when nothing was processed.
func EfficiencyScore(onTimeCount, totalCount int) float64 {
	if totalCount <= 0 {
		return 0
	}
	return kernel.RoundCurrency(float64(onTimeCount) / float64(totalCount) * 100)
}
