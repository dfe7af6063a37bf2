package services

import (
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/simulation"
)

// Summarize aggregates per-order outcomes into run KPIs and builds the
// snapshot. Every processed order is an assigned order, so TotalOrders and
// OrdersAssigned are equal; unassigned orders are only listed in the snapshot.
func Summarize(plan AllocationPlan, outcomes []simulation.OrderOutcome, maxHours float64) (simulation.KPIs, simulation.Snapshot) {
	kpis := simulation.KPIs{
		TotalOrders:    len(outcomes),
		OrdersAssigned: len(plan.Assignments),
	}

	for _, o := range outcomes {
		if o.IsOnTime {
			kpis.OnTimeDeliveries++
		}
		kpis.TotalPenalties += o.LatePenalty
		kpis.TotalBonuses += o.HighValueBonus
		kpis.TotalFuelCost += o.FuelCost
		kpis.OverallProfit += o.Profit
	}

	kpis.TotalPenalties = kernel.RoundCurrency(kpis.TotalPenalties)
	kpis.TotalBonuses = kernel.RoundCurrency(kpis.TotalBonuses)
	kpis.TotalFuelCost = kernel.RoundCurrency(kpis.TotalFuelCost)
	kpis.OverallProfit = kernel.RoundCurrency(kpis.OverallProfit)
	kpis.EfficiencyScore = EfficiencyScore(kpis.OnTimeDeliveries, kpis.TotalOrders)

	allocations := make([]simulation.Allocation, 0, len(plan.Assignments))
	for _, a := range plan.Assignments {
		allocations = append(allocations, a.Allocation())
	}

	workload := make([]simulation.DriverWorkload, 0, len(plan.Loads))
	for _, l := range plan.Loads {
		workload = append(workload, simulation.DriverWorkload{
			DriverID:              l.Driver.ID(),
			DriverName:            l.Driver.Name(),
			OrdersAssigned:        len(l.OrderIDs),
			HoursUtilized:         kernel.RoundCurrency(l.AccumulatedHours),
			UtilizationPercentage: kernel.RoundCurrency(l.AccumulatedHours / maxHours * 100),
			WasFatigued:           l.Fatigued,
		})
	}

	snapshot := simulation.Snapshot{
		Allocations:      allocations,
		ProcessedOrders:  outcomes,
		DriverWorkload:   workload,
		UnassignedOrders: append([]string(nil), plan.Unassigned...),
	}

	return kpis, snapshot
}
