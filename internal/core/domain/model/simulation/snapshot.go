package simulation

import "dispatchsim/internal/core/domain/model/kernel"

// Allocation pairs one order with one driver for a run.
type Allocation struct {
	OrderID          string
	DriverID         kernel.UUID
	DriverName       string
	EstimatedMinutes float64
	FatigueApplied   bool
}

// OrderOutcome is the simulated delivery result and financials of one
// allocated order.
type OrderOutcome struct {
	OrderID          string
	DriverID         kernel.UUID
	DriverName       string
	ValueRs          float64
	FuelCost         float64
	LatePenalty      float64
	HighValueBonus   float64
	Profit           float64
	IsOnTime         bool
	EstimatedMinutes float64
	ActualMinutes    float64
	FatigueApplied   bool
}

// DriverWorkload is the utilization of one selected driver after a run.
// HoursUtilized includes the hours the driver had before the run started.
type DriverWorkload struct {
	DriverID              kernel.UUID
	DriverName            string
	OrdersAssigned        int
	HoursUtilized         float64
	UtilizationPercentage float64
	WasFatigued           bool
}

// KPIs are the aggregated results of a run.
type KPIs struct {
	TotalOrders      int
	OrdersAssigned   int
	OnTimeDeliveries int
	TotalPenalties   float64
	TotalBonuses     float64
	TotalFuelCost    float64
	OverallProfit    float64
	EfficiencyScore  float64
}

// Snapshot records every decision a run made.
type Snapshot struct {
	Allocations      []Allocation
	ProcessedOrders  []OrderOutcome
	DriverWorkload   []DriverWorkload
	UnassignedOrders []string
}
