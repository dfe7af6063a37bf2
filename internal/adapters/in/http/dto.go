package http

import "time"

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type ListResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	Count   int  `json:"count"`
}

type RunSimulationRequest struct {
	AvailableDrivers  int     `json:"available_drivers"`
	RouteStartTime    string  `json:"route_start_time"`
	MaxHoursPerDriver float64 `json:"max_hours_per_driver"`
}

type RunSimulationResponse struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message"`
	SimulationID string            `json:"simulation_id"`
	Results      SimulationResults `json:"results"`
}

type SimulationResults struct {
	TotalOrders       int                  `json:"total_orders"`
	OrdersAssigned    int                  `json:"orders_assigned"`
	OnTimeDeliveries  int                  `json:"on_time_deliveries"`
	EfficiencyScore   float64              `json:"efficiency_score"`
	FinancialSummary  FinancialSummary     `json:"financial_summary"`
	DriverUtilization []DriverUtilization  `json:"driver_utilization"`
	ProcessedOrders   []ProcessedOrder     `json:"processed_orders"`
	Allocations       []AllocationResponse `json:"allocations"`
	UnassignedOrders  []string             `json:"unassigned_orders"`
}

type FinancialSummary struct {
	TotalPenalties float64 `json:"total_penalties"`
	TotalBonuses   float64 `json:"total_bonuses"`
	TotalFuelCost  float64 `json:"total_fuel_cost"`
	OverallProfit  float64 `json:"overall_profit"`
}

type DriverUtilization struct {
	DriverID              string  `json:"driver_id"`
	DriverName            string  `json:"driver_name"`
	OrdersAssigned        int     `json:"orders_assigned"`
	HoursUtilized         float64 `json:"hours_utilized"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
	WasFatigued           bool    `json:"was_fatigued"`
}

type ProcessedOrder struct {
	OrderID        string  `json:"order_id"`
	DriverID       string  `json:"driver_id"`
	DriverName     string  `json:"driver_name"`
	ValueRs        float64 `json:"value_rs"`
	FuelCost       float64 `json:"fuel_cost"`
	LatePenalty    float64 `json:"late_penalty"`
	HighValueBonus float64 `json:"high_value_bonus"`
	Profit         float64 `json:"profit"`
	IsOnTime       bool    `json:"is_on_time"`
	EstimatedTime  float64 `json:"estimated_time"`
	ActualTime     float64 `json:"actual_time"`
	FatigueApplied bool    `json:"fatigue_applied"`
}

type AllocationResponse struct {
	OrderID        string  `json:"order_id"`
	DriverID       string  `json:"driver_id"`
	DriverName     string  `json:"driver_name"`
	EstimatedTime  float64 `json:"estimated_time"`
	FatigueApplied bool    `json:"fatigue_applied"`
}

type SimulationRunResponse struct {
	Success bool              `json:"success"`
	Data    SimulationRunData `json:"data"`
}

type SimulationRunData struct {
	ID                string            `json:"id"`
	AvailableDrivers  int               `json:"available_drivers"`
	RouteStartTime    string            `json:"route_start_time"`
	MaxHoursPerDriver float64           `json:"max_hours_per_driver"`
	CreatedAt         time.Time         `json:"created_at"`
	Results           SimulationResults `json:"results"`
}

type SimulationSummary struct {
	ID                string    `json:"id"`
	AvailableDrivers  int       `json:"available_drivers"`
	RouteStartTime    string    `json:"route_start_time"`
	MaxHoursPerDriver float64   `json:"max_hours_per_driver"`
	TotalOrders       int       `json:"total_orders"`
	OrdersAssigned    int       `json:"orders_assigned"`
	OnTimeDeliveries  int       `json:"on_time_deliveries"`
	TotalPenalties    float64   `json:"total_penalties"`
	TotalBonuses      float64   `json:"total_bonuses"`
	TotalFuelCost     float64   `json:"total_fuel_cost"`
	OverallProfit     float64   `json:"overall_profit"`
	EfficiencyScore   float64   `json:"efficiency_score"`
	CreatedAt         time.Time `json:"created_at"`
}

type Driver struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Status            string  `json:"status"`
	CurrentShiftHours float64 `json:"current_shift_hours"`
	Past7DayWorkHours float64 `json:"past_7_day_work_hours"`
	IsFatigued        bool    `json:"is_fatigued"`
}

type NewDriver struct {
	Name              string  `json:"name"`
	CurrentShiftHours float64 `json:"current_shift_hours"`
	Past7DayWorkHours float64 `json:"past_7_day_work_hours"`
}

type CreatedResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type NewRoute struct {
	RouteID         string  `json:"route_id"`
	DistanceKm      float64 `json:"distance_km"`
	TrafficLevel    string  `json:"traffic_level"`
	BaseTimeMinutes int     `json:"base_time_minutes"`
}

type NewOrder struct {
	OrderID           string    `json:"order_id"`
	ValueRs           float64   `json:"value_rs"`
	RouteID           string    `json:"route_id"`
	DeliveryTimestamp time.Time `json:"delivery_timestamp"`
}

type PendingOrder struct {
	OrderID           string    `json:"order_id"`
	ValueRs           float64   `json:"value_rs"`
	DeliveryTimestamp time.Time `json:"delivery_timestamp"`
	RouteID           string    `json:"route_id"`
	DistanceKm        float64   `json:"distance_km"`
	TrafficLevel      string    `json:"traffic_level"`
	BaseTimeMinutes   int       `json:"base_time_minutes"`
}
