// Package simulationrepo stores the simulation run audit log. KPIs are kept
// in columns for querying, the decision snapshot as a jsonb document.
package simulationrepo

import (
	"encoding/json"
	"time"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/simulation"

	"github.com/google/uuid"
)

// SimulationRunDTO is the simulation_runs table row.
type SimulationRunDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	AvailableDrivers  int       `gorm:"not null"`
	RouteStartTime    string    `gorm:"type:varchar(5);not null"`
	MaxHoursPerDriver float64   `gorm:"not null"`
	TotalOrders       int       `gorm:"not null"`
	OrdersAssigned    int       `gorm:"not null"`
	OnTimeDeliveries  int       `gorm:"not null"`
	TotalPenalties    float64   `gorm:"not null"`
	TotalBonuses      float64   `gorm:"not null"`
	TotalFuelCost     float64   `gorm:"not null"`
	OverallProfit     float64   `gorm:"not null"`
	EfficiencyScore   float64   `gorm:"not null"`
	SimulationData    []byte    `gorm:"type:jsonb;not null"`
	CreatedAt         time.Time `gorm:"not null;index:idx_simulation_runs_created_at,sort:desc"`
}

func (SimulationRunDTO) TableName() string {
	return "simulation_runs"
}

// SnapshotDocument is the JSON shape of simulation_data.
type SnapshotDocument struct {
	Allocations      []AllocationDocument     `json:"allocations"`
	ProcessedOrders  []OrderOutcomeDocument   `json:"processed_orders"`
	DriverWorkload   []DriverWorkloadDocument `json:"driver_workload"`
	UnassignedOrders []string                 `json:"unassigned_orders"`
}

type AllocationDocument struct {
	OrderID        string  `json:"order_id"`
	DriverID       string  `json:"driver_id"`
	DriverName     string  `json:"driver_name"`
	EstimatedTime  float64 `json:"estimated_time"`
	FatigueApplied bool    `json:"fatigue_applied"`
}

type OrderOutcomeDocument struct {
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

type DriverWorkloadDocument struct {
	DriverID              string  `json:"driver_id"`
	DriverName            string  `json:"driver_name"`
	OrdersAssigned        int     `json:"orders_assigned"`
	HoursUtilized         float64 `json:"hours_utilized"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
	WasFatigued           bool    `json:"was_fatigued"`
}

// NewSnapshotDocument maps a snapshot to its stored JSON shape. The S3
// archive writes the same document.
func NewSnapshotDocument(s simulation.Snapshot) SnapshotDocument {
	doc := SnapshotDocument{
		Allocations:      make([]AllocationDocument, 0, len(s.Allocations)),
		ProcessedOrders:  make([]OrderOutcomeDocument, 0, len(s.ProcessedOrders)),
		DriverWorkload:   make([]DriverWorkloadDocument, 0, len(s.DriverWorkload)),
		UnassignedOrders: append([]string{}, s.UnassignedOrders...),
	}
	for _, a := range s.Allocations {
		doc.Allocations = append(doc.Allocations, AllocationDocument{
			OrderID:        a.OrderID,
			DriverID:       a.DriverID.String(),
			DriverName:     a.DriverName,
			EstimatedTime:  a.EstimatedMinutes,
			FatigueApplied: a.FatigueApplied,
		})
	}
	for _, o := range s.ProcessedOrders {
		doc.ProcessedOrders = append(doc.ProcessedOrders, OrderOutcomeDocument{
			OrderID:        o.OrderID,
			DriverID:       o.DriverID.String(),
			DriverName:     o.DriverName,
			ValueRs:        o.ValueRs,
			FuelCost:       o.FuelCost,
			LatePenalty:    o.LatePenalty,
			HighValueBonus: o.HighValueBonus,
			Profit:         o.Profit,
			IsOnTime:       o.IsOnTime,
			EstimatedTime:  o.EstimatedMinutes,
			ActualTime:     o.ActualMinutes,
			FatigueApplied: o.FatigueApplied,
		})
	}
	for _, w := range s.DriverWorkload {
		doc.DriverWorkload = append(doc.DriverWorkload, DriverWorkloadDocument{
			DriverID:              w.DriverID.String(),
			DriverName:            w.DriverName,
			OrdersAssigned:        w.OrdersAssigned,
			HoursUtilized:         w.HoursUtilized,
			UtilizationPercentage: w.UtilizationPercentage,
			WasFatigued:           w.WasFatigued,
		})
	}
	return doc
}

func (doc SnapshotDocument) toDomain() (simulation.Snapshot, error) {
	s := simulation.Snapshot{
		Allocations:      make([]simulation.Allocation, 0, len(doc.Allocations)),
		ProcessedOrders:  make([]simulation.OrderOutcome, 0, len(doc.ProcessedOrders)),
		DriverWorkload:   make([]simulation.DriverWorkload, 0, len(doc.DriverWorkload)),
		UnassignedOrders: append([]string{}, doc.UnassignedOrders...),
	}
	for _, a := range doc.Allocations {
		id, err := kernel.UUIDFromString(a.DriverID)
		if err != nil {
			return simulation.Snapshot{}, err
		}
		s.Allocations = append(s.Allocations, simulation.Allocation{
			OrderID:          a.OrderID,
			DriverID:         id,
			DriverName:       a.DriverName,
			EstimatedMinutes: a.EstimatedTime,
			FatigueApplied:   a.FatigueApplied,
		})
	}
	for _, o := range doc.ProcessedOrders {
		id, err := kernel.UUIDFromString(o.DriverID)
		if err != nil {
			return simulation.Snapshot{}, err
		}
		s.ProcessedOrders = append(s.ProcessedOrders, simulation.OrderOutcome{
			OrderID:          o.OrderID,
			DriverID:         id,
			DriverName:       o.DriverName,
			ValueRs:          o.ValueRs,
			FuelCost:         o.FuelCost,
			LatePenalty:      o.LatePenalty,
			HighValueBonus:   o.HighValueBonus,
			Profit:           o.Profit,
			IsOnTime:         o.IsOnTime,
			EstimatedMinutes: o.EstimatedTime,
			ActualMinutes:    o.ActualTime,
			FatigueApplied:   o.FatigueApplied,
		})
	}
	for _, w := range doc.DriverWorkload {
		id, err := kernel.UUIDFromString(w.DriverID)
		if err != nil {
			return simulation.Snapshot{}, err
		}
		s.DriverWorkload = append(s.DriverWorkload, simulation.DriverWorkload{
			DriverID:              id,
			DriverName:            w.DriverName,
			OrdersAssigned:        w.OrdersAssigned,
			HoursUtilized:         w.HoursUtilized,
			UtilizationPercentage: w.UtilizationPercentage,
			WasFatigued:           w.WasFatigued,
		})
	}
	return s, nil
}

func fromDomain(run *simulation.Run) (SimulationRunDTO, error) {
	data, err := json.Marshal(NewSnapshotDocument(run.Snapshot()))
	if err != nil {
		return SimulationRunDTO{}, err
	}

	params := run.Parameters()
	kpis := run.KPIs()
	return SimulationRunDTO{
		ID:                run.ID().Bytes(),
		AvailableDrivers:  params.AvailableDrivers(),
		RouteStartTime:    params.RouteStartTime(),
		MaxHoursPerDriver: params.MaxHoursPerDriver(),
		TotalOrders:       kpis.TotalOrders,
		OrdersAssigned:    kpis.OrdersAssigned,
		OnTimeDeliveries:  kpis.OnTimeDeliveries,
		TotalPenalties:    kpis.TotalPenalties,
		TotalBonuses:      kpis.TotalBonuses,
		TotalFuelCost:     kpis.TotalFuelCost,
		OverallProfit:     kpis.OverallProfit,
		EfficiencyScore:   kpis.EfficiencyScore,
		SimulationData:    data,
		CreatedAt:         run.CreatedAt(),
	}, nil
}

func toDomain(dto SimulationRunDTO) (*simulation.Run, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	params, err := simulation.NewParameters(dto.AvailableDrivers, dto.RouteStartTime, dto.MaxHoursPerDriver)
	if err != nil {
		return nil, err
	}

	var doc SnapshotDocument
	if err = json.Unmarshal(dto.SimulationData, &doc); err != nil {
		return nil, err
	}
	snapshot, err := doc.toDomain()
	if err != nil {
		return nil, err
	}

	kpis := simulation.KPIs{
		TotalOrders:      dto.TotalOrders,
		OrdersAssigned:   dto.OrdersAssigned,
		OnTimeDeliveries: dto.OnTimeDeliveries,
		TotalPenalties:   dto.TotalPenalties,
		TotalBonuses:     dto.TotalBonuses,
		TotalFuelCost:    dto.TotalFuelCost,
		OverallProfit:    dto.OverallProfit,
		EfficiencyScore:  dto.EfficiencyScore,
	}

	return simulation.RestoreRun(id, params, kpis, snapshot, dto.CreatedAt)
}
