package queries

import (
	"errors"
	"time"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/guard"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

var (
	ErrGetSimulationHistoryQueryIsNotConstructed = errors.New(
		"GetSimulationHistoryQuery must be created via NewGetSimulationHistoryQuery constructor",
	)
)

// GetSimulationHistoryQuery lists the most recent simulation runs.
//
// Example:
//
//	query, err := NewGetSimulationHistoryQuery(0) // DefaultHistoryLimit
//	runs, err := NewGetSimulationHistoryQueryHandler(db).Handle(ctx, query)
type GetSimulationHistoryQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetSimulationHistoryQuery accepts a limit in [1, MaxHistoryLimit]; zero
// selects DefaultHistoryLimit.
func NewGetSimulationHistoryQuery(limit int) (GetSimulationHistoryQuery, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return GetSimulationHistoryQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxHistoryLimit)
	}

	return GetSimulationHistoryQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSimulationHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetSimulationHistoryQueryIsNotConstructed)
}

func (q GetSimulationHistoryQuery) Limit() int {
	return q.limit
}

// SimulationRunSummary is one history row: parameters and KPIs, no snapshot.
type SimulationRunSummary struct {
	ID                kernel.UUID
	AvailableDrivers  int
	RouteStartTime    string
	MaxHoursPerDriver float64
	TotalOrders       int
	OrdersAssigned    int
	OnTimeDeliveries  int
	TotalPenalties    float64
	TotalBonuses      float64
	TotalFuelCost     float64
	OverallProfit     float64
	EfficiencyScore   float64
	CreatedAt         time.Time
}
