package queries

import (
	"context"

	"dispatchsim/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSimulationHistoryQueryHandler reads run summaries from simulation_runs.
// The jsonb snapshot is never loaded.
type GetSimulationHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetSimulationHistoryQueryHandler(db *gorm.DB) GetSimulationHistoryQueryHandler {
	return GetSimulationHistoryQueryHandler{db: db}
}

// Handle returns up to query.Limit() runs, newest first.
func (h GetSimulationHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetSimulationHistoryQuery,
) ([]SimulationRunSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	runs := make([]SimulationRunSummary, 0, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			available_drivers,
			route_start_time,
			max_hours_per_driver,
			total_orders,
			orders_assigned,
			on_time_deliveries,
			total_penalties,
			total_bonuses,
			total_fuel_cost,
			overall_profit,
			efficiency_score,
			created_at
		FROM simulation_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var run SimulationRunSummary
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&run.AvailableDrivers,
			&run.RouteStartTime,
			&run.MaxHoursPerDriver,
			&run.TotalOrders,
			&run.OrdersAssigned,
			&run.OnTimeDeliveries,
			&run.TotalPenalties,
			&run.TotalBonuses,
			&run.TotalFuelCost,
			&run.OverallProfit,
			&run.EfficiencyScore,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		runID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		run.ID = runID

		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
