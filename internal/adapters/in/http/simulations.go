package http

import (
	"errors"
	"net/http"
	"strconv"

	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/application/usecases/queries"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/simulation"
	"dispatchsim/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RunSimulation handles POST /api/v1/simulations.
//
// Rejections answer 400 and change nothing. A rolled back run answers 503
// and may be retried.
func (s *Server) RunSimulation(ctx echo.Context) error {
	var req RunSimulationRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewRunSimulationCommand(req.AvailableDrivers, req.RouteStartTime, req.MaxHoursPerDriver)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	run, err := s.handlers.RunSimulation.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
	case commands.IsRejection(err):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, commands.ErrPersistenceFailure):
		return ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Simulation failed", Details: err.Error()})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Simulation failed", Details: err.Error()})
	}

	return ctx.JSON(http.StatusOK, RunSimulationResponse{
		Success:      true,
		Message:      "Simulation completed successfully",
		SimulationID: run.ID().String(),
		Results:      newSimulationResults(run),
	})
}

// GetSimulationHistory handles GET /api/v1/simulations?limit=N.
func (s *Server) GetSimulationHistory(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer"})
		}
		limit = parsed
	}

	query, err := queries.NewGetSimulationHistoryQuery(limit)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	runs, err := s.handlers.SimulationHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch simulation history"})
	}

	data := make([]SimulationSummary, len(runs))
	for i, r := range runs {
		data[i] = SimulationSummary{
			ID:                r.ID.String(),
			AvailableDrivers:  r.AvailableDrivers,
			RouteStartTime:    r.RouteStartTime,
			MaxHoursPerDriver: r.MaxHoursPerDriver,
			TotalOrders:       r.TotalOrders,
			OrdersAssigned:    r.OrdersAssigned,
			OnTimeDeliveries:  r.OnTimeDeliveries,
			TotalPenalties:    r.TotalPenalties,
			TotalBonuses:      r.TotalBonuses,
			TotalFuelCost:     r.TotalFuelCost,
			OverallProfit:     r.OverallProfit,
			EfficiencyScore:   r.EfficiencyScore,
			CreatedAt:         r.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, ListResponse[SimulationSummary]{Success: true, Data: data, Count: len(data)})
}

// GetSimulationRun handles GET /api/v1/simulations/:id.
func (s *Server) GetSimulationRun(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid simulation id"})
	}

	query, err := queries.NewGetSimulationRunQuery(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	run, err := s.handlers.SimulationRun.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch simulation"})
	}

	params := run.Parameters()
	return ctx.JSON(http.StatusOK, SimulationRunResponse{
		Success: true,
		Data: SimulationRunData{
			ID:                run.ID().String(),
			AvailableDrivers:  params.AvailableDrivers(),
			RouteStartTime:    params.RouteStartTime(),
			MaxHoursPerDriver: params.MaxHoursPerDriver(),
			CreatedAt:         run.CreatedAt(),
			Results:           newSimulationResults(run),
		},
	})
}

func newSimulationResults(run *simulation.Run) SimulationResults {
	kpis := run.KPIs()
	snapshot := run.Snapshot()

	results := SimulationResults{
		TotalOrders:      kpis.TotalOrders,
		OrdersAssigned:   kpis.OrdersAssigned,
		OnTimeDeliveries: kpis.OnTimeDeliveries,
		EfficiencyScore:  kpis.EfficiencyScore,
		FinancialSummary: FinancialSummary{
			TotalPenalties: kpis.TotalPenalties,
			TotalBonuses:   kpis.TotalBonuses,
			TotalFuelCost:  kpis.TotalFuelCost,
			OverallProfit:  kpis.OverallProfit,
		},
		DriverUtilization: make([]DriverUtilization, len(snapshot.DriverWorkload)),
		ProcessedOrders:   make([]ProcessedOrder, len(snapshot.ProcessedOrders)),
		Allocations:       make([]AllocationResponse, len(snapshot.Allocations)),
		UnassignedOrders:  append([]string{}, snapshot.UnassignedOrders...),
	}

	for i, w := range snapshot.DriverWorkload {
		results.DriverUtilization[i] = DriverUtilization{
			DriverID:              w.DriverID.String(),
			DriverName:            w.DriverName,
			OrdersAssigned:        w.OrdersAssigned,
			HoursUtilized:         w.HoursUtilized,
			UtilizationPercentage: w.UtilizationPercentage,
			WasFatigued:           w.WasFatigued,
		}
	}

	for i, o := range snapshot.ProcessedOrders {
		results.ProcessedOrders[i] = ProcessedOrder{
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
		}
	}

	for i, a := range snapshot.Allocations {
		results.Allocations[i] = AllocationResponse{
			OrderID:        a.OrderID,
			DriverID:       a.DriverID.String(),
			DriverName:     a.DriverName,
			EstimatedTime:  a.EstimatedMinutes,
			FatigueApplied: a.FatigueApplied,
		}
	}

	return results
}
