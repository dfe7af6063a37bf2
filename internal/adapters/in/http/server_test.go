package http_test

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "dispatchsim/internal/adapters/in/http"
	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/application/usecases/queries"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/simulation"
	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSimulationRunner struct{ mock.Mock }

func (m *MockSimulationRunner) Handle(ctx context.Context, cmd commands.RunSimulationCommand) (*simulation.Run, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulation.Run), args.Error(1)
}

type MockHistoryReader struct{ mock.Mock }

func (m *MockHistoryReader) Handle(ctx context.Context, q queries.GetSimulationHistoryQuery) ([]queries.SimulationRunSummary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.SimulationRunSummary), args.Error(1)
}

type MockRunReader struct{ mock.Mock }

func (m *MockRunReader) Handle(ctx context.Context, q queries.GetSimulationRunQuery) (*simulation.Run, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulation.Run), args.Error(1)
}

type MockDriverCreator struct{ mock.Mock }

func (m *MockDriverCreator) Handle(ctx context.Context, cmd commands.CreateDriverCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func newRun(t *testing.T) *simulation.Run {
	t.Helper()
	params, err := simulation.NewParameters(2, "09:00", 8)
	require.NoError(t, err)
	driverID := kernel.NewUUID()
	run, err := simulation.NewRun(params,
		simulation.KPIs{TotalOrders: 1, OrdersAssigned: 1, OnTimeDeliveries: 1, OverallProfit: 1600, EfficiencyScore: 100},
		simulation.Snapshot{
			ProcessedOrders:  []simulation.OrderOutcome{{OrderID: "ORD-1", DriverID: driverID, DriverName: "Asha", Profit: 1600, IsOnTime: true}},
			DriverWorkload:   []simulation.DriverWorkload{{DriverID: driverID, DriverName: "Asha", OrdersAssigned: 1, HoursUtilized: 5}},
			UnassignedOrders: []string{"ORD-3"},
		},
		time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return run
}

func serve(t *testing.T, handlers httpadapter.Handlers, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	httpadapter.NewServer(handlers, nil).RegisterRoutes(e)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_RunSimulation_Success(t *testing.T) {
	run := newRun(t)
	runner := new(MockSimulationRunner)
	runner.On("Handle", mock.Anything, mock.AnythingOfType("commands.RunSimulationCommand")).Return(run, nil).Once()

	rec := serve(t, httpadapter.Handlers{RunSimulation: runner}, nethttp.MethodPost, "/api/v1/simulations",
		`{"available_drivers":2,"route_start_time":"09:00","max_hours_per_driver":8}`)

	require.Equal(t, nethttp.StatusOK, rec.Code)
	var resp httpadapter.RunSimulationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, run.ID().String(), resp.SimulationID)
	assert.InDelta(t, 1600.0, resp.Results.FinancialSummary.OverallProfit, 1e-9)
	assert.Equal(t, []string{"ORD-3"}, resp.Results.UnassignedOrders)
	require.Len(t, resp.Results.DriverUtilization, 1)
	assert.Equal(t, "Asha", resp.Results.DriverUtilization[0].DriverName)
	runner.AssertExpectations(t)
}

func TestServer_RunSimulation_InvalidInput(t *testing.T) {
	runner := new(MockSimulationRunner)

	rec := serve(t, httpadapter.Handlers{RunSimulation: runner}, nethttp.MethodPost, "/api/v1/simulations",
		`{"available_drivers":0,"route_start_time":"09:00","max_hours_per_driver":8}`)

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	runner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_RunSimulation_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"insufficient drivers", &services.InsufficientDriversError{Requested: 5, Available: 3}, nethttp.StatusBadRequest},
		{"no pending orders", commands.ErrNoPendingOrders, nethttp.StatusBadRequest},
		{"persistence failure", commands.NewPersistenceError(simulation.Persisting, errors.New("deadlock")), nethttp.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), nethttp.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			runner := new(MockSimulationRunner)
			runner.On("Handle", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			rec := serve(t, httpadapter.Handlers{RunSimulation: runner}, nethttp.MethodPost, "/api/v1/simulations",
				`{"available_drivers":5,"route_start_time":"09:00","max_hours_per_driver":8}`)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestServer_RunSimulation_InsufficientDriversMessage(t *testing.T) {
	runner := new(MockSimulationRunner)
	runner.On("Handle", mock.Anything, mock.Anything).
		Return(nil, &services.InsufficientDriversError{Requested: 5, Available: 3}).Once()

	rec := serve(t, httpadapter.Handlers{RunSimulation: runner}, nethttp.MethodPost, "/api/v1/simulations",
		`{"available_drivers":5,"route_start_time":"09:00","max_hours_per_driver":8}`)

	var resp httpadapter.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "only 3 drivers are available, but 5 were requested", resp.Error)
}

func TestServer_GetSimulationHistory(t *testing.T) {
	history := new(MockHistoryReader)
	history.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSimulationHistoryQuery) bool {
		return q.Limit() == 5
	})).Return([]queries.SimulationRunSummary{{ID: kernel.NewUUID(), RouteStartTime: "09:00"}}, nil).Once()

	rec := serve(t, httpadapter.Handlers{SimulationHistory: history}, nethttp.MethodGet, "/api/v1/simulations?limit=5", "")

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
	history.AssertExpectations(t)

	rec = serve(t, httpadapter.Handlers{SimulationHistory: history}, nethttp.MethodGet, "/api/v1/simulations?limit=500", "")
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec = serve(t, httpadapter.Handlers{SimulationHistory: history}, nethttp.MethodGet, "/api/v1/simulations?limit=ten", "")
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestServer_GetSimulationRun(t *testing.T) {
	run := newRun(t)
	reader := new(MockRunReader)
	reader.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSimulationRunQuery) bool {
		return q.RunID() == run.ID()
	})).Return(run, nil).Once()
	reader.On("Handle", mock.Anything, mock.Anything).Return(nil, errs.NewObjectNotFoundError("simulation run", "x")).Once()

	rec := serve(t, httpadapter.Handlers{SimulationRun: reader}, nethttp.MethodGet, "/api/v1/simulations/"+run.ID().String(), "")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), run.ID().String())

	rec = serve(t, httpadapter.Handlers{SimulationRun: reader}, nethttp.MethodGet, "/api/v1/simulations/"+kernel.NewUUID().String(), "")
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = serve(t, httpadapter.Handlers{SimulationRun: reader}, nethttp.MethodGet, "/api/v1/simulations/not-a-uuid", "")
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestServer_CreateDriver(t *testing.T) {
	creator := new(MockDriverCreator)
	creator.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateDriverCommand) bool {
		return cmd.Name() == "Amit"
	})).Return(nil).Once()

	rec := serve(t, httpadapter.Handlers{CreateDriver: creator}, nethttp.MethodPost, "/api/v1/drivers",
		`{"name":"Amit","current_shift_hours":2,"past_7_day_work_hours":40}`)
	assert.Equal(t, nethttp.StatusCreated, rec.Code)

	rec = serve(t, httpadapter.Handlers{CreateDriver: creator}, nethttp.MethodPost, "/api/v1/drivers",
		`{"name":"","current_shift_hours":2}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	creator.AssertExpectations(t)
}

func TestServer_Health(t *testing.T) {
	rec := serve(t, httpadapter.Handlers{}, nethttp.MethodGet, "/health", "")

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
