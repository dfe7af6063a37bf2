// Package http exposes the allocation engine over a JSON API served by echo.
package http

import (
	"context"
	"net/http"

	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/application/usecases/queries"
	"dispatchsim/internal/core/domain/model/simulation"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// Use case contracts the server depends on. Each is satisfied by the
// matching handler in commands or queries.
type (
	SimulationRunner interface {
		Handle(ctx context.Context, cmd commands.RunSimulationCommand) (*simulation.Run, error)
	}

	DriverCreator interface {
		Handle(ctx context.Context, cmd commands.CreateDriverCommand) error
	}

	RouteCreator interface {
		Handle(ctx context.Context, cmd commands.CreateRouteCommand) error
	}

	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	SimulationHistoryReader interface {
		Handle(ctx context.Context, query queries.GetSimulationHistoryQuery) ([]queries.SimulationRunSummary, error)
	}

	SimulationRunReader interface {
		Handle(ctx context.Context, query queries.GetSimulationRunQuery) (*simulation.Run, error)
	}

	DriverReader interface {
		Handle(ctx context.Context, query queries.GetAllDriversQuery) ([]queries.GetAllDriversQueryResponse, error)
	}

	PendingOrderReader interface {
		Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	RunSimulation     SimulationRunner
	CreateDriver      DriverCreator
	CreateRoute       RouteCreator
	CreateOrder       OrderCreator
	SimulationHistory SimulationHistoryReader
	SimulationRun     SimulationRunReader
	Drivers           DriverReader
	PendingOrders     PendingOrderReader
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  http.Handler
}

// NewServer creates a new HTTP server. metrics may be nil, in which case
// /metrics is not registered.
func NewServer(handlers Handlers, metrics http.Handler) *Server {
	return &Server{handlers: handlers, metrics: metrics}
}

// RegisterRoutes mounts every endpoint on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics))
	}

	api := e.Group("/api/v1")
	api.POST("/simulations", s.RunSimulation)
	api.GET("/simulations", s.GetSimulationHistory)
	api.GET("/simulations/:id", s.GetSimulationRun)

	api.GET("/drivers", s.GetDrivers)
	api.POST("/drivers", s.CreateDriver)
	api.POST("/routes", s.CreateRoute)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/pending", s.GetPendingOrders)
}

// NewEcho builds the echo instance with the standard middleware stack.
func NewEcho(s *Server, debug bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = debug
	if debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s.RegisterRoutes(e)
	return e
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
