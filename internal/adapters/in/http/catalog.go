package http

import (
	"net/http"

	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/application/usecases/queries"
	"dispatchsim/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	drivers, err := s.handlers.Drivers.Handle(ctx.Request().Context(), queries.NewGetAllDriversQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve drivers"})
	}

	data := make([]Driver, len(drivers))
	for i, d := range drivers {
		data[i] = Driver{
			ID:                d.ID.String(),
			Name:              d.Name,
			Status:            d.Status,
			CurrentShiftHours: d.CurrentShiftHours,
			Past7DayWorkHours: d.Past7DayWorkHours,
			IsFatigued:        d.IsFatigued,
		}
	}

	return ctx.JSON(http.StatusOK, ListResponse[Driver]{Success: true, Data: data, Count: len(data)})
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body NewDriver
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(id, body.Name, body.CurrentShiftHours, body.Past7DayWorkHours)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid driver data: " + err.Error()})
	}

	if err = s.handlers.CreateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusConflict, ErrorResponse{Error: "Failed to create driver"})
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{Success: true, ID: id.String()})
}

// CreateRoute handles POST /api/v1/routes.
func (s *Server) CreateRoute(ctx echo.Context) error {
	var body NewRoute
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewCreateRouteCommand(body.RouteID, body.DistanceKm, body.TrafficLevel, body.BaseTimeMinutes)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid route data: " + err.Error()})
	}

	if err = s.handlers.CreateRoute.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusConflict, ErrorResponse{Error: "Failed to create route"})
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{Success: true, ID: body.RouteID})
}

// CreateOrder handles POST /api/v1/orders. The route must exist.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewCreateOrderCommand(body.OrderID, body.ValueRs, body.RouteID, body.DeliveryTimestamp)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order data: " + err.Error()})
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusConflict, ErrorResponse{Error: "Failed to create order"})
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{Success: true, ID: body.OrderID})
}

// GetPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	orders, err := s.handlers.PendingOrders.Handle(ctx.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve orders"})
	}

	data := make([]PendingOrder, len(orders))
	for i, o := range orders {
		data[i] = PendingOrder{
			OrderID:           o.OrderID,
			ValueRs:           o.ValueRs,
			DeliveryTimestamp: o.DeliveryTimestamp,
			RouteID:           o.RouteID,
			DistanceKm:        o.DistanceKm,
			TrafficLevel:      o.TrafficLevel,
			BaseTimeMinutes:   o.BaseTimeMinutes,
		}
	}

	return ctx.JSON(http.StatusOK, ListResponse[PendingOrder]{Success: true, Data: data, Count: len(data)})
}
