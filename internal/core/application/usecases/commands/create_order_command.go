package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new pending delivery order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("ORD-1042", 1800, "R3", time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           string
	valueRs           float64
	routeID           string
	deliveryTimestamp time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that ids are present and the value is positive.
func NewCreateOrderCommand(
	orderID string,
	valueRs float64,
	routeID string,
	deliveryTimestamp time.Time,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		deliveryTimestamp: deliveryTimestamp,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setValue(valueRs),
		orderCommand.setRouteID(routeID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() string {
	return c.orderID
}

func (c CreateOrderCommand) ValueRs() float64 {
	return c.valueRs
}

func (c CreateOrderCommand) RouteID() string {
	return c.routeID
}

func (c CreateOrderCommand) DeliveryTimestamp() time.Time {
	return c.deliveryTimestamp
}

func (c *CreateOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setValue(valueRs float64) error {
	if valueRs <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("value rs", fmt.Errorf("%v is not greater than 0", valueRs))
	}
	c.valueRs = valueRs
	return nil
}

func (c *CreateOrderCommand) setRouteID(routeID string) error {
	if routeID == "" {
		return errs.NewValueIsRequiredError("route id")
	}
	c.routeID = routeID
	return nil
}
