package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/route"
	"dispatchsim/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Outcome is what a simulation run recorded for an assigned order.
// Monetary values are rounded to two decimals by the rule set.
type Outcome struct {
	DriverID           kernel.UUID
	FuelCost           float64
	LatePenalty        float64
	HighValueBonus     float64
	Profit             float64
	IsOnTime           bool
	ActualDeliveryTime time.Time
}

// Order is the aggregate root for a customer delivery.
type Order struct {
	id                string
	valueRs           float64
	routeID           string
	deliveryTimestamp time.Time
	status            Status
	outcome           *Outcome

	isConstructed bool
}

// RoutedOrder pairs an order with the route it is delivered on, as returned
// by the pending order query.
type RoutedOrder struct {
	Order *Order
	Route route.Route
}

// NewOrder creates a pending order.
//
// Example:
//
//	o, err := order.NewOrder("ORD-1001", 1450, "R7", time.Now())
func NewOrder(id string, valueRs float64, routeID string, deliveryTimestamp time.Time) (*Order, error) {
	return RestoreOrder(id, valueRs, routeID, deliveryTimestamp, Pending, nil)
}

// RestoreOrder rebuilds an order loaded from storage. The outcome must be
// present exactly when the status is assigned or delivered.
func RestoreOrder(
	id string,
	valueRs float64,
	routeID string,
	deliveryTimestamp time.Time,
	status Status,
	outcome *Outcome,
) (*Order, error) {
	o := &Order{
		deliveryTimestamp: deliveryTimestamp,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setValue(valueRs),
		o.setRouteID(routeID),
		o.setStatus(status, outcome),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) ValueRs() float64 {
	return o.valueRs
}

func (o *Order) RouteID() string {
	return o.routeID
}

func (o *Order) DeliveryTimestamp() time.Time {
	return o.deliveryTimestamp
}

func (o *Order) Status() Status {
	return o.status
}

// Outcome returns a copy of the recorded delivery outcome, or nil for
// orders that were never assigned.
func (o *Order) Outcome() *Outcome {
	if o.outcome == nil {
		return nil
	}
	out := *o.outcome
	return &out
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// Assign records the simulated outcome and moves the order to Assigned.
// Only pending orders can be assigned.
func (o *Order) Assign(outcome Outcome) error {
	if err := outcome.DriverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.outcome = &outcome
	return nil
}

func (o *Order) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setValue(valueRs float64) error {
	if valueRs <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order value", fmt.Errorf("%v is not greater than 0", valueRs))
	}
	o.valueRs = valueRs
	return nil
}

func (o *Order) setRouteID(routeID string) error {
	routeID = strings.TrimSpace(routeID)
	if routeID == "" {
		return errs.NewValueIsRequiredError("assigned route")
	}
	o.routeID = routeID
	return nil
}

func (o *Order) setStatus(status Status, outcome *Outcome) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveOutcome(outcome != nil); err != nil {
		return err
	}
	if outcome != nil {
		if err := outcome.DriverID.Validate(); err != nil {
			return err
		}
		copied := *outcome
		o.outcome = &copied
	}
	o.status = status
	return nil
}
