package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"dispatchsim/internal/core/domain/model/driver"
	"dispatchsim/internal/core/domain/model/order"
)

var (
	// ErrInsufficientDrivers is returned when a run requests more drivers than
	// are available system-wide.
	ErrInsufficientDrivers = errors.New("insufficient drivers")

	// ErrNoAvailableDrivers is returned when no driver passes the eligibility filter.
	ErrNoAvailableDrivers = errors.New("no available drivers found")

	// ErrNoPendingOrders is returned when there is nothing to allocate.
	ErrNoPendingOrders = errors.New("no pending orders found")
)

// InsufficientDriversError carries the requested and available counts.
type InsufficientDriversError struct {
	Requested int
	Available int
}

func (e *InsufficientDriversError) Error() string {
	return fmt.Sprintf("only %d drivers are available, but %d were requested", e.Available, e.Requested)
}

func (e *InsufficientDriversError) Unwrap() error {
	return ErrInsufficientDrivers
}

// CandidateSelector decides which drivers and orders take part in a run and
// in which order. The orderings are total so that identical inputs always
// produce identical allocations.
type CandidateSelector struct{}

func NewCandidateSelector() CandidateSelector {
	return CandidateSelector{}
}

// CheckCapacity rejects a request for more drivers than the number of
// drivers in the available status. It runs before the shift-hours filter.
func (s CandidateSelector) CheckCapacity(requested, available int) error {
	if requested > available {
		return &InsufficientDriversError{Requested: requested, Available: available}
	}
	return nil
}

// SelectDrivers keeps available drivers with room left under maxHours,
// least worked first (past 7 days, then current shift, then id), and returns
// at most limit of them.
func (s CandidateSelector) SelectDrivers(drivers []*driver.Driver, maxHours float64, limit int) ([]*driver.Driver, error) {
	eligible := make([]*driver.Driver, 0, len(drivers))
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if d.CanStartWithin(maxHours) {
			eligible = append(eligible, d)
		}
	}

	slices.SortStableFunc(eligible, func(a, b *driver.Driver) int {
		return cmp.Or(
			cmp.Compare(a.Past7DayWorkHours(), b.Past7DayWorkHours()),
			cmp.Compare(a.CurrentShiftHours(), b.CurrentShiftHours()),
			cmp.Compare(a.ID().String(), b.ID().String()),
		)
	})

	if limit >= 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}
	if len(eligible) == 0 {
		return nil, ErrNoAvailableDrivers
	}
	return eligible, nil
}

// SelectOrders keeps pending orders, most valuable first, then earliest
// delivery timestamp, then order id.
func (s CandidateSelector) SelectOrders(orders []order.RoutedOrder) ([]order.RoutedOrder, error) {
	pending := make([]order.RoutedOrder, 0, len(orders))
	for _, ro := range orders {
		if err := ro.Order.Validate(); err != nil {
			return nil, err
		}
		if err := ro.Route.Validate(); err != nil {
			return nil, err
		}
		if ro.Order.Status() == order.Pending {
			pending = append(pending, ro)
		}
	}

	slices.SortStableFunc(pending, func(a, b order.RoutedOrder) int {
		return cmp.Or(
			cmp.Compare(b.Order.ValueRs(), a.Order.ValueRs()),
			a.Order.DeliveryTimestamp().Compare(b.Order.DeliveryTimestamp()),
			cmp.Compare(a.Order.ID(), b.Order.ID()),
		)
	})

	if len(pending) == 0 {
		return nil, ErrNoPendingOrders
	}
	return pending, nil
}
