package services

import (
	"errors"

	"dispatchsim/internal/core/domain/model/driver"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/domain/model/simulation"
	"dispatchsim/internal/pkg/errs"
)

// DriverLoad is the allocator's record for one selected driver.
// AccumulatedHours starts at the driver's current shift hours and grows
// with every accepted order. Fatigue is fixed when the record is created.
type DriverLoad struct {
	Driver           *driver.Driver
	StartingHours    float64
	AccumulatedHours float64
	Fatigued         bool
	OrderIDs         []string
}

// BookedHours returns the hours added by this run.
func (l DriverLoad) BookedHours() float64 {
	return l.AccumulatedHours - l.StartingHours
}

// Assignment is one accepted order/driver pairing.
type Assignment struct {
	Order            order.RoutedOrder
	Driver           *driver.Driver
	EstimatedMinutes float64
	FatigueApplied   bool
}

// Allocation converts the assignment to its snapshot form.
func (a Assignment) Allocation() simulation.Allocation {
	return simulation.Allocation{
		OrderID:          a.Order.Order.ID(),
		DriverID:         a.Driver.ID(),
		DriverName:       a.Driver.Name(),
		EstimatedMinutes: a.EstimatedMinutes,
		FatigueApplied:   a.FatigueApplied,
	}
}

// AllocationPlan is the result of Allocate. Loads follow the driver order
// that was passed in.
type AllocationPlan struct {
	Assignments []Assignment
	Unassigned  []string
	Loads       []DriverLoad
}

// Allocator distributes orders over drivers round-robin without letting any
// driver exceed the per-run hour cap.
//
// Business rules:
//   - Drivers are tried in the order given, starting at a cursor that moves
//     one step on every attempt, successful or not
//   - A fatigued driver needs 30% more time for every order
//   - A driver accepts an order only if accumulated + estimated hours <= maxHours
//   - An order no driver can take stays unassigned and the run continues
//
// Example:
//
//	plan, err := services.NewAllocator().Allocate(drivers, orders, 8)
//	for _, a := range plan.Assignments {
//	    fmt.Println(a.Order.Order.ID(), "->", a.Driver.Name())
//	}
type Allocator struct{}

func NewAllocator() Allocator {
	return Allocator{}
}

// Allocate assigns every order it can. It only reads the drivers and orders;
// applying the plan to the aggregates is left to the caller.
//
// Parameters:
//   - drivers: selected drivers in priority order
//   - orders: pending orders in priority order
//   - maxHours: per-driver shift cap for the run
//
// Returns:
//   - AllocationPlan: assignments, unassigned order ids and per-driver loads
//   - error: ErrNoAvailableDrivers for an empty driver list, or a validation error
func (a Allocator) Allocate(drivers []*driver.Driver, orders []order.RoutedOrder, maxHours float64) (AllocationPlan, error) {
	if len(drivers) == 0 {
		return AllocationPlan{}, ErrNoAvailableDrivers
	}
	if !(maxHours > 0 && maxHours <= simulation.MaxHoursPerDriverLimit) {
		return AllocationPlan{}, errs.NewValueIsOutOfRangeError("max hours per driver", maxHours, 1, simulation.MaxHoursPerDriverLimit)
	}

	loads := make([]DriverLoad, len(drivers))
	for i, d := range drivers {
		if err := d.Validate(); err != nil {
			return AllocationPlan{}, err
		}
		loads[i] = DriverLoad{
			Driver:           d,
			StartingHours:    d.CurrentShiftHours(),
			AccumulatedHours: d.CurrentShiftHours(),
			Fatigued:         d.IsFatigued(),
		}
	}

	plan := AllocationPlan{}
	cursor := 0

	for _, ro := range orders {
		if err := errors.Join(ro.Order.Validate(), ro.Route.Validate()); err != nil {
			return AllocationPlan{}, err
		}

		assigned := false
		for attempt := 0; attempt < len(loads) && !assigned; attempt++ {
			load := &loads[cursor]
			estimated := FatigueAdjustedTime(float64(ro.Route.BaseTimeMinutes()), load.Fatigued)

			if load.AccumulatedHours+kernel.MinutesToHours(estimated) <= maxHours {
				load.AccumulatedHours += kernel.MinutesToHours(estimated)
				load.OrderIDs = append(load.OrderIDs, ro.Order.ID())
				plan.Assignments = append(plan.Assignments, Assignment{
					Order:            ro,
					Driver:           load.Driver,
					EstimatedMinutes: estimated,
					FatigueApplied:   load.Fatigued,
				})
				assigned = true
			}

			cursor = (cursor + 1) % len(loads)
		}

		if !assigned {
			plan.Unassigned = append(plan.Unassigned, ro.Order.ID())
		}
	}

	plan.Loads = loads
	return plan, nil
}
