package driver

import (
	"errors"
	"fmt"
	"strings"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/pkg/errs"
)

const (
	// FatigueThresholdHours is the trailing 7-day workload (8h x 7 days) above
	// which a driver delivers more slowly.
	FatigueThresholdHours = 56.0

	// MaxShiftHours bounds current shift hours.
	MaxShiftHours = 24.0

	// MaxWeeklyHours bounds the trailing 7-day workload.
	MaxWeeklyHours = 168.0

	hoursTolerance = 1e-9
)

// ErrDriverIsNotConstructed is returned when a Driver was not created through
// NewDriver or RestoreDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver is the aggregate root for a delivery driver.
type Driver struct {
	id                kernel.UUID
	name              string
	status            Status
	currentShiftHours float64
	past7DayWorkHours float64

	isConstructed bool
}

// NewDriver registers an available driver with the given workload history.
//
// Example:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), "Amit", 2.5, 40)
func NewDriver(id kernel.UUID, name string, currentShiftHours, past7DayWorkHours float64) (*Driver, error) {
	return RestoreDriver(id, name, Available, currentShiftHours, past7DayWorkHours)
}

// RestoreDriver rebuilds a driver loaded from storage, in any status.
func RestoreDriver(
	id kernel.UUID,
	name string,
	status Status,
	currentShiftHours, past7DayWorkHours float64,
) (*Driver, error) {
	d := &Driver{isConstructed: true}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setStatus(status),
		d.setCurrentShiftHours(currentShiftHours),
		d.setPast7DayWorkHours(past7DayWorkHours),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the driver was built by a constructor.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) Status() Status {
	return d.status
}

func (d *Driver) CurrentShiftHours() float64 {
	return d.currentShiftHours
}

func (d *Driver) Past7DayWorkHours() float64 {
	return d.past7DayWorkHours
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// IsFatigued reports whether the trailing 7-day workload exceeds FatigueThresholdHours.
func (d *Driver) IsFatigued() bool {
	return d.past7DayWorkHours > FatigueThresholdHours
}

// IsAvailable reports whether the driver is in the Available status.
func (d *Driver) IsAvailable() bool {
	return d.status == Available
}

// CanStartWithin reports whether the driver is available and still has room
// in a shift capped at maxHours.
func (d *Driver) CanStartWithin(maxHours float64) bool {
	return d.IsAvailable() && d.currentShiftHours < maxHours
}

// TakeWork books hours of delivery work on the driver and marks them busy.
// The driver must be available and the resulting shift may not exceed MaxShiftHours.
func (d *Driver) TakeWork(hours float64) error {
	if !(hours >= 0) {
		return errs.NewValueIsOutOfRangeError("work hours", hours, 0, MaxShiftHours)
	}

	total := d.currentShiftHours + hours
	if total > MaxShiftHours && total-MaxShiftHours < hoursTolerance {
		total = MaxShiftHours
	}
	if total > MaxShiftHours {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"current shift hours", total, 0, MaxShiftHours,
			fmt.Errorf("driver %s cannot take %.2f more hours", d.id, hours),
		)
	}

	newStatus, err := d.status.TakeWork()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.currentShiftHours = total
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	d.name = name
	return nil
}

func (d *Driver) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Driver) setCurrentShiftHours(hours float64) error {
	if !(hours >= 0 && hours <= MaxShiftHours) {
		return errs.NewValueIsOutOfRangeError("current shift hours", hours, 0, MaxShiftHours)
	}
	d.currentShiftHours = hours
	return nil
}

func (d *Driver) setPast7DayWorkHours(hours float64) error {
	if !(hours >= 0 && hours <= MaxWeeklyHours) {
		return errs.NewValueIsOutOfRangeError("past 7 day work hours", hours, 0, MaxWeeklyHours)
	}
	d.past7DayWorkHours = hours
	return nil
}
