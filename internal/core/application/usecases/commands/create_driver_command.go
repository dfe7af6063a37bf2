package commands

import (
	"errors"

	"dispatchsim/internal/core/domain/model/driver"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand registers a new available driver together with the
// hours already worked.
//
// Example:
//
//	cmd, err := NewCreateDriverCommand(kernel.NewUUID(), "Amit", 2, 38.5)
//	if err != nil {
//	    return fmt.Errorf("invalid driver data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID          kernel.UUID
	name              string
	currentShiftHours float64
	past7DayWorkHours float64

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand validates the driver id, name and both hour counters.
func NewCreateDriverCommand(
	driverID kernel.UUID,
	name string,
	currentShiftHours, past7DayWorkHours float64,
) (CreateDriverCommand, error) {
	cmd := CreateDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setName(name),
		cmd.setHours(currentShiftHours, past7DayWorkHours),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return cmd, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateDriverCommand) Name() string {
	return c.name
}

func (c CreateDriverCommand) CurrentShiftHours() float64 {
	return c.currentShiftHours
}

func (c CreateDriverCommand) Past7DayWorkHours() float64 {
	return c.past7DayWorkHours
}

func (c *CreateDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *CreateDriverCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateDriverCommand) setHours(shift, past7 float64) error {
	var problems []error
	if !(shift >= 0 && shift <= driver.MaxShiftHours) {
		problems = append(problems, errs.NewValueIsOutOfRangeError("current shift hours", shift, 0, driver.MaxShiftHours))
	}
	if !(past7 >= 0 && past7 <= driver.MaxWeeklyHours) {
		problems = append(problems, errs.NewValueIsOutOfRangeError("past 7 day work hours", past7, 0, driver.MaxWeeklyHours))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	c.currentShiftHours = shift
	c.past7DayWorkHours = past7
	return nil
}
