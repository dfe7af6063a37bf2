package driver

import (
	"fmt"

	"dispatchsim/internal/pkg/errs"
)

// Status is the availability of a driver.
//
//	Available ──> Busy
//	Offline (set outside the simulation)
type Status string

const (
	Available Status = "available"
	Busy      Status = "busy"
	Offline   Status = "offline"
)

// ParseStatus restores a status read from persistence.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects values other than available, busy and offline.
func (s Status) Validate() error {
	switch s {
	case Available, Busy, Offline:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// TakeWork returns the status a driver moves to after being given orders.
func (s Status) TakeWork() (Status, error) {
	if s != Available {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"driver status",
			fmt.Errorf("%s is not a valid status to take work", s),
		)
	}
	return Busy, nil
}
