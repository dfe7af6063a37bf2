package order

import (
	"fmt"

	"dispatchsim/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
//	Pending ──> Assigned ──> Delivered
//	   │           │
//	   └───────────┴──> Cancelled
//
// A simulation run only performs Pending -> Assigned.
type Status string

const (
	Pending   Status = "pending"
	Assigned  Status = "assigned"
	Delivered Status = "delivered"
	Cancelled Status = "cancelled"
)

// ParseStatus restores a status read from persistence.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the status is one of the four known values.
func (s Status) Validate() error {
	switch s {
	case Pending, Assigned, Delivered, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// ValidateAssign checks that an order in this status may be assigned.
func (s Status) ValidateAssign() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}
	return nil
}

// ValidateCanHaveOutcome enforces that assigned and delivered orders carry a
// delivery outcome while pending and cancelled orders do not.
func (s Status) ValidateCanHaveOutcome(hasOutcome bool) error {
	needsOutcome := s == Assigned || s == Delivered
	if hasOutcome && !needsOutcome {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to have a driver", s),
		)
	}
	if !hasOutcome && needsOutcome {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to have no driver", s),
		)
	}
	return nil
}

// Assign transitions the status to Assigned.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return "", err
	}
	return Assigned, nil
}
