package commands

import (
	"errors"
	"fmt"

	"dispatchsim/internal/core/domain/model/simulation"
	"dispatchsim/internal/core/domain/services"
)

// Rejections: reported to the caller, nothing was written, retrying the
// same request gives the same answer.
var (
	ErrInvalidSimulationInput = errors.New("invalid simulation input")
	ErrInsufficientDrivers    = services.ErrInsufficientDrivers
	ErrNoAvailableDrivers     = services.ErrNoAvailableDrivers
	ErrNoPendingOrders        = services.ErrNoPendingOrders
)

// ErrPersistenceFailure marks a run that was rolled back because storage
// failed. The caller may retry.
var ErrPersistenceFailure = errors.New("simulation could not be persisted")

// InsufficientDriversError is re-exported for callers that only import commands.
type InsufficientDriversError = services.InsufficientDriversError

// PersistenceError wraps a storage failure with the stage it happened in.
type PersistenceError struct {
	Stage simulation.Stage
	Cause error
}

func NewPersistenceError(stage simulation.Stage, cause error) *PersistenceError {
	return &PersistenceError{Stage: stage, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s while %s: %v", ErrPersistenceFailure, e.Stage, e.Cause)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceFailure, e.Cause}
}

// IsRejection reports whether err is one of the non-retryable rejections.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidSimulationInput) ||
		errors.Is(err, ErrInsufficientDrivers) ||
		errors.Is(err, ErrNoAvailableDrivers) ||
		errors.Is(err, ErrNoPendingOrders)
}
