// Package guard provides a marker that lets value objects, commands and queries
// detect whether they were built through their constructor or as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the object was not
// constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs whose zero value is not usable.
// Only NewConstructorGuard produces a guard that passes Validate.
//
// Example:
//
//	var ErrRunSimulationCommandIsNotConstructed = errors.New("RunSimulationCommand must be created via NewRunSimulationCommand")
//
//	type RunSimulationCommand struct {
//	    availableDrivers int
//	    guard            guard.ConstructorGuard
//	}
//
//	func (c RunSimulationCommand) Validate() error {
//	    return c.guard.Validate(ErrRunSimulationCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
