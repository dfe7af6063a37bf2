// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/pkg/guard"
)

var (
	ErrGetAllDriversQueryIsNotConstructed = errors.New(
		"GetAllDriversQuery must be created via NewGetAllDriversQuery constructor",
	)
)

// GetAllDriversQuery retrieves every driver with its status and workload.
//
// Example:
//
//	query := NewGetAllDriversQuery()
//	handler := NewGetAllDriversQueryHandler(db)
//
//	drivers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve drivers: %w", err)
//	}
//
//	for _, d := range drivers {
//	    fmt.Printf("%s %s %.1fh\n", d.Name, d.Status, d.CurrentShiftHours)
//	}
type GetAllDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllDriversQuery creates a query to retrieve all drivers.
func NewGetAllDriversQuery() GetAllDriversQuery {
	return GetAllDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllDriversQueryIsNotConstructed if validation fails.
func (q GetAllDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDriversQueryIsNotConstructed)
}

// GetAllDriversQueryResponse is the driver read model.
type GetAllDriversQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Status            string
	CurrentShiftHours float64
	Past7DayWorkHours float64
	IsFatigued        bool
}
