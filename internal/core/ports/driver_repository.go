// Package ports defines the contracts between the allocation engine and its
// infrastructure: repositories, the unit of work and post-commit sinks.
package ports

import (
	"context"

	"dispatchsim/internal/core/domain/model/driver"
	"dispatchsim/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists status and shift hours of an existing driver.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// CountAvailable counts drivers in the available status, regardless of
	// their shift hours.
	CountAvailable(ctx context.Context) (int, error)

	// ListAvailable returns at most limit available drivers with
	// current_shift_hours < maxHours, least worked first.
	//
	// Inside a transaction the returned rows are locked FOR UPDATE until
	// commit or rollback, so concurrent runs cannot allocate the same driver.
	ListAvailable(ctx context.Context, maxHours float64, limit int) ([]*driver.Driver, error)
}
