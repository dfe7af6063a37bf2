// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatchsim/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest set of repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	SimulationRunRepoFactory interface {
		SimulationRunRepository() ports.SimulationRunRepository
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// RouteUoW manages transactions for route-only operations.
	RouteUoW interface {
		TxManager
		RouteRepoFactory
	}

	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SimulationUoW spans a whole simulation run: locked candidate reads,
	// order and driver updates and the run audit record.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   drivers, err := uow.DriverRepository().ListAvailable(ctx, 8, 3)
	//   orders, err := uow.OrderRepository().ListPending(ctx)
	//   // ... allocate, evaluate, update
	//
	//   err = uow.Commit(ctx)
	SimulationUoW interface {
		TxManager
		DriverRepoFactory
		OrderRepoFactory
		SimulationRunRepoFactory
	}

	SimulationUoWFactory interface {
		Create() SimulationUoW
	}
)
