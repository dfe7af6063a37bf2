package postgres

import (
	"dispatchsim/internal/adapters/out/postgres/driverrepo"
	"dispatchsim/internal/adapters/out/postgres/orderrepo"
	"dispatchsim/internal/adapters/out/postgres/routerepo"
	"dispatchsim/internal/adapters/out/postgres/simulationrepo"

	"gorm.io/gorm"
)

// Models lists the persisted tables in dependency order.
func Models() []any {
	return []any{
		&routerepo.RouteDTO{},
		&driverrepo.DriverDTO{},
		&orderrepo.OrderDTO{},
		&simulationrepo.SimulationRunDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
