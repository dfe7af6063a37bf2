package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "dispatchsim/internal/adapters/out/postgres"
	"dispatchsim/internal/adapters/out/postgres/pgtest"
	"dispatchsim/internal/core/domain/model/driver"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/domain/model/route"
	"dispatchsim/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite provides integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.Require().NoError(postgres_adapter.Migrate(database.DB))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("simulation_runs", "orders", "drivers", "routes"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.RouteRepository())
	suite.NotNil(uow1.SimulationRunRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	r := suite.route("R1")
	suite.Require().NoError(uow.RouteRepository().Add(ctx, r))
	d := suite.driver("Asha")
	suite.Require().NoError(uow.DriverRepository().Add(ctx, d))
	o, err := order.NewOrder("ORD-1", 500, r.ID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	suite.Equal([]string{d.ID().String(), "ORD-1"}, uow.(*postgres_adapter.GormUnitOfWork).TrackedAggregateIDs())
	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	_, err = check.OrderRepository().Get(ctx, "ORD-1")
	suite.Require().NoError(err)
	_, err = check.DriverRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	seed := suite.factory.Create()
	r := suite.route("R1")
	suite.Require().NoError(seed.RouteRepository().Add(ctx, r))
	d := suite.driver("Asha")
	suite.Require().NoError(seed.DriverRepository().Add(ctx, d))
	o, err := order.NewOrder("ORD-1", 500, r.ID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(seed.OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(o.Assign(order.Outcome{DriverID: d.ID()}))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(d.TakeWork(0.5))
	suite.Require().NoError(uow.DriverRepository().Update(ctx, d))
	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	gotOrder, err := check.OrderRepository().Get(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.Equal(order.Pending, gotOrder.Status())
	gotDriver, err := check.DriverRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(driver.Available, gotDriver.Status())
	suite.InDelta(0.0, gotDriver.CurrentShiftHours(), 1e-9)
	suite.Empty(uow.(*postgres_adapter.GormUnitOfWork).TrackedAggregateIDs())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_LocksCandidateRows() {
	ctx := context.Background()
	seed := suite.factory.Create()
	r := suite.route("R1")
	suite.Require().NoError(seed.RouteRepository().Add(ctx, r))
	d := suite.driver("Asha")
	suite.Require().NoError(seed.DriverRepository().Add(ctx, d))
	o, err := order.NewOrder("ORD-1", 500, r.ID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(seed.OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	drivers, err := uow.DriverRepository().ListAvailable(ctx, 8, 1)
	suite.Require().NoError(err)
	suite.Require().Len(drivers, 1)
	pending, err := uow.OrderRepository().ListPending(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)

	other := suite.database.DB.Begin()
	defer other.Rollback()
	suite.Require().NoError(other.Exec("SET LOCAL lock_timeout = '200ms'").Error)

	err = other.Exec("SELECT 1 FROM drivers WHERE id = ? FOR UPDATE", d.ID().Bytes()).Error
	suite.Require().Error(err, "driver row should be locked by the first transaction")

	orders := suite.database.DB.Begin()
	defer orders.Rollback()
	suite.Require().NoError(orders.Exec("SET LOCAL lock_timeout = '200ms'").Error)

	err = orders.Exec("SELECT 1 FROM orders WHERE order_id = ? FOR UPDATE", "ORD-1").Error
	suite.Require().Error(err, "pending order row should be locked by the first transaction")

	suite.Require().NoError(uow.Rollback(ctx))
	free := suite.database.DB.Begin()
	defer free.Rollback()
	suite.Require().NoError(free.Exec("SET LOCAL lock_timeout = '200ms'").Error)
	suite.Require().NoError(free.Exec("SELECT 1 FROM orders WHERE order_id = ? FOR UPDATE", "ORD-1").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) route(id string) route.Route {
	r, err := route.NewRoute(id, 10, route.Medium, 30)
	suite.Require().NoError(err)
	return r
}

func (suite *UnitOfWorkIntegrationTestSuite) driver(name string) *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), name, 0, 0)
	suite.Require().NoError(err)
	return d
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
