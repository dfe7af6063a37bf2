package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatchsim/internal/adapters/out/postgres/orderrepo"
	"dispatchsim/internal/adapters/out/postgres/pgtest"
	"dispatchsim/internal/adapters/out/postgres/routerepo"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/domain/model/route"
	"dispatchsim/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence, the
// pending-only update guard and the pending order query against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	routes     *routerepo.GormRouteRepository
	tracker    *MockAggregateTracker
	now        time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.Require().NoError(database.DB.AutoMigrate(&routerepo.RouteDTO{}, &orderrepo.OrderDTO{}))
	suite.now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("orders", "routes"))

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
	suite.routes = routerepo.NewGormRouteRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	suite.addRoute("R1", 12, route.High, 45)
	o := suite.newOrder("ORD-1", 1500, "R1", suite.now)

	suite.tracker.On("TrackAggregate", "ORD-1", o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.Equal(order.Pending, got.Status())
	suite.InDelta(1500.0, got.ValueRs(), 1e-9)
	suite.Equal("R1", got.RouteID())
	suite.True(suite.now.Equal(got.DeliveryTimestamp()))
	suite.Nil(got.Outcome())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnknownRoute_Fails() {
	o := suite.newOrder("ORD-1", 100, "NOPE", suite.now)

	suite.Require().Error(suite.repository.Add(context.Background(), o))
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), "ORD-404")

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AssignsPendingOrder() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.addRoute("R1", 10, route.Low, 30)
	o := suite.newOrder("ORD-1", 1200, "R1", suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	driverID := kernel.NewUUID()
	delivered := suite.now.Add(35 * time.Minute)
	suite.Require().NoError(o.Assign(order.Outcome{
		DriverID:           driverID,
		FuelCost:           50,
		LatePenalty:        0,
		HighValueBonus:     120,
		Profit:             1270,
		IsOnTime:           true,
		ActualDeliveryTime: delivered,
	}))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, got.Status())
	suite.Require().NotNil(got.Outcome())
	suite.True(got.Outcome().DriverID.IsEqual(driverID))
	suite.InDelta(0.0, got.Outcome().LatePenalty, 1e-9)
	suite.InDelta(1270.0, got.Outcome().Profit, 1e-9)
	suite.True(got.Outcome().IsOnTime)
	suite.True(delivered.Equal(got.Outcome().ActualDeliveryTime))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AlreadyAssigned_ReturnsNotPending() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.addRoute("R1", 10, route.Low, 30)
	o := suite.newOrder("ORD-1", 100, "R1", suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, "ORD-1")
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, "ORD-1")
	suite.Require().NoError(err)

	suite.Require().NoError(first.Assign(order.Outcome{DriverID: kernel.NewUUID()}))
	suite.Require().NoError(second.Assign(order.Outcome{DriverID: kernel.NewUUID()}))

	suite.Require().NoError(suite.repository.Update(ctx, first))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, orderrepo.ErrOrderIsNotPending)
	got, err := suite.repository.Get(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.True(got.Outcome().DriverID.IsEqual(first.Outcome().DriverID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListPending_JoinsRoutesInPriorityOrder() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.addRoute("R1", 10, route.Low, 30)
	suite.addRoute("R2", 25, route.High, 90)

	for _, o := range []*order.Order{
		suite.newOrder("ORD-1", 300, "R1", suite.now),
		suite.newOrder("ORD-2", 2000, "R2", suite.now.Add(time.Hour)),
		suite.newOrder("ORD-3", 2000, "R1", suite.now),
		suite.newOrder("ORD-4", 999, "R2", suite.now),
	} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	cancelled, err := order.RestoreOrder("ORD-5", 5000, "R1", suite.now, order.Cancelled, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	pending, err := suite.repository.ListPending(ctx)

	suite.Require().NoError(err)
	ids := make([]string, 0, len(pending))
	for _, ro := range pending {
		ids = append(ids, ro.Order.ID())
		suite.Equal(ro.Order.RouteID(), ro.Route.ID())
	}
	suite.Equal([]string{"ORD-3", "ORD-2", "ORD-4", "ORD-1"}, ids)
	suite.Equal(route.High, pending[1].Route.TrafficLevel())
	suite.Equal(90, pending[1].Route.BaseTimeMinutes())
}

func (suite *OrderRepositoryIntegrationTestSuite) addRoute(id string, km float64, level route.TrafficLevel, minutes int) {
	r, err := route.NewRoute(id, km, level, minutes)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.routes.Add(context.Background(), r))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(id string, value float64, routeID string, at time.Time) *order.Order {
	o, err := order.NewOrder(id, value, routeID, at)
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
