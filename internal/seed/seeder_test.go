package seed_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriverCreator struct{ mock.Mock }

func (m *MockDriverCreator) Handle(ctx context.Context, cmd commands.CreateDriverCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockRouteCreator struct{ mock.Mock }

func (m *MockRouteCreator) Handle(ctx context.Context, cmd commands.CreateRouteCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

var seedDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestSeeder_CreatesRequestedDataSet(t *testing.T) {
	ctx := context.Background()
	drivers, routes, orders := new(MockDriverCreator), new(MockRouteCreator), new(MockOrderCreator)

	var routeIDs []string
	routes.On("Handle", ctx, mock.MatchedBy(func(cmd commands.CreateRouteCommand) bool {
		r := cmd.Route()
		return r.DistanceKm() >= 5 && r.DistanceKm() <= 25 && r.BaseTimeMinutes() > 0
	})).Run(func(args mock.Arguments) {
		routeIDs = append(routeIDs, args.Get(1).(commands.CreateRouteCommand).Route().ID())
	}).Return(nil).Times(3)
	drivers.On("Handle", ctx, mock.MatchedBy(func(cmd commands.CreateDriverCommand) bool {
		return cmd.Name() != "" &&
			cmd.CurrentShiftHours() >= 0 && cmd.CurrentShiftHours() <= 10 &&
			cmd.Past7DayWorkHours() >= 42 && cmd.Past7DayWorkHours() <= 70
	})).Return(nil).Times(4)
	orders.On("Handle", ctx, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return strings.HasPrefix(cmd.OrderID(), "ORD-") &&
			cmd.ValueRs() >= 200 && cmd.ValueRs() <= 3000 &&
			strings.HasPrefix(cmd.RouteID(), "R") &&
			cmd.DeliveryTimestamp().After(seedDay)
	})).Return(nil).Times(12)

	var progress bytes.Buffer
	res, err := seed.NewSeeder(drivers, routes, orders, &progress).Seed(ctx, seed.Options{
		Routes: 3, Drivers: 4, Orders: 12, Seed: 42, Day: seedDay,
	})

	require.NoError(t, err)
	assert.Equal(t, seed.Result{Routes: 3, Drivers: 4, Orders: 12}, res)
	assert.Equal(t, []string{"R1", "R2", "R3"}, routeIDs)
	assert.Contains(t, progress.String(), "orders")
	drivers.AssertExpectations(t)
	routes.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestSeeder_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	drivers, routes, orders := new(MockDriverCreator), new(MockRouteCreator), new(MockOrderCreator)
	routes.On("Handle", ctx, mock.Anything).Return(nil).Times(2)
	drivers.On("Handle", ctx, mock.Anything).Return(errors.New("duplicate key")).Once()

	res, err := seed.NewSeeder(drivers, routes, orders, io.Discard).Seed(ctx, seed.Options{
		Routes: 2, Drivers: 3, Orders: 5, Seed: 7, Day: seedDay,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
	assert.Equal(t, seed.Result{Routes: 2}, res)
	orders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestSeeder_OrdersNeedRoutes(t *testing.T) {
	_, err := seed.NewSeeder(nil, nil, nil, nil).Seed(context.Background(), seed.Options{Orders: 1})

	assert.Error(t, err)
}
