package services_test

import (
	"fmt"
	"testing"
	"time"

	"dispatchsim/internal/core/domain/model/driver"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/domain/model/route"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixedNoise float64

func (n fixedNoise) NextOffset(_, _ float64) float64 {
	return float64(n)
}

func newDriver(t *testing.T, name string, shiftHours, past7Hours float64) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), name, shiftHours, past7Hours)
	require.NoError(t, err)
	return d
}

func newRoutedOrder(t *testing.T, id string, valueRs float64, baseMinutes int) order.RoutedOrder {
	t.Helper()
	return newRoutedOrderOn(t, id, valueRs, baseMinutes, 10, route.Low, baseTime)
}

func newRoutedOrderOn(
	t *testing.T,
	id string,
	valueRs float64,
	baseMinutes int,
	distanceKm float64,
	traffic route.TrafficLevel,
	deliveryAt time.Time,
) order.RoutedOrder {
	t.Helper()
	r, err := route.NewRoute(fmt.Sprintf("R-%s", id), distanceKm, traffic, baseMinutes)
	require.NoError(t, err)
	o, err := order.NewOrder(id, valueRs, r.ID(), deliveryAt)
	require.NoError(t, err)
	return order.RoutedOrder{Order: o, Route: r}
}
