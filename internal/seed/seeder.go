// Package seed fills an empty database with demo routes, drivers and
// pending orders through the regular create commands.
package seed

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/domain/model/kernel"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"
)

type (
	DriverCreator interface {
		Handle(ctx context.Context, cmd commands.CreateDriverCommand) error
	}

	RouteCreator interface {
		Handle(ctx context.Context, cmd commands.CreateRouteCommand) error
	}

	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
)

// Options sizes the generated data set.
type Options struct {
	Routes  int
	Drivers int
	Orders  int
	// Seed makes the data set reproducible; 0 picks a time-based seed.
	Seed int64
	// Day anchors the delivery timestamps.
	Day time.Time
}

// DefaultOptions matches the demo data set: 10 routes, 10 drivers, 50 orders.
func DefaultOptions() Options {
	return Options{Routes: 10, Drivers: 10, Orders: 50}
}

// Result counts what was created.
type Result struct {
	Routes  int
	Drivers int
	Orders  int
}

var trafficLevels = []string{"Low", "Medium", "High"}

// minutes per km at each traffic level
var trafficPace = map[string]float64{"Low": 3, "Medium": 4, "High": 5}

type Seeder struct {
	drivers DriverCreator
	routes  RouteCreator
	orders  OrderCreator
	out     io.Writer
}

// NewSeeder wires the create handlers. Progress bars are written to out;
// pass io.Discard to silence them.
func NewSeeder(drivers DriverCreator, routes RouteCreator, orders OrderCreator, out io.Writer) *Seeder {
	if out == nil {
		out = io.Discard
	}
	return &Seeder{drivers: drivers, routes: routes, orders: orders, out: out}
}

// Seed creates routes first, then drivers, then orders spread over the routes.
// It stops at the first failing command.
func (s *Seeder) Seed(ctx context.Context, opts Options) (Result, error) {
	var res Result
	if opts.Routes <= 0 && opts.Orders > 0 {
		return res, fmt.Errorf("orders need at least one route, got %d routes", opts.Routes)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fake := faker.NewWithSeed(rand.NewSource(seed))

	day := opts.Day
	if day.IsZero() {
		day = time.Now().UTC()
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	routeIDs := make([]string, 0, opts.Routes)
	bar := s.bar(opts.Routes, "routes")
	for i := 1; i <= opts.Routes; i++ {
		routeID := fmt.Sprintf("R%d", i)
		level := fake.RandomStringElement(trafficLevels)
		distance := float64(fake.IntBetween(50, 250)) / 10
		baseMinutes := int(math.Round(distance * trafficPace[level]))

		cmd, err := commands.NewCreateRouteCommand(routeID, distance, level, baseMinutes)
		if err != nil {
			return res, fmt.Errorf("route %s: %w", routeID, err)
		}
		if err := s.routes.Handle(ctx, cmd); err != nil {
			return res, fmt.Errorf("route %s: %w", routeID, err)
		}
		routeIDs = append(routeIDs, routeID)
		res.Routes++
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	bar = s.bar(opts.Drivers, "drivers")
	for i := 0; i < opts.Drivers; i++ {
		name := fake.Person().FirstName()
		shift := float64(fake.IntBetween(0, 10))
		week := 0
		for d := 0; d < 7; d++ {
			week += fake.IntBetween(6, 10)
		}

		cmd, err := commands.NewCreateDriverCommand(kernel.NewUUID(), name, shift, float64(week))
		if err != nil {
			return res, fmt.Errorf("driver %s: %w", name, err)
		}
		if err := s.drivers.Handle(ctx, cmd); err != nil {
			return res, fmt.Errorf("driver %s: %w", name, err)
		}
		res.Drivers++
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	bar = s.bar(opts.Orders, "orders")
	for i := 1; i <= opts.Orders; i++ {
		orderID := fmt.Sprintf("ORD-%04d", i)
		value := float64(fake.IntBetween(200, 3000))
		routeID := fake.RandomStringElement(routeIDs)
		deliveryAt := day.Add(time.Duration(fake.IntBetween(15, 160)) * time.Minute)

		cmd, err := commands.NewCreateOrderCommand(orderID, value, routeID, deliveryAt)
		if err != nil {
			return res, fmt.Errorf("order %s: %w", orderID, err)
		}
		if err := s.orders.Handle(ctx, cmd); err != nil {
			return res, fmt.Errorf("order %s: %w", orderID, err)
		}
		res.Orders++
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return res, nil
}

func (s *Seeder) bar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(s.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(s.out) }),
	)
}
