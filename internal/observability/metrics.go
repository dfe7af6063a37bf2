// Package observability holds the Prometheus collectors, the tracer provider
// setup and the slog logger factory.
package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SimulationCollector exposes simulation run metrics. It implements
// commands.SimulationRecorder.
type SimulationCollector struct {
	gatherer prometheus.Gatherer

	RunsTotal        *prometheus.CounterVec
	RunDuration      prometheus.Histogram
	OrdersAssigned   prometheus.Counter
	OrdersUnassigned prometheus.Counter
	EfficiencyScore  prometheus.Gauge
}

// NewSimulationCollector registers the metrics against reg, defaulting to the
// global registry when nil. Registering twice on the same registry returns
// the existing collectors.
func NewSimulationCollector(reg prometheus.Registerer) (*SimulationCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simulation_runs_total",
		Help: "Simulation runs by outcome: committed, rejected or failed.",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simulation_run_duration_seconds",
		Help:    "Wall time of a simulation run, including persistence.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}))
	if err != nil {
		return nil, err
	}

	assigned, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulation_orders_assigned_total",
		Help: "Orders assigned by committed simulation runs.",
	}))
	if err != nil {
		return nil, err
	}

	unassigned, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulation_orders_unassigned_total",
		Help: "Orders left pending by committed simulation runs.",
	}))
	if err != nil {
		return nil, err
	}

	efficiency, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_last_efficiency_score",
		Help: "Efficiency score of the most recent committed run, 0 to 100.",
	}))
	if err != nil {
		return nil, err
	}

	return &SimulationCollector{
		gatherer:         gatherer,
		RunsTotal:        runs,
		RunDuration:      duration,
		OrdersAssigned:   assigned,
		OrdersUnassigned: unassigned,
		EfficiencyScore:  efficiency,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *SimulationCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *SimulationCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.Gatherer(), promhttp.HandlerOpts{})
}

func (c *SimulationCollector) RunFinished(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.RunsTotal.WithLabelValues(outcome).Inc()
	c.RunDuration.Observe(d.Seconds())
}

func (c *SimulationCollector) AllocationMeasured(assigned, unassigned int, efficiencyScore float64) {
	if c == nil {
		return
	}
	c.OrdersAssigned.Add(float64(assigned))
	c.OrdersUnassigned.Add(float64(unassigned))
	c.EfficiencyScore.Set(efficiencyScore)
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return collector, nil
}
