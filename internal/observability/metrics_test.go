package observability_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatchsim/internal/observability"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationCollector_RecordsRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewSimulationCollector(reg)
	require.NoError(t, err)

	collector.RunFinished("committed", 20*time.Millisecond)
	collector.RunFinished("committed", 30*time.Millisecond)
	collector.RunFinished("rejected", time.Millisecond)
	collector.AllocationMeasured(2, 1, 50)

	assert.InDelta(t, 2.0, testutil.ToFloat64(collector.RunsTotal.WithLabelValues("committed")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(collector.RunsTotal.WithLabelValues("rejected")), 1e-9)
	assert.InDelta(t, 2.0, testutil.ToFloat64(collector.OrdersAssigned), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(collector.OrdersUnassigned), 1e-9)
	assert.InDelta(t, 50.0, testutil.ToFloat64(collector.EfficiencyScore), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(collector.RunDuration))
}

func TestSimulationCollector_RegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := observability.NewSimulationCollector(reg)
	require.NoError(t, err)
	second, err := observability.NewSimulationCollector(reg)
	require.NoError(t, err)

	first.AllocationMeasured(3, 0, 100)

	assert.InDelta(t, 3.0, testutil.ToFloat64(second.OrdersAssigned), 1e-9)
}

func TestSimulationCollector_Handler(t *testing.T) {
	collector, err := observability.NewSimulationCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	collector.RunFinished("failed", time.Second)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `simulation_runs_total{outcome="failed"} 1`))
}

func TestSimulationCollector_NilIsNoop(t *testing.T) {
	var collector *observability.SimulationCollector

	assert.NotPanics(t, func() {
		collector.RunFinished("committed", time.Second)
		collector.AllocationMeasured(1, 1, 1)
	})
}
