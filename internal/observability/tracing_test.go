package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"dispatchsim/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracing_ExportsSpans(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     true,
		ServiceName: "dispatchsim-test",
		Writer:      &out,
	}, logger)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(ctx, "RunSimulation")
	span.End()
	require.NoError(t, shutdown(ctx))

	assert.Contains(t, out.String(), `"Name":"RunSimulation"`)
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := observability.InitTracing(context.Background(), observability.TracingConfig{}, nil)

	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer

	observability.NewLogger(&out, "warn", "json").Info("hidden")
	observability.NewLogger(&out, "warn", "json").Warn("shown", "run_id", "abc")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
}
