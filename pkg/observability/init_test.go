package observability_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/statkit/pkg/observability"
)

func TestInit_SpanProcessors(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()

	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = "v1.0.0"
	cfg.LogOutput = io.Discard
	cfg.SpanProcessors = append(cfg.SpanProcessors, recorder)

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	_, span := providers.Tracer.Start(context.Background(), "regress")
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "regress", ended[0].Name())

	attrs := ended[0].Resource().Attributes()
	assert.Contains(t, attrs, attribute.String("service.name", "statkit"))
	assert.Contains(t, attrs, attribute.String("service.version", "v1.0.0"))
}

func TestInit_OTLPExportWithPrometheus(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.LogOutput = io.Discard
	cfg.Metrics = true
	cfg.OTLPEndpoint = "127.0.0.1:4317"
	cfg.OTLPInsecure = true
	cfg.OTLPHeaders = map[string]string{"api-key": "secret"}
	cfg.ShutdownTimeoutSec = 1

	providers, err := observability.Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, providers.Prometheus)

	providers.Metrics.Record(context.Background(), "set", "mean", time.Millisecond, nil)

	var buf bytes.Buffer
	require.NoError(t, providers.Prometheus.WriteText(&buf))
	assert.Contains(t, buf.String(), "statkit_computations")

	// No collector listens; only the exporters' flush may fail.
	_ = providers.Shutdown(context.Background())
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", nil},
		{"single", "key=value", map[string]string{"key": "value"}},
		{"multiple", "k1=v1,k2=v2", map[string]string{"k1": "v1", "k2": "v2"}},
		{"spaces", " k1 = v1 , k2 = v2 ", map[string]string{"k1": "v1", "k2": "v2"}},
		{"no_equals", "invalid", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := observability.ParseOTLPHeaders(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}
