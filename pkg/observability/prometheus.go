package observability

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusMeter is an OTel MeterProvider whose instruments are collected
// into a private Prometheus registry.
type PrometheusMeter struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
}

// NewPrometheusMeter creates a meter provider backed by a Prometheus exporter.
// Each call creates an independent registry to avoid collector conflicts
// when called multiple times. Extra readers observe the same instruments.
func NewPrometheusMeter(readers ...sdkmetric.Reader) (*PrometheusMeter, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(exporter)}
	for _, reader := range readers {
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	return &PrometheusMeter{
		registry: registry,
		provider: sdkmetric.NewMeterProvider(opts...),
	}, nil
}

// Meter returns a named meter from the provider.
func (pm *PrometheusMeter) Meter(name string) metric.Meter {
	return pm.provider.Meter(name)
}

// Registry returns the Prometheus registry the exporter writes to.
func (pm *PrometheusMeter) Registry() *prometheus.Registry {
	return pm.registry
}

// WriteText writes every collected metric in the Prometheus text exposition format.
func (pm *PrometheusMeter) WriteText(w io.Writer) error {
	families, err := pm.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))

	for _, family := range families {
		err = enc.Encode(family)
		if err != nil {
			return fmt.Errorf("encode %s: %w", family.GetName(), err)
		}
	}

	return nil
}

// Shutdown releases the meter provider.
func (pm *PrometheusMeter) Shutdown(ctx context.Context) error {
	err := pm.provider.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown meter provider: %w", err)
	}

	return nil
}
