package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "statkit"
	meterName  = "statkit"

	attrServiceName    = "service.name"
	attrServiceVersion = "service.version"
)

// Providers holds the initialized observability providers.
type Providers struct {
	// Tracer is the named tracer for creating spans.
	Tracer trace.Tracer

	// Meter is the named meter for creating instruments.
	Meter metric.Meter

	// Logger is the context-aware structured logger.
	Logger *slog.Logger

	// Metrics records statistic computations on Meter.
	Metrics *CalcMetrics

	// Prometheus exposes Meter in the Prometheus text format.
	// Nil unless Config.Metrics is set.
	Prometheus *PrometheusMeter

	// Shutdown flushes all pending telemetry and releases resources.
	// Must be called before process exit.
	Shutdown func(ctx context.Context) error
}

// Init initializes tracing, metrics and structured logging.
// Spans are sampled so log records carry trace context. They reach the
// configured span processors and, when OTLPEndpoint is set, the collector.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()
	res := buildResource(cfg)

	traceOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	for _, sp := range cfg.SpanProcessors {
		traceOpts = append(traceOpts, sdktrace.WithSpanProcessor(sp))
	}

	if cfg.OTLPEndpoint != "" {
		sp, err := newOTLPSpanProcessor(ctx, cfg)
		if err != nil {
			return Providers{}, fmt.Errorf("build tracer provider: %w", err)
		}

		traceOpts = append(traceOpts, sdktrace.WithSpanProcessor(sp))
	}

	tp := sdktrace.NewTracerProvider(traceOpts...)
	shutdowns := []shutdownFunc{tp.Shutdown}

	mp, mpShutdown, prom, err := buildMeterProvider(ctx, cfg, res)
	if err != nil {
		return Providers{}, errors.Join(fmt.Errorf("build meter provider: %w", err), tp.Shutdown(ctx))
	}

	shutdowns = append(shutdowns, mpShutdown)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	meter := mp.Meter(meterName)

	calc, err := NewCalcMetrics(meter)
	if err != nil {
		return Providers{}, errors.Join(err, tp.Shutdown(ctx), mpShutdown(ctx))
	}

	shutdown := func(shutdownCtx context.Context) error {
		timeoutDur := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
		if timeoutDur <= 0 {
			timeoutDur = time.Duration(defaultShutdownTimeoutSec) * time.Second
		}

		deadlineCtx, cancel := context.WithTimeout(shutdownCtx, timeoutDur)
		defer cancel()

		errs := make([]error, 0, len(shutdowns))
		for _, fn := range shutdowns {
			errs = append(errs, fn(deadlineCtx))
		}

		return errors.Join(errs...)
	}

	return Providers{
		Tracer:     tp.Tracer(tracerName),
		Meter:      meter,
		Logger:     NewLogger(cfg),
		Metrics:    calc,
		Prometheus: prom,
		Shutdown:   shutdown,
	}, nil
}

type shutdownFunc func(ctx context.Context) error

func noopShutdown(_ context.Context) error { return nil }

// buildMeterProvider returns a no-op provider unless Prometheus metrics or
// OTLP export are enabled. Both may read the same provider.
func buildMeterProvider(
	ctx context.Context, cfg Config, res *resource.Resource,
) (metric.MeterProvider, shutdownFunc, *PrometheusMeter, error) {
	var readers []sdkmetric.Reader

	if cfg.OTLPEndpoint != "" {
		reader, err := newOTLPMetricReader(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}

		readers = append(readers, reader)
	}

	if cfg.Metrics {
		prom, err := NewPrometheusMeter(readers...)
		if err != nil {
			return nil, nil, nil, errors.Join(err, shutdownReaders(ctx, readers))
		}

		return prom.provider, prom.Shutdown, prom, nil
	}

	if len(readers) == 0 {
		return noopmetric.NewMeterProvider(), noopShutdown, nil, nil
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, reader := range readers {
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(opts...)

	return mp, mp.Shutdown, nil, nil
}

func shutdownReaders(ctx context.Context, readers []sdkmetric.Reader) error {
	errs := make([]error, 0, len(readers))
	for _, reader := range readers {
		errs = append(errs, reader.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

func buildResource(cfg Config) *resource.Resource {
	attrs := []attribute.KeyValue{attribute.String(attrServiceName, cfg.ServiceName)}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, attribute.String(attrServiceVersion, cfg.ServiceVersion))
	}

	return resource.NewSchemaless(attrs...)
}
