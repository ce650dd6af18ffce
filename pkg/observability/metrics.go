package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricComputationsTotal   = "statkit.computations.total"
	metricComputationDuration = "statkit.computation.duration.seconds"
	metricErrorsTotal         = "statkit.computation.errors.total"

	attrComponent = "component"
	attrSlot      = "slot"
	attrStatus    = "status"

	statusOK    = "ok"
	statusError = "error"
)

// durationBucketBoundaries covers 1µs to 1s; a single statistic over an
// in-memory data set is rarely slower.
var durationBucketBoundaries = []float64{1e-6, 1e-5, 1e-4, 5e-4, 1e-3, 5e-3, 0.01, 0.05, 0.1, 0.5, 1}

// CalcMetrics holds the OTel instruments for statistic computations.
type CalcMetrics struct {
	computationsTotal   metric.Int64Counter
	computationDuration metric.Float64Histogram
	errorsTotal         metric.Int64Counter
}

// NewCalcMetrics creates computation metric instruments from the given meter.
func NewCalcMetrics(mt metric.Meter) (*CalcMetrics, error) {
	total, err := mt.Int64Counter(metricComputationsTotal,
		metric.WithDescription("Total number of statistic computations"),
		metric.WithUnit("{computation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricComputationsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricComputationDuration,
		metric.WithDescription("Statistic computation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricComputationDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of failed statistic computations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	return &CalcMetrics{
		computationsTotal:   total,
		computationDuration: duration,
		errorsTotal:         errTotal,
	}, nil
}

// Record records one computation of slot by component.
func (cm *CalcMetrics) Record(ctx context.Context, component, slot string, elapsed time.Duration, err error) {
	status := statusOK
	if err != nil {
		status = statusError
	}

	attrs := metric.WithAttributes(
		attribute.String(attrComponent, component),
		attribute.String(attrSlot, slot),
		attribute.String(attrStatus, status),
	)

	cm.computationsTotal.Add(ctx, 1, attrs)
	cm.computationDuration.Record(ctx, elapsed.Seconds(), attrs)

	if err != nil {
		cm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrComponent, component),
			attribute.String(attrSlot, slot),
		))
	}
}

// Recorder returns a computation recorder that attributes every
// measurement to component. It satisfies statset.Recorder.
func (cm *CalcMetrics) Recorder(component string) *ComponentRecorder {
	return &ComponentRecorder{metrics: cm, component: component}
}

// ComponentRecorder records computations of a single component.
type ComponentRecorder struct {
	metrics   *CalcMetrics
	component string
}

// RecordComputation records one computation.
func (cr *ComponentRecorder) RecordComputation(slot string, elapsed time.Duration, err error) {
	cr.metrics.Record(context.Background(), cr.component, slot, elapsed, err)
}
