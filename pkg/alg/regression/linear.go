// Package regression provides covariance, Pearson correlation and simple
// linear regression between statistic sets.
package regression

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/arith"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/stats"
	"github.com/Sumatoshi-tech/statkit/pkg/cache"
	"github.com/Sumatoshi-tech/statkit/pkg/statset"
)

// Technique is a regression between an independent and a dependent data set of equal size.
type Technique interface {
	Independent() *statset.Set
	Dependent() *statset.Set
	Compute() error
}

// Option configures a regression technique.
type Option func(*technique)

// Eager computes every result during construction.
func Eager() Option {
	return func(t *technique) { t.eager = true }
}

// WithLogger logs result computations at Debug level. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(t *technique) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithRecorder reports each result computation to r. A nil recorder is ignored.
func WithRecorder(r statset.Recorder) Option {
	return func(t *technique) {
		if r != nil {
			t.recorder = r
		}
	}
}

type noopRecorder struct{}

func (noopRecorder) RecordComputation(string, time.Duration, error) {}

// technique holds what every regression shares: the two data sets and
// the reporting hooks.
type technique struct {
	independent *statset.Set
	dependent   *statset.Set
	eager       bool
	logger      *slog.Logger
	recorder    statset.Recorder
}

func newTechnique(independent, dependent *statset.Set, opts []Option) (technique, error) {
	if independent.Len() != dependent.Len() {
		return technique{}, fmt.Errorf("%w: %d and %d", ErrSizeMismatch, independent.Len(), dependent.Len())
	}

	t := technique{
		independent: independent,
		dependent:   dependent,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:    noopRecorder{},
	}

	for _, opt := range opts {
		opt(&t)
	}

	return t, nil
}

// Independent returns the independent data set.
func (t *technique) Independent() *statset.Set { return t.independent }

// Dependent returns the dependent data set.
func (t *technique) Dependent() *statset.Set { return t.dependent }

// SumOfSquares returns Σx² of set.
func SumOfSquares(set *statset.Set) float64 {
	return set.Pow(2).Sum()
}

// SumOfProducts returns Σxy over two data sets of equal size.
func SumOfProducts(a, b *statset.Set) (float64, error) {
	products, err := a.CombineSet(arith.Mul, b)
	if err != nil {
		return 0, err
	}

	return products.Sum(), nil
}

// Result names, in computation order.
const (
	SlotCovariance             = "covariance"
	SlotSumOfProducts          = "sum_of_products"
	SlotSlope                  = "slope"
	SlotIntercept              = "intercept"
	SlotCorrelationCoefficient = "correlation_coefficient"
	SlotStandardErrorSquared   = "standard_error_squared"
	SlotStandardError          = "standard_error"
	SlotSlopeErrorSquared      = "slope_error_squared"
	SlotSlopeError             = "slope_error"
	SlotInterceptErrorSquared  = "intercept_error_squared"
	SlotInterceptError         = "intercept_error"
)

// Linear is a simple least-squares linear regression, y = intercept + slope·x.
// Results are computed lazily and cached. A Linear is safe for concurrent use.
type Linear struct {
	technique

	covariance             cache.Cell[float64]
	sumOfProducts          cache.Cell[float64]
	slope                  cache.Cell[float64]
	intercept              cache.Cell[float64]
	correlationCoefficient cache.Cell[float64]
	standardErrorSquared   cache.Cell[float64]
	standardError          cache.Cell[float64]
	slopeErrorSquared      cache.Cell[float64]
	slopeError             cache.Cell[float64]
	interceptErrorSquared  cache.Cell[float64]
	interceptError         cache.Cell[float64]
}

var _ Technique = (*Linear)(nil)

// NewLinear builds a linear regression of dependent on independent.
// The sets must have the same size. With Eager, a result that cannot be
// computed fails construction.
func NewLinear(independent, dependent *statset.Set, opts ...Option) (*Linear, error) {
	t, err := newTechnique(independent, dependent, opts)
	if err != nil {
		return nil, err
	}

	l := &Linear{technique: t}

	if l.eager {
		err = l.Compute()
		if err != nil {
			return nil, err
		}
	}

	return l, nil
}

type result struct {
	name    string
	cell    *cache.Cell[float64]
	compute func() (float64, error)
}

func (l *Linear) results() []result {
	return []result{
		{SlotCovariance, &l.covariance, l.Covariance},
		{SlotSumOfProducts, &l.sumOfProducts, l.SumOfProducts},
		{SlotSlope, &l.slope, l.Slope},
		{SlotIntercept, &l.intercept, l.Intercept},
		{SlotCorrelationCoefficient, &l.correlationCoefficient, l.CorrelationCoefficient},
		{SlotStandardErrorSquared, &l.standardErrorSquared, l.StandardErrorSquared},
		{SlotStandardError, &l.standardError, l.StandardError},
		{SlotSlopeErrorSquared, &l.slopeErrorSquared, l.SlopeErrorSquared},
		{SlotSlopeError, &l.slopeError, l.SlopeError},
		{SlotInterceptErrorSquared, &l.interceptErrorSquared, l.InterceptErrorSquared},
		{SlotInterceptError, &l.interceptError, l.InterceptError},
	}
}

// Slots returns the names of every cached result.
func (l *Linear) Slots() []string {
	results := l.results()
	names := make([]string, 0, len(results))

	for _, r := range results {
		names = append(names, r.name)
	}

	return names
}

// Cached returns the names of the results computed so far.
func (l *Linear) Cached() []string {
	var names []string

	for _, r := range l.results() {
		if r.cell.HasValue() {
			names = append(names, r.name)
		}
	}

	return names
}

// Compute fills every result, reporting all failures together.
func (l *Linear) Compute() error {
	var errs []error

	for _, r := range l.results() {
		_, err := r.compute()
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (l *Linear) cached(name string, cell *cache.Cell[float64], compute func() (float64, error)) (float64, error) {
	return cell.Get(func() (float64, error) {
		start := time.Now()
		value, err := compute()
		elapsed := time.Since(start)

		l.recorder.RecordComputation(name, elapsed, err)

		if err != nil {
			l.logger.Debug("regression result failed", "result", name, "error", err)

			return 0, fmt.Errorf("%s: %w", name, err)
		}

		l.logger.Debug("regression result computed", "result", name, "duration", elapsed)

		return value, nil
	})
}

// Covariance returns the population covariance of the two data sets.
func (l *Linear) Covariance() (float64, error) {
	return l.cached(SlotCovariance, &l.covariance, func() (float64, error) {
		return Covariance([]*statset.Set{l.independent, l.dependent})
	})
}

// SumOfProducts returns Σxy.
func (l *Linear) SumOfProducts() (float64, error) {
	return l.cached(SlotSumOfProducts, &l.sumOfProducts, func() (float64, error) {
		return SumOfProducts(l.independent, l.dependent)
	})
}

// Slope returns covariance / var(x).
func (l *Linear) Slope() (float64, error) {
	return l.cached(SlotSlope, &l.slope, func() (float64, error) {
		covariance, err := l.Covariance()
		if err != nil {
			return 0, err
		}

		variance, err := l.independent.Variance()
		if err != nil {
			return 0, err
		}

		if variance == 0 {
			return 0, stats.ErrZeroVariance
		}

		return covariance / variance, nil
	})
}

// Intercept returns mean(y) − slope·mean(x).
func (l *Linear) Intercept() (float64, error) {
	return l.cached(SlotIntercept, &l.intercept, func() (float64, error) {
		slope, err := l.Slope()
		if err != nil {
			return 0, err
		}

		meanX, err := l.independent.ArithmeticMean()
		if err != nil {
			return 0, err
		}

		meanY, err := l.dependent.ArithmeticMean()
		if err != nil {
			return 0, err
		}

		return meanY - slope*meanX, nil
	})
}

// CorrelationCoefficient returns slope · sd(x) / sd(y).
func (l *Linear) CorrelationCoefficient() (float64, error) {
	return l.cached(SlotCorrelationCoefficient, &l.correlationCoefficient, func() (float64, error) {
		slope, err := l.Slope()
		if err != nil {
			return 0, err
		}

		sdX, err := l.independent.StandardDeviation()
		if err != nil {
			return 0, err
		}

		sdY, err := l.dependent.StandardDeviation()
		if err != nil {
			return 0, err
		}

		if sdY == 0 {
			return 0, stats.ErrZeroVariance
		}

		return slope * sdX / sdY, nil
	})
}

// StandardErrorSquared returns (N·Σy² − (Σy)² − slope²·(N·Σx² − (Σx)²)) / (N·(N − 2)).
func (l *Linear) StandardErrorSquared() (float64, error) {
	return l.cached(SlotStandardErrorSquared, &l.standardErrorSquared, func() (float64, error) {
		size := l.independent.Len()
		if size <= 2 {
			return 0, fmt.Errorf("%w: standard error needs 3, got %d", ErrTooFewValues, size)
		}

		slope, err := l.Slope()
		if err != nil {
			return 0, err
		}

		n := float64(size)
		slopeTerm := slope * slope * l.spreadX()
		numerator := n*l.dependent.SumOfSquares() - l.dependent.SquaredSum() - slopeTerm

		return numerator / (n * (n - 2)), nil
	})
}

// StandardError returns the square root of StandardErrorSquared.
func (l *Linear) StandardError() (float64, error) {
	return l.cached(SlotStandardError, &l.standardError, sqrtOf(l.StandardErrorSquared))
}

// SlopeErrorSquared returns N·StandardErrorSquared / (N·Σx² − (Σx)²).
func (l *Linear) SlopeErrorSquared() (float64, error) {
	return l.cached(SlotSlopeErrorSquared, &l.slopeErrorSquared, func() (float64, error) {
		se2, err := l.StandardErrorSquared()
		if err != nil {
			return 0, err
		}

		return float64(l.independent.Len()) * se2 / l.spreadX(), nil
	})
}

// SlopeError returns the square root of SlopeErrorSquared.
func (l *Linear) SlopeError() (float64, error) {
	return l.cached(SlotSlopeError, &l.slopeError, sqrtOf(l.SlopeErrorSquared))
}

// InterceptErrorSquared returns SlopeErrorSquared · Σx² / N.
func (l *Linear) InterceptErrorSquared() (float64, error) {
	return l.cached(SlotInterceptErrorSquared, &l.interceptErrorSquared, func() (float64, error) {
		slopeErr2, err := l.SlopeErrorSquared()
		if err != nil {
			return 0, err
		}

		return slopeErr2 * l.independent.SumOfSquares() / float64(l.independent.Len()), nil
	})
}

// InterceptError returns the square root of InterceptErrorSquared.
func (l *Linear) InterceptError() (float64, error) {
	return l.cached(SlotInterceptError, &l.interceptError, sqrtOf(l.InterceptErrorSquared))
}

// Predict returns intercept + slope·x.
func (l *Linear) Predict(x float64) (float64, error) {
	slope, err := l.Slope()
	if err != nil {
		return 0, err
	}

	intercept, err := l.Intercept()
	if err != nil {
		return 0, err
	}

	return intercept + slope*x, nil
}

// spreadX returns N·Σx² − (Σx)². It is positive whenever var(x) is.
func (l *Linear) spreadX() float64 {
	return float64(l.independent.Len())*l.independent.SumOfSquares() - l.independent.SquaredSum()
}

func sqrtOf(squared func() (float64, error)) func() (float64, error) {
	return func() (float64, error) {
		v, err := squared()
		if err != nil {
			return 0, err
		}

		return math.Sqrt(v), nil
	}
}
