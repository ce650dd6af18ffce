// Package statset provides Set, an immutable data set whose descriptive
// statistics are computed lazily and cached once per Set.
//
// Statistics depend on one another (variance needs the mean, skew needs the
// variance, the median needs the quartiles). Each statistic lives in its own
// cache cell, so asking for one computes exactly the ones it needs. A failed
// computation is returned to the caller and is not cached.
//
// Transformations never modify a Set; they return a new, lazily evaluated one.
package statset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/counter"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/quartile"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/stats"
	"github.com/Sumatoshi-tech/statkit/pkg/cache"
)

// ErrSizeMismatch is returned when two data sets must have the same size and do not.
var ErrSizeMismatch = errors.New("data sets differ in size")

// Recorder observes every statistic computation of a Set.
type Recorder interface {
	RecordComputation(slot string, elapsed time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordComputation(string, time.Duration, error) {}

// Option configures a Set.
type Option func(*Set)

// WithLabel names the Set in logs and reports.
func WithLabel(label string) Option {
	return func(s *Set) { s.label = label }
}

// Population marks the values as a whole population.
func Population() Option {
	return func(s *Set) { s.sample = false }
}

// Sample marks the values as a sample of a larger population. This is the default.
func Sample() Option {
	return func(s *Set) { s.sample = true }
}

// Eager computes every statistic during New.
func Eager() Option {
	return func(s *Set) { s.eager = true }
}

// WithLogger logs cache fills at Debug level. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Set) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder reports each computation to r. A nil recorder is ignored.
func WithRecorder(r Recorder) Option {
	return func(s *Set) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithQuartileOptions configures the quartile computation behind the
// median, minimum, maximum and range.
func WithQuartileOptions(opts ...quartile.Option) Option {
	return func(s *Set) { s.quartileOpts = append(s.quartileOpts, opts...) }
}

// Set is an immutable data set with lazily cached statistics.
// A Set is safe for concurrent use.
type Set struct {
	values []float64
	label  string
	sample bool
	eager  bool

	logger       *slog.Logger
	recorder     Recorder
	quartileOpts []quartile.Option

	sorted        cache.Cell[[]float64]
	frequency     cache.Cell[*counter.Frozen[float64]]
	unique        cache.Cell[[]float64]
	sum           cache.Cell[float64]
	squaredSum    cache.Cell[float64]
	sumOfSquares  cache.Cell[float64]
	arithmetic    cache.Cell[float64]
	geometric     cache.Cell[stats.Root]
	harmonic      cache.Cell[stats.Root]
	quadratic     cache.Cell[float64]
	cubic         cache.Cell[float64]
	modes         cache.Cell[[]float64]
	modeFrequency cache.Cell[int]
	mostFrequent  cache.Cell[[]float64]
	leastFrequent cache.Cell[[]float64]
	quartiles     cache.Cell[*quartile.Info]
	minimum       cache.Cell[float64]
	maximum       cache.Cell[float64]
	valueRange    cache.Cell[float64]
	median        cache.Cell[float64]
	lowMedian     cache.Cell[float64]
	highMedian    cache.Cell[float64]
	medianCount   cache.Cell[int]
	variance      cache.Cell[float64]
	stdDev        cache.Cell[float64]
	skew          cache.Cell[float64]
	kurtosis      cache.Cell[float64]
	scores        cache.Cell[*Set]
}

// New copies values into a Set. It only fails when Eager is given and
// some statistic cannot be computed.
func New(values []float64, opts ...Option) (*Set, error) {
	s := &Set{
		values:   slices.Clone(values),
		sample:   true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: noopRecorder{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.eager {
		err := s.Compute()
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// derive builds a lazy Set over values that shares this Set's logger,
// recorder and quartile options but not its label or flags.
func (s *Set) derive(values []float64) *Set {
	return &Set{
		values:       values,
		sample:       true,
		logger:       s.logger,
		recorder:     s.recorder,
		quartileOpts: s.quartileOpts,
	}
}

// Len returns the number of values.
func (s *Set) Len() int { return len(s.values) }

// Values returns a copy of the values in their original order.
func (s *Set) Values() []float64 { return slices.Clone(s.values) }

// Label returns the Set's label.
func (s *Set) Label() string { return s.label }

// IsSample reports whether the values are a sample rather than a population.
func (s *Set) IsSample() bool { return s.sample }

// Slot names, in computation order.
const (
	SlotSorted              = "sorted"
	SlotFrequency           = "frequency_distribution"
	SlotUniqueValues        = "unique_values"
	SlotSum                 = "sum"
	SlotSquaredSum          = "squared_sum"
	SlotSumOfSquares        = "sum_of_squares"
	SlotArithmeticMean      = "arithmetic_mean"
	SlotGeometricMean       = "geometric_mean"
	SlotHarmonicMean        = "harmonic_mean"
	SlotQuadraticMean       = "quadratic_mean"
	SlotCubicMean           = "cubic_mean"
	SlotModes               = "modes"
	SlotModeFrequency       = "mode_frequency"
	SlotMostFrequentValues  = "most_frequent_values"
	SlotLeastFrequentValues = "least_frequent_values"
	SlotQuartiles           = "quartiles"
	SlotMinimum             = "minimum"
	SlotMaximum             = "maximum"
	SlotRange               = "range"
	SlotMedian              = "median"
	SlotLowMedian           = "low_median"
	SlotHighMedian          = "high_median"
	SlotMedianCount         = "median_count"
	SlotVariance            = "variance"
	SlotStandardDeviation   = "standard_deviation"
	SlotSkew                = "skew"
	SlotKurtosisExcess      = "kurtosis_excess"
	SlotStandardScores      = "standard_scores"
)

type slot struct {
	name    string
	cell    interface{ HasValue() bool }
	compute func() error
}

func (s *Set) slots() []slot {
	return []slot{
		{SlotSorted, &s.sorted, discard(noErr(s.Sorted))},
		{SlotFrequency, &s.frequency, discard(noErr(s.FrequencyDistribution))},
		{SlotUniqueValues, &s.unique, discard(noErr(s.UniqueValues))},
		{SlotSum, &s.sum, discard(noErr(s.Sum))},
		{SlotSquaredSum, &s.squaredSum, discard(noErr(s.SquaredSum))},
		{SlotSumOfSquares, &s.sumOfSquares, discard(noErr(s.SumOfSquares))},
		{SlotArithmeticMean, &s.arithmetic, discard(s.ArithmeticMean)},
		{SlotGeometricMean, &s.geometric, discard(s.GeometricMean)},
		{SlotHarmonicMean, &s.harmonic, discard(s.HarmonicMean)},
		{SlotQuadraticMean, &s.quadratic, discard(s.QuadraticMean)},
		{SlotCubicMean, &s.cubic, discard(s.CubicMean)},
		{SlotModes, &s.modes, discard(s.Modes)},
		{SlotModeFrequency, &s.modeFrequency, discard(s.ModeFrequency)},
		{SlotMostFrequentValues, &s.mostFrequent, discard(s.MostFrequentValues)},
		{SlotLeastFrequentValues, &s.leastFrequent, discard(s.LeastFrequentValues)},
		{SlotQuartiles, &s.quartiles, discard(s.Quartiles)},
		{SlotMinimum, &s.minimum, discard(s.Minimum)},
		{SlotMaximum, &s.maximum, discard(s.Maximum)},
		{SlotRange, &s.valueRange, discard(s.Range)},
		{SlotMedian, &s.median, discard(s.Median)},
		{SlotLowMedian, &s.lowMedian, discard(s.LowMedian)},
		{SlotHighMedian, &s.highMedian, discard(s.HighMedian)},
		{SlotMedianCount, &s.medianCount, discard(s.MedianCount)},
		{SlotVariance, &s.variance, discard(s.Variance)},
		{SlotStandardDeviation, &s.stdDev, discard(s.StandardDeviation)},
		{SlotSkew, &s.skew, discard(s.Skew)},
		{SlotKurtosisExcess, &s.kurtosis, discard(s.KurtosisExcess)},
		{SlotStandardScores, &s.scores, discard(s.StandardScores)},
	}
}

func noErr[T any](fn func() T) func() (T, error) {
	return func() (T, error) { return fn(), nil }
}

func discard[T any](fn func() (T, error)) func() error {
	return func() error {
		_, err := fn()

		return err
	}
}

// Slots returns the names of every cached statistic.
func (s *Set) Slots() []string {
	slots := s.slots()
	names := make([]string, 0, len(slots))

	for _, sl := range slots {
		names = append(names, sl.name)
	}

	return names
}

// Cached returns the names of the statistics computed so far.
func (s *Set) Cached() []string {
	var names []string

	for _, sl := range s.slots() {
		if sl.cell.HasValue() {
			names = append(names, sl.name)
		}
	}

	return names
}

// Compute fills every cache cell. Statistics that cannot be computed for
// this data, such as the skew of constant values, are reported together.
func (s *Set) Compute() error {
	var errs []error

	for _, sl := range s.slots() {
		err := sl.compute()
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// cached fills cell through compute, timing and reporting the computation.
func cached[T any](s *Set, name string, cell *cache.Cell[T], compute func() (T, error)) (T, error) {
	return cell.Get(func() (T, error) {
		start := time.Now()
		value, err := compute()
		elapsed := time.Since(start)

		s.recorder.RecordComputation(name, elapsed, err)

		if err != nil {
			s.logger.Debug("statistic failed", "set", s.label, "slot", name, "error", err)

			return value, fmt.Errorf("%s: %w", name, err)
		}

		s.logger.Debug("statistic computed", "set", s.label, "slot", name, "duration", elapsed)

		return value, nil
	})
}

// infallible is cached for statistics that cannot fail.
func infallible[T any](s *Set, name string, cell *cache.Cell[T], compute func() T) T {
	value, _ := cached(s, name, cell, func() (T, error) { return compute(), nil })

	return value
}
