package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/stats"
	"github.com/Sumatoshi-tech/statkit/pkg/statset"
)

// Sentinel errors.
var (
	// ErrSizeMismatch is returned when data sets differ in size.
	ErrSizeMismatch = statset.ErrSizeMismatch
	// ErrKindMismatch is returned when samples and populations are mixed.
	ErrKindMismatch = errors.New("data sets mix samples and populations")
	// ErrTooFewSets is returned when fewer than two data sets are given.
	ErrTooFewSets = errors.New("at least two data sets are required")
	// ErrTooFewValues is returned when the data sets are too small for the statistic.
	ErrTooFewValues = errors.New("too few values")
	// ErrExpectedValueCount is returned when the expected values do not match the data sets.
	ErrExpectedValueCount = errors.New("expected value count differs from data set count")
)

// CovarianceOption configures Covariance and the Pearson coefficients.
type CovarianceOption func(*covarianceConfig)

type covarianceConfig struct {
	expected  []float64
	checkKind bool
}

// WithExpectedValues sets the expected value of each data set, in order.
// A NaN entry falls back to that set's arithmetic mean.
func WithExpectedValues(values ...float64) CovarianceOption {
	return func(c *covarianceConfig) { c.expected = values }
}

// CheckKind requires every data set to be a sample, or every one a population.
func CheckKind() CovarianceOption {
	return func(c *covarianceConfig) { c.checkKind = true }
}

func newCovarianceConfig(opts []CovarianceOption) covarianceConfig {
	var cfg covarianceConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// validateSets checks that there are at least two sets of one size and,
// when checkKind is set, of one kind.
func validateSets(sets []*statset.Set, checkKind bool) error {
	if len(sets) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewSets, len(sets))
	}

	size := sets[0].Len()

	for _, set := range sets[1:] {
		if set.Len() != size {
			return fmt.Errorf("%w: %d and %d", ErrSizeMismatch, size, set.Len())
		}
	}

	if !checkKind {
		return nil
	}

	for _, set := range sets[1:] {
		if set.IsSample() != sets[0].IsSample() {
			return ErrKindMismatch
		}
	}

	return nil
}

// Covariance returns Σ Π(xₖ − eₖ) / N across the data sets, where eₖ is the
// expected value of set k, its arithmetic mean unless overridden.
func Covariance(sets []*statset.Set, opts ...CovarianceOption) (float64, error) {
	cfg := newCovarianceConfig(opts)

	err := validateSets(sets, cfg.checkKind)
	if err != nil {
		return 0, err
	}

	expected, err := expectedValues(sets, cfg.expected)
	if err != nil {
		return 0, err
	}

	size := sets[0].Len()
	if size == 0 {
		return 0, stats.ErrNoValues
	}

	centered := make([][]float64, len(sets))
	for k, set := range sets {
		centered[k] = set.Sub(expected[k]).Values()
	}

	return sumOfProducts(centered) / float64(size), nil
}

func expectedValues(sets []*statset.Set, given []float64) ([]float64, error) {
	if given != nil && len(given) != len(sets) {
		return nil, fmt.Errorf("%w: %d values for %d sets", ErrExpectedValueCount, len(given), len(sets))
	}

	expected := make([]float64, len(sets))

	for k, set := range sets {
		if given != nil && !math.IsNaN(given[k]) {
			expected[k] = given[k]

			continue
		}

		mean, err := set.ArithmeticMean()
		if err != nil {
			return nil, err
		}

		expected[k] = mean
	}

	return expected, nil
}

// PopulationPearson returns the covariance divided by the product of the
// sets' standard deviations.
func PopulationPearson(sets []*statset.Set, opts ...CovarianceOption) (float64, error) {
	covariance, err := Covariance(sets, opts...)
	if err != nil {
		return 0, err
	}

	product := 1.0

	for _, set := range sets {
		sd, sdErr := set.StandardDeviation()
		if sdErr != nil {
			return 0, sdErr
		}

		product *= sd
	}

	if product == 0 {
		return 0, stats.ErrZeroVariance
	}

	return covariance / product, nil
}

// SamplePearson returns Σ Π zₖ / (N − 1), where zₖ are the standard scores of set k.
func SamplePearson(sets []*statset.Set, opts ...CovarianceOption) (float64, error) {
	cfg := newCovarianceConfig(opts)

	err := validateSets(sets, cfg.checkKind)
	if err != nil {
		return 0, err
	}

	size := sets[0].Len()
	if size < 2 {
		return 0, fmt.Errorf("%w: sample correlation needs 2, got %d", ErrTooFewValues, size)
	}

	scores := make([][]float64, len(sets))

	for k, set := range sets {
		z, zErr := set.StandardScores()
		if zErr != nil {
			return 0, zErr
		}

		scores[k] = z.Values()
	}

	return sumOfProducts(scores) / float64(size-1), nil
}

// Pearson returns the sample or population correlation coefficient,
// chosen by the kind of the data sets, which must agree.
func Pearson(sets []*statset.Set, opts ...CovarianceOption) (float64, error) {
	err := validateSets(sets, true)
	if err != nil {
		return 0, err
	}

	if sets[0].IsSample() {
		return SamplePearson(sets, opts...)
	}

	return PopulationPearson(sets, opts...)
}

// sumOfProducts returns Σᵢ Πₖ columns[k][i] over equal-length columns.
func sumOfProducts(columns [][]float64) float64 {
	var sum float64

	for i := range columns[0] {
		product := 1.0

		for _, column := range columns {
			product *= column[i]
		}

		sum += product
	}

	return sum
}
