// Package stats provides the numeric building blocks of descriptive statistics:
// means of several kinds, real roots, central moments, relative errors,
// tolerance comparisons, modes and medians.
// Dispersion measures use population normalization (÷n, not ÷(n−1)).
package stats

import (
	"cmp"
	"errors"
	"math"
	"slices"
)

// Validation errors.
var (
	ErrNoValues              = errors.New("at least one value is required")
	ErrWeightCount           = errors.New("weight count does not match value count")
	ErrNonIntegerPower       = errors.New("power must be an integer")
	ErrZeroRootPower         = errors.New("root power must be non-zero")
	ErrZeroBaseNegativePower = errors.New("zero has no root of negative power")
	ErrImaginaryResult       = errors.New("result has an imaginary part")
	ErrNonPositiveOrdinal    = errors.New("moment ordinal must be positive")
	ErrMissingMean           = errors.New("mean is required")
	ErrZeroVariance          = errors.New("variance is zero")
	ErrZeroOracle            = errors.New("oracle value must be non-zero")
	ErrNegativeTolerance     = errors.New("tolerance must be non-negative")
)

// Percentile returns the p-th percentile of values using linear interpolation.
// p must be in [0, 1]. The input slice is not modified (a copy is sorted internally).
// Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	count := len(values)
	if count == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	idx := Clamp(p, 0, 1) * float64(count-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if lower == upper || upper >= count {
		return sorted[lower]
	}

	frac := idx - float64(lower)

	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// Clamp restricts val to the range [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return max(lo, min(val, hi))
}

// Min returns the smallest element in values.
// Returns the zero value of T for an empty slice.
func Min[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	return slices.Min(values)
}

// Max returns the largest element in values.
// Returns the zero value of T for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	return slices.Max(values)
}

// Sum returns the sum of all elements in values.
// Returns the zero value of T for an empty slice.
func Sum[T cmp.Ordered](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}

// StandardScore returns (x − mean) / sd.
func StandardScore(x, mean, sd float64) float64 {
	return (x - mean) / sd
}
