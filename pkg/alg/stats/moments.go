package stats

import (
	"fmt"
	"math"
)

// Moment ordinals.
const (
	varianceOrdinal = 2
	skewOrdinal     = 3
	kurtosisOrdinal = 4

	normalKurtosis = 3
)

// CentralMoment returns Σ(x − mean)^ordinal. It is not normalized by the value count.
// A NaN mean is treated as missing.
func CentralMoment(ordinal int, mean float64, values []float64) (float64, error) {
	if ordinal <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrNonPositiveOrdinal, ordinal)
	}

	if math.IsNaN(mean) {
		return 0, ErrMissingMean
	}

	var sum float64

	for _, v := range values {
		sum += math.Pow(v-mean, float64(ordinal))
	}

	return sum, nil
}

// Variance returns the second central moment divided by n.
func Variance(mean float64, values []float64) (float64, error) {
	return normalizedMoment(varianceOrdinal, mean, values)
}

// StandardDeviation returns the square root of Variance.
func StandardDeviation(mean float64, values []float64) (float64, error) {
	variance, err := Variance(mean, values)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(variance), nil
}

// Skew returns m3 / (variance·sd) / n.
func Skew(mean float64, values []float64) (float64, error) {
	variance, err := nonZeroVariance(mean, values)
	if err != nil {
		return 0, err
	}

	m3, err := normalizedMoment(skewOrdinal, mean, values)
	if err != nil {
		return 0, err
	}

	return m3 / (variance * math.Sqrt(variance)), nil
}

// KurtosisExcess returns m4 / variance² / n − 3.
func KurtosisExcess(mean float64, values []float64) (float64, error) {
	variance, err := nonZeroVariance(mean, values)
	if err != nil {
		return 0, err
	}

	m4, err := normalizedMoment(kurtosisOrdinal, mean, values)
	if err != nil {
		return 0, err
	}

	return m4/(variance*variance) - normalKurtosis, nil
}

func normalizedMoment(ordinal int, mean float64, values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}

	m, err := CentralMoment(ordinal, mean, values)
	if err != nil {
		return 0, err
	}

	return m / float64(len(values)), nil
}

func nonZeroVariance(mean float64, values []float64) (float64, error) {
	variance, err := Variance(mean, values)
	if err != nil {
		return 0, err
	}

	if variance == 0 {
		return 0, ErrZeroVariance
	}

	return variance, nil
}
