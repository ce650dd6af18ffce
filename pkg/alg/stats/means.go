package stats

import (
	"fmt"
	"math"
)

// Orders of the named generalized means.
const (
	HarmonicPower   = -1
	GeometricPower  = 0
	ArithmeticPower = 1
	QuadraticPower  = 2
	CubicPower      = 3
)

// MeanOption configures a mean computation.
type MeanOption func(*meanConfig)

type meanConfig struct {
	weights   []float64
	normalize bool
}

// WithWeights weights each value. The weight count must match the value count.
// Weighted sums are not divided by the value count; pass NormalizeWeights for that.
func WithWeights(weights []float64) MeanOption {
	return func(c *meanConfig) {
		c.weights = weights
	}
}

// NormalizeWeights divides each weight by the value count.
func NormalizeWeights() MeanOption {
	return func(c *meanConfig) {
		c.normalize = true
	}
}

// resolveWeights returns nil when the mean is unweighted, which includes
// the case of all weights being equal.
func resolveWeights(n int, opts []MeanOption) ([]float64, error) {
	var cfg meanConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.weights == nil {
		return nil, nil
	}

	if len(cfg.weights) != n {
		return nil, fmt.Errorf("%w: %d weights for %d values", ErrWeightCount, len(cfg.weights), n)
	}

	if allEqual(cfg.weights) {
		return nil, nil
	}

	weights := make([]float64, n)

	for i, w := range cfg.weights {
		if cfg.normalize {
			w /= float64(n)
		}

		weights[i] = w
	}

	return weights, nil
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}

	return true
}

// GeneralizedMean returns the power mean of values: the power-th root of the
// (optionally weighted) mean of x^power. Power 1 is the arithmetic mean and
// power 0 the geometric mean. A single value is its own mean.
func GeneralizedMean(power float64, values []float64, opts ...MeanOption) (Root, error) {
	if len(values) == 0 {
		return Root{}, ErrNoValues
	}

	if power != math.Trunc(power) || math.IsInf(power, 0) {
		return Root{}, fmt.Errorf("%w: %v", ErrNonIntegerPower, power)
	}

	weights, err := resolveWeights(len(values), opts)
	if err != nil {
		return Root{}, err
	}

	if len(values) == 1 {
		return Root{Real: values[0]}, nil
	}

	switch int(power) {
	case ArithmeticPower:
		return Root{Real: arithmeticMean(values, weights)}, nil
	case GeometricPower:
		return geometricMean(values, weights)
	}

	p := int(power)

	var acc float64

	for i, v := range values {
		term := math.Pow(v, power)
		if weights != nil {
			term *= weights[i]
		}

		acc += term
	}

	if weights == nil {
		acc /= float64(len(values))
	}

	return RealRoot(acc, p)
}

// ArithmeticMean returns Σx/n, or Σw·x when weighted.
func ArithmeticMean(values []float64, opts ...MeanOption) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}

	weights, err := resolveWeights(len(values), opts)
	if err != nil {
		return 0, err
	}

	return arithmeticMean(values, weights), nil
}

// GeometricMean returns the n-th root of the product of values,
// or exp(Σw·ln x / Σw) when weighted.
func GeometricMean(values []float64, opts ...MeanOption) (Root, error) {
	if len(values) == 0 {
		return Root{}, ErrNoValues
	}

	weights, err := resolveWeights(len(values), opts)
	if err != nil {
		return Root{}, err
	}

	return geometricMean(values, weights)
}

// HarmonicMean returns the generalized mean of power −1.
func HarmonicMean(values []float64, opts ...MeanOption) (Root, error) {
	return GeneralizedMean(HarmonicPower, values, opts...)
}

// QuadraticMean returns the root mean square of values.
func QuadraticMean(values []float64, opts ...MeanOption) (float64, error) {
	return realMean(QuadraticPower, values, opts)
}

// CubicMean returns the generalized mean of power 3.
func CubicMean(values []float64, opts ...MeanOption) (float64, error) {
	return realMean(CubicPower, values, opts)
}

func realMean(power float64, values []float64, opts []MeanOption) (float64, error) {
	root, err := GeneralizedMean(power, values, opts...)
	if err != nil {
		return 0, err
	}

	return root.RealValue()
}

func arithmeticMean(values, weights []float64) float64 {
	var sum float64

	for i, v := range values {
		if weights != nil {
			v *= weights[i]
		}

		sum += v
	}

	if weights != nil {
		return sum
	}

	return sum / float64(len(values))
}

func geometricMean(values, weights []float64) (Root, error) {
	if weights == nil {
		product := 1.0

		for _, v := range values {
			product *= v
		}

		return RealRoot(product, len(values))
	}

	var logSum, weightSum float64

	for i, v := range values {
		logSum += weights[i] * math.Log(v)
		weightSum += weights[i]
	}

	return Root{Real: math.Exp(logSum / weightSum)}, nil
}
