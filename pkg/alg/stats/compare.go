package stats

import (
	"fmt"
	"math"
)

// RelativeOption configures RelativeError and RelativeDifference.
type RelativeOption func(*relativeConfig)

type relativeConfig struct {
	signed bool
	scale  float64
}

// Signed keeps the sign of the result instead of returning its magnitude.
func Signed() RelativeOption {
	return func(c *relativeConfig) {
		c.signed = true
	}
}

// Scale multiplies the result, e.g. by 100 for a percentage.
func Scale(s float64) RelativeOption {
	return func(c *relativeConfig) {
		c.scale = s
	}
}

func (c relativeConfig) finish(v float64) float64 {
	if !c.signed {
		v = math.Abs(v)
	}

	return v * c.scale
}

func newRelativeConfig(opts []RelativeOption) relativeConfig {
	cfg := relativeConfig{scale: 1}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// RelativeError returns (oracle − experimental) / oracle.
func RelativeError(experimental, oracle float64, opts ...RelativeOption) (float64, error) {
	if oracle == 0 {
		return 0, ErrZeroOracle
	}

	return newRelativeConfig(opts).finish((oracle - experimental) / oracle), nil
}

// RelativeDifference returns 2(b − a) / (|a| + |b|). Two zeros differ by nothing.
func RelativeDifference(a, b float64, opts ...RelativeOption) float64 {
	denom := math.Abs(a) + math.Abs(b)
	if denom == 0 {
		return 0
	}

	return newRelativeConfig(opts).finish(2 * (b - a) / denom)
}

func checkTolerance(tol float64) error {
	if tol < 0 || math.IsNaN(tol) {
		return fmt.Errorf("%w: %v", ErrNegativeTolerance, tol)
	}

	return nil
}

// Less reports a < b + tol.
func Less(a, b, tol float64) (bool, error) {
	if err := checkTolerance(tol); err != nil {
		return false, err
	}

	return a < b+tol, nil
}

// LessEqual reports a <= b + tol.
func LessEqual(a, b, tol float64) (bool, error) {
	if err := checkTolerance(tol); err != nil {
		return false, err
	}

	return a <= b+tol, nil
}

// Greater reports a + tol > b.
func Greater(a, b, tol float64) (bool, error) {
	return Less(b, a, tol)
}

// GreaterEqual reports a + tol >= b.
func GreaterEqual(a, b, tol float64) (bool, error) {
	return LessEqual(b, a, tol)
}

// Equal reports |a − b| < tol.
func Equal(a, b, tol float64) (bool, error) {
	if err := checkTolerance(tol); err != nil {
		return false, err
	}

	return math.Abs(a-b) < tol, nil
}

// NotEqual is the negation of Equal.
func NotEqual(a, b, tol float64) (bool, error) {
	eq, err := Equal(a, b, tol)
	if err != nil {
		return false, err
	}

	return !eq, nil
}
