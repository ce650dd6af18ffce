package stats

import (
	"fmt"
	"math"
)

// Root is a possibly complex root. Only one of Real and Imag is non-zero
// for roots produced by RealRoot.
type Root struct {
	Real float64
	Imag float64
}

// IsReal reports whether the imaginary part is zero.
func (r Root) IsReal() bool {
	return r.Imag == 0
}

// RealValue returns the real part, or ErrImaginaryResult if there is an imaginary one.
func (r Root) RealValue() (float64, error) {
	if !r.IsReal() {
		return 0, fmt.Errorf("%w: %v", ErrImaginaryResult, r.Complex())
	}

	return r.Real, nil
}

// Complex returns r as a complex128.
func (r Root) Complex() complex128 {
	return complex(r.Real, r.Imag)
}

// RealRoot returns the power-th root of value.
//
// A negative value with an odd power has a negative real root; with an even
// power the root is reported on the positive imaginary axis.
// A negative power yields the reciprocal of the |power|-th root.
func RealRoot(value float64, power int) (Root, error) {
	switch {
	case power == 0:
		return Root{}, ErrZeroRootPower
	case value == 0 && power < 0:
		return Root{}, fmt.Errorf("%w: power %d", ErrZeroBaseNegativePower, power)
	case value == 0 || power == 1:
		return Root{Real: value}, nil
	}

	r := math.Pow(math.Abs(value), 1/math.Abs(float64(power)))
	if power < 0 {
		r = 1 / r
	}

	if value > 0 {
		return Root{Real: r}, nil
	}

	if power%2 != 0 {
		return Root{Real: -r}, nil
	}

	return Root{Imag: r}, nil
}
