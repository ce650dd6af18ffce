package statset

import (
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/arith"
)

// Transform returns a new Set of fn(x) for each value.
func (s *Set) Transform(fn func(float64) float64) *Set {
	out := make([]float64, len(s.values))

	for i, v := range s.values {
		out[i] = fn(v)
	}

	return s.derive(out)
}

// VectorTransform returns a new Set of fn(x, y) for each pair of this Set's
// values and other, which must have the same length.
func (s *Set) VectorTransform(fn func(x, y float64) float64, other []float64) (*Set, error) {
	if len(other) != len(s.values) {
		return nil, fmt.Errorf("%w: %d and %d", ErrSizeMismatch, len(s.values), len(other))
	}

	out := make([]float64, len(s.values))

	for i, v := range s.values {
		out[i] = fn(v, other[i])
	}

	return s.derive(out), nil
}

// Abs returns a new Set of |x|.
func (s *Set) Abs() *Set { return s.Transform(math.Abs) }

// Neg returns a new Set of −x.
func (s *Set) Neg() *Set { return s.Transform(func(x float64) float64 { return -x }) }

// Pos returns a new Set with the same values.
func (s *Set) Pos() *Set { return s.Transform(func(x float64) float64 { return x }) }

// Add returns a new Set of x + scalar.
func (s *Set) Add(scalar float64) *Set { return s.apply(arith.Add, scalar) }

// Sub returns a new Set of x − scalar.
func (s *Set) Sub(scalar float64) *Set { return s.apply(arith.Sub, scalar) }

// Mul returns a new Set of x · scalar.
func (s *Set) Mul(scalar float64) *Set { return s.apply(arith.Mul, scalar) }

// Pow returns a new Set of x^scalar.
func (s *Set) Pow(scalar float64) *Set { return s.apply(arith.Pow, scalar) }

// Div returns a new Set of x / scalar.
func (s *Set) Div(scalar float64) (*Set, error) { return s.Apply(arith.Div, scalar) }

// FloorDiv returns a new Set of ⌊x / scalar⌋.
func (s *Set) FloorDiv(scalar float64) (*Set, error) { return s.Apply(arith.FloorDiv, scalar) }

// Mod returns a new Set of x mod scalar, with the sign of scalar.
func (s *Set) Mod(scalar float64) (*Set, error) { return s.Apply(arith.Mod, scalar) }

// Apply returns a new Set of x op scalar. Division-like operators reject a zero scalar.
func (s *Set) Apply(op arith.Operator, scalar float64) (*Set, error) {
	err := op.CheckOperand(scalar)
	if err != nil {
		return nil, err
	}

	return s.apply(op, scalar), nil
}

func (s *Set) apply(op arith.Operator, scalar float64) *Set {
	return s.Transform(func(x float64) float64 { return op.Apply(x, scalar) })
}

// Combine returns a new Set of x op y for each pair of this Set's values and other.
func (s *Set) Combine(op arith.Operator, other []float64) (*Set, error) {
	if len(other) != len(s.values) {
		return nil, fmt.Errorf("%w: %d and %d", ErrSizeMismatch, len(s.values), len(other))
	}

	out := make([]float64, len(s.values))

	for i, v := range s.values {
		r, err := op.Checked(v, other[i])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		out[i] = r
	}

	return s.derive(out), nil
}

// CombineSet is Combine with the values of another Set.
func (s *Set) CombineSet(op arith.Operator, other *Set) (*Set, error) {
	return s.Combine(op, other.values)
}
