package counter

import (
	"fmt"
	"math"
	"slices"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/arith"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/mapx"
)

// FrequencyView applies arithmetic to the frequencies of a Counter.
// The key set never changes. Results are truncated toward zero.
type FrequencyView[K comparable] struct {
	c *Counter[K]
}

// Frequencies returns the frequency view of c.
func (c *Counter[K]) Frequencies() FrequencyView[K] {
	return FrequencyView[K]{c: c}
}

// Values returns the frequencies in key insertion order.
func (v FrequencyView[K]) Values() []int {
	out := make([]int, 0, len(v.c.order))

	for _, k := range v.c.order {
		out = append(out, v.c.counts[k])
	}

	return out
}

// Len returns the number of frequencies (one per key).
func (v FrequencyView[K]) Len() int {
	return len(v.c.order)
}

// Contains reports whether any key has the given frequency.
func (v FrequencyView[K]) Contains(frequency int) bool {
	return slices.Contains(v.Values(), frequency)
}

// Apply returns a new Counter whose frequencies are f op scalar.
func (v FrequencyView[K]) Apply(op arith.Operator, scalar int) (*Counter[K], error) {
	return v.c.Copy().Frequencies().ApplyInPlace(op, scalar)
}

// ApplyInPlace replaces each frequency f with f op scalar and returns the Counter.
func (v FrequencyView[K]) ApplyInPlace(op arith.Operator, scalar int) (*Counter[K], error) {
	err := op.CheckOperand(float64(scalar))
	if err != nil {
		return nil, err
	}

	results := make(map[K]int, len(v.c.order))

	for _, k := range v.c.order {
		f := v.c.counts[k]

		r := op.Apply(float64(f), float64(scalar))
		if math.IsNaN(r) || r < math.MinInt || r >= -math.MinInt {
			return nil, fmt.Errorf("%w: frequency %d %s %d", ErrOverflow, f, op, scalar)
		}

		results[k] = int(r)
	}

	for k, f := range results {
		v.c.counts[k] = f
	}

	return v.c, nil
}

// Add returns a new Counter with scalar added to every frequency.
func (v FrequencyView[K]) Add(scalar int) (*Counter[K], error) { return v.Apply(arith.Add, scalar) }

// Sub returns a new Counter with scalar subtracted from every frequency.
func (v FrequencyView[K]) Sub(scalar int) (*Counter[K], error) { return v.Apply(arith.Sub, scalar) }

// Mul returns a new Counter with every frequency scaled by scalar.
func (v FrequencyView[K]) Mul(scalar int) (*Counter[K], error) { return v.Apply(arith.Mul, scalar) }

// Div returns a new Counter with every frequency divided by scalar.
func (v FrequencyView[K]) Div(scalar int) (*Counter[K], error) { return v.Apply(arith.Div, scalar) }

// FloorDiv returns a new Counter with every frequency floor-divided by scalar.
func (v FrequencyView[K]) FloorDiv(scalar int) (*Counter[K], error) {
	return v.Apply(arith.FloorDiv, scalar)
}

// Mod returns a new Counter with every frequency reduced modulo scalar.
func (v FrequencyView[K]) Mod(scalar int) (*Counter[K], error) { return v.Apply(arith.Mod, scalar) }

// Pow returns a new Counter with every frequency raised to scalar.
func (v FrequencyView[K]) Pow(scalar int) (*Counter[K], error) { return v.Apply(arith.Pow, scalar) }

// Neg returns a new Counter with negated frequencies.
func (v FrequencyView[K]) Neg() *Counter[K] {
	return v.c.Copy().Frequencies().NegInPlace()
}

// NegInPlace negates every frequency.
func (v FrequencyView[K]) NegInPlace() *Counter[K] {
	v.transform(func(f int) int { return -f })

	return v.c
}

// Abs returns a new Counter with absolute frequencies.
func (v FrequencyView[K]) Abs() *Counter[K] {
	return v.c.Copy().Frequencies().AbsInPlace()
}

// AbsInPlace replaces every frequency with its absolute value.
func (v FrequencyView[K]) AbsInPlace() *Counter[K] {
	v.transform(func(f int) int { return max(f, -f) })

	return v.c
}

// Pos returns an unchanged copy.
func (v FrequencyView[K]) Pos() *Counter[K] {
	return v.c.Copy()
}

func (v FrequencyView[K]) transform(fn func(int) int) {
	for _, k := range v.c.order {
		v.c.counts[k] = fn(v.c.counts[k])
	}
}

// KeyView applies arithmetic to the keys of a numeric Counter.
// Keys that collide after the transform have their frequencies summed.
// Operators evaluate in float64; integer keys are truncated toward zero
// and a result outside the key type fails with ErrOverflow. Neg and Abs
// use native negation, which wraps the smallest integer onto itself.
type KeyView[K mapx.Numeric] struct {
	c *Counter[K]
}

// Keys returns the key view of a numeric Counter.
func Keys[K mapx.Numeric](c *Counter[K]) KeyView[K] {
	return KeyView[K]{c: c}
}

// Values returns the keys in insertion order.
func (v KeyView[K]) Values() []K {
	return v.c.Keys()
}

// Len returns the number of keys.
func (v KeyView[K]) Len() int {
	return len(v.c.order)
}

// Contains reports whether key is present.
func (v KeyView[K]) Contains(key K) bool {
	return v.c.Contains(key)
}

// Apply returns a new Counter whose keys are k op scalar.
func (v KeyView[K]) Apply(op arith.Operator, scalar K) (*Counter[K], error) {
	return Keys(v.c.Copy()).ApplyInPlace(op, scalar)
}

// ApplyInPlace replaces each key k with k op scalar and returns the Counter.
func (v KeyView[K]) ApplyInPlace(op arith.Operator, scalar K) (*Counter[K], error) {
	s := float64(scalar)

	err := op.CheckOperand(s)
	if err != nil {
		return nil, err
	}

	keys := make(map[K]K, len(v.c.order))

	for _, k := range v.c.order {
		r := op.Apply(float64(k), s)

		nk := K(r)
		if integral[K]() && float64(nk) != math.Trunc(r) {
			return nil, fmt.Errorf("%w: key %v %s %v", ErrOverflow, k, op, scalar)
		}

		keys[k] = nk
	}

	v.transform(func(k K) K { return keys[k] })

	return v.c, nil
}

// Add returns a new Counter with scalar added to every key.
func (v KeyView[K]) Add(scalar K) (*Counter[K], error) { return v.Apply(arith.Add, scalar) }

// Sub returns a new Counter with scalar subtracted from every key.
func (v KeyView[K]) Sub(scalar K) (*Counter[K], error) { return v.Apply(arith.Sub, scalar) }

// Mul returns a new Counter with every key scaled by scalar.
func (v KeyView[K]) Mul(scalar K) (*Counter[K], error) { return v.Apply(arith.Mul, scalar) }

// Div returns a new Counter with every key divided by scalar.
func (v KeyView[K]) Div(scalar K) (*Counter[K], error) { return v.Apply(arith.Div, scalar) }

// FloorDiv returns a new Counter with every key floor-divided by scalar.
func (v KeyView[K]) FloorDiv(scalar K) (*Counter[K], error) { return v.Apply(arith.FloorDiv, scalar) }

// Mod returns a new Counter with every key reduced modulo scalar.
func (v KeyView[K]) Mod(scalar K) (*Counter[K], error) { return v.Apply(arith.Mod, scalar) }

// Pow returns a new Counter with every key raised to scalar.
func (v KeyView[K]) Pow(scalar K) (*Counter[K], error) { return v.Apply(arith.Pow, scalar) }

// Neg returns a new Counter with negated keys.
func (v KeyView[K]) Neg() *Counter[K] {
	return Keys(v.c.Copy()).NegInPlace()
}

// NegInPlace negates every key.
func (v KeyView[K]) NegInPlace() *Counter[K] {
	v.transform(func(k K) K { return -k })

	return v.c
}

// Abs returns a new Counter with absolute keys.
func (v KeyView[K]) Abs() *Counter[K] {
	return Keys(v.c.Copy()).AbsInPlace()
}

// AbsInPlace replaces every key with its absolute value.
func (v KeyView[K]) AbsInPlace() *Counter[K] {
	v.transform(func(k K) K {
		if k < 0 {
			return -k
		}

		return k
	})

	return v.c
}

// Pos returns an unchanged copy.
func (v KeyView[K]) Pos() *Counter[K] {
	return v.c.Copy()
}

// integral reports whether K is an integer type.
func integral[K mapx.Numeric]() bool {
	half := 0.5

	return K(half) == 0
}

func (v KeyView[K]) transform(fn func(K) K) {
	counts := make(map[K]int, len(v.c.counts))
	order := make([]K, 0, len(v.c.order))

	for _, k := range v.c.order {
		nk := fn(k)
		if _, ok := counts[nk]; !ok {
			order = append(order, nk)
		}

		counts[nk] += v.c.counts[k]
	}

	v.c.counts = counts
	v.c.order = order
}
