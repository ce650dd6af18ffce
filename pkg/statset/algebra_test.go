package statset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/arith"
)

func TestSet_ScalarAlgebra(t *testing.T) {
	t.Parallel()

	s := newSet(t, []float64{-3, 1, 4}, Population(), WithLabel("base"))

	tests := []struct {
		name string
		got  *Set
		want []float64
	}{
		{name: "abs", got: s.Abs(), want: []float64{3, 1, 4}},
		{name: "neg", got: s.Neg(), want: []float64{3, -1, -4}},
		{name: "pos", got: s.Pos(), want: []float64{-3, 1, 4}},
		{name: "add", got: s.Add(2), want: []float64{-1, 3, 6}},
		{name: "sub", got: s.Sub(1), want: []float64{-4, 0, 3}},
		{name: "mul", got: s.Mul(-2), want: []float64{6, -2, -8}},
		{name: "pow", got: s.Pow(2), want: []float64{9, 1, 16}},
		{name: "transform", got: s.Transform(math.Abs), want: []float64{3, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.got.Values())
			assert.Empty(t, tt.got.Label())
			assert.True(t, tt.got.IsSample())
			assert.Empty(t, tt.got.Cached())
		})
	}

	assert.Equal(t, []float64{-3, 1, 4}, s.Values())
}

func TestSet_DivisionLike(t *testing.T) {
	t.Parallel()

	s := newSet(t, []float64{-7, 7, 9})

	div, err := s.Div(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3.5, 3.5, 4.5}, div.Values())

	floor, err := s.FloorDiv(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{-4, 3, 4}, floor.Values())

	mod, err := s.Mod(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 0}, mod.Values())

	for _, op := range []arith.Operator{arith.Div, arith.FloorDiv, arith.Mod} {
		_, err = s.Apply(op, 0)
		require.ErrorIs(t, err, arith.ErrDivisionByZero)
	}

	_, err = s.Apply(arith.Operator(99), 1)
	require.ErrorIs(t, err, arith.ErrUnknownOperator)
}

func TestSet_Combine(t *testing.T) {
	t.Parallel()

	s := newSet(t, []float64{1, 2, 3})
	other := newSet(t, []float64{4, 5, 6})

	sum, err := s.CombineSet(arith.Add, other)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, sum.Values())

	product, err := s.Combine(arith.Mul, []float64{2, 2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 12, product.Sum(), 0)

	_, err = s.Combine(arith.Add, []float64{1})
	require.ErrorIs(t, err, ErrSizeMismatch)

	_, err = s.Combine(arith.Div, []float64{1, 0, 1})
	require.ErrorIs(t, err, arith.ErrDivisionByZero)

	diff, err := s.VectorTransform(func(x, y float64) float64 { return y - x }, []float64{2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, -1}, diff.Values())

	_, err = s.VectorTransform(func(x, y float64) float64 { return x }, nil)
	require.ErrorIs(t, err, ErrSizeMismatch)
}

func TestSet_DerivedSharesRecorder(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := newSet(t, []float64{1, 2, 3}, WithRecorder(rec))

	s.Add(1).Sum()

	assert.Equal(t, []string{SlotSum}, rec.slots())
}
