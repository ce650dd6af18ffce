package counter

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/arith"
)

var sampleValues = []int{1, 2, 3, 4, 4, 5, -3, -5, 1, 2, 3, 4, 5, -3}

func TestNew(t *testing.T) {
	t.Parallel()

	c := New(sampleValues...)

	assert.Equal(t, 7, c.Len())
	assert.Equal(t, 3, c.Get(4))
	assert.Equal(t, 1, c.Get(-5))
	assert.Equal(t, 0, c.Get(42))
	assert.Equal(t, len(sampleValues), c.Total())
	assert.Equal(t, []int{1, 2, 3, 4, 5, -3, -5}, c.Keys())
	assert.ElementsMatch(t, sampleValues, c.ToSlice())
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	c := New[string]()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.ToSlice())
	assert.Equal(t, "{}", c.String())
}

func TestFromMap_KeepsNonPositive(t *testing.T) {
	t.Parallel()

	c := FromMap(map[string]int{"a": 2, "b": 0, "c": -1})

	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Contains("b"))
	assert.Equal(t, -1, c.Get("c"))
	assert.Equal(t, []string{"a", "a"}, c.ToSlice())

	derived := FromCounter[string](c)
	assert.Equal(t, 1, derived.Len())
	assert.False(t, derived.Contains("c"))
}

func TestMutation(t *testing.T) {
	t.Parallel()

	c := New("x", "y", "x")

	c.Update("z", "x")
	assert.Equal(t, 3, c.Get("x"))

	c.Subtract("y", "y")
	assert.Equal(t, -1, c.Get("y"))

	c.Set("w", 5)
	assert.Equal(t, []string{"x", "y", "z", "w"}, c.Keys())

	f, ok := c.Pop("y")
	assert.True(t, ok)
	assert.Equal(t, -1, f)
	assert.False(t, c.Contains("y"))

	key, f, ok := c.PopItem()
	assert.True(t, ok)
	assert.Equal(t, "w", key)
	assert.Equal(t, 5, f)

	assert.False(t, c.Delete("missing"))
	assert.True(t, c.Delete("z"))
	assert.Equal(t, []string{"x"}, c.Keys())

	c.Clear()
	assert.Equal(t, 0, c.Len())

	_, _, ok = c.PopItem()
	assert.False(t, ok)
}

func TestCopy_Independent(t *testing.T) {
	t.Parallel()

	c := New(1, 1, 2)
	cp := c.Copy()
	cp.Update(1)

	assert.Equal(t, 2, c.Get(1))
	assert.Equal(t, 3, cp.Get(1))
}

func TestXorMap(t *testing.T) {
	t.Parallel()

	c := New(sampleValues...)
	got := c.XorMap(map[int]int{2: 4, 3: 5, 4: 9, 1: 3, 6: -2, 0: 3})

	assert.Equal(t, 5, got.Len())
	assert.Equal(t, 2, got.Get(5))
	assert.Equal(t, 2, got.Get(-3))
	assert.Equal(t, 1, got.Get(-5))
	assert.Equal(t, -2, got.Get(6))
	assert.Equal(t, 3, got.Get(0))
	assert.False(t, got.Contains(1))
	assert.ElementsMatch(t, []int{5, 5, -3, -3, -5, 0, 0, 0}, got.ToSlice())
}

func TestUniqueFrom(t *testing.T) {
	t.Parallel()

	c := New(sampleValues...)
	got := c.UniqueFrom(1, 2, 3, 4)

	assert.Equal(t, []int{5, -3, -5}, got.Keys())
	assert.Equal(t, 7, c.Len())
}

func TestCommonFrequencies(t *testing.T) {
	t.Parallel()

	c := New(sampleValues...)

	tests := []struct {
		name  string
		fn    func(int) ([]int, error)
		n     int
		want  []int
		isErr bool
	}{
		{name: "most one", fn: c.MostCommonFrequencies, n: 1, want: []int{3}},
		{name: "most two", fn: c.MostCommonFrequencies, n: 2, want: []int{3, 2}},
		{name: "most beyond distinct", fn: c.MostCommonFrequencies, n: 10, want: []int{3, 2, 1}},
		{name: "least one", fn: c.LeastCommonFrequencies, n: 1, want: []int{1}},
		{name: "least two", fn: c.LeastCommonFrequencies, n: 2, want: []int{1, 2}},
		{name: "zero", fn: c.MostCommonFrequencies, n: 0, isErr: true},
		{name: "negative", fn: c.LeastCommonFrequencies, n: -1, isErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.fn(tt.n)
			if tt.isErr {
				require.ErrorIs(t, err, ErrNonPositiveQuantity)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValuesWithFrequencies(t *testing.T) {
	t.Parallel()

	c := New(sampleValues...)

	got := c.ValuesWithFrequencies(func(f int) bool { return f == 2 })
	assert.Equal(t, []int{1, 2, 3, 5, -3}, got)
}

func TestMostAndLeastCommon(t *testing.T) {
	t.Parallel()

	c := New(sampleValues...)

	assert.Equal(t, []Entry[int]{{Key: 4, Frequency: 3}, {Key: 1, Frequency: 2}}, c.MostCommon(2))
	assert.Equal(t, []Entry[int]{{Key: -5, Frequency: 1}}, c.LeastCommon(1))
	assert.Len(t, c.MostCommon(0), 7)
}

func TestFrequencyView(t *testing.T) {
	t.Parallel()

	c := New(1, 1, 2, 3, 3, 3)

	added, err := c.Frequencies().Add(1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 4}, added.Frequencies().Values())
	assert.Equal(t, []int{2, 1, 3}, c.Frequencies().Values())

	halved, err := c.Frequencies().Div(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, halved.Frequencies().Values())

	_, err = c.Frequencies().Mod(0)
	require.ErrorIs(t, err, arith.ErrDivisionByZero)

	neg := c.Frequencies().Neg()
	assert.Equal(t, []int{-2, -1, -3}, neg.Frequencies().Values())
	assert.Empty(t, neg.ToSlice())
	assert.Equal(t, []int{2, 1, 3}, neg.Frequencies().Abs().Frequencies().Values())

	_, err = c.Frequencies().ApplyInPlace(arith.Pow, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 1, 9}, c.Frequencies().Values())
	assert.True(t, c.Frequencies().Contains(9))
}

func TestKeyView(t *testing.T) {
	t.Parallel()

	c := New(1, 1, 2)

	shifted, err := Keys(c).Add(10)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12}, shifted.Keys())
	assert.Equal(t, 2, shifted.Get(11))

	merged := Keys(New(-1, 1, 1)).Abs()
	assert.Equal(t, 1, merged.Len())
	assert.Equal(t, 3, merged.Get(1))

	parity, err := Keys(New(1, 2, 3, 4)).Mod(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, parity.Keys())
	assert.Equal(t, 2, parity.Get(0))

	_, err = Keys(c).FloorDiv(0)
	require.ErrorIs(t, err, arith.ErrDivisionByZero)

	Keys(c).NegInPlace()
	assert.Equal(t, []int{-1, -2}, c.Keys())
}

func TestKeyView_IntegerRange(t *testing.T) {
	t.Parallel()

	small := New[int8](100, 1)

	_, err := Keys(small).Add(100)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = Keys(small).ApplyInPlace(arith.Mul, 2)
	require.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, []int8{100, 1}, small.Keys())

	halved, err := Keys(New[int8](-5, 5)).Div(2)
	require.NoError(t, err)
	assert.Equal(t, []int8{-2, 2}, halved.Keys())

	const big = int64(1)<<62 + 1

	negated := Keys(New(big, -big)).Neg()
	assert.Equal(t, []int64{-big, big}, negated.Keys())

	absolute := Keys(New(-big, big)).Abs()
	assert.Equal(t, []int64{big}, absolute.Keys())
	assert.Equal(t, 2, absolute.Get(big))
}

func TestFrequencyView_Overflow(t *testing.T) {
	t.Parallel()

	c := FromMap(map[string]int{"a": math.MaxInt, "b": 1})

	_, err := c.Frequencies().ApplyInPlace(arith.Mul, 2)
	require.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, math.MaxInt, c.Get("a"))
	assert.Equal(t, 1, c.Get("b"))

	_, err = New("x").Frequencies().Sub(2)
	require.NoError(t, err)

	_, err = FromMap(map[string]int{"z": 0}).Frequencies().Pow(-1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestFrozen_RoundTripRandomData(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))

	for range 200 {
		values := make([]int, rng.IntN(60))
		for i := range values {
			values[i] = rng.IntN(21) - 10
		}

		got := New(values...).Immutable().Mutable().ToSlice()

		want := slices.Clone(values)
		slices.Sort(want)
		slices.Sort(got)
		assert.Equal(t, want, got, values)
	}
}

func TestFrozen(t *testing.T) {
	t.Parallel()

	f := New(sampleValues...).Immutable()

	assert.NotImplements(t, (*Mutator[int])(nil), f)
	assert.Implements(t, (*Reader[int])(nil), f)
	assert.Equal(t, 7, f.Len())

	first := f.ToSlice()
	first[0] = 99
	assert.ElementsMatch(t, sampleValues, f.ToSlice())

	m := f.Mutable()
	m.Update(1)
	assert.Equal(t, 2, f.Get(1))

	assert.Equal(t, []int{5, -3, -5}, f.UniqueFrom(1, 2, 3, 4).Keys())
	assert.Equal(t, []int{2, 3, 4, 5, -3, -5}, f.Xor(New(1, 7)).Keys()[:6])
	assert.Equal(t, 1, f.Xor(New(1, 7)).Get(7))
}

func TestFrozenHashAndEqual(t *testing.T) {
	t.Parallel()

	a := Freeze(1, 2, 2, 3)
	b := Freeze(3, 2, 1, 2)
	c := Freeze(1, 2, 3)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Hash(), a.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.Equal(New(2, 2, 1, 3)))
	assert.Equal(t, "frozen{1: 1, 2: 2, 3: 1}", a.String())
}
