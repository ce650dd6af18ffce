package partition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedianBehavior(t *testing.T) {
	t.Parallel()

	assert.True(t, IncludeBoth.Includes(IncludeLow))
	assert.True(t, IncludeBoth.Includes(IncludeHigh))
	assert.False(t, IncludeLow.Includes(IncludeHigh))
	assert.False(t, ExcludeBoth.Includes(IncludeLow))
	assert.False(t, IncludeBoth.Includes(ExcludeBoth))

	for _, b := range []MedianBehavior{ExcludeBoth, IncludeLow, IncludeHigh, IncludeBoth} {
		parsed, err := ParseMedianBehavior(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}

	parsed, err := ParseMedianBehavior(" Include_Both ")
	require.NoError(t, err)
	assert.Equal(t, IncludeBoth, parsed)

	_, err = ParseMedianBehavior("middle")
	require.ErrorIs(t, err, ErrUnknownMedianBehavior)
}

func TestSplitPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		count     int
		behavior  MedianBehavior
		wantLower PlanValue
		wantUpper PlanValue
	}{
		{name: "even", count: 4, behavior: ExcludeBoth, wantLower: PlanValue{0, 2}, wantUpper: PlanValue{2, 2}},
		{name: "even_ignores_behavior", count: 6, behavior: IncludeBoth, wantLower: PlanValue{0, 3}, wantUpper: PlanValue{3, 3}},
		{name: "odd_exclude_both", count: 5, behavior: ExcludeBoth, wantLower: PlanValue{0, 2}, wantUpper: PlanValue{3, 2}},
		{name: "odd_include_low", count: 5, behavior: IncludeLow, wantLower: PlanValue{0, 3}, wantUpper: PlanValue{3, 2}},
		{name: "odd_include_high", count: 5, behavior: IncludeHigh, wantLower: PlanValue{0, 2}, wantUpper: PlanValue{2, 3}},
		{name: "odd_include_both", count: 5, behavior: IncludeBoth, wantLower: PlanValue{0, 3}, wantUpper: PlanValue{2, 3}},
		{name: "three_exclude_both", count: 3, behavior: ExcludeBoth, wantLower: PlanValue{0, 1}, wantUpper: PlanValue{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lower, upper, err := SplitPlan(tt.count, tt.behavior)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLower, lower)
			assert.Equal(t, tt.wantUpper, upper)
		})
	}
}

func TestSplitPlan_TooFew(t *testing.T) {
	t.Parallel()

	for _, count := range []int{-1, 0, 1} {
		_, _, err := SplitPlan(count, ExcludeBoth)
		require.ErrorIs(t, err, ErrInsufficientValues)
	}
}

func TestPartitionPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		n     int
		count int
		opts  []Option
		want  []PlanValue
	}{
		{name: "single", n: 1, count: 7, want: []PlanValue{{0, 7}}},
		{name: "thirds_round", n: 3, count: 10, want: []PlanValue{{0, 3}, {3, 4}, {7, 3}}},
		{name: "thirds_floor", n: 3, count: 10, opts: []Option{WithFencing(math.Floor)}, want: []PlanValue{{0, 3}, {3, 3}, {6, 4}}},
		{name: "quarters_half_away", n: 4, count: 10, want: []PlanValue{{0, 3}, {3, 2}, {5, 3}, {8, 2}}},
		{name: "one_each", n: 4, count: 4, want: []PlanValue{{0, 1}, {1, 1}, {2, 1}, {3, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := PartitionPlan(tt.n, tt.count, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			total := 0
			next := 0

			for _, p := range got {
				assert.Equal(t, next, p.Start)

				next = p.End()
				total += p.Length
			}

			assert.Equal(t, tt.count, total)
		})
	}
}

func TestPartitionPlan_Errors(t *testing.T) {
	t.Parallel()

	_, err := PartitionPlan(0, 10)
	require.ErrorIs(t, err, ErrInsufficientPartitions)

	_, err = PartitionPlan(5, 4)
	require.ErrorIs(t, err, ErrInsufficientValues)
}

func TestSplitAndPartition(t *testing.T) {
	t.Parallel()

	values := []int{5, 1, 4, 2, 3}

	lower, upper, err := Split(values, IncludeBoth)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, lower)
	assert.Equal(t, []int{3, 4, 5}, upper)
	assert.Equal(t, []int{5, 1, 4, 2, 3}, values)

	groups, err := Partition(2, values)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5}}, groups)
}
