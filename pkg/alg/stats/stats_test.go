package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		val, lo, hi float64
		expected    float64
	}{
		{name: "within_range", val: 5.0, lo: 0.0, hi: 10.0, expected: 5.0},
		{name: "below_min", val: -1.0, lo: 0.0, hi: 10.0, expected: 0.0},
		{name: "above_max", val: 15.0, lo: 0.0, hi: 10.0, expected: 10.0},
		{name: "at_min", val: 0.0, lo: 0.0, hi: 10.0, expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Clamp(tt.val, tt.lo, tt.hi)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

func TestMinMaxSum(t *testing.T) {
	t.Parallel()

	t.Run("empty_returns_zero", func(t *testing.T) {
		t.Parallel()

		assert.InDelta(t, 0, Min([]float64{}), 0)
		assert.InDelta(t, 0, Max([]float64{}), 0)
		assert.InDelta(t, 0, Sum([]float64{}), 0)
	})

	t.Run("float_elements", func(t *testing.T) {
		t.Parallel()

		values := []float64{3.0, 1.0, 4.0, 1.5, 9.0}
		assert.InDelta(t, 1.0, Min(values), 0.0001)
		assert.InDelta(t, 9.0, Max(values), 0.0001)
		assert.InDelta(t, 18.5, Sum(values), 0.0001)
	})

	t.Run("int_elements", func(t *testing.T) {
		t.Parallel()

		values := []int{3, 1, 4, 1, 5}
		assert.Equal(t, 1, Min(values))
		assert.Equal(t, 5, Max(values))
		assert.Equal(t, 14, Sum(values))
	})
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []float64
		p        float64
		expected float64
	}{
		{name: "empty_returns_zero", input: nil, p: 0.5, expected: 0},
		{name: "single_element", input: []float64{7.0}, p: 0.5, expected: 7.0},
		{name: "median_even", input: []float64{1.0, 2.0, 3.0, 4.0}, p: 0.5, expected: 2.5},
		{name: "p95_of_100", input: makeSequence(100), p: 0.95, expected: 95.05},
		{name: "p0_is_min", input: []float64{5.0, 1.0, 9.0}, p: 0, expected: 1.0},
		{name: "p100_is_max", input: []float64{5.0, 1.0, 9.0}, p: 1.0, expected: 9.0},
		{name: "above_one_clamped", input: []float64{5.0, 1.0, 9.0}, p: 2, expected: 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Percentile(tt.input, tt.p)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

func TestStandardScore(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.5, StandardScore(8, 5, 2), 0)
	assert.InDelta(t, -1, StandardScore(3, 5, 2), 0)
}

// makeSequence returns [1.0, 2.0, ..., n].
func makeSequence(n int) []float64 {
	result := make([]float64, n)

	for i := range result {
		result[i] = float64(i + 1)
	}

	return result
}
