package mapx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Clone[float64, int](nil))

	frequencies := map[float64]int{1: 2, 3.5: 1}
	got := Clone(frequencies)
	assert.Equal(t, frequencies, got)

	got[7] = 1
	assert.NotContains(t, frequencies, 7.0)
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   map[string]string
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "empty", in: map[string]string{}, want: []string{}},
		{name: "slots", in: map[string]string{"skew": "x", "kurtosis_excess": "y", "median": "z"}, want: []string{"kurtosis_excess", "median", "skew"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SortedKeys(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)

				return
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCloneSlice(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CloneSlice[float64](nil))
	assert.Equal(t, []float64{}, CloneSlice([]float64{}))

	values := []float64{1, 2, 3}
	got := CloneSlice(values)
	got[0] = 99

	assert.Equal(t, []float64{1, 2, 3}, values)
	assert.Equal(t, []float64{99, 2, 3}, got)
}
