package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var momentValues = []float64{2, 4, 4, 4, 5, 5, 7, 9}

func TestCentralMoment(t *testing.T) {
	t.Parallel()

	got, err := CentralMoment(2, 5, momentValues)
	require.NoError(t, err)
	assert.InDelta(t, 32, got, meanDelta)

	got, err = CentralMoment(1, 5, momentValues)
	require.NoError(t, err)
	assert.InDelta(t, 0, got, meanDelta)

	_, err = CentralMoment(0, 5, momentValues)
	require.ErrorIs(t, err, ErrNonPositiveOrdinal)

	_, err = CentralMoment(2, math.NaN(), momentValues)
	require.ErrorIs(t, err, ErrMissingMean)
}

func TestDispersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(float64, []float64) (float64, error)
		want float64
	}{
		{name: "variance", fn: Variance, want: 4},
		{name: "standard_deviation", fn: StandardDeviation, want: 2},
		{name: "skew", fn: Skew, want: 0.65625},
		{name: "kurtosis_excess", fn: KurtosisExcess, want: -0.21875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.fn(5, momentValues)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, meanDelta)
		})
	}
}

func TestDispersion_Errors(t *testing.T) {
	t.Parallel()

	_, err := Variance(0, nil)
	require.ErrorIs(t, err, ErrNoValues)

	_, err = Skew(3, []float64{3, 3, 3})
	require.ErrorIs(t, err, ErrZeroVariance)

	_, err = KurtosisExcess(3, []float64{3, 3, 3})
	require.ErrorIs(t, err, ErrZeroVariance)
}
