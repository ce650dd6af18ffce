package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const meanDelta = 1e-9

func TestRealRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   float64
		power   int
		want    Root
		wantErr error
	}{
		{name: "cube_root", value: 8, power: 3, want: Root{Real: 2}},
		{name: "negative_odd", value: -8, power: 3, want: Root{Real: -2}},
		{name: "negative_even", value: -4, power: 2, want: Root{Imag: 2}},
		{name: "zero_value", value: 0, power: 3, want: Root{}},
		{name: "power_one", value: -5, power: 1, want: Root{Real: -5}},
		{name: "reciprocal", value: 4, power: -2, want: Root{Real: 0.5}},
		{name: "negative_reciprocal", value: -8, power: -3, want: Root{Real: -0.5}},
		{name: "zero_power", value: 4, power: 0, wantErr: ErrZeroRootPower},
		{name: "zero_base_negative_power", value: 0, power: -2, wantErr: ErrZeroBaseNegativePower},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RealRoot(tt.value, tt.power)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want.Real, got.Real, meanDelta)
			assert.InDelta(t, tt.want.Imag, got.Imag, meanDelta)
		})
	}
}

func TestRootRealValue(t *testing.T) {
	t.Parallel()

	v, err := Root{Real: 3}.RealValue()
	require.NoError(t, err)
	assert.InDelta(t, 3, v, 0)

	_, err = Root{Imag: 2}.RealValue()
	require.ErrorIs(t, err, ErrImaginaryResult)
	assert.Equal(t, complex(0, 2), Root{Imag: 2}.Complex())
}

func TestArithmeticMean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  []float64
		opts    []MeanOption
		want    float64
		wantErr error
	}{
		{name: "unweighted", values: []float64{1, 2, 3, 4}, want: 2.5},
		{name: "weighted_not_divided", values: []float64{1, 2, 3}, opts: []MeanOption{WithWeights([]float64{0.2, 0.3, 0.5})}, want: 2.3},
		{name: "equal_weights_unweighted", values: []float64{1, 2, 3}, opts: []MeanOption{WithWeights([]float64{2, 2, 2})}, want: 2},
		{
			name:   "normalized_weights",
			values: []float64{3, 6},
			opts:   []MeanOption{WithWeights([]float64{1, 3}), NormalizeWeights()},
			want:   10.5,
		},
		{name: "weight_count", values: []float64{1, 2}, opts: []MeanOption{WithWeights([]float64{1})}, wantErr: ErrWeightCount},
		{name: "empty", values: nil, wantErr: ErrNoValues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ArithmeticMean(tt.values, tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, meanDelta)
		})
	}
}

func TestGeometricMean(t *testing.T) {
	t.Parallel()

	got, err := GeometricMean([]float64{1, 2, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2, got.Real, meanDelta)

	got, err = GeometricMean([]float64{2, 8}, WithWeights([]float64{1, 3}))
	require.NoError(t, err)
	assert.InDelta(t, 5.656854249492381, got.Real, meanDelta)

	got, err = GeometricMean([]float64{-2, 8})
	require.NoError(t, err)
	assert.False(t, got.IsReal())
	assert.InDelta(t, 4, got.Imag, meanDelta)
}

func TestGeneralizedMean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		power   float64
		values  []float64
		opts    []MeanOption
		want    float64
		wantErr error
	}{
		{name: "harmonic", power: HarmonicPower, values: []float64{1, 2, 4}, want: 1.7142857142857142},
		{name: "geometric", power: GeometricPower, values: []float64{1, 2, 4}, want: 2},
		{name: "arithmetic", power: ArithmeticPower, values: []float64{1, 2, 4}, want: 7.0 / 3},
		{name: "quadratic", power: QuadraticPower, values: []float64{1, 2, 3, 4}, want: 2.7386127875258306},
		{name: "cubic_negative", power: CubicPower, values: []float64{-1, -2, -3}, want: -2.2894284851066637},
		{name: "single_value", power: 5, values: []float64{7}, want: 7},
		{name: "weighted_power", power: 2, values: []float64{1, 3}, opts: []MeanOption{WithWeights([]float64{0.5, 0.5 + 1e-12})}, want: 2.23606797749979},
		{name: "non_integer", power: 1.5, values: []float64{1, 2}, wantErr: ErrNonIntegerPower},
		{name: "empty", power: 2, values: nil, wantErr: ErrNoValues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := GeneralizedMean(tt.power, tt.values, tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Real, 1e-6)
		})
	}
}

func TestNamedMeans(t *testing.T) {
	t.Parallel()

	h, err := HarmonicMean([]float64{1, 2, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.7142857142857142, h.Real, meanDelta)

	q, err := QuadraticMean([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.7386127875258306, q, meanDelta)

	c, err := CubicMean([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2.2894284851066637, c, meanDelta)

	_, err = QuadraticMean([]float64{1, 2}, WithWeights([]float64{-1, 0}))
	require.ErrorIs(t, err, ErrImaginaryResult)
}
