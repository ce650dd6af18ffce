package arith

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		op       Operator
		a, b     float64
		expected float64
	}{
		{name: "add", op: Add, a: 3, b: 2, expected: 5},
		{name: "sub", op: Sub, a: 3, b: 2, expected: 1},
		{name: "mul", op: Mul, a: 3, b: 2, expected: 6},
		{name: "div", op: Div, a: 3, b: 2, expected: 1.5},
		{name: "floordiv_positive", op: FloorDiv, a: 7, b: 2, expected: 3},
		{name: "floordiv_negative", op: FloorDiv, a: -7, b: 2, expected: -4},
		{name: "mod_positive", op: Mod, a: 7, b: 3, expected: 1},
		{name: "mod_negative_dividend", op: Mod, a: -5, b: 2, expected: 1},
		{name: "mod_negative_divisor", op: Mod, a: 5, b: -2, expected: -1},
		{name: "pow", op: Pow, a: 3, b: 2, expected: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tt.expected, tt.op.Apply(tt.a, tt.b), 1e-12)
		})
	}
}

func TestOperatorChecked(t *testing.T) {
	t.Parallel()

	t.Run("zero_divisor", func(t *testing.T) {
		t.Parallel()

		for _, op := range []Operator{Div, FloorDiv, Mod} {
			_, err := op.Checked(1, 0)
			require.ErrorIs(t, err, ErrDivisionByZero, op.String())
		}
	})

	t.Run("zero_operand_allowed_for_add", func(t *testing.T) {
		t.Parallel()

		got, err := Add.Checked(1, 0)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("unknown_operator", func(t *testing.T) {
		t.Parallel()

		_, err := Operator(42).Checked(1, 1)
		require.ErrorIs(t, err, ErrUnknownOperator)
		assert.True(t, math.IsNaN(Operator(42).Apply(1, 1)))
	})
}

func TestOperatorString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "floordiv", FloorDiv.String())
	assert.Equal(t, "operator(-1)", Operator(-1).String())
}
