// Package arith provides the binary scalar operators shared by counter views
// and data set algebra.
package arith

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivisionByZero is returned when a division-like operator gets a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// ErrUnknownOperator is returned for an Operator outside the defined set.
var ErrUnknownOperator = errors.New("unknown operator")

// Operator is a binary arithmetic operator.
type Operator int

// Supported operators.
const (
	Add Operator = iota
	Sub
	Mul
	Div
	FloorDiv
	Mod
	Pow
)

var operatorNames = [...]string{
	Add:      "add",
	Sub:      "sub",
	Mul:      "mul",
	Div:      "div",
	FloorDiv: "floordiv",
	Mod:      "mod",
	Pow:      "pow",
}

// String returns the operator name.
func (op Operator) String() string {
	if op < Add || op > Pow {
		return fmt.Sprintf("operator(%d)", int(op))
	}

	return operatorNames[op]
}

// Valid reports whether op is one of the defined operators.
func (op Operator) Valid() bool {
	return op >= Add && op <= Pow
}

// Apply evaluates a op b on float64 operands.
// Division by zero follows IEEE-754 (±Inf or NaN); use Checked to reject it.
// Mod and FloorDiv use floored semantics: the result of Mod has the sign of b.
func (op Operator) Apply(a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		return a / b
	case FloorDiv:
		return math.Floor(a / b)
	case Mod:
		return floorMod(a, b)
	case Pow:
		return math.Pow(a, b)
	default:
		return math.NaN()
	}
}

// Checked evaluates a op b, rejecting unknown operators and zero divisors.
func (op Operator) Checked(a, b float64) (float64, error) {
	if !op.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownOperator, int(op))
	}

	if b == 0 && op.divides() {
		return 0, fmt.Errorf("%s %v by %v: %w", op, a, b, ErrDivisionByZero)
	}

	return op.Apply(a, b), nil
}

// CheckOperand validates op against a scalar operand without evaluating it.
func (op Operator) CheckOperand(b float64) error {
	_, err := op.Checked(0, b)

	return err
}

func (op Operator) divides() bool {
	return op == Div || op == FloorDiv || op == Mod
}

func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}

	return r
}
