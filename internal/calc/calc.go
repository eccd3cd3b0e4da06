// Package calc implements the calculator: addition and division over
// a numeric union of 64-bit integers and float64 values.
//
// Numeric promotion follows the usual rules. Integer inputs stay
// integers while the exact result is representable as an int64, and
// anything else is computed in float64.
//
// Division by zero is always an error. Divide returns
// ErrDivisionByZero for a zero divisor of either kind and never
// produces an infinity or NaN sentinel for it.
package calc

import (
	"math"
)

// Calculator performs arithmetic on Values. It holds no state; the
// zero value is ready to use.
type Calculator struct{}

// New returns a Calculator.
func New() *Calculator {
	return &Calculator{}
}

// Add returns a + b. Two integers produce an integer unless the sum
// overflows int64, in which case the float64 sum is returned.
func (c *Calculator) Add(a, b Value) Value {
	if a.IsInt() && b.IsInt() {
		sum := a.i + b.i
		// Overflow iff both operands share a sign the sum does not.
		if (a.i >= 0) == (b.i >= 0) && (sum >= 0) != (a.i >= 0) {
			return Float(float64(a.i) + float64(b.i))
		}
		return Int(sum)
	}
	return Float(a.Float64() + b.Float64())
}

// Divide returns dividend / divisor. An integer quotient is returned
// only when both operands are integers and the division is exact;
// otherwise the result is a float.
//
// A zero divisor yields ErrDivisionByZero.
func (c *Calculator) Divide(dividend, divisor Value) (Value, error) {
	if divisor.IsZero() {
		return Value{}, ErrDivisionByZero
	}

	if dividend.IsInt() && divisor.IsInt() {
		if dividend.i == math.MinInt64 && divisor.i == -1 {
			return Float(-float64(dividend.i)), nil
		}
		if dividend.i%divisor.i == 0 {
			return Int(dividend.i / divisor.i), nil
		}
	}
	return Float(dividend.Float64() / divisor.Float64()), nil
}

// Apply runs op on the two operands.
func (c *Calculator) Apply(op Operation, a, b Value) (Value, error) {
	switch op {
	case OpAdd:
		return c.Add(a, b), nil
	case OpDivide:
		return c.Divide(a, b)
	default:
		return Value{}, ErrUnknownOperation
	}
}

// Evaluate runs op and records the outcome. Errors are captured in
// the returned Evaluation rather than returned.
func (c *Calculator) Evaluate(op Operation, a, b Value) Evaluation {
	e := Evaluation{
		Operation: op,
		Operands:  []Value{a, b},
	}
	result, err := c.Apply(op, a, b)
	if err != nil {
		e.Err = err
		e.Error = err.Error()
		return e
	}
	e.Result = &result
	return e
}
