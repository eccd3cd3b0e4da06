package calc

import "errors"

var (
	// ErrDivisionByZero is returned by Divide whenever the divisor is
	// zero, for integer and float divisors alike.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidOperand is returned when operand text is not a number.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrUnknownOperation is returned for an operation name that does
	// not resolve to add or divide.
	ErrUnknownOperation = errors.New("unknown operation")
)
