package calc

// Number is the set of Go integer and floating-point types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Sum returns a + b in T's own arithmetic.
func Sum[T Number](a, b T) T {
	return a + b
}

// Quotient returns dividend / divisor in T's own arithmetic, so
// integer types truncate. A zero divisor yields ErrDivisionByZero.
func Quotient[T Number](dividend, divisor T) (T, error) {
	if divisor == 0 {
		var zero T
		return zero, ErrDivisionByZero
	}
	return dividend / divisor, nil
}
