package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which numeric representation a Value holds.
type Kind uint8

// Value kinds.
const (
	KindInt Kind = iota
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a numeric operand or result. It holds either a 64-bit
// integer or a float64, and the zero Value is Int(0).
//
// Values are comparable: two Values are == when both the kind and the
// payload match, so Int(3) != Float(3).
type Value struct {
	kind Kind
	i    int64
	f    float64
}

// Int returns an integer Value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float returns a floating-point Value.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Kind reports the representation of v.
func (v Value) Kind() Kind { return v.kind }

// IsInt reports whether v holds an integer.
func (v Value) IsInt() bool { return v.kind == KindInt }

// Int64 returns v as an int64, truncating floats toward zero.
func (v Value) Int64() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// Float64 returns v as a float64.
func (v Value) Float64() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// IsZero reports whether v is numerically zero (including -0.0).
func (v Value) IsZero() bool {
	if v.kind == KindFloat {
		return v.f == 0
	}
	return v.i == 0
}

// String renders ints in base 10 and floats in their shortest
// round-trip form. Integral floats keep a trailing ".0" so the kind
// stays visible.
func (v Value) String() string {
	if v.kind == KindInt {
		return strconv.FormatInt(v.i, 10)
	}
	return formatFloat(v.f)
}

// Format renders v with a fixed number of decimals for floats.
// A negative precision falls back to String.
func (v Value) Format(precision int) string {
	if v.kind == KindInt || precision < 0 || isNonFinite(v.f) {
		return v.String()
	}
	return strconv.FormatFloat(v.f, 'f', precision, 64)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// ParseValue parses operand text. Base-10 integers become KindInt,
// integers too large for int64 and anything else Go's float parser
// accepts become KindFloat.
func ParseValue(s string) (Value, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Value{}, fmt.Errorf("%w: empty operand", ErrInvalidOperand)
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i), nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidOperand, s)
	}
	return Float(f), nil
}

// MarshalJSON encodes finite values as JSON numbers and non-finite
// floats as strings ("+Inf", "-Inf", "NaN").
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindFloat && isNonFinite(v.f) {
		return json.Marshal(formatFloat(v.f))
	}
	return []byte(v.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. A JSON
// null leaves v unchanged.
func (v *Value) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" {
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	parsed, err := ParseValue(text)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
