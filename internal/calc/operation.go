package calc

import (
	"fmt"
	"strings"
)

// Operation names an arithmetic operation.
type Operation string

// Supported operations.
const (
	OpAdd    Operation = "add"
	OpDivide Operation = "divide"
)

var operationAliases = map[string]Operation{
	"add":    OpAdd,
	"+":      OpAdd,
	"plus":   OpAdd,
	"sum":    OpAdd,
	"divide": OpDivide,
	"/":      OpDivide,
	"div":    OpDivide,
	"quo":    OpDivide,
}

// Operations returns the supported operations in display order.
func Operations() []Operation {
	return []Operation{OpAdd, OpDivide}
}

// ParseOperation resolves an operation name or symbol,
// case-insensitively.
func ParseOperation(s string) (Operation, error) {
	op, ok := operationAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
	return op, nil
}

// Symbol returns the infix symbol for op, or the operation name when
// it has none.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpDivide:
		return "/"
	default:
		return string(op)
	}
}
