package calc

import "strings"

// Evaluation is the record of a single computation.
type Evaluation struct {
	Operation Operation `json:"operation"`
	Operands  []Value   `json:"operands"`

	// Result is nil when the computation failed.
	Result *Value `json:"result,omitempty"`

	// Error is the failure message; Err keeps the original error
	// for errors.Is checks.
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

// Failed reports whether the computation returned an error.
func (e Evaluation) Failed() bool {
	return e.Err != nil || e.Error != ""
}

// Expression renders the computation in infix form, e.g. "7 / 2".
func (e Evaluation) Expression() string {
	parts := make([]string, len(e.Operands))
	for i, v := range e.Operands {
		parts[i] = v.String()
	}
	return strings.Join(parts, " "+e.Operation.Symbol()+" ")
}
