// Package batch decodes YAML files listing calculator operations and
// evaluates them in order.
package batch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/unbound-force/calc/internal/calc"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyBatch is returned when a batch lists no operations.
	ErrEmptyBatch = errors.New("batch has no operations")

	// ErrMissingOperand is returned when an entry lacks a or b.
	ErrMissingOperand = errors.New("missing operand")
)

// File is the on-disk batch document.
type File struct {
	Operations []Entry `yaml:"operations"`
}

// Entry is one operation in a batch.
type Entry struct {
	Op string  `yaml:"op"`
	A  Operand `yaml:"a"`
	B  Operand `yaml:"b"`
}

// Operand is a calc.Value decoded from a YAML scalar.
type Operand struct {
	calc.Value

	// Set is false when the key was absent from the entry.
	Set bool
}

// UnmarshalYAML decodes !!int and !!float scalars (including .inf
// and .nan) and quoted numeric strings.
func (o *Operand) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: expected a number", node.Line, calc.ErrInvalidOperand)
	}

	switch node.ShortTag() {
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			o.Value, o.Set = calc.Int(i), true
			return nil
		}
	case "!!float":
		var f float64
		if err := node.Decode(&f); err == nil {
			o.Value, o.Set = calc.Float(f), true
			return nil
		}
	}

	v, err := calc.ParseValue(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	o.Value, o.Set = v, true
	return nil
}

// Parse decodes a batch document from r. Unknown keys are rejected.
func Parse(r io.Reader) ([]Entry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBatch
		}
		return nil, fmt.Errorf("decoding batch: %w", err)
	}

	if len(f.Operations) == 0 {
		return nil, ErrEmptyBatch
	}

	for i, e := range f.Operations {
		if !e.A.Set {
			return nil, fmt.Errorf("operation %d: %w a", i+1, ErrMissingOperand)
		}
		if !e.B.Set {
			return nil, fmt.Errorf("operation %d: %w b", i+1, ErrMissingOperand)
		}
	}
	return f.Operations, nil
}

// Load reads and parses the batch file at path.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Run evaluates every entry with c. A failing entry is recorded in its
// Evaluation and does not stop the run.
func Run(c *calc.Calculator, entries []Entry) []calc.Evaluation {
	evals := make([]calc.Evaluation, 0, len(entries))
	for _, e := range entries {
		op, err := calc.ParseOperation(e.Op)
		if err != nil {
			evals = append(evals, calc.Evaluation{
				Operation: calc.Operation(e.Op),
				Operands:  []calc.Value{e.A.Value, e.B.Value},
				Error:     err.Error(),
				Err:       err,
			})
			continue
		}
		evals = append(evals, c.Evaluate(op, e.A.Value, e.B.Value))
	}
	return evals
}

// Failed counts the evaluations that returned an error.
func Failed(evals []calc.Evaluation) int {
	n := 0
	for _, e := range evals {
		if e.Failed() {
			n++
		}
	}
	return n
}
