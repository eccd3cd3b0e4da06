// Package report renders calculator evaluations as JSON or
// human-readable styled text.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/calc/internal/calc"
)

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version string            `json:"version"`
	Results []calc.Evaluation `json:"results"`
}

// WriteJSON writes evaluations as formatted JSON to the writer.
func WriteJSON(w io.Writer, evals []calc.Evaluation, version string) error {
	if evals == nil {
		evals = []calc.Evaluation{}
	}
	report := JSONReport{
		Version: version,
		Results: evals,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
