package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/unbound-force/calc/internal/calc"
)

// TextOptions configures text rendering.
type TextOptions struct {
	// Precision is the number of decimals for float results;
	// -1 prints the shortest round-trip form.
	Precision int
}

// Column budget: 80 cols total, borders take 4, cell padding 6.
// Available: 80 - 4 - 6 = 70. #=4, EXPRESSION=40, RESULT=26.
const (
	maxExpression = 40
	maxResult     = 26
)

// WriteText writes evaluations as a styled table followed by a
// summary line. Output uses lipgloss for color when the writer is a
// TTY and degrades to plain text for pipes and CI.
func WriteText(w io.Writer, evals []calc.Evaluation, opts TextOptions) error {
	s := DefaultStyles()

	if len(evals) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No operations evaluated."))
	} else {
		rows := make([][]string, 0, len(evals))
		for i, e := range evals {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				truncate(e.Expression(), maxExpression),
				resultCell(e, opts.Precision),
			})
		}

		t := table.New().
			Width(80).
			Border(lipgloss.NormalBorder()).
			BorderStyle(s.Border).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return s.TableHeader
				}
				if col == 2 && row >= 0 && row < len(evals) {
					if evals[row].Failed() {
						return s.Fail
					}
					return s.Result
				}
				return s.TableCell
			}).
			Headers("#", "EXPRESSION", "RESULT").
			Rows(rows...)

		fmt.Fprintln(w, t)
	}

	failed := 0
	for _, e := range evals {
		if e.Failed() {
			failed++
		}
	}
	summary := s.Header.Render(fmt.Sprintf("%d operation(s) evaluated", len(evals)))
	failures := fmt.Sprintf("%d failed", failed)
	if failed > 0 {
		failures = s.Fail.Render(failures)
	}
	fmt.Fprintf(w, "\n%s, %s\n", summary, failures)

	return nil
}

func resultCell(e calc.Evaluation, precision int) string {
	if e.Failed() || e.Result == nil {
		return truncate("error: "+e.Error, maxResult)
	}
	// Numbers are never cut. Fixed notation of a large float can
	// overflow the column; the shortest form fits in 24 runes.
	if s := e.Result.Format(precision); len(s) <= maxResult {
		return s
	}
	return e.Result.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
