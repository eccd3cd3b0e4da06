package report

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/unbound-force/calc/internal/calc"
)

func sampleEvaluations() []calc.Evaluation {
	c := calc.New()
	return []calc.Evaluation{
		c.Evaluate(calc.OpAdd, calc.Int(2), calc.Int(2)),
		c.Evaluate(calc.OpAdd, calc.Float(2.5), calc.Float(0.5)),
		c.Evaluate(calc.OpDivide, calc.Int(7), calc.Int(2)),
		c.Evaluate(calc.OpDivide, calc.Int(5), calc.Int(0)),
	}
}

func compileSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	sch, err := jsonschema.UnmarshalJSON(strings.NewReader(Schema))
	if err != nil {
		t.Fatalf("failed to parse schema JSON: %v", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", sch); err != nil {
		t.Fatalf("failed to add schema resource: %v", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		t.Fatalf("failed to compile schema: %v", err)
	}
	return compiled
}

func TestWriteJSON_ValidJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEvaluations(), "0.1.0"); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput:\n%s", err, buf.String())
	}
	if parsed["version"] != "0.1.0" {
		t.Errorf("version = %v, want 0.1.0", parsed["version"])
	}
}

func TestWriteJSON_ContainsResultsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEvaluations(), "0.1.0"); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	for _, want := range []string{
		`"operation": "add"`,
		`"operation": "divide"`,
		`"result": 4`,
		`"result": 3.0`,
		`"result": 3.5`,
		`"error": "division by zero"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("JSON output missing %s\noutput:\n%s", want, output)
		}
	}
}

func TestWriteJSON_NilResults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil, "dev"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"results": []`) {
		t.Errorf("expected empty results array, got:\n%s", buf.String())
	}
}

func TestWriteJSON_ValidAgainstSchema(t *testing.T) {
	compiled := compileSchema(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEvaluations(), "0.1.0"); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if err := compiled.Validate(inst); err != nil {
		t.Errorf("JSON output does not conform to schema:\n%v", err)
	}
}

func TestWriteJSON_NonFiniteValidAgainstSchema(t *testing.T) {
	compiled := compileSchema(t)

	c := calc.New()
	evals := []calc.Evaluation{
		c.Evaluate(calc.OpAdd, calc.Float(math.Inf(1)), calc.Int(1)),
		c.Evaluate(calc.OpAdd, calc.Float(math.MaxFloat64), calc.Float(math.MaxFloat64)),
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, evals, "0.1.0"); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"+Inf"`) {
		t.Errorf("expected +Inf string in output:\n%s", buf.String())
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if err := compiled.Validate(inst); err != nil {
		t.Errorf("JSON output does not conform to schema:\n%v", err)
	}
}

func TestSchema_RejectsResultAndError(t *testing.T) {
	compiled := compileSchema(t)

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(`{
  "version": "0.1.0",
  "results": [
    {"operation": "divide", "operands": [5, 0], "result": 1, "error": "division by zero"}
  ]
}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := compiled.Validate(inst); err == nil {
		t.Error("expected schema to reject a result carrying both result and error")
	}
}

func TestWriteText_HasExpressionsAndResults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleEvaluations(), TextOptions{Precision: -1}); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	for _, want := range []string{
		"EXPRESSION", "RESULT",
		"2 + 2", "2.5 + 0.5", "7 / 2", "5 / 0",
		"3.0", "3.5",
		"error: division by zero",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("text output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestWriteText_HasSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleEvaluations(), TextOptions{Precision: -1}); err != nil {
		t.Fatal(err)
	}

	plain := stripANSI(buf.String())
	if !strings.Contains(plain, "4 operation(s) evaluated, 1 failed") {
		t.Errorf("text output missing summary, got:\n%s", plain)
	}
}

func TestWriteText_Precision(t *testing.T) {
	c := calc.New()
	evals := []calc.Evaluation{c.Evaluate(calc.OpDivide, calc.Int(1), calc.Int(3))}

	var buf bytes.Buffer
	if err := WriteText(&buf, evals, TextOptions{Precision: 2}); err != nil {
		t.Fatal(err)
	}
	output := buf.String()
	if !strings.Contains(output, "0.33") || strings.Contains(output, "0.333") {
		t.Errorf("expected result rendered with 2 decimals, got:\n%s", output)
	}
}

func TestWriteText_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, nil, TextOptions{Precision: -1}); err != nil {
		t.Fatal(err)
	}

	output := stripANSI(buf.String())
	if !strings.Contains(output, "No operations evaluated.") {
		t.Errorf("expected empty notice, got:\n%s", output)
	}
	if !strings.Contains(output, "0 operation(s) evaluated, 0 failed") {
		t.Errorf("expected zero summary, got:\n%s", output)
	}
}

// stripANSI removes ANSI escape sequences from text for width measurement.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestWriteText_FitsIn80Columns(t *testing.T) {
	c := calc.New()
	evals := append(sampleEvaluations(),
		c.Evaluate(calc.OpDivide, calc.Float(1234567.891011), calc.Float(0.000123456789)),
		c.Evaluate(calc.OpAdd, calc.Int(9223372036854775807), calc.Int(9223372036854775807)),
	)

	var buf bytes.Buffer
	if err := WriteText(&buf, evals, TextOptions{Precision: -1}); err != nil {
		t.Fatal(err)
	}

	const maxWidth = 80
	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		plain := stripANSI(line)
		width := utf8.RuneCountInString(plain)
		if width > maxWidth {
			t.Errorf("line %d exceeds %d columns (%d runes): %q",
				i+1, maxWidth, width, plain)
		}
	}
}

func TestWriteText_LargeFloatNotCut(t *testing.T) {
	c := calc.New()
	evals := []calc.Evaluation{c.Evaluate(calc.OpAdd, calc.Float(1e30), calc.Int(0))}

	var buf bytes.Buffer
	if err := WriteText(&buf, evals, TextOptions{Precision: 2}); err != nil {
		t.Fatal(err)
	}

	output := stripANSI(buf.String())
	if !strings.Contains(output, "1e+30 + 0") {
		t.Errorf("expected expression in output, got:\n%s", output)
	}
	if strings.Contains(output, "...") {
		t.Errorf("result must not be truncated, got:\n%s", output)
	}
	// 1e30 is rendered in its shortest exact form, once for the
	// expression and once for the result.
	if strings.Count(output, "1e+30") != 2 {
		t.Errorf("expected result rendered as 1e+30, got:\n%s", output)
	}
}

func TestResultCell_FitsColumnWithoutCuttingDigits(t *testing.T) {
	c := calc.New()
	tests := []struct {
		e         calc.Evaluation
		precision int
		want      string
	}{
		{c.Evaluate(calc.OpAdd, calc.Float(1e30), calc.Int(0)), 2, "1e+30"},
		{c.Evaluate(calc.OpDivide, calc.Int(1), calc.Int(3)), 2, "0.33"},
		{c.Evaluate(calc.OpAdd, calc.Int(9223372036854775807), calc.Int(0)), 5, "9223372036854775807"},
		{c.Evaluate(calc.OpAdd, calc.Float(123456789.125), calc.Int(0)), 17, "1.23456789125e+08"},
	}

	for _, tt := range tests {
		got := resultCell(tt.e, tt.precision)
		if got != tt.want {
			t.Errorf("resultCell(%s, %d) = %q, want %q", tt.e.Expression(), tt.precision, got, tt.want)
		}
		if utf8.RuneCountInString(got) > maxResult {
			t.Errorf("resultCell(%s, %d) = %q exceeds %d runes", tt.e.Expression(), tt.precision, got, maxResult)
		}
	}
}

func TestWriteText_MultibyteOperationStaysValidUTF8(t *testing.T) {
	c := calc.New()
	op := calc.Operation(strings.Repeat("é", 30))
	evals := []calc.Evaluation{c.Evaluate(op, calc.Int(7), calc.Int(2))}

	var buf bytes.Buffer
	if err := WriteText(&buf, evals, TextOptions{Precision: -1}); err != nil {
		t.Fatal(err)
	}
	if !utf8.ValidString(buf.String()) {
		t.Errorf("text output is not valid UTF-8:\n%q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("0123456789abc", 10); got != "0123456..." {
		t.Errorf("truncate = %q, want %q", got, "0123456...")
	}
	if got := truncate(strings.Repeat("é", 12), 10); got != strings.Repeat("é", 7)+"..." {
		t.Errorf("truncate(é x12) = %q, want 7 runes plus ...", got)
	}
}
