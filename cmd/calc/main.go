package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/unbound-force/calc/internal/batch"
	"github.com/unbound-force/calc/internal/calc"
	"github.com/unbound-force/calc/internal/config"
	"github.com/unbound-force/calc/internal/report"
	"github.com/unbound-force/calc/internal/scaffold"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags holds the persistent flags and the configuration they
// are resolved against.
type globalFlags struct {
	configPath string
	format     string
	precision  int
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "calc",
		Short: "calc - add and divide numbers",
		Long: `calc adds and divides integer and floating-point numbers.

Integers stay integers while the exact result fits in 64 bits;
anything else is computed in floating point. Dividing by zero is
always an error.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.resolve(cmd)
		},
	}

	root.SetFlagErrorFunc(negativeOperandHint)

	root.PersistentFlags().StringVar(&g.configPath, "config", "",
		"path to config file (default: "+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&g.format, "format", "",
		"output format: text or json (default from config, else text)")
	root.PersistentFlags().IntVar(&g.precision, "precision", -1,
		"decimals for float results, -1 for shortest exact form")

	root.AddCommand(newComputeCmd(g, calc.OpAdd, "add A B", "Add two numbers", nil))
	root.AddCommand(newComputeCmd(g, calc.OpDivide, "divide DIVIDEND DIVISOR",
		"Divide two numbers", []string{"div"}))
	root.AddCommand(newEvalCmd(g))
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newInteractiveCmd(g))

	return root
}

// resolve loads the config file and fills in every flag the user did
// not set explicitly. Flags override config; config overrides defaults.
func (g *globalFlags) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("format") {
		g.format = cfg.Output.Format
	}
	if !cmd.Flags().Changed("precision") {
		g.precision = cfg.Output.Precision
	}
	if err := checkFormat(g.format); err != nil {
		return err
	}
	if g.precision < -1 || g.precision > config.MaxPrecision {
		return fmt.Errorf("invalid precision %d: must be between -1 and %d",
			g.precision, config.MaxPrecision)
	}

	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	logger.Debug("configuration resolved",
		"format", g.format, "precision", g.precision)
	return nil
}

// negativeOperandHint explains that a flag parse error came from a
// negative number, e.g. "calc add -3 5", and suggests "--".
func negativeOperandHint(cmd *cobra.Command, err error) error {
	msg := err.Error()
	if !strings.HasPrefix(msg, "unknown shorthand flag") {
		return err
	}
	idx := strings.LastIndex(msg, " in ")
	if idx < 0 {
		return err
	}
	token := msg[idx+len(" in "):]
	if _, perr := calc.ParseValue(token); perr != nil {
		return err
	}
	return fmt.Errorf("%w: put negative operands after \"--\", e.g. %s -- %s",
		err, cmd.CommandPath(), token)
}

func checkFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", format)
	}
	return nil
}

// computeParams holds the parsed arguments for add and divide.
type computeParams struct {
	op        calc.Operation
	operands  []string
	format    string
	precision int
	stdout    io.Writer
}

// runCompute is the extracted, testable body of the add and divide
// commands.
func runCompute(p computeParams) error {
	if err := checkFormat(p.format); err != nil {
		return err
	}
	if len(p.operands) != 2 {
		return fmt.Errorf("%s takes exactly 2 operands, got %d", p.op, len(p.operands))
	}

	a, err := calc.ParseValue(p.operands[0])
	if err != nil {
		return fmt.Errorf("parsing first operand: %w", err)
	}
	b, err := calc.ParseValue(p.operands[1])
	if err != nil {
		return fmt.Errorf("parsing second operand: %w", err)
	}

	logger.Debug("computing", "op", p.op, "a", a, "b", b)
	e := calc.New().Evaluate(p.op, a, b)

	if p.format == "json" {
		if err := report.WriteJSON(p.stdout, []calc.Evaluation{e}, version); err != nil {
			return err
		}
	}
	if e.Failed() {
		return evaluationError(e)
	}
	if p.format == "text" {
		fmt.Fprintln(p.stdout, e.Result.Format(p.precision))
	}
	return nil
}

// evaluationError describes a failed evaluation, e.g.
// "divide 5 by 0: division by zero".
func evaluationError(e calc.Evaluation) error {
	if e.Operation == calc.OpDivide && len(e.Operands) == 2 {
		return fmt.Errorf("divide %s by %s: %w", e.Operands[0], e.Operands[1], e.Err)
	}
	return fmt.Errorf("%s %s: %w", e.Operation, e.Expression(), e.Err)
}

func newComputeCmd(g *globalFlags, op calc.Operation, use, short string, aliases []string) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		Long: short + `.

Operands are integers or floating-point numbers. Put negative
operands after "--", e.g. calc ` + string(op) + ` -- -3 5.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(computeParams{
				op:        op,
				operands:  args,
				format:    g.format,
				precision: g.precision,
				stdout:    cmd.OutOrStdout(),
			})
		},
	}
}

// evalParams holds the parsed flags for the eval command.
type evalParams struct {
	path      string
	format    string
	precision int
	stdin     io.Reader
	stdout    io.Writer
}

// runEval is the extracted, testable body of the eval command.
func runEval(p evalParams) error {
	if err := checkFormat(p.format); err != nil {
		return err
	}

	var (
		entries []batch.Entry
		err     error
	)
	if p.path == "-" {
		entries, err = batch.Parse(p.stdin)
	} else {
		entries, err = batch.Load(p.path)
	}
	if err != nil {
		return err
	}

	logger.Info("evaluating batch", "file", p.path, "operations", len(entries))
	evals := batch.Run(calc.New(), entries)
	failed := batch.Failed(evals)
	logger.Info("batch complete", "operations", len(evals), "failed", failed)

	switch p.format {
	case "json":
		err = report.WriteJSON(p.stdout, evals, version)
	default:
		err = report.WriteText(p.stdout, evals, report.TextOptions{Precision: p.precision})
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d operation(s) failed", failed, len(evals))
	}
	return nil
}

func newEvalCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "eval FILE",
		Short: "Evaluate a batch of operations from a YAML file",
		Long: `Evaluate every operation listed in a YAML (or JSON) file and
print a report. Use "-" to read from stdin.

  operations:
    - op: add
      a: 2
      b: 2
    - op: divide
      a: 7
      b: 2

Exits non-zero when any operation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(evalParams{
				path:      args[0],
				format:    g.format,
				precision: g.precision,
				stdin:     cmd.InOrStdin(),
				stdout:    cmd.OutOrStdout(),
			})
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for calc JSON output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of calc --format=json output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter " + config.DefaultFile + " to the current directory",
		Args:  cobra.NoArgs,
		// Skip config loading so a broken config can be replaced.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := scaffold.Run(scaffold.Options{
				Force:   force,
				Version: version,
				Stdout:  cmd.OutOrStdout(),
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newInteractiveCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"repl"},
		Short:   "Evaluate expressions in an interactive prompt",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(g.precision)
		},
	}
}
