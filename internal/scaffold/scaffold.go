// Package scaffold writes a starter calc configuration file into a
// project directory.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/unbound-force/calc/internal/config"
)

//go:embed assets/calc.yaml
var assets embed.FS

const assetPath = "assets/calc.yaml"

// Options configures the scaffold operation.
type Options struct {
	// TargetDir is the directory to write into.
	// Defaults to the current working directory.
	TargetDir string

	// Force overwrites an existing config file when true.
	Force bool

	// Version is the calc version recorded in the marker line.
	// Defaults to "dev".
	Version string

	// Stdout is the writer for summary output.
	// Defaults to os.Stdout.
	Stdout io.Writer
}

// Result reports what the scaffold operation did. Each list holds
// paths relative to TargetDir.
type Result struct {
	Created     []string
	Skipped     []string
	Overwritten []string
}

func versionMarker(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("# scaffolded by calc %s\n", version)
}

// Run writes the starter configuration to TargetDir/.calc.yaml,
// prefixed with a marker line:
//
//	# scaffolded by calc vX.Y.Z
//
// An existing file is skipped unless opts.Force is set.
func Run(opts Options) (*Result, error) {
	if opts.TargetDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		opts.TargetDir = cwd
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	result := &Result{}
	rel := config.DefaultFile
	outPath := filepath.Join(opts.TargetDir, rel)

	_, statErr := os.Stat(outPath)
	exists := statErr == nil

	if exists && !opts.Force {
		result.Skipped = append(result.Skipped, rel)
		printSummary(opts.Stdout, result)
		return result, nil
	}

	content, err := AssetContent()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.TargetDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", opts.TargetDir, err)
	}

	out := append([]byte(versionMarker(opts.Version)), content...)
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("creating %s: %w", rel, err)
	}

	if exists {
		result.Overwritten = append(result.Overwritten, rel)
	} else {
		result.Created = append(result.Created, rel)
	}

	printSummary(opts.Stdout, result)
	return result, nil
}

func printSummary(w io.Writer, r *Result) {
	fmt.Fprintln(w, "calc configuration initialized:")

	for _, f := range r.Created {
		fmt.Fprintf(w, "  created: %s\n", f)
	}
	for _, f := range r.Skipped {
		fmt.Fprintf(w, "  skipped: %s (already exists)\n", f)
	}
	for _, f := range r.Overwritten {
		fmt.Fprintf(w, "  overwritten: %s\n", f)
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d file(s) skipped (use --force to overwrite).\n", len(r.Skipped))
	}
}

// AssetContent returns the embedded starter configuration.
func AssetContent() ([]byte, error) {
	data, err := assets.ReadFile(assetPath)
	if err != nil {
		return nil, fmt.Errorf("reading embedded asset %s: %w", assetPath, err)
	}
	return data, nil
}
