// Package config loads the calc configuration file (.calc.yaml).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFile = ".calc.yaml"

// MaxPrecision is the largest number of decimals accepted for float
// output; float64 carries at most 17 significant digits.
const MaxPrecision = 17

// ErrInvalidConfig is returned when a configuration value is out of
// range or unrecognized.
var ErrInvalidConfig = errors.New("invalid config")

// CalcConfig is the top-level configuration.
type CalcConfig struct {
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`

	// Precision is the number of decimals printed for float results.
	// -1 prints the shortest representation that round-trips.
	Precision int `yaml:"precision"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *CalcConfig {
	return &CalcConfig{
		Output: OutputConfig{
			Format:    "text",
			Precision: -1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path. Keys absent from the file
// keep their default values; unknown keys are rejected.
//
// An empty path means DefaultFile in the working directory, and a
// missing default file is not an error. A missing explicit path is.
func Load(path string) (*CalcConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c *CalcConfig) Validate() error {
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: output.format %q must be 'text' or 'json'",
			ErrInvalidConfig, c.Output.Format)
	}

	if c.Output.Precision < -1 || c.Output.Precision > MaxPrecision {
		return fmt.Errorf("%w: output.precision %d must be between -1 and %d",
			ErrInvalidConfig, c.Output.Precision, MaxPrecision)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level for the charmbracelet logger.
func (c *CalcConfig) LogLevel() (charmlog.Level, error) {
	lvl, err := charmlog.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return lvl, nil
}
