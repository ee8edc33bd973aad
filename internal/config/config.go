// Package config provides configuration for seer-inspect.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/ambroisie/seer-inspect/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=errors and notices, 2=running commentary

	// SnapshotFile is the default snapshot document expressions resolve against.
	SnapshotFile string

	// Workers is the number of goroutines used to print several expressions.
	// Zero means one per CPU.
	Workers int

	Output *OutputConfig
	Decode *DecodeConfig
	Image  *ImageConfig
	Store  *StoreConfig

	// Output streams
	OutputFilename string
	OutputFile     io.Writer
	LogFile        io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Output:     NewOutputConfig(),
		Decode:     NewDecodeConfig(),
		Image:      NewImageConfig(),
		Store:      NewStoreConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput redirects user-facing output.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Logf writes a diagnostic line to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...any) {
	if c.Verbosity < level || c.LogFile == nil {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if err := c.Image.Validate(); err != nil {
		return err
	}
	return nil
}
