package config

import (
	"io"

	"github.com/ambroisie/seer-inspect/internal/decode"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithOutputFormat sets the board output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithPNG also renders boards to a PNG file.
func (b *ConfigBuilder) WithPNG(path string) *ConfigBuilder {
	b.cfg.Output.PNGFile = path
	return b
}

// WithStrict enables strict occupancy validation.
func (b *ConfigBuilder) WithStrict(enabled bool) *ConfigBuilder {
	b.cfg.Decode.Strict = enabled
	return b
}

// WithMoveFormat sets the move wire format.
func (b *ConfigBuilder) WithMoveFormat(format decode.MoveFormat) *ConfigBuilder {
	b.cfg.Decode.MoveFormat = format
	return b
}

// WithSquareSize sets the rendered square size in pixels.
func (b *ConfigBuilder) WithSquareSize(size int) *ConfigBuilder {
	b.cfg.Image.SquareSize = size
	return b
}

// WithSnapshot sets the default snapshot file.
func (b *ConfigBuilder) WithSnapshot(path string) *ConfigBuilder {
	b.cfg.SnapshotFile = path
	return b
}

// WithStoreDir sets the snapshot archive directory.
func (b *ConfigBuilder) WithStoreDir(dir string) *ConfigBuilder {
	b.cfg.Store.Dir = dir
	return b
}

// WithWorkers sets the number of printing goroutines.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the diagnostic writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
