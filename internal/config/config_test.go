package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ambroisie/seer-inspect/internal/decode"
	inerrors "github.com/ambroisie/seer-inspect/internal/errors"
)

// TestNewConfig_Defaults verifies Config has sensible defaults
func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Verbosity != 1 {
		t.Errorf("Verbosity = %d, want 1", cfg.Verbosity)
	}
	if cfg.Output.Format != Text {
		t.Errorf("Output.Format = %v, want text", cfg.Output.Format)
	}
	if cfg.Decode.Strict {
		t.Error("Decode.Strict should be false by default")
	}
	if cfg.Decode.MoveFormat != decode.MoveFormatAuto {
		t.Errorf("Decode.MoveFormat = %v, want auto", cfg.Decode.MoveFormat)
	}
	if cfg.Image.SquareSize != DefaultSquareSize {
		t.Errorf("Image.SquareSize = %d, want %d", cfg.Image.SquareSize, DefaultSquareSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative verbosity", func(c *Config) { c.Verbosity = -1 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"tiny squares", func(c *Config) { c.Image.SquareSize = 4 }},
		{"huge squares", func(c *Config) { c.Image.SquareSize = 1024 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, inerrors.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Logf(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfigBuilder().WithLog(&buf).WithVerbosity(1).Build()

	cfg.Logf(1, "loaded %d values", 3)
	cfg.Logf(2, "chatty")

	if got := buf.String(); got != "loaded 3 values\n" {
		t.Errorf("log = %q, want %q", got, "loaded 3 values\n")
	}
}

func TestConfigBuilder(t *testing.T) {
	var out bytes.Buffer
	cfg := NewConfigBuilder().
		WithOutputFormat(JSON).
		WithStrict(true).
		WithMoveFormat(decode.MoveFormatPacked).
		WithSquareSize(32).
		WithSnapshot("dump.json").
		WithStoreDir("/tmp/seer").
		WithWorkers(4).
		WithPNG("board.png").
		WithOutput(&out).
		Build()

	if cfg.Output.Format != JSON {
		t.Errorf("Output.Format = %v, want json", cfg.Output.Format)
	}
	if !cfg.Decode.Strict || !cfg.Decode.BoardOptions().Strict {
		t.Error("strict mode not set")
	}
	if cfg.Decode.MoveFormat != decode.MoveFormatPacked {
		t.Errorf("MoveFormat = %v, want packed", cfg.Decode.MoveFormat)
	}
	if cfg.Image.SquareSize != 32 {
		t.Errorf("SquareSize = %d, want 32", cfg.Image.SquareSize)
	}
	if cfg.SnapshotFile != "dump.json" || cfg.Store.Dir != "/tmp/seer" || cfg.Workers != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Output.PNGFile != "board.png" {
		t.Errorf("PNGFile = %q", cfg.Output.PNGFile)
	}
	if cfg.OutputFile != &out {
		t.Error("WithOutput did not set OutputFile")
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, f := range []OutputFormat{Text, JSON, FEN} {
		got, err := ParseOutputFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseOutputFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseOutputFormat("pgn"); !errors.Is(err, inerrors.ErrInvalidConfig) {
		t.Errorf("ParseOutputFormat(pgn) error = %v, want ErrInvalidConfig", err)
	}
}
