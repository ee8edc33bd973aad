package config

import (
	"fmt"

	"github.com/ambroisie/seer-inspect/internal/errors"
)

// OutputFormat represents the rendering of a decoded board.
type OutputFormat int

const (
	Text OutputFormat = iota // Unicode board diagram
	JSON                     // structured JSON document
	FEN                      // Forsyth-Edwards Notation
)

var outputFormatNames = [...]string{"text", "json", "fen"}

func (f OutputFormat) String() string {
	if int(f) < len(outputFormatNames) {
		return outputFormatNames[f]
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// ParseOutputFormat parses "text", "json" or "fen".
func ParseOutputFormat(s string) (OutputFormat, error) {
	for i, name := range outputFormatNames {
		if name == s {
			return OutputFormat(i), nil
		}
	}
	return Text, fmt.Errorf("output format %q: %w", s, errors.ErrInvalidConfig)
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format selects how boards are rendered.
	Format OutputFormat

	// IncludeFEN adds the FEN string to JSON board documents.
	IncludeFEN bool

	// PNGFile, when set, also rasterises the board to this path.
	PNGFile string
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:     Text,
		IncludeFEN: true,
	}
}
