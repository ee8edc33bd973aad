package config

import "github.com/ambroisie/seer-inspect/internal/decode"

// DecodeConfig holds settings for turning raw values into domain values.
type DecodeConfig struct {
	// Strict rejects boards whose occupancy bitboards disagree instead of
	// resolving squares by tie-break.
	Strict bool

	// MoveFormat selects the move wire format.
	MoveFormat decode.MoveFormat
}

// NewDecodeConfig creates a DecodeConfig with default values.
func NewDecodeConfig() *DecodeConfig {
	return &DecodeConfig{MoveFormat: decode.MoveFormatAuto}
}

// BoardOptions returns the reconstruction options for this configuration.
func (d *DecodeConfig) BoardOptions() decode.BoardOptions {
	return decode.BoardOptions{Strict: d.Strict}
}
