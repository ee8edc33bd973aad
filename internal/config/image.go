package config

import (
	"fmt"
	"image/color"

	"github.com/ambroisie/seer-inspect/internal/errors"
)

// Square size bounds for rendered images, in pixels.
const (
	MinSquareSize     = 16
	MaxSquareSize     = 256
	DefaultSquareSize = 64
)

// ImageConfig holds settings for PNG board rendering.
type ImageConfig struct {
	SquareSize  int
	LightSquare color.RGBA
	DarkSquare  color.RGBA

	// Coordinates draws file letters and rank numbers in the margin.
	Coordinates bool
}

// NewImageConfig creates an ImageConfig with default values.
func NewImageConfig() *ImageConfig {
	return &ImageConfig{
		SquareSize:  DefaultSquareSize,
		LightSquare: color.RGBA{R: 240, G: 217, B: 181, A: 255},
		DarkSquare:  color.RGBA{R: 181, G: 136, B: 99, A: 255},
		Coordinates: true,
	}
}

// Validate checks the image settings.
func (ic *ImageConfig) Validate() error {
	if ic.SquareSize < MinSquareSize || ic.SquareSize > MaxSquareSize {
		return fmt.Errorf("square size %d outside [%d, %d]: %w",
			ic.SquareSize, MinSquareSize, MaxSquareSize, errors.ErrInvalidConfig)
	}
	return nil
}
