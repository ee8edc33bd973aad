package output

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/config"
	inerrors "github.com/ambroisie/seer-inspect/internal/errors"
)

func newTestImage(t *testing.T, cfg *config.ImageConfig) *BoardImage {
	t.Helper()
	bi, err := NewBoardImage(cfg)
	if err != nil {
		t.Fatalf("NewBoardImage error: %v", err)
	}
	t.Cleanup(func() { bi.Close() })
	return bi
}

func TestBoardImage_Size(t *testing.T) {
	cfg := config.NewImageConfig()
	cfg.SquareSize = 32

	bi := newTestImage(t, cfg)
	if got := bi.Render(chess.StartingPosition()).Bounds().Dx(); got != 8*32+32 {
		t.Errorf("width = %d, want %d", got, 8*32+32)
	}

	cfg.Coordinates = false
	bi = newTestImage(t, cfg)
	if got := bi.Size(); got != 8*32 {
		t.Errorf("Size() = %d, want %d", got, 8*32)
	}
}

func TestBoardImage_Squares(t *testing.T) {
	cfg := config.NewImageConfig()
	cfg.Coordinates = false
	bi := newTestImage(t, cfg)

	img := bi.Render(chess.ChessBoard{})
	size := cfg.SquareSize

	// A1 is dark and sits in the bottom-left corner.
	if got := img.RGBAAt(1, 8*size-2); got != cfg.DarkSquare {
		t.Errorf("A1 corner = %v, want dark %v", got, cfg.DarkSquare)
	}
	if got := img.RGBAAt(size+1, 8*size-2); got != cfg.LightSquare {
		t.Errorf("B1 corner = %v, want light %v", got, cfg.LightSquare)
	}
}

func TestBoardImage_PieceToken(t *testing.T) {
	cfg := config.NewImageConfig()
	cfg.Coordinates = false
	bi := newTestImage(t, cfg)

	empty := bi.Render(chess.ChessBoard{})
	withKing := bi.Render(chess.ChessBoard{}.With(chess.King, chess.White, chess.A8))

	// The token ring passes through the middle of the square's left edge area.
	x, y := cfg.SquareSize*15/100, cfg.SquareSize/2
	if empty.RGBAAt(x, y) == withKing.RGBAAt(x, y) {
		t.Error("piece token did not change the A8 square")
	}
}

func TestBoardImage_WritePNG(t *testing.T) {
	bi := newTestImage(t, config.NewImageConfig())

	var buf bytes.Buffer
	if err := bi.WritePNG(&buf, chess.StartingPosition()); err != nil {
		t.Fatalf("WritePNG error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != bi.Size() || img.Bounds().Dy() != bi.Size() {
		t.Errorf("bounds = %v, want %dx%d", img.Bounds(), bi.Size(), bi.Size())
	}
}

func TestNewBoardImage_InvalidConfig(t *testing.T) {
	cfg := config.NewImageConfig()
	cfg.SquareSize = 1
	if _, err := NewBoardImage(cfg); !errors.Is(err, inerrors.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}
