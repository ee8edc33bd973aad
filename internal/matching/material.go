package matching

import (
	"fmt"
	"strings"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/fen"
)

// pieceCounts holds piece counts indexed by [color][piece].
type pieceCounts [chess.NumColors][chess.NumPieces]int

// MaterialMatcher matches boards by material balance.
type MaterialMatcher struct {
	// Pattern like "QR:qrr" means white has Q+R, black has Q+2R
	pattern    string
	exactMatch bool
	want       pieceCounts
}

var _ BoardMatcher = (*MaterialMatcher)(nil)

// NewMaterialMatcher creates a new material matcher.
// Pattern format: "QRN:qrn" (white pieces : black pieces)
// Use uppercase for white, lowercase for black
// K=King, Q=Queen, R=Rook, B=Bishop, N=Knight, P=Pawn
// With exact, the board must hold no other pieces.
func NewMaterialMatcher(pattern string, exact bool) (*MaterialMatcher, error) {
	mm := &MaterialMatcher{
		pattern:    pattern,
		exactMatch: exact,
	}
	if err := mm.parsePattern(pattern); err != nil {
		return nil, err
	}
	return mm, nil
}

// parsePattern parses a material pattern like "QR:qrr"
func (mm *MaterialMatcher) parsePattern(pattern string) error {
	white, black, _ := strings.Cut(pattern, ":")
	if err := mm.parsePieces(white, chess.White); err != nil {
		return err
	}
	return mm.parsePieces(black, chess.Black)
}

// parsePieces parses one side's piece letters, in that side's case.
func (mm *MaterialMatcher) parsePieces(s string, color chess.Color) error {
	for _, c := range s {
		piece, ok := fen.PieceFromChar(c)
		if !ok || (color == chess.White) != (c >= 'A' && c <= 'Z') {
			return fmt.Errorf("material pattern %q: bad %s piece %q: %w", mm.pattern, color, c, errors.ErrInvalidConfig)
		}
		mm.want[color][piece]++
	}
	return nil
}

// Match checks if a board matches the material pattern.
func (mm *MaterialMatcher) Match(board chess.ChessBoard) bool {
	var have pieceCounts
	for _, color := range chess.Colors {
		for _, piece := range chess.Pieces {
			have[color][piece] = board.Occupancy(piece, color).PopCount()
		}
	}

	for _, color := range chess.Colors {
		for _, piece := range chess.Pieces {
			want, got := mm.want[color][piece], have[color][piece]
			if got < want || (mm.exactMatch && got != want) {
				return false
			}
		}
	}
	return true
}

// Name implements BoardMatcher.
func (mm *MaterialMatcher) Name() string {
	if mm.exactMatch {
		return "Material(exact " + mm.pattern + ")"
	}
	return "Material(" + mm.pattern + ")"
}
