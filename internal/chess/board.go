package chess

import (
	"fmt"

	"github.com/ambroisie/seer-inspect/internal/errors"
)

// ChessBoard is a snapshot of a game in progress, as laid out in memory by the
// inspected program: one occupancy bitboard per piece type and per colour, plus
// the scalar state.
type ChessBoard struct {
	// Occupancy for each piece type, discarding colour. Indexed by Piece.
	PieceOccupancy [NumPieces]Bitboard

	// Occupancy for each colour, discarding piece type. Indexed by Color.
	ColorOccupancy [NumColors]Bitboard

	// Allowed castling for either colour. Indexed by Color.
	Rights [NumColors]CastleRights

	// The number of half-turns without either a pawn push or a capture.
	HalfMoveClock uint32

	// The number of half-turns played so far.
	TotalPlies uint32

	// Who has the next move.
	Side Color

	// Target square of a possible en-passant capture.
	EnPassant OptionalSquare
}

// NewChessBoard assembles a board from its decoded parts. It does not check
// that the occupancy bitboards agree; see Validate.
func NewChessBoard(
	pieces [NumPieces]Bitboard,
	colors [NumColors]Bitboard,
	rights [NumColors]CastleRights,
	halfMoveClock, totalPlies uint32,
	side Color,
	enPassant OptionalSquare,
) ChessBoard {
	return ChessBoard{
		PieceOccupancy: pieces,
		ColorOccupancy: colors,
		Rights:         rights,
		HalfMoveClock:  halfMoveClock,
		TotalPlies:     totalPlies,
		Side:           side,
		EnPassant:      enPassant,
	}
}

// StartingPosition returns the standard chess starting position.
func StartingPosition() ChessBoard {
	var b ChessBoard

	backRank := [NumFiles]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, file := range Files {
		b.place(backRank[file], White, NewSquare(file, First))
		b.place(Pawn, White, NewSquare(file, Second))
		b.place(Pawn, Black, NewSquare(file, Seventh))
		b.place(backRank[file], Black, NewSquare(file, Eighth))
	}

	b.Rights = [NumColors]CastleRights{BothSides, BothSides}
	b.Side = White
	return b
}

// place sets a piece on a square; only used while building positions.
func (b *ChessBoard) place(piece Piece, color Color, sq Square) {
	b.PieceOccupancy[piece] |= sq.Bitboard()
	b.ColorOccupancy[color] |= sq.Bitboard()
}

// With returns a copy of the board with a piece added on a square.
func (b ChessBoard) With(piece Piece, color Color, sq Square) ChessBoard {
	b.place(piece, color, sq)
	return b
}

// At returns the piece and colour occupying a square.
// Pieces are tried King to Pawn and colours White then Black; the first pair
// whose bitboards both contain the square wins. On inconsistent input this is
// a tie-break, not an error.
func (b ChessBoard) At(sq Square) (Piece, Color, bool) {
	for _, piece := range Pieces {
		if !b.PieceOccupancy[piece].Contains(sq) {
			continue
		}
		for _, color := range Colors {
			if b.ColorOccupancy[color].Contains(sq) {
				return piece, color, true
			}
		}
	}
	return 0, 0, false
}

// Occupancy returns the squares holding the given piece of the given colour.
func (b ChessBoard) Occupancy(piece Piece, color Color) Bitboard {
	return b.PieceOccupancy[piece] & b.ColorOccupancy[color]
}

// CombinedOccupancy returns every occupied square.
func (b ChessBoard) CombinedOccupancy() Bitboard {
	return b.ColorOccupancy[White] | b.ColorOccupancy[Black]
}

// CastleRights returns the castling rights of a colour.
func (b ChessBoard) CastleRights(color Color) CastleRights {
	return b.Rights[color]
}

// Validate checks that the occupancy bitboards describe each occupied square
// with exactly one piece and one colour. Failures wrap ErrDataIntegrity.
func (b ChessBoard) Validate() error {
	var seen Bitboard
	for _, piece := range Pieces {
		if overlap := seen & b.PieceOccupancy[piece]; overlap != 0 {
			return integrityError("overlapping piece bitboards at %s", overlap)
		}
		seen |= b.PieceOccupancy[piece]
	}

	if overlap := b.ColorOccupancy[White] & b.ColorOccupancy[Black]; overlap != 0 {
		return integrityError("overlapping color bitboards at %s", overlap)
	}

	if diff := seen ^ b.CombinedOccupancy(); diff != 0 {
		return integrityError("piece and color occupancy disagree at %s", diff)
	}

	return nil
}

func integrityError(format string, squares Bitboard) error {
	return fmt.Errorf(format+": %w", squares, errors.ErrDataIntegrity)
}
