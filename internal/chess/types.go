// Package chess provides the chess-domain value types decoded from memory
// snapshots: enumerations, squares, bitboards, moves and the composite board.
package chess

import (
	"fmt"

	"github.com/ambroisie/seer-inspect/internal/errors"
)

// Color represents the colour of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// NumColors is the number of Color variants.
const NumColors = 2

// Colors lists every Color in ordinal order.
var Colors = [NumColors]Color{White, Black}

// ColorFromOrdinal converts an ordinal into a Color.
func ColorFromOrdinal(ordinal uint64) (Color, error) {
	if ordinal >= NumColors {
		return 0, unknownVariant("Color", ordinal)
	}
	return Color(ordinal), nil
}

// String returns the display name of a colour.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Other returns the opposite colour.
func (c Color) Other() Color {
	return c ^ 1
}

// Piece represents a chess piece type, discarding colour.
type Piece uint8

const (
	King Piece = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// NumPieces is the number of Piece variants.
const NumPieces = 6

// Pieces lists every Piece in ordinal order.
var Pieces = [NumPieces]Piece{King, Queen, Rook, Bishop, Knight, Pawn}

var pieceNames = [NumPieces]string{"King", "Queen", "Rook", "Bishop", "Knight", "Pawn"}

// PieceFromOrdinal converts an ordinal into a Piece.
func PieceFromOrdinal(ordinal uint64) (Piece, error) {
	if ordinal >= NumPieces {
		return 0, unknownVariant("Piece", ordinal)
	}
	return Piece(ordinal), nil
}

// String returns the display name of a piece.
func (p Piece) String() string {
	if p < NumPieces {
		return pieceNames[p]
	}
	return fmt.Sprintf("Piece(%d)", uint8(p))
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := [NumPieces]byte{'K', 'Q', 'R', 'B', 'N', 'P'}
	if p < NumPieces {
		return letters[p]
	}
	return '?'
}

// File represents a chess file (column), A to H.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// NumFiles is the number of File variants.
const NumFiles = 8

// Files lists every File in ordinal order.
var Files = [NumFiles]File{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// FileFromOrdinal converts an ordinal into a File.
func FileFromOrdinal(ordinal uint64) (File, error) {
	if ordinal >= NumFiles {
		return 0, unknownVariant("File", ordinal)
	}
	return File(ordinal), nil
}

// String returns the file letter, "A" through "H".
func (f File) String() string {
	if f < NumFiles {
		return string(rune('A' + f))
	}
	return fmt.Sprintf("File(%d)", uint8(f))
}

// Rank represents a chess rank (row), First to Eighth.
type Rank uint8

const (
	First Rank = iota
	Second
	Third
	Fourth
	Fifth
	Sixth
	Seventh
	Eighth
)

// NumRanks is the number of Rank variants.
const NumRanks = 8

// Ranks lists every Rank in ordinal order.
var Ranks = [NumRanks]Rank{First, Second, Third, Fourth, Fifth, Sixth, Seventh, Eighth}

var rankNames = [NumRanks]string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh", "Eighth"}

// RankFromOrdinal converts an ordinal into a Rank.
func RankFromOrdinal(ordinal uint64) (Rank, error) {
	if ordinal >= NumRanks {
		return 0, unknownVariant("Rank", ordinal)
	}
	return Rank(ordinal), nil
}

// String returns the display name of a rank.
func (r Rank) String() string {
	if r < NumRanks {
		return rankNames[r]
	}
	return fmt.Sprintf("Rank(%d)", uint8(r))
}

// Number returns the 1-based rank number as printed on a board edge.
func (r Rank) Number() int {
	return int(r) + 1
}

// CastleRights represents the castling moves still available to one player.
type CastleRights uint8

const (
	NoSide CastleRights = iota
	KingSide
	QueenSide
	BothSides
)

// NumCastleRights is the number of CastleRights variants.
const NumCastleRights = 4

var castleRightsNames = [NumCastleRights]string{"NoSide", "KingSide", "QueenSide", "BothSides"}

// CastleRightsFromOrdinal converts an ordinal into CastleRights.
func CastleRightsFromOrdinal(ordinal uint64) (CastleRights, error) {
	if ordinal >= NumCastleRights {
		return 0, unknownVariant("CastleRights", ordinal)
	}
	return CastleRights(ordinal), nil
}

// String returns the display name of the castle rights.
func (cr CastleRights) String() string {
	if cr < NumCastleRights {
		return castleRightsNames[cr]
	}
	return fmt.Sprintf("CastleRights(%d)", uint8(cr))
}

// HasKingSide reports whether king-side castling is allowed.
func (cr CastleRights) HasKingSide() bool {
	return cr&KingSide != 0
}

// HasQueenSide reports whether queen-side castling is allowed.
func (cr CastleRights) HasQueenSide() bool {
	return cr&QueenSide != 0
}

func unknownVariant(typeName string, ordinal uint64) error {
	return fmt.Errorf("%s ordinal %d: %w", typeName, ordinal, errors.ErrUnknownVariant)
}
