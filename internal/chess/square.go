package chess

import (
	"fmt"
	"strings"

	"github.com/ambroisie/seer-inspect/internal/errors"
)

// Square represents a square on the chess board (0-63).
// Squares are laid out file-major: A1=0, A2=1, ..., A8=7, B1=8, ..., H8=63,
// matching the bit order of a Bitboard.
type Square uint8

// NumSquares is the number of squares on the board.
const NumSquares = 64

// Named squares used by fixtures and tests.
const (
	A1 Square = 0
	E1 Square = 32
	H1 Square = 56
	A8 Square = 7
	E8 Square = 39
	H8 Square = 63
)

// SquareFromIndex converts a linear index into a Square.
func SquareFromIndex(index uint64) (Square, error) {
	if index >= NumSquares {
		return 0, unknownVariant("Square", index)
	}
	return Square(index), nil
}

// NewSquare creates a square from a file and a rank.
func NewSquare(file File, rank Rank) Square {
	return Square(uint8(file)*8 + uint8(rank))
}

// File returns the file (column) of the square.
func (sq Square) File() File {
	return File(sq / 8)
}

// Rank returns the rank (row) of the square.
func (sq Square) Rank() Rank {
	return Rank(sq % 8)
}

// FileRank returns both coordinates of the square.
func (sq Square) FileRank() (File, Rank) {
	return sq.File(), sq.Rank()
}

// Index returns the linear index of the square.
func (sq Square) Index() int {
	return int(sq)
}

// Bitboard returns the singleton bitboard holding only this square.
func (sq Square) Bitboard() Bitboard {
	return Bitboard(1) << sq
}

// String returns the square name, e.g. "E4".
func (sq Square) String() string {
	if sq >= NumSquares {
		return fmt.Sprintf("Square(%d)", uint8(sq))
	}
	return fmt.Sprintf("%c%d", 'A'+sq.File(), sq.Rank().Number())
}

// ParseSquare parses a square name such as "e4" or "E4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid square %q: %w", s, errors.ErrUnknownVariant)
	}

	s = strings.ToLower(s)
	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file >= NumFiles || rank < 0 || rank >= NumRanks {
		return 0, fmt.Errorf("invalid square %q: %w", s, errors.ErrUnknownVariant)
	}

	return NewSquare(File(file), Rank(rank)), nil
}

// OptionalSquare is a square that may be absent, such as the en-passant target.
type OptionalSquare struct {
	Square Square
	Valid  bool
}

// SomeSquare returns a present OptionalSquare.
func SomeSquare(sq Square) OptionalSquare {
	return OptionalSquare{Square: sq, Valid: true}
}

// NoSquare is the absent OptionalSquare.
var NoSquare = OptionalSquare{}

// Get returns the square and whether it is present.
func (o OptionalSquare) Get() (Square, bool) {
	return o.Square, o.Valid
}

// String returns the square name, or "(None)" when absent.
func (o OptionalSquare) String() string {
	if !o.Valid {
		return NoneMarker
	}
	return o.Square.String()
}

// NoneMarker is printed in place of an absent optional value.
const NoneMarker = "(None)"
