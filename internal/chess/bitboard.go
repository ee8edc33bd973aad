package chess

import (
	"iter"
	"math/bits"
	"strings"
)

// Bitboard represents a set of squares, one bit per square.
// Bit i is set when Square(i) belongs to the set.
type Bitboard uint64

// EmptyBitboard is the bitboard with no squares.
const EmptyBitboard Bitboard = 0

// Contains returns true if the square's bit is set.
func (b Bitboard) Contains(sq Square) bool {
	return b&sq.Bitboard() != 0
}

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// IsEmpty returns true if no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b == 0
}

// lowest isolates the least significant set bit.
func (b Bitboard) lowest() Bitboard {
	return b & -b
}

// Squares returns the set squares in ascending index order.
// Each call scans its own copy of the mask.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for sq := range b.All() {
		squares = append(squares, sq)
	}
	return squares
}

// All returns a restartable sequence over the set squares in ascending order.
func (b Bitboard) All() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		mask := b
		for mask != 0 {
			low := mask.lowest()
			if !yield(Square(bits.Len64(uint64(low)) - 1)) {
				return
			}
			mask ^= low
		}
	}
}

// String returns the set as a bracketed, comma-separated list: "[A1, C1]".
func (b Bitboard) String() string {
	names := make([]string, 0, b.PopCount())
	for sq := range b.All() {
		names = append(names, sq.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
