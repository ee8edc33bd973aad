package hashing

import "github.com/ambroisie/seer-inspect/internal/chess"

// Zobrist keys, drawn from an xorshift generator seeded with 4 in this order:
// side to move, en passant by file, castling by [white][black] rights, then
// pieces by [color][piece][square].
var (
	blackToMove   uint64
	enPassantKeys [chess.NumFiles]uint64
	castlingKeys  [chess.NumCastleRights][chess.NumCastleRights]uint64
	pieceKeys     [chess.NumColors][chess.NumPieces][chess.NumSquares]uint64
)

// xorshift is a 64-bit xorshift generator.
type xorshift uint64

func (x *xorshift) next() uint64 {
	*x ^= *x >> 12
	*x ^= *x << 25
	*x ^= *x >> 27
	return uint64(*x)
}

func init() {
	rng := xorshift(4)

	blackToMove = rng.next()
	for f := range enPassantKeys {
		enPassantKeys[f] = rng.next()
	}
	for w := range castlingKeys {
		for b := range castlingKeys[w] {
			castlingKeys[w][b] = rng.next()
		}
	}
	for c := range pieceKeys {
		for p := range pieceKeys[c] {
			for sq := range pieceKeys[c][p] {
				pieceKeys[c][p][sq] = rng.next()
			}
		}
	}
}

// GenerateZobristHash returns the Zobrist key of a board. Pieces are resolved
// square by square with ChessBoard.At. The clocks do not take part.
func GenerateZobristHash(board chess.ChessBoard) uint64 {
	var hash uint64

	for sq := range board.CombinedOccupancy().All() {
		piece, color, ok := board.At(sq)
		if !ok {
			continue
		}
		hash ^= pieceKeys[color][piece][sq]
	}

	hash ^= castlingKeys[board.CastleRights(chess.White)][board.CastleRights(chess.Black)]
	if sq, ok := board.EnPassant.Get(); ok {
		hash ^= enPassantKeys[sq.File()]
	}
	if board.Side == chess.Black {
		hash ^= blackToMove
	}
	return hash
}

// WeakHash is a cheap positional checksum: the sum of piece-square codes.
func WeakHash(board chess.ChessBoard) uint32 {
	var sum uint32
	for sq := range board.CombinedOccupancy().All() {
		piece, color, ok := board.At(sq)
		if !ok {
			continue
		}
		code := uint32(color)*chess.NumPieces + uint32(piece) + 1
		sum += code * (uint32(sq) + 1)
	}
	return sum
}
