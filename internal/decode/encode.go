package decode

import (
	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
)

// EncodeBitboard builds the raw newtype layout of a bitboard.
func EncodeBitboard(b chess.Bitboard) rawvalue.Node {
	return rawvalue.Struct(map[string]rawvalue.Node{FieldNewtype: rawvalue.Uint(uint64(b))})
}

// EncodePackedMove builds the raw newtype layout of a packed move.
func EncodePackedMove(m chess.PackedMove) rawvalue.Node {
	return rawvalue.Struct(map[string]rawvalue.Node{FieldNewtype: rawvalue.Uint(m.Encode())})
}

// EncodeMove builds the raw structured move record.
func EncodeMove(m chess.Move) rawvalue.Node {
	promotion := rawvalue.None()
	if p, ok := m.Promotion.Get(); ok {
		promotion = rawvalue.Some(rawvalue.Uint(uint64(p)))
	}
	return rawvalue.Struct(map[string]rawvalue.Node{
		FieldStart:       rawvalue.Uint(uint64(m.Start)),
		FieldDestination: rawvalue.Uint(uint64(m.Destination)),
		FieldPromotion:   promotion,
	})
}

// EncodeBoard builds the raw memory layout of a board, the inverse of
// ChessBoard.
func EncodeBoard(b chess.ChessBoard) rawvalue.Node {
	pieces := make([]rawvalue.Node, 0, chess.NumPieces)
	for _, p := range chess.Pieces {
		pieces = append(pieces, EncodeBitboard(b.PieceOccupancy[p]))
	}
	colors := make([]rawvalue.Node, 0, chess.NumColors)
	rights := make([]rawvalue.Node, 0, chess.NumColors)
	for _, c := range chess.Colors {
		colors = append(colors, EncodeBitboard(b.ColorOccupancy[c]))
		rights = append(rights, rawvalue.Uint(uint64(b.Rights[c])))
	}

	enPassant := rawvalue.None()
	if sq, ok := b.EnPassant.Get(); ok {
		enPassant = rawvalue.Some(rawvalue.Uint(uint64(sq)))
	}

	return rawvalue.Struct(map[string]rawvalue.Node{
		FieldPieceOccupancy: rawvalue.Array(pieces...),
		FieldColorOccupancy: rawvalue.Array(colors...),
		FieldCastleRights:   rawvalue.Array(rights...),
		FieldHalfMoveClock:  rawvalue.Uint(uint64(b.HalfMoveClock)),
		FieldTotalPlies:     rawvalue.Uint(uint64(b.TotalPlies)),
		FieldSide:           rawvalue.Uint(uint64(b.Side)),
		FieldEnPassant:      enPassant,
	})
}
