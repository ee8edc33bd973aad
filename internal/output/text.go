// Package output renders decoded chess values as text, JSON, FEN and PNG.
package output

import (
	"strconv"
	"strings"

	"github.com/ambroisie/seer-inspect/internal/chess"
)

// boardHeader labels the files above and below the diagram.
const boardHeader = "   A B C D E F G H   "

// glyphs is indexed [piece][color]. White gets the filled symbols, which read
// as light pieces on a dark terminal background.
var glyphs = [chess.NumPieces][chess.NumColors]string{
	chess.King:   {"♚", "♔"},
	chess.Queen:  {"♛", "♕"},
	chess.Rook:   {"♜", "♖"},
	chess.Bishop: {"♝", "♗"},
	chess.Knight: {"♞", "♘"},
	chess.Pawn:   {"♟", "♙"},
}

// Glyph returns the Unicode symbol for a coloured piece.
func Glyph(piece chess.Piece, color chess.Color) string {
	return glyphs[piece][color]
}

// RenderBoard draws the board as a Unicode diagram, rank 8 at the top,
// followed by the scalar state. Lines are separated by "\n" with no trailing
// newline.
func RenderBoard(board chess.ChessBoard) string {
	lines := make([]string, 0, chess.NumRanks+6)
	lines = append(lines, boardHeader)

	for i := chess.NumRanks - 1; i >= 0; i-- {
		rank := chess.Ranks[i]
		n := strconv.Itoa(rank.Number())

		cells := make([]string, 0, chess.NumFiles+2)
		cells = append(cells, n+" ")
		for _, file := range chess.Files {
			cell := " "
			if piece, color, ok := board.At(chess.NewSquare(file, rank)); ok {
				cell = Glyph(piece, color)
			}
			cells = append(cells, cell)
		}
		cells = append(cells, " "+n)
		lines = append(lines, strings.Join(cells, "|"))
	}

	lines = append(lines,
		boardHeader,
		"Half-move clock: "+strconv.FormatUint(uint64(board.HalfMoveClock), 10),
		"Total plies: "+strconv.FormatUint(uint64(board.TotalPlies), 10),
		"Side to play: "+board.Side.String(),
		"En passant: "+board.EnPassant.String(),
	)
	return strings.Join(lines, "\n")
}

// RenderBitboard prints a bitboard as "Bitboard{A1, C1}".
func RenderBitboard(b chess.Bitboard) string {
	var sb strings.Builder
	sb.WriteString("Bitboard{")
	first := true
	for sq := range b.All() {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString(sq.String())
		first = false
	}
	sb.WriteByte('}')
	return sb.String()
}

type moveField struct {
	name  string
	value string
}

func renderRecord(name string, fields []moveField) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString("{\n")
	for _, f := range fields {
		sb.WriteString("    ")
		sb.WriteString(f.name)
		sb.WriteString(": ")
		sb.WriteString(f.value)
		sb.WriteString(",\n")
	}
	sb.WriteByte('}')
	return sb.String()
}

// RenderMove prints a structured move, one field per line.
func RenderMove(m chess.Move) string {
	return renderRecord("Move", []moveField{
		{"start", m.Start.String()},
		{"destination", m.Destination.String()},
		{"promotion", m.Promotion.String()},
	})
}

// RenderPackedMove prints every field carried by the packed move format.
func RenderPackedMove(m chess.PackedMove) string {
	return renderRecord("Move", []moveField{
		{"piece", m.Piece.String()},
		{"start", m.Start.String()},
		{"destination", m.Destination.String()},
		{"capture", m.Capture.String()},
		{"promotion", m.Promotion.String()},
		{"en_passant", strconv.FormatBool(m.EnPassant)},
		{"double_step", strconv.FormatBool(m.DoubleStep)},
		{"castling", strconv.FormatBool(m.Castling)},
	})
}
