// Package fen converts decoded boards to and from Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// PieceFromChar converts a FEN character of either case to a piece type.
func PieceFromChar(c rune) (chess.Piece, bool) {
	switch unicode.ToUpper(c) {
	case 'K':
		return chess.King, true
	case 'Q':
		return chess.Queen, true
	case 'R':
		return chess.Rook, true
	case 'B':
		return chess.Bishop, true
	case 'N':
		return chess.Knight, true
	case 'P':
		return chess.Pawn, true
	}
	return 0, false
}

// PieceChar returns the FEN letter for a coloured piece.
func PieceChar(piece chess.Piece, color chess.Color) byte {
	letter := piece.Letter()
	if color == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errors.ErrInvalidFEN)...)
}

// Parse builds a board from a FEN string. All six fields are required.
func Parse(s string) (chess.ChessBoard, error) {
	parts := strings.Fields(s)
	if len(parts) != 6 {
		return chess.ChessBoard{}, invalid("expected 6 fields, got %d", len(parts))
	}

	var board chess.ChessBoard
	if err := parsePiecePositions(&board, parts[0]); err != nil {
		return chess.ChessBoard{}, err
	}
	if err := parseSideToMove(&board, parts[1]); err != nil {
		return chess.ChessBoard{}, err
	}
	if err := parseCastlingRights(&board, parts[2]); err != nil {
		return chess.ChessBoard{}, err
	}
	if err := parseEnPassant(&board, parts[3]); err != nil {
		return chess.ChessBoard{}, err
	}
	if err := parseClocks(&board, parts[4], parts[5]); err != nil {
		return chess.ChessBoard{}, err
	}
	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.ChessBoard, positions string) error {
	rows := strings.Split(positions, "/")
	if len(rows) != chess.NumRanks {
		return invalid("expected %d ranks, got %d", chess.NumRanks, len(rows))
	}

	for i, row := range rows {
		rank := chess.Rank(chess.NumRanks - 1 - i)
		file := 0
		for _, c := range row {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := PieceFromChar(c)
			if !ok {
				return invalid("invalid piece character %q", c)
			}
			if file >= chess.NumFiles {
				return invalid("rank %d overflows", rank.Number())
			}
			color := chess.White
			if unicode.IsLower(c) {
				color = chess.Black
			}
			*board = board.With(piece, color, chess.NewSquare(chess.File(file), rank))
			file++
		}
		if file != chess.NumFiles {
			return invalid("rank %d has %d files", rank.Number(), file)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.ChessBoard, side string) error {
	switch side {
	case "w":
		board.Side = chess.White
	case "b":
		board.Side = chess.Black
	default:
		return invalid("invalid side to move %q", side)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.ChessBoard, field string) error {
	board.Rights = [chess.NumColors]chess.CastleRights{chess.NoSide, chess.NoSide}
	if field == "-" {
		return nil
	}
	for _, c := range field {
		switch c {
		case 'K':
			board.Rights[chess.White] |= chess.KingSide
		case 'Q':
			board.Rights[chess.White] |= chess.QueenSide
		case 'k':
			board.Rights[chess.Black] |= chess.KingSide
		case 'q':
			board.Rights[chess.Black] |= chess.QueenSide
		default:
			return invalid("invalid castling character %q", c)
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.ChessBoard, field string) error {
	board.EnPassant = chess.NoSquare
	if field == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil {
		return invalid("invalid en passant square %q", field)
	}
	board.EnPassant = chess.SomeSquare(sq)
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields. The
// fullmove number is folded into the ply count using the side to move.
func parseClocks(board *chess.ChessBoard, halfMove, fullMove string) error {
	clock, err := strconv.ParseUint(halfMove, 10, 32)
	if err != nil {
		return invalid("invalid half-move clock %q", halfMove)
	}
	moves, err := strconv.ParseUint(fullMove, 10, 32)
	if err != nil || moves == 0 {
		return invalid("invalid full-move number %q", fullMove)
	}
	// The ply count of the move's second half must fit in a uint32.
	if moves-1 > (math.MaxUint32-1)/2 {
		return invalid("full-move number %q out of range", fullMove)
	}

	board.HalfMoveClock = uint32(clock)
	board.TotalPlies = uint32((moves-1)*2) + uint32(board.Side)
	return nil
}

// BoardToFEN converts a board to a FEN string. Squares are resolved with
// ChessBoard.At, so an inconsistent board renders the same pieces as the
// text diagram.
func BoardToFEN(board chess.ChessBoard) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.HalfMoveClock, FullMoveNumber(board))

	return sb.String()
}

// FullMoveNumber returns the FEN full-move counter for a board.
func FullMoveNumber(board chess.ChessBoard) uint32 {
	return board.TotalPlies/2 + 1
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board chess.ChessBoard) {
	for i := chess.NumRanks - 1; i >= 0; i-- {
		rank := chess.Ranks[i]
		emptyCount := 0
		for _, file := range chess.Files {
			piece, color, ok := board.At(chess.NewSquare(file, rank))
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(PieceChar(piece, color))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > chess.First {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board chess.ChessBoard) {
	if board.Side == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board chess.ChessBoard) {
	white, black := board.CastleRights(chess.White), board.CastleRights(chess.Black)
	hasCastling := false
	for _, right := range []struct {
		ok     bool
		letter byte
	}{
		{white.HasKingSide(), 'K'},
		{white.HasQueenSide(), 'Q'},
		{black.HasKingSide(), 'k'},
		{black.HasQueenSide(), 'q'},
	} {
		if right.ok {
			sb.WriteByte(right.letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board chess.ChessBoard) {
	if sq, ok := board.EnPassant.Get(); ok {
		sb.WriteString(strings.ToLower(sq.String()))
	} else {
		sb.WriteByte('-')
	}
}
