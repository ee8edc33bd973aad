package decode

import (
	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
)

// BoardOptions controls board reconstruction.
type BoardOptions struct {
	// Strict rejects boards whose occupancy bitboards disagree.
	Strict bool
}

// ChessBoard decodes a board without cross-checking its occupancy bitboards.
func ChessBoard(v rawvalue.Value) (chess.ChessBoard, error) {
	return ChessBoardWith(v, BoardOptions{})
}

// ChessBoardWith decodes a board with explicit options.
func ChessBoardWith(v rawvalue.Value, opts BoardOptions) (chess.ChessBoard, error) {
	const typeName = "ChessBoard"
	var (
		pieces [chess.NumPieces]chess.Bitboard
		colors [chess.NumColors]chess.Bitboard
		rights [chess.NumColors]chess.CastleRights
		err    error
	)

	for _, p := range chess.Pieces {
		if pieces[p], err = element(v, typeName, FieldPieceOccupancy, int(p), Bitboard); err != nil {
			return chess.ChessBoard{}, err
		}
	}
	for _, c := range chess.Colors {
		if colors[c], err = element(v, typeName, FieldColorOccupancy, int(c), Bitboard); err != nil {
			return chess.ChessBoard{}, err
		}
		if rights[c], err = element(v, typeName, FieldCastleRights, int(c), CastleRights); err != nil {
			return chess.ChessBoard{}, err
		}
	}

	halfMoveClock, err := field(v, typeName, FieldHalfMoveClock, uint32Value)
	if err != nil {
		return chess.ChessBoard{}, err
	}
	totalPlies, err := field(v, typeName, FieldTotalPlies, uint32Value)
	if err != nil {
		return chess.ChessBoard{}, err
	}
	side, err := field(v, typeName, FieldSide, Color)
	if err != nil {
		return chess.ChessBoard{}, err
	}
	enPassant, err := field(v, typeName, FieldEnPassant, optionalSquare)
	if err != nil {
		return chess.ChessBoard{}, err
	}

	board := chess.NewChessBoard(pieces, colors, rights, halfMoveClock, totalPlies, side, enPassant)
	if opts.Strict {
		if err := board.Validate(); err != nil {
			return chess.ChessBoard{}, errors.Decoding(err, typeName, "")
		}
	}
	return board, nil
}

func optionalSquare(v rawvalue.Value) (chess.OptionalSquare, error) {
	sq, ok, err := optional(v, Square)
	if err != nil || !ok {
		return chess.NoSquare, err
	}
	return chess.SomeSquare(sq), nil
}
