package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/config"
	"github.com/ambroisie/seer-inspect/internal/decode"
	"github.com/ambroisie/seer-inspect/internal/fen"
	"github.com/ambroisie/seer-inspect/internal/hashing"
)

// JSONBoard represents a decoded board in JSON format.
type JSONBoard struct {
	Name          string            `json:"name,omitempty"`
	Pieces        []JSONPiece       `json:"pieces"`
	CastleRights  map[string]string `json:"castleRights"`
	HalfMoveClock uint32            `json:"halfMoveClock"`
	TotalPlies    uint32            `json:"totalPlies"`
	Side          string            `json:"side"`
	EnPassant     *string           `json:"enPassant"`
	FEN           string            `json:"fen,omitempty"`
	Hash          string            `json:"hash"`
}

// JSONPiece is one occupied square.
type JSONPiece struct {
	Square string `json:"square"`
	Piece  string `json:"piece"`
	Color  string `json:"color"`
}

// JSONMove represents a decoded move in JSON format. Packed-only fields are
// omitted for structured moves; an absent capture is omitted too.
type JSONMove struct {
	Piece       string  `json:"piece,omitempty"`
	Start       string  `json:"start"`
	Destination string  `json:"destination"`
	Capture     *string `json:"capture,omitempty"`
	Promotion   *string `json:"promotion"`
	EnPassant   *bool   `json:"enPassant,omitempty"`
	DoubleStep  *bool   `json:"doubleStep,omitempty"`
	Castling    *bool   `json:"castling,omitempty"`
}

// JSONOutput holds multiple boards for array output.
type JSONOutput struct {
	Boards []*JSONBoard `json:"boards"`
}

// BoardToJSON converts a board to JSON format. Pieces are listed in square
// order, each resolved with ChessBoard.At.
func BoardToJSON(name string, board chess.ChessBoard, cfg *config.Config) *JSONBoard {
	jb := &JSONBoard{
		Name:   name,
		Pieces: make([]JSONPiece, 0, board.CombinedOccupancy().PopCount()),
		CastleRights: map[string]string{
			"white": board.CastleRights(chess.White).String(),
			"black": board.CastleRights(chess.Black).String(),
		},
		HalfMoveClock: board.HalfMoveClock,
		TotalPlies:    board.TotalPlies,
		Side:          board.Side.String(),
		Hash:          fmt.Sprintf("%016x", hashing.GenerateZobristHash(board)),
	}

	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		piece, color, ok := board.At(sq)
		if !ok {
			continue
		}
		jb.Pieces = append(jb.Pieces, JSONPiece{
			Square: sq.String(),
			Piece:  piece.String(),
			Color:  color.String(),
		})
	}

	if sq, ok := board.EnPassant.Get(); ok {
		s := sq.String()
		jb.EnPassant = &s
	}

	if cfg == nil || cfg.Output.IncludeFEN {
		jb.FEN = fen.BoardToFEN(board)
	}
	return jb
}

func optionalPieceJSON(o chess.OptionalPiece) *string {
	if p, ok := o.Get(); ok {
		s := p.String()
		return &s
	}
	return nil
}

// MoveToJSON converts a structured move to JSON format.
func MoveToJSON(m chess.Move) *JSONMove {
	return &JSONMove{
		Start:       m.Start.String(),
		Destination: m.Destination.String(),
		Promotion:   optionalPieceJSON(m.Promotion),
	}
}

// PackedMoveToJSON converts a packed move to JSON format.
func PackedMoveToJSON(m chess.PackedMove) *JSONMove {
	jm := MoveToJSON(m.Move())
	jm.Piece = m.Piece.String()
	jm.Capture = optionalPieceJSON(m.Capture)
	jm.EnPassant = &m.EnPassant
	jm.DoubleStep = &m.DoubleStep
	jm.Castling = &m.Castling
	return jm
}

// WriteMoveJSON writes a decoded move as indented JSON, with the packed-only
// fields when the move came from the packed layout.
func WriteMoveJSON(w io.Writer, m decode.DecodedMove) error {
	if m.Packed != nil {
		return encodeJSON(w, PackedMoveToJSON(*m.Packed))
	}
	return encodeJSON(w, MoveToJSON(m.Move))
}

// encodeJSON writes v as indented JSON followed by a newline.
func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
