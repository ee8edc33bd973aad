package decode

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ambroisie/seer-inspect/internal/chess"
	inerrors "github.com/ambroisie/seer-inspect/internal/errors"
)

const startingBoardJSON = `{
  "piece_occupancy": [
    {"__0": 554050781184},
    {"__0": 2164260864},
    {"__0": "0x8100000000000081"},
    {"__0": "0x0000810000810000"},
    {"__0": "0x0081000000008100"},
    {"__0": "0x4242424242424242"}
  ],
  "color_occupancy": [{"__0": "0x0303030303030303"}, {"__0": "0xC0C0C0C0C0C0C0C0"}],
  "castle_rights": [3, 3],
  "half_move_clock": 0,
  "total_plies": 0,
  "side": 0,
  "en_passant": "None"
}`

func TestChessBoard_StartingPosition(t *testing.T) {
	got, err := ChessBoard(raw(t, startingBoardJSON))
	if err != nil {
		t.Fatalf("ChessBoard() error: %v", err)
	}
	if diff := cmp.Diff(chess.StartingPosition(), got); diff != "" {
		t.Errorf("ChessBoard() mismatch (-want +got):\n%s", diff)
	}
}

func TestChessBoard_RoundTrip(t *testing.T) {
	want := chess.StartingPosition()
	want.HalfMoveClock = 3
	want.TotalPlies = 17
	want.Side = chess.Black
	want.Rights = [chess.NumColors]chess.CastleRights{chess.KingSide, chess.NoSide}
	want.EnPassant = chess.SomeSquare(chess.NewSquare(chess.FileE, chess.Third))

	got, err := ChessBoardWith(EncodeBoard(want), BoardOptions{Strict: true})
	if err != nil {
		t.Fatalf("ChessBoardWith() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestChessBoard_Errors(t *testing.T) {

	tests := []struct {
		name    string
		input   string
		wantErr error
		path    string
	}{
		{
			name:    "missing field",
			input:   `{"piece_occupancy": []}`,
			wantErr: inerrors.ErrIndexOutOfRange,
			path:    "piece_occupancy[0]",
		},
		{
			name: "bad side",
			input: `{
				"piece_occupancy": [{"__0":0},{"__0":0},{"__0":0},{"__0":0},{"__0":0},{"__0":0}],
				"color_occupancy": [{"__0":0},{"__0":0}],
				"castle_rights": [0, 0],
				"half_move_clock": 0, "total_plies": 0, "side": 2, "en_passant": "None"
			}`,
			wantErr: inerrors.ErrUnknownVariant,
			path:    "side",
		},
		{
			name: "bad castle rights",
			input: `{
				"piece_occupancy": [{"__0":0},{"__0":0},{"__0":0},{"__0":0},{"__0":0},{"__0":0}],
				"color_occupancy": [{"__0":0},{"__0":0}],
				"castle_rights": [0, 5]
			}`,
			wantErr: inerrors.ErrUnknownVariant,
			path:    "castle_rights[1]",
		},
		{
			name: "non-integer bitboard",
			input: `{
				"piece_occupancy": [{"__0":0},{"__0":0},{"__0":"x"}]
			}`,
			wantErr: inerrors.ErrNotInteger,
			path:    "piece_occupancy[2].__0",
		},
		{
			name: "bad en passant",
			input: `{
				"piece_occupancy": [{"__0":0},{"__0":0},{"__0":0},{"__0":0},{"__0":0},{"__0":0}],
				"color_occupancy": [{"__0":0},{"__0":0}],
				"castle_rights": [0, 0],
				"half_move_clock": 0, "total_plies": 0, "side": 0, "en_passant": {"Some": 70}
			}`,
			wantErr: inerrors.ErrUnknownVariant,
			path:    "en_passant.Some",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ChessBoard(raw(t, tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v; want %v", err, tt.wantErr)
			}
			var de *inerrors.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("error %v is not a DecodeError", err)
			}
			if de.Type != "ChessBoard" || de.Path != tt.path {
				t.Errorf("DecodeError = {Type: %q, Path: %q}; want {ChessBoard, %q}", de.Type, de.Path, tt.path)
			}
		})
	}
}

func TestChessBoard_StrictPolicy(t *testing.T) {
	b := chess.StartingPosition()
	b.PieceOccupancy[chess.Queen] |= chess.E1.Bitboard()
	v := EncodeBoard(b)

	lenient, err := ChessBoard(v)
	if err != nil {
		t.Fatalf("lenient decode error: %v", err)
	}
	if piece, _, _ := lenient.At(chess.E1); piece != chess.King {
		t.Errorf("At(E1) = %v; want King by tie-break", piece)
	}

	if _, err := ChessBoardWith(v, BoardOptions{Strict: true}); !errors.Is(err, inerrors.ErrDataIntegrity) {
		t.Errorf("strict decode error = %v; want ErrDataIntegrity", err)
	}
}
