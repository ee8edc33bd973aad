package fen

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ambroisie/seer-inspect/internal/chess"
	inerrors "github.com/ambroisie/seer-inspect/internal/errors"
)

func TestParse_Initial(t *testing.T) {
	board, err := Parse(InitialFEN)
	if err != nil {
		t.Fatalf("Parse(InitialFEN) error: %v", err)
	}
	if diff := cmp.Diff(chess.StartingPosition(), board); diff != "" {
		t.Errorf("Parse(InitialFEN) mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(chess.ChessBoard) bool
	}{
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(b chess.ChessBoard) bool {
				e4 := chess.NewSquare(chess.FileE, chess.Fourth)
				piece, color, ok := b.At(e4)
				ep, epOK := b.EnPassant.Get()
				return ok && piece == chess.Pawn && color == chess.White &&
					b.Side == chess.Black && b.TotalPlies == 1 &&
					epOK && ep == chess.NewSquare(chess.FileE, chess.Third)
			},
		},
		{
			name: "no castling rights",
			fen:  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w - - 12 30",
			checkFn: func(b chess.ChessBoard) bool {
				return b.Rights[chess.White] == chess.NoSide &&
					b.Rights[chess.Black] == chess.NoSide &&
					b.HalfMoveClock == 12 && b.TotalPlies == 58
			},
		},
		{
			name: "largest move number",
			fen:  "4k3/8/8/8/8/8/8/4K3 b - - 0 2147483648",
			checkFn: func(b chess.ChessBoard) bool {
				return b.TotalPlies == math.MaxUint32
			},
		},
		{
			name: "partial castling rights",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1",
			checkFn: func(b chess.ChessBoard) bool {
				return b.Rights[chess.White] == chess.KingSide &&
					b.Rights[chess.Black] == chess.QueenSide
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := Parse(tt.fen)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if !tt.checkFn(board) {
				t.Errorf("Parse(%q) board check failed: %+v", tt.fen, board)
			}
			if err := board.Validate(); err != nil {
				t.Errorf("parsed board is inconsistent: %v", err)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty string", ""},
		{"missing clocks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"long rank", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"short rank", "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece", "rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KX - 0 1"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1"},
		{"bad clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
		{"zero move number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
		{"move number overflows plies", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 2147483649"},
		{"move number past uint32", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 4294967296"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.fen); !errors.Is(err, inerrors.ErrInvalidFEN) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}

func TestBoardToFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"8/8/4k3/8/8/4K3/8/8 b - - 37 80",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			board, err := Parse(fen)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got := BoardToFEN(board); got != fen {
				t.Errorf("BoardToFEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestBoardToFEN_StartingPosition(t *testing.T) {
	if got := BoardToFEN(chess.StartingPosition()); got != InitialFEN {
		t.Errorf("BoardToFEN(StartingPosition()) = %q, want %q", got, InitialFEN)
	}
}

func TestFullMoveNumber(t *testing.T) {
	tests := []struct {
		plies uint32
		want  uint32
	}{
		{0, 1}, {1, 1}, {2, 2}, {17, 9},
	}
	for _, tt := range tests {
		if got := FullMoveNumber(chess.ChessBoard{TotalPlies: tt.plies}); got != tt.want {
			t.Errorf("FullMoveNumber(plies=%d) = %d, want %d", tt.plies, got, tt.want)
		}
	}
}
