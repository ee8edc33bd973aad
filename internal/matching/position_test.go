package matching

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ambroisie/seer-inspect/internal/chess"
	inerrors "github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/fen"
)

func mustParseFEN(t *testing.T, s string) chess.ChessBoard {
	t.Helper()
	board, err := fen.Parse(s)
	if err != nil {
		t.Fatalf("fen.Parse(%q): %v", s, err)
	}
	return board
}

const (
	afterE4FEN    = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	kingsOnlyFEN  = "8/8/4k3/8/8/4K3/8/8 w - - 0 40"
	rookEndingFEN = "8/5k2/8/8/8/8/R7/4K3 w - - 10 70"
)

func TestBoardToRanks(t *testing.T) {
	got := boardToRanks(chess.StartingPosition())
	want := [chess.NumRanks]string{
		"rnbqkbnr",
		"pppppppp",
		"________",
		"________",
		"________",
		"________",
		"PPPPPPPP",
		"RNBQKBNR",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("boardToRanks() mismatch (-want +got):\n%s", diff)
	}

	ranks := boardToRanks(mustParseFEN(t, kingsOnlyFEN))
	if ranks[2] != "____k___" || ranks[5] != "____K___" {
		t.Errorf("boardToRanks(kings only) = %q", ranks)
	}
}

func TestMatchRank(t *testing.T) {
	tests := []struct {
		name        string
		boardRank   string
		patternRank string
		want        bool
	}{
		{"exact match", "RNBQKBNR", "RNBQKBNR", true},
		{"exact mismatch", "RNBQKBNR", "RNBQKBN_", false},
		{"question mark any piece", "RNBQKBNR", "?NBQKBNR", true},
		{"question mark wrong length", "RNBQKBNR", "???????", false},
		{"bang matches piece", "RNBQKBNR", "!!!!!!!!", true},
		{"bang fails on empty", "________", "!_______", false},
		{"A matches white", "RNBQKBNR", "ANBQKBNR", true},
		{"A fails on black", "rnbqkbnr", "Anbqkbnr", false},
		{"a matches black", "rnbqkbnr", "anbqkbnr", true},
		{"a fails on empty", "________", "a_______", false},
		{"underscore fails on piece", "RNBQKBNR", "_NBQKBNR", false},
		{"8 empty squares", "________", "8", true},
		{"digit mismatch", "R_______", "8", false},
		{"digit exceeds board", "___", "8", false},
		{"digit then piece", "____KBNR", "4KBNR", true},
		{"star matches all", "RNBQKBNR", "*", true},
		{"star in middle", "RNBQKBNR", "R*R", true},
		{"star no match", "RNBQKBNR", "R*X", false},
		{"star multiple", "RNBQKBNR", "*Q*", true},
		{"pattern past board end", "", "!", false},
		{"empty pattern empty board", "", "", true},
		{"board longer than pattern", "RNBQ", "RN", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchRank(tt.boardRank, tt.patternRank); got != tt.want {
				t.Errorf("matchRank(%q, %q) = %v, want %v", tt.boardRank, tt.patternRank, got, tt.want)
			}
		})
	}
}

func TestInvertPattern(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"?*!_/PPPPPPPP", "pppppppp/?*!_"},
		{"4K3/8", "8/4k3"},
		{"AAA/BBB/ccc", "CCC/bbb/aaa"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := invertPattern(tt.input); got != tt.want {
			t.Errorf("invertPattern(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPositionMatcher_AddFEN(t *testing.T) {
	pm := NewPositionMatcher()
	if err := pm.AddFEN(afterE4FEN, "e4"); err != nil {
		t.Fatalf("AddFEN error: %v", err)
	}
	if err := pm.AddFEN("not a fen", ""); !errors.Is(err, inerrors.ErrInvalidFEN) {
		t.Errorf("AddFEN(invalid) error = %v; want ErrInvalidFEN", err)
	}
	if pm.PatternCount() != 1 {
		t.Errorf("PatternCount() = %d; want 1", pm.PatternCount())
	}

	board := mustParseFEN(t, afterE4FEN)
	match := pm.MatchBoard(board)
	if match == nil || match.Label != "e4" || !match.IsExact {
		t.Fatalf("MatchBoard(after e4) = %+v", match)
	}

	// Clocks do not take part in the position.
	board.HalfMoveClock, board.TotalPlies = 3, 9
	if !pm.Match(board) {
		t.Error("exact FEN match depends on the clocks")
	}

	board.Side = chess.White
	if pm.Match(board) {
		t.Error("exact FEN match ignores the side to move")
	}
	if pm.Match(chess.StartingPosition()) {
		t.Error("starting position matched the position after e4")
	}
}

func TestPositionMatcher_Patterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		invert  bool
		board   string
		want    bool
	}{
		{"kings on e-file", "8/8/4k3/8/8/4K3/8/8", false, kingsOnlyFEN, true},
		{"any black piece on e6", "*/*/4a3/*/*/*/*/*", false, kingsOnlyFEN, true},
		{"wildcards reject", "*/*/4A3/*/*/*/*/*", false, kingsOnlyFEN, false},
		{"white rook on a2", "*/*/*/*/*/*/R7/*", false, rookEndingFEN, true},
		{"black rook on a7 only with invert", "*/r7/*/*/*/*/*/*", false, rookEndingFEN, false},
		{"inverted matches flipped colours", "*/r7/*/*/*/*/*/*", true, rookEndingFEN, true},
		{"initial position", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", false, fen.InitialFEN, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPositionMatcher()
			pm.AddPattern(tt.pattern, tt.name, tt.invert)
			if got := pm.Match(mustParseFEN(t, tt.board)); got != tt.want {
				t.Errorf("Match(%s) with %q = %v; want %v", tt.board, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestPositionMatcher_Add(t *testing.T) {
	pm := NewPositionMatcher()
	if err := pm.Add(kingsOnlyFEN, ""); err != nil {
		t.Fatal(err)
	}
	if err := pm.Add("*/*/*/*/*/*/R7/*", ""); err != nil {
		t.Fatal(err)
	}
	if err := pm.Add("  ", ""); !errors.Is(err, inerrors.ErrInvalidFEN) {
		t.Errorf("Add(blank) error = %v; want ErrInvalidFEN", err)
	}

	if !pm.Match(mustParseFEN(t, kingsOnlyFEN)) || !pm.Match(mustParseFEN(t, rookEndingFEN)) {
		t.Error("Add did not register both a FEN and a pattern")
	}
	if pm.Match(chess.StartingPosition()) {
		t.Error("starting position matched")
	}
}

func TestPositionMatcher_Empty(t *testing.T) {
	pm := NewPositionMatcher()
	if pm.Match(chess.StartingPosition()) {
		t.Error("empty matcher matched a board")
	}
	if pm.MatchBoard(chess.StartingPosition()) != nil {
		t.Error("empty matcher returned a pattern")
	}
}
