package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/decode"
	"github.com/ambroisie/seer-inspect/internal/printers"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
)

// BoardSnapshot returns a snapshot holding one board under name.
func BoardSnapshot(name string, board chess.ChessBoard) *rawvalue.Snapshot {
	snap := rawvalue.NewSnapshot()
	snap.Add(name, printers.ChessBoardType, decode.EncodeBoard(board))
	return snap
}

// FixtureSnapshot returns a snapshot with one value of every printable type:
// "board" (starting position), "sq", "bb", "mv" (packed), "smv" (structured),
// "color", "piece", "file", "rank" and "rights".
func FixtureSnapshot() *rawvalue.Snapshot {
	snap := BoardSnapshot("board", chess.StartingPosition())
	snap.Add("sq", printers.SquareType, rawvalue.Uint(uint64(chess.E8)))
	snap.Add("bb", printers.BitboardType, decode.EncodeBitboard(chess.A1.Bitboard()|chess.H8.Bitboard()))
	snap.Add("mv", printers.MoveType, decode.EncodePackedMove(chess.PackedMove{
		Piece:       chess.Pawn,
		Start:       12,
		Destination: 28,
		Capture:     chess.NoPiece,
		Promotion:   chess.NoPiece,
		DoubleStep:  true,
	}))
	snap.Add("smv", printers.MoveType, decode.EncodeMove(chess.NewMove(54, 55, chess.SomePiece(chess.Queen))))
	snap.Add("color", printers.ColorType, rawvalue.Uint(uint64(chess.Black)))
	snap.Add("piece", printers.PieceType, rawvalue.Uint(uint64(chess.Knight)))
	snap.Add("file", printers.FileType, rawvalue.Uint(uint64(chess.FileE)))
	snap.Add("rank", printers.RankType, rawvalue.Uint(uint64(chess.Fourth)))
	snap.Add("rights", printers.CastleRightsType, rawvalue.Uint(uint64(chess.QueenSide)))
	return snap
}

// WriteSnapshot writes a snapshot document into a temporary directory and
// returns its path.
func WriteSnapshot(t *testing.T, snap *rawvalue.Snapshot) string {
	t.Helper()
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("encoding snapshot: %v", err)
	}
	return WriteFile(t, "snapshot.json", data)
}

// WriteFile writes data to a file in a temporary directory and returns its path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
