package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/decode"
	inerrors "github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { s.Close() })
	return s
}

func boardSnapshot(board chess.ChessBoard) *rawvalue.Snapshot {
	snap := rawvalue.NewSnapshot()
	snap.Add("board", "seer::board::chess_board::ChessBoard", decode.EncodeBoard(board))
	return snap
}

func TestStore_SaveGet(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.Save("opening", boardSnapshot(chess.StartingPosition()))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if rec.Name != "opening" || len(rec.Symbols) != 1 || rec.Symbols[0] != "board" {
		t.Errorf("Save() record = %+v", rec)
	}

	for _, ref := range []string{"opening", rec.ID.String()} {
		t.Run(ref, func(t *testing.T) {
			snap, got, err := s.Get(ref)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", ref, err)
			}
			if diff := cmp.Diff(rec, got); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
			v, _, err := snap.Eval("board")
			if err != nil {
				t.Fatal(err)
			}
			board, err := decode.ChessBoard(v)
			if err != nil {
				t.Fatalf("decoding archived board: %v", err)
			}
			if diff := cmp.Diff(chess.StartingPosition(), board); diff != "" {
				t.Errorf("board mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	s := openTestStore(t)

	first, err := s.Save("pos", boardSnapshot(chess.StartingPosition()))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save("pos", boardSnapshot(chess.ChessBoard{}))
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("Save() reused the id of the replaced snapshot")
	}

	if _, _, err := s.Get(first.ID.String()); !errors.Is(err, inerrors.ErrSnapshotNotFound) {
		t.Errorf("Get(old id) error = %v; want ErrSnapshotNotFound", err)
	}
	records, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != second.ID {
		t.Errorf("List() = %+v; want only the replacement", records)
	}
}

func TestStore_List(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"middlegame", "endgame", "opening"} {
		if _, err := s.Save(name, boardSnapshot(chess.StartingPosition())); err != nil {
			t.Fatal(err)
		}
	}

	records, err := s.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	var names []string
	for _, r := range records {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"endgame", "middlegame", "opening"}, names); diff != "" {
		t.Errorf("List() names mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Save("gone", boardSnapshot(chess.StartingPosition())); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("gone"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, _, err := s.Get("gone"); !errors.Is(err, inerrors.ErrSnapshotNotFound) {
		t.Errorf("Get after Delete error = %v; want ErrSnapshotNotFound", err)
	}
	if err := s.Delete("gone"); !errors.Is(err, inerrors.ErrSnapshotNotFound) {
		t.Errorf("second Delete error = %v; want ErrSnapshotNotFound", err)
	}
}

func TestStore_Errors(t *testing.T) {
	s := openTestStore(t)
	if _, _, err := s.Get("missing"); !errors.Is(err, inerrors.ErrSnapshotNotFound) {
		t.Errorf("Get(missing) error = %v; want ErrSnapshotNotFound", err)
	}
	if _, err := s.Save("", rawvalue.NewSnapshot()); !errors.Is(err, inerrors.ErrInvalidConfig) {
		t.Errorf("Save(empty name) error = %v; want ErrInvalidConfig", err)
	}
}

func TestStore_Persists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("kept", boardSnapshot(chess.StartingPosition())); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close()
	if _, _, err := reopened.Get("kept"); err != nil {
		t.Errorf("Get after reopen error: %v", err)
	}
}

func TestDatabaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	got, err := DatabaseDir(dir)
	if err != nil || got != dir {
		t.Errorf("DatabaseDir(%q) = %q, %v", dir, got, err)
	}

	t.Setenv("XDG_DATA_HOME", t.TempDir())
	if _, err := DataDir(); err != nil {
		t.Errorf("DataDir() error: %v", err)
	}
}
