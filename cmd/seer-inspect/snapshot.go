package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ambroisie/seer-inspect/internal/decode"
	"github.com/ambroisie/seer-inspect/internal/fen"
	"github.com/ambroisie/seer-inspect/internal/printers"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
	"github.com/ambroisie/seer-inspect/internal/store"
)

// runEncodeFEN writes a snapshot document holding the board of a FEN string.
// The FEN may be given as one quoted argument or as its six fields.
func runEncodeFEN(a *app, args []string) error {
	fs := a.flagSet("encode-fen", "[options] <fen>")
	name := fs.String("name", "board", "Symbol name of the board")
	merge := fs.String("merge", "", "Add the board to this snapshot document instead of a new one")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usagef("encode-fen: expected a FEN string")
	}

	board, err := fen.Parse(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}

	snap := rawvalue.NewSnapshot()
	if *merge != "" {
		if snap, err = rawvalue.ReadSnapshotFile(*merge); err != nil {
			return err
		}
	}
	snap.Add(*name, printers.ChessBoardType, decode.EncodeBoard(board))
	_, err = snap.WriteTo(a.cfg.OutputFile)
	return err
}

// runSnapshot dispatches the snapshot archive sub-commands.
func runSnapshot(a *app, args []string) error {
	if len(args) == 0 {
		return usagef("snapshot: expected save, list, show or delete")
	}
	switch args[0] {
	case "save":
		return runSnapshotSave(a, args[1:])
	case "list":
		return runSnapshotList(a, args[1:])
	case "show":
		return runSnapshotShow(a, args[1:])
	case "delete":
		return runSnapshotDelete(a, args[1:])
	default:
		return usagef("snapshot: unknown sub-command %q", args[0])
	}
}

func (a *app) openStore() (*store.Store, error) {
	st, err := store.Open(a.cfg.Store.Dir)
	if err != nil {
		return nil, err
	}
	a.cfg.Logf(2, "Opened snapshot store %s", a.cfg.Store.Dir)
	return st, nil
}

func runSnapshotSave(a *app, args []string) error {
	fs := a.flagSet("snapshot save", "[options] <file>")
	name := fs.String("name", "", "Archive name (default: file name without extension)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usagef("snapshot save: expected one snapshot file")
	}
	path := fs.Arg(0)
	if *name == "" {
		*name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var snap *rawvalue.Snapshot
	var err error
	if path == "-" {
		snap, err = rawvalue.ReadSnapshot(a.stdin)
	} else {
		snap, err = rawvalue.ReadSnapshotFile(path)
	}
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.Save(*name, snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.cfg.OutputFile, "Saved %s as %s (%d symbols)\n", rec.Name, rec.ID, len(rec.Symbols))
	return nil
}

func runSnapshotList(a *app, args []string) error {
	fs := a.flagSet("snapshot list", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.List()
	if err != nil {
		return err
	}
	for _, rec := range records {
		fmt.Fprintf(a.cfg.OutputFile, "%-20s %s %s %s\n",
			rec.Name, rec.ID, rec.SavedAt.Format("2006-01-02 15:04:05"), strings.Join(rec.Symbols, ","))
	}
	return nil
}

func runSnapshotShow(a *app, args []string) error {
	fs := a.flagSet("snapshot show", "<name|id>")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usagef("snapshot show: expected a name or id")
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, _, err := st.Get(fs.Arg(0))
	if err != nil {
		return err
	}
	_, err = snap.WriteTo(a.cfg.OutputFile)
	return err
}

func runSnapshotDelete(a *app, args []string) error {
	fs := a.flagSet("snapshot delete", "<name|id>")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usagef("snapshot delete: expected a name or id")
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(fs.Arg(0)); err != nil {
		return err
	}
	a.cfg.Logf(1, "Deleted %s", fs.Arg(0))
	return nil
}
