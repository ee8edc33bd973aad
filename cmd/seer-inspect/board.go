package main

import (
	"bytes"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/config"
	"github.com/ambroisie/seer-inspect/internal/decode"
	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/hashing"
	"github.com/ambroisie/seer-inspect/internal/matching"
	"github.com/ambroisie/seer-inspect/internal/output"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
)

// runPrintBoard resolves each expression, decodes it as a ChessBoard and
// renders it. Every board is decoded before anything is written.
func runPrintBoard(a *app, args []string) error {
	fs := a.flagSet("print-board", "[options] <expression>...")
	var src sourceFlags
	src.register(fs)
	jsonOut := fs.Bool("json", false, "Output boards as JSON")
	fenOut := fs.Bool("fen", false, "Output boards as FEN")
	noFEN := fs.Bool("nofen", false, "Leave the FEN field out of JSON output")
	pngFile := fs.String("png", "", "Also render the board to this PNG file")
	squareSize := fs.Int("square", 0, "PNG square size in pixels")
	unique := fs.Bool("unique", false, "Skip boards repeating a position already printed")
	exactPly := fs.Bool("exactply", false, "With -unique, only positions at the same ply count repeat")
	material := fs.String("z", "", "Only boards with at least this material (e.g. 'QR:qrr')")
	materialExact := fs.String("y", "", "Only boards with exactly this material")
	var positions stringList
	fs.Var(&positions, "Tf", "Only boards at this FEN or placement pattern (repeatable)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	src.applyFlags(a.cfg, fs)

	cfg := a.cfg
	switch {
	case *jsonOut && *fenOut:
		return usagef("print-board: -json and -fen are mutually exclusive")
	case *jsonOut:
		cfg.Output.Format = config.JSON
	case *fenOut:
		cfg.Output.Format = config.FEN
	}
	if *noFEN {
		cfg.Output.IncludeFEN = false
	}
	if *pngFile != "" {
		cfg.Output.PNGFile = *pngFile
	}
	if *squareSize != 0 {
		cfg.Image.SquareSize = *squareSize
	}

	exprs := fs.Args()
	if len(exprs) == 0 {
		return usagef("print-board: expected an expression")
	}
	if cfg.Output.PNGFile != "" && len(exprs) != 1 {
		return usagef("print-board: -png renders a single expression, got %d", len(exprs))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	filter, err := setupBoardFilter(*material, *materialExact, positions)
	if err != nil {
		return err
	}

	snap, err := a.loadSnapshot(&src)
	if err != nil {
		return err
	}

	boards := make([]chess.ChessBoard, len(exprs))
	for i, expr := range exprs {
		if boards[i], err = evalBoard(snap, expr, cfg.Decode.BoardOptions()); err != nil {
			return err
		}
		cfg.Logf(2, "Decoded %s", expr)
	}

	var detector *hashing.DuplicateDetector
	if *unique {
		detector = hashing.NewDuplicateDetector(*exactPly)
	}

	w := output.NewBoardWriter(cfg.OutputFile, cfg)
	var printed []chess.ChessBoard
	for i, board := range boards {
		if !filter.Match(board) {
			cfg.Logf(2, "Skipped %s: no match for %s", exprs[i], filter.Name())
			continue
		}
		if detector != nil && detector.CheckAndAdd(board) {
			cfg.Logf(1, "Skipped %s: position already printed", exprs[i])
			continue
		}
		if err := w.WriteBoard(exprs[i], board); err != nil {
			return err
		}
		printed = append(printed, board)
	}
	if err := w.Close(); err != nil {
		return err
	}
	if detector != nil {
		cfg.Logf(1, "%d unique positions, %d duplicates skipped",
			detector.UniqueCount(), detector.DuplicateCount())
	}

	if cfg.Output.PNGFile != "" {
		if len(printed) == 0 {
			cfg.Logf(1, "Not writing %s: the board was filtered out", cfg.Output.PNGFile)
			return nil
		}
		png, err := renderPNG(cfg.Image, printed[0])
		if err != nil {
			return err
		}
		a.writeFileLater(cfg.Output.PNGFile, png)
	}
	return nil
}

// setupBoardFilter combines the board selection flags. With none given, every
// board matches.
func setupBoardFilter(material, materialExact string, positions []string) (*matching.CompositeMatcher, error) {
	filter := matching.NewCompositeMatcher(matching.MatchAll)

	for _, m := range []struct {
		pattern string
		exact   bool
	}{{material, false}, {materialExact, true}} {
		if m.pattern == "" {
			continue
		}
		mm, err := matching.NewMaterialMatcher(m.pattern, m.exact)
		if err != nil {
			return nil, err
		}
		filter.Add(mm)
	}

	if len(positions) > 0 {
		pm := matching.NewPositionMatcher()
		for _, p := range positions {
			if err := pm.Add(p, p); err != nil {
				return nil, err
			}
		}
		filter.Add(pm)
	}
	return filter, nil
}

// evalBoard resolves expr and decodes the value as a ChessBoard.
func evalBoard(snap *rawvalue.Snapshot, expr string, opts decode.BoardOptions) (chess.ChessBoard, error) {
	v, _, err := snap.Eval(expr)
	if err != nil {
		return chess.ChessBoard{}, err
	}
	board, err := decode.ChessBoardWith(v, opts)
	if err != nil {
		return chess.ChessBoard{}, errors.Wrap(err, expr)
	}
	return board, nil
}

func renderPNG(cfg *config.ImageConfig, board chess.ChessBoard) ([]byte, error) {
	img, err := output.NewBoardImage(cfg)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	var buf bytes.Buffer
	if err := img.WritePNG(&buf, board); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
