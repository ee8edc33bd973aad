package main

import (
	"fmt"

	"github.com/ambroisie/seer-inspect/internal/decode"
	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/output"
	"github.com/ambroisie/seer-inspect/internal/printers"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
	"github.com/ambroisie/seer-inspect/internal/worker"
)

// applyMoveFormat parses a -format value into cfg when one was given.
func applyMoveFormat(a *app, value string) error {
	if value == "" {
		return nil
	}
	format, err := decode.ParseMoveFormat(value)
	if err != nil {
		return err
	}
	a.cfg.Decode.MoveFormat = format
	return nil
}

// runPrint pretty-prints expressions with the printer registered for their
// declared type. Without expressions, every symbol of the snapshot is printed.
func runPrint(a *app, args []string) error {
	fs := a.flagSet("print", "[options] [expression...]")
	var src sourceFlags
	src.register(fs)
	moveFormat := fs.String("format", "", "Move layout: auto, packed or structured")
	as := fs.String("as", "", "Print every expression with this printer (see -list)")
	list := fs.Bool("list", false, "List the printers and exit")
	workers := fs.Int("workers", 0, "Number of parallel workers (0 = one per CPU)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	src.applyFlags(a.cfg, fs)
	if err := applyMoveFormat(a, *moveFormat); err != nil {
		return err
	}
	if setFlags(fs)["workers"] {
		a.cfg.Workers = *workers
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	coll := printers.Default(printers.Options{
		MoveFormat: a.cfg.Decode.MoveFormat,
		Board:      a.cfg.Decode.BoardOptions(),
	})
	if *list {
		for _, name := range coll.Names() {
			fmt.Fprintln(a.cfg.OutputFile, name)
		}
		return nil
	}

	var forced *printers.Printer
	if *as != "" {
		p, ok := coll.ByName(*as)
		if !ok {
			return fmt.Errorf("%q: %w", *as, errors.ErrNoPrinter)
		}
		forced = &p
	}

	snap, err := a.loadSnapshot(&src)
	if err != nil {
		return err
	}
	exprs := fs.Args()
	if len(exprs) == 0 {
		exprs = snap.Names()
	}

	results := worker.Run(exprs, a.cfg.Workers, func(item worker.WorkItem) worker.ProcessResult {
		text, err := printExpression(snap, coll, forced, item.Expression)
		return worker.ProcessResult{
			Expression: item.Expression,
			Index:      item.Index,
			Text:       text,
			Error:      err,
		}
	})
	if err := worker.FirstError(results); err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(a.cfg.OutputFile, "%s = %s\n", r.Expression, r.Text)
	}
	a.cfg.Logf(2, "Printed %d values", len(results))
	return nil
}

// printExpression resolves expr and renders it. Values reached through a
// field path carry no declared type, so they need a forced printer.
func printExpression(snap *rawvalue.Snapshot, coll *printers.Collection, forced *printers.Printer, expr string) (string, error) {
	v, typeName, err := snap.Eval(expr)
	if err != nil {
		return "", err
	}

	var text string
	switch {
	case forced != nil:
		text, err = forced.Print(v)
	case typeName == "":
		return "", fmt.Errorf("%s: type unknown below the root symbol, choose a printer with -as: %w", expr, errors.ErrNoPrinter)
	default:
		text, err = coll.Print(typeName, v)
	}
	if err != nil {
		return "", errors.Wrap(err, expr)
	}
	return text, nil
}

// runPrintMove prints every field of a Move, in text or JSON.
func runPrintMove(a *app, args []string) error {
	fs := a.flagSet("print-move", "[options] <expression>")
	var src sourceFlags
	src.register(fs)
	moveFormat := fs.String("format", "", "Move layout: auto, packed or structured")
	jsonOut := fs.Bool("json", false, "Output the move as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	src.applyFlags(a.cfg, fs)
	if err := applyMoveFormat(a, *moveFormat); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usagef("print-move: expected one expression, got %d", fs.NArg())
	}
	expr := fs.Arg(0)

	snap, err := a.loadSnapshot(&src)
	if err != nil {
		return err
	}
	v, _, err := snap.Eval(expr)
	if err != nil {
		return err
	}
	m, err := decode.AnyMove(v, a.cfg.Decode.MoveFormat)
	if err != nil {
		return errors.Wrap(err, expr)
	}

	if *jsonOut {
		return output.WriteMoveJSON(a.cfg.OutputFile, m)
	}
	if m.Packed != nil {
		_, err = fmt.Fprintln(a.cfg.OutputFile, output.RenderPackedMove(*m.Packed))
	} else {
		_, err = fmt.Fprintln(a.cfg.OutputFile, output.RenderMove(m.Move))
	}
	return err
}
