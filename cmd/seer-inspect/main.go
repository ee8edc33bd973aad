// seer-inspect decodes the chess state of a snapshot taken from a running seer
// engine and renders it for a human.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ambroisie/seer-inspect/internal/config"
	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
	"github.com/ambroisie/seer-inspect/internal/store"
)

const (
	programName    = "seer-inspect"
	programVersion = "0.1.0"
)

// command is a sub-command of the program.
type command struct {
	summary string
	run     func(a *app, args []string) error
}

var commands = map[string]command{
	"print-board": {"Render ChessBoard values as diagrams", runPrintBoard},
	"print":       {"Pretty-print typed values", runPrint},
	"print-move":  {"Print every field of a Move value", runPrintMove},
	"encode-fen":  {"Write a snapshot holding the board of a FEN string", runEncodeFEN},
	"snapshot":    {"Manage archived snapshots", runSnapshot},
}

// usageError reports a malformed command line.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// flagError marks an error the flag package has already reported.
type flagError struct {
	err error
}

func (e *flagError) Error() string { return e.err.Error() }

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &flagError{err: err}
	}
	return nil
}

// app is the state shared by every command.
type app struct {
	cfg    *config.Config
	stdin  io.Reader
	stderr io.Writer

	// files are written after the command's output has been delivered.
	files []pendingFile
}

type pendingFile struct {
	path string
	data []byte
}

// writeFileLater queues a file for writing once the command has succeeded
// and its output is out.
func (a *app) writeFileLater(path string, data []byte) {
	a.files = append(a.files, pendingFile{path: path, data: data})
}

func (a *app) flagSet(name, synopsis string) *flag.FlagSet {
	return newCommandFlagSet(name, synopsis, a.stderr)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command line and returns the exit status. Output is held
// back until the command succeeds, so a failure never leaves partial output.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var g globalFlags
	fs := newGlobalFlagSet(&g, stderr)
	fs.Usage = func() { usage(fs, stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if g.help {
		usage(fs, stdout)
		return 0
	}
	if g.version {
		fmt.Fprintf(stdout, "%s version %s\n", programName, programVersion)
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage(fs, stderr)
		return 2
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n", rest[0])
		return 2
	}

	var out bytes.Buffer
	cfg, closeLog, err := setupConfig(&g, fs, &out, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	a := &app{cfg: cfg, stdin: stdin, stderr: stderr}
	if err := cmd.run(a, rest[1:]); err != nil {
		return reportError(stderr, err)
	}

	if err := writeOutput(cfg, &out, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := writeFiles(cfg, a.files); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func reportError(stderr io.Writer, err error) int {
	var fe *flagError
	var ue *usageError
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &fe):
		return 2
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// setupConfig layers defaults, the dotenv file, SEER_* variables and the
// global flags, in that order.
func setupConfig(g *globalFlags, fs *flag.FlagSet, out *bytes.Buffer, stderr io.Writer) (*config.Config, func(), error) {
	cfg := config.NewConfig()
	cfg.SetOutput(out)
	cfg.LogFile = stderr

	if err := config.LoadEnv(g.envFile); err != nil {
		return nil, nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, nil, err
	}
	g.applyFlags(cfg, fs)

	closeLog, err := setupLogFile(cfg, g)
	if err != nil {
		return nil, nil, err
	}
	return cfg, closeLog, nil
}

// setupLogFile redirects diagnostics based on command-line flags.
func setupLogFile(cfg *config.Config, g *globalFlags) (func(), error) {
	var file *os.File
	var err error

	switch {
	case g.logFile != "":
		file, err = os.Create(g.logFile)
	case g.appendLog != "":
		file, err = os.OpenFile(g.appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	default:
		return func() {}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "opening log file")
	}
	cfg.LogFile = file
	return func() { file.Close() }, nil
}

// writeOutput delivers the buffered output to -o or stdout.
func writeOutput(cfg *config.Config, out *bytes.Buffer, stdout io.Writer) error {
	if cfg.OutputFilename == "" {
		_, err := out.WriteTo(stdout)
		return err
	}
	if err := os.WriteFile(cfg.OutputFilename, out.Bytes(), 0644); err != nil { //nolint:gosec // G306: output is meant to be readable
		return errors.Wrapf(err, "writing %s", cfg.OutputFilename)
	}
	cfg.Logf(2, "Wrote %d bytes to %s", out.Len(), cfg.OutputFilename)
	return nil
}

func writeFiles(cfg *config.Config, files []pendingFile) error {
	for _, f := range files {
		if err := os.WriteFile(f.path, f.data, 0644); err != nil { //nolint:gosec // G306: output is meant to be readable
			return errors.Wrapf(err, "writing %s", f.path)
		}
		cfg.Logf(1, "Wrote %s", f.path)
	}
	return nil
}

// loadSnapshot reads the snapshot selected by -from-store, -snapshot or
// SEER_SNAPSHOT.
func (a *app) loadSnapshot(src *sourceFlags) (*rawvalue.Snapshot, error) {
	if src.fromStore != "" {
		st, err := store.Open(a.cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		snap, rec, err := st.Get(src.fromStore)
		if err != nil {
			return nil, err
		}
		a.cfg.Logf(2, "Loaded snapshot %s (%s) saved %s", rec.Name, rec.ID, rec.SavedAt.Format("2006-01-02 15:04:05"))
		return snap, nil
	}

	switch path := a.cfg.SnapshotFile; path {
	case "":
		return nil, usagef("no snapshot given: use -snapshot, -from-store or %s", config.EnvSnapshot)
	case "-":
		snap, err := rawvalue.ReadSnapshot(a.stdin)
		if err != nil {
			return nil, errors.Wrap(err, "stdin")
		}
		return snap, nil
	default:
		snap, err := rawvalue.ReadSnapshotFile(path)
		if err != nil {
			return nil, err
		}
		a.cfg.Logf(2, "Loaded %d symbols from %s", len(snap.Values), path)
		return snap, nil
	}
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [options] <command> [command options] [arguments]\n\n", programName)
	fmt.Fprintf(w, "Decodes and renders the chess state captured from a seer engine.\n\n")
	fmt.Fprintf(w, "Commands:\n")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}

	fmt.Fprintf(w, "\nOptions:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nEnvironment (also read from the -env file):\n")
	for _, name := range []string{
		config.EnvSnapshot, config.EnvVerbosity, config.EnvStrict, config.EnvMoveFormat,
		config.EnvOutputFormat, config.EnvStoreDir, config.EnvSquareSize, config.EnvWorkers,
	} {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
