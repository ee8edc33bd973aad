// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ambroisie/seer-inspect/internal/config"
)

// globalFlags are accepted before the command name.
type globalFlags struct {
	envFile    string
	logFile    string
	appendLog  string
	outputFile string
	verbosity  int
	quiet      bool
	storeDir   string
	help       bool
	version    bool
}

func newGlobalFlagSet(g *globalFlags, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Environment
	fs.StringVar(&g.envFile, "env", config.DefaultEnvFile, "Dotenv file with SEER_* settings (ignored when missing)")

	// Logging
	fs.StringVar(&g.logFile, "l", "", "Write diagnostics to this file (default: stderr)")
	fs.StringVar(&g.appendLog, "L", "", "Append diagnostics to this file")
	fs.IntVar(&g.verbosity, "verbosity", 1, "Diagnostic level: 0 silent, 1 normal, 2 chatty")
	fs.BoolVar(&g.quiet, "s", false, "Silent mode: no diagnostics")

	// Output
	fs.StringVar(&g.outputFile, "o", "", "Output file (default: stdout)")

	// Snapshot store
	fs.StringVar(&g.storeDir, "store", "", "Snapshot store directory (default: platform data directory)")

	fs.BoolVar(&g.help, "h", false, "Show help")
	fs.BoolVar(&g.version, "version", false, "Show version")
	return fs
}

// applyFlags copies explicitly set global flags onto cfg, so that they take
// precedence over SEER_* variables.
func (g *globalFlags) applyFlags(cfg *config.Config, fs *flag.FlagSet) {
	set := setFlags(fs)
	if set["verbosity"] {
		cfg.Verbosity = g.verbosity
	}
	if set["store"] {
		cfg.Store.Dir = g.storeDir
	}
	if g.outputFile != "" {
		cfg.OutputFilename = g.outputFile
	}
	if g.quiet {
		cfg.Verbosity = 0
	}
}

// sourceFlags select the snapshot a command reads its values from.
type sourceFlags struct {
	snapshot  string
	fromStore string
	strict    bool
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.snapshot, "snapshot", "", "Snapshot document to read (\"-\" for stdin)")
	fs.StringVar(&s.fromStore, "from-store", "", "Read the snapshot archived under this name or id")
	fs.BoolVar(&s.strict, "strict", false, "Reject boards whose piece or color bitboards overlap")
}

func (s *sourceFlags) applyFlags(cfg *config.Config, fs *flag.FlagSet) {
	set := setFlags(fs)
	if set["snapshot"] {
		cfg.SnapshotFile = s.snapshot
	}
	if set["strict"] {
		cfg.Decode.Strict = s.strict
	}
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// newCommandFlagSet creates the flag set of a command, reporting to stderr.
func newCommandFlagSet(name, synopsis string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s %s %s\n\nOptions:\n", programName, name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}
