// Command metrostudio is the CLI surface spec §6.5 describes: a batch
// front-end to the optimizer and branch-topology analyzer, following
// the teacher's cmd/bw/main.go flag-based style (no cobra/urfave-cli
// dependency in the teacher's go.mod, so none is introduced here).
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/metrostudio/core/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "optimize":
		return runOptimize(args[1:])
	case "analyze-line":
		return runAnalyzeLine(args[1:])
	case "analyze-all":
		return runAnalyzeAll(args[1:])
	case "-h", "--help", "help":
		printUsage(os.Stdout)
		return 0
	case "--version", "version":
		fmt.Printf("metrostudio %s\n", version.Version)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "metrostudio: unknown command %q\n", args[0])
		printUsage(os.Stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  metrostudio optimize <project.json> [--config key=value ...] [--watch] [--log-level LEVEL] > result.json
  metrostudio analyze-line <project.json> <lineId> [--watch] [--log-level LEVEL] > topology.xml
  metrostudio analyze-all <project.json> [--log-level LEVEL] > topology.xml

Exit codes: 0 success, 1 validation error, 2 unrecoverable internal error.
`)
}

// exitCodeForError classifies a failed OptimizeResponse/AnalyzeResponse
// error string per spec §6.5's exit-code contract. The optimizer and
// analyzer report failures as plain strings (see
// internal/optimizer.OptimizeResponse.Error), so the classification
// here is a prefix check against model.ErrorKind's String() spelling
// (internal_invariant_failure: ...) rather than a typed error — the
// CLI is the one place spec §7's error taxonomy needs to become an
// exit code, everywhere else it stays a value the caller branches on.
func exitCodeForError(msg string) int {
	if strings.HasPrefix(msg, "internal_invariant_failure") {
		return 2
	}
	return 1
}

// isTerminal is a best-effort check for whether f is an interactive
// terminal, used to skip the progress spinner when output is piped or
// redirected (spec §6.5 pipes result.json/topology.xml to stdout, and a
// spinner's carriage-return animation has no business in that stream).
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
