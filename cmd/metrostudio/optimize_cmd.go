package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/metrostudio/core/internal/applog"
	"github.com/metrostudio/core/internal/jsonio"
	"github.com/metrostudio/core/internal/optimizer"
	"github.com/metrostudio/core/internal/progress"
	"github.com/metrostudio/core/internal/watch"
)

// runOptimize implements `metrostudio optimize <project.json> [--config
// key=value...] [--watch] > result.json` (spec §6.5).
func runOptimize(args []string) int {
	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)
	logLevel := fs.String("log-level", "warn", "applog level: none|error|warn|info|debug|trace")
	watchFlag := fs.Bool("watch", false, "re-run whenever the project file changes")
	quiet := fs.Bool("quiet", false, "suppress the progress spinner")
	var configKVs stringList
	fs.Var(&configKVs, "config", "layout config override key=value; may be repeated")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "metrostudio optimize: missing <project.json>")
		return 2
	}
	path := fs.Arg(0)

	lg := applog.New("optimize", applog.ParseLevel(*logLevel))

	run := func() int {
		return optimizeOnce(path, configKVs, *quiet, lg)
	}

	if !*watchFlag {
		return run()
	}
	return watchLoop(path, lg, run)
}

func optimizeOnce(path string, configKVs []string, quiet bool, lg *applog.Logger) int {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "metrostudio optimize: reading %s: %v\n", path, err)
		return 2
	}
	doc, err := jsonio.DecodeBytes(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "metrostudio optimize: %v\n", err)
		return 1
	}

	cfg, err := parseConfigOverrides(configKVs, doc.LayoutConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "metrostudio optimize: %v\n", err)
		return 2
	}

	proj := doc.ToProject()
	req := optimizer.OptimizeRequest{
		Stations:  proj.Stations,
		Edges:     proj.Edges,
		Lines:     proj.Lines,
		Config:    cfg,
		RequestID: uuid.NewString(),
	}

	w := optimizer.NewWorker(lg)
	ch := w.Submit(req)

	var resp optimizer.OptimizeResponse
	wait := func() { resp = <-ch }
	if quiet || !isTerminal(os.Stderr) {
		wait()
	} else if err := progress.Run("optimizing layout", wait); err != nil {
		// The spinner is cosmetic; a terminal rendering failure must not
		// hide a computed result.
		wait()
	}

	if !resp.Ok {
		fmt.Fprintf(os.Stderr, "metrostudio optimize: %s\n", resp.Error)
		return exitCodeForError(resp.Error)
	}

	doc.ApplyLayout(resp.Stations, resp.LayoutMeta)
	out, err := jsonio.EncodeBytes(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "metrostudio optimize: encoding result: %v\n", err)
		return 2
	}
	os.Stdout.Write(out)
	return 0
}

// watchLoop re-runs fn every time path changes, until interrupted. The
// first run happens immediately rather than waiting for a file event.
func watchLoop(path string, lg *applog.Logger, fn func() int) int {
	fn()

	changed := make(chan struct{}, 1)
	w, err := watch.New(path, watch.WithOnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "metrostudio: watch %s: %v\n", path, err)
		return 2
	}
	if err := w.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "metrostudio: watch %s: %v\n", path, err)
		return 2
	}
	defer w.Stop()

	lg.Info("watch_started", map[string]any{"path": path})
	for range changed {
		fn()
	}
	return 0
}

// stringList implements flag.Value for repeated --config flags.
type stringList []string

func (l *stringList) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprint([]string(*l))
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}
