package optimizer

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/metrostudio/core/internal/applog"
	"github.com/metrostudio/core/internal/model"
)

// Worker runs one background goroutine per submitted request, the spec
// §5 concurrency model: a request is synchronous and atomic from the
// worker's own perspective, but asynchronous from the caller's — the
// caller gets a channel, not a blocking return. Worker holds no shared
// mutable state between requests, mirroring the teacher's
// BackgroundWorker design (pkg/ui/background_worker.go) stripped of its
// file-watch/debounce/recovery machinery, which spec §5 has no
// equivalent of: every request here is independent and runs exactly
// once, there is no persistent "current snapshot" to coalesce against.
type Worker struct {
	log *applog.Logger
	wg  sync.WaitGroup
}

// NewWorker returns a Worker that logs through lg (nil is fine; it
// becomes a silent no-op logger).
func NewWorker(lg *applog.Logger) *Worker {
	return &Worker{log: lg}
}

// Submit starts req on its own goroutine and returns immediately with a
// channel that receives exactly one OptimizeResponse. Dropping the
// returned channel (never reading from it) does not stop the worker: per
// spec §5, a request a caller has lost interest in still runs to
// completion, it is simply discarded once done.
func (w *Worker) Submit(req OptimizeRequest) <-chan OptimizeResponse {
	out := make(chan OptimizeResponse, 1)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		out <- w.safeRun(req)
	}()
	return out
}

// safeRun recovers a panicking pipeline into a KindInternalInvariantFailure-
// shaped response (spec §7): the worker thread survives, the caller just
// sees ok=false with a generic message, never a crash of the enclosing
// process.
func (w *Worker) safeRun(req OptimizeRequest) (resp OptimizeResponse) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("optimize_panic", map[string]any{
				"requestId": req.RequestID,
				"panic":     fmt.Sprintf("%v", r),
				"stack":     string(debug.Stack()),
			})
			resp = OptimizeResponse{
				RequestID: req.RequestID,
				Ok:        false,
				Error:     model.InternalInvariantFailure("optimizer panicked").Error(),
			}
		}
	}()
	w.log.Debug("optimize_start", map[string]any{"requestId": req.RequestID})
	resp = Optimize(req)
	w.log.Info("optimize_done", map[string]any{
		"requestId": req.RequestID,
		"ok":        resp.Ok,
		"elapsedMs": resp.ElapsedMs,
	})
	return resp
}

// Wait blocks until every request ever Submit-ted has finished running,
// regardless of whether its caller ever read the response. Intended for
// CLI entrypoints that need a clean process exit.
func (w *Worker) Wait() {
	w.wg.Wait()
}
