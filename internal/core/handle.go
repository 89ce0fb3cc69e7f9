package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumipallolabs/foldersize/internal/model"
	"github.com/lumipallolabs/foldersize/internal/scanner"
)

// Handle is the caller's view of one scan. Every accessor returns immediately,
// so it can be polled from a redraw loop.
type Handle struct {
	root       string
	maxResults int
	startTime  time.Time
	tracker    *scanner.Tracker
	cancel     context.CancelFunc

	mu     sync.Mutex
	result *model.ScanResult

	done   atomic.Bool
	doneCh chan struct{}
}

func newHandle(root string, maxResults int, cancel context.CancelFunc) *Handle {
	return &Handle{
		root:       root,
		maxResults: maxResults,
		startTime:  time.Now(),
		tracker:    scanner.NewTracker(),
		cancel:     cancel,
		doneCh:     make(chan struct{}),
	}
}

// Root returns the absolute path being scanned
func (h *Handle) Root() string {
	return h.root
}

// MaxResults returns the display limit requested at start
func (h *Handle) MaxResults() int {
	return h.maxResults
}

// Progress returns the latest progress snapshot
func (h *Handle) Progress() scanner.Progress {
	return h.tracker.Snapshot()
}

// IsDone reports whether the result has been published
func (h *Handle) IsDone() bool {
	return h.done.Load()
}

// Done returns a channel that is closed once the result is published
func (h *Handle) Done() <-chan struct{} {
	return h.doneCh
}

// Result returns the published result. ok is false while the scan runs.
func (h *Handle) Result() (model.ScanResult, bool) {
	if !h.done.Load() {
		return model.ScanResult{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	r := *h.result
	r.Entries = append([]model.FolderInfo(nil), h.result.Entries...)
	return r, true
}

// Phase returns the scan phase
func (h *Handle) Phase() ScanPhase {
	r, ok := h.Result()
	switch {
	case !ok:
		return PhaseScanning
	case r.Cancelled:
		return PhaseCancelled
	default:
		return PhaseComplete
	}
}

// Elapsed returns time since the scan started, or the final duration once done
func (h *Handle) Elapsed() time.Duration {
	if r, ok := h.Result(); ok {
		return r.Elapsed
	}
	return time.Since(h.startTime)
}

// Cancel asks the scan to stop early. The handle still receives a result,
// marked cancelled. Has no effect once the scan is done.
func (h *Handle) Cancel() {
	h.cancel()
}

// publish stores the result and then flips done. Only the first call counts.
func (h *Handle) publish(r model.ScanResult) {
	h.mu.Lock()
	if h.result != nil {
		h.mu.Unlock()
		return
	}
	h.result = &r
	h.mu.Unlock()

	h.done.Store(true)
	close(h.doneCh)
}
