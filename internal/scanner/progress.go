package scanner

import "sync"

// Tracker guards the progress of one scan. Workers update it, any goroutine
// may read it through Snapshot.
type Tracker struct {
	mu       sync.Mutex
	progress Progress
	totalSet bool
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// SetTotal records the number of units. Only the first call has an effect.
func (t *Tracker) SetTotal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.totalSet {
		return
	}
	if n < 0 {
		n = 0
	}
	t.progress.Total = n
	t.totalSet = true
}

// MarkStarted records that a unit of work is about to begin.
// Completed counts dispatched units and stops at Total.
func (t *Tracker) MarkStarted(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.progress.Completed < t.progress.Total {
		t.progress.Completed++
	}
	t.progress.CurrentPath = path
}

// AddCounts implements Reporter
func (t *Tracker) AddCounts(files, bytes, errors int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress.FilesScanned += files
	t.progress.BytesFound += bytes
	t.progress.Errors += errors
}

// Snapshot returns a copy of the current progress
func (t *Tracker) Snapshot() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// Ensure Tracker implements Reporter
var _ Reporter = (*Tracker)(nil)
