package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/lumipallolabs/foldersize/internal/logging"
	"github.com/lumipallolabs/foldersize/internal/model"
	"github.com/lumipallolabs/foldersize/internal/scanner"
)

// Option configures an Engine
type Option func(*Engine)

// WithWorkers sets how many immediate subdirectories are measured at once
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithScannerOptions sets the options used for each subtree walk. When
// opts.Workers is 0, each walk gets an equal share of GOMAXPROCS.
func WithScannerOptions(opts scanner.Options) Option {
	return func(e *Engine) {
		e.newSizer = func(r scanner.Reporter, walkers int) scanner.Sizer {
			o := opts
			o.Reporter = r
			if o.Workers == 0 {
				o.Workers = walkers
			}
			return scanner.NewAccumulator(o)
		}
	}
}

// WithSizer replaces the subtree sizer. The sizer does not receive progress counters.
func WithSizer(s scanner.Sizer) Option {
	return func(e *Engine) {
		e.newSizer = func(scanner.Reporter, int) scanner.Sizer { return s }
	}
}

// walkersPerUnit splits GOMAXPROCS between units running at once, at least one each
func walkersPerUnit(units int) int {
	if units < 1 {
		units = 1
	}
	return max(1, runtime.GOMAXPROCS(0)/units)
}

// Engine ranks the immediate subdirectories of a root by size
type Engine struct {
	workers  int
	newSizer func(r scanner.Reporter, walkers int) scanner.Sizer

	mu      sync.Mutex
	current *Handle
}

// NewEngine creates an engine. By default it runs one worker per available CPU.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		workers: runtime.GOMAXPROCS(0),
	}
	WithScannerOptions(scanner.Options{})(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins scanning root in the background. See StartContext.
func (e *Engine) Start(root string, maxResults int) (*Handle, error) {
	return e.StartContext(context.Background(), root, maxResults)
}

// StartContext validates root, then measures its immediate subdirectories in
// the background and returns at once. A bad root is reported synchronously as
// a *RootError and nothing is started. Any scan still running on this engine
// is cancelled. maxResults is kept on the result as a display hint; entries
// are never truncated.
func (e *Engine) StartContext(ctx context.Context, root string, maxResults int) (*Handle, error) {
	absRoot, children, err := listChildren(root)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	h := newHandle(absRoot, maxResults, cancel)
	h.tracker.SetTotal(len(children))

	e.mu.Lock()
	if e.current != nil {
		logging.Debug.Printf("[Engine] Cancelling scan of %s", e.current.root)
		e.current.Cancel()
	}
	e.current = h
	e.mu.Unlock()

	go e.run(ctx, h, children)

	return h, nil
}

// Current returns the most recently started handle, or nil
func (e *Engine) Current() *Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Stop cancels the running scan, if any
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != nil {
		e.current.Cancel()
	}
}

// listChildren validates root and returns the immediate subdirectories in
// directory order. Symlinks to directories are not included.
func listChildren(root string) (string, []string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", nil, &RootError{Path: root, Err: err}
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return "", nil, &RootError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return "", nil, &RootError{Path: root, Err: ErrNotDirectory}
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return "", nil, &RootError{Path: root, Err: err}
	}

	children := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			children = append(children, filepath.Join(absRoot, entry.Name()))
		}
	}
	return absRoot, children, nil
}

// run measures every child on the worker pool and publishes the result
func (e *Engine) run(ctx context.Context, h *Handle, children []string) {
	defer h.cancel()

	logging.Debug.Printf("[Engine] Starting scan of %s (%d folders)", h.root, len(children))

	var (
		mu        sync.Mutex
		sizes     = make(map[int]uint64, len(children))
		skipped   int
		cancelled bool
	)

	workers := e.workers
	if workers > len(children) {
		workers = len(children)
	}
	sizer := e.newSizer(h.tracker, walkersPerUnit(workers))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := children[i]
				h.tracker.MarkStarted(path)

				size, err := sizer.AccumulateSize(ctx, path)
				if err != nil {
					interrupted := ctx.Err() != nil && errors.Is(err, ctx.Err())
					if !interrupted {
						logging.Scanner.Printf("dropping %s: %v", path, err)
					}
					mu.Lock()
					if interrupted {
						cancelled = true
					} else {
						skipped++
					}
					mu.Unlock()
					continue
				}

				mu.Lock()
				sizes[i] = size
				mu.Unlock()
			}
		}()
	}

dispatch:
	for i := range children {
		select {
		case jobs <- i:
		case <-ctx.Done():
			mu.Lock()
			cancelled = true
			mu.Unlock()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	entries := make([]model.FolderInfo, 0, len(sizes))
	for i, path := range children {
		if size, ok := sizes[i]; ok {
			entries = append(entries, model.FolderInfo{Path: path, Size: size})
		}
	}
	model.SortBySize(entries)

	result := model.ScanResult{
		Root:       h.root,
		Entries:    entries,
		Elapsed:    time.Since(h.startTime),
		MaxResults: h.maxResults,
		Skipped:    skipped,
		Cancelled:  cancelled,
	}
	h.publish(result)

	logging.Debug.Printf("[Engine] Scan of %s complete: %d folders in %s", h.root, len(entries), result.Elapsed)
}
