package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/foldersize/internal/logging"
)

// DefaultMaxDepth bounds how far below a unit root the walk descends
const DefaultMaxDepth = 4096

// flushEvery is the number of files between Reporter updates
const flushEvery = 256

// Options configures an Accumulator
type Options struct {
	// Workers is the number of fastwalk goroutines per subtree (0 = fastwalk default)
	Workers int
	// MaxDepth is the deepest directory level descended below the unit root
	MaxDepth int
	// OneFileSystem skips directories on a different device than the unit root
	OneFileSystem bool
	// Reporter receives file, byte and error counts while walking. May be nil.
	Reporter Reporter
}

// Accumulator sums subtree sizes using fastwalk.
//
// Only regular files contribute. Symlinks are never followed and, like other
// non-regular entries, add nothing to the total. Entries that cannot be read
// are skipped and counted as errors.
type Accumulator struct {
	opts Options
}

// NewAccumulator creates an accumulator with the given options
func NewAccumulator(opts Options) *Accumulator {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Workers < 0 {
		opts.Workers = 0
	}
	return &Accumulator{opts: opts}
}

// WithReporter returns a copy of the accumulator that reports to r
func (a *Accumulator) WithReporter(r Reporter) *Accumulator {
	opts := a.opts
	opts.Reporter = r
	return &Accumulator{opts: opts}
}

// walkCounts collects counters from concurrent fastwalk callbacks
type walkCounts struct {
	size     atomic.Uint64
	files    atomic.Int64
	bytes    atomic.Int64
	errors   atomic.Int64
	reporter Reporter
}

func (c *walkCounts) addFile(size int64) {
	c.size.Add(uint64(size))
	c.bytes.Add(size)
	if c.files.Add(1) >= flushEvery {
		c.flush()
	}
}

func (c *walkCounts) addError() {
	c.errors.Add(1)
}

// flush hands pending counters to the reporter and resets them
func (c *walkCounts) flush() {
	if c.reporter == nil {
		return
	}
	files := c.files.Swap(0)
	bytes := c.bytes.Swap(0)
	errs := c.errors.Swap(0)
	if files != 0 || bytes != 0 || errs != 0 {
		c.reporter.AddCounts(files, bytes, errs)
	}
}

// AccumulateSize returns the best-effort size of the subtree at path
func (a *Accumulator) AccumulateSize(ctx context.Context, path string) (uint64, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}

	if err := openDir(absPath); err != nil {
		return 0, err
	}

	rootInfo := getPlatformRootInfo(absPath)
	counts := &walkCounts{reporter: a.opts.Reporter}
	defer counts.flush()

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: a.opts.Workers,
	}

	walkErr := fastwalk.Walk(conf, absPath, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			logging.Scanner.Printf("skip %s: %v", path, err)
			counts.addError()
			return nil
		}

		if path == absPath {
			return nil
		}

		if d.IsDir() {
			if depth(path, absPath) > a.opts.MaxDepth {
				logging.Scanner.Printf("skip %s: deeper than %d levels", path, a.opts.MaxDepth)
				counts.addError()
				return filepath.SkipDir
			}
			if a.opts.OneFileSystem && crossesDevice(path, rootInfo) {
				logging.Scanner.Printf("skip %s: different filesystem", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			counts.addError()
			return nil
		}
		counts.addFile(info.Size())
		return nil
	})
	if walkErr != nil {
		return 0, walkErr
	}

	return counts.size.Load(), nil
}

// openDir fails unless path is a directory that can be opened for reading
func openDir(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// depth returns how many levels path is below root
func depth(path, root string) int {
	rel := strings.TrimPrefix(path, root)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	if rel == "" {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// Ensure Accumulator implements Sizer
var _ Sizer = (*Accumulator)(nil)
