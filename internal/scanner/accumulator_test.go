package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// writeFile creates a file of n bytes, creating parent directories as needed
func writeFile(t *testing.T, path string, n int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, n), 0644); err != nil {
		t.Fatal(err)
	}
}

type countingReporter struct {
	mu                   sync.Mutex
	files, bytes, errors int64
}

func (r *countingReporter) AddCounts(files, bytes, errors int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files += files
	r.bytes += bytes
	r.errors += errors
}

func TestAccumulateSize(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a.bin"), 1000)
	writeFile(t, filepath.Join(tmp, "nested", "b.bin"), 2000)
	writeFile(t, filepath.Join(tmp, "nested", "deeper", "c.bin"), 3)
	if err := os.MkdirAll(filepath.Join(tmp, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	size, err := NewAccumulator(Options{}).AccumulateSize(context.Background(), tmp)
	if err != nil {
		t.Fatalf("AccumulateSize failed: %v", err)
	}
	if size != 3003 {
		t.Errorf("expected 3003 bytes, got %d", size)
	}
}

func TestAccumulateSizeEmptyDir(t *testing.T) {
	size, err := NewAccumulator(Options{}).AccumulateSize(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("AccumulateSize failed: %v", err)
	}
	if size != 0 {
		t.Errorf("expected 0 bytes, got %d", size)
	}
}

func TestAccumulateSizeMissingPath(t *testing.T) {
	_, err := NewAccumulator(Options{}).AccumulateSize(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestAccumulateSizeFilePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, file, 10)

	if _, err := NewAccumulator(Options{}).AccumulateSize(context.Background(), file); err == nil {
		t.Fatal("expected error for a regular file")
	}
}

func TestAccumulateSizeDoesNotFollowSymlinks(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "target")
	unit := filepath.Join(tmp, "unit")
	writeFile(t, filepath.Join(target, "big.bin"), 5000)
	writeFile(t, filepath.Join(unit, "small.bin"), 10)

	if err := os.Symlink(target, filepath.Join(unit, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	// A cycle back to the unit itself must not hang the walk
	if err := os.Symlink(unit, filepath.Join(unit, "loop")); err != nil {
		t.Fatal(err)
	}

	size, err := NewAccumulator(Options{}).AccumulateSize(context.Background(), unit)
	if err != nil {
		t.Fatalf("AccumulateSize failed: %v", err)
	}
	if size != 10 {
		t.Errorf("expected 10 bytes, got %d", size)
	}
}

func TestAccumulateSizeSkipsUnreadableEntries(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "ok", "a.bin"), 100)
	locked := filepath.Join(tmp, "locked")
	writeFile(t, filepath.Join(locked, "hidden.bin"), 900)
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	size, err := NewAccumulator(Options{}).AccumulateSize(context.Background(), tmp)
	if err != nil {
		t.Fatalf("AccumulateSize failed: %v", err)
	}
	if size != 100 {
		t.Errorf("expected 100 bytes, got %d", size)
	}
}

func TestAccumulateSizeMaxDepth(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "top.bin"), 1)
	writeFile(t, filepath.Join(tmp, "l1", "one.bin"), 10)
	writeFile(t, filepath.Join(tmp, "l1", "l2", "two.bin"), 100)

	size, err := NewAccumulator(Options{MaxDepth: 1}).AccumulateSize(context.Background(), tmp)
	if err != nil {
		t.Fatalf("AccumulateSize failed: %v", err)
	}
	if size != 11 {
		t.Errorf("expected 11 bytes, got %d", size)
	}
}

func TestAccumulateSizeReportsCounts(t *testing.T) {
	tmp := t.TempDir()
	for i := 0; i < flushEvery+10; i++ {
		writeFile(t, filepath.Join(tmp, "d", fmt.Sprintf("f%03d", i)), 2)
	}

	r := &countingReporter{}
	size, err := NewAccumulator(Options{}).WithReporter(r).AccumulateSize(context.Background(), tmp)
	if err != nil {
		t.Fatalf("AccumulateSize failed: %v", err)
	}

	want := int64(flushEvery + 10)
	if r.files != want {
		t.Errorf("expected %d files reported, got %d", want, r.files)
	}
	if r.bytes != int64(size) || size != uint64(2*want) {
		t.Errorf("expected %d bytes, reported %d, returned %d", 2*want, r.bytes, size)
	}
}

func TestAccumulateSizeCancelled(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "x", "a.bin"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAccumulator(Options{}).AccumulateSize(ctx, tmp)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDepth(t *testing.T) {
	root := filepath.Join("a", "b")
	tests := []struct {
		path string
		want int
	}{
		{root, 0},
		{filepath.Join(root, "c"), 1},
		{filepath.Join(root, "c", "d", "e"), 3},
	}
	for _, tt := range tests {
		if got := depth(tt.path, root); got != tt.want {
			t.Errorf("depth(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}
