package scanner

import "context"

// Progress is a consistent copy of a scan's progress counters
type Progress struct {
	Completed   int    // units dispatched so far, never above Total
	Total       int    // immediate subdirectories of the root
	CurrentPath string // most recently started unit

	FilesScanned int64
	BytesFound   int64
	Errors       int64 // entries skipped after a read failure
}

// Fraction returns Completed/Total, or 0 before the total is known
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// Reporter receives batched counters from a running accumulation
type Reporter interface {
	AddCounts(files, bytes, errors int64)
}

// Sizer computes the best-effort byte size of a directory subtree
type Sizer interface {
	// AccumulateSize returns the summed size of every regular file below path.
	// An error means path itself could not be opened or the walk was cancelled.
	AccumulateSize(ctx context.Context, path string) (uint64, error)
}
