package model

import "time"

// FolderInfo is one immediate child of a scan root and the total byte size of
// its subtree. Values are never modified after they are produced.
type FolderInfo struct {
	Path string `json:"path"`
	Size uint64 `json:"size"`
}

// ScanResult is the terminal snapshot of a scan
type ScanResult struct {
	Root       string        `json:"root"`
	Entries    []FolderInfo  `json:"entries"` // descending by size
	Elapsed    time.Duration `json:"elapsed"`
	MaxResults int           `json:"max_results"` // display hint, never applied to Entries
	Skipped    int           `json:"skipped"`     // children dropped after a read failure
	Cancelled  bool          `json:"cancelled"`
}

// ElapsedSeconds returns the scan duration in seconds
func (r ScanResult) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// TotalSize sums the sizes of all entries
func (r ScanResult) TotalSize() uint64 {
	var total uint64
	for _, e := range r.Entries {
		total += e.Size
	}
	return total
}

// Top returns at most n leading entries. n <= 0 returns every entry.
// The returned slice is a copy.
func (r ScanResult) Top(n int) []FolderInfo {
	if n <= 0 || n > len(r.Entries) {
		n = len(r.Entries)
	}
	out := make([]FolderInfo, n)
	copy(out, r.Entries[:n])
	return out
}

// Share returns the fraction of the result's total taken by size.
// It sums every entry, so callers rendering many rows should use Percent.
func (r ScanResult) Share(size uint64) float64 {
	return Percent(size, r.TotalSize()) / 100
}

// Percent returns size as a percentage of total, or 0 when total is 0
func Percent(size, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(size) / float64(total) * 100
}
