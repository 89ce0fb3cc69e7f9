package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/lumipallolabs/foldersize/internal/model"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// jsonReport is the JSON document written by PrintJSON
type jsonReport struct {
	Root           string             `json:"root"`
	Entries        []model.FolderInfo `json:"entries"`
	TotalBytes     uint64             `json:"total_bytes"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
	Skipped        int                `json:"skipped"`
	Cancelled      bool               `json:"cancelled"`
}

// PrintJSON outputs every entry of the result in JSON format.
func PrintJSON(result model.ScanResult, writer io.Writer) error {
	entries := result.Entries
	if entries == nil {
		entries = []model.FolderInfo{}
	}

	data, err := json.MarshalIndent(jsonReport{
		Root:           result.Root,
		Entries:        entries,
		TotalBytes:     result.TotalSize(),
		ElapsedSeconds: result.ElapsedSeconds(),
		Skipped:        result.Skipped,
		Cancelled:      result.Cancelled,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintList outputs the largest folders, one per line, largest first.
//
//nolint:forbidigo // This function prints output to the console.
func PrintList(result model.ScanResult, limit int, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', tabwriter.AlignRight)
	total := result.TotalSize()

	for i, f := range result.Top(limit) {
		rel, err := filepath.Rel(result.Root, f.Path)
		if err != nil {
			rel = f.Path
		}
		fmt.Fprintf(w, "%d.\t%s\t%.1f%%\t %s\n",
			i+1, humanize.IBytes(f.Size), model.Percent(f.Size, total), filepath.ToSlash(rel))
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(writer, "\n%d folders, %s in %s (%.2fs)\n",
		len(result.Entries), humanize.IBytes(total), result.Root, result.ElapsedSeconds())
	if result.Skipped > 0 {
		fmt.Fprintf(writer, "%d folders could not be read\n", result.Skipped)
	}
	if result.Cancelled {
		fmt.Fprintln(writer, "scan cancelled, results are partial")
	}

	return nil
}
