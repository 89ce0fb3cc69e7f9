package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumipallolabs/foldersize/internal/core"
	"github.com/lumipallolabs/foldersize/internal/model"
)

func fixture(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	for name, size := range map[string]int{"big": 5000, "small": 3000} {
		dir := filepath.Join(tmp, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "f.bin"), make([]byte, size), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return tmp
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New("test").Command()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandJSON(t *testing.T) {
	root := fixture(t)

	out, err := execute(t, "-o", "json", root)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	var report jsonReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(report.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(report.Entries))
	}
	if report.Entries[0].Size != 5000 || report.Entries[1].Size != 3000 {
		t.Errorf("unexpected sizes: %+v", report.Entries)
	}
	if report.TotalBytes != 8000 {
		t.Errorf("expected 8000 total bytes, got %d", report.TotalBytes)
	}
}

func TestCommandList(t *testing.T) {
	root := fixture(t)

	out, err := execute(t, "--no-progress", "-n", "1", root)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(out, "big") {
		t.Errorf("expected largest folder in output:\n%s", out)
	}
	if strings.Contains(out, " small") {
		t.Errorf("expected display limit of 1:\n%s", out)
	}
	if !strings.Contains(out, "2 folders") {
		t.Errorf("expected summary line:\n%s", out)
	}
}

func TestCommandInvalidRoot(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, core.ErrInvalidRoot) {
		t.Errorf("expected ErrInvalidRoot, got %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	valid := Options{Top: 10, Workers: 1, MaxDepth: 1, Output: OutputList}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid options, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"bad output", func(o *Options) { o.Output = "xml" }},
		{"zero top", func(o *Options) { o.Top = 0 }},
		{"zero workers", func(o *Options) { o.Workers = 0 }},
		{"zero depth", func(o *Options) { o.MaxDepth = 0 }},
		{"interactive json", func(o *Options) { o.Interactive = true; o.Output = OutputJSON }},
	}
	for _, tt := range tests {
		o := valid
		tt.mutate(&o)
		if err := o.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestPrintJSONEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(model.ScanResult{Root: "/tmp"}, &buf); err != nil {
		t.Fatalf("PrintJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"entries": []`) {
		t.Errorf("expected empty entries array, got %s", buf.String())
	}
}

func TestPrintListCancelled(t *testing.T) {
	var buf bytes.Buffer
	r := model.ScanResult{
		Root:      "/data",
		Entries:   []model.FolderInfo{{Path: "/data/a", Size: 2048}},
		Skipped:   2,
		Cancelled: true,
	}
	if err := PrintList(r, 10, &buf); err != nil {
		t.Fatalf("PrintList failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"2.0 KiB", "100.0%", "2 folders could not be read", "cancelled"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintListSharesUseWholeResult(t *testing.T) {
	var buf bytes.Buffer
	r := model.ScanResult{
		Root: "/data",
		Entries: []model.FolderInfo{
			{Path: "/data/a", Size: 3000},
			{Path: "/data/b", Size: 1000},
		},
	}
	if err := PrintList(r, 1, &buf); err != nil {
		t.Fatalf("PrintList failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"75.0%", "2 folders, 3.9 KiB"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "100.0%") {
		t.Errorf("expected share against the full total:\n%s", out)
	}
}
