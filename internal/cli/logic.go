package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/lumipallolabs/foldersize/internal/core"
	"github.com/lumipallolabs/foldersize/internal/logging"
	"github.com/lumipallolabs/foldersize/internal/scanner"
	"github.com/lumipallolabs/foldersize/internal/ui"
)

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// Run scans opts.Path and writes the report to stdout. The live progress view
// is drawn on stderr when it is a terminal.
func Run(ctx context.Context, opts Options, stdout, stderr io.Writer) error {
	if opts.Debug {
		logging.Enable(stderr)
	}

	engine := core.NewEngine(
		core.WithWorkers(opts.Workers),
		core.WithScannerOptions(scanner.Options{
			MaxDepth:      opts.MaxDepth,
			OneFileSystem: opts.OneFileSystem,
		}),
	)
	defer engine.Stop()

	handle, err := engine.StartContext(ctx, opts.Path, opts.Top)
	if err != nil {
		return err
	}

	if opts.Interactive {
		app := ui.NewApp(engine, handle, false)
		if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("running interactive view: %w", err)
		}
		handle = app.Handle()
		opts.Top = app.Limit()
	} else if !opts.NoProgress && opts.Output != OutputJSON && !opts.Debug && isTerminal(stderr) {
		app := ui.NewApp(engine, handle, true)
		if _, err := tea.NewProgram(app, tea.WithOutput(stderr), tea.WithContext(ctx)).Run(); err != nil {
			logging.Debug.Printf("progress view: %v", err)
		}
		handle = app.Handle()
	}

	select {
	case <-handle.Done():
	case <-ctx.Done():
		handle.Cancel()
		<-handle.Done()
	}

	result, _ := handle.Result()

	switch opts.Output {
	case OutputJSON:
		return PrintJSON(result, stdout)
	default:
		return PrintList(result, opts.Top, stdout)
	}
}
