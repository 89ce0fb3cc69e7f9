package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/foldersize/internal/core"
	"github.com/lumipallolabs/foldersize/internal/logging"
	"github.com/lumipallolabs/foldersize/internal/model"
)

// Timing constants
const (
	pollInterval     = 100 * time.Millisecond
	progressBarWidth = 40
	defaultWidth     = 80
)

// pollMsg triggers a read of the scan handle
type pollMsg time.Time

// App polls a scan handle on a fixed tick and renders its progress and,
// once published, the ranked folders.
type App struct {
	engine     *core.Engine
	handle     *core.Handle
	limit      int
	exitOnDone bool
	keys       KeyMap

	spinner  spinner.Model
	progress progress.Model
	width    int
	err      error
}

// NewApp creates the view for a scan that has already been started on engine
func NewApp(engine *core.Engine, handle *core.Handle, exitOnDone bool) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	p := progress.New(progress.WithDefaultGradient())
	p.Width = progressBarWidth

	limit := handle.MaxResults()
	if limit < 1 {
		limit = 1
	}

	return &App{
		engine:     engine,
		handle:     handle,
		limit:      limit,
		exitOnDone: exitOnDone,
		keys:       DefaultKeyMap(),
		spinner:    s,
		progress:   p,
		width:      defaultWidth,
	}
}

// Handle returns the scan currently shown
func (a *App) Handle() *core.Handle {
	return a.handle
}

// Limit returns the current display limit
func (a *App) Limit() int {
	return a.limit
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(poll(), a.spinner.Tick)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case pollMsg:
		if !a.handle.IsDone() {
			return a, poll()
		}
		if a.exitOnDone {
			return a, tea.Quit
		}
		return a, nil

	case spinner.TickMsg:
		if a.handle.IsDone() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.handle.Cancel()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Cancel):
		a.handle.Cancel()
		return a, nil

	case key.Matches(msg, a.keys.More):
		a.limit++
		return a, nil

	case key.Matches(msg, a.keys.Less):
		if a.limit > 1 {
			a.limit--
		}
		return a, nil

	case key.Matches(msg, a.keys.Rescan) && !a.exitOnDone:
		h, err := a.engine.Start(a.handle.Root(), a.limit)
		if err != nil {
			logging.Debug.Printf("[UI] Rescan failed: %v", err)
			a.err = err
			return a, nil
		}
		a.err = nil
		a.handle = h
		return a, tea.Batch(poll(), a.spinner.Tick)
	}

	return a, nil
}

// View implements tea.Model. In exit-on-done mode the final frame is empty so
// the caller can print its own report.
func (a *App) View() string {
	if a.exitOnDone && a.handle.IsDone() {
		return ""
	}

	var b strings.Builder

	b.WriteString(a.headerView())
	b.WriteString("\n\n")

	if r, ok := a.handle.Result(); ok {
		b.WriteString(a.resultView(r))
	} else {
		b.WriteString(a.scanningView())
	}

	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(a.err.Error()))
		b.WriteString("\n")
	}

	if !a.exitOnDone {
		b.WriteString("\n")
		b.WriteString(a.helpView())
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) headerView() string {
	sep := SeparatorStyle.Render(" │ ")
	line := AppNameStyle.Render("FOLDERSIZE") + sep + StatusStyle.Render(a.handle.Root())
	return HeaderStyle.MaxHeight(1).Render(line)
}

func (a *App) scanningView() string {
	p := a.handle.Progress()

	var b strings.Builder
	b.WriteString(a.spinner.View())
	b.WriteString(" ")
	b.WriteString(StatusStyle.Render(a.handle.Phase().String()))
	b.WriteString("  ")
	b.WriteString(a.progress.ViewAs(p.Fraction()))
	b.WriteString("\n")

	b.WriteString(MutedStyle.Render(fmt.Sprintf("%d/%d folders · %s files · %s · %s",
		p.Completed, p.Total,
		humanize.Comma(p.FilesScanned),
		FormatSize(uint64(max(p.BytesFound, 0))),
		a.handle.Elapsed().Truncate(time.Second))))
	b.WriteString("\n")

	if p.CurrentPath != "" {
		b.WriteString(MutedStyle.Render(truncateLeft(p.CurrentPath, a.width-2)))
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) resultView(r model.ScanResult) string {
	var b strings.Builder

	if len(r.Entries) == 0 {
		b.WriteString(MutedStyle.Render("No subfolders found"))
		b.WriteString("\n")
	}

	total := r.TotalSize()
	pathWidth := a.width - lipgloss.Width(RankStyle.Render("")) - lipgloss.Width(SizeStyle.Render("")) - lipgloss.Width(ShareStyle.Render("")) - 3
	for i, e := range r.Top(a.limit) {
		b.WriteString(RankStyle.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(SizeStyle.Render(FormatSize(e.Size)))
		b.WriteString(" ")
		b.WriteString(ShareStyle.Render(fmt.Sprintf("%.1f%%", model.Percent(e.Size, total))))
		b.WriteString(" ")
		b.WriteString(PathStyle.Render(truncateLeft(relativePath(r.Root, e.Path), pathWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("%d folders · %s total · %.2fs",
		len(r.Entries), FormatSize(total), r.ElapsedSeconds())
	if r.Skipped > 0 {
		summary += fmt.Sprintf(" · %d unreadable", r.Skipped)
	}
	b.WriteString(MutedStyle.Render(summary))
	if r.Cancelled {
		b.WriteString(" ")
		b.WriteString(WarningStyle.Render("(cancelled, partial)"))
	}
	b.WriteString("\n")

	return b.String()
}

func (a *App) helpView() string {
	var parts []string
	for _, binding := range a.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return MutedStyle.Render(strings.Join(parts, " • "))
}

// relativePath returns path relative to root when possible
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// truncateLeft keeps the end of s so that it fits in width cells
func truncateLeft(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[1:]
	}
	return "…" + string(runes)
}

// Ensure App implements tea.Model
var _ tea.Model = (*App)(nil)
