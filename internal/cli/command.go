package cli

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/foldersize/internal/scanner"
)

// Output formats
const (
	OutputList = "list"
	OutputJSON = "json"
)

// Options holds the parsed command line
type Options struct {
	// Path is the root whose immediate subdirectories are ranked
	Path string
	// Top is the number of entries to display
	Top int
	// Workers is the number of subdirectories measured concurrently
	Workers int
	// MaxDepth bounds recursion below each subdirectory
	MaxDepth int
	// OneFileSystem skips directories on other filesystems
	OneFileSystem bool
	// Output is list or json
	Output string
	// NoProgress disables the live progress view
	NoProgress bool
	// Interactive keeps the view open after the scan finishes
	Interactive bool
	// Debug sends debug logging to stderr
	Debug bool
}

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Command builds the root command
func (c CLI) Command() *cobra.Command {
	opts := Options{
		Top:      10,
		Workers:  runtime.GOMAXPROCS(0),
		MaxDepth: scanner.DefaultMaxDepth,
		Output:   OutputList,
	}

	cmd := &cobra.Command{
		Use:   "foldersize [path]",
		Short: "Rank the subfolders of a directory by size",
		Long: heredoc.Doc(`
			foldersize measures every immediate subfolder of a directory in parallel
			and lists them from largest to smallest.

			Files directly inside the directory are not counted. Symbolic links are
			never followed. Unreadable entries are skipped, so totals are best effort.
		`),
		Example: heredoc.Doc(`
			foldersize ~/Downloads
			foldersize -n 25 -x /
			foldersize -o json . > sizes.json
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = "."
			if len(args) == 1 {
				opts.Path = args[0]
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return Run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.IntVarP(&opts.Top, "top", "n", opts.Top, "Number of folders to display")
	flags.IntVarP(&opts.Workers, "workers", "w", opts.Workers, "Subfolders measured concurrently")
	flags.IntVar(&opts.MaxDepth, "max-depth", opts.MaxDepth, "Deepest level descended below each subfolder")
	flags.BoolVarP(&opts.OneFileSystem, "one-file-system", "x", false, "Do not cross filesystem boundaries")
	flags.StringVarP(&opts.Output, "output", "o", opts.Output, "Output format: list or json")
	flags.BoolVar(&opts.NoProgress, "no-progress", false, "Disable the live progress view")
	flags.BoolVarP(&opts.Interactive, "interactive", "i", false, "Keep the view open to rescan or change the limit")
	flags.BoolVar(&opts.Debug, "debug", false, "Enable debug output on stderr")

	return cmd
}

// Validate checks option values
func (o Options) Validate() error {
	allowedOutputs := []string{OutputList, OutputJSON}
	if !slices.Contains(allowedOutputs, o.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", o.Output, allowedOutputs)
	}
	if o.Top < 1 {
		return errors.New("top must be at least 1")
	}
	if o.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if o.MaxDepth < 1 {
		return errors.New("max-depth must be at least 1")
	}
	if o.Interactive && o.Output == OutputJSON {
		return errors.New("interactive mode cannot be combined with json output")
	}
	return nil
}

// Execute runs the CLI
func (c CLI) Execute(ctx context.Context) error {
	return c.Command().ExecuteContext(ctx)
}
