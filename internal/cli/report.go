package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/docrecon/internal/report"
	"github.com/roach88/docrecon/internal/tracker"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	TrackerPath string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the task/documentation reconciliation report",
		Long: `Print the task/documentation reconciliation report.

Loads the tracker (JSON, or YAML by extension), checks whether the next
review is overdue, and prints the project header, task summary, discrepancy
summary and review checklist to stdout.

The tracker is never modified.

Example:
  docrecon report
  docrecon report --tracker docs/task_doc_tracker.json`,
		Args:          checkArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	addTrackerFlag(cmd, opts)

	return cmd
}

func addTrackerFlag(cmd *cobra.Command, opts *ReportOptions) {
	cmd.Flags().StringVar(&opts.TrackerPath, "tracker", "",
		fmt.Sprintf("path to the tracker file (default: %s next to the binary)", tracker.DefaultFileName))
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	logger := opts.Logger()

	path := opts.TrackerPath
	if path == "" {
		var err error
		if path, err = DefaultTrackerPath(); err != nil {
			return WrapExitError(ExitCommandError, "failed to locate tracker", err)
		}
	}

	logger.Debug("loading tracker", "path", path)
	t, err := tracker.Load(path)
	if errors.Is(err, tracker.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: tracker file not found: %s\n", path)
		return NewExitError(ExitFailure, "")
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load tracker", err)
	}
	logger.Debug("tracker loaded",
		"project", t.Project,
		"tasks", len(t.Tasks),
		"pending", len(t.Pending()),
		"discrepancies", len(t.DiscrepancySummary),
	)

	if err := report.Render(cmd.OutOrStdout(), t, opts.clock().Now()); err != nil {
		return WrapExitError(ExitCommandError, "failed to render report", err)
	}
	return nil
}

// DefaultTrackerPath returns tracker.DefaultFileName in the directory of the
// running executable (symlinks resolved).
func DefaultTrackerPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), tracker.DefaultFileName), nil
}
