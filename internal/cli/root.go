package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/docrecon/internal/baseline"
	"github.com/roach88/docrecon/internal/review"
)

// RootOptions holds global flags and injectable dependencies for all commands.
type RootOptions struct {
	Verbose bool

	// Clock supplies "now" for overdue checks and run timestamps.
	// If nil, defaults to review.SystemClock.
	Clock review.Clock

	// RunIDs overrides the baseline run ID generator (for testing).
	// If nil, the store's UUIDv7 generator is used.
	RunIDs baseline.RunIDGenerator

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats for contrast commands.
var ValidFormats = []string{"text", "json"}

func (o *RootOptions) clock() review.Clock {
	if o.Clock == nil {
		return review.SystemClock{}
	}
	return o.Clock
}

// Logger returns the configured logger, or a discard logger before the
// root command has run.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// configureLogging sends structured logs to w (stderr in practice) so that
// stdout carries only report output. Verbose switches to debug level.
func (o *RootOptions) configureLogging(w io.Writer) {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCommand creates the root command for the docrecon CLI.
// Run without a subcommand it prints the tracker report.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	reportOpts := &ReportOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "docrecon",
		Short: "docrecon - documentation reconciliation reports",
		Long: `docrecon prints read-only reports about a project's documentation.

Run without a subcommand to print the task/documentation reconciliation
report from the tracker file next to the binary (same as "docrecon report").`,
		Args:          checkArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.configureLogging(cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(reportOpts, cmd)
		},
	}

	// Flag parse errors from any subcommand are usage errors
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose (debug) logging on stderr")
	addTrackerFlag(cmd, reportOpts)

	// Add subcommands
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewContrastCommand(opts))

	return cmd
}

// usageError marks a bad invocation as a command error so that exit code 1
// stays reserved for a missing tracker or contrast findings.
func usageError(err error) error {
	if err == nil {
		return nil
	}
	return WrapExitError(ExitCommandError, "", err)
}

// checkArgs wraps a cobra positional-args validator with usageError.
func checkArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(validate(cmd, args))
	}
}

// validateFormat checks a --format value.
func validateFormat(format string) error {
	if !isValidFormat(format) {
		return usageError(fmt.Errorf("invalid format %q: must be one of %v", format, ValidFormats))
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
