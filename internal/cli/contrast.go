package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/docrecon/internal/baseline"
	"github.com/roach88/docrecon/internal/contrast"
)

// ContrastOptions holds flags shared by the contrast subcommands.
type ContrastOptions struct {
	*RootOptions
	Format   string
	Database string
}

// ContrastScanOptions holds flags for the contrast scan command.
type ContrastScanOptions struct {
	*ContrastOptions
	Config string
	Record bool
}

// ScanReport is the JSON payload of a contrast scan.
type ScanReport struct {
	Root         string             `json:"root"`
	FilesScanned int                `json:"files_scanned"`
	Findings     []contrast.Finding `json:"findings"`
	Suppressed   int                `json:"suppressed,omitempty"`
	RunID        string             `json:"run_id,omitempty"`
	Recorded     int                `json:"recorded,omitempty"` // findings stored in the new baseline
}

// RunDetail is the JSON payload of contrast history --run.
type RunDetail struct {
	Run      baseline.Run       `json:"run"`
	Findings []contrast.Finding `json:"findings"`
}

// NewContrastCommand creates the contrast command group.
func NewContrastCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContrastOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "contrast",
		Short: "Find dark backgrounds without light text in class names",
		Long: `Find className/class values that combine a dark background utility
(bg-black, bg-gray-900, ...) with no light text utility (text-white,
text-gray-100, ...), a likely accessibility contrast problem.`,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the SQLite baseline database")

	cmd.AddCommand(newContrastScanCommand(opts))
	cmd.AddCommand(newContrastHistoryCommand(opts))

	return cmd
}

func newContrastScanCommand(contrastOpts *ContrastOptions) *cobra.Command {
	opts := &ContrastScanOptions{ContrastOptions: contrastOpts}

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Scan a source tree for contrast issues",
		Long: `Scan a source tree (or a single file) for contrast issues.

With --db, findings recorded in the latest baseline run are suppressed; the
database must already exist. With --record, the current findings are stored
as the new baseline (creating the database if needed) and the command
succeeds.

Exit codes: 0 no issues, 1 issues found, 2 command error.

Example:
  docrecon contrast scan ./src
  docrecon contrast scan ./src --config contrast.yaml --format json
  docrecon contrast scan ./src --db .contrast.db --record`,
		Args:          checkArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.Format); err != nil {
				return err
			}
			if opts.Record && opts.Database == "" {
				return usageError(errors.New("--record requires --db"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContrastScan(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "YAML file overriding the built-in patterns")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "record this run's findings as the new baseline (requires --db)")

	return cmd
}

func runContrastScan(opts *ContrastScanOptions, root string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	logger := opts.Logger()
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg := contrast.DefaultConfig()
	if opts.Config != "" {
		var err error
		if cfg, err = contrast.LoadConfig(opts.Config); err != nil {
			return reportCommandError(formatter, ErrCodeConfig, "invalid contrast config", err)
		}
	}
	scanner, err := contrast.NewScanner(cfg, logger)
	if err != nil {
		return reportCommandError(formatter, ErrCodeConfig, "invalid contrast config", err)
	}

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return reportCommandError(formatter, ErrCodeNotFound, "scan root not found", errors.New(root))
	}

	started := opts.clock().Now()
	logger.Debug("scanning", "root", root)
	result, err := scanner.Scan(ctx, root)
	if err != nil {
		return reportCommandError(formatter, ErrCodeScanError, "scan failed", err)
	}

	rep := ScanReport{
		Root:         root,
		FilesScanned: result.FilesScanned,
		Findings:     result.Findings,
	}

	if opts.Database != "" {
		// Only --record may create the baseline database.
		if _, err := os.Stat(opts.Database); !opts.Record && os.IsNotExist(err) {
			return reportCommandError(formatter, ErrCodeNotFound, "baseline database not found", errors.New(opts.Database))
		}

		st, err := openBaseline(opts.RootOptions, opts.Database)
		if err != nil {
			return reportCommandError(formatter, ErrCodeStore, "failed to open baseline", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing baseline", "error", closeErr)
			}
		}()

		accepted, err := st.Accepted(ctx)
		if err != nil {
			return reportCommandError(formatter, ErrCodeStore, "failed to read baseline", err)
		}
		rep.Findings = contrast.Filter(result.Findings, accepted)
		rep.Suppressed = len(result.Findings) - len(rep.Findings)

		if opts.Record {
			run, err := st.RecordRun(ctx, baseline.Run{Root: root, StartedAt: started}, result.Findings)
			if err != nil {
				return reportCommandError(formatter, ErrCodeStore, "failed to record baseline", err)
			}
			rep.RunID = run.ID
			rep.Recorded = run.Findings
			logger.Debug("baseline recorded", "run", run.ID, "seq", run.Seq, "findings", run.Findings)
		}
	}

	if formatter.IsJSON() {
		if len(rep.Findings) > 0 && !opts.Record {
			if err := formatter.Error(ErrCodeContrast, issueSummary(rep), rep); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "")
		}
		return formatter.Success(rep)
	}

	writeScanText(cmd.OutOrStdout(), rep)
	if len(rep.Findings) > 0 && !opts.Record {
		return NewExitError(ExitFailure, "")
	}
	return nil
}

// writeScanText prints one line per finding and a summary line that agrees
// with the exit status.
func writeScanText(w io.Writer, rep ScanReport) {
	writeFindings(w, rep.Findings)
	switch {
	case rep.RunID != "":
		fmt.Fprintf(w, "Recorded run %s as baseline (findings=%d)\n", rep.RunID, rep.Recorded)
		fmt.Fprintf(w, "OK: baseline recorded %s\n", scanStats(rep))
	case len(rep.Findings) > 0:
		fmt.Fprintf(w, "FAIL: %s %s\n", issueSummary(rep), scanStats(rep))
	default:
		fmt.Fprintf(w, "OK: no contrast issues %s\n", scanStats(rep))
	}
}

func writeFindings(w io.Writer, findings []contrast.Finding) {
	for _, f := range findings {
		fmt.Fprintf(w, "%s:%d:%d: dark background %q without light text in %q\n",
			f.Path, f.Line, f.Column, f.Background, f.ClassName)
	}
}

func issueSummary(rep ScanReport) string {
	return fmt.Sprintf("%d contrast issue(s) in %d file(s)", len(rep.Findings), contrast.FileCount(rep.Findings))
}

func scanStats(rep ScanReport) string {
	parts := []string{fmt.Sprintf("files=%d", rep.FilesScanned)}
	if rep.Suppressed > 0 {
		parts = append(parts, fmt.Sprintf("suppressed=%d", rep.Suppressed))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func newContrastHistoryCommand(opts *ContrastOptions) *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded baseline runs, newest first",
		Long: `List recorded baseline runs, newest first.

With --run, print the findings stored for that run instead.

Example:
  docrecon contrast history --db .contrast.db --limit 5
  docrecon contrast history --db .contrast.db --run <id>`,
		Args:          checkArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.Format); err != nil {
				return err
			}
			if opts.Database == "" {
				return usageError(errors.New("--db is required"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContrastHistory(opts, limit, runID, cmd)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to list (0 = all)")
	cmd.Flags().StringVar(&runID, "run", "", "show the findings stored for this run ID")

	return cmd
}

func runContrastHistory(opts *ContrastOptions, limit int, runID string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return reportCommandError(formatter, ErrCodeNotFound, "baseline database not found", errors.New(opts.Database))
	}

	st, err := openBaseline(opts.RootOptions, opts.Database)
	if err != nil {
		return reportCommandError(formatter, ErrCodeStore, "failed to open baseline", err)
	}
	defer st.Close()

	if runID != "" {
		return showRun(ctx, st, runID, formatter)
	}

	runs, err := st.Runs(ctx, limit)
	if err != nil {
		return reportCommandError(formatter, ErrCodeStore, "failed to list runs", err)
	}

	if formatter.IsJSON() {
		return formatter.Success(runs)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs.")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(out, "%d  %s  %s  findings=%d  root=%s\n",
			run.Seq, run.ID, run.StartedAt.UTC().Format(time.RFC3339), run.Findings, run.Root)
	}
	return nil
}

// showRun prints the findings stored for one baseline run.
func showRun(ctx context.Context, st *baseline.Store, runID string, formatter *OutputFormatter) error {
	run, err := st.Run(ctx, runID)
	if errors.Is(err, baseline.ErrRunNotFound) {
		return reportCommandError(formatter, ErrCodeNotFound, "baseline run not found", errors.New(runID))
	}
	if err != nil {
		return reportCommandError(formatter, ErrCodeStore, "failed to read run", err)
	}
	findings, err := st.Findings(ctx, run.ID)
	if err != nil {
		return reportCommandError(formatter, ErrCodeStore, "failed to read run findings", err)
	}

	if formatter.IsJSON() {
		return formatter.Success(RunDetail{Run: run, Findings: findings})
	}

	writeFindings(formatter.Writer, findings)
	_, err = fmt.Fprintf(formatter.Writer, "Run %s: %d finding(s) in %d file(s) (root=%s, started=%s)\n",
		run.ID, len(findings), contrast.FileCount(findings), run.Root, run.StartedAt.UTC().Format(time.RFC3339))
	return err
}

func openBaseline(opts *RootOptions, path string) (*baseline.Store, error) {
	var storeOpts []baseline.Option
	if opts.RunIDs != nil {
		storeOpts = append(storeOpts, baseline.WithRunIDGenerator(opts.RunIDs))
	}
	return baseline.Open(path, storeOpts...)
}

// reportCommandError prints the error in the configured format and returns
// an already-reported ExitCommandError.
func reportCommandError(f *OutputFormatter, code, message string, err error) error {
	if outErr := f.Error(code, fmt.Sprintf("%s: %v", message, err), nil); outErr != nil {
		return outErr
	}
	return &ExitError{Code: ExitCommandError}
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
