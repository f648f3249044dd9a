// Package report renders a tracker as a fixed-layout text report.
//
// The layout is stable and every section is always present, even when empty:
//
//	=== Project: <project> ===
//	Last Reviewed: <date or N/A>
//	Next Review Due: <date or N/A>
//	** WARNING: Review is overdue! **   (only when overdue)
//
//	---- Task Summary ----
//	---- Discrepancy Summary ----
//	---- Review Checklist ----
//
// Output depends only on the tracker and the reference time.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/docrecon/internal/review"
	"github.com/roach88/docrecon/internal/tracker"
)

const (
	notAvailable   = "N/A"
	overdueWarning = "** WARNING: Review is overdue! **"
	allComplete    = "All tasks complete!"
	listSeparator  = ", "
)

// Lines renders the report as a sequence of lines without terminators.
//
// Returns an error only when the tracker's next review date is malformed;
// in that case no lines are produced.
func Lines(t *tracker.Tracker, now time.Time) ([]string, error) {
	overdue, err := review.IsOverdue(t.NextReviewDue, now)
	if err != nil {
		return nil, fmt.Errorf("check review date: %w", err)
	}

	var lines []string
	lines = append(lines, header(t, overdue)...)
	lines = append(lines, taskSummary(t.Tasks)...)
	lines = append(lines, discrepancySummary(t.DiscrepancySummary)...)
	lines = append(lines, checklist(t)...)
	return lines, nil
}

// Render writes the report to w in a single write.
// Nothing is written if rendering fails.
func Render(w io.Writer, t *tracker.Tracker, now time.Time) error {
	lines, err := Lines(t, now)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func header(t *tracker.Tracker, overdue bool) []string {
	lines := []string{
		fmt.Sprintf("=== Project: %s ===", t.Project),
		fmt.Sprintf("Last Reviewed: %s", orNA(t.LastReviewed)),
		fmt.Sprintf("Next Review Due: %s", orNA(t.NextReviewDue)),
	}
	if overdue {
		lines = append(lines, overdueWarning)
	}
	return lines
}

func taskSummary(tasks []tracker.Task) []string {
	lines := []string{"", "---- Task Summary ----"}
	for _, task := range tasks {
		lines = append(lines,
			fmt.Sprintf("[%s] %s - %s", upper(task.Status), task.ID, task.Title),
			"    Docs: "+strings.Join(task.DocRefs, listSeparator),
			"    Files: "+joinOrNA(task.ImplementedIn),
		)
		if len(task.Discrepancies) > 0 {
			lines = append(lines, "    !! Discrepancies: "+strings.Join(task.Discrepancies, listSeparator))
		}
		lines = append(lines, "    Notes: "+task.Notes)
	}
	return lines
}

func discrepancySummary(summary []string) []string {
	lines := []string{"", "---- Discrepancy Summary ----"}
	for _, msg := range summary {
		lines = append(lines, " * "+msg)
	}
	return lines
}

func checklist(t *tracker.Tracker) []string {
	lines := []string{"", "---- Review Checklist ----"}
	pending := t.Pending()
	if len(pending) == 0 {
		return append(lines, allComplete)
	}
	lines = append(lines, fmt.Sprintf("Tasks in progress or pending: %d", len(pending)))
	for _, task := range pending {
		lines = append(lines, fmt.Sprintf("- %s: %s (Status: %s)", task.ID, task.Title, task.Status))
	}
	return lines
}

// upper applies full Unicode uppercasing ("straße" -> "STRASSE").
// cases.Caser is stateful, so a fresh one is created per call.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func joinOrNA(items []string) string {
	if len(items) == 0 {
		return notAvailable
	}
	return strings.Join(items, listSeparator)
}
