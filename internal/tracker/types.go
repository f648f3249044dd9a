package tracker

// StatusComplete is the only status with special meaning.
// Comparison is exact and case-sensitive.
const StatusComplete = "complete"

// Tracker is the root reconciliation record.
// It is read-only once loaded.
type Tracker struct {
	Project            string   `json:"project" yaml:"project"`
	LastReviewed       string   `json:"last_reviewed,omitempty" yaml:"last_reviewed,omitempty"`
	NextReviewDue      string   `json:"next_review_due,omitempty" yaml:"next_review_due,omitempty"`
	Tasks              []Task   `json:"tasks" yaml:"tasks"`
	DiscrepancySummary []string `json:"discrepancy_summary" yaml:"discrepancy_summary"`
}

// Task is one unit of work and its documentation linkage.
type Task struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Status        string   `json:"status" yaml:"status"`
	DocRefs       []string `json:"doc_refs" yaml:"doc_refs"`
	ImplementedIn []string `json:"implemented_in,omitempty" yaml:"implemented_in,omitempty"`
	Discrepancies []string `json:"discrepancies,omitempty" yaml:"discrepancies,omitempty"`
	Notes         string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// IsComplete reports whether the task status is exactly "complete".
func (t Task) IsComplete() bool {
	return t.Status == StatusComplete
}

// Pending returns the tasks that are not complete, in tracker order.
// Returns an empty (non-nil) slice when every task is complete.
func (t *Tracker) Pending() []Task {
	pending := []Task{}
	for _, task := range t.Tasks {
		if !task.IsComplete() {
			pending = append(pending, task)
		}
	}
	return pending
}
