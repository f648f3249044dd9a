package review

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted review date format.
const DateLayout = "2006-01-02"

// DateFormatError reports a review date that does not match DateLayout.
type DateFormatError struct {
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid review date %q (want YYYY-MM-DD): %v", e.Value, e.Err)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// ParseDate parses s as midnight of that calendar day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, &DateFormatError{Value: s, Err: err}
	}
	return t, nil
}

// IsOverdue reports whether the review due on the given date has fully
// elapsed at now. An empty due date is never overdue.
func IsOverdue(due string, now time.Time) (bool, error) {
	if due == "" {
		return false, nil
	}
	dueDay, err := ParseDate(due, now.Location())
	if err != nil {
		return false, err
	}
	// Overdue from the first instant of the following day.
	return !now.Before(dueDay.AddDate(0, 0, 1)), nil
}
