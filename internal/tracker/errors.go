package tracker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned (wrapped with the attempted path) when the tracker
// file does not exist. It is the only loader error callers are expected to
// handle gracefully.
var ErrNotFound = errors.New("tracker file not found")

// MalformedError reports a tracker file that is not valid JSON or YAML.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed tracker %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// SchemaIssue is a single schema violation.
type SchemaIssue struct {
	// Field is the dotted path of the offending field, e.g. "tasks.1.title".
	Field   string
	Message string
}

func (i SchemaIssue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// SchemaError reports a tracker that parsed but is missing required fields
// or carries values of the wrong type.
type SchemaError struct {
	Path   string
	Issues []SchemaIssue
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("invalid tracker %s: %s", e.Path, strings.Join(parts, "; "))
}
