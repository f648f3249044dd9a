// Package tracker loads task/documentation reconciliation trackers.
//
// A tracker is a JSON (or YAML) document describing a project, its review
// dates, an ordered list of tasks with their documentation references and
// implementation locations, and a free-text discrepancy summary.
//
// # Loading
//
// Load checks that the file exists before touching its contents, so a missing
// tracker is reported as ErrNotFound with the attempted path. Everything else
// is fail-fast:
//   - syntax errors surface as *MalformedError
//   - missing required fields surface as *SchemaError
//
// Required fields are enforced by an embedded CUE schema (schema.cue). The
// schema is deliberately open: unknown fields are ignored.
//
// # Ordering
//
// Task and discrepancy order is preserved exactly as written. Nothing in this
// package sorts.
package tracker
