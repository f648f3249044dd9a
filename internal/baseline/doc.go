// Package baseline provides SQLite-backed storage for contrast scan runs.
//
// A baseline is the set of finding fingerprints recorded by the most recent
// run. Later scans can suppress those fingerprints and report only new
// problems, so a legacy tree can adopt the scanner without fixing everything
// at once.
//
// # Tables
//
//   - runs: one row per recorded scan, ordered by seq (INTEGER, assigned by
//     the store). Wall-clock started_at is informational only.
//   - findings: the findings of each run, keyed by (run_id, fingerprint).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// All reads are ordered deterministically (seq, then fingerprint).
package baseline
