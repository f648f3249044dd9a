// Package review decides whether a tracker's scheduled review is overdue.
//
// A review date is a calendar date (YYYY-MM-DD). It is interpreted as
// midnight in the location of the reference time, and the review only
// becomes overdue once the whole due day has elapsed: a review due today is
// not overdue, one due yesterday is.
//
// Wall-clock access goes through Clock so callers and tests can pin "now".
package review
