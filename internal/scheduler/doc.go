// Package scheduler runs jobs on wall-clock triggers.
//
// The Scheduler:
//   - Holds an ordered list of (rule, job) pairs owned by the caller
//   - Polls for due jobs once per tick (default 1s)
//   - Runs due jobs synchronously, one at a time, in registration order
//   - Computes the next due time when a run finishes, so a slow run delays
//     the following trigger instead of skipping or overlapping it
package scheduler
