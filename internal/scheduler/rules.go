package scheduler

import (
	"fmt"
	"time"
)

// Rule decides when a job is next due.
type Rule interface {
	// Next returns the first due time strictly after t.
	Next(t time.Time) time.Time
	String() string
}

// Every triggers at a fixed period.
type Every struct {
	Interval time.Duration
}

func (r Every) Next(t time.Time) time.Time {
	return t.Add(r.Interval)
}

func (r Every) String() string {
	return fmt.Sprintf("every %s", r.Interval)
}

// DailyAt triggers once a day at a local time of day.
type DailyAt struct {
	At TimeOfDay
}

func (r DailyAt) Next(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), r.At.Hour, r.At.Minute, 0, 0, t.Location())
	if !next.After(t) {
		// Tomorrow at the same wall-clock time, across DST changes too.
		next = time.Date(t.Year(), t.Month(), t.Day()+1, r.At.Hour, r.At.Minute, 0, 0, t.Location())
	}
	return next
}

func (r DailyAt) String() string {
	return "daily at " + r.At.String()
}

// Daily triggers once a day with no fixed time of day: 24 hours after the
// previous run, or after registration.
type Daily struct{}

func (Daily) Next(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

func (Daily) String() string {
	return "daily"
}
