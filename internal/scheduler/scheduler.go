package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// JobFunc is the work run on each trigger.
type JobFunc func(ctx context.Context) error

// Job is a registered (rule, job) pair.
type Job struct {
	Name string
	Rule Rule

	// NextRun is the time the job is next due.
	NextRun time.Time

	fn JobFunc
}

// Scheduler runs registered jobs when they are due.
type Scheduler struct {
	jobs   []*Job
	tick   time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTick sets how often due jobs are checked.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) {
		s.tick = d
	}
}

// WithClock sets the clock.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// New creates an empty Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		tick:   time.Second,
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Schedule registers fn under rule. The first run is due at rule.Next(now).
func (s *Scheduler) Schedule(name string, rule Rule, fn JobFunc) *Job {
	j := &Job{
		Name:    name,
		Rule:    rule,
		NextRun: rule.Next(s.now()),
		fn:      fn,
	}
	s.jobs = append(s.jobs, j)
	return j
}

// Every registers fn to run at a fixed period.
func (s *Scheduler) Every(interval time.Duration, name string, fn JobFunc) *Job {
	return s.Schedule(name, Every{Interval: interval}, fn)
}

// DailyAt registers fn to run once a day at a local time of day.
func (s *Scheduler) DailyAt(at TimeOfDay, name string, fn JobFunc) *Job {
	return s.Schedule(name, DailyAt{At: at}, fn)
}

// Daily registers fn to run once a day with no fixed time of day.
func (s *Scheduler) Daily(name string, fn JobFunc) *Job {
	return s.Schedule(name, Daily{}, fn)
}

// ScheduleDaily registers fn at the parsed time of day. An invalid value is
// logged and replaced by a Daily trigger; it never fails.
func ScheduleDaily(s *Scheduler, timeOfDay, name string, fn JobFunc) *Job {
	at, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		s.logger.Warn("invalid daily run time, falling back to once per day without a specific time",
			"job", name,
			"daily_run_time", timeOfDay,
			"err", err,
		)
		return s.Daily(name, fn)
	}
	return s.DailyAt(at, name, fn)
}

// Jobs returns a snapshot of the registered jobs.
func (s *Scheduler) Jobs() []Job {
	out := make([]Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = *j
	}
	return out
}

// RunPending runs every due job once, in registration order. The first job
// error stops the pass and is returned.
func (s *Scheduler) RunPending(ctx context.Context) error {
	for _, j := range s.jobs {
		if ctx.Err() != nil {
			return nil
		}
		if s.now().Before(j.NextRun) {
			continue
		}

		start := s.now()
		s.logger.Info("job started", "job", j.Name, "rule", j.Rule.String(), "due", j.NextRun)

		err := j.fn(ctx)

		finished := s.now()
		j.NextRun = j.Rule.Next(finished)

		if err != nil {
			return fmt.Errorf("job %s: %w", j.Name, err)
		}

		s.logger.Info("job finished",
			"job", j.Name,
			"duration", finished.Sub(start),
			"next_run", j.NextRun,
		)
	}
	return nil
}

// Run checks for due jobs every tick until ctx is done. It returns nil on
// cancellation and the first job error otherwise; nothing is retried.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		if err := s.RunPending(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
