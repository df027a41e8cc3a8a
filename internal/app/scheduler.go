package app

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a recurring task. Next returns the first fire time strictly after t.
type Job struct {
	Name string
	Next func(t time.Time) time.Time
	Run  func(ctx context.Context) error
}

// Scheduler fires jobs at wall-clock boundaries in a fixed location.
type Scheduler struct {
	log  *slog.Logger
	loc  *time.Location
	jobs []Job
	now  func() time.Time
}

// NewScheduler builds a scheduler; a nil loc means time.Local.
func NewScheduler(log *slog.Logger, loc *time.Location, jobs ...Job) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{log: log, loc: loc, jobs: jobs, now: time.Now}
}

// Jobs returns the reminder and summary jobs of the app.
func (a *App) Jobs() []Job {
	return []Job{
		{
			Name: "weekly-reminder",
			Next: func(t time.Time) time.Time { return nextWeekday(t, time.Friday, 10) },
			Run:  a.SendWeeklyReminder,
		},
		{
			Name: "monthly-summary",
			Next: func(t time.Time) time.Time { return nextMonthEnd(t, 17) },
			Run:  a.SendMonthlySummary,
		},
	}
}

// Run blocks until ctx is done, running every job on its own loop.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, j := range s.jobs {
		wg.Add(1)
		go func(j Job) {
			defer wg.Done()
			s.loop(ctx, j)
		}(j)
	}
	wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, j Job) {
	log := s.log.With(slog.String("job", j.Name))
	for {
		next := j.Next(s.now().In(s.loc))
		dur := time.Until(next)
		log.Info("sleeping until next run", slog.Time("next", next), slog.Duration("sleep", dur))
		timer := time.NewTimer(dur)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info("scheduler stopped")
			return
		case <-timer.C:
			if err := j.Run(ctx); err != nil {
				log.Error("scheduled job failed", slog.String("error", err.Error()))
			} else {
				log.Info("scheduled job completed")
			}
		}
	}
}

// nextWeekday returns the next occurrence of weekday at hour:00 strictly after t.
func nextWeekday(t time.Time, weekday time.Weekday, hour int) time.Time {
	y, m, d := t.Date()
	candidate := time.Date(y, m, d, hour, 0, 0, 0, t.Location())
	days := (int(weekday) - int(t.Weekday()) + 7) % 7
	candidate = candidate.AddDate(0, 0, days)
	if !candidate.After(t) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

// nextMonthEnd returns the last day of a month at hour:00 strictly after t.
func nextMonthEnd(t time.Time, hour int) time.Time {
	y, m, _ := t.Date()
	// Day 0 of the next month is the last day of this one.
	candidate := time.Date(y, m+1, 0, hour, 0, 0, 0, t.Location())
	if !candidate.After(t) {
		candidate = time.Date(y, m+2, 0, hour, 0, 0, 0, t.Location())
	}
	return candidate
}
