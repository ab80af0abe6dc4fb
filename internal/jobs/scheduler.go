package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"

	"crm/internal/logger"
)

// Entry связывает задачу с cron-расписанием
type Entry struct {
	Spec string
	Job  Job
}

// Scheduler запускает задачи по расписанию, пока жив контекст.
type Scheduler struct {
	cron       *cron.Cron
	log        *logger.Logger
	runTimeout time.Duration
	entries    []Entry
}

// NewScheduler validates every spec up front so a bad config fails at startup.
func NewScheduler(log *logger.Logger, runTimeout time.Duration, entries ...Entry) (*Scheduler, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if runTimeout <= 0 {
		runTimeout = time.Minute
	}
	s := &Scheduler{
		cron:       cron.NewWithLocation(time.UTC),
		log:        log.With("component", "Scheduler"),
		runTimeout: runTimeout,
		entries:    entries,
	}
	for _, e := range entries {
		if _, err := cron.Parse(e.Spec); err != nil {
			return nil, fmt.Errorf("job %s: bad schedule %q: %w", e.Job.Name(), e.Spec, err)
		}
	}
	return s, nil
}

// Run blocks until ctx is cancelled. Job failures are logged, never returned.
func (s *Scheduler) Run(ctx context.Context) error {
	for _, e := range s.entries {
		job := e.Job
		if err := s.cron.AddFunc(e.Spec, func() { s.runOnce(ctx, job) }); err != nil {
			return fmt.Errorf("schedule %s: %w", job.Name(), err)
		}
		s.log.Info("job scheduled", "job", job.Name(), "spec", e.Spec)
	}
	s.cron.Start()
	<-ctx.Done()
	s.cron.Stop()
	s.log.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) runOnce(parent context.Context, job Job) {
	if parent.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parent, s.runTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.Warn("job run failed", "job", job.Name(), "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	s.log.Debug("job run finished", "job", job.Name(), "duration_ms", time.Since(start).Milliseconds())
}
