package scheduler

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler posts a daily analytics digest. The job runs at 21:00 UTC.
type Scheduler struct {
	cron       *cron.Cron
	digestFunc func() error
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithLocation(time.UTC))}
}

// SetDigestFunction sets the function invoked by the daily job.
func (s *Scheduler) SetDigestFunction(f func() error) {
	s.digestFunc = f
}

func (s *Scheduler) Start() error {
	if s.digestFunc == nil {
		slog.Warn("digest function not set, scheduler will not run")
		return nil
	}

	_, err := s.cron.AddFunc("0 21 * * *", func() {
		slog.Info("running daily digest")
		if err := s.digestFunc(); err != nil {
			slog.Error("daily digest failed", "err", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("scheduler started, daily digest at 21:00 UTC")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	slog.Info("scheduler stopped")
}
