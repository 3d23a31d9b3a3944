// Package scheduler runs periodic maintenance jobs on a robfig/cron
// scheduler.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"loanlink-backend/internal/logger"
)

// Job is one scheduled unit of work. Errors are logged, never retried early.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func New(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{}),
		cron.SkipIfStillRunning(cronLogger{}),
	))
	return &Scheduler{cron: c, timeout: timeout}
}

// Add registers job under spec ("@every 1m", "*/5 * * * *", ...).
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	return err
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	start := time.Now()
	if err := job(ctx); err != nil {
		logger.Error("scheduler: job failed", "job", name, "error", err)
		return
	}
	logger.Debug("scheduler: job done", "job", name, "took", time.Since(start))
}

func (s *Scheduler) Len() int { return len(s.cron.Entries()) }

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Warn("scheduler: stop timed out")
	}
}

type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...interface{}) {
	logger.Debug("cron: "+msg, kv...)
}

func (cronLogger) Error(err error, msg string, kv ...interface{}) {
	logger.Error("cron: "+msg, append(kv, "error", err)...)
}
