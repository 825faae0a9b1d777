package restrictions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Scheduler runs reconciliations on a cron schedule. A tick that fires while the
// previous run is still going is skipped.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	service  *Service
	logger   *zap.Logger
	timeout  time.Duration
}

// NewScheduler parses a standard 5-field cron expression (minute hour day-of-month month
// day-of-week). A zero timeout lets runs go on until they finish.
func NewScheduler(service *Service, expr string, timeout time.Duration, logger *zap.Logger) (*Scheduler, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty schedule")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}

	adapter := cronLogger{l: logger.Sugar()}
	s := &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		schedule: sched,
		service:  service,
		logger:   logger,
		timeout:  timeout,
	}
	s.cron.Schedule(sched, cron.FuncJob(s.Tick))
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	next := s.schedule.Next(time.Now())
	s.logger.Info("Reconciliation scheduled", zap.Time("next", next), zap.Duration("in", time.Until(next).Round(time.Minute)))
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once a running job finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Tick runs one scheduled reconciliation.
func (s *Scheduler) Tick() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report, err := s.service.RunReconciliation(ctx, RunOptions{})
	switch {
	case errors.Is(err, ErrRunInProgress):
		s.logger.Warn("Scheduled reconciliation skipped, another run is in progress")
	case err != nil:
		s.logger.Error("Scheduled reconciliation failed", zap.Error(err))
	default:
		s.logger.Info("Scheduled reconciliation complete",
			zap.String("run_id", report.RunID),
			zap.Int("added", report.Added),
			zap.Int("updated", report.Updated),
			zap.Int("removed", report.Removed),
		)
	}
}
