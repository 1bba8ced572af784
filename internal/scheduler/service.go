package scheduler

import (
	"context"
	"fmt"

	"github.com/geosight/geosight/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// WatchlistRunner re-audits the configured watchlist
type WatchlistRunner interface {
	RunWatchlist(ctx context.Context) error
}

// Service handles scheduling of watchlist audits
type Service struct {
	config *config.Config
	runner WatchlistRunner
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, runner WatchlistRunner) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		config: cfg,
		runner: runner,
		cron:   cron.New(cron.WithSeconds()),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Expression returns the cron expression of an audit schedule. The second
// result is false when the schedule runs nothing.
func Expression(schedule string) (string, bool, error) {
	switch schedule {
	case "daily":
		// 9 AM UTC
		return "0 0 9 * * *", true, nil
	case "weekly":
		// Monday 9 AM UTC
		return "0 0 9 * * MON", true, nil
	case "", "off":
		return "", false, nil
	default:
		return "", false, fmt.Errorf("unknown audit schedule %q", schedule)
	}
}

// Start registers the watchlist job and starts the cron loop
func (s *Service) Start() error {
	expression, enabled, err := Expression(s.config.AuditSchedule)
	if err != nil {
		return err
	}
	if !enabled {
		logrus.Info("Scheduled audits are off")
		return nil
	}

	if _, err := s.cron.AddFunc(expression, s.runWatchlist); err != nil {
		return fmt.Errorf("failed to schedule watchlist audits: %w", err)
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule for %s", s.config.AuditSchedule, s.config.WatchlistFile)
	return nil
}

func (s *Service) runWatchlist() {
	logrus.Info("Starting scheduled watchlist audit")
	if err := s.runner.RunWatchlist(s.ctx); err != nil {
		logrus.Errorf("Scheduled watchlist audit failed: %v", err)
	}
}

// Entries returns how many jobs are scheduled
func (s *Service) Entries() int {
	return len(s.cron.Entries())
}

// Stop stops the scheduler and cancels a running watchlist audit
func (s *Service) Stop() {
	s.cancel()
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}
