package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/grocerydash/internal/config"
)

// Reloader rebuilds the inventory snapshot from the source dataset.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler refreshes the snapshot on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	reloader Reloader
	cfg      config.RefreshConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.RefreshConfig, reloader Reloader, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		reloader: reloader,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the refresh job and starts the cron loop. A missing
// schedule disables the scheduler entirely.
func (s *Scheduler) Start() {
	if s.cfg.CronSchedule == "" {
		s.logger.Info("snapshot refresh schedule not set, scheduler disabled")
		return
	}

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.refreshSnapshot); err != nil {
		s.logger.Error("failed to schedule snapshot refresh",
			zap.String("schedule", s.cfg.CronSchedule), zap.Error(err))
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))
	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshSnapshot() {
	s.logger.Info("refreshing snapshot from source")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.reloader.Reload(ctx); err != nil {
		s.logger.Error("scheduled snapshot refresh failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled snapshot refresh completed")
}
