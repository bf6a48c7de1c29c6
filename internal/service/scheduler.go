package service

import (
	"context"

	"strategy-backtest/config"
	"strategy-backtest/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs the daily market data sync on a cron schedule.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg               *config.Config
	log               *logger.Logger
	cron              *cron.Cron
	marketDataService MarketDataService
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	marketDataService MarketDataService,
) SchedulerService {
	return &schedulerService{
		cfg:               cfg,
		log:               log,
		cron:              cron.New(),
		marketDataService: marketDataService,
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if s.cfg.Scheduler.SyncSpec == "" {
		s.log.Info("No sync schedule configured, scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.SyncSpec, func() {
		if err := s.marketDataService.SyncAll(ctx); err != nil {
			s.log.ErrorContext(ctx, "Scheduled market data sync failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Scheduler started", logger.StringField("sync_spec", s.cfg.Scheduler.SyncSpec))
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}
