package service

import (
	"strategy-backtest/config"
	"strategy-backtest/internal/repository"
	"strategy-backtest/pkg/cache"
	"strategy-backtest/pkg/logger"
)

type Service struct {
	BacktestService   BacktestService
	AssetService      AssetService
	MarketDataService MarketDataService
	SchedulerService  SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	backtestService := NewBacktestService(cfg, log, repo.AssetRepo, repo.PriceDataRepo, repo.BacktestRunRepo, inmemoryCache)
	assetService := NewAssetService(log, repo.AssetRepo, repo.PriceDataRepo)
	marketDataService := NewMarketDataService(cfg, log, repo.AssetRepo, repo.PriceDataRepo, repo.YahooFinanceRepo, repo.UnitOfWork)
	schedulerService := NewSchedulerService(cfg, log, marketDataService)

	return &Service{
		BacktestService:   backtestService,
		AssetService:      assetService,
		MarketDataService: marketDataService,
		SchedulerService:  schedulerService,
	}
}
