package repository

import (
	"strategy-backtest/config"
	"strategy-backtest/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	AssetRepo        AssetRepository
	PriceDataRepo    PriceDataRepository
	BacktestRunRepo  BacktestRunRepository
	YahooFinanceRepo YahooFinanceRepository
	UnitOfWork       UnitOfWork
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{
		AssetRepo:        NewAssetRepository(db),
		PriceDataRepo:    NewPriceDataRepository(db),
		BacktestRunRepo:  NewBacktestRunRepository(db),
		YahooFinanceRepo: NewYahooFinanceRepository(cfg, log),
		UnitOfWork:       NewUnitOfWork(db),
	}
}
