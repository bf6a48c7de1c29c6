package repository

import (
	"context"

	"strategy-backtest/internal/model"

	"gorm.io/gorm"
)

type BacktestRunRepository interface {
	Create(ctx context.Context, run *model.BacktestRun) error
	ListRecent(ctx context.Context, limit int) ([]model.BacktestRun, error)
}

type backtestRunRepository struct {
	db *gorm.DB
}

func NewBacktestRunRepository(db *gorm.DB) BacktestRunRepository {
	return &backtestRunRepository{db: db}
}

func (r *backtestRunRepository) Create(ctx context.Context, run *model.BacktestRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *backtestRunRepository) ListRecent(ctx context.Context, limit int) ([]model.BacktestRun, error) {
	var runs []model.BacktestRun
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
