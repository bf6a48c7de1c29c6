package repository

import (
	"context"

	"strategy-backtest/internal/engine"
	"strategy-backtest/internal/model"
	"strategy-backtest/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PriceDataRepository interface {
	GetSeries(ctx context.Context, param model.GetPriceSeriesParam) ([]engine.PriceBar, error)
	UpsertBulk(ctx context.Context, rows []model.PriceData, opts ...utils.DBOption) error
}

type priceDataRepository struct {
	db *gorm.DB
}

func NewPriceDataRepository(db *gorm.DB) PriceDataRepository {
	return &priceDataRepository{db: db}
}

// GetSeries loads the asset's bars ascending by date, the ordering the
// backtest engine assumes.
func (r *priceDataRepository) GetSeries(ctx context.Context, param model.GetPriceSeriesParam) ([]engine.PriceBar, error) {
	query := r.db.WithContext(ctx).Where("asset_id = ?", param.AssetID)
	if !param.StartDate.IsZero() {
		query = query.Where("date >= ?", param.StartDate)
	}
	if !param.EndDate.IsZero() {
		query = query.Where("date <= ?", param.EndDate)
	}

	var rows []model.PriceData
	if err := query.Order("date asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	bars := make([]engine.PriceBar, len(rows))
	for i, row := range rows {
		bars[i] = engine.PriceBar{
			Date:   row.Date,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		}
	}
	return bars, nil
}

func (r *priceDataRepository) UpsertBulk(ctx context.Context, rows []model.PriceData, opts ...utils.DBOption) error {
	if len(rows) == 0 {
		return nil
	}
	db := utils.ApplyOptions(r.db, opts...)
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
		}).
		CreateInBatches(rows, 500).Error
}
