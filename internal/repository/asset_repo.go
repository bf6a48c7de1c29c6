package repository

import (
	"context"
	"errors"

	"strategy-backtest/internal/model"
	"strategy-backtest/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAssetNotFound is returned when a symbol has no entry in the catalog.
// Callers must see this instead of an empty price series.
var ErrAssetNotFound = errors.New("asset not found")

type AssetRepository interface {
	GetBySymbol(ctx context.Context, symbol string, opts ...utils.DBOption) (*model.Asset, error)
	Find(ctx context.Context, param model.GetAssetsParam) ([]model.Asset, error)
	CreateBulk(ctx context.Context, assets []model.Asset, opts ...utils.DBOption) error
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

// GetBySymbol looks the symbol up; a WithTx option routes the read through an
// open transaction so rows created in the same unit of work are visible.
func (r *assetRepository) GetBySymbol(ctx context.Context, symbol string, opts ...utils.DBOption) (*model.Asset, error) {
	db := utils.ApplyOptions(r.db, opts...)

	var asset model.Asset
	err := db.WithContext(ctx).Where("symbol = ?", symbol).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) Find(ctx context.Context, param model.GetAssetsParam) ([]model.Asset, error) {
	query := r.db.WithContext(ctx)
	if len(param.Symbols) > 0 {
		query = query.Where("symbol IN ?", param.Symbols)
	}
	if param.Type != "" {
		query = query.Where("type = ?", param.Type)
	}

	var assets []model.Asset
	if err := query.Order("symbol asc").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) CreateBulk(ctx context.Context, assets []model.Asset, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db, opts...)
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "symbol"}}, DoNothing: true}).
		CreateInBatches(assets, 100).Error
}
