package service

import (
	"context"

	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/model"
	"strategy-backtest/internal/repository"
	"strategy-backtest/pkg/logger"
)

// AssetService exposes the asset catalog and its stored price history.
type AssetService interface {
	List(ctx context.Context, assetType string) ([]dto.AssetResponse, error)
	GetPrices(ctx context.Context, symbol string) ([]dto.PriceBarResponse, error)
}

type assetService struct {
	log           *logger.Logger
	assetRepo     repository.AssetRepository
	priceDataRepo repository.PriceDataRepository
}

func NewAssetService(
	log *logger.Logger,
	assetRepo repository.AssetRepository,
	priceDataRepo repository.PriceDataRepository,
) AssetService {
	return &assetService{
		log:           log,
		assetRepo:     assetRepo,
		priceDataRepo: priceDataRepo,
	}
}

func (s *assetService) List(ctx context.Context, assetType string) ([]dto.AssetResponse, error) {
	assets, err := s.assetRepo.Find(ctx, model.GetAssetsParam{Type: assetType})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list assets", logger.ErrorField(err))
		return nil, err
	}

	resp := make([]dto.AssetResponse, len(assets))
	for i, asset := range assets {
		resp[i] = dto.AssetResponse{
			Symbol: asset.Symbol,
			Name:   asset.Name,
			Type:   asset.Type,
		}
	}
	return resp, nil
}

func (s *assetService) GetPrices(ctx context.Context, symbol string) ([]dto.PriceBarResponse, error) {
	asset, err := s.assetRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	bars, err := s.priceDataRepo.GetSeries(ctx, model.GetPriceSeriesParam{AssetID: asset.ID})
	if err != nil {
		return nil, err
	}

	resp := make([]dto.PriceBarResponse, len(bars))
	for i, bar := range bars {
		resp[i] = dto.PriceBarResponse{
			Date:   bar.Date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		}
	}
	return resp, nil
}
