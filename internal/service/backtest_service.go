package service

import (
	"context"
	"encoding/json"
	"fmt"

	"strategy-backtest/config"
	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/engine"
	"strategy-backtest/internal/model"
	"strategy-backtest/internal/repository"
	"strategy-backtest/pkg/cache"
	"strategy-backtest/pkg/logger"
)

// BacktestService runs the percentage-change strategy engine over stored
// price history.
type BacktestService interface {
	RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error)
	AnalyzeStrategy(ctx context.Context, req dto.BacktestRequest) (*dto.AnalyzeResponse, error)
	History(ctx context.Context) ([]dto.BacktestRunSummary, error)
}

type backtestService struct {
	cfg             *config.Config
	log             *logger.Logger
	assetRepo       repository.AssetRepository
	priceDataRepo   repository.PriceDataRepository
	backtestRunRepo repository.BacktestRunRepository
	seriesCache     cache.Cache
}

func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	assetRepo repository.AssetRepository,
	priceDataRepo repository.PriceDataRepository,
	backtestRunRepo repository.BacktestRunRepository,
	seriesCache cache.Cache,
) BacktestService {
	return &backtestService{
		cfg:             cfg,
		log:             log,
		assetRepo:       assetRepo,
		priceDataRepo:   priceDataRepo,
		backtestRunRepo: backtestRunRepo,
		seriesCache:     seriesCache,
	}
}

func (s *backtestService) RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error) {
	params, err := req.EngineParams()
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	bars, err := s.loadSeries(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}

	result := engine.RunBacktest(bars, params, req.AnalysisHorizon)

	s.persistRun(ctx, req, result)

	s.log.InfoContext(ctx, "Backtest completed",
		logger.StringField("symbol", req.Symbol),
		logger.IntField("bars", len(bars)),
		logger.IntField("total_trades", result.TotalTrades),
		logger.Float64Field("win_rate", result.WinRate),
	)

	return &dto.BacktestResponse{
		Symbol: req.Symbol,
		Bars:   len(bars),
		Result: result,
	}, nil
}

func (s *backtestService) AnalyzeStrategy(ctx context.Context, req dto.BacktestRequest) (*dto.AnalyzeResponse, error) {
	params, err := req.EngineParams()
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	bars, err := s.loadSeries(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}

	analysis := engine.AnalyzeStrategy(bars, params, req.AnalysisHorizon)

	s.log.InfoContext(ctx, "Strategy analysis completed",
		logger.StringField("symbol", req.Symbol),
		logger.IntField("matches", len(analysis.Matches)),
	)

	return &dto.AnalyzeResponse{
		Symbol:   req.Symbol,
		Bars:     len(bars),
		Analysis: analysis,
	}, nil
}

func (s *backtestService) History(ctx context.Context) ([]dto.BacktestRunSummary, error) {
	runs, err := s.backtestRunRepo.ListRecent(ctx, s.cfg.Backtest.HistoryLimit)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list backtest runs", logger.ErrorField(err))
		return nil, err
	}

	summaries := make([]dto.BacktestRunSummary, len(runs))
	for i, run := range runs {
		summaries[i] = dto.BacktestRunSummary{
			ID:          run.ID,
			Symbol:      run.Symbol,
			TotalTrades: run.TotalTrades,
			WinRate:     run.WinRate,
			CreatedAt:   run.CreatedAt,
		}
	}
	return summaries, nil
}

// loadSeries resolves the symbol against the asset catalog and loads its full
// daily series ascending by date, caching the result per symbol.
func (s *backtestService) loadSeries(ctx context.Context, symbol string) ([]engine.PriceBar, error) {
	cacheKey := "series:" + symbol
	if bars, ok := cache.Get[[]engine.PriceBar](s.seriesCache, cacheKey); ok {
		return bars, nil
	}

	asset, err := s.assetRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	bars, err := s.priceDataRepo.GetSeries(ctx, model.GetPriceSeriesParam{AssetID: asset.ID})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load price series",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		return nil, err
	}

	s.seriesCache.Set(cacheKey, bars, s.cfg.Backtest.SeriesCacheExpiration)
	return bars, nil
}

// persistRun records the invocation for the history listing. A failure here
// is logged and swallowed; the caller still gets the result.
func (s *backtestService) persistRun(ctx context.Context, req dto.BacktestRequest, result engine.BacktestResult) {
	paramsJSON, err := json.Marshal(req)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to marshal backtest parameters", logger.ErrorField(err))
		return
	}

	// Persist the summary without the full trade list.
	summary := result
	summary.Trades = nil
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to marshal backtest summary", logger.ErrorField(err))
		return
	}

	run := &model.BacktestRun{
		Symbol:      req.Symbol,
		Parameters:  paramsJSON,
		Summary:     summaryJSON,
		TotalTrades: result.TotalTrades,
		WinRate:     result.WinRate,
	}
	if err := s.backtestRunRepo.Create(ctx, run); err != nil {
		s.log.WarnContext(ctx, "Failed to persist backtest run",
			logger.StringField("symbol", req.Symbol),
			logger.ErrorField(err))
	}
}
