package service

import (
	"context"
	"testing"
	"time"

	"strategy-backtest/config"
	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/engine"
	"strategy-backtest/internal/model"
	"strategy-backtest/internal/repository"
	"strategy-backtest/pkg/logger"
	"strategy-backtest/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssetRepo struct {
	assets map[string]*model.Asset
}

func (f *fakeAssetRepo) GetBySymbol(_ context.Context, symbol string, _ ...utils.DBOption) (*model.Asset, error) {
	asset, ok := f.assets[symbol]
	if !ok {
		return nil, repository.ErrAssetNotFound
	}
	return asset, nil
}

func (f *fakeAssetRepo) Find(_ context.Context, _ model.GetAssetsParam) ([]model.Asset, error) {
	var out []model.Asset
	for _, a := range f.assets {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssetRepo) CreateBulk(_ context.Context, _ []model.Asset, _ ...utils.DBOption) error {
	return nil
}

type fakePriceDataRepo struct {
	series map[uint][]engine.PriceBar
}

func (f *fakePriceDataRepo) GetSeries(_ context.Context, param model.GetPriceSeriesParam) ([]engine.PriceBar, error) {
	return f.series[param.AssetID], nil
}

func (f *fakePriceDataRepo) UpsertBulk(_ context.Context, _ []model.PriceData, _ ...utils.DBOption) error {
	return nil
}

type fakeRunRepo struct {
	created []*model.BacktestRun
}

func (f *fakeRunRepo) Create(_ context.Context, run *model.BacktestRun) error {
	f.created = append(f.created, run)
	return nil
}

func (f *fakeRunRepo) ListRecent(_ context.Context, limit int) ([]model.BacktestRun, error) {
	runs := make([]model.BacktestRun, 0, len(f.created))
	for _, run := range f.created {
		runs = append(runs, *run)
	}
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

type fakeCache struct {
	values map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]interface{}{}}
}

func (f *fakeCache) Set(key string, value interface{}, _ time.Duration) { f.values[key] = value }
func (f *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := f.values[key]
	return v, ok
}
func (f *fakeCache) Delete(key string) { delete(f.values, key) }
func (f *fakeCache) Flush()            { f.values = map[string]interface{}{} }

func testSeries() []engine.PriceBar {
	// Flat at 100, then a -5% drop at index 7 visible over a 7-bar lookback,
	// recovering to 105 afterwards.
	closes := []float64{100, 100, 100, 100, 100, 100, 100, 95, 95, 100, 105, 105, 105}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]engine.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = engine.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

func newTestBacktestService(t *testing.T, runRepo *fakeRunRepo) BacktestService {
	t.Helper()

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Backtest.SeriesCacheExpiration = time.Minute
	cfg.Backtest.HistoryLimit = 10

	assetRepo := &fakeAssetRepo{assets: map[string]*model.Asset{
		"DEMO": {ID: 1, Symbol: "DEMO", Name: "Demo Corp", Type: model.AssetTypeStock},
	}}
	priceRepo := &fakePriceDataRepo{series: map[uint][]engine.PriceBar{1: testSeries()}}

	return NewBacktestService(cfg, log, assetRepo, priceRepo, runRepo, newFakeCache())
}

func validRequest() dto.BacktestRequest {
	return dto.BacktestRequest{
		Symbol:          "DEMO",
		ThresholdMin:    4,
		ThresholdMax:    6,
		LookbackPeriod:  7,
		Direction:       "down",
		AnalysisHorizon: 2,
	}
}

func TestBacktestService_RunBacktest(t *testing.T) {
	runRepo := &fakeRunRepo{}
	svc := newTestBacktestService(t, runRepo)

	resp, err := svc.RunBacktest(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "DEMO", resp.Symbol)
	assert.Equal(t, 13, resp.Bars)
	assert.Greater(t, resp.Result.TotalTrades, 0)

	require.Len(t, runRepo.created, 1)
	assert.Equal(t, "DEMO", runRepo.created[0].Symbol)
	assert.Equal(t, resp.Result.TotalTrades, runRepo.created[0].TotalTrades)
	assert.NotEmpty(t, runRepo.created[0].Parameters)
	assert.NotEmpty(t, runRepo.created[0].Summary)
}

func TestBacktestService_UnknownSymbol(t *testing.T) {
	svc := newTestBacktestService(t, &fakeRunRepo{})

	req := validRequest()
	req.Symbol = "NOPE"

	_, err := svc.RunBacktest(context.Background(), req)
	assert.ErrorIs(t, err, repository.ErrAssetNotFound)

	_, err = svc.AnalyzeStrategy(context.Background(), req)
	assert.ErrorIs(t, err, repository.ErrAssetNotFound)
}

func TestBacktestService_AnalyzeStrategy(t *testing.T) {
	svc := newTestBacktestService(t, &fakeRunRepo{})

	resp, err := svc.AnalyzeStrategy(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotEmpty(t, resp.Analysis.Matches)
	assert.Equal(t, 7, resp.Analysis.Matches[0].Index)
	assert.InDelta(t, -5.0, resp.Analysis.Matches[0].ChangePercentage, 1e-9)
}

func TestBacktestService_History(t *testing.T) {
	runRepo := &fakeRunRepo{}
	svc := newTestBacktestService(t, runRepo)

	_, err := svc.RunBacktest(context.Background(), validRequest())
	require.NoError(t, err)

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "DEMO", history[0].Symbol)
}
