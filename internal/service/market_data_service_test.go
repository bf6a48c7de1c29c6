package service

import (
	"context"
	"testing"
	"time"

	"strategy-backtest/config"
	"strategy-backtest/internal/engine"
	"strategy-backtest/internal/model"
	"strategy-backtest/internal/repository"
	"strategy-backtest/pkg/logger"
	"strategy-backtest/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// txUnitOfWork hands fn a WithTx option carrying a sentinel handle, the way
// the real unit of work routes repository calls onto its transaction.
type txUnitOfWork struct {
	tx *gorm.DB
}

func (u *txUnitOfWork) Run(fn func(opts ...utils.DBOption) error) error {
	return fn(utils.WithTx(u.tx))
}

func onTx(tx *gorm.DB, opts []utils.DBOption) bool {
	return utils.ApplyOptions(nil, opts...) == tx
}

// txAssetRepo mimics read-committed visibility: rows created on the
// transaction handle are invisible to reads that do not carry it.
type txAssetRepo struct {
	tx        *gorm.DB
	committed map[string]*model.Asset
	pending   map[string]*model.Asset
	nextID    uint
}

func newTxAssetRepo(tx *gorm.DB) *txAssetRepo {
	return &txAssetRepo{
		tx:        tx,
		committed: map[string]*model.Asset{},
		pending:   map[string]*model.Asset{},
		nextID:    1,
	}
}

func (f *txAssetRepo) GetBySymbol(_ context.Context, symbol string, opts ...utils.DBOption) (*model.Asset, error) {
	if onTx(f.tx, opts) {
		if asset, ok := f.pending[symbol]; ok {
			return asset, nil
		}
	}
	if asset, ok := f.committed[symbol]; ok {
		return asset, nil
	}
	return nil, repository.ErrAssetNotFound
}

func (f *txAssetRepo) Find(_ context.Context, _ model.GetAssetsParam) ([]model.Asset, error) {
	var out []model.Asset
	for _, a := range f.committed {
		out = append(out, *a)
	}
	return out, nil
}

// CreateBulk mirrors the on-conflict-do-nothing upsert: symbols that already
// exist keep their row and ID.
func (f *txAssetRepo) CreateBulk(_ context.Context, assets []model.Asset, opts ...utils.DBOption) error {
	target := f.committed
	if onTx(f.tx, opts) {
		target = f.pending
	}
	for _, asset := range assets {
		if _, ok := f.committed[asset.Symbol]; ok {
			continue
		}
		if _, ok := target[asset.Symbol]; ok {
			continue
		}
		asset := asset
		asset.ID = f.nextID
		f.nextID++
		target[asset.Symbol] = &asset
	}
	return nil
}

type txPriceRepo struct {
	tx       *gorm.DB
	upserted map[uint][]model.PriceData
}

func (f *txPriceRepo) GetSeries(_ context.Context, _ model.GetPriceSeriesParam) ([]engine.PriceBar, error) {
	return nil, nil
}

func (f *txPriceRepo) UpsertBulk(_ context.Context, rows []model.PriceData, opts ...utils.DBOption) error {
	if !onTx(f.tx, opts) {
		return assert.AnError
	}
	for _, row := range rows {
		f.upserted[row.AssetID] = append(f.upserted[row.AssetID], row)
	}
	return nil
}

func newTestMarketDataService(t *testing.T) (MarketDataService, *txAssetRepo, *txPriceRepo) {
	t.Helper()

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Scheduler.MaxConcurrency = 2
	cfg.MarketData.LookbackDays = 30

	tx := &gorm.DB{}
	assetRepo := newTxAssetRepo(tx)
	priceRepo := &txPriceRepo{tx: tx, upserted: map[uint][]model.PriceData{}}

	svc := NewMarketDataService(cfg, log, assetRepo, priceRepo, nil, &txUnitOfWork{tx: tx})
	return svc, assetRepo, priceRepo
}

func TestSeedDemoData_FreshStore(t *testing.T) {
	svc, assetRepo, priceRepo := newTestMarketDataService(t)

	assets := []model.Asset{
		{Symbol: "DEMO-A", Name: "Demo A", Type: model.AssetTypeStock},
		{Symbol: "DEMO-B", Name: "Demo B", Type: model.AssetTypeCrypto},
	}

	// Nothing committed yet: the create-then-lookup chain must run entirely
	// on the transaction handle or the lookup cannot see the new rows.
	err := svc.SeedDemoData(context.Background(), assets, 40)

	require.NoError(t, err)
	require.Len(t, assetRepo.pending, 2)
	for _, asset := range assetRepo.pending {
		rows := priceRepo.upserted[asset.ID]
		require.Len(t, rows, 40)
		for _, row := range rows {
			wd := row.Date.Weekday()
			assert.NotEqual(t, time.Saturday, wd, "generated bars are weekdays only")
			assert.NotEqual(t, time.Sunday, wd, "generated bars are weekdays only")
		}
	}
}

func TestSeedDemoData_ExistingAssets(t *testing.T) {
	svc, assetRepo, priceRepo := newTestMarketDataService(t)

	// A prior committed run left the asset behind; re-seeding must reuse its
	// row instead of failing or re-creating it.
	assetRepo.committed["DEMO-A"] = &model.Asset{ID: 7, Symbol: "DEMO-A", Name: "Demo A", Type: model.AssetTypeStock}

	err := svc.SeedDemoData(context.Background(),
		[]model.Asset{{Symbol: "DEMO-A", Name: "Demo A", Type: model.AssetTypeStock}}, 10)

	require.NoError(t, err)
	assert.Empty(t, assetRepo.pending)
	assert.Len(t, priceRepo.upserted[7], 10)
}
