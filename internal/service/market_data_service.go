package service

import (
	"context"
	"math/rand"
	"time"

	"strategy-backtest/config"
	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/model"
	"strategy-backtest/internal/repository"
	"strategy-backtest/pkg/logger"
	"strategy-backtest/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// MarketDataService keeps the daily price store up to date from the remote
// chart API and seeds demo data.
type MarketDataService interface {
	SyncAll(ctx context.Context) error
	SyncSymbol(ctx context.Context, symbol string) (int, error)
	SeedDemoData(ctx context.Context, assets []model.Asset, days int) error
}

type marketDataService struct {
	cfg           *config.Config
	log           *logger.Logger
	assetRepo     repository.AssetRepository
	priceDataRepo repository.PriceDataRepository
	yahooRepo     repository.YahooFinanceRepository
	uow           repository.UnitOfWork
}

func NewMarketDataService(
	cfg *config.Config,
	log *logger.Logger,
	assetRepo repository.AssetRepository,
	priceDataRepo repository.PriceDataRepository,
	yahooRepo repository.YahooFinanceRepository,
	uow repository.UnitOfWork,
) MarketDataService {
	return &marketDataService{
		cfg:           cfg,
		log:           log,
		assetRepo:     assetRepo,
		priceDataRepo: priceDataRepo,
		yahooRepo:     yahooRepo,
		uow:           uow,
	}
}

// SyncAll refreshes every asset in the catalog with bounded concurrency.
// A failing symbol is logged and skipped so one delisted ticker cannot stall
// the whole run.
func (s *marketDataService) SyncAll(ctx context.Context) error {
	assets, err := s.assetRepo.Find(ctx, model.GetAssetsParam{})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list assets for sync", logger.ErrorField(err))
		return err
	}

	if len(assets) == 0 {
		s.log.InfoContext(ctx, "No assets to sync")
		return nil
	}

	s.log.InfoContext(ctx, "Starting market data sync",
		logger.IntField("assets", len(assets)),
		logger.IntField("max_concurrency", s.cfg.Scheduler.MaxConcurrency),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Scheduler.MaxConcurrency)

	for _, asset := range assets {
		asset := asset
		g.Go(func() error {
			inserted, err := s.SyncSymbol(gCtx, asset.Symbol)
			if err != nil {
				s.log.WarnContext(gCtx, "Failed to sync symbol, skipping",
					logger.StringField("symbol", asset.Symbol),
					logger.ErrorField(err))
				return nil
			}
			s.log.DebugContext(gCtx, "Synced symbol",
				logger.StringField("symbol", asset.Symbol),
				logger.IntField("bars", inserted))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "Market data sync completed", logger.IntField("assets", len(assets)))
	return nil
}

// SyncSymbol fetches daily candles for one symbol and upserts them in a
// single transaction. Returns the number of bars written.
func (s *marketDataService) SyncSymbol(ctx context.Context, symbol string) (int, error) {
	asset, err := s.assetRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return 0, err
	}

	candles, err := s.yahooRepo.GetDailyCandles(ctx, dto.GetDailyCandlesParam{
		Symbol:       symbol,
		LookbackDays: s.cfg.MarketData.LookbackDays,
	})
	if err != nil {
		return 0, err
	}

	rows := make([]model.PriceData, 0, len(candles))
	for _, candle := range candles {
		rows = append(rows, model.PriceData{
			AssetID: asset.ID,
			Date:    utils.TruncateToDay(time.Unix(candle.Timestamp, 0)),
			Open:    candle.Open,
			High:    candle.High,
			Low:     candle.Low,
			Close:   candle.Close,
			Volume:  candle.Volume,
		})
	}

	err = s.uow.Run(func(opts ...utils.DBOption) error {
		return s.priceDataRepo.UpsertBulk(ctx, rows, opts...)
	})
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

// SeedDemoData inserts the given assets with generated random-walk daily
// series in a single transaction. The post-create lookup carries the
// transaction option: on a fresh database the freshly inserted assets are
// only visible on that handle.
func (s *marketDataService) SeedDemoData(ctx context.Context, assets []model.Asset, days int) error {
	return s.uow.Run(func(opts ...utils.DBOption) error {
		if err := s.assetRepo.CreateBulk(ctx, assets, opts...); err != nil {
			return err
		}

		for _, seed := range assets {
			asset, err := s.assetRepo.GetBySymbol(ctx, seed.Symbol, opts...)
			if err != nil {
				return err
			}
			rows := generateSeries(asset.ID, days)
			if err := s.priceDataRepo.UpsertBulk(ctx, rows, opts...); err != nil {
				return err
			}
		}

		s.log.InfoContext(ctx, "Seeded demo data",
			logger.IntField("assets", len(assets)),
			logger.IntField("days", days))
		return nil
	})
}

// generateSeries builds a random-walk daily series, weekdays only.
func generateSeries(assetID uint, days int) []model.PriceData {
	rng := rand.New(rand.NewSource(int64(assetID)))
	price := 50 + rng.Float64()*150

	rows := make([]model.PriceData, 0, days)
	date := utils.TruncateToDay(time.Now().AddDate(0, 0, -days*7/5))

	for len(rows) < days {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		open := price
		price *= 1 + (rng.Float64()-0.5)*0.06
		high := open
		low := open
		if price > high {
			high = price
		}
		if price < low {
			low = price
		}

		rows = append(rows, model.PriceData{
			AssetID: assetID,
			Date:    date,
			Open:    open,
			High:    high * (1 + rng.Float64()*0.01),
			Low:     low * (1 - rng.Float64()*0.01),
			Close:   price,
			Volume:  int64(1_000_000 + rng.Intn(9_000_000)),
		})
	}
	return rows
}
