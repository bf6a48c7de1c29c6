package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"strategy-backtest/internal/repository"
	"strategy-backtest/internal/service"

	"github.com/spf13/cobra"
)

var syncSymbol string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch daily candles and update the price store",
	Run:   Sync,
}

func init() {
	syncCmd.Flags().StringVar(&syncSymbol, "symbol", "", "sync a single symbol instead of the whole catalog")
}

func Sync(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)

	if syncSymbol != "" {
		bars, err := services.MarketDataService.SyncSymbol(ctx, syncSymbol)
		if err != nil {
			log.Fatalf("Failed to sync %s: %v", syncSymbol, err)
		}
		log.Printf("Synced %s: %d bars", syncSymbol, bars)
		return
	}

	if err := services.MarketDataService.SyncAll(ctx); err != nil {
		log.Fatalf("Failed to sync market data: %v", err)
	}
}
