package cmd

import (
	"context"
	"log"

	"strategy-backtest/internal/model"
	"strategy-backtest/internal/repository"
	"strategy-backtest/internal/service"

	"github.com/spf13/cobra"
)

var seedDays int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo assets with generated daily price history",
	Run:   Seed,
}

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", 500, "number of trading days to generate per asset")
}

var demoAssets = []model.Asset{
	{Symbol: "DEMO-TECH", Name: "Demo Technology Corp", Type: model.AssetTypeStock},
	{Symbol: "DEMO-ENERGY", Name: "Demo Energy Inc", Type: model.AssetTypeStock},
	{Symbol: "DEMO-BTC", Name: "Demo Bitcoin", Type: model.AssetTypeCrypto},
}

func Seed(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)

	if err := services.MarketDataService.SeedDemoData(ctx, demoAssets, seedDays); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Printf("Seeded %d demo assets with %d days each", len(demoAssets), seedDays)
}
