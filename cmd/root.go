package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "strategy-backtest",
	Short: "Backtest percentage-change strategies over daily price history",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(seedCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
