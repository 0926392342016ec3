package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdulachik/novelpair/internal/app"
	"github.com/abdulachik/novelpair/internal/config"
	"github.com/abdulachik/novelpair/internal/export"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch headlines from all configured sources",
	Long: `Fetch current headlines from NewsAPI, Hacker News, Reddit and RSS feeds,
archive new ones in the database and write today's CSV snapshot.`,
	RunE: runFetch,
}

var fetchNoCSV bool

func init() {
	fetchCmd.Flags().BoolVar(&fetchNoCSV, "no-csv", false, "Skip writing the daily CSV snapshot")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForFetch(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	result, err := a.Aggregator.FetchAndStore(ctx)
	if err != nil {
		return fmt.Errorf("fetch headlines: %w", err)
	}

	fmt.Printf("Fetched %d headlines (%d kept, %d new)\n",
		result.Fetched, len(result.Headlines), result.Stored)

	if fetchNoCSV {
		return nil
	}

	path, err := export.SaveDaily(cfg.DataDir, time.Now(), result.Headlines)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	slog.Info("saved daily snapshot", "path", path, "headlines", len(result.Headlines))
	fmt.Printf("Saved %s\n", path)
	return nil
}
