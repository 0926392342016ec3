package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abdulachik/novelpair/internal/config"
	"github.com/abdulachik/novelpair/internal/db"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display statistics about archived headlines and recorded pair runs.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	// Ensure migrations are run
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	totalHeadlines, err := store.CountHeadlines(ctx)
	if err != nil {
		return fmt.Errorf("count headlines: %w", err)
	}

	bySource, err := store.CountHeadlinesBySource(ctx)
	if err != nil {
		return fmt.Errorf("count headlines by source: %w", err)
	}

	totalRuns, err := store.CountPairRuns(ctx)
	if err != nil {
		return fmt.Errorf("count pair runs: %w", err)
	}

	latest, err := store.GetLatestPairRun(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("get latest pair run: %w", err)
	}

	// Print stats
	fmt.Println("=== NovelPair Statistics ===")
	fmt.Println()
	fmt.Printf("Database: %s\n", cfg.DatabasePath)
	fmt.Println()
	fmt.Println("Headlines:")
	fmt.Printf("  Total: %d\n", totalHeadlines)

	if len(bySource) > 0 {
		fmt.Println("  By source:")
		for _, row := range bySource {
			fmt.Printf("    %s: %d\n", row.Source, row.Count)
		}
	}
	fmt.Println()

	fmt.Println("Pair runs:")
	fmt.Printf("  Total: %d\n", totalRuns)
	if latest != nil {
		fmt.Printf("  Latest: %s (%d pairs over %d headlines, %s)\n",
			latest.ID, latest.PairCount, latest.HeadlineCount, latest.CreatedAt)
	}
	fmt.Println()

	return nil
}
