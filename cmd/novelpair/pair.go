package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/abdulachik/novelpair/internal/app"
	"github.com/abdulachik/novelpair/internal/config"
	"github.com/abdulachik/novelpair/internal/export"
	"github.com/abdulachik/novelpair/internal/headline"
	"github.com/abdulachik/novelpair/internal/pairer"
	"github.com/spf13/cobra"
)

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Print the most unrelated headline pairs",
	Long: `Draw random pairs of headlines and print them most distant first.

Headlines come from --csv, otherwise from today's snapshot in DATA_DIR,
otherwise from the archive (headlines fetched within PAIR_WINDOW).`,
	RunE: runPair,
}

var (
	pairCount  int
	pairCSV    string
	pairSeed   uint64
	pairRecord bool
)

func init() {
	pairCmd.Flags().IntVarP(&pairCount, "num", "n", -1, "Number of pairs to draw (default: N_PAIRS)")
	pairCmd.Flags().StringVar(&pairCSV, "csv", "", "Read headlines from this CSV file")
	pairCmd.Flags().Uint64Var(&pairSeed, "seed", 0, "Random seed (default: PAIR_SEED, 0 is unseeded)")
	pairCmd.Flags().BoolVar(&pairRecord, "record", false, "Record the result as a pair run")
	rootCmd.AddCommand(pairCmd)
}

func runPair(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("num") {
		cfg.NPairs = pairCount
	}
	if cmd.Flags().Changed("seed") {
		cfg.PairSeed = pairSeed
	}

	if err := cfg.ValidateForPairing(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	headlines, err := loadPairHeadlines(ctx, a)
	if err != nil {
		return err
	}

	pairs, err := a.Pairer.Pair(ctx, headlines, cfg.NPairs)
	if errors.Is(err, pairer.ErrInsufficientData) {
		fmt.Println("Not enough headlines to pair. Run 'novelpair fetch' first.")
		return err
	}
	if err != nil {
		return fmt.Errorf("pair headlines: %w", err)
	}

	for _, p := range pairs {
		fmt.Println(pairer.Render(p))
	}

	if pairRecord {
		if _, err := app.RecordRun(ctx, a.Store, pairs, len(headlines), cfg.PairSeed); err != nil {
			return err
		}
	}

	return nil
}

// loadPairHeadlines picks the pairing input: explicit CSV, today's snapshot, or the archive.
func loadPairHeadlines(ctx context.Context, a *app.App) ([]headline.Headline, error) {
	if pairCSV != "" {
		headlines, err := export.LoadCSV(pairCSV)
		if err != nil {
			return nil, fmt.Errorf("load headlines: %w", err)
		}
		slog.Debug("loaded headlines from csv", "path", pairCSV, "count", len(headlines))
		return headlines, nil
	}

	daily := export.DailyPath(a.Config.DataDir, time.Now())
	if _, err := os.Stat(daily); err == nil {
		headlines, err := export.LoadCSV(daily)
		if err != nil {
			return nil, fmt.Errorf("load headlines: %w", err)
		}
		slog.Debug("loaded today's snapshot", "path", daily, "count", len(headlines))
		return headlines, nil
	}

	return a.RecentHeadlines(ctx)
}
