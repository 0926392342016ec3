package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdulachik/novelpair/internal/app"
	"github.com/abdulachik/novelpair/internal/config"
	"github.com/abdulachik/novelpair/internal/scheduler"
	"github.com/abdulachik/novelpair/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fetch daemon and HTTP API",
	Long: `Run the NovelPair daemon: fetch headlines on a schedule, archive them,
and serve pairs over HTTP.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForServe(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	slog.Info("connecting to database", "path", cfg.DatabasePath)
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	slog.Info("starting NovelPair daemon",
		"fetch_interval", cfg.FetchInterval,
		"pair_window", cfg.PairWindow,
		"sources", len(a.Aggregator.Sources()),
	)

	sched := scheduler.New(scheduler.Config{
		Fetcher:  a.Aggregator,
		DB:       a.Store,
		Interval: cfg.FetchInterval,
		DataDir:  cfg.DataDir,
	})

	srv := server.New(server.Config{
		Addr:         cfg.HTTPAddr,
		Store:        a.Store,
		Pairer:       a.Pairer,
		Health:       sched.Health(),
		PairWindow:   cfg.PairWindow,
		MaxHeadlines: cfg.MaxHeadlines,
		DefaultPairs: cfg.NPairs,
	})

	errCh := make(chan error, 2)
	go func() {
		errCh <- sched.Run(ctx)
	}()
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for shutdown signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			runErr = fmt.Errorf("daemon error: %w", err)
		}
	}

	slog.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown failed", "error", err)
	}

	return runErr
}
