package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/abilitycore/internal/config"
	"github.com/udisondev/abilitycore/internal/logger"
	"github.com/udisondev/abilitycore/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := config.PathFromEnv()
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logCfg := logger.ApplyEnv(cfg.Logging)
	log, closer, err := logger.New(logCfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(log)

	slog.Info("abilitysim starting",
		"config", cfgPath,
		"log_level", logCfg.Level,
		"content", cfg.ContentPath,
		"scenario", cfg.ScenarioPath,
		"tick", cfg.TickInterval)

	sum, err := sim.Run(ctx, cfg)
	if errors.Is(err, context.Canceled) {
		slog.Info("shutting down", "clock", sum.Clock)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("abilitysim stopped",
		"ticks", sum.Ticks,
		"casts", sum.Casts,
		"failed_casts", sum.FailedCasts,
		"alive", sum.Alive)
	return nil
}
