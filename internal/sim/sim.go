package sim

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/abilitycore/internal/config"
	"github.com/udisondev/abilitycore/internal/content"
	"github.com/udisondev/abilitycore/internal/event"
)

// Run loads content and scenario from cfg and plays the scenario.
// The engine and the event consumer run in one errgroup.
func Run(ctx context.Context, cfg config.Simulation) (Summary, error) {
	pack, err := content.Load(cfg.ContentPath)
	if err != nil {
		return Summary{}, fmt.Errorf("loading content: %w", err)
	}
	scenario, err := LoadScenario(cfg.ScenarioPath)
	if err != nil {
		return Summary{}, fmt.Errorf("loading scenario: %w", err)
	}
	return Play(ctx, cfg, pack, scenario)
}

// Play runs scenario against pack with cfg's engine settings.
func Play(ctx context.Context, cfg config.Simulation, pack *content.Pack, scenario *Scenario) (Summary, error) {
	queue := event.NewQueue(cfg.EventQueueSize)

	engine, err := NewEngine(pack, Options{
		CellSize: cfg.CellSize,
		Seed:     cfg.Seed,
		Sink:     queue,
	})
	if err != nil {
		return Summary{}, err
	}
	runner, err := NewRunner(engine, scenario, cfg.TickInterval, cfg.Duration, cfg.Realtime)
	if err != nil {
		return Summary{}, err
	}

	consumer := NewConsumer(nil)
	var sum Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer queue.Close()
		s, err := runner.Run(gctx)
		sum = s
		if err != nil {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return consumer.Run(gctx, queue.Events())
	})

	err = g.Wait()
	if dropped := queue.Dropped(); dropped > 0 {
		slog.Warn("events dropped", "count", dropped)
	}
	slog.Info("events consumed",
		"damage", consumer.Count(event.TypeDamageDealt),
		"healing", consumer.Count(event.TypeHealingDealt),
		"reactions", consumer.Count(event.TypeElementalReaction),
		"combos", consumer.Count(event.TypeComboCompleted),
		"deaths", consumer.Count(event.TypeEntityDied))
	return sum, err
}
