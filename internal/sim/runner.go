package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/abilitycore/internal/model"
)

// Runner plays a scenario against an engine on a fixed step.
type Runner struct {
	engine   *Engine
	scenario *Scenario
	step     time.Duration
	end      float64
	realtime bool

	next int // index of the first pending action
}

// Summary describes a finished run.
type Summary struct {
	Ticks       int64
	Clock       float64
	Casts       int
	FailedCasts int
	Alive       int
}

// NewRunner spawns the scenario's entities into engine. A positive
// duration overrides the scenario's own end time.
func NewRunner(engine *Engine, scenario *Scenario, step, duration time.Duration, realtime bool) (*Runner, error) {
	if step <= 0 {
		return nil, fmt.Errorf("runner: step must be positive, got %v", step)
	}
	for _, def := range scenario.Entities {
		team, err := ParseTeam(def.Team)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", def.ID, err)
		}
		if _, err := engine.Spawn(def.Template, def.ID, team, def.Position.Vec()); err != nil {
			return nil, err
		}
	}

	end := scenario.End()
	if duration > 0 {
		end = duration.Seconds()
	}
	return &Runner{
		engine:   engine,
		scenario: scenario,
		step:     step,
		end:      end,
		realtime: realtime,
	}, nil
}

// Run steps until the end time or ctx is cancelled. Actions due at or
// before the current clock fire before the step that follows them.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var (
		sum  Summary
		tick <-chan time.Time
	)
	if r.realtime {
		ticker := time.NewTicker(r.step)
		defer ticker.Stop()
		tick = ticker.C
	}

	dt := r.step.Seconds()
	slog.Info("simulation started",
		"scenario", r.scenario.Name,
		"entities", len(r.scenario.Entities),
		"actions", len(r.scenario.Actions),
		"step", r.step,
		"end", r.end,
		"realtime", r.realtime)

	for r.engine.Clock() < r.end {
		if tick != nil {
			select {
			case <-ctx.Done():
				return r.finish(sum), ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return r.finish(sum), err
		}

		if err := r.fireDue(&sum); err != nil {
			return r.finish(sum), err
		}
		r.engine.Step(dt)
	}

	// actions scheduled exactly at the end still happen
	if err := r.fireDue(&sum); err != nil {
		return r.finish(sum), err
	}
	return r.finish(sum), nil
}

func (r *Runner) finish(sum Summary) Summary {
	sum.Ticks = r.engine.Ticks()
	sum.Clock = r.engine.Clock()
	sum.Alive = r.engine.Alive()
	slog.Info("simulation finished",
		"ticks", sum.Ticks,
		"clock", sum.Clock,
		"casts", sum.Casts,
		"failed_casts", sum.FailedCasts,
		"alive", sum.Alive)
	return sum
}

func (r *Runner) fireDue(sum *Summary) error {
	clock := r.engine.Clock()
	for r.next < len(r.scenario.Actions) && r.scenario.Actions[r.next].At <= clock+1e-9 {
		a := r.scenario.Actions[r.next]
		r.next++
		if err := r.fire(a, sum); err != nil {
			return fmt.Errorf("action at %.2fs: %w", a.At, err)
		}
	}
	return nil
}

func (r *Runner) fire(a Action, sum *Summary) error {
	switch a.Kind {
	case ActionMove:
		return r.engine.Move(a.Entity, a.To.Vec())
	default:
		res, err := r.engine.Cast(a.Caster, model.AbilityID(a.Ability), a.Target, optVec(a.Point), optVec(a.Direction))
		if err != nil {
			return err
		}
		sum.Casts++
		if !res.Success {
			sum.FailedCasts++
			slog.Info("cast failed",
				"caster", a.Caster,
				"ability", a.Ability,
				"reason", res.Reason)
		}
		return nil
	}
}

func optVec(c Coords) *model.Vec3 {
	if !c.IsSet() {
		return nil
	}
	v := c.Vec()
	return &v
}
