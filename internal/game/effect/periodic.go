package effect

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/model"
)

// PeriodicParams configures PeriodicDamage and PeriodicHeal.
type PeriodicParams struct {
	ID        model.EffectID
	Name      string
	Duration  float64
	Interval  float64 // default 1
	PerTick   float64
	Type      model.DamageType // damage only
	Stackable bool
	MaxStacks int

	// CanKill=false stops damage at 1 health (damage only).
	CanKill bool
}

// PeriodicDamage deals PerTick × stacks every interval (DOT).
type PeriodicDamage struct {
	periodic
	p   PeriodicParams
	env Env
}

// NewPeriodicDamage creates a damage-over-time effect.
func NewPeriodicDamage(p PeriodicParams, env Env) *PeriodicDamage {
	return &PeriodicDamage{
		periodic: newPeriodic(p.ID, p.Name, p.Duration, p.Interval, p.Stackable, p.MaxStacks),
		p:        p,
		env:      env.withDefaults(),
	}
}

func (e *PeriodicDamage) Category() Category        { return CategoryPeriodic }
func (e *PeriodicDamage) CanApply(ctx Context) bool { return targetAlive(ctx) }

func (e *PeriodicDamage) Apply(ctx Context) Result {
	return Succeeded(0, fmt.Sprintf("%s applied", e.p.Name))
}

func (e *PeriodicDamage) OnApply(target actor.Target) {
	slog.Debug("dot started", "effect", e.p.ID, "target", target.ID(), "perTick", e.p.PerTick)
}

func (e *PeriodicDamage) OnRemove(target actor.Target) {
	slog.Debug("dot ended", "effect", e.p.ID, "target", target.ID())
}

func (e *PeriodicDamage) OnTick(ctx Context) {
	e.resetAccumulator()

	target := ctx.Target
	if target == nil || !target.IsAlive() {
		return
	}

	damage := e.p.PerTick * float64(e.stacks)
	if damage <= 0 {
		return
	}

	// Kill protection: never take the target below 1 health.
	if !e.p.CanKill {
		current := target.Stat(model.StatHealth)
		if damage >= current {
			damage = current - 1
			if damage <= 0 {
				return
			}
		}
	}

	dealDamage(target, ctx.SourceID(), damage)
	e.env.Publisher.Publish(event.DamageDealt{
		SourceID:   ctx.SourceID(),
		TargetID:   target.ID(),
		Amount:     damage,
		DamageType: e.p.Type,
	})

	slog.Debug("dot tick",
		"effect", e.p.ID,
		"damage", damage,
		"stacks", e.stacks,
		"target", target.ID())
}

func (e *PeriodicDamage) Spawn() DurationEffect {
	return &PeriodicDamage{periodic: e.freshPeriodic(), p: e.p, env: e.env}
}

// PeriodicHeal restores PerTick × stacks every interval (HOT).
type PeriodicHeal struct {
	periodic
	p   PeriodicParams
	env Env
}

// NewPeriodicHeal creates a heal-over-time effect.
func NewPeriodicHeal(p PeriodicParams, env Env) *PeriodicHeal {
	return &PeriodicHeal{
		periodic: newPeriodic(p.ID, p.Name, p.Duration, p.Interval, p.Stackable, p.MaxStacks),
		p:        p,
		env:      env.withDefaults(),
	}
}

func (e *PeriodicHeal) Category() Category        { return CategoryPeriodic }
func (e *PeriodicHeal) CanApply(ctx Context) bool { return targetAlive(ctx) }

func (e *PeriodicHeal) Apply(ctx Context) Result {
	return Succeeded(0, fmt.Sprintf("%s applied", e.p.Name))
}

func (e *PeriodicHeal) OnApply(target actor.Target) {
	slog.Debug("hot started", "effect", e.p.ID, "target", target.ID(), "perTick", e.p.PerTick)
}

func (e *PeriodicHeal) OnRemove(target actor.Target) {
	slog.Debug("hot ended", "effect", e.p.ID, "target", target.ID())
}

func (e *PeriodicHeal) OnTick(ctx Context) {
	e.resetAccumulator()

	target := ctx.Target
	if target == nil || !target.IsAlive() {
		return
	}

	heal := e.p.PerTick * float64(e.stacks)
	if heal <= 0 {
		return
	}

	target.ModifyStat(model.StatHealth, heal)
	e.env.Publisher.Publish(event.HealingDealt{
		SourceID: ctx.SourceID(),
		TargetID: target.ID(),
		Amount:   heal,
	})
}

func (e *PeriodicHeal) Spawn() DurationEffect {
	return &PeriodicHeal{periodic: e.freshPeriodic(), p: e.p, env: e.env}
}
