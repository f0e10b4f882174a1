package effect

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/model"
)

// HealParams configures InstantHeal.
type HealParams struct {
	ID          model.EffectID
	Name        string
	Base        float64
	ScalingStat model.StatID // default spell_power
	Scaling     float64
}

// InstantHeal restores health once. Crits use the source's crit stats.
type InstantHeal struct {
	p   HealParams
	env Env
}

// NewInstantHeal creates an instant heal effect.
func NewInstantHeal(p HealParams, env Env) *InstantHeal {
	if p.ScalingStat == "" {
		p.ScalingStat = model.StatSpellPower
	}
	return &InstantHeal{p: p, env: env.withDefaults()}
}

func (e *InstantHeal) ID() model.EffectID        { return e.p.ID }
func (e *InstantHeal) Name() string              { return e.p.Name }
func (e *InstantHeal) Category() Category        { return CategoryInstant }
func (e *InstantHeal) CanApply(ctx Context) bool { return targetAlive(ctx) }

func (e *InstantHeal) Apply(ctx Context) Result {
	amount := e.p.Base
	if ctx.Source != nil && e.p.Scaling != 0 {
		amount += ctx.Source.Stat(e.p.ScalingStat) * e.p.Scaling
	}

	crit := rollCrit(ctx.Source, e.env.Roller)
	if crit {
		amount *= 1 + ctx.Source.Stat(model.StatCritDamage)
	}

	amount = math.Max(0, amount*ctx.Power())
	ctx.Target.ModifyStat(model.StatHealth, amount)

	e.env.Publisher.Publish(event.HealingDealt{
		SourceID: ctx.SourceID(),
		TargetID: ctx.Target.ID(),
		Amount:   amount,
		Critical: crit,
	})

	slog.Debug("healing dealt",
		"effect", e.p.ID,
		"source", ctx.SourceID(),
		"target", ctx.Target.ID(),
		"amount", amount,
		"crit", crit)

	msg := fmt.Sprintf("%s heals %.0f", e.p.Name, amount)
	if crit {
		return Critical(amount, msg)
	}
	return Succeeded(amount, msg)
}
