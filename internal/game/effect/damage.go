package effect

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/model"
)

// DamageParams configures InstantDamage.
type DamageParams struct {
	ID          model.EffectID
	Name        string
	Base        float64
	Type        model.DamageType
	ScalingStat model.StatID // default spell_power
	Scaling     float64
}

// InstantDamage deals one hit of damage.
//
// Pipeline: base + source scaling stat × factor, crit roll, elemental
// reaction, target resistance, power multiplier.
type InstantDamage struct {
	p   DamageParams
	env Env
}

// NewInstantDamage creates an instant damage effect.
func NewInstantDamage(p DamageParams, env Env) *InstantDamage {
	if p.ScalingStat == "" {
		p.ScalingStat = model.StatSpellPower
	}
	return &InstantDamage{p: p, env: env.withDefaults()}
}

func (e *InstantDamage) ID() model.EffectID           { return e.p.ID }
func (e *InstantDamage) Name() string                 { return e.p.Name }
func (e *InstantDamage) Category() Category           { return CategoryInstant }
func (e *InstantDamage) DamageType() model.DamageType { return e.p.Type }
func (e *InstantDamage) CanApply(ctx Context) bool    { return targetAlive(ctx) }

func (e *InstantDamage) Apply(ctx Context) Result {
	target := ctx.Target
	if target.Stat(model.StatInvulnerable) > 0 {
		return Immune(fmt.Sprintf("%s is immune", target.Name()))
	}

	amount := e.p.Base
	if ctx.Source != nil && e.p.Scaling != 0 {
		amount += ctx.Source.Stat(e.p.ScalingStat) * e.p.Scaling
	}

	crit := rollCrit(ctx.Source, e.env.Roller)
	if crit {
		amount *= 1 + ctx.Source.Stat(model.StatCritDamage)
	}

	amount = e.react(ctx, amount)

	resist := math.Max(0, resistance(target, e.p.Type))
	if resist > 0 {
		amount *= 100 / (100 + resist)
	}

	amount = math.Max(0, amount*ctx.Power())
	dealDamage(target, ctx.SourceID(), amount)

	e.env.Publisher.Publish(event.DamageDealt{
		SourceID:   ctx.SourceID(),
		TargetID:   target.ID(),
		Amount:     amount,
		DamageType: e.p.Type,
		Critical:   crit,
	})

	slog.Debug("damage dealt",
		"effect", e.p.ID,
		"source", ctx.SourceID(),
		"target", target.ID(),
		"amount", amount,
		"type", e.p.Type,
		"crit", crit)

	msg := fmt.Sprintf("%s deals %.0f %s damage", e.p.Name, amount, e.p.Type)
	switch {
	case crit:
		return Critical(amount, msg)
	case resist > 0:
		return Resisted(amount, msg)
	default:
		return Succeeded(amount, msg)
	}
}

// react runs the elemental check and returns the adjusted amount.
func (e *InstantDamage) react(ctx Context, amount float64) float64 {
	if e.env.Reactor == nil || !e.p.Type.IsReactive() {
		return amount
	}
	targetID := ctx.Target.ID()
	existing, _ := e.env.Reactor.ActiveElement(targetID)
	reaction := e.env.Reactor.CheckReaction(targetID, e.p.Type)
	if !reaction.Triggered() {
		return amount
	}

	boosted := amount * reaction.Multiplier
	e.env.Publisher.Publish(event.ElementalReaction{
		TargetID:      targetID,
		SourceID:      ctx.SourceID(),
		Reaction:      reaction.Type,
		Existing:      existing,
		Incoming:      e.p.Type,
		BonusDamage:   boosted - amount,
		BonusEffectID: reaction.BonusEffectID,
	})
	return boosted
}

// resistance returns the target's mitigation stat for a damage type.
func resistance(target actor.Target, t model.DamageType) float64 {
	switch t {
	case model.DamagePhysical:
		return target.Stat(model.StatArmor)
	case model.DamageFire:
		return target.Stat(model.StatFireResist)
	case model.DamageIce:
		return target.Stat(model.StatIceResist)
	case model.DamageLightning:
		return target.Stat(model.StatLightningResist)
	case model.DamageArcane, model.DamageHoly, model.DamageShadow:
		return target.Stat(model.StatMagicResist)
	}
	return 0
}

// dealDamage lowers target health, attributing the hit to sourceID first.
func dealDamage(target actor.Target, sourceID string, amount float64) {
	if t, ok := target.(actor.DamageTracker); ok && sourceID != "" {
		t.RecordDamage(sourceID)
	}
	target.ModifyStat(model.StatHealth, -amount)
}
