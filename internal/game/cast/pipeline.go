// Package cast orchestrates an ability cast: validation, combo lookup,
// resource consumption, targeting, effect application and cooldowns.
package cast

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/game/combo"
	"github.com/udisondev/abilitycore/internal/game/cooldown"
	"github.com/udisondev/abilitycore/internal/game/effect"
	"github.com/udisondev/abilitycore/internal/game/element"
	"github.com/udisondev/abilitycore/internal/game/targeting"
	"github.com/udisondev/abilitycore/internal/model"
)

// ErrAbilityNotFound is returned when the caster does not know the ability.
var ErrAbilityNotFound = errors.New("ability not found")

// Result of a cast attempt.
// On failure Reason is the player-facing message and Err matches one of
// ErrAbilityNotFound, ErrConditionUnmet or targeting.ErrNoStrategyForMode.
type Result struct {
	Success       bool
	Reason        string
	Err           error
	EffectResults []effect.Result
}

func failed(reason string, err error) Result {
	return Result{Reason: reason, Err: err}
}

// Pipeline resolves casts against the shared combat subsystems.
//
// Not safe for concurrent use: casts and Update must come from one goroutine.
type Pipeline struct {
	cooldowns *cooldown.Tracker
	effects   *effect.Processor
	validator *Validator
	targeting *targeting.Resolver
	combos    *combo.Tracker    // optional
	elements  *element.Resolver // optional
	library   effect.Library    // optional, resolves combo bonus effects
	publisher event.Publisher
}

// NewPipeline wires a pipeline. combos and elements may be nil; a nil
// validator runs no conditions and a nil publisher discards events.
func NewPipeline(
	cooldowns *cooldown.Tracker,
	effects *effect.Processor,
	validator *Validator,
	resolver *targeting.Resolver,
	combos *combo.Tracker,
	elements *element.Resolver,
	publisher event.Publisher,
) *Pipeline {
	if validator == nil {
		validator = NewValidator()
	}
	return &Pipeline{
		cooldowns: cooldowns,
		effects:   effects,
		validator: validator,
		targeting: resolver,
		combos:    combos,
		elements:  elements,
		publisher: event.OrDiscard(publisher),
	}
}

// SetEffectLibrary attaches the effects that combo bonuses refer to by id.
func (p *Pipeline) SetEffectLibrary(lib effect.Library) {
	p.library = lib
}

// Validator returns the pipeline's condition validator.
func (p *Pipeline) Validator() *Validator { return p.validator }

// TryCast attempts to cast abilityID.
// Resources are spent only after validation and targeting support pass.
func (p *Pipeline) TryCast(caster ability.Owner, abilityID model.AbilityID, ctx ability.CastContext) Result {
	a := caster.Ability(abilityID)
	if a == nil {
		return failed(fmt.Sprintf("Ability %s not found", abilityID),
			fmt.Errorf("casting %s: %w", abilityID, ErrAbilityNotFound))
	}

	if err := p.validator.Validate(caster, a, ctx); err != nil {
		p.cancel(caster, a, err.Error())
		return failed(err.Error(), err)
	}

	if !p.targeting.Supports(a.Targeting()) {
		err := fmt.Errorf("casting %s: %w: %s", abilityID, targeting.ErrNoStrategyForMode, a.Targeting())
		reason := fmt.Sprintf("No targeting strategy for %s", a.Targeting())
		p.cancel(caster, a, reason)
		return failed(reason, err)
	}

	bonus := combo.None
	if p.combos != nil {
		bonus = p.combos.Check(caster.ID(), abilityID)
	}

	p.publisher.Publish(event.CastStarted{CasterID: caster.ID(), Ability: abilityID})

	for _, cost := range a.Costs() {
		caster.ConsumeResource(cost.Kind, cost.Amount)
	}

	targets, err := p.targeting.Resolve(targeting.NewRequest(caster, a, ctx))
	if err != nil {
		// Supports was checked above; a strategy can only vanish from a handler.
		return failed(err.Error(), err)
	}

	results := p.applyAll(caster, a, ctx, targets, bonus)

	if p.combos != nil {
		p.combos.RegisterCast(caster.ID(), abilityID)
	}

	if a.Cooldown() > 0 {
		p.cooldowns.Start(caster.ID(), abilityID, effectiveCooldown(caster, a.Cooldown()))
	}

	p.publisher.Publish(event.CastCompleted{
		CasterID: caster.ID(),
		Ability:  abilityID,
		Targets:  len(targets),
	})

	slog.Debug("ability cast",
		"caster", caster.Name(),
		"ability", abilityID,
		"targets", len(targets),
		"combo", bonus.IsCombo,
		"multiplier", bonus.Multiplier)

	return Result{Success: true, EffectResults: results}
}

// CanCast reports whether TryCast would pass lookup and validation.
// It has no side effects.
func (p *Pipeline) CanCast(caster ability.Owner, abilityID model.AbilityID, ctx ability.CastContext) bool {
	a := caster.Ability(abilityID)
	return a != nil && p.validator.Validate(caster, a, ctx) == nil
}

// CooldownRemaining returns the remaining cooldown of abilityID for owner.
func (p *Pipeline) CooldownRemaining(owner actor.Target, abilityID model.AbilityID) float64 {
	return p.cooldowns.Remaining(owner.ID(), abilityID)
}

// IsOnCooldown reports whether abilityID is cooling down for owner.
func (p *Pipeline) IsOnCooldown(owner actor.Target, abilityID model.AbilityID) bool {
	return p.cooldowns.IsOnCooldown(owner.ID(), abilityID)
}

// Update advances cooldowns, effects, combo windows and elemental decay by dt.
func (p *Pipeline) Update(dt float64) {
	p.cooldowns.Tick(dt)
	p.effects.Tick(dt)
	if p.combos != nil {
		p.combos.Tick(dt)
	}
	if p.elements != nil {
		p.elements.Tick(dt)
	}
}

// Forget drops all per-target state held for target: active effects,
// combo progress and elemental aura. Cooldowns are kept.
func (p *Pipeline) Forget(target actor.Target) {
	p.effects.Clear(target)
	if p.combos != nil {
		p.combos.Reset(target.ID())
	}
	if p.elements != nil {
		p.elements.Clear(target.ID())
	}
}

// applyAll applies every effect once per target, or once on the caster when
// the target set is empty. Final combo steps add the combo's bonus effects.
func (p *Pipeline) applyAll(
	caster ability.Owner,
	a *ability.Ability,
	ctx ability.CastContext,
	targets []actor.Target,
	bonus combo.Result,
) []effect.Result {
	recipients := targets
	if len(recipients) == 0 {
		recipients = []actor.Target{caster}
	}

	base := effect.Context{
		Source:          caster,
		Ability:         a.ID(),
		Point:           ctx.Point,
		Direction:       ctx.Direction,
		PowerMultiplier: bonus.Multiplier,
	}

	effects := a.Effects()
	if bonus.IsFinal() {
		effects = append(effects, p.bonusEffects(bonus)...)
	}

	results := make([]effect.Result, 0, len(effects)*len(recipients))
	for _, e := range effects {
		for _, t := range recipients {
			results = append(results, p.apply(e, base.WithTarget(t)))
		}
	}
	return results
}

func (p *Pipeline) apply(e effect.Effect, ctx effect.Context) effect.Result {
	if d, ok := e.(effect.DurationEffect); ok {
		return p.effects.ApplyDuration(d.Spawn(), ctx.Target, ctx)
	}
	return p.effects.ApplyInstant(e, ctx)
}

func (p *Pipeline) bonusEffects(bonus combo.Result) []effect.Effect {
	if p.library == nil {
		return nil
	}
	ids := bonus.BonusEffectIDs
	if bonus.Combo.FinisherEffectID != "" {
		ids = append(ids, bonus.Combo.FinisherEffectID)
	}

	var out []effect.Effect
	for _, id := range ids {
		e := p.library.Get(id)
		if e == nil {
			slog.Warn("combo bonus effect not found",
				"combo", bonus.Combo.ID,
				"effect", id)
			continue
		}
		out = append(out, e)
	}
	return out
}

func (p *Pipeline) cancel(caster ability.Owner, a *ability.Ability, reason string) {
	p.publisher.Publish(event.CastCancelled{
		CasterID: caster.ID(),
		Ability:  a.ID(),
		Reason:   reason,
	})
}

// effectiveCooldown applies the caster's cooldown reduction, capped at
// model.MaxCooldownReduction.
func effectiveCooldown(caster actor.Target, base float64) float64 {
	cdr := min(caster.Stat(model.StatCooldownReduction), model.MaxCooldownReduction)
	return base * (1 - cdr)
}
