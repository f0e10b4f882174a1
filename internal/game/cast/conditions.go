package cast

import (
	"errors"
	"fmt"

	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/cooldown"
)

// ErrConditionUnmet matches every casting condition failure via errors.Is.
var ErrConditionUnmet = errors.New("casting condition not met")

// ConditionError reports which condition failed and the message for the player.
type ConditionError struct {
	Condition string
	Message   string
}

func (e *ConditionError) Error() string { return e.Message }

func (e *ConditionError) Is(target error) bool { return target == ErrConditionUnmet }

func unmet(id, message string) error {
	return &ConditionError{Condition: id, Message: message}
}

// Alive rejects casts from dead casters.
type Alive struct{}

func (Alive) ID() string { return "alive" }

func (Alive) Check(caster ability.Owner, _ *ability.Ability, _ ability.CastContext) error {
	if !caster.IsAlive() {
		return unmet("alive", "Cannot cast while dead")
	}
	return nil
}

// Cooldown rejects abilities still cooling down for the caster.
type Cooldown struct {
	tracker *cooldown.Tracker
}

func NewCooldown(tracker *cooldown.Tracker) Cooldown {
	return Cooldown{tracker: tracker}
}

func (Cooldown) ID() string { return "cooldown" }

func (c Cooldown) Check(caster ability.Owner, a *ability.Ability, _ ability.CastContext) error {
	if c.tracker.IsOnCooldown(caster.ID(), a.ID()) {
		return unmet("cooldown", "Ability is on cooldown")
	}
	return nil
}

// Resource requires every listed cost to be affordable.
// The message names the first resource that is short.
type Resource struct{}

func (Resource) ID() string { return "resource" }

func (Resource) Check(caster ability.Owner, a *ability.Ability, _ ability.CastContext) error {
	for _, cost := range a.Costs() {
		if !caster.HasResource(cost.Kind, cost.Amount) {
			return unmet("resource", fmt.Sprintf("Not enough %s", cost.Kind))
		}
	}
	return nil
}

// Range requires the aimed target, or else the aimed point, to be within
// the ability's range. Self and NoTarget abilities always pass, as does a
// cast with no aim at all.
type Range struct{}

func (Range) ID() string { return "range" }

func (Range) Check(caster ability.Owner, a *ability.Ability, ctx ability.CastContext) error {
	switch a.Targeting() {
	case ability.TargetSelf, ability.TargetNone:
		return nil
	}

	from := caster.Position()
	switch {
	case ctx.Target != nil:
		if from.Distance(ctx.Target.Position()) > a.Range() {
			return unmet("range", "Target is out of range")
		}
	case ctx.Point != nil:
		if from.Distance(*ctx.Point) > a.Range() {
			return unmet("range", "Target is out of range")
		}
	}
	return nil
}

// TargetAlive requires a living target for single-target abilities.
type TargetAlive struct{}

func (TargetAlive) ID() string { return "target_alive" }

func (TargetAlive) Check(_ ability.Owner, a *ability.Ability, ctx ability.CastContext) error {
	if a.Targeting() != ability.TargetSingle {
		return nil
	}
	if ctx.Target == nil || !ctx.Target.IsAlive() {
		return unmet("target_alive", "Target is dead")
	}
	return nil
}
