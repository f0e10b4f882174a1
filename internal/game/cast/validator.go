package cast

import (
	"errors"

	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/cooldown"
)

// Validator runs global conditions, then the ability's own, stopping at the
// first failure.
type Validator struct {
	global []ability.Condition
}

// NewValidator creates a validator with the given global conditions, in order.
func NewValidator(conditions ...ability.Condition) *Validator {
	return &Validator{global: append([]ability.Condition(nil), conditions...)}
}

// DefaultValidator checks, in order: alive, cooldown, resources, range, target alive.
func DefaultValidator(cooldowns *cooldown.Tracker) *Validator {
	return NewValidator(
		Alive{},
		NewCooldown(cooldowns),
		Resource{},
		Range{},
		TargetAlive{},
	)
}

// AddGlobal appends a global condition.
func (v *Validator) AddGlobal(c ability.Condition) {
	v.global = append(v.global, c)
}

// RemoveGlobal removes the first global condition with c's id.
// Returns false if none matched.
func (v *Validator) RemoveGlobal(c ability.Condition) bool {
	for i, g := range v.global {
		if g.ID() == c.ID() {
			v.global = append(v.global[:i], v.global[i+1:]...)
			return true
		}
	}
	return false
}

// Globals returns the global conditions in evaluation order.
func (v *Validator) Globals() []ability.Condition {
	return append([]ability.Condition(nil), v.global...)
}

// Validate returns nil or a *ConditionError for the first failing condition.
func (v *Validator) Validate(caster ability.Owner, a *ability.Ability, ctx ability.CastContext) error {
	for _, c := range v.global {
		if err := check(c, caster, a, ctx); err != nil {
			return err
		}
	}
	for _, c := range a.Conditions() {
		if err := check(c, caster, a, ctx); err != nil {
			return err
		}
	}
	return nil
}

// check normalizes foreign condition errors into *ConditionError.
func check(c ability.Condition, caster ability.Owner, a *ability.Ability, ctx ability.CastContext) error {
	err := c.Check(caster, a, ctx)
	if err == nil {
		return nil
	}
	var ce *ConditionError
	if errors.As(err, &ce) {
		return err
	}
	return &ConditionError{Condition: c.ID(), Message: err.Error()}
}
