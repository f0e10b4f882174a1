package targeting

import (
	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/model"
)

// Filter decides which entities a cast may select.
type Filter struct {
	Team        model.TeamRelation
	IncludeDead bool
	IncludeSelf bool
	MaxTargets  int                     // 0 = unlimited
	Predicate   func(actor.Target) bool // optional
}

// DefaultFilter selects living enemies.
func DefaultFilter() Filter {
	return Filter{Team: model.RelationEnemies}
}

// AlliesOnly selects living allies, excluding the caster.
func AlliesOnly() Filter {
	return Filter{Team: model.RelationAllies}
}

// SelfOnly selects the caster.
func SelfOnly() Filter {
	return Filter{Team: model.RelationSelf, IncludeSelf: true}
}

// AlliesAndSelf selects living allies and the caster.
func AlliesAndSelf() Filter {
	return Filter{Team: model.RelationAlliesAndSelf, IncludeSelf: true}
}

// FromRules builds a filter from ability target rules.
// Self relations always include the caster.
func FromRules(r ability.TargetRules) Filter {
	f := Filter{
		Team:        r.Team,
		IncludeDead: r.IncludeDead,
		IncludeSelf: r.IncludeSelf,
		MaxTargets:  r.MaxTargets,
	}
	if r.Team == model.RelationSelf || r.Team == model.RelationAlliesAndSelf {
		f.IncludeSelf = true
	}
	return f
}

// Passes checks, in order: nil, liveness, self exclusion, team relation, predicate.
func (f Filter) Passes(target, caster actor.Target) bool {
	if target == nil {
		return false
	}
	if !f.IncludeDead && !target.IsAlive() {
		return false
	}
	isSelf := caster != nil && target.ID() == caster.ID()
	if !f.IncludeSelf && isSelf {
		return false
	}
	if !f.passesTeam(target, caster, isSelf) {
		return false
	}
	if f.Predicate != nil && !f.Predicate(target) {
		return false
	}
	return true
}

func (f Filter) passesTeam(target, caster actor.Target, isSelf bool) bool {
	if caster == nil {
		return f.Team == model.RelationAll
	}
	switch f.Team {
	case model.RelationAll:
		return true
	case model.RelationAllies:
		return target.Team().IsAlly(caster.Team())
	case model.RelationEnemies:
		return target.Team().IsEnemy(caster.Team())
	case model.RelationSelf:
		return isSelf
	case model.RelationAlliesAndSelf:
		return isSelf || target.Team().IsAlly(caster.Team())
	}
	return true
}

// Apply keeps the candidates that pass, truncated to MaxTargets.
func (f Filter) Apply(candidates []actor.Target, caster actor.Target) []actor.Target {
	out := make([]actor.Target, 0, len(candidates))
	for _, c := range candidates {
		if f.MaxTargets > 0 && len(out) >= f.MaxTargets {
			break
		}
		if f.Passes(c, caster) {
			out = append(out, c)
		}
	}
	return out
}
