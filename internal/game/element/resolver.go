// Package element tracks the active element on each target and resolves
// reactions when a second element hits.
package element

import (
	"sort"

	"github.com/udisondev/abilitycore/internal/model"
)

// DefaultDecay is how long an incoming element stays active when it did not react.
const DefaultDecay = 10.0

// Reaction describes the outcome of two elements meeting.
type Reaction struct {
	Type          model.ReactionType
	Multiplier    float64
	BonusEffectID model.EffectID
	Description   string
}

// None is the no-reaction result.
var None = Reaction{Type: model.ReactionNone, Multiplier: 1}

// Triggered reports whether a reaction fired.
func (r Reaction) Triggered() bool {
	return r.Type != model.ReactionNone
}

// Pair is an ordered (existing, incoming) element pair.
type Pair struct {
	Existing model.DamageType
	Incoming model.DamageType
}

// Table maps ordered pairs to reactions.
type Table map[Pair]Reaction

// DefaultTable returns the standard reaction table.
// Melt is asymmetric, every other reaction applies in both directions.
func DefaultTable() Table {
	t := Table{
		{model.DamageFire, model.DamageIce}: {model.ReactionMelt, 2.0, "", "Melt! 2x damage"},
		{model.DamageIce, model.DamageFire}: {model.ReactionMelt, 1.5, "", "Reverse Melt! 1.5x damage"},
	}
	symmetric := []struct {
		a, b     model.DamageType
		reaction Reaction
	}{
		{model.DamageFire, model.DamageLightning, Reaction{model.ReactionOverload, 1.5, "overload_explosion", "Overload! Explosion"}},
		{model.DamageIce, model.DamageLightning, Reaction{model.ReactionSuperconduct, 1.2, "superconduct_debuff", "Superconduct! Resistance shred"}},
		{model.DamageFire, model.DamageNature, Reaction{model.ReactionBurning, 1.0, "burning_dot", "Burning!"}},
		{model.DamageIce, model.DamageNature, Reaction{model.ReactionFrozen, 1.0, "frozen_stun", "Frozen!"}},
		{model.DamageLightning, model.DamageNature, Reaction{model.ReactionElectrocharged, 1.3, "electrocharged", "Electrocharged!"}},
	}
	for _, s := range symmetric {
		t[Pair{s.a, s.b}] = s.reaction
		t[Pair{s.b, s.a}] = s.reaction
	}
	return t
}

type state struct {
	element   model.DamageType
	remaining float64
}

// Resolver holds per-target elemental state.
//
// Not safe for concurrent use.
type Resolver struct {
	table  Table
	states map[string]*state
}

// NewResolver creates a resolver with the default table.
func NewResolver() *Resolver {
	return NewResolverWithTable(DefaultTable())
}

// NewResolverWithTable creates a resolver with a custom table.
func NewResolverWithTable(table Table) *Resolver {
	return &Resolver{
		table:  table,
		states: make(map[string]*state),
	}
}

// ApplyElement makes element active on target for duration, replacing any previous one.
// Non-reactive elements are ignored. A non-positive duration still overwrites
// the state; the next Tick drops it.
func (r *Resolver) ApplyElement(targetID string, element model.DamageType, duration float64) {
	if !element.IsReactive() {
		return
	}
	r.states[targetID] = &state{element: element, remaining: max(duration, 0)}
}

// ActiveElement returns the element currently on target.
func (r *Resolver) ActiveElement(targetID string) (model.DamageType, bool) {
	s, ok := r.states[targetID]
	if !ok {
		return 0, false
	}
	return s.element, true
}

// Remaining returns how long the active element lasts, 0 if none.
func (r *Resolver) Remaining(targetID string) float64 {
	if s, ok := r.states[targetID]; ok {
		return s.remaining
	}
	return 0
}

// CheckReaction resolves incoming against the target's active element.
// A hit consumes the state. Otherwise a reactive incoming element becomes
// active for DefaultDecay.
func (r *Resolver) CheckReaction(targetID string, incoming model.DamageType) Reaction {
	if s, ok := r.states[targetID]; ok {
		if reaction, found := r.table[Pair{s.element, incoming}]; found {
			delete(r.states, targetID)
			return reaction
		}
	}
	r.ApplyElement(targetID, incoming, DefaultDecay)
	return None
}

// Clear forgets the target's state.
func (r *Resolver) Clear(targetID string) {
	delete(r.states, targetID)
}

// Tick decays every state by dt and drops the ones that ran out.
func (r *Resolver) Tick(dt float64) {
	var expired []string
	for id, s := range r.states {
		s.remaining -= dt
		if s.remaining <= 0 {
			expired = append(expired, id)
		}
	}
	sort.Strings(expired)
	for _, id := range expired {
		delete(r.states, id)
	}
}

// Count returns the number of targets with an active element.
func (r *Resolver) Count() int {
	return len(r.states)
}
