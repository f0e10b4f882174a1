package effect

import (
	"math/rand/v2"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/game/element"
	"github.com/udisondev/abilitycore/internal/model"
)

// Roller yields uniform values in [0, 1) for crit rolls.
type Roller interface {
	Float64() float64
}

// RollerFunc adapts a function to Roller.
type RollerFunc func() float64

func (f RollerFunc) Float64() float64 { return f() }

// DefaultRoller uses the global math/rand/v2 source.
var DefaultRoller Roller = RollerFunc(rand.Float64)

// SeededRoller returns a deterministic roller.
func SeededRoller(seed uint64) Roller {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FixedRoller always returns v.
func FixedRoller(v float64) Roller {
	return RollerFunc(func() float64 { return v })
}

// Reactor resolves elemental reactions. Implemented by element.Resolver.
type Reactor interface {
	ActiveElement(targetID string) (model.DamageType, bool)
	CheckReaction(targetID string, incoming model.DamageType) element.Reaction
}

// Env holds the collaborators effects are built with.
type Env struct {
	Publisher event.Publisher
	Reactor   Reactor // optional: nil disables reactions
	Roller    Roller
}

func (e Env) withDefaults() Env {
	e.Publisher = event.OrDiscard(e.Publisher)
	if e.Roller == nil {
		e.Roller = DefaultRoller
	}
	return e
}

func rollCrit(source actor.Target, roller Roller) bool {
	if source == nil {
		return false
	}
	chance := source.Stat(model.StatCritChance)
	if chance <= 0 {
		return false
	}
	if chance > 1 {
		chance = 1
	}
	return roller.Float64() < chance
}
