// Package effect implements ability effects and the processor that owns
// timed effects on targets.
package effect

import (
	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/model"
)

// Category groups effects by how the processor handles them.
type Category int8

const (
	CategoryInstant  Category = iota // resolved once by Apply
	CategoryDuration                 // owned by the processor until expiry
	CategoryPeriodic                 // duration effect with a per-interval hook
)

func (c Category) String() string {
	switch c {
	case CategoryInstant:
		return "instant"
	case CategoryDuration:
		return "duration"
	case CategoryPeriodic:
		return "periodic"
	}
	return "unknown"
}

// Effect interface for all ability effects.
// Instant effects do their work in Apply. Timed effects implement
// DurationEffect and are installed through Processor.ApplyDuration.
type Effect interface {
	ID() model.EffectID
	Name() string
	Category() Category
	CanApply(ctx Context) bool
	Apply(ctx Context) Result
}

// DurationEffect is an effect with a lifetime and stacks.
// An instance belongs to exactly one target: Spawn creates a fresh instance
// for each application, and OnRemove runs once when it leaves the target.
type DurationEffect interface {
	Effect

	Duration() float64
	Remaining() float64
	IsExpired() bool
	Tick(dt float64)
	Refresh()

	Stackable() bool
	MaxStacks() int
	Stacks() int
	AddStack()
	RemoveStack()

	OnApply(target actor.Target)
	OnRemove(target actor.Target)

	Spawn() DurationEffect
}

// PeriodicEffect fires OnTick every TickInterval while active.
type PeriodicEffect interface {
	DurationEffect

	TickInterval() float64
	SinceLastTick() float64
	// OnTick applies one interval's delta and resets the accumulator.
	OnTick(ctx Context)
}

// Context carries everything an effect needs to resolve.
type Context struct {
	Source    actor.Target
	Target    actor.Target
	Ability   model.AbilityID
	Point     *model.Vec3
	Direction *model.Vec3

	// PowerMultiplier scales effect output. Zero is treated as 1.
	PowerMultiplier float64
}

// NewContext creates a context with a neutral multiplier.
func NewContext(source, target actor.Target, ability model.AbilityID) Context {
	return Context{Source: source, Target: target, Ability: ability, PowerMultiplier: 1}
}

// WithTarget returns a copy of c aimed at target.
func (c Context) WithTarget(target actor.Target) Context {
	c.Target = target
	return c
}

// WithMultiplier returns a copy of c with PowerMultiplier set.
func (c Context) WithMultiplier(m float64) Context {
	c.PowerMultiplier = m
	return c
}

// Power returns the effective multiplier.
func (c Context) Power() float64 {
	if c.PowerMultiplier == 0 {
		return 1
	}
	return c.PowerMultiplier
}

// SourceID returns the source id or "" when there is no source.
func (c Context) SourceID() string {
	if c.Source == nil {
		return ""
	}
	return c.Source.ID()
}

// TargetID returns the target id or "" when there is no target.
func (c Context) TargetID() string {
	if c.Target == nil {
		return ""
	}
	return c.Target.ID()
}

// Result of applying an effect.
type Result struct {
	Success bool
	Outcome model.Outcome
	Value   float64
	Message string
}

func Succeeded(value float64, message string) Result {
	return Result{Success: true, Outcome: model.OutcomeNormal, Value: value, Message: message}
}

func Critical(value float64, message string) Result {
	return Result{Success: true, Outcome: model.OutcomeCritical, Value: value, Message: message}
}

func Resisted(value float64, message string) Result {
	return Result{Success: true, Outcome: model.OutcomeResisted, Value: value, Message: message}
}

func Blocked(message string) Result {
	return Result{Outcome: model.OutcomeBlocked, Message: message}
}

func Immune(message string) Result {
	return Result{Outcome: model.OutcomeImmune, Message: message}
}

func Failed(message string) Result {
	return Result{Outcome: model.OutcomeFailed, Message: message}
}

// Library resolves effects by id. Built by the content loader.
type Library map[model.EffectID]Effect

// Get returns the effect or nil.
func (l Library) Get(id model.EffectID) Effect {
	return l[id]
}

func targetAlive(ctx Context) bool {
	return ctx.Target != nil && ctx.Target.IsAlive()
}
