// Package targeting resolves which entities an ability affects.
// One strategy per targeting mode; spatial queries go to a WorldQuery.
package targeting

import (
	"errors"
	"fmt"

	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/model"
)

//go:generate mockgen -source=resolver.go -destination=mock/world_query.go -package=mocktargeting WorldQuery

// ErrNoStrategyForMode is returned when an ability's targeting mode has no strategy.
var ErrNoStrategyForMode = errors.New("no targeting strategy for mode")

// WorldQuery answers spatial questions about the entities in the world.
// Result order is the world's choice; strategies truncate in that order.
type WorldQuery interface {
	All() []actor.Target
	InRadius(center model.Vec3, radius float64) []actor.Target
	// InCone returns entities within rng of origin whose bearing is within
	// angleDeg/2 of direction.
	InCone(origin, direction model.Vec3, angleDeg, rng float64) []actor.Target
	Closest(pos model.Vec3, filter Filter, caster actor.Target) actor.Target
}

// Request describes one targeting question.
type Request struct {
	Caster    actor.Target
	Ability   *ability.Ability
	Primary   actor.Target
	Point     *model.Vec3
	Direction *model.Vec3
	Filter    Filter
}

// NewRequest builds a request from a cast, using the ability's target rules.
func NewRequest(caster actor.Target, a *ability.Ability, ctx ability.CastContext) Request {
	return Request{
		Caster:    caster,
		Ability:   a,
		Primary:   ctx.Target,
		Point:     ctx.Point,
		Direction: ctx.Direction,
		Filter:    FromRules(a.Definition().Targets),
	}
}

// Strategy resolves targets for one mode.
type Strategy interface {
	Mode() ability.TargetingMode
	FindTargets(req Request) []actor.Target
	IsValidTarget(target actor.Target, req Request) bool
}

// Resolver dispatches requests to the strategy registered for the ability's mode.
type Resolver struct {
	world      WorldQuery
	strategies map[ability.TargetingMode]Strategy
}

// NewResolver creates a resolver with a strategy for every built-in mode.
// A nil world makes spatial modes resolve to nothing.
func NewResolver(world WorldQuery) *Resolver {
	if world == nil {
		world = emptyWorld{}
	}
	r := &Resolver{
		world:      world,
		strategies: make(map[ability.TargetingMode]Strategy, 6),
	}
	r.Register(selfStrategy{})
	r.Register(singleStrategy{})
	r.Register(areaStrategy{world: world})
	r.Register(noTargetStrategy{})
	r.Register(pointStrategy{world: world})
	r.Register(directionalStrategy{world: world})
	return r
}

// Register installs s, replacing any strategy for the same mode.
func (r *Resolver) Register(s Strategy) {
	r.strategies[s.Mode()] = s
}

// Unregister removes the strategy for mode.
func (r *Resolver) Unregister(mode ability.TargetingMode) {
	delete(r.strategies, mode)
}

// Supports reports whether mode has a strategy.
func (r *Resolver) Supports(mode ability.TargetingMode) bool {
	_, ok := r.strategies[mode]
	return ok
}

// Resolve returns the targets for req.
func (r *Resolver) Resolve(req Request) ([]actor.Target, error) {
	mode := req.Ability.Targeting()
	s, ok := r.strategies[mode]
	if !ok {
		return nil, fmt.Errorf("resolving %s: %w: %s", req.Ability.ID(), ErrNoStrategyForMode, mode)
	}
	return s.FindTargets(req), nil
}

// Validate reports whether target is acceptable for req. Unknown modes reject.
func (r *Resolver) Validate(target actor.Target, req Request) bool {
	s, ok := r.strategies[req.Ability.Targeting()]
	if !ok {
		return false
	}
	return s.IsValidTarget(target, req)
}

type emptyWorld struct{}

func (emptyWorld) All() []actor.Target                                            { return nil }
func (emptyWorld) InRadius(model.Vec3, float64) []actor.Target                    { return nil }
func (emptyWorld) InCone(model.Vec3, model.Vec3, float64, float64) []actor.Target { return nil }
func (emptyWorld) Closest(model.Vec3, Filter, actor.Target) actor.Target          { return nil }
