// Package ability defines ability definitions, cast contexts and the
// capability set a caster must provide.
package ability

import (
	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/game/effect"
	"github.com/udisondev/abilitycore/internal/model"
)

// TargetingMode определяет, как способность выбирает цели.
type TargetingMode int8

const (
	TargetSelf        TargetingMode = iota // Self-cast
	TargetSingle                           // One chosen target
	TargetPoint                            // Ground point
	TargetDirectional                      // Cone in front of the caster
	TargetArea                             // Radius around the aimed point or the caster
	TargetNone                             // No target, fires at the caster's position
)

var modeNames = [...]string{"Self", "SingleTarget", "PointTarget", "DirectionalTarget", "AreaOfEffect", "NoTarget"}

func (m TargetingMode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Unknown"
}

// ParseTargetingMode parses the names returned by String.
func ParseTargetingMode(s string) (TargetingMode, bool) {
	for i, name := range modeNames {
		if name == s {
			return TargetingMode(i), true
		}
	}
	return 0, false
}

// TargetRules narrows which entities a cast may pick.
type TargetRules struct {
	Team        model.TeamRelation
	IncludeDead bool
	IncludeSelf bool
	MaxTargets  int // 0 = unlimited
}

// Definition holds the numeric parameters of an ability.
// Cast time and channel fields are data for the host; the core does not
// schedule them.
type Definition struct {
	Cooldown           float64
	CastTime           float64
	Range              float64
	AreaRadius         float64
	ConeAngle          float64 // full cone angle in degrees for DirectionalTarget
	Costs              []model.Cost
	CanCastWhileMoving bool
	Channeled          bool
	ChannelDuration    float64
	MaxCharges         int
	ChargeRestoreTime  float64
	Targeting          TargetingMode
	Targets            TargetRules
}

// DefaultDefinition returns a definition with the usual defaults:
// castable while moving, one charge, single target on enemies.
func DefaultDefinition() Definition {
	return Definition{
		CanCastWhileMoving: true,
		MaxCharges:         1,
		ConeAngle:          90,
		Targeting:          TargetSingle,
	}
}

// Ability is an immutable ability: identity, definition, ordered effects and
// ability-specific casting conditions.
// Shared across all casters. НЕ модифицировать после создания.
type Ability struct {
	id          model.AbilityID
	name        string
	description string
	def         Definition
	effects     []effect.Effect
	conditions  []Condition
}

// New creates an ability. Slices are copied.
func New(id model.AbilityID, name string, def Definition, effects []effect.Effect, conditions ...Condition) *Ability {
	def.Costs = append([]model.Cost(nil), def.Costs...)
	return &Ability{
		id:         id,
		name:       name,
		def:        def,
		effects:    append([]effect.Effect(nil), effects...),
		conditions: append([]Condition(nil), conditions...),
	}
}

// WithDescription returns a copy carrying a description.
func (a *Ability) WithDescription(desc string) *Ability {
	cp := *a
	cp.description = desc
	return &cp
}

func (a *Ability) ID() model.AbilityID      { return a.id }
func (a *Ability) Name() string             { return a.name }
func (a *Ability) Description() string      { return a.description }
func (a *Ability) Definition() Definition   { return a.def }
func (a *Ability) Targeting() TargetingMode { return a.def.Targeting }
func (a *Ability) Range() float64           { return a.def.Range }
func (a *Ability) Cooldown() float64        { return a.def.Cooldown }

// Costs returns a copy of the resource costs.
func (a *Ability) Costs() []model.Cost {
	return append([]model.Cost(nil), a.def.Costs...)
}

// Effects returns the ordered effect list.
func (a *Ability) Effects() []effect.Effect {
	return append([]effect.Effect(nil), a.effects...)
}

// Conditions returns the ability-specific conditions.
func (a *Ability) Conditions() []Condition {
	return append([]Condition(nil), a.conditions...)
}

// CastContext carries the caster's aim.
type CastContext struct {
	Target    actor.Target
	Point     *model.Vec3
	Direction *model.Vec3
}

// AtTarget aims at an entity.
func AtTarget(t actor.Target) CastContext {
	return CastContext{Target: t}
}

// AtPoint aims at a ground point.
func AtPoint(p model.Vec3) CastContext {
	return CastContext{Point: &p}
}

// InDirection aims along a direction.
func InDirection(d model.Vec3) CastContext {
	return CastContext{Direction: &d}
}

// Owner is an entity that casts abilities: a target with resources and an ability book.
type Owner interface {
	actor.Target

	Resource(kind model.ResourceKind) float64
	MaxResource(kind model.ResourceKind) float64
	HasResource(kind model.ResourceKind, amount float64) bool
	ConsumeResource(kind model.ResourceKind, amount float64)
	ModifyResource(kind model.ResourceKind, delta float64)

	Abilities() []*Ability
	Ability(id model.AbilityID) *Ability
	HasAbility(id model.AbilityID) bool
}

// Condition is a single casting precondition.
// Check returns nil when met, or an error whose message is shown to the player.
type Condition interface {
	ID() string
	Check(caster Owner, a *Ability, ctx CastContext) error
}
