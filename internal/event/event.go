// Package event defines the domain events published by the combat core
// and a few sinks for them. Publishing is fire-and-forget: a sink never
// influences the operation that produced the event.
package event

import "github.com/udisondev/abilitycore/internal/model"

// Type names an event kind.
type Type string

const (
	TypeCastStarted       Type = "cast_started"
	TypeCastCompleted     Type = "cast_completed"
	TypeCastCancelled     Type = "cast_cancelled"
	TypeCooldownStarted   Type = "cooldown_started"
	TypeCooldownCompleted Type = "cooldown_completed"
	TypeEffectApplied     Type = "effect_applied"
	TypeEffectRemoved     Type = "effect_removed"
	TypeDamageDealt       Type = "damage_dealt"
	TypeHealingDealt      Type = "healing_dealt"
	TypeComboProgress     Type = "combo_progress"
	TypeComboCompleted    Type = "combo_completed"
	TypeComboDropped      Type = "combo_dropped"
	TypeElementalReaction Type = "elemental_reaction"
	TypeStatChanged       Type = "stat_changed"
	TypeResourceChanged   Type = "resource_changed"
	TypeEntityDied        Type = "entity_died"
)

// Event is implemented by every domain event.
type Event interface {
	Type() Type
}

type CastStarted struct {
	CasterID string
	Ability  model.AbilityID
}

type CastCompleted struct {
	CasterID string
	Ability  model.AbilityID
	Targets  int
}

type CastCancelled struct {
	CasterID string
	Ability  model.AbilityID
	Reason   string
}

type CooldownStarted struct {
	OwnerID  string
	Ability  model.AbilityID
	Duration float64
}

type CooldownCompleted struct {
	OwnerID string
	Ability model.AbilityID
}

type EffectApplied struct {
	SourceID string
	TargetID string
	Effect   model.EffectID
	Name     string
	Outcome  model.Outcome
	Value    float64
}

type EffectRemoved struct {
	TargetID string
	Effect   model.EffectID
}

type DamageDealt struct {
	SourceID   string
	TargetID   string
	Amount     float64
	DamageType model.DamageType
	Critical   bool
}

type HealingDealt struct {
	SourceID string
	TargetID string
	Amount   float64
	Critical bool
}

type ComboProgress struct {
	CasterID string
	ComboID  string
	Step     int // 1-based
	Total    int
}

type ComboCompleted struct {
	CasterID        string
	ComboID         string
	TotalMultiplier float64
}

type ComboDropped struct {
	CasterID string
	ComboID  string
	Reason   string
}

type ElementalReaction struct {
	TargetID      string
	SourceID      string
	Reaction      model.ReactionType
	Existing      model.DamageType
	Incoming      model.DamageType
	BonusDamage   float64
	BonusEffectID model.EffectID
}

type StatChanged struct {
	EntityID string
	Stat     model.StatID
	Old      float64
	New      float64
}

type ResourceChanged struct {
	EntityID string
	Kind     model.ResourceKind
	Old      float64
	New      float64
	Max      float64
}

type EntityDied struct {
	EntityID string
	KillerID string
}

func (CastStarted) Type() Type       { return TypeCastStarted }
func (CastCompleted) Type() Type     { return TypeCastCompleted }
func (CastCancelled) Type() Type     { return TypeCastCancelled }
func (CooldownStarted) Type() Type   { return TypeCooldownStarted }
func (CooldownCompleted) Type() Type { return TypeCooldownCompleted }
func (EffectApplied) Type() Type     { return TypeEffectApplied }
func (EffectRemoved) Type() Type     { return TypeEffectRemoved }
func (DamageDealt) Type() Type       { return TypeDamageDealt }
func (HealingDealt) Type() Type      { return TypeHealingDealt }
func (ComboProgress) Type() Type     { return TypeComboProgress }
func (ComboCompleted) Type() Type    { return TypeComboCompleted }
func (ComboDropped) Type() Type      { return TypeComboDropped }
func (ElementalReaction) Type() Type { return TypeElementalReaction }
func (StatChanged) Type() Type       { return TypeStatChanged }
func (ResourceChanged) Type() Type   { return TypeResourceChanged }
func (EntityDied) Type() Type        { return TypeEntityDied }
