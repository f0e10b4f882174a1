package model

import "strings"

// DamageType classifies a damage instance for resistances and elemental reactions.
type DamageType int8

const (
	DamagePhysical DamageType = iota
	DamageFire
	DamageIce
	DamageLightning
	DamageNature
	DamageArcane
	DamageHoly
	DamageShadow
	DamageTrue
)

var damageNames = [...]string{"Physical", "Fire", "Ice", "Lightning", "Nature", "Arcane", "Holy", "Shadow", "True"}

func (d DamageType) String() string {
	if int(d) >= 0 && int(d) < len(damageNames) {
		return damageNames[d]
	}
	return "Unknown"
}

// ParseDamageType accepts the names returned by String, case-insensitively.
func ParseDamageType(s string) (DamageType, bool) {
	for i, name := range damageNames {
		if strings.EqualFold(name, s) {
			return DamageType(i), true
		}
	}
	return 0, false
}

// IsReactive reports whether the damage type takes part in elemental reactions.
func (d DamageType) IsReactive() bool {
	switch d {
	case DamageFire, DamageIce, DamageLightning, DamageNature:
		return true
	}
	return false
}

// ReactionType names the result of two elements meeting on a target.
type ReactionType int8

const (
	ReactionNone ReactionType = iota
	ReactionMelt
	ReactionOverload
	ReactionSuperconduct
	ReactionBurning
	ReactionFrozen
	ReactionElectrocharged
)

var reactionNames = [...]string{"None", "Melt", "Overload", "Superconduct", "Burning", "Frozen", "Electrocharged"}

func (r ReactionType) String() string {
	if int(r) >= 0 && int(r) < len(reactionNames) {
		return reactionNames[r]
	}
	return "Unknown"
}
