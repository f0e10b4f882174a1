// Package actor defines the capability set the combat core needs from a
// participant. Hosts implement it; the core never depends on a concrete entity.
package actor

import (
	"github.com/udisondev/abilitycore/internal/game/stat"
	"github.com/udisondev/abilitycore/internal/model"
)

// Target is anything effects can be applied to.
type Target interface {
	ID() string
	Name() string
	IsAlive() bool
	Team() model.TeamID
	Position() model.Vec3

	// Stat reads a derived stat value; unknown stats read as 0.
	// model.StatHealth reads the current health.
	Stat(id model.StatID) float64
	// ModifyStat adds delta to the stat's base. model.StatHealth changes current health.
	ModifyStat(id model.StatID, delta float64)
	// SetStat replaces the stat's base. model.StatHealth sets current health.
	SetStat(id model.StatID, value float64)

	ApplyModifier(m *stat.Modifier) bool
	RemoveModifier(m *stat.Modifier) bool
	HasModifier(modifierID string) bool
}

// SameTarget compares two targets by id, treating nil as distinct from everything.
func SameTarget(a, b Target) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}

// DamageTracker is implemented by targets that remember who damaged them.
// Effects call RecordDamage before applying damage.
type DamageTracker interface {
	RecordDamage(sourceID string)
}
