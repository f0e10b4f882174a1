package effect

import (
	"github.com/udisondev/abilitycore/internal/game/stat"
	"github.com/udisondev/abilitycore/internal/model"
)

// fakeTarget is a minimal actor.Target backed by a stat container.
type fakeTarget struct {
	id     string
	team   model.TeamID
	pos    model.Vec3
	health float64
	maxHP  float64
	dead   bool
	stats  *stat.Container
}

func newFakeTarget(id string, health float64) *fakeTarget {
	return &fakeTarget{id: id, health: health, maxHP: health, stats: stat.NewContainer(nil)}
}

func (f *fakeTarget) withStat(id model.StatID, v float64) *fakeTarget {
	f.stats.MustRegister(id, v)
	return f
}

func (f *fakeTarget) ID() string           { return f.id }
func (f *fakeTarget) Name() string         { return f.id }
func (f *fakeTarget) IsAlive() bool        { return !f.dead }
func (f *fakeTarget) Team() model.TeamID   { return f.team }
func (f *fakeTarget) Position() model.Vec3 { return f.pos }

func (f *fakeTarget) Stat(id model.StatID) float64 {
	if id == model.StatHealth {
		return f.health
	}
	return f.stats.Value(id)
}

func (f *fakeTarget) ModifyStat(id model.StatID, delta float64) {
	if id == model.StatHealth {
		f.SetStat(id, f.health+delta)
		return
	}
	f.stats.ModifyBase(id, delta)
}

func (f *fakeTarget) SetStat(id model.StatID, v float64) {
	if id == model.StatHealth {
		f.health = min(max(v, 0), f.maxHP)
		if f.health <= 0 {
			f.dead = true
		}
		return
	}
	f.stats.SetBase(id, v)
}

func (f *fakeTarget) ApplyModifier(m *stat.Modifier) bool  { return f.stats.AddModifier(m) }
func (f *fakeTarget) RemoveModifier(m *stat.Modifier) bool { return f.stats.RemoveModifier(m) }
func (f *fakeTarget) HasModifier(id string) bool           { return f.stats.HasModifier(id) }

// trackingTarget records every attributed damage source.
type trackingTarget struct {
	*fakeTarget
	attackers []string
}

func (t *trackingTarget) RecordDamage(sourceID string) { t.attackers = append(t.attackers, sourceID) }
