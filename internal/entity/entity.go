// Package entity provides the reference combat participant: a stat sheet,
// resource pools and an ability book, publishing state changes as events.
package entity

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/stat"
	"github.com/udisondev/abilitycore/internal/model"
)

var (
	ErrDuplicateAbility = errors.New("ability already known")
	ErrDuplicatePool    = errors.New("resource pool already exists")
)

// maxStatPools maps a stat to the pool whose maximum it drives.
var maxStatPools = map[model.StatID]model.ResourceKind{
	model.StatMaxHealth: model.ResourceHealth,
	model.StatMaxMana:   model.ResourceMana,
	model.StatMaxEnergy: model.ResourceEnergy,
}

// regenStatPools maps a stat to the pool whose regen rate it drives.
var regenStatPools = map[model.StatID]model.ResourceKind{
	model.StatHealthRegen: model.ResourceHealth,
	model.StatManaRegen:   model.ResourceMana,
}

// Entity — живой участник боя.
// Stat model.StatHealth читается и пишется через пул Health.
//
// Not safe for concurrent use: owned by the simulation goroutine.
type Entity struct {
	id       string
	name     string
	team     model.TeamID
	position model.Vec3
	alive    bool

	stats     *stat.Container
	pools     map[model.ResourceKind]*stat.Pool
	abilities []*ability.Ability
	known     map[model.AbilityID]*ability.Ability

	lastAttacker string
	publisher    event.Publisher
}

// New создаёт живую сущность без статов и пулов.
// Empty id is replaced by a random UUID. A nil publisher discards events.
func New(id, name string, team model.TeamID, publisher event.Publisher) *Entity {
	if id == "" {
		id = uuid.NewString()
	}
	e := &Entity{
		id:        id,
		name:      name,
		team:      team,
		alive:     true,
		pools:     make(map[model.ResourceKind]*stat.Pool, 4),
		known:     make(map[model.AbilityID]*ability.Ability),
		publisher: event.OrDiscard(publisher),
	}
	e.stats = stat.NewContainer(e.onStatChanged)
	return e
}

func (e *Entity) ID() string           { return e.id }
func (e *Entity) Name() string         { return e.name }
func (e *Entity) Team() model.TeamID   { return e.team }
func (e *Entity) IsAlive() bool        { return e.alive }
func (e *Entity) Position() model.Vec3 { return e.position }

// SetPosition moves the entity. The world index must be refreshed by the caller.
func (e *Entity) SetPosition(p model.Vec3) { e.position = p }

// SetTeam changes the entity's allegiance.
func (e *Entity) SetTeam(t model.TeamID) { e.team = t }

// Stats exposes the stat container.
func (e *Entity) Stats() *stat.Container { return e.stats }

// RegisterStat adds a stat. Registering a max or regen stat also drives the
// matching pool if it exists.
func (e *Entity) RegisterStat(id model.StatID, base float64, opts ...stat.Option) error {
	if err := e.stats.Register(id, base, opts...); err != nil {
		return fmt.Errorf("entity %s: %w", e.id, err)
	}
	e.syncPool(id, e.stats.Value(id))
	return nil
}

// AddPool creates a full resource pool. Max and regen come from the
// matching stats when registered, else from the arguments.
func (e *Entity) AddPool(kind model.ResourceKind, maxValue, regen float64) error {
	if _, exists := e.pools[kind]; exists {
		return fmt.Errorf("entity %s: %s: %w", e.id, kind, ErrDuplicatePool)
	}
	for id, k := range maxStatPools {
		if k == kind && e.stats.Has(id) {
			maxValue = e.stats.Value(id)
		}
	}
	for id, k := range regenStatPools {
		if k == kind && e.stats.Has(id) {
			regen = e.stats.Value(id)
		}
	}
	e.pools[kind] = stat.NewPool(kind, maxValue, regen, e.onPoolChanged)
	return nil
}

// Pool returns the pool of kind or nil.
func (e *Entity) Pool(kind model.ResourceKind) *stat.Pool {
	return e.pools[kind]
}

// Stat returns the derived stat value; health reads the Health pool.
func (e *Entity) Stat(id model.StatID) float64 {
	if id == model.StatHealth {
		return e.Resource(model.ResourceHealth)
	}
	return e.stats.Value(id)
}

// ModifyStat adds delta to a stat's base; health goes to the Health pool.
func (e *Entity) ModifyStat(id model.StatID, delta float64) {
	if id == model.StatHealth {
		e.ModifyResource(model.ResourceHealth, delta)
		return
	}
	e.stats.ModifyBase(id, delta)
}

// SetStat replaces a stat's base; health sets the Health pool.
func (e *Entity) SetStat(id model.StatID, value float64) {
	if id == model.StatHealth {
		if p := e.pools[model.ResourceHealth]; p != nil {
			p.Modify(value - p.Current())
		}
		return
	}
	e.stats.SetBase(id, value)
}

func (e *Entity) ApplyModifier(m *stat.Modifier) bool  { return e.stats.AddModifier(m) }
func (e *Entity) RemoveModifier(m *stat.Modifier) bool { return e.stats.RemoveModifier(m) }
func (e *Entity) HasModifier(modifierID string) bool   { return e.stats.HasModifier(modifierID) }

// Resource returns the current pool value, 0 without a pool.
func (e *Entity) Resource(kind model.ResourceKind) float64 {
	if p := e.pools[kind]; p != nil {
		return p.Current()
	}
	return 0
}

// MaxResource returns the pool maximum, 0 without a pool.
func (e *Entity) MaxResource(kind model.ResourceKind) float64 {
	if p := e.pools[kind]; p != nil {
		return p.Max()
	}
	return 0
}

// HasResource reports whether amount can be paid. Non-positive amounts
// are always affordable.
func (e *Entity) HasResource(kind model.ResourceKind, amount float64) bool {
	if amount <= 0 {
		return true
	}
	p := e.pools[kind]
	return p != nil && p.HasEnough(amount)
}

// ConsumeResource spends amount, clamping at zero.
func (e *Entity) ConsumeResource(kind model.ResourceKind, amount float64) {
	if p := e.pools[kind]; p != nil {
		p.Consume(amount)
	}
}

// ModifyResource adds delta to the pool, clamped to [0, max].
func (e *Entity) ModifyResource(kind model.ResourceKind, delta float64) {
	if p := e.pools[kind]; p != nil {
		p.Modify(delta)
	}
}

// Learn adds a to the ability book.
func (e *Entity) Learn(a *ability.Ability) error {
	if _, ok := e.known[a.ID()]; ok {
		return fmt.Errorf("entity %s: %s: %w", e.id, a.ID(), ErrDuplicateAbility)
	}
	e.known[a.ID()] = a
	e.abilities = append(e.abilities, a)
	return nil
}

// Unlearn removes an ability. Returns false if it was not known.
func (e *Entity) Unlearn(id model.AbilityID) bool {
	if _, ok := e.known[id]; !ok {
		return false
	}
	delete(e.known, id)
	for i, a := range e.abilities {
		if a.ID() == id {
			e.abilities = append(e.abilities[:i], e.abilities[i+1:]...)
			break
		}
	}
	return true
}

// Abilities returns the ability book in learn order.
func (e *Entity) Abilities() []*ability.Ability {
	return append([]*ability.Ability(nil), e.abilities...)
}

func (e *Entity) Ability(id model.AbilityID) *ability.Ability { return e.known[id] }

func (e *Entity) HasAbility(id model.AbilityID) bool {
	_, ok := e.known[id]
	return ok
}

// Tick expires timed modifiers and, while alive, regenerates pools.
func (e *Entity) Tick(dt float64) {
	e.stats.Tick(dt)
	if !e.alive {
		return
	}
	for _, kind := range model.ResourceKinds() {
		if p := e.pools[kind]; p != nil {
			p.Tick(dt)
		}
	}
}

// Revive возвращает мёртвую сущность к жизни с долей здоровья fraction (0..1].
// No-op for a living entity.
func (e *Entity) Revive(fraction float64) {
	if e.alive {
		return
	}
	e.alive = true
	e.lastAttacker = ""
	if p := e.pools[model.ResourceHealth]; p != nil {
		p.Modify(p.Max()*clampFraction(fraction) - p.Current())
	}
	slog.Debug("entity revived", "entity", e.id, "health", e.Resource(model.ResourceHealth))
}

// RecordDamage remembers sourceID as the latest attacker. Dead entities keep their killer.
func (e *Entity) RecordDamage(sourceID string) {
	if e.alive {
		e.lastAttacker = sourceID
	}
}

// LastAttacker returns the id of the latest damage source, empty if none.
func (e *Entity) LastAttacker() string { return e.lastAttacker }

// Kill drops health to zero.
func (e *Entity) Kill() {
	if p := e.pools[model.ResourceHealth]; p != nil {
		p.SetToZero()
		return
	}
	e.die()
}

func (e *Entity) onStatChanged(id model.StatID, oldValue, newValue float64) {
	e.syncPool(id, newValue)
	e.publisher.Publish(event.StatChanged{
		EntityID: e.id,
		Stat:     id,
		Old:      oldValue,
		New:      newValue,
	})
}

func (e *Entity) syncPool(id model.StatID, value float64) {
	if kind, ok := maxStatPools[id]; ok {
		if p := e.pools[kind]; p != nil {
			p.SetMax(value)
		}
	}
	if kind, ok := regenStatPools[id]; ok {
		if p := e.pools[kind]; p != nil {
			p.SetRegenRate(value)
		}
	}
}

func (e *Entity) onPoolChanged(kind model.ResourceKind, oldValue, newValue, maxValue float64) {
	e.publisher.Publish(event.ResourceChanged{
		EntityID: e.id,
		Kind:     kind,
		Old:      oldValue,
		New:      newValue,
		Max:      maxValue,
	})
	if kind == model.ResourceHealth && newValue <= 0 {
		e.die()
	}
}

func (e *Entity) die() {
	if !e.alive {
		return
	}
	e.alive = false
	e.publisher.Publish(event.EntityDied{EntityID: e.id, KillerID: e.lastAttacker})
	slog.Debug("entity died", "entity", e.id, "name", e.name, "killer", e.lastAttacker)
}

func clampFraction(f float64) float64 {
	if f <= 0 || f > 1 {
		return 1
	}
	return f
}
