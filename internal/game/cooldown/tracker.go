// Package cooldown tracks per-owner ability cooldowns.
package cooldown

import (
	"sort"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/model"
)

type entry struct {
	total     float64
	remaining float64
}

// Tracker stores remaining cooldown per (owner, ability).
// Owners are keyed by entity id.
//
// Not safe for concurrent use: the engine drives it from a single goroutine.
type Tracker struct {
	entries   map[string]map[model.AbilityID]*entry
	publisher event.Publisher
}

// NewTracker creates an empty tracker. A nil publisher discards events.
func NewTracker(publisher event.Publisher) *Tracker {
	return &Tracker{
		entries:   make(map[string]map[model.AbilityID]*entry),
		publisher: event.OrDiscard(publisher),
	}
}

// Start puts ability on cooldown for duration, overwriting any existing entry.
// Durations <= 0 are ignored.
func (t *Tracker) Start(ownerID string, ability model.AbilityID, duration float64) {
	if duration <= 0 {
		return
	}
	owned, ok := t.entries[ownerID]
	if !ok {
		owned = make(map[model.AbilityID]*entry)
		t.entries[ownerID] = owned
	}
	owned[ability] = &entry{total: duration, remaining: duration}
	t.publisher.Publish(event.CooldownStarted{OwnerID: ownerID, Ability: ability, Duration: duration})
}

// Remaining returns the remaining cooldown, 0 if none.
func (t *Tracker) Remaining(ownerID string, ability model.AbilityID) float64 {
	if e := t.lookup(ownerID, ability); e != nil {
		return e.remaining
	}
	return 0
}

// Total returns the full duration of the current cooldown, 0 if none.
func (t *Tracker) Total(ownerID string, ability model.AbilityID) float64 {
	if e := t.lookup(ownerID, ability); e != nil {
		return e.total
	}
	return 0
}

// Progress returns the elapsed fraction of the current cooldown in [0, 1].
// Returns 1 when the ability is ready.
func (t *Tracker) Progress(ownerID string, ability model.AbilityID) float64 {
	e := t.lookup(ownerID, ability)
	if e == nil || e.total <= 0 {
		return 1
	}
	return 1 - e.remaining/e.total
}

// IsOnCooldown reports remaining > 0.
func (t *Tracker) IsOnCooldown(ownerID string, ability model.AbilityID) bool {
	return t.Remaining(ownerID, ability) > 0
}

// Reduce shortens a running cooldown. Finishing it emits CooldownCompleted.
func (t *Tracker) Reduce(ownerID string, ability model.AbilityID, amount float64) {
	e := t.lookup(ownerID, ability)
	if e == nil {
		return
	}
	e.remaining -= amount
	if e.remaining <= 0 {
		t.delete(ownerID, ability)
		t.publisher.Publish(event.CooldownCompleted{OwnerID: ownerID, Ability: ability})
	}
}

// Reset clears a cooldown and emits CooldownCompleted if one was running.
func (t *Tracker) Reset(ownerID string, ability model.AbilityID) {
	if t.lookup(ownerID, ability) == nil {
		return
	}
	t.delete(ownerID, ability)
	t.publisher.Publish(event.CooldownCompleted{OwnerID: ownerID, Ability: ability})
}

// ResetAll clears every cooldown of an owner, emitting CooldownCompleted for each
// in ability id order.
func (t *Tracker) ResetAll(ownerID string) {
	owned := t.entries[ownerID]
	if len(owned) == 0 {
		return
	}
	ids := make([]model.AbilityID, 0, len(owned))
	for id := range owned {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	delete(t.entries, ownerID)
	for _, id := range ids {
		t.publisher.Publish(event.CooldownCompleted{OwnerID: ownerID, Ability: id})
	}
}

// Tick decrements every cooldown by dt. Entries that reach zero are removed
// after the sweep. Expiry through Tick is silent: no CooldownCompleted is emitted.
func (t *Tracker) Tick(dt float64) {
	type key struct {
		owner   string
		ability model.AbilityID
	}
	var expired []key

	for owner, owned := range t.entries {
		for ability, e := range owned {
			e.remaining -= dt
			if e.remaining <= 0 {
				expired = append(expired, key{owner, ability})
			}
		}
	}

	for _, k := range expired {
		t.delete(k.owner, k.ability)
	}
}

// Count returns the number of running cooldowns.
func (t *Tracker) Count() int {
	n := 0
	for _, owned := range t.entries {
		n += len(owned)
	}
	return n
}

func (t *Tracker) lookup(ownerID string, ability model.AbilityID) *entry {
	owned, ok := t.entries[ownerID]
	if !ok {
		return nil
	}
	return owned[ability]
}

func (t *Tracker) delete(ownerID string, ability model.AbilityID) {
	owned, ok := t.entries[ownerID]
	if !ok {
		return
	}
	delete(owned, ability)
	if len(owned) == 0 {
		delete(t.entries, ownerID)
	}
}
