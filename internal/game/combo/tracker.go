package combo

import (
	"log/slog"
	"sort"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/model"
)

// AbilityBook is what Available needs to know about a caster.
type AbilityBook interface {
	HasAbility(id model.AbilityID) bool
}

type progress struct {
	combo     *Definition
	step      int // 0-based index of the last matched ability
	remaining float64
}

// State is a read-only view of a caster's progress.
type State struct {
	Combo     *Definition
	Step      int // 1-based
	Remaining float64
}

// Tracker follows each caster through at most one combo at a time.
// Registration order is significant: when several combos share a first
// ability, the first registered wins.
//
// Not safe for concurrent use.
type Tracker struct {
	combos    []*Definition
	active    map[string]*progress
	publisher event.Publisher
}

// NewTracker creates a tracker with no combos. A nil publisher discards events.
func NewTracker(publisher event.Publisher) *Tracker {
	return &Tracker{
		active:    make(map[string]*progress),
		publisher: event.OrDiscard(publisher),
	}
}

// Register adds a combo. Returns false if the id is already registered.
func (t *Tracker) Register(def *Definition) (bool, error) {
	if err := def.Validate(); err != nil {
		return false, err
	}
	for _, existing := range t.combos {
		if existing.ID == def.ID {
			return false, nil
		}
	}
	t.combos = append(t.combos, def)
	return true, nil
}

// Combos returns registered combos in registration order.
func (t *Tracker) Combos() []*Definition {
	out := make([]*Definition, len(t.combos))
	copy(out, t.combos)
	return out
}

// RegisterCast advances, completes, drops, or starts the caster's combo.
func (t *Tracker) RegisterCast(casterID string, ability model.AbilityID) {
	p, tracking := t.active[casterID]
	if !tracking {
		t.tryStart(casterID, ability)
		return
	}

	next := p.step + 1
	if next >= p.combo.Len() || p.combo.Sequence[next] != ability {
		delete(t.active, casterID)
		t.publisher.Publish(event.ComboDropped{CasterID: casterID, ComboID: p.combo.ID, Reason: ReasonWrongAbility})
		t.tryStart(casterID, ability)
		return
	}

	p.step = next
	p.remaining = p.combo.TimeWindow
	t.publisher.Publish(event.ComboProgress{CasterID: casterID, ComboID: p.combo.ID, Step: next + 1, Total: p.combo.Len()})

	if next == p.combo.Len()-1 {
		t.complete(casterID, p.combo)
	}
}

// Check is a non-mutating peek: if the caster is tracking a combo whose next
// expected ability is ability, it returns that step's multiplier and, on the
// final step, the bonus effect ids.
func (t *Tracker) Check(casterID string, ability model.AbilityID) Result {
	p, ok := t.active[casterID]
	if !ok {
		return None
	}
	next := p.step + 1
	if next >= p.combo.Len() || p.combo.Sequence[next] != ability {
		return None
	}

	res := Result{
		IsCombo:    true,
		Combo:      p.combo,
		Step:       next + 1,
		Multiplier: p.combo.StepMultiplier(next),
	}
	if next == p.combo.Len()-1 {
		res.BonusEffectIDs = append([]model.EffectID(nil), p.combo.BonusEffectIDs...)
	}
	return res
}

// Available returns the caster's active combo, or every combo whose first
// ability the caster knows.
func (t *Tracker) Available(casterID string, book AbilityBook) []*Definition {
	if p, ok := t.active[casterID]; ok {
		return []*Definition{p.combo}
	}
	var out []*Definition
	for _, c := range t.combos {
		if book.HasAbility(c.Sequence[0]) {
			out = append(out, c)
		}
	}
	return out
}

// State returns the caster's progress.
func (t *Tracker) State(casterID string) (State, bool) {
	p, ok := t.active[casterID]
	if !ok {
		return State{}, false
	}
	return State{Combo: p.combo, Step: p.step + 1, Remaining: p.remaining}, true
}

// Reset drops the caster's combo, emitting ComboDropped("reset") if one was active.
func (t *Tracker) Reset(casterID string) {
	p, ok := t.active[casterID]
	if !ok {
		return
	}
	delete(t.active, casterID)
	t.publisher.Publish(event.ComboDropped{CasterID: casterID, ComboID: p.combo.ID, Reason: ReasonReset})
}

// Tick shrinks every window by dt and drops the trackers that ran out,
// in caster id order.
func (t *Tracker) Tick(dt float64) {
	var expired []string
	for casterID, p := range t.active {
		p.remaining -= dt
		if p.remaining <= 0 {
			expired = append(expired, casterID)
		}
	}
	sort.Strings(expired)

	for _, casterID := range expired {
		p := t.active[casterID]
		delete(t.active, casterID)
		t.publisher.Publish(event.ComboDropped{CasterID: casterID, ComboID: p.combo.ID, Reason: ReasonTimeout})
		slog.Debug("combo timed out", "caster", casterID, "combo", p.combo.ID, "step", p.step+1)
	}
}

// Count returns the number of casters currently tracking a combo.
func (t *Tracker) Count() int {
	return len(t.active)
}

func (t *Tracker) tryStart(casterID string, ability model.AbilityID) {
	for _, c := range t.combos {
		if c.Sequence[0] != ability {
			continue
		}
		t.active[casterID] = &progress{combo: c, remaining: c.TimeWindow}
		t.publisher.Publish(event.ComboProgress{CasterID: casterID, ComboID: c.ID, Step: 1, Total: c.Len()})
		if c.Len() == 1 {
			t.complete(casterID, c)
		}
		return
	}
}

func (t *Tracker) complete(casterID string, c *Definition) {
	delete(t.active, casterID)
	total := c.TotalMultiplier()
	t.publisher.Publish(event.ComboCompleted{CasterID: casterID, ComboID: c.ID, TotalMultiplier: total})
	slog.Debug("combo completed", "caster", casterID, "combo", c.ID, "multiplier", total)
}
