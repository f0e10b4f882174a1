package stat

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/abilitycore/internal/model"
)

// ErrDuplicateStat is returned when a stat id is registered twice.
var ErrDuplicateStat = errors.New("stat already registered")

// ChangeFunc is called when a stat's derived value changes.
type ChangeFunc func(id model.StatID, oldValue, newValue float64)

// Option configures a stat at registration.
type Option func(*Stat)

// WithMin sets the lower clamp bound.
func WithMin(v float64) Option {
	return func(s *Stat) { s.min = v }
}

// WithMax sets the upper clamp bound.
func WithMax(v float64) Option {
	return func(s *Stat) { s.max = v }
}

// WithBounds sets both clamp bounds.
func WithBounds(lo, hi float64) Option {
	return func(s *Stat) {
		s.min = lo
		s.max = hi
	}
}

// Container holds the named stats of one entity.
// Reads of unknown stats return 0; writes to unknown stats are ignored.
//
// Not safe for concurrent use.
type Container struct {
	stats    map[model.StatID]*Stat
	order    []model.StatID
	onChange ChangeFunc
}

// NewContainer creates an empty container. onChange may be nil.
func NewContainer(onChange ChangeFunc) *Container {
	return &Container{
		stats:    make(map[model.StatID]*Stat, 16),
		onChange: onChange,
	}
}

// Register adds a stat with the given base value.
func (c *Container) Register(id model.StatID, base float64, opts ...Option) error {
	if _, exists := c.stats[id]; exists {
		return fmt.Errorf("registering %s: %w", id, ErrDuplicateStat)
	}
	s := newStat(id, base)
	for _, opt := range opts {
		opt(s)
	}
	c.stats[id] = s
	c.order = append(c.order, id)
	return nil
}

// MustRegister is like Register but panics on a duplicate id.
func (c *Container) MustRegister(id model.StatID, base float64, opts ...Option) {
	if err := c.Register(id, base, opts...); err != nil {
		panic(err)
	}
}

// Has reports whether id is registered.
func (c *Container) Has(id model.StatID) bool {
	_, ok := c.stats[id]
	return ok
}

// Get returns the stat or nil.
func (c *Container) Get(id model.StatID) *Stat {
	return c.stats[id]
}

// IDs returns registered stat ids in registration order.
func (c *Container) IDs() []model.StatID {
	out := make([]model.StatID, len(c.order))
	copy(out, c.order)
	return out
}

// Value returns the derived value of id, or 0 if unknown.
func (c *Container) Value(id model.StatID) float64 {
	if s, ok := c.stats[id]; ok {
		return s.Value()
	}
	return 0
}

// Base returns the base value of id, or 0 if unknown.
func (c *Container) Base(id model.StatID) float64 {
	if s, ok := c.stats[id]; ok {
		return s.Base()
	}
	return 0
}

// SetBase replaces the base value.
func (c *Container) SetBase(id model.StatID, v float64) {
	s, ok := c.stats[id]
	if !ok {
		return
	}
	c.mutate(s, func() { s.setBase(v) })
}

// ModifyBase adds delta to the base value.
func (c *Container) ModifyBase(id model.StatID, delta float64) {
	if s, ok := c.stats[id]; ok {
		c.SetBase(id, s.base+delta)
	}
}

// AddModifier attaches m to the stat named by m.Stat.
// Returns false if that stat is not registered.
func (c *Container) AddModifier(m *Modifier) bool {
	s, ok := c.stats[m.Stat]
	if !ok {
		return false
	}
	c.mutate(s, func() { s.add(m) })
	return true
}

// RemoveModifier detaches m by identity.
func (c *Container) RemoveModifier(m *Modifier) bool {
	s, ok := c.stats[m.Stat]
	if !ok {
		return false
	}
	var removed bool
	c.mutate(s, func() { removed = s.remove(m) })
	return removed
}

// HasModifier reports whether a modifier with the given id is attached to any stat.
func (c *Container) HasModifier(modifierID string) bool {
	for _, id := range c.order {
		for _, m := range c.stats[id].modifiers {
			if m.ID == modifierID {
				return true
			}
		}
	}
	return false
}

// RemoveModifiersBySource detaches every modifier with the given source id
// across all stats and returns how many were removed.
func (c *Container) RemoveModifiersBySource(sourceID string) int {
	total := 0
	for _, id := range c.order {
		s := c.stats[id]
		c.mutate(s, func() { total += s.removeBySource(sourceID) })
	}
	return total
}

// ClearModifiers detaches all modifiers of one stat.
func (c *Container) ClearModifiers(id model.StatID) {
	s, ok := c.stats[id]
	if !ok {
		return
	}
	c.mutate(s, func() { s.removeWhere(func(*Modifier) bool { return true }) })
}

// ClearExpired drops expired modifiers from every stat.
func (c *Container) ClearExpired() int {
	total := 0
	for _, id := range c.order {
		s := c.stats[id]
		c.mutate(s, func() { total += s.removeExpired() })
	}
	return total
}

// Tick advances timed modifiers by dt and sweeps the expired ones.
func (c *Container) Tick(dt float64) {
	for _, id := range c.order {
		for _, m := range c.stats[id].modifiers {
			m.advance(dt)
		}
	}
	c.ClearExpired()
}

// CalculateModifiedValue returns what id would evaluate to with a different
// base, without changing any state. Returns base for unknown ids.
func (c *Container) CalculateModifiedValue(id model.StatID, base float64) float64 {
	s, ok := c.stats[id]
	if !ok {
		return base
	}
	return s.compute(base)
}

// mutate runs fn and notifies if the derived value moved by more than epsilon.
func (c *Container) mutate(s *Stat, fn func()) {
	old := s.Value()
	fn()
	updated := s.Value()
	if c.onChange != nil && math.Abs(old-updated) > epsilon {
		c.onChange(s.id, old, updated)
	}
}
