package stat

import (
	"math"
	"sort"

	"github.com/udisondev/abilitycore/internal/model"
)

// epsilon below which value changes are not reported.
const epsilon = 1e-9

// Stat is a single named value: a base plus modifiers, clamped to [min, max].
// The derived value is cached and recomputed lazily after any mutation.
type Stat struct {
	id        model.StatID
	base      float64
	min       float64
	max       float64
	modifiers []*Modifier

	cached float64
	dirty  bool
}

func newStat(id model.StatID, base float64) *Stat {
	return &Stat{
		id:    id,
		base:  base,
		min:   -math.MaxFloat64,
		max:   math.MaxFloat64,
		dirty: true,
	}
}

// ID returns the stat id.
func (s *Stat) ID() model.StatID { return s.id }

// Base returns the unmodified base value.
func (s *Stat) Base() float64 { return s.base }

// Min returns the lower clamp bound.
func (s *Stat) Min() float64 { return s.min }

// Max returns the upper clamp bound.
func (s *Stat) Max() float64 { return s.max }

// Value returns the derived value, recomputing it if dirty.
func (s *Stat) Value() float64 {
	if s.dirty {
		s.cached = s.compute(s.base)
		s.dirty = false
	}
	return s.cached
}

// Modifiers returns a copy of the attached modifiers in priority order.
func (s *Stat) Modifiers() []*Modifier {
	out := make([]*Modifier, len(s.modifiers))
	copy(out, s.modifiers)
	return out
}

// Invalidate forces recomputation on the next Value call.
func (s *Stat) Invalidate() {
	s.dirty = true
}

func (s *Stat) setBase(v float64) bool {
	if math.Abs(s.base-v) <= epsilon {
		return false
	}
	s.base = v
	s.dirty = true
	return true
}

func (s *Stat) add(m *Modifier) {
	s.modifiers = append(s.modifiers, m)
	// stable: equal priorities keep insertion order
	sort.SliceStable(s.modifiers, func(i, j int) bool {
		return s.modifiers[i].Priority < s.modifiers[j].Priority
	})
	s.dirty = true
}

func (s *Stat) remove(m *Modifier) bool {
	for i, existing := range s.modifiers {
		if existing == m {
			s.modifiers = append(s.modifiers[:i], s.modifiers[i+1:]...)
			s.dirty = true
			return true
		}
	}
	return false
}

func (s *Stat) removeBySource(sourceID string) int {
	return s.removeWhere(func(m *Modifier) bool { return m.SourceID == sourceID })
}

func (s *Stat) removeExpired() int {
	return s.removeWhere((*Modifier).IsExpired)
}

func (s *Stat) removeWhere(match func(*Modifier) bool) int {
	kept := s.modifiers[:0]
	removed := 0
	for _, m := range s.modifiers {
		if match(m) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	for i := len(kept); i < len(s.modifiers); i++ {
		s.modifiers[i] = nil
	}
	s.modifiers = kept
	if removed > 0 {
		s.dirty = true
	}
	return removed
}

// compute folds the non-expired modifiers over base.
// Flat and PercentAdd sum, PercentMultiply compounds, the last Override in
// priority order replaces everything. The result is clamped.
func (s *Stat) compute(base float64) float64 {
	var (
		flat        float64
		percentAdd  float64
		percentMul  = 1.0
		override    float64
		hasOverride bool
	)

	for _, m := range s.modifiers {
		if m.expired {
			continue
		}
		switch m.Kind {
		case ModFlat:
			flat += m.Value
		case ModPercentAdd:
			percentAdd += m.Value
		case ModPercentMultiply:
			percentMul *= 1 + m.Value
		case ModOverride:
			override = m.Value
			hasOverride = true
		}
	}

	v := (base + flat) * (1 + percentAdd) * percentMul
	if hasOverride {
		v = override
	}
	return clamp(v, s.min, s.max)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
