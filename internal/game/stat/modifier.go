package stat

import "github.com/udisondev/abilitycore/internal/model"

// ModifierKind defines how a modifier folds into a stat value.
type ModifierKind int8

const (
	ModFlat            ModifierKind = iota // Additive bonus (e.g. +10 armor)
	ModPercentAdd                          // Summed percentages (0.1 + 0.2 = +30%)
	ModPercentMultiply                     // Compounding percentages, product of (1+v)
	ModOverride                            // Replaces the computed value
)

var kindNames = [...]string{"flat", "percent_add", "percent_multiply", "override"}

func (k ModifierKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseModifierKind parses the names returned by String.
func ParseModifierKind(s string) (ModifierKind, bool) {
	for i, name := range kindNames {
		if name == s {
			return ModifierKind(i), true
		}
	}
	return 0, false
}

// Modifier represents a single stat modification.
// Multiple modifiers can stack on the same stat. A stat holds modifiers by
// pointer, so removal is by identity: keep the pointer returned to you.
type Modifier struct {
	ID       string
	SourceID string
	Stat     model.StatID
	Kind     ModifierKind
	Value    float64
	Priority int

	// Lifetime > 0 makes the modifier expire after that many time units of
	// Container.Tick. Zero means it lives until removed.
	Lifetime float64
	expired  bool
}

// NewModifier creates a permanent modifier.
func NewModifier(id, sourceID string, stat model.StatID, kind ModifierKind, value float64) *Modifier {
	return &Modifier{ID: id, SourceID: sourceID, Stat: stat, Kind: kind, Value: value}
}

// IsExpired returns true once a timed modifier ran out or Expire was called.
func (m *Modifier) IsExpired() bool {
	return m.expired
}

// Expire marks the modifier expired. Stats ignore it from now on
// and ClearExpired drops it.
func (m *Modifier) Expire() {
	m.expired = true
}

// advance returns true if the modifier expired during this step.
func (m *Modifier) advance(dt float64) bool {
	if m.Lifetime <= 0 || m.expired {
		return false
	}
	m.Lifetime -= dt
	if m.Lifetime <= 0 {
		m.expired = true
		return true
	}
	return false
}
