package stat

import (
	"math"

	"github.com/udisondev/abilitycore/internal/model"
)

// PoolChangeFunc is called when a pool's current value changes.
type PoolChangeFunc func(kind model.ResourceKind, oldValue, newValue, maxValue float64)

// Pool is a spendable resource (health, mana, ...) with current in [0, max].
type Pool struct {
	kind      model.ResourceKind
	current   float64
	max       float64
	regenRate float64
	onChange  PoolChangeFunc
}

// NewPool creates a full pool.
func NewPool(kind model.ResourceKind, maxValue, regenRate float64, onChange PoolChangeFunc) *Pool {
	maxValue = math.Max(0, maxValue)
	return &Pool{
		kind:      kind,
		current:   maxValue,
		max:       maxValue,
		regenRate: regenRate,
		onChange:  onChange,
	}
}

// Kind returns the resource kind.
func (p *Pool) Kind() model.ResourceKind { return p.kind }

// Current returns the current value.
func (p *Pool) Current() float64 { return p.current }

// Max returns the maximum value.
func (p *Pool) Max() float64 { return p.max }

// RegenRate returns the regeneration per time unit.
func (p *Pool) RegenRate() float64 { return p.regenRate }

// SetRegenRate replaces the regeneration rate.
func (p *Pool) SetRegenRate(rate float64) { p.regenRate = rate }

// Percentage returns current/max in [0, 1]; 0 for an empty max.
func (p *Pool) Percentage() float64 {
	if p.max <= 0 {
		return 0
	}
	return p.current / p.max
}

// IsEmpty reports current <= 0.
func (p *Pool) IsEmpty() bool { return p.current <= 0 }

// IsFull reports current >= max.
func (p *Pool) IsFull() bool { return p.current >= p.max }

// SetMax changes the maximum and clamps current down when needed.
func (p *Pool) SetMax(v float64) {
	p.max = math.Max(0, v)
	if p.current > p.max {
		p.set(p.max)
	}
}

// HasEnough reports current >= amount.
func (p *Pool) HasEnough(amount float64) bool {
	return p.current >= amount
}

// TryConsume subtracts amount if affordable.
func (p *Pool) TryConsume(amount float64) bool {
	if !p.HasEnough(amount) {
		return false
	}
	p.set(p.current - amount)
	return true
}

// Consume subtracts amount, stopping at zero.
func (p *Pool) Consume(amount float64) {
	p.set(p.current - amount)
}

// Restore adds amount, stopping at max.
func (p *Pool) Restore(amount float64) {
	p.set(p.current + amount)
}

// Modify adds a signed delta.
func (p *Pool) Modify(delta float64) {
	p.set(p.current + delta)
}

// SetToMax fills the pool.
func (p *Pool) SetToMax() { p.set(p.max) }

// SetToZero empties the pool.
func (p *Pool) SetToZero() { p.set(0) }

// Tick regenerates regenRate*dt unless full.
func (p *Pool) Tick(dt float64) {
	if p.regenRate == 0 || p.IsFull() {
		return
	}
	p.Modify(p.regenRate * dt)
}

func (p *Pool) set(v float64) {
	old := p.current
	p.current = clamp(v, 0, p.max)
	if p.onChange != nil && math.Abs(old-p.current) > epsilon {
		p.onChange(p.kind, old, p.current, p.max)
	}
}
