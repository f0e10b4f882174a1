package effect

import "github.com/udisondev/abilitycore/internal/model"

// timed holds the lifetime and stack state shared by every duration effect.
type timed struct {
	id        model.EffectID
	name      string
	duration  float64
	remaining float64
	stackable bool
	maxStacks int
	stacks    int
}

func newTimed(id model.EffectID, name string, duration float64, stackable bool, maxStacks int) timed {
	if maxStacks < 1 {
		maxStacks = 1
	}
	return timed{
		id:        id,
		name:      name,
		duration:  duration,
		remaining: duration,
		stackable: stackable,
		maxStacks: maxStacks,
		stacks:    1,
	}
}

// fresh returns the same configuration with reset runtime state.
func (t timed) fresh() timed {
	return newTimed(t.id, t.name, t.duration, t.stackable, t.maxStacks)
}

func (t *timed) ID() model.EffectID { return t.id }
func (t *timed) Name() string       { return t.name }
func (t *timed) Duration() float64  { return t.duration }
func (t *timed) Remaining() float64 { return t.remaining }
func (t *timed) IsExpired() bool    { return t.remaining <= 0 }
func (t *timed) Tick(dt float64)    { t.remaining -= dt }
func (t *timed) Refresh()           { t.remaining = t.duration }
func (t *timed) Stackable() bool    { return t.stackable }
func (t *timed) MaxStacks() int     { return t.maxStacks }
func (t *timed) Stacks() int        { return t.stacks }

func (t *timed) AddStack() {
	if t.stacks < t.maxStacks {
		t.stacks++
	}
}

func (t *timed) RemoveStack() {
	if t.stacks > 1 {
		t.stacks--
	}
}

// periodic adds the interval accumulator.
type periodic struct {
	timed
	interval      float64
	sinceLastTick float64
}

func newPeriodic(id model.EffectID, name string, duration, interval float64, stackable bool, maxStacks int) periodic {
	if interval <= 0 {
		interval = 1
	}
	return periodic{
		timed:    newTimed(id, name, duration, stackable, maxStacks),
		interval: interval,
	}
}

func (p periodic) freshPeriodic() periodic {
	return periodic{timed: p.timed.fresh(), interval: p.interval}
}

func (p *periodic) TickInterval() float64  { return p.interval }
func (p *periodic) SinceLastTick() float64 { return p.sinceLastTick }

func (p *periodic) Tick(dt float64) {
	p.timed.Tick(dt)
	p.sinceLastTick += dt
}

func (p *periodic) resetAccumulator() {
	p.sinceLastTick = 0
}
