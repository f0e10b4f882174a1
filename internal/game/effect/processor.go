package effect

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/model"
)

// ActiveEffect tracks a running timed effect on a target.
// Created when a cast installs a duration effect and stored in Processor.
type ActiveEffect struct {
	Effect DurationEffect
	Target actor.Target
	Ctx    Context

	removed bool
}

// Processor applies instant effects and owns timed effects per target.
// Targets are ticked in the order they first received an effect.
//
// Not safe for concurrent use: the engine drives it from a single goroutine.
type Processor struct {
	byTarget  map[string][]*ActiveEffect
	order     []string
	publisher event.Publisher
}

// NewProcessor creates an empty processor. A nil publisher discards events.
func NewProcessor(publisher event.Publisher) *Processor {
	return &Processor{
		byTarget:  make(map[string][]*ActiveEffect),
		publisher: event.OrDiscard(publisher),
	}
}

// ApplyInstant resolves e against ctx.Target.
// Returns a Failed result without side effects if the effect cannot apply.
func (p *Processor) ApplyInstant(e Effect, ctx Context) Result {
	if ctx.Target == nil || !e.CanApply(ctx) {
		return Failed("Effect conditions not met")
	}

	res := e.Apply(ctx)
	p.publisher.Publish(event.EffectApplied{
		SourceID: ctx.SourceID(),
		TargetID: ctx.Target.ID(),
		Effect:   e.ID(),
		Name:     e.Name(),
		Outcome:  res.Outcome,
		Value:    res.Value,
	})
	return res
}

// ApplyDuration installs e on target.
//
// Stacking rules (same effect id already active):
//   - stackable and below max stacks → add a stack and refresh
//   - otherwise → refresh duration only
//
// A new instance gets OnApply and emits EffectApplied. Use Spawn on shared
// definitions so each target owns its own instance.
func (p *Processor) ApplyDuration(e DurationEffect, target actor.Target, ctx Context) Result {
	ctx.Target = target

	for _, existing := range p.byTarget[target.ID()] {
		if existing.Effect.ID() != e.ID() {
			continue
		}
		if existing.Effect.Stackable() && existing.Effect.Stacks() < existing.Effect.MaxStacks() {
			existing.Effect.AddStack()
			existing.Effect.Refresh()
			return Succeeded(float64(existing.Effect.Stacks()), fmt.Sprintf("%s stacked", e.Name()))
		}
		existing.Effect.Refresh()
		return Succeeded(float64(existing.Effect.Stacks()), fmt.Sprintf("%s refreshed", e.Name()))
	}

	e.OnApply(target)

	if _, tracked := p.byTarget[target.ID()]; !tracked {
		p.order = append(p.order, target.ID())
	}
	p.byTarget[target.ID()] = append(p.byTarget[target.ID()], &ActiveEffect{
		Effect: e,
		Target: target,
		Ctx:    ctx,
	})

	p.publisher.Publish(event.EffectApplied{
		SourceID: ctx.SourceID(),
		TargetID: target.ID(),
		Effect:   e.ID(),
		Name:     e.Name(),
		Outcome:  model.OutcomeNormal,
	})

	slog.Debug("effect installed",
		"effect", e.ID(),
		"target", target.ID(),
		"duration", e.Duration())

	return Succeeded(1, fmt.Sprintf("%s applied", e.Name()))
}

// Remove takes the effect with the given id off target.
// Returns false if it was not active.
func (p *Processor) Remove(target actor.Target, id model.EffectID) bool {
	for _, ae := range p.byTarget[target.ID()] {
		if ae.Effect.ID() == id && !ae.removed {
			p.detach(ae)
			p.compact(target.ID())
			return true
		}
	}
	return false
}

// Clear removes every effect from target, calling OnRemove for each.
func (p *Processor) Clear(target actor.Target) {
	for _, ae := range p.snapshot(target.ID()) {
		if !ae.removed {
			p.detach(ae)
		}
	}
	p.compact(target.ID())
}

// Active returns the effects currently on target in installation order.
func (p *Processor) Active(targetID string) []DurationEffect {
	list := p.byTarget[targetID]
	result := make([]DurationEffect, 0, len(list))
	for _, ae := range list {
		result = append(result, ae.Effect)
	}
	return result
}

// Get returns the active effect with id on target, or nil.
func (p *Processor) Get(targetID string, id model.EffectID) DurationEffect {
	for _, ae := range p.byTarget[targetID] {
		if ae.Effect.ID() == id {
			return ae.Effect
		}
	}
	return nil
}

// Has reports whether id is active on target.
func (p *Processor) Has(targetID string, id model.EffectID) bool {
	return p.Get(targetID, id) != nil
}

// Count returns the number of active effects on target.
func (p *Processor) Count(targetID string) int {
	return len(p.byTarget[targetID])
}

// Tick advances every active effect by dt and fires periodic hooks whose
// interval elapsed. Expired effects are removed after the sweep.
//
// Periodic hooks may kill targets and trigger removals through event
// handlers; entries removed mid-sweep are skipped.
func (p *Processor) Tick(dt float64) {
	targets := make([]string, len(p.order))
	copy(targets, p.order)

	for _, id := range targets {
		for _, ae := range p.snapshot(id) {
			if ae.removed {
				continue
			}
			ae.Effect.Tick(dt)
			if pe, ok := ae.Effect.(PeriodicEffect); ok && pe.SinceLastTick() >= pe.TickInterval() {
				pe.OnTick(ae.Ctx)
			}
		}
	}

	for _, id := range targets {
		for _, ae := range p.snapshot(id) {
			if !ae.removed && ae.Effect.IsExpired() {
				p.detach(ae)
			}
		}
		p.compact(id)
	}
}

func (p *Processor) snapshot(targetID string) []*ActiveEffect {
	list := make([]*ActiveEffect, len(p.byTarget[targetID]))
	copy(list, p.byTarget[targetID])
	return list
}

// detach runs OnRemove and emits EffectRemoved. The entry stays in the slice
// until compact.
func (p *Processor) detach(ae *ActiveEffect) {
	ae.removed = true
	ae.Effect.OnRemove(ae.Target)
	p.publisher.Publish(event.EffectRemoved{
		TargetID: ae.Target.ID(),
		Effect:   ae.Effect.ID(),
	})
	slog.Debug("effect removed", "effect", ae.Effect.ID(), "target", ae.Target.ID())
}

// compact drops removed entries and forgets targets without effects.
func (p *Processor) compact(targetID string) {
	list, ok := p.byTarget[targetID]
	if !ok {
		return
	}
	n := 0
	for _, ae := range list {
		if !ae.removed {
			list[n] = ae
			n++
		}
	}
	for i := n; i < len(list); i++ {
		list[i] = nil
	}
	if n > 0 {
		p.byTarget[targetID] = list[:n]
		return
	}

	delete(p.byTarget, targetID)
	for i, id := range p.order {
		if id == targetID {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}
