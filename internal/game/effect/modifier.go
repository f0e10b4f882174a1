package effect

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/game/stat"
	"github.com/udisondev/abilitycore/internal/model"
)

// ModifierParams configures TimedStatModifier.
type ModifierParams struct {
	ID        model.EffectID
	Name      string
	Duration  float64
	Stat      model.StatID
	Kind      stat.ModifierKind
	Value     float64 // per stack
	Priority  int
	Stackable bool
	MaxStacks int
}

// TimedStatModifier installs a stat modifier for its duration.
// The modifier value is Value × stacks and is re-installed when stacks change.
type TimedStatModifier struct {
	timed
	p ModifierParams

	target   actor.Target
	modifier *stat.Modifier
}

// NewTimedStatModifier creates a buff/debuff effect.
func NewTimedStatModifier(p ModifierParams) *TimedStatModifier {
	return &TimedStatModifier{
		timed: newTimed(p.ID, p.Name, p.Duration, p.Stackable, p.MaxStacks),
		p:     p,
	}
}

func (e *TimedStatModifier) Category() Category        { return CategoryDuration }
func (e *TimedStatModifier) CanApply(ctx Context) bool { return targetAlive(ctx) }

func (e *TimedStatModifier) Apply(ctx Context) Result {
	return Succeeded(e.p.Value, fmt.Sprintf("%s applied", e.p.Name))
}

// Modifier returns the installed modifier, nil when not on a target.
func (e *TimedStatModifier) Modifier() *stat.Modifier {
	return e.modifier
}

func (e *TimedStatModifier) OnApply(target actor.Target) {
	e.install(target)
}

func (e *TimedStatModifier) OnRemove(target actor.Target) {
	e.uninstall(target)
	e.target = nil
}

func (e *TimedStatModifier) AddStack() {
	before := e.stacks
	e.timed.AddStack()
	if e.stacks != before {
		e.reinstall()
	}
}

func (e *TimedStatModifier) RemoveStack() {
	before := e.stacks
	e.timed.RemoveStack()
	if e.stacks != before {
		e.reinstall()
	}
}

func (e *TimedStatModifier) Spawn() DurationEffect {
	return &TimedStatModifier{timed: e.timed.fresh(), p: e.p}
}

func (e *TimedStatModifier) install(target actor.Target) {
	m := stat.NewModifier(
		fmt.Sprintf("%s_%s", e.p.ID, target.ID()),
		string(e.p.ID),
		e.p.Stat,
		e.p.Kind,
		e.p.Value*float64(e.stacks),
	)
	m.Priority = e.p.Priority
	if !target.ApplyModifier(m) {
		slog.Debug("modifier target missing stat", "effect", e.p.ID, "stat", e.p.Stat, "target", target.ID())
		return
	}
	e.target = target
	e.modifier = m
}

func (e *TimedStatModifier) uninstall(target actor.Target) {
	if e.modifier == nil {
		return
	}
	target.RemoveModifier(e.modifier)
	e.modifier = nil
}

func (e *TimedStatModifier) reinstall() {
	if e.target == nil {
		return
	}
	target := e.target
	e.uninstall(target)
	e.install(target)
}
