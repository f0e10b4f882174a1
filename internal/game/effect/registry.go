package effect

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/udisondev/abilitycore/internal/game/stat"
	"github.com/udisondev/abilitycore/internal/model"
)

// ErrUnknownEffectType is returned by Create for unregistered type names.
var ErrUnknownEffectType = errors.New("unknown effect type")

// Spec is the data form of an effect, as read from content files.
type Spec struct {
	ID     model.EffectID
	Name   string
	Type   string
	Params map[string]string
}

// Factory builds an effect from its spec.
type Factory func(spec Spec, env Env) (Effect, error)

// registry maps effect type name → factory function.
// Populated by init() below.
var registry = map[string]Factory{}

// Register registers an effect factory by type name.
func Register(typeName string, factory Factory) {
	registry[typeName] = factory
}

// Types returns registered type names, sorted.
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds an effect using the factory registered for spec.Type.
func Create(spec Spec, env Env) (Effect, error) {
	factory, ok := registry[spec.Type]
	if !ok {
		return nil, fmt.Errorf("effect %s: %w: %s", spec.ID, ErrUnknownEffectType, spec.Type)
	}
	e, err := factory(spec, env)
	if err != nil {
		return nil, fmt.Errorf("effect %s (%s): %w", spec.ID, spec.Type, err)
	}
	return e, nil
}

func init() {
	Register("InstantDamage", newInstantDamageFromSpec)
	Register("InstantHeal", newInstantHealFromSpec)
	Register("DamageOverTime", newPeriodicDamageFromSpec)
	Register("HealOverTime", newPeriodicHealFromSpec)
	Register("StatModifier", newTimedStatModifierFromSpec)
}

func newInstantDamageFromSpec(spec Spec, env Env) (Effect, error) {
	r := params{spec: spec}
	p := DamageParams{
		ID:          spec.ID,
		Name:        spec.Name,
		Base:        r.float("base", 0),
		Type:        r.damageType("damage_type", model.DamagePhysical),
		ScalingStat: r.stat("scaling_stat", model.StatSpellPower),
		Scaling:     r.float("scaling", 0),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewInstantDamage(p, env), nil
}

func newInstantHealFromSpec(spec Spec, env Env) (Effect, error) {
	r := params{spec: spec}
	p := HealParams{
		ID:          spec.ID,
		Name:        spec.Name,
		Base:        r.float("base", 0),
		ScalingStat: r.stat("scaling_stat", model.StatSpellPower),
		Scaling:     r.float("scaling", 0),
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewInstantHeal(p, env), nil
}

func periodicFromSpec(spec Spec) (PeriodicParams, error) {
	r := params{spec: spec}
	p := PeriodicParams{
		ID:        spec.ID,
		Name:      spec.Name,
		Duration:  r.float("duration", 0),
		Interval:  r.float("interval", 1),
		PerTick:   r.float("per_tick", 0),
		Type:      r.damageType("damage_type", model.DamagePhysical),
		Stackable: r.bool("stackable", false),
		MaxStacks: r.int("max_stacks", 1),
		CanKill:   r.bool("can_kill", true),
	}
	if r.err == nil && p.Duration <= 0 {
		r.err = fmt.Errorf("duration must be positive, got %v", p.Duration)
	}
	return p, r.err
}

func newPeriodicDamageFromSpec(spec Spec, env Env) (Effect, error) {
	p, err := periodicFromSpec(spec)
	if err != nil {
		return nil, err
	}
	return NewPeriodicDamage(p, env), nil
}

func newPeriodicHealFromSpec(spec Spec, env Env) (Effect, error) {
	p, err := periodicFromSpec(spec)
	if err != nil {
		return nil, err
	}
	return NewPeriodicHeal(p, env), nil
}

func newTimedStatModifierFromSpec(spec Spec, _ Env) (Effect, error) {
	r := params{spec: spec}
	p := ModifierParams{
		ID:        spec.ID,
		Name:      spec.Name,
		Duration:  r.float("duration", 0),
		Stat:      r.stat("stat", ""),
		Kind:      r.modifierKind("kind", stat.ModFlat),
		Value:     r.float("value", 0),
		Priority:  r.int("priority", 0),
		Stackable: r.bool("stackable", false),
		MaxStacks: r.int("max_stacks", 1),
	}
	if r.err == nil && p.Stat == "" {
		r.err = errors.New("stat is required")
	}
	if r.err == nil && p.Duration <= 0 {
		r.err = fmt.Errorf("duration must be positive, got %v", p.Duration)
	}
	if r.err != nil {
		return nil, r.err
	}
	return NewTimedStatModifier(p), nil
}

// params reads typed values from Spec.Params, keeping the first error.
type params struct {
	spec Spec
	err  error
}

func (r *params) raw(key string) (string, bool) {
	v, ok := r.spec.Params[key]
	return v, ok && v != ""
}

func (r *params) fail(key, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("param %s=%q: %w", key, value, err)
	}
}

func (r *params) float(key string, def float64) float64 {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return f
}

func (r *params) int(key string, def int) int {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *params) bool(key string, def bool) bool {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *params) damageType(key string, def model.DamageType) model.DamageType {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	d, found := model.ParseDamageType(v)
	if !found {
		r.fail(key, v, errors.New("unknown damage type"))
		return def
	}
	return d
}

func (r *params) stat(key string, def model.StatID) model.StatID {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	return model.StatID(v)
}

func (r *params) modifierKind(key string, def stat.ModifierKind) stat.ModifierKind {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	k, found := stat.ParseModifierKind(v)
	if !found {
		r.fail(key, v, errors.New("unknown modifier kind"))
		return def
	}
	return k
}
