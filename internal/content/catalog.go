package content

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/abilitycore/internal/entity"
	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/combo"
	"github.com/udisondev/abilitycore/internal/game/effect"
	"github.com/udisondev/abilitycore/internal/model"
)

// Catalog — собранный контент: эффекты, способности, комбо и шаблоны.
// Shared by every caster. НЕ модифицировать после Build.
type Catalog struct {
	effects   effect.Library
	abilities map[model.AbilityID]*ability.Ability
	order     []model.AbilityID
	combos    []*combo.Definition
	templates map[string]*Template
	names     []string
}

// Template is a built entity archetype.
type Template struct {
	ID        string
	Name      string
	Stats     []StatValue // sorted by stat id
	Pools     []Pool
	Abilities []*ability.Ability
}

type StatValue struct {
	ID    model.StatID
	Value float64
}

type Pool struct {
	Kind  model.ResourceKind
	Max   float64
	Regen float64
}

// Build validates p and constructs every definition with env.
// References are resolved by id: abilities to effects, combos to abilities
// and effects, templates to abilities.
func Build(p *Pack, env effect.Env) (*Catalog, error) {
	c := &Catalog{
		effects:   make(effect.Library, len(p.Effects)),
		abilities: make(map[model.AbilityID]*ability.Ability, len(p.Abilities)),
		templates: make(map[string]*Template, len(p.Templates)),
	}

	for _, def := range p.Effects {
		if err := c.addEffect(def, env); err != nil {
			return nil, err
		}
	}
	for _, def := range p.Abilities {
		if err := c.addAbility(def); err != nil {
			return nil, err
		}
	}
	for _, def := range p.Combos {
		if err := c.addCombo(def); err != nil {
			return nil, err
		}
	}
	for _, def := range p.Templates {
		if err := c.addTemplate(def); err != nil {
			return nil, err
		}
	}

	slog.Info("loaded content",
		"effects", len(c.effects),
		"abilities", len(c.abilities),
		"combos", len(c.combos),
		"templates", len(c.templates))

	return c, nil
}

// Effects returns the effect library keyed by id.
func (c *Catalog) Effects() effect.Library { return c.effects }

func (c *Catalog) Ability(id model.AbilityID) *ability.Ability { return c.abilities[id] }

// Abilities returns every ability in pack order.
func (c *Catalog) Abilities() []*ability.Ability {
	out := make([]*ability.Ability, len(c.order))
	for i, id := range c.order {
		out[i] = c.abilities[id]
	}
	return out
}

// Combos returns combo definitions in pack order.
func (c *Catalog) Combos() []*combo.Definition {
	return slices.Clone(c.combos)
}

func (c *Catalog) Template(id string) *Template { return c.templates[id] }

// TemplateIDs returns template ids in pack order.
func (c *Catalog) TemplateIDs() []string { return slices.Clone(c.names) }

// RegisterCombos registers every combo with t in pack order.
func (c *Catalog) RegisterCombos(t *combo.Tracker) error {
	for _, def := range c.combos {
		if _, err := t.Register(def); err != nil {
			return fmt.Errorf("registering combo %s: %w", def.ID, err)
		}
	}
	return nil
}

// Spawn creates an entity from a template. An empty id gets a UUID.
func (c *Catalog) Spawn(templateID, id string, team model.TeamID, publisher event.Publisher) (*entity.Entity, error) {
	tmpl := c.templates[templateID]
	if tmpl == nil {
		return nil, fmt.Errorf("spawning %q: %w: unknown template %s", id, ErrInvalidContent, templateID)
	}

	e := entity.New(id, tmpl.Name, team, publisher)
	for _, s := range tmpl.Stats {
		if err := e.RegisterStat(s.ID, s.Value); err != nil {
			return nil, fmt.Errorf("spawning %s: %w", templateID, err)
		}
	}
	for _, p := range tmpl.Pools {
		if err := e.AddPool(p.Kind, p.Max, p.Regen); err != nil {
			return nil, fmt.Errorf("spawning %s: %w", templateID, err)
		}
	}
	for _, a := range tmpl.Abilities {
		if err := e.Learn(a); err != nil {
			return nil, fmt.Errorf("spawning %s: %w", templateID, err)
		}
	}
	return e, nil
}

func (c *Catalog) addEffect(def EffectDef, env effect.Env) error {
	id, err := model.NewEffectID(def.ID)
	if err != nil {
		return fmt.Errorf("effect %q: %w", def.ID, err)
	}
	if _, dup := c.effects[id]; dup {
		return fmt.Errorf("effect %s: %w: duplicate id", id, ErrInvalidContent)
	}
	e, err := effect.Create(effect.Spec{
		ID:     id,
		Name:   nameOr(def.Name, def.ID),
		Type:   def.Type,
		Params: def.Params,
	}, env)
	if err != nil {
		return err
	}
	c.effects[id] = e
	return nil
}

func (c *Catalog) addAbility(def AbilityDef) error {
	id, err := model.NewAbilityID(def.ID)
	if err != nil {
		return fmt.Errorf("ability %q: %w", def.ID, err)
	}
	if _, dup := c.abilities[id]; dup {
		return fmt.Errorf("ability %s: %w: duplicate id", id, ErrInvalidContent)
	}

	d, err := definition(def)
	if err != nil {
		return fmt.Errorf("ability %s: %w", id, err)
	}

	effects := make([]effect.Effect, 0, len(def.Effects))
	for _, ref := range def.Effects {
		e := c.effects[model.EffectID(ref)]
		if e == nil {
			return fmt.Errorf("ability %s: %w: unknown effect %s", id, ErrInvalidContent, ref)
		}
		effects = append(effects, e)
	}

	a := ability.New(id, nameOr(def.Name, def.ID), d, effects)
	if def.Description != "" {
		a = a.WithDescription(def.Description)
	}
	c.abilities[id] = a
	c.order = append(c.order, id)
	return nil
}

func definition(def AbilityDef) (ability.Definition, error) {
	d := ability.DefaultDefinition()

	if def.Targeting != "" {
		mode, ok := ability.ParseTargetingMode(def.Targeting)
		if !ok {
			return d, fmt.Errorf("%w: unknown targeting %q", ErrInvalidContent, def.Targeting)
		}
		d.Targeting = mode
	}

	team, ok := model.ParseTeamRelation(def.Targets.Team)
	if !ok {
		return d, fmt.Errorf("%w: unknown team relation %q", ErrInvalidContent, def.Targets.Team)
	}
	d.Targets = ability.TargetRules{
		Team:        team,
		IncludeDead: def.Targets.IncludeDead,
		IncludeSelf: def.Targets.IncludeSelf,
		MaxTargets:  def.Targets.MaxTargets,
	}

	for _, cost := range def.Costs {
		kind, ok := model.ParseResourceKind(cost.Kind)
		if !ok {
			return d, fmt.Errorf("%w: unknown resource %q", ErrInvalidContent, cost.Kind)
		}
		if cost.Amount < 0 {
			return d, fmt.Errorf("%w: negative %s cost", ErrInvalidContent, kind)
		}
		d.Costs = append(d.Costs, model.Cost{Kind: kind, Amount: cost.Amount})
	}

	if def.Cooldown < 0 || def.Range < 0 || def.AreaRadius < 0 {
		return d, fmt.Errorf("%w: cooldown, range and area_radius must not be negative", ErrInvalidContent)
	}
	d.Cooldown = def.Cooldown
	d.CastTime = def.CastTime
	d.Range = def.Range
	d.AreaRadius = def.AreaRadius
	d.Channeled = def.Channeled
	d.ChannelDuration = def.ChannelDuration
	d.ChargeRestoreTime = def.ChargeRestoreTime
	if def.ConeAngle != nil {
		d.ConeAngle = *def.ConeAngle
	}
	if def.CanCastWhileMoving != nil {
		d.CanCastWhileMoving = *def.CanCastWhileMoving
	}
	if def.MaxCharges != nil {
		d.MaxCharges = *def.MaxCharges
	}
	return d, nil
}

func (c *Catalog) addCombo(def ComboDef) error {
	cd := &combo.Definition{
		ID:               def.ID,
		Name:             nameOr(def.Name, def.ID),
		StepMultipliers:  slices.Clone(def.StepMultipliers),
		TimeWindow:       def.TimeWindow,
		FinisherEffectID: model.EffectID(def.FinisherEffect),
	}
	for _, ref := range def.Sequence {
		if c.abilities[model.AbilityID(ref)] == nil {
			return fmt.Errorf("combo %s: %w: unknown ability %s", def.ID, ErrInvalidContent, ref)
		}
		cd.Sequence = append(cd.Sequence, model.AbilityID(ref))
	}
	for _, ref := range def.BonusEffects {
		if c.effects[model.EffectID(ref)] == nil {
			return fmt.Errorf("combo %s: %w: unknown effect %s", def.ID, ErrInvalidContent, ref)
		}
		cd.BonusEffectIDs = append(cd.BonusEffectIDs, model.EffectID(ref))
	}
	if def.FinisherEffect != "" && c.effects[cd.FinisherEffectID] == nil {
		return fmt.Errorf("combo %s: %w: unknown effect %s", def.ID, ErrInvalidContent, def.FinisherEffect)
	}
	if err := cd.Validate(); err != nil {
		return err
	}
	c.combos = append(c.combos, cd)
	return nil
}

func (c *Catalog) addTemplate(def TemplateDef) error {
	if def.ID == "" {
		return fmt.Errorf("template: %w: empty id", ErrInvalidContent)
	}
	if _, dup := c.templates[def.ID]; dup {
		return fmt.Errorf("template %s: %w: duplicate id", def.ID, ErrInvalidContent)
	}

	tmpl := &Template{ID: def.ID, Name: nameOr(def.Name, def.ID)}

	for name, value := range def.Stats {
		id, err := model.NewStatID(name)
		if err != nil {
			return fmt.Errorf("template %s: %w", def.ID, err)
		}
		if id == model.StatHealth {
			return fmt.Errorf("template %s: %w: health is a pool, use max_health", def.ID, ErrInvalidContent)
		}
		tmpl.Stats = append(tmpl.Stats, StatValue{ID: id, Value: value})
	}
	slices.SortFunc(tmpl.Stats, func(a, b StatValue) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	for _, p := range def.Pools {
		kind, ok := model.ParseResourceKind(p.Kind)
		if !ok {
			return fmt.Errorf("template %s: %w: unknown resource %q", def.ID, ErrInvalidContent, p.Kind)
		}
		tmpl.Pools = append(tmpl.Pools, Pool{Kind: kind, Max: p.Max, Regen: p.Regen})
	}

	for _, ref := range def.Abilities {
		a := c.abilities[model.AbilityID(ref)]
		if a == nil {
			return fmt.Errorf("template %s: %w: unknown ability %s", def.ID, ErrInvalidContent, ref)
		}
		tmpl.Abilities = append(tmpl.Abilities, a)
	}

	c.templates[def.ID] = tmpl
	c.names = append(c.names, def.ID)
	return nil
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
