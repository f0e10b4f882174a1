package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/combo"
	"github.com/udisondev/abilitycore/internal/game/effect"
	"github.com/udisondev/abilitycore/internal/model"
)

const sample = `
effects:
  - id: fireball_hit
    name: Fireball
    type: InstantDamage
    params: {base: "30", damage_type: fire, scaling: "0.5"}
  - id: burn
    type: DamageOverTime
    params: {duration: "4", interval: "1", per_tick: "5", damage_type: fire}
  - id: mend
    type: InstantHeal
    params: {base: "20"}
abilities:
  - id: fireball
    name: Fireball
    description: Hurls a ball of fire.
    targeting: SingleTarget
    cooldown: 2
    range: 30
    costs: [{kind: mana, amount: 15}]
    effects: [fireball_hit, burn]
  - id: nova
    targeting: AreaOfEffect
    area_radius: 8
    targets: {team: enemies, max_targets: 3}
    effects: [fireball_hit]
  - id: mend
    targeting: Self
    targets: {team: self}
    can_cast_while_moving: false
    effects: [mend]
combos:
  - id: inferno
    sequence: [fireball, nova]
    step_multipliers: [1, 1.5]
    time_window: 3
    bonus_effects: [burn]
templates:
  - id: mage
    name: Mage
    stats: {max_health: 100, max_mana: 80, spell_power: 10}
    pools:
      - {kind: health}
      - {kind: mana, regen: 2}
    abilities: [fireball, nova, mend]
`

func buildSample(t *testing.T) *Catalog {
	t.Helper()
	p, err := Parse([]byte(sample))
	require.NoError(t, err)
	c, err := Build(p, effect.Env{Roller: effect.FixedRoller(1)})
	require.NoError(t, err)
	return c
}

func TestParse_Empty(t *testing.T) {
	p, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Abilities)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("abilities:\n  - id: x\n    colour: red\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuild_Sample(t *testing.T) {
	c := buildSample(t)

	assert.Len(t, c.Effects(), 3)
	require.Len(t, c.Abilities(), 3)
	assert.Equal(t, model.AbilityID("fireball"), c.Abilities()[0].ID())

	fb := c.Ability("fireball")
	require.NotNil(t, fb)
	assert.Equal(t, "Hurls a ball of fire.", fb.Description())
	assert.Equal(t, ability.TargetSingle, fb.Targeting())
	assert.Equal(t, 2.0, fb.Cooldown())
	assert.Equal(t, []model.Cost{{Kind: model.ResourceMana, Amount: 15}}, fb.Costs())
	assert.Len(t, fb.Effects(), 2)

	nova := c.Ability("nova")
	require.NotNil(t, nova)
	assert.Equal(t, "nova", nova.Name())
	assert.Equal(t, 3, nova.Definition().Targets.MaxTargets)
	assert.Equal(t, model.RelationEnemies, nova.Definition().Targets.Team)

	mend := c.Ability("mend")
	require.NotNil(t, mend)
	assert.False(t, mend.Definition().CanCastWhileMoving)
	assert.Equal(t, model.RelationSelf, mend.Definition().Targets.Team)

	require.Len(t, c.Combos(), 1)
	assert.Equal(t, []model.EffectID{"burn"}, c.Combos()[0].BonusEffectIDs)
	assert.Equal(t, []string{"mage"}, c.TemplateIDs())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		pack Pack
	}{
		{"duplicate effect", Pack{Effects: []EffectDef{
			{ID: "a", Type: "InstantHeal"}, {ID: "a", Type: "InstantHeal"},
		}}},
		{"empty ability id", Pack{Abilities: []AbilityDef{{ID: " "}}}},
		{"unknown effect ref", Pack{Abilities: []AbilityDef{{ID: "a", Effects: []string{"nope"}}}}},
		{"bad targeting", Pack{Abilities: []AbilityDef{{ID: "a", Targeting: "Everywhere"}}}},
		{"bad team", Pack{Abilities: []AbilityDef{{ID: "a", Targets: TargetsDef{Team: "friends"}}}}},
		{"bad cost kind", Pack{Abilities: []AbilityDef{{ID: "a", Costs: []CostDef{{Kind: "gold", Amount: 1}}}}}},
		{"negative cooldown", Pack{Abilities: []AbilityDef{{ID: "a", Cooldown: -1}}}},
		{"combo unknown ability", Pack{Combos: []ComboDef{{ID: "c", Sequence: []string{"x"}}}}},
		{"template unknown ability", Pack{Templates: []TemplateDef{{ID: "t", Abilities: []string{"x"}}}}},
		{"template health stat", Pack{Templates: []TemplateDef{{ID: "t", Stats: map[string]float64{"health": 1}}}}},
		{"template bad pool", Pack{Templates: []TemplateDef{{ID: "t", Pools: []PoolDef{{Kind: "gold"}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(&tt.pack, effect.Env{})
			require.Error(t, err)
		})
	}
}

func TestBuild_ReferenceErrorsMatchSentinel(t *testing.T) {
	p := &Pack{Abilities: []AbilityDef{{ID: "a", Effects: []string{"nope"}}}}
	_, err := Build(p, effect.Env{})
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestBuild_UnknownEffectType(t *testing.T) {
	p := &Pack{Effects: []EffectDef{{ID: "a", Type: "Teleport"}}}
	_, err := Build(p, effect.Env{})
	assert.ErrorIs(t, err, effect.ErrUnknownEffectType)
}

func TestSpawn(t *testing.T) {
	c := buildSample(t)
	rec := event.NewRecorder()

	e, err := c.Spawn("mage", "m1", model.TeamPlayer, rec)
	require.NoError(t, err)

	assert.Equal(t, "m1", e.ID())
	assert.Equal(t, "Mage", e.Name())
	assert.Equal(t, model.TeamPlayer, e.Team())
	assert.Equal(t, 100.0, e.Resource(model.ResourceHealth))
	assert.Equal(t, 80.0, e.MaxResource(model.ResourceMana))
	assert.Equal(t, 10.0, e.Stat(model.StatSpellPower))
	assert.True(t, e.HasAbility("fireball"))
	assert.Len(t, e.Abilities(), 3)
}

func TestSpawn_GeneratesID(t *testing.T) {
	c := buildSample(t)
	a, err := c.Spawn("mage", "", model.TeamPlayer, nil)
	require.NoError(t, err)
	b, err := c.Spawn("mage", "", model.TeamPlayer, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSpawn_UnknownTemplate(t *testing.T) {
	c := buildSample(t)
	_, err := c.Spawn("dragon", "d", model.TeamEnemy, nil)
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestRegisterCombos(t *testing.T) {
	c := buildSample(t)
	tr := combo.NewTracker(nil)
	require.NoError(t, c.RegisterCombos(tr))
	require.Len(t, tr.Combos(), 1)
	assert.Equal(t, "inferno", tr.Combos()[0].ID)

	// re-registering the same ids is a no-op
	require.NoError(t, c.RegisterCombos(tr))
	assert.Len(t, tr.Combos(), 1)
}

func TestMerge(t *testing.T) {
	a, err := Parse([]byte("effects:\n  - {id: a, type: InstantHeal}\n"))
	require.NoError(t, err)
	b, err := Parse([]byte("abilities:\n  - {id: x, effects: [a]}\n"))
	require.NoError(t, err)

	a.Merge(b)
	c, err := Build(a, effect.Env{})
	require.NoError(t, err)
	assert.NotNil(t, c.Ability("x"))
}
