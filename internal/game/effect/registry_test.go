package effect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/abilitycore/internal/game/stat"
	"github.com/udisondev/abilitycore/internal/model"
)

func TestCreate_KnownTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec     Spec
		category Category
	}{
		{Spec{ID: "a", Type: "InstantDamage", Params: map[string]string{"base": "10", "damage_type": "fire"}}, CategoryInstant},
		{Spec{ID: "b", Type: "InstantHeal", Params: map[string]string{"base": "10"}}, CategoryInstant},
		{Spec{ID: "c", Type: "DamageOverTime", Params: map[string]string{"duration": "4", "per_tick": "3"}}, CategoryPeriodic},
		{Spec{ID: "d", Type: "HealOverTime", Params: map[string]string{"duration": "4", "per_tick": "3"}}, CategoryPeriodic},
		{Spec{ID: "e", Type: "StatModifier", Params: map[string]string{"duration": "4", "stat": "armor", "kind": "percent_add", "value": "0.2"}}, CategoryDuration},
	}

	for _, tt := range tests {
		t.Run(tt.spec.Type, func(t *testing.T) {
			t.Parallel()
			e, err := Create(tt.spec, Env{})
			require.NoError(t, err)
			assert.Equal(t, tt.spec.ID, e.ID())
			assert.Equal(t, tt.category, e.Category())
		})
	}
}

func TestCreate_Params(t *testing.T) {
	t.Parallel()

	e, err := Create(Spec{ID: "ward", Name: "Ward", Type: "StatModifier", Params: map[string]string{
		"duration": "6", "stat": "magic_resist", "kind": "override", "value": "75",
		"stackable": "true", "max_stacks": "4", "priority": "3",
	}}, Env{})
	require.NoError(t, err)

	m := e.(*TimedStatModifier)
	assert.Equal(t, model.StatID("magic_resist"), m.p.Stat)
	assert.Equal(t, stat.ModOverride, m.p.Kind)
	assert.Equal(t, 4, m.MaxStacks())
	assert.True(t, m.Stackable())
	assert.Equal(t, 3, m.p.Priority)

	dot, err := Create(Spec{ID: "poison", Type: "DamageOverTime", Params: map[string]string{
		"duration": "6", "per_tick": "2", "can_kill": "false", "damage_type": "nature",
	}}, Env{})
	require.NoError(t, err)
	assert.False(t, dot.(*PeriodicDamage).p.CanKill)
	assert.Equal(t, model.DamageNature, dot.(*PeriodicDamage).p.Type)
}

func TestCreate_Errors(t *testing.T) {
	t.Parallel()

	_, err := Create(Spec{ID: "x", Type: "Teleport"}, Env{})
	assert.True(t, errors.Is(err, ErrUnknownEffectType))

	_, err = Create(Spec{ID: "x", Type: "InstantDamage", Params: map[string]string{"base": "lots"}}, Env{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base")

	_, err = Create(Spec{ID: "x", Type: "InstantDamage", Params: map[string]string{"damage_type": "plasma"}}, Env{})
	require.Error(t, err)

	_, err = Create(Spec{ID: "x", Type: "StatModifier", Params: map[string]string{"duration": "1"}}, Env{})
	require.Error(t, err, "stat is required")

	_, err = Create(Spec{ID: "x", Type: "DamageOverTime", Params: map[string]string{"per_tick": "1"}}, Env{})
	require.Error(t, err, "duration is required")
}

func TestTypes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"DamageOverTime", "HealOverTime", "InstantDamage", "InstantHeal", "StatModifier"}, Types())
}
