package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/abilitycore/internal/config"
	"github.com/udisondev/abilitycore/internal/content"
	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/model"
)

const testContent = `
effects:
  - id: bolt_hit
    type: InstantDamage
    params: {base: "40", damage_type: fire}
abilities:
  - id: bolt
    targeting: SingleTarget
    cooldown: 1
    range: 30
    costs: [{kind: mana, amount: 10}]
    effects: [bolt_hit]
templates:
  - id: mage
    stats: {max_health: 100, max_mana: 100}
    pools: [{kind: health}, {kind: mana}]
    abilities: [bolt]
  - id: dummy
    stats: {max_health: 100}
    pools: [{kind: health}]
`

const testScenario = `
name: duel
duration: 4
entities:
  - {id: hero, template: mage, team: player, position: [0, 0]}
  - {id: target, template: dummy, team: enemy, position: [5, 0]}
actions:
  - {at: 0, caster: hero, ability: bolt, target: target}
  - {at: 0.5, caster: hero, ability: bolt, target: target}
  - {at: 1.5, caster: hero, ability: bolt, target: target}
  - {at: 2.5, caster: hero, ability: bolt, target: target}
  - {at: 3.5, caster: hero, ability: bolt, target: target}
`

func testPack(t *testing.T) *content.Pack {
	t.Helper()
	p, err := content.Parse([]byte(testContent))
	require.NoError(t, err)
	return p
}

func testEngine(t *testing.T, sink event.Publisher) *Engine {
	t.Helper()
	e, err := NewEngine(testPack(t), Options{CellSize: 16, Sink: sink})
	require.NoError(t, err)
	return e
}

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(`
entities:
  - {id: a, template: mage}
actions:
  - {at: 2, caster: a, ability: x}
  - {at: 1, kind: move, entity: a, to: [3, 4]}
`))
	require.NoError(t, err)

	require.Len(t, s.Actions, 2)
	assert.Equal(t, ActionMove, s.Actions[0].Kind)
	assert.Equal(t, ActionCast, s.Actions[1].Kind)
	assert.Equal(t, model.NewVec3(3, 4, 0), s.Actions[0].To.Vec())
	assert.Equal(t, 3.0, s.End())
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "entities:\n  - {id: a, template: t, colour: red}\n"},
		{"duplicate entity", "entities:\n  - {id: a, template: t}\n  - {id: a, template: t}\n"},
		{"missing template", "entities:\n  - {id: a}\n"},
		{"bad team", "entities:\n  - {id: a, template: t, team: pirates}\n"},
		{"bad position", "entities:\n  - {id: a, template: t, position: [1]}\n"},
		{"unknown caster", "actions:\n  - {caster: ghost, ability: x}\n"},
		{"no ability", "entities:\n  - {id: a, template: t}\nactions:\n  - {caster: a}\n"},
		{"move without destination", "entities:\n  - {id: a, template: t}\nactions:\n  - {kind: move, entity: a}\n"},
		{"unknown kind", "entities:\n  - {id: a, template: t}\nactions:\n  - {kind: dance, caster: a}\n"},
		{"negative time", "entities:\n  - {id: a, template: t}\nactions:\n  - {at: -1, caster: a, ability: x}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestParseTeam(t *testing.T) {
	tests := []struct {
		in   string
		want model.TeamID
	}{
		{"", model.TeamNeutral},
		{"player", model.TeamPlayer},
		{"enemy", model.TeamEnemy},
		{"7", 7},
	}
	for _, tt := range tests {
		got, err := ParseTeam(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseTeam("pirates")
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestEngine_CastAndStep(t *testing.T) {
	rec := event.NewRecorder()
	e := testEngine(t, rec)

	hero, err := e.Spawn("mage", "hero", model.TeamPlayer, model.NewVec3(0, 0, 0))
	require.NoError(t, err)
	target, err := e.Spawn("dummy", "target", model.TeamEnemy, model.NewVec3(5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, e.World().Len())

	res, err := e.Cast("hero", "bolt", "target", nil, nil)
	require.NoError(t, err)
	require.True(t, res.Success, res.Reason)

	assert.InDelta(t, 60, target.Resource(model.ResourceHealth), 1e-9)
	assert.InDelta(t, 90, hero.Resource(model.ResourceMana), 1e-9)
	assert.True(t, e.Pipeline().IsOnCooldown(hero, "bolt"))
	assert.Equal(t, 1, rec.Count(event.TypeDamageDealt))

	for range 12 {
		e.Step(0.1)
	}
	assert.Equal(t, int64(12), e.Ticks())
	assert.InDelta(t, 1.2, e.Clock(), 1e-9)
	assert.False(t, e.Pipeline().IsOnCooldown(hero, "bolt"))
}

func TestEngine_CastErrors(t *testing.T) {
	e := testEngine(t, nil)
	_, err := e.Spawn("mage", "hero", model.TeamPlayer, model.Vec3{})
	require.NoError(t, err)

	_, err = e.Cast("ghost", "bolt", "", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownEntity)

	_, err = e.Cast("hero", "bolt", "ghost", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownEntity)

	assert.ErrorIs(t, e.Move("ghost", model.Vec3{}), ErrUnknownEntity)
}

func TestEngine_MoveOutOfRange(t *testing.T) {
	e := testEngine(t, nil)
	_, err := e.Spawn("mage", "hero", model.TeamPlayer, model.Vec3{})
	require.NoError(t, err)
	_, err = e.Spawn("dummy", "target", model.TeamEnemy, model.NewVec3(5, 0, 0))
	require.NoError(t, err)

	require.NoError(t, e.Move("target", model.NewVec3(100, 0, 0)))

	res, err := e.Cast("hero", "bolt", "target", nil, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Target is out of range", res.Reason)
	assert.Len(t, e.World().InRadius(model.NewVec3(100, 0, 0), 1), 1)
}

func TestEngine_DuplicateSpawn(t *testing.T) {
	e := testEngine(t, nil)
	_, err := e.Spawn("mage", "hero", model.TeamPlayer, model.Vec3{})
	require.NoError(t, err)
	_, err = e.Spawn("mage", "hero", model.TeamPlayer, model.Vec3{})
	require.Error(t, err)
}

func TestRunner_Run(t *testing.T) {
	s, err := ParseScenario([]byte(testScenario))
	require.NoError(t, err)

	rec := event.NewRecorder()
	e := testEngine(t, rec)
	r, err := NewRunner(e, s, 100*time.Millisecond, 0, false)
	require.NoError(t, err)

	sum, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(40), sum.Ticks)
	assert.InDelta(t, 4.0, sum.Clock, 1e-9)
	assert.Equal(t, 5, sum.Casts)
	// 0.5 is on cooldown, 3.5 targets a corpse
	assert.Equal(t, 2, sum.FailedCasts)
	assert.Equal(t, 1, sum.Alive)

	assert.Equal(t, 3, rec.Count(event.TypeDamageDealt))
	died := rec.OfType(event.TypeEntityDied)
	require.Len(t, died, 1)
	assert.Equal(t, event.EntityDied{EntityID: "target", KillerID: "hero"}, died[0])
	assert.False(t, e.Entity("target").IsAlive())
	assert.InDelta(t, 70, e.Entity("hero").Resource(model.ResourceMana), 1e-9)
}

func TestRunner_DurationOverride(t *testing.T) {
	s, err := ParseScenario([]byte(testScenario))
	require.NoError(t, err)

	r, err := NewRunner(testEngine(t, nil), s, 100*time.Millisecond, time.Second, false)
	require.NoError(t, err)

	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), sum.Ticks)
	assert.Equal(t, 2, sum.Casts)
}

func TestRunner_Cancelled(t *testing.T) {
	s, err := ParseScenario([]byte(testScenario))
	require.NoError(t, err)

	r, err := NewRunner(testEngine(t, nil), s, 100*time.Millisecond, 0, false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), sum.Ticks)
}

func TestRunner_Realtime(t *testing.T) {
	s, err := ParseScenario([]byte("name: idle\nduration: 0.005\n"))
	require.NoError(t, err)

	r, err := NewRunner(testEngine(t, nil), s, time.Millisecond, 0, true)
	require.NoError(t, err)

	start := time.Now()
	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sum.Ticks, int64(5))
	assert.GreaterOrEqual(t, time.Since(start), 4*time.Millisecond)
}

func TestNewRunner_UnknownTemplate(t *testing.T) {
	s, err := ParseScenario([]byte("entities:\n  - {id: a, template: dragon}\n"))
	require.NoError(t, err)

	_, err = NewRunner(testEngine(t, nil), s, time.Millisecond, 0, false)
	assert.ErrorIs(t, err, content.ErrInvalidContent)
}

func TestConsumer(t *testing.T) {
	ch := make(chan event.Event, 3)
	ch <- event.DamageDealt{SourceID: "a", TargetID: "b", Amount: 5}
	ch <- event.DamageDealt{SourceID: "a", TargetID: "b", Amount: 7}
	ch <- event.EntityDied{EntityID: "b"}
	close(ch)

	c := NewConsumer(nil)
	require.NoError(t, c.Run(context.Background(), ch))
	assert.Equal(t, 2, c.Count(event.TypeDamageDealt))
	assert.Equal(t, 1, c.Count(event.TypeEntityDied))
	assert.Equal(t, 0, c.Count(event.TypeHealingDealt))
}

func TestPlay(t *testing.T) {
	s, err := ParseScenario([]byte(testScenario))
	require.NoError(t, err)

	cfg := config.DefaultSimulation()
	sum, err := Play(context.Background(), cfg, testPack(t), s)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Casts)
	assert.Equal(t, 1, sum.Alive)
}

func TestRun_SampleFiles(t *testing.T) {
	cfg := config.DefaultSimulation()
	cfg.ContentPath = "../../config/content.yaml"
	cfg.ScenarioPath = "../../config/scenario.yaml"
	cfg.Seed = 42

	sum, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, sum.Clock, 1e-9)
	assert.Positive(t, sum.Casts)
}

func TestRun_MissingContent(t *testing.T) {
	cfg := config.DefaultSimulation()
	cfg.ContentPath = t.TempDir() + "/none.yaml"

	_, err := Run(context.Background(), cfg)
	require.Error(t, err)
}
