package cooldown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/model"
)

const fireball model.AbilityID = "fireball"

func newTracker(t *testing.T) (*Tracker, *event.Recorder) {
	t.Helper()
	rec := event.NewRecorder()
	return NewTracker(rec), rec
}

func TestTracker_Start(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t)
	tr.Start("hero", fireball, 5)

	assert.True(t, tr.IsOnCooldown("hero", fireball))
	assert.InDelta(t, 5.0, tr.Remaining("hero", fireball), 1e-9)
	assert.InDelta(t, 5.0, tr.Total("hero", fireball), 1e-9)
	require.Equal(t, 1, rec.Count(event.TypeCooldownStarted))

	started := rec.OfType(event.TypeCooldownStarted)[0].(event.CooldownStarted)
	assert.Equal(t, "hero", started.OwnerID)
	assert.InDelta(t, 5.0, started.Duration, 1e-9)

	// owners are independent
	assert.False(t, tr.IsOnCooldown("villain", fireball))
}

func TestTracker_StartNonPositiveDuration(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t)
	tr.Start("hero", fireball, 0)
	tr.Start("hero", fireball, -1)

	assert.False(t, tr.IsOnCooldown("hero", fireball))
	assert.Empty(t, rec.All())
}

func TestTracker_StartOverwrites(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t)
	tr.Start("hero", fireball, 5)
	tr.Tick(4)
	tr.Start("hero", fireball, 3)
	assert.InDelta(t, 3.0, tr.Remaining("hero", fireball), 1e-9)
}

func TestTracker_TickIsSilent(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t)
	tr.Start("hero", fireball, 1)
	rec.Reset()

	tr.Tick(0.4)
	assert.InDelta(t, 0.6, tr.Remaining("hero", fireball), 1e-9)
	tr.Tick(0.6)

	assert.False(t, tr.IsOnCooldown("hero", fireball))
	assert.Zero(t, tr.Remaining("hero", fireball))
	assert.Zero(t, tr.Count())
	assert.Empty(t, rec.All(), "tick expiry emits nothing")
}

func TestTracker_Reduce(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t)
	tr.Start("hero", fireball, 5)
	rec.Reset()

	tr.Reduce("hero", fireball, 2)
	assert.InDelta(t, 3.0, tr.Remaining("hero", fireball), 1e-9)
	assert.Empty(t, rec.All())

	tr.Reduce("hero", fireball, 10)
	assert.False(t, tr.IsOnCooldown("hero", fireball))
	assert.Equal(t, []event.Type{event.TypeCooldownCompleted}, rec.Types())

	// unknown entries are ignored
	tr.Reduce("hero", "frostbolt", 1)
	assert.Len(t, rec.All(), 1)
}

func TestTracker_Reset(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t)
	tr.Reset("hero", fireball)
	assert.Empty(t, rec.All(), "reset without entry emits nothing")

	tr.Start("hero", fireball, 5)
	rec.Reset()
	tr.Reset("hero", fireball)
	assert.Equal(t, []event.Type{event.TypeCooldownCompleted}, rec.Types())
	assert.False(t, tr.IsOnCooldown("hero", fireball))
}

func TestTracker_ResetAll(t *testing.T) {
	t.Parallel()

	tr, rec := newTracker(t)
	tr.Start("hero", "b", 5)
	tr.Start("hero", "a", 5)
	tr.Start("other", "a", 5)
	rec.Reset()

	tr.ResetAll("hero")
	events := rec.OfType(event.TypeCooldownCompleted)
	require.Len(t, events, 2)
	assert.Equal(t, model.AbilityID("a"), events[0].(event.CooldownCompleted).Ability)
	assert.Equal(t, 1, tr.Count())
}

func TestTracker_Progress(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t)
	assert.InDelta(t, 1.0, tr.Progress("hero", fireball), 1e-9)
	tr.Start("hero", fireball, 4)
	tr.Tick(1)
	assert.InDelta(t, 0.25, tr.Progress("hero", fireball), 1e-9)
}
