package stat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/abilitycore/internal/model"
)

type change struct {
	id       model.StatID
	old, new float64
}

func newRecordingContainer(t *testing.T) (*Container, *[]change) {
	t.Helper()
	var changes []change
	c := NewContainer(func(id model.StatID, oldValue, newValue float64) {
		changes = append(changes, change{id, oldValue, newValue})
	})
	return c, &changes
}

func TestContainer_Register(t *testing.T) {
	t.Parallel()

	c := NewContainer(nil)
	require.NoError(t, c.Register(model.StatArmor, 10))
	assert.True(t, c.Has(model.StatArmor))

	err := c.Register(model.StatArmor, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateStat))
	assert.InDelta(t, 10.0, c.Value(model.StatArmor), 1e-9)

	assert.Panics(t, func() { c.MustRegister(model.StatArmor, 1) })
}

func TestContainer_UnknownStat(t *testing.T) {
	t.Parallel()

	c, changes := newRecordingContainer(t)
	assert.Zero(t, c.Value("nope"))
	assert.Zero(t, c.Base("nope"))
	assert.False(t, c.AddModifier(NewModifier("m", "src", "nope", ModFlat, 5)))
	c.SetBase("nope", 10)
	assert.Empty(t, *changes)
}

func TestContainer_Combination(t *testing.T) {
	t.Parallel()

	c := NewContainer(nil)
	c.MustRegister(model.StatAttackPower, 100)

	c.AddModifier(NewModifier("f1", "a", model.StatAttackPower, ModFlat, 20))
	c.AddModifier(NewModifier("f2", "a", model.StatAttackPower, ModFlat, -10))
	c.AddModifier(NewModifier("p1", "b", model.StatAttackPower, ModPercentAdd, 0.1))
	c.AddModifier(NewModifier("p2", "b", model.StatAttackPower, ModPercentAdd, 0.2))
	c.AddModifier(NewModifier("m1", "c", model.StatAttackPower, ModPercentMultiply, 0.5))
	c.AddModifier(NewModifier("m2", "c", model.StatAttackPower, ModPercentMultiply, 1.0))

	// (100 + 10) * 1.3 * (1.5 * 2.0)
	assert.InDelta(t, 110*1.3*3.0, c.Value(model.StatAttackPower), 1e-9)
}

func TestContainer_OverrideWinsByPriority(t *testing.T) {
	t.Parallel()

	c := NewContainer(nil)
	c.MustRegister(model.StatMoveSpeed, 5)

	low := NewModifier("low", "a", model.StatMoveSpeed, ModOverride, 1)
	low.Priority = 1
	high := NewModifier("high", "b", model.StatMoveSpeed, ModOverride, 9)
	high.Priority = 10
	c.AddModifier(high)
	c.AddModifier(low)
	c.AddModifier(NewModifier("flat", "c", model.StatMoveSpeed, ModFlat, 100))

	assert.InDelta(t, 9.0, c.Value(model.StatMoveSpeed), 1e-9)

	c.RemoveModifier(high)
	assert.InDelta(t, 1.0, c.Value(model.StatMoveSpeed), 1e-9)
}

func TestContainer_Clamp(t *testing.T) {
	t.Parallel()

	c := NewContainer(nil)
	c.MustRegister(model.StatCritChance, 0.5, WithBounds(0, 1))
	c.AddModifier(NewModifier("m", "s", model.StatCritChance, ModFlat, 2))
	assert.InDelta(t, 1.0, c.Value(model.StatCritChance), 1e-9)

	c.MustRegister(model.StatArmor, 5, WithMin(0))
	c.AddModifier(NewModifier("n", "s", model.StatArmor, ModFlat, -50))
	assert.Zero(t, c.Value(model.StatArmor))
}

func TestContainer_ChangeNotifications(t *testing.T) {
	t.Parallel()

	c, changes := newRecordingContainer(t)
	c.MustRegister(model.StatArmor, 10)

	c.SetBase(model.StatArmor, 10)
	assert.Empty(t, *changes, "same base must not notify")

	c.SetBase(model.StatArmor, 15)
	require.Len(t, *changes, 1)
	assert.Equal(t, change{model.StatArmor, 10, 15}, (*changes)[0])

	m := NewModifier("m", "src", model.StatArmor, ModFlat, 5)
	c.AddModifier(m)
	require.Len(t, *changes, 2)
	assert.Equal(t, change{model.StatArmor, 15, 20}, (*changes)[1])

	// zero-value modifier leaves the value unchanged
	c.AddModifier(NewModifier("z", "src", model.StatArmor, ModFlat, 0))
	assert.Len(t, *changes, 2)

	c.ModifyBase(model.StatArmor, -5)
	require.Len(t, *changes, 3)
	assert.Equal(t, change{model.StatArmor, 20, 15}, (*changes)[2])
}

func TestContainer_RemoveModifierByIdentity(t *testing.T) {
	t.Parallel()

	c := NewContainer(nil)
	c.MustRegister(model.StatArmor, 10)
	a := NewModifier("same", "src", model.StatArmor, ModFlat, 5)
	b := NewModifier("same", "src", model.StatArmor, ModFlat, 5)
	c.AddModifier(a)
	c.AddModifier(b)

	assert.True(t, c.RemoveModifier(a))
	assert.False(t, c.RemoveModifier(a))
	assert.InDelta(t, 15.0, c.Value(model.StatArmor), 1e-9)
	assert.True(t, c.HasModifier("same"))
}

func TestContainer_RemoveModifiersBySource(t *testing.T) {
	t.Parallel()

	c, changes := newRecordingContainer(t)
	c.MustRegister(model.StatArmor, 10)
	c.MustRegister(model.StatMagicResist, 10)
	c.AddModifier(NewModifier("a", "aura", model.StatArmor, ModFlat, 5))
	c.AddModifier(NewModifier("b", "aura", model.StatMagicResist, ModFlat, 5))
	c.AddModifier(NewModifier("c", "gear", model.StatArmor, ModFlat, 1))
	*changes = nil

	assert.Equal(t, 2, c.RemoveModifiersBySource("aura"))
	assert.InDelta(t, 11.0, c.Value(model.StatArmor), 1e-9)
	assert.InDelta(t, 10.0, c.Value(model.StatMagicResist), 1e-9)
	assert.Len(t, *changes, 2)
	assert.Zero(t, c.RemoveModifiersBySource("aura"))
}

func TestContainer_TimedModifiers(t *testing.T) {
	t.Parallel()

	c := NewContainer(nil)
	c.MustRegister(model.StatArmor, 10)
	m := NewModifier("t", "src", model.StatArmor, ModFlat, 5)
	m.Lifetime = 2
	c.AddModifier(m)

	c.Tick(1)
	assert.InDelta(t, 15.0, c.Value(model.StatArmor), 1e-9)
	c.Tick(1.5)
	assert.True(t, m.IsExpired())
	assert.InDelta(t, 10.0, c.Value(model.StatArmor), 1e-9)
	assert.Empty(t, c.Get(model.StatArmor).Modifiers())
}

func TestContainer_ExpiredModifierIgnored(t *testing.T) {
	t.Parallel()

	c := NewContainer(nil)
	c.MustRegister(model.StatArmor, 10)
	m := NewModifier("x", "src", model.StatArmor, ModFlat, 5)
	c.AddModifier(m)
	m.Expire()
	c.Get(model.StatArmor).Invalidate()
	assert.InDelta(t, 10.0, c.Value(model.StatArmor), 1e-9)
	assert.Equal(t, 1, c.ClearExpired())
}

func TestContainer_CalculateModifiedValue(t *testing.T) {
	t.Parallel()

	c := NewContainer(nil)
	c.MustRegister(model.StatSpellPower, 10)
	c.AddModifier(NewModifier("p", "s", model.StatSpellPower, ModPercentAdd, 0.5))

	assert.InDelta(t, 30.0, c.CalculateModifiedValue(model.StatSpellPower, 20), 1e-9)
	assert.InDelta(t, 15.0, c.Value(model.StatSpellPower), 1e-9)
	assert.InDelta(t, 7.0, c.CalculateModifiedValue("unknown", 7), 1e-9)
}

func TestContainer_IDsInRegistrationOrder(t *testing.T) {
	t.Parallel()

	c := NewContainer(nil)
	c.MustRegister(model.StatMaxHealth, 100)
	c.MustRegister(model.StatArmor, 1)
	c.MustRegister(model.StatSpellPower, 1)
	assert.Equal(t, []model.StatID{model.StatMaxHealth, model.StatArmor, model.StatSpellPower}, c.IDs())
}
