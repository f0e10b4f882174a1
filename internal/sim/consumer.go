package sim

import (
	"context"
	"log/slog"

	"github.com/udisondev/abilitycore/internal/event"
)

// Consumer drains an event queue into the log and counts event types.
type Consumer struct {
	logger *slog.Logger
	counts map[event.Type]int
}

// NewConsumer creates a consumer. A nil logger uses slog.Default().
func NewConsumer(logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{logger: logger, counts: make(map[event.Type]int)}
}

// Run reads events until the channel closes or ctx is cancelled.
// Counts must be read only after Run returns.
func (c *Consumer) Run(ctx context.Context, events <-chan event.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.handle(ev)
		}
	}
}

// Count returns how many events of t were consumed.
func (c *Consumer) Count(t event.Type) int { return c.counts[t] }

func (c *Consumer) handle(ev event.Event) {
	c.counts[ev.Type()]++

	switch e := ev.(type) {
	case event.DamageDealt:
		c.logger.Info("damage",
			"source", e.SourceID,
			"target", e.TargetID,
			"amount", e.Amount,
			"type", e.DamageType,
			"critical", e.Critical)
	case event.HealingDealt:
		c.logger.Info("healing",
			"source", e.SourceID,
			"target", e.TargetID,
			"amount", e.Amount,
			"critical", e.Critical)
	case event.ComboCompleted:
		c.logger.Info("combo completed",
			"caster", e.CasterID,
			"combo", e.ComboID,
			"multiplier", e.TotalMultiplier)
	case event.ElementalReaction:
		c.logger.Info("elemental reaction",
			"target", e.TargetID,
			"reaction", e.Reaction,
			"existing", e.Existing,
			"incoming", e.Incoming)
	case event.EntityDied:
		c.logger.Info("entity died", "entity", e.EntityID, "killer", e.KillerID)
	case event.CastCancelled:
		c.logger.Debug("cast cancelled",
			"caster", e.CasterID,
			"ability", e.Ability,
			"reason", e.Reason)
	}
}
