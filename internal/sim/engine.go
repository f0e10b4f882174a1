// Package sim hosts the combat core: it composes the engine from content,
// plays a scenario timeline on a fixed step and ships events to consumers.
package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/abilitycore/internal/content"
	"github.com/udisondev/abilitycore/internal/entity"
	"github.com/udisondev/abilitycore/internal/event"
	"github.com/udisondev/abilitycore/internal/game/ability"
	"github.com/udisondev/abilitycore/internal/game/cast"
	"github.com/udisondev/abilitycore/internal/game/combo"
	"github.com/udisondev/abilitycore/internal/game/cooldown"
	"github.com/udisondev/abilitycore/internal/game/effect"
	"github.com/udisondev/abilitycore/internal/game/element"
	"github.com/udisondev/abilitycore/internal/game/targeting"
	"github.com/udisondev/abilitycore/internal/model"
	"github.com/udisondev/abilitycore/internal/world"
)

var ErrUnknownEntity = errors.New("unknown entity")

// Options tune engine composition.
type Options struct {
	CellSize float64
	Seed     uint64          // crit RNG seed; 0 uses the global source
	Sink     event.Publisher // optional, receives every event after the bus
	Logger   *slog.Logger    // event debug log; nil uses slog.Default()
}

// Engine — собранное боевое ядро с миром и сущностями.
//
// Not safe for concurrent use: owned by the goroutine that steps it.
type Engine struct {
	catalog  *content.Catalog
	world    *world.World
	pipeline *cast.Pipeline
	bus      *event.Bus
	pub      event.Publisher

	entities map[string]*entity.Entity
	order    []string
	dead     []string

	ticks int64
	clock float64
}

// NewEngine builds content from pack and wires the combat subsystems.
func NewEngine(pack *content.Pack, opts Options) (*Engine, error) {
	bus := event.NewBus()
	if opts.Sink != nil {
		bus.SubscribeAll(opts.Sink.Publish)
	}
	pub := event.NewLogPublisher(bus, opts.Logger)

	roller := effect.DefaultRoller
	if opts.Seed != 0 {
		roller = effect.SeededRoller(opts.Seed)
	}

	elements := element.NewResolver()
	catalog, err := content.Build(pack, effect.Env{
		Publisher: pub,
		Reactor:   elements,
		Roller:    roller,
	})
	if err != nil {
		return nil, fmt.Errorf("building content: %w", err)
	}

	cooldowns := cooldown.NewTracker(pub)
	combos := combo.NewTracker(pub)
	if err := catalog.RegisterCombos(combos); err != nil {
		return nil, err
	}

	w := world.New(opts.CellSize)
	pipeline := cast.NewPipeline(
		cooldowns,
		effect.NewProcessor(pub),
		cast.DefaultValidator(cooldowns),
		targeting.NewResolver(w),
		combos,
		elements,
		pub,
	)
	pipeline.SetEffectLibrary(catalog.Effects())

	e := &Engine{
		catalog:  catalog,
		world:    w,
		pipeline: pipeline,
		bus:      bus,
		pub:      pub,
		entities: make(map[string]*entity.Entity),
	}
	bus.Subscribe(event.TypeEntityDied, func(ev event.Event) {
		e.dead = append(e.dead, ev.(event.EntityDied).EntityID)
	})
	return e, nil
}

// Catalog returns the built content.
func (e *Engine) Catalog() *content.Catalog { return e.catalog }

// World returns the spatial index.
func (e *Engine) World() *world.World { return e.world }

// Pipeline returns the cast pipeline.
func (e *Engine) Pipeline() *cast.Pipeline { return e.pipeline }

// Bus returns the event bus; handlers run on the stepping goroutine.
func (e *Engine) Bus() *event.Bus { return e.bus }

// Clock returns simulated seconds elapsed.
func (e *Engine) Clock() float64 { return e.clock }

// Ticks returns the number of steps taken.
func (e *Engine) Ticks() int64 { return e.ticks }

// Spawn creates an entity from a template and places it in the world.
func (e *Engine) Spawn(templateID, id string, team model.TeamID, pos model.Vec3) (*entity.Entity, error) {
	ent, err := e.catalog.Spawn(templateID, id, team, e.pub)
	if err != nil {
		return nil, err
	}
	ent.SetPosition(pos)
	if err := e.world.Add(ent); err != nil {
		return nil, fmt.Errorf("spawning %s: %w", ent.ID(), err)
	}
	e.entities[ent.ID()] = ent
	e.order = append(e.order, ent.ID())

	slog.Debug("entity spawned",
		"id", ent.ID(),
		"template", templateID,
		"team", team,
		"position", pos)
	return ent, nil
}

// Entity returns the entity with id or nil.
func (e *Engine) Entity(id string) *entity.Entity { return e.entities[id] }

// Entities returns every entity in spawn order.
func (e *Engine) Entities() []*entity.Entity {
	out := make([]*entity.Entity, len(e.order))
	for i, id := range e.order {
		out[i] = e.entities[id]
	}
	return out
}

// Cast runs a cast for casterID. targetID, point and direction are optional.
func (e *Engine) Cast(casterID string, abilityID model.AbilityID, targetID string, point, direction *model.Vec3) (cast.Result, error) {
	caster := e.entities[casterID]
	if caster == nil {
		return cast.Result{}, fmt.Errorf("casting %s: %w: %s", abilityID, ErrUnknownEntity, casterID)
	}

	var ctx ability.CastContext
	if targetID != "" {
		target := e.entities[targetID]
		if target == nil {
			return cast.Result{}, fmt.Errorf("casting %s: %w: %s", abilityID, ErrUnknownEntity, targetID)
		}
		ctx.Target = target
	}
	ctx.Point = point
	ctx.Direction = direction

	return e.pipeline.TryCast(caster, abilityID, ctx), nil
}

// Move teleports an entity and re-buckets it.
func (e *Engine) Move(id string, pos model.Vec3) error {
	ent := e.entities[id]
	if ent == nil {
		return fmt.Errorf("moving: %w: %s", ErrUnknownEntity, id)
	}
	ent.SetPosition(pos)
	e.world.Refresh(id)
	return nil
}

// Step advances the simulation by dt seconds: world buckets, entity
// regeneration and modifier lifetimes, then the pipeline's trackers.
// The clock is ticks × dt, so callers keep dt fixed.
// Entities that died during the step lose their effects, combo and
// elemental state.
func (e *Engine) Step(dt float64) {
	e.world.RefreshAll()
	for _, id := range e.order {
		e.entities[id].Tick(dt)
	}
	e.pipeline.Update(dt)

	for _, id := range e.dead {
		if ent := e.entities[id]; ent != nil {
			e.pipeline.Forget(ent)
		}
	}
	e.dead = e.dead[:0]

	e.ticks++
	e.clock = float64(e.ticks) * dt
}

// Alive returns the number of living entities.
func (e *Engine) Alive() int {
	n := 0
	for _, ent := range e.entities {
		if ent.IsAlive() {
			n++
		}
	}
	return n
}
