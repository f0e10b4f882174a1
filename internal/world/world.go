// Package world indexes combat participants on a 2D cell grid and answers
// the spatial queries targeting needs.
package world

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/udisondev/abilitycore/internal/game/actor"
	"github.com/udisondev/abilitycore/internal/game/targeting"
	"github.com/udisondev/abilitycore/internal/model"
)

var ErrDuplicateTarget = errors.New("target already in world")

type entry struct {
	target actor.Target
	cell   cellKey
}

// World — пространственный индекс участников боя.
// Buckets are keyed by the position seen at Add/Refresh; call Refresh after
// a target moves. Query results are ordered by distance, then by id.
//
// Not safe for concurrent use: owned by the simulation goroutine.
type World struct {
	cellSize float64
	cells    map[cellKey]map[string]actor.Target
	entries  map[string]*entry
}

var _ targeting.WorldQuery = (*World)(nil)

// New creates an empty world. A non-positive cellSize uses DefaultCellSize.
func New(cellSize float64) *World {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &World{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[string]actor.Target),
		entries:  make(map[string]*entry),
	}
}

// CellSize returns the grid cell side.
func (w *World) CellSize() float64 { return w.cellSize }

// Add indexes t at its current position.
func (w *World) Add(t actor.Target) error {
	if _, exists := w.entries[t.ID()]; exists {
		return ErrDuplicateTarget
	}
	e := &entry{target: t, cell: cellOf(t.Position(), w.cellSize)}
	w.entries[t.ID()] = e
	w.insert(e)
	return nil
}

// Remove drops the target with id. Returns false if it was not indexed.
func (w *World) Remove(id string) bool {
	e, ok := w.entries[id]
	if !ok {
		return false
	}
	w.evict(e)
	delete(w.entries, id)
	return true
}

// Get returns the indexed target with id or nil.
func (w *World) Get(id string) actor.Target {
	if e, ok := w.entries[id]; ok {
		return e.target
	}
	return nil
}

// Len returns the number of indexed targets.
func (w *World) Len() int { return len(w.entries) }

// Refresh re-buckets the target with id after it moved.
// Returns false if it is not indexed.
func (w *World) Refresh(id string) bool {
	e, ok := w.entries[id]
	if !ok {
		return false
	}
	cell := cellOf(e.target.Position(), w.cellSize)
	if cell == e.cell {
		return true
	}
	w.evict(e)
	e.cell = cell
	w.insert(e)
	return true
}

// RefreshAll re-buckets every target.
func (w *World) RefreshAll() {
	for id := range w.entries {
		w.Refresh(id)
	}
}

// All returns every target ordered by id.
func (w *World) All() []actor.Target {
	out := make([]actor.Target, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e.target)
	}
	slices.SortFunc(out, func(a, b actor.Target) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}

// InRadius returns targets within radius of center, nearest first.
func (w *World) InRadius(center model.Vec3, radius float64) []actor.Target {
	if radius < 0 {
		return nil
	}
	r2 := radius * radius
	var found []hit
	w.scan(center, radius, func(t actor.Target) {
		if d2 := t.Position().DistanceSquared(center); d2 <= r2 {
			found = append(found, hit{target: t, dist2: d2})
		}
	})
	return sortHits(found)
}

// InCone returns targets within rng of origin whose bearing lies within
// angleDeg/2 of direction, nearest first. Targets at the origin are inside.
// An angle of 360 or more degenerates to InRadius.
func (w *World) InCone(origin, direction model.Vec3, angleDeg, rng float64) []actor.Target {
	if angleDeg >= 360 {
		return w.InRadius(origin, rng)
	}
	if angleDeg <= 0 || direction.Length() == 0 {
		return nil
	}
	dir := direction.Normalize()
	minCos := math.Cos(angleDeg / 2 * math.Pi / 180)

	r2 := rng * rng
	var found []hit
	w.scan(origin, rng, func(t actor.Target) {
		offset := t.Position().Sub(origin)
		d2 := offset.Dot(offset)
		if d2 > r2 {
			return
		}
		if d2 > 0 && offset.Normalize().Dot(dir) < minCos-1e-9 {
			return
		}
		found = append(found, hit{target: t, dist2: d2})
	})
	return sortHits(found)
}

// Closest returns the nearest target to pos that passes filter, or nil.
func (w *World) Closest(pos model.Vec3, filter targeting.Filter, caster actor.Target) actor.Target {
	var (
		best     actor.Target
		bestDist = math.Inf(1)
	)
	for _, e := range w.entries {
		if !filter.Passes(e.target, caster) {
			continue
		}
		d2 := e.target.Position().DistanceSquared(pos)
		if d2 < bestDist || (d2 == bestDist && e.target.ID() < best.ID()) {
			best, bestDist = e.target, d2
		}
	}
	return best
}

// scan visits candidates in the cells covering the query square. Queries
// wider than the population walk the entry table instead.
func (w *World) scan(center model.Vec3, radius float64, visit func(actor.Target)) {
	lo, hi := cellRange(center, radius, w.cellSize)
	if cellCount(lo, hi) > int64(len(w.entries)) {
		for _, e := range w.entries {
			visit(e.target)
		}
		return
	}
	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			for _, t := range w.cells[cellKey{x, y}] {
				visit(t)
			}
		}
	}
}

func (w *World) insert(e *entry) {
	bucket, ok := w.cells[e.cell]
	if !ok {
		bucket = make(map[string]actor.Target)
		w.cells[e.cell] = bucket
	}
	bucket[e.target.ID()] = e.target
}

func (w *World) evict(e *entry) {
	bucket := w.cells[e.cell]
	delete(bucket, e.target.ID())
	if len(bucket) == 0 {
		delete(w.cells, e.cell)
	}
}

type hit struct {
	target actor.Target
	dist2  float64
}

func sortHits(hits []hit) []actor.Target {
	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.dist2, b.dist2); c != 0 {
			return c
		}
		return cmp.Compare(a.target.ID(), b.target.ID())
	})
	out := make([]actor.Target, len(hits))
	for i, h := range hits {
		out[i] = h.target
	}
	return out
}
