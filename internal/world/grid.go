package world

import (
	"math"

	"github.com/udisondev/abilitycore/internal/model"
)

// DefaultCellSize — сторона ячейки сетки в мировых единицах.
const DefaultCellSize = 16.0

// cellKey addresses one grid cell on the XY plane. Z is not bucketed.
type cellKey struct {
	x, y int32
}

// cellOf converts a world position to its cell.
// Formula: floor(coord / size), so negative coordinates get negative cells.
func cellOf(p model.Vec3, size float64) cellKey {
	return cellKey{
		x: int32(math.Floor(p.X / size)),
		y: int32(math.Floor(p.Y / size)),
	}
}

// cellRange returns the inclusive cell bounds covering a square of half-width
// radius around center.
func cellRange(center model.Vec3, radius, size float64) (lo, hi cellKey) {
	lo = cellOf(model.Vec3{X: center.X - radius, Y: center.Y - radius}, size)
	hi = cellOf(model.Vec3{X: center.X + radius, Y: center.Y + radius}, size)
	return lo, hi
}

// cellCount returns how many cells lie in [lo, hi].
func cellCount(lo, hi cellKey) int64 {
	return int64(hi.x-lo.x+1) * int64(hi.y-lo.y+1)
}
