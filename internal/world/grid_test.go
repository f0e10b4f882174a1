package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/abilitycore/internal/model"
)

func TestCellOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pos  model.Vec3
		want cellKey
	}{
		{"origin", model.Vec3{}, cellKey{0, 0}},
		{"inside first cell", model.NewVec3(15.9, 0.1, 0), cellKey{0, 0}},
		{"cell boundary", model.NewVec3(16, 32, 0), cellKey{1, 2}},
		{"negative", model.NewVec3(-0.5, -16, 0), cellKey{-1, -1}},
		{"negative far", model.NewVec3(-16.1, -33, 0), cellKey{-2, -3}},
		{"z ignored", model.NewVec3(1, 1, 500), cellKey{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cellOf(tt.pos, DefaultCellSize))
		})
	}
}

func TestCellRange(t *testing.T) {
	t.Parallel()

	lo, hi := cellRange(model.NewVec3(8, 8, 0), 10, DefaultCellSize)
	assert.Equal(t, cellKey{-1, -1}, lo)
	assert.Equal(t, cellKey{1, 1}, hi)
	assert.Equal(t, int64(9), cellCount(lo, hi))

	lo, hi = cellRange(model.NewVec3(8, 8, 0), 2, DefaultCellSize)
	assert.Equal(t, lo, hi)
	assert.Equal(t, int64(1), cellCount(lo, hi))
}
