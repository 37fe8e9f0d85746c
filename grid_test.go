package cursorfx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSpatialGrid2D_InsertionAndQuery(t *testing.T) {
	grid := newSpatialGrid2D(10)

	grid.Insert(1, mgl32.Vec2{5, 5})
	grid.Insert(2, mgl32.Vec2{95, 95})

	var near []int
	grid.ForEachNear(mgl32.Vec2{6, 6}, 5, func(id int) {
		near = append(near, id)
	})
	if len(near) != 1 || near[0] != 1 {
		t.Errorf("expected only id 1 near (6,6), got %v", near)
	}

	near = near[:0]
	grid.ForEachNear(mgl32.Vec2{500, 500}, 5, func(id int) {
		near = append(near, id)
	})
	if len(near) != 0 {
		t.Errorf("expected no candidates far away, got %v", near)
	}
}

func TestSpatialGrid2D_NeighborCellsCovered(t *testing.T) {
	grid := newSpatialGrid2D(10)

	// Two points in adjacent cells, closer than the query radius.
	grid.Insert(1, mgl32.Vec2{9, 5})
	grid.Insert(2, mgl32.Vec2{11, 5})

	seen := map[int]bool{}
	grid.ForEachNear(mgl32.Vec2{9, 5}, 4, func(id int) {
		seen[id] = true
	})
	if !seen[1] || !seen[2] {
		t.Errorf("query radius spanning a cell boundary must cover both cells, got %v", seen)
	}
}

func TestSpatialGrid2D_NegativeCoordinates(t *testing.T) {
	grid := newSpatialGrid2D(10)
	grid.Insert(1, mgl32.Vec2{-15, -15})

	found := false
	grid.ForEachNear(mgl32.Vec2{-14, -14}, 5, func(id int) {
		if id == 1 {
			found = true
		}
	})
	if !found {
		t.Error("entity at negative coordinates not found")
	}
}

func TestSpatialGrid2D_Reset(t *testing.T) {
	grid := newSpatialGrid2D(10)
	grid.Insert(1, mgl32.Vec2{5, 5})

	grid.Reset(20)
	if grid.cellSize != 20 {
		t.Errorf("reset should adopt the new cell size, got %f", grid.cellSize)
	}

	count := 0
	grid.ForEachNear(mgl32.Vec2{5, 5}, 50, func(id int) { count++ })
	if count != 0 {
		t.Errorf("reset grid should be empty, found %d candidates", count)
	}

	// Non-positive size keeps the previous one.
	grid.Reset(0)
	if grid.cellSize != 20 {
		t.Errorf("reset(0) should keep the cell size, got %f", grid.cellSize)
	}
}
