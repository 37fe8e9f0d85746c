package cursorfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// spatialGrid2D is the broadphase for laser collision detection: a hash
// grid over screen space holding pool slot indices. Rebuilt every frame.
type spatialGrid2D struct {
	cellSize float32
	cells    map[uint64][]int
}

func newSpatialGrid2D(cellSize float32) *spatialGrid2D {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &spatialGrid2D{
		cellSize: cellSize,
		cells:    make(map[uint64][]int),
	}
}

func (g *spatialGrid2D) Reset(cellSize float32) {
	if cellSize > 0 {
		g.cellSize = cellSize
	}
	clear(g.cells)
}

func (g *spatialGrid2D) Insert(id int, pos mgl32.Vec2) {
	key := g.hashKey(g.cellIndex(pos.X()), g.cellIndex(pos.Y()))
	g.cells[key] = append(g.cells[key], id)
}

// ForEachNear visits the broadphase candidates in the cells overlapping the
// radius around pos. Callers narrow by exact distance themselves.
func (g *spatialGrid2D) ForEachNear(pos mgl32.Vec2, radius float32, fn func(id int)) {
	minX, maxX := g.cellIndex(pos.X()-radius), g.cellIndex(pos.X()+radius)
	minY, maxY := g.cellIndex(pos.Y()-radius), g.cellIndex(pos.Y()+radius)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for _, id := range g.cells[g.hashKey(x, y)] {
				fn(id)
			}
		}
	}
}

func (g *spatialGrid2D) cellIndex(v float32) int {
	return int(math.Floor(float64(v / g.cellSize)))
}

func (g *spatialGrid2D) hashKey(x, y int) uint64 {
	// large primes for mixing
	const p1 = 73856093
	const p2 = 19349663
	return uint64(x*p1 ^ y*p2)
}
