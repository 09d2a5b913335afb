// Package systems provides ECS systems for the simulation and the bindings
// that expose the ECS world to agent controllers.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	Delta  r3.Vec  // from query origin to entity
	DistSq float64 // squared distance
}

// SpatialGrid buckets entities by cell over the XZ plane.
// The grid covers [-halfW, halfW] x [-halfD, halfD]; height is ignored for
// bucketing but not for distance tests.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	halfW    float64
	halfD    float64
	cells    [][]ecs.Entity
}

// NewSpatialGrid creates a spatial grid covering a world of the given size
// centred on the origin.
func NewSpatialGrid(width, depth, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(depth/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		halfW:    width / 2,
		halfD:    depth / 2,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, p r3.Vec) {
	col, row := g.cell(p)
	g.cells[row*g.cols+col] = append(g.cells[row*g.cols+col], e)
}

// queryCapacity is the initial scratch size for spatial queries.
const queryCapacity = 128

// QueryRadiusInto appends every entity within radius of center to dst, in
// cell order (row-major, then insertion order within a cell).
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, center r3.Vec, radius float64, posMap *ecs.Map[components.Position]) []Neighbor {
	if radius < 0 {
		return dst
	}
	minCol, minRow := g.cell(r3.Vec{X: center.X - radius, Z: center.Z - radius})
	maxCol, maxRow := g.cell(r3.Vec{X: center.X + radius, Z: center.Z + radius})
	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				delta := r3.Sub(pos.Vec(), center)
				distSq := r3.Norm2(delta)
				if distSq > radiusSq {
					continue
				}
				dst = append(dst, Neighbor{E: e, Delta: delta, DistSq: distSq})
			}
		}
	}

	return dst
}

// cell returns the clamped column and row for a world position.
func (g *SpatialGrid) cell(p r3.Vec) (col, row int) {
	col = int(math.Floor((p.X + g.halfW) / g.cellSize))
	row = int(math.Floor((p.Z + g.halfD) / g.cellSize))
	col = clampInt(col, 0, g.cols-1)
	row = clampInt(row, 0, g.rows-1)
	return col, row
}
