package tilemap

import (
	"math"
	"strings"

	"github.com/CassBennett/Escape/internal/vecmath"
)

// Cell classifies one unit square of the room floor.
type Cell int

const (
	CellFloor Cell = iota
	CellWall
	CellDoor
	CellTable
	CellPiano
	CellRadio
	CellTypewriter
)

const glyphs = ".#DTPRW"

func (c Cell) IsObstacle() bool {
	return c >= CellTable && c <= CellTypewriter
}

func (c Cell) String() string {
	switch c {
	case CellFloor:
		return "floor"
	case CellWall:
		return "wall"
	case CellDoor:
		return "door"
	case CellTable:
		return "table"
	case CellPiano:
		return "piano"
	case CellRadio:
		return "radio"
	case CellTypewriter:
		return "typewriter"
	default:
		return "unknown"
	}
}

// Obstacle is a rectangular piece of furniture centred on (X, Z) in grid
// cells.
type Obstacle struct {
	Kind   Cell
	X, Z   int
	Width  int
	Height int
}

type Layout struct {
	Width, Depth int
	DoorX, DoorZ int
	Obstacles    []Obstacle
}

func DefaultLayout() Layout {
	return Layout{
		Width: 16,
		Depth: 16,
		DoorX: 8,
		DoorZ: 0,
		Obstacles: []Obstacle{
			{Kind: CellPiano, X: 2, Z: 14, Width: 4, Height: 4},
			{Kind: CellTypewriter, X: 2, Z: 2, Width: 2, Height: 2},
			{Kind: CellRadio, X: 13, Z: 9, Width: 2, Height: 2},
			{Kind: CellTable, X: 8, Z: 9, Width: 2, Height: 4},
		},
	}
}

func (l Layout) Build() *Grid {
	return Build(l.Width, l.Depth, l.DoorX, l.DoorZ, l.Obstacles)
}

// Grid is the static classification of the room. It does not change after
// Build.
type Grid struct {
	Width int
	Depth int
	Cells [][]Cell
}

// Build walls in a width x depth room, cuts a three cell door centred on
// (doorX, doorZ) and rasterises the obstacles over the result.
func Build(width, depth, doorX, doorZ int, obstacles []Obstacle) *Grid {
	g := &Grid{Width: width, Depth: depth, Cells: make([][]Cell, depth)}
	for z := 0; z < depth; z++ {
		g.Cells[z] = make([]Cell, width)
		for x := 0; x < width; x++ {
			if x == 0 || z == 0 || x == width-1 || z == depth-1 {
				g.Cells[z][x] = CellWall
			}
			if z == doorZ && x >= doorX-1 && x <= doorX+1 {
				g.Cells[z][x] = CellDoor
			}
		}
	}

	for _, o := range obstacles {
		halfW, halfH := o.Width/2, o.Height/2
		for x := o.X - halfW; x <= o.X+halfW-1; x++ {
			for z := o.Z - halfH; z <= o.Z+halfH-1; z++ {
				if g.inBounds(x, z) {
					g.Cells[z][x] = o.Kind
				}
			}
		}
	}
	return g
}

func (g *Grid) inBounds(x, z int) bool {
	return x >= 0 && x < g.Width && z >= 0 && z < g.Depth
}

// At returns the cell at grid coordinates. Anything outside the room is
// wall.
func (g *Grid) At(x, z int) Cell {
	if !g.inBounds(x, z) {
		return CellWall
	}
	return g.Cells[z][x]
}

// CellAt returns the cell under a world position. World cell n covers grid
// index n-1.
func (g *Grid) CellAt(pos vecmath.Vector3) Cell {
	x := int(math.Round(pos.X)) - 1
	z := int(math.Round(pos.Z)) - 1
	return g.At(x, z)
}

// String draws the grid one row per line, z ascending.
func (g *Grid) String() string {
	var b strings.Builder
	for z := 0; z < g.Depth; z++ {
		for x := 0; x < g.Width; x++ {
			b.WriteByte(glyphs[g.Cells[z][x]])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
