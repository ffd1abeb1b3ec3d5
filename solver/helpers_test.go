package solver

import (
	"testing"

	"github.com/beka-birhanu/vinom-solver/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walledGrid builds a grid with every wall present; tests carve the
// corridors they need.
func walledGrid(t *testing.T, width, height int) *maze.Grid {
	t.Helper()
	g, err := maze.NewGrid(width, height)
	require.NoError(t, err)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			g.SetWalls(maze.Position{Row: row, Col: col}, true, true)
		}
	}
	return g
}

// openGrid builds a grid with no internal walls at all.
func openGrid(t *testing.T, width, height int) *maze.Grid {
	t.Helper()
	g, err := maze.NewGrid(width, height)
	require.NoError(t, err)
	return g
}

func setWall(g *maze.Grid, p maze.Position, bit maze.State, present bool) {
	east := g.Has(p, maze.EastWall)
	south := g.Has(p, maze.SouthWall)
	if bit == maze.EastWall {
		east = present
	} else {
		south = present
	}
	g.SetWalls(p, east, south)
}

// carve opens the edge leaving p in direction d.
func carve(g *maze.Grid, p maze.Position, d maze.Direction) {
	switch d {
	case maze.East:
		setWall(g, p, maze.EastWall, false)
	case maze.South:
		setWall(g, p, maze.SouthWall, false)
	case maze.West:
		setWall(g, p.Move(maze.West), maze.EastWall, false)
	case maze.North:
		setWall(g, p.Move(maze.North), maze.SouthWall, false)
	}
}

// carvePath opens a corridor along the walk and returns the visited cells.
func carvePath(g *maze.Grid, from maze.Position, dirs ...maze.Direction) []maze.Position {
	cells := []maze.Position{from}
	p := from
	for _, d := range dirs {
		carve(g, p, d)
		p = p.Move(d)
		cells = append(cells, p)
	}
	return cells
}

// pathCells collects every cell carrying the path bit.
func pathCells(g *maze.Grid) map[maze.Position]bool {
	cells := make(map[maze.Position]bool)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			p := maze.Position{Row: row, Col: col}
			if g.Has(p, maze.OnPath) {
				cells[p] = true
			}
		}
	}
	return cells
}

// assertValidPath checks that the marked path cells connect the entry to
// the exit through open edges.
func assertValidPath(t *testing.T, g *maze.Grid) map[maze.Position]bool {
	t.Helper()
	cells := pathCells(g)
	require.True(t, cells[g.Start()], "entry not on path")
	require.True(t, cells[g.End()], "exit not on path")

	// Flood the path cells from the entry; the exit must be reachable
	// without leaving the marked set.
	reached := map[maze.Position]bool{g.Start(): true}
	frontier := []maze.Position{g.Start()}
	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]
		for _, d := range maze.Dirs {
			n := p.Move(d)
			if g.CanMove(p, d) && cells[n] && !reached[n] {
				reached[n] = true
				frontier = append(frontier, n)
			}
		}
	}
	assert.True(t, reached[g.End()], "exit unreachable within the marked path")
	return cells
}

// drive steps the solver to completion and returns the emitted phases.
func drive(t *testing.T, s Solver, g *maze.Grid) []Phase {
	t.Helper()
	phases, err := Run(s, g.Width*g.Height*64+64)
	require.NoError(t, err)
	require.NotEmpty(t, phases)
	return phases
}
