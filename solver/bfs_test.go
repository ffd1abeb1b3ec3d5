package solver

import (
	"testing"

	"github.com/beka-birhanu/vinom-solver/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBFSOpenGrid(t *testing.T) {
	g := openGrid(t, 3, 3)

	phases := drive(t, NewBFS(g), g)
	assert.Equal(t, Finished, phases[len(phases)-1])

	// Straight down the middle column.
	cells := assertValidPath(t, g)
	assert.Len(t, cells, 3)
	assert.True(t, cells[maze.Position{Row: 1, Col: 1}])

	// Discovery order with the S,W,E,N expansion: entry=1, (1,1)=2,
	// (0,0)=3, (0,2)=4, exit=5.
	assert.Equal(t, int32(5), g.Order(g.End()))
	assert.Equal(t, int32(1), g.Order(g.Start()))
}

func TestBFSPhaseSequence(t *testing.T) {
	g := openGrid(t, 3, 3)

	phases := drive(t, NewBFS(g), g)

	var searching, marking int
	for _, p := range phases {
		switch p {
		case Searching:
			searching++
		case Backtracking:
			marking++
		}
	}
	assert.Equal(t, 5, searching, "one step per frontier dequeue")
	assert.Equal(t, 3, marking, "one step per path cell")
	assert.Equal(t, Finished, phases[len(phases)-1])
}

func TestBFSSingleCell(t *testing.T) {
	g := openGrid(t, 1, 1)
	require.Equal(t, g.Start(), g.End())

	phases := drive(t, NewBFS(g), g)
	assert.Equal(t, Finished, phases[len(phases)-1])
	assert.True(t, g.Has(g.Start(), maze.OnPath))
}

func TestBFSNoSolution(t *testing.T) {
	g := walledGrid(t, 3, 3)

	phases := drive(t, NewBFS(g), g)
	assert.Equal(t, NoSolution, phases[len(phases)-1])
	assert.Empty(t, pathCells(g))
}

func TestBFSWallBetweenStartAndOnlyNeighbor(t *testing.T) {
	// A 1-wide corridor with the very first edge walled off.
	g := walledGrid(t, 1, 4)
	carvePath(g, maze.Position{Row: 1, Col: 0}, maze.South, maze.South)

	phases := drive(t, NewBFS(g), g)
	assert.Equal(t, NoSolution, phases[len(phases)-1])
}

func TestBFSRepeatAfterReset(t *testing.T) {
	g := walledGrid(t, 5, 5)
	carvePath(g, g.Start(), maze.West, maze.South, maze.South, maze.South, maze.South, maze.East)

	drive(t, NewBFS(g), g)
	first := pathCells(g)

	g.Reset()
	drive(t, NewBFS(g), g)
	second := pathCells(g)

	assert.Equal(t, first, second, "deterministic across reset")
}
