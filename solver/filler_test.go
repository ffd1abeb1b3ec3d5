package solver

import (
	"testing"

	"github.com/beka-birhanu/vinom-solver/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandRange(t *testing.T) {
	// Remainder rows distribute one each over the leading bands.
	cases := []struct {
		height int
		want   [4][2]int
	}{
		{height: 8, want: [4][2]int{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{height: 10, want: [4][2]int{{0, 3}, {3, 6}, {6, 8}, {8, 10}}},
		{height: 3, want: [4][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 3}}},
		{height: 1, want: [4][2]int{{0, 1}, {1, 1}, {1, 1}, {1, 1}}},
	}

	for _, c := range cases {
		prev := 0
		for i := 0; i < 4; i++ {
			start, end := bandRange(i, 4, c.height)
			assert.Equal(t, c.want[i][0], start, "height %d band %d start", c.height, i)
			assert.Equal(t, c.want[i][1], end, "height %d band %d end", c.height, i)
			assert.Equal(t, prev, start, "bands must be contiguous")
			prev = end
		}
		assert.Equal(t, c.height, prev, "bands must cover all rows")
	}
}

func TestFillerPrunesDeadEndCorridor(t *testing.T) {
	// The only route is straight down the middle; a long dead-end
	// corridor runs along the east wall. The pruners must eat the whole
	// corridor, the walker must never enter it, and the final path is the
	// unique skeleton path.
	g := walledGrid(t, 10, 10)
	// The real route serpentines through columns 0-5, ten rows deep, so
	// the backward flood from the exit is still far away when the pruners
	// finish eating the corridor.
	snake := []maze.Direction{
		maze.West, maze.West, maze.West, maze.West, maze.West, maze.South,
		maze.East, maze.East, maze.East, maze.East, maze.East, maze.South,
		maze.West, maze.West, maze.West, maze.West, maze.West, maze.South,
		maze.East, maze.East, maze.East, maze.East, maze.East, maze.South,
		maze.West, maze.West, maze.West, maze.West, maze.West, maze.South,
		maze.East, maze.East, maze.East, maze.East, maze.East, maze.South,
		maze.West, maze.West, maze.West, maze.West, maze.West, maze.South,
		maze.East, maze.East, maze.East, maze.East, maze.East, maze.South,
		maze.West, maze.West, maze.West, maze.West, maze.West, maze.South,
		maze.East, maze.East, maze.East, maze.East, maze.East,
	}
	spine := carvePath(g, g.Start(), snake...)
	deadEnd := carvePath(g, g.Start(),
		maze.East, maze.East, maze.East, maze.East,
		maze.South, maze.South, maze.South, maze.South, maze.South)
	deadEnd = deadEnd[1:] // the entry itself is not part of the corridor

	phases := drive(t, NewFiller(g), g)
	assert.Equal(t, Finished, phases[len(phases)-1])

	cells := assertValidPath(t, g)
	assert.Len(t, cells, len(spine))
	for _, p := range spine {
		assert.True(t, cells[p], "spine cell %v missing", p)
	}

	for _, p := range deadEnd {
		assert.True(t, g.Has(p, maze.Pruned), "dead-end cell %v not pruned", p)
		assert.False(t, g.Has(p, maze.VisitedFwd), "walker entered dead-end cell %v", p)
		assert.False(t, g.Has(p, maze.OnPath), "dead-end cell %v on path", p)
	}
}

func TestFillerParentHintsOnPath(t *testing.T) {
	// Every path cell beyond the walker's own trail carries a parent
	// pointer written by the backward flood.
	g := walledGrid(t, 6, 6)
	carvePath(g, g.Start(), maze.South, maze.South, maze.South, maze.South, maze.South)
	carvePath(g, g.Start(), maze.West, maze.South) // small dead stub

	f := NewFiller(g)
	phases := drive(t, f, g)
	require.Equal(t, Finished, phases[len(phases)-1])

	trail := map[maze.Position]bool{g.Start(): true}
	p := g.Start()
	for _, d := range f.walker.trail {
		p = p.Move(d)
		trail[p] = true
	}

	for cell := range pathCells(g) {
		if trail[cell] || cell == g.End() {
			continue
		}
		_, ok := g.ParentDir(cell)
		assert.True(t, ok, "path cell %v has no parent hint", cell)
	}
}

func TestFillerShortMaze(t *testing.T) {
	// Fewer rows than pruners: trailing bands are empty and must idle
	// harmlessly.
	g := walledGrid(t, 5, 2)
	carvePath(g, g.Start(), maze.West, maze.South, maze.East)

	phases := drive(t, NewFiller(g), g)
	assert.Equal(t, Finished, phases[len(phases)-1])
	assertValidPath(t, g)
}

func TestFillerSingleCell(t *testing.T) {
	g := openGrid(t, 1, 1)

	phases := drive(t, NewFiller(g), g)
	assert.Equal(t, Finished, phases[len(phases)-1])
	assert.True(t, g.Has(g.Start(), maze.OnPath))
}

func TestFillerNoSolution(t *testing.T) {
	g := walledGrid(t, 4, 4)

	phases := drive(t, NewFiller(g), g)
	assert.Equal(t, NoSolution, phases[len(phases)-1])
	assert.Empty(t, pathCells(g))
}

func TestFillerCrossBandHandOff(t *testing.T) {
	// A dead-end corridor spanning all four row bands: pruning it to the
	// root requires the inter-band inbound queues. The real route
	// serpentines through columns 1-6 so the search is still running when
	// the cascade reaches the bottom band.
	g := walledGrid(t, 7, 8)
	carvePath(g, g.Start(),
		maze.West, maze.West, maze.South,
		maze.East, maze.East, maze.East, maze.East, maze.East, maze.South,
		maze.West, maze.West, maze.West, maze.West, maze.West, maze.South,
		maze.East, maze.East, maze.East, maze.East, maze.East, maze.South,
		maze.West, maze.West, maze.West, maze.West, maze.West, maze.South,
		maze.East, maze.East, maze.East, maze.East, maze.East, maze.South,
		maze.West, maze.West, maze.West, maze.West, maze.West, maze.South,
		maze.East, maze.East)
	branch := carvePath(g, maze.Position{Row: 7, Col: 1}, maze.West,
		maze.North, maze.North, maze.North, maze.North, maze.North, maze.North)
	branch = branch[1:]

	phases := drive(t, NewFiller(g), g)
	assert.Equal(t, Finished, phases[len(phases)-1])

	for _, p := range branch {
		assert.True(t, g.Has(p, maze.Pruned), "cross-band cell %v not pruned", p)
	}
	assertValidPath(t, g)
}
