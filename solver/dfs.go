package solver

import (
	"github.com/beka-birhanu/vinom-solver/maze"
)

// dfsProbeOrder is the fixed neighbor probe order of the DFS solver.
var dfsProbeOrder = [4]maze.Direction{maze.South, maze.East, maze.West, maze.North}

type dfsState uint8

const (
	dfsSearching dfsState = iota
	dfsMarking
	dfsDone
)

// DFS is the depth-first solver. Cells on the active stack carry the
// on-stack bit; when the search retreats from a cell its grey trail
// (visited + on-stack) is erased, and exhausted true junctions are marked
// dead.
type DFS struct {
	g       *maze.Grid
	stack   []maze.Position
	counter int32

	state  dfsState
	path   []maze.Position
	marked int
	result Phase
}

// NewDFS seeds a DFS solver at the grid's entry cell.
func NewDFS(g *maze.Grid) *DFS {
	s := &DFS{g: g, counter: 1}
	start := g.Start()
	g.Set(start, maze.Visited|maze.OnStack)
	g.SetOrder(start, s.counter)
	s.stack = append(s.stack, start)
	return s
}

// Step advances one animation step: one push or pop while searching, one
// path-cell mark while backtracking.
func (s *DFS) Step() Phase {
	switch s.state {
	case dfsSearching:
		return s.search()
	case dfsMarking:
		return s.mark()
	default:
		return s.result
	}
}

func (s *DFS) search() Phase {
	if len(s.stack) == 0 {
		s.state = dfsDone
		s.result = NoSolution
		return NoSolution
	}

	top := s.stack[len(s.stack)-1]

	if top == s.g.End() {
		s.path = parentChain(s.g, top)
		s.state = dfsMarking
		return Searching
	}

	for _, d := range dfsProbeOrder {
		if !s.g.CanMove(top, d) {
			continue
		}
		n := top.Move(d)
		// The visit order, unlike the visited bit, survives the grey-trail
		// erase, so a cell the search retreated from is never pushed again.
		if s.g.Order(n) >= 0 {
			continue
		}
		s.counter++
		// Keep at most one parent bit set on the cell.
		s.g.Clear(n, maze.ParentMask)
		s.g.Set(n, maze.Visited|maze.OnStack|maze.ParentBit(d.Reverse()))
		s.g.SetOrder(n, s.counter)
		s.stack = append(s.stack, n)
		return Searching
	}

	// Exhausted: retreat, erasing the grey trail so only the active path
	// stays highlighted.
	s.stack = s.stack[:len(s.stack)-1]
	s.g.Clear(top, maze.Visited|maze.OnStack)
	if s.g.IsJunction(top) {
		s.g.Set(top, maze.DeadJunction)
	}
	return Searching
}

func (s *DFS) mark() Phase {
	if s.marked >= len(s.path) {
		s.state = dfsDone
		s.result = Finished
		return Finished
	}
	s.g.Set(s.path[s.marked], maze.OnPath)
	s.marked++
	return Backtracking
}

// Path returns the marked solution cells once the solver has finished.
func (s *DFS) Path() []maze.Position {
	if s.result != Finished {
		return nil
	}
	return s.path
}
