package solver

import (
	"github.com/beka-birhanu/vinom-solver/maze"
)

// bfsProbeOrder is the fixed neighbor expansion order of the BFS solver.
var bfsProbeOrder = [4]maze.Direction{maze.South, maze.West, maze.East, maze.North}

type bfsState uint8

const (
	bfsSearching bfsState = iota
	bfsMarking
	bfsDone
)

// BFS is the breadth-first solver: FIFO frontier, parent-pointer
// reconstruction. It finds a shortest path and records a monotonic visit
// order on every discovered cell.
type BFS struct {
	g       *maze.Grid
	queue   []maze.Position
	counter int32

	state  bfsState
	path   []maze.Position
	marked int
	result Phase
}

// NewBFS seeds a BFS solver at the grid's entry cell.
func NewBFS(g *maze.Grid) *BFS {
	s := &BFS{g: g, counter: 1}
	start := g.Start()
	g.Set(start, maze.Visited)
	g.SetOrder(start, s.counter)
	s.queue = append(s.queue, start)
	return s
}

// Step advances one animation step: one frontier dequeue while searching,
// one path-cell mark while backtracking.
func (s *BFS) Step() Phase {
	switch s.state {
	case bfsSearching:
		return s.search()
	case bfsMarking:
		return s.mark()
	default:
		return s.result
	}
}

func (s *BFS) search() Phase {
	if len(s.queue) == 0 {
		s.state = bfsDone
		s.result = NoSolution
		return NoSolution
	}

	p := s.queue[0]
	s.queue = s.queue[1:]

	if p == s.g.End() {
		// Path cells collected exit-first; they are marked in that same
		// order, walking the parent pointers back to the entry.
		s.path = parentChain(s.g, p)
		s.state = bfsMarking
		return Searching
	}

	for _, d := range bfsProbeOrder {
		if !s.g.CanMove(p, d) {
			continue
		}
		n := p.Move(d)
		if s.g.Has(n, maze.Visited) {
			continue
		}
		s.counter++
		s.g.Set(n, maze.Visited|maze.ParentBit(d.Reverse()))
		s.g.SetOrder(n, s.counter)
		s.queue = append(s.queue, n)
	}

	return Searching
}

func (s *BFS) mark() Phase {
	if s.marked >= len(s.path) {
		s.state = bfsDone
		s.result = Finished
		return Finished
	}
	s.g.Set(s.path[s.marked], maze.OnPath)
	s.marked++
	return Backtracking
}

// Path returns the marked solution cells once the solver has finished.
func (s *BFS) Path() []maze.Position {
	if s.result != Finished {
		return nil
	}
	return s.path
}
