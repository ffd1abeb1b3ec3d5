package solver

import (
	"log"
	"os"

	"github.com/beka-birhanu/vinom-solver/maze"
)

const fillerPruners = 4

// fillerProbeOrder is the neighbor expansion order of the backward BFS.
var fillerProbeOrder = [4]maze.Direction{maze.South, maze.West, maze.East, maze.North}

type fillerState uint8

const (
	fillerSearching fillerState = iota
	fillerMarking
	fillerDone
)

// skeletonWalker coasts from the entry toward the exit over the un-pruned
// skeleton. It only moves while exactly one live direction remains (the
// pruners collapse choices over time) and finishes as soon as it reaches a
// cell the backward BFS has already labeled with a parent pointer.
type skeletonWalker struct {
	g           *maze.Grid
	curr        maze.Position
	cameFrom    maze.Direction
	hasCameFrom bool
	trail       []maze.Direction

	done       bool
	overlap    maze.Position
	hasOverlap bool
	reachedEnd bool
	failed     bool
}

func (w *skeletonWalker) step() {
	if w.done {
		return
	}

	if _, ok := w.g.ParentDir(w.curr); ok {
		w.overlap = w.curr
		w.hasOverlap = true
		w.done = true
		return
	}
	if w.curr == w.g.End() {
		w.reachedEnd = true
		w.done = true
		return
	}

	var moves []maze.Direction
	for _, d := range liveMoves(w.g, w.curr) {
		if w.hasCameFrom && d == w.cameFrom {
			continue
		}
		moves = append(moves, d)
	}

	switch len(moves) {
	case 1:
		d := moves[0]
		w.curr = w.curr.Move(d)
		w.trail = append(w.trail, d)
		w.g.Set(w.curr, maze.VisitedFwd)
		w.cameFrom = d.Reverse()
		w.hasCameFrom = true
	case 0:
		w.failed = true
		w.done = true
	default:
		// More than one choice: wait for the pruners to collapse them.
	}
}

// backwardBFS floods from the exit over un-pruned cells, writing parent
// pointers the walker and the reconstruction follow toward the exit. Two
// frontier pops per step keep it roughly in pace with the walker.
type backwardBFS struct {
	g     *maze.Grid
	queue []maze.Position

	done         bool
	reachedStart bool
}

func (b *backwardBFS) step() {
	if b.done {
		return
	}

	for k := 0; k < 2; k++ {
		if len(b.queue) == 0 {
			b.done = true
			return
		}
		p := b.queue[0]
		b.queue = b.queue[1:]

		if b.g.Has(p, maze.Pruned) {
			continue // pruned after being queued
		}
		if p == b.g.Start() {
			b.reachedStart = true
			b.done = true
			return
		}

		for _, d := range fillerProbeOrder {
			if !b.g.CanMove(p, d) {
				continue
			}
			n := p.Move(d)
			if b.g.Has(n, maze.VisitedBwd|maze.Pruned) {
				continue
			}
			b.g.Set(n, maze.VisitedBwd|maze.ParentBit(d.Reverse()))
			b.queue = append(b.queue, n)
		}
	}
}

// Filler is the dead-end-filling solver: four row-banded pruners eliminate
// dead corridors while a forward walker coasts down the emerging skeleton
// and a backward BFS fills in from the exit. The solution is the walker's
// recorded trail spliced with the BFS parent chain at the overlap cell.
type Filler struct {
	g       *maze.Grid
	pruners [fillerPruners]*pruner
	walker  *skeletonWalker
	bfs     *backwardBFS
	logger  *log.Logger

	state  fillerState
	path   []maze.Position
	marked int
	result Phase
}

// NewFiller builds a Filler solver with the row bands partitioned over the
// pruners, the remainder rows going one each to the leading bands.
func NewFiller(g *maze.Grid) *Filler {
	f := &Filler{
		g:      g,
		logger: log.New(os.Stderr, "filler: ", log.LstdFlags),
		walker: &skeletonWalker{g: g, curr: g.Start()},
		bfs:    &backwardBFS{g: g},
	}

	for i := 0; i < fillerPruners; i++ {
		start, end := bandRange(i, fillerPruners, g.Height)
		f.pruners[i] = newPruner(g, i, start, end)
	}
	for i := 0; i < fillerPruners; i++ {
		if i > 0 {
			f.pruners[i].above = f.pruners[i-1]
		}
		if i < fillerPruners-1 {
			f.pruners[i].below = f.pruners[i+1]
		}
	}

	end := g.End()
	g.Set(end, maze.VisitedBwd)
	f.bfs.queue = append(f.bfs.queue, end)
	return f
}

// SetLogger replaces the diagnostics logger.
func (f *Filler) SetLogger(l *log.Logger) {
	if l != nil {
		f.logger = l
	}
}

// Step advances one animation step: one round of pruners + walker + BFS
// while searching, one path-cell mark while backtracking.
func (f *Filler) Step() Phase {
	switch f.state {
	case fillerSearching:
		return f.round()
	case fillerMarking:
		return f.mark()
	default:
		return f.result
	}
}

func (f *Filler) round() Phase {
	for _, p := range f.pruners {
		p.step()
	}
	f.walker.step()
	f.bfs.step()

	// First exit, from either side, ends the search.
	if f.walker.reachedEnd || f.bfs.reachedStart || (f.walker.done && f.walker.hasOverlap) {
		f.path = f.reconstruct()
		f.state = fillerMarking
		return Searching
	}

	// The backward flood covers every un-pruned cell reachable from the
	// exit; exhausting it without touching the entry means no path exists
	// and the walker can never overlap.
	if f.bfs.done && (f.walker.done || !f.walker.hasOverlap) {
		f.state = fillerDone
		f.result = NoSolution
		return NoSolution
	}

	return Searching
}

func (f *Filler) mark() Phase {
	if f.marked >= len(f.path) {
		f.state = fillerDone
		f.result = Finished
		return Finished
	}
	f.g.Set(f.path[f.marked], maze.OnPath)
	f.marked++
	return Backtracking
}

// reconstruct replays the walker's recorded trail from the entry, then
// follows the backward-BFS parent pointers from wherever the trail ends
// until the exit.
func (f *Filler) reconstruct() []maze.Position {
	cells := []maze.Position{f.g.Start()}
	c := f.g.Start()
	for _, d := range f.walker.trail {
		c = c.Move(d)
		cells = append(cells, c)
	}

	for steps := 0; c != f.g.End(); steps++ {
		if steps > f.g.Width*f.g.Height {
			f.logger.Printf("parent chain from %v did not reach the exit", cells[len(cells)-1])
			break
		}
		d, ok := f.g.ParentDir(c)
		if !ok {
			f.logger.Printf("parent chain broken at %v", c)
			break
		}
		c = c.Move(d)
		cells = append(cells, c)
	}

	return cells
}

// Path returns the marked solution cells once the solver has finished.
func (f *Filler) Path() []maze.Position {
	if f.result != Finished {
		return nil
	}
	return f.path
}
