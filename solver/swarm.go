package solver

import (
	"log"
	"os"

	"github.com/beka-birhanu/vinom-solver/maze"
)

const swarmWalkers = 6

type swarmState uint8

const (
	swarmSearching swarmState = iota
	swarmMarking
	swarmDone
)

// Swarm is the cooperative bidirectional solver: three walkers race from
// the entry and three from the exit until any walker steps onto a cell
// claimed by the opposing team. The search halves are then spliced: the
// forward half by a strict parent-pointer backtrack, the backward half by
// walking the rival walker's junction stack segment by segment.
type Swarm struct {
	g       *maze.Grid
	walkers [swarmWalkers]*walker
	logger  *log.Logger

	state  swarmState
	path   []maze.Position
	marked int
	result Phase
}

// NewSwarm builds a Swarm solver with both teams spawned.
func NewSwarm(g *maze.Grid) *Swarm {
	s := &Swarm{
		g:      g,
		logger: log.New(os.Stderr, "swarm: ", log.LstdFlags),
	}
	for id := 0; id < swarmWalkers; id++ {
		t, spawn := teamFwd, g.Start()
		if id >= swarmWalkers/2 {
			t, spawn = teamBwd, g.End()
		}
		s.walkers[id] = newWalker(g, id, t, spawn)
	}
	return s
}

// SetLogger replaces the diagnostics logger used for reconstruction
// failures.
func (s *Swarm) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Step advances one animation step: one scheduler round while searching,
// one path-cell mark while backtracking.
func (s *Swarm) Step() Phase {
	switch s.state {
	case swarmSearching:
		return s.round()
	case swarmMarking:
		return s.mark()
	default:
		return s.result
	}
}

// round single-steps every unfinished walker in id order. The first walker
// to report a crossing ends the round; stepping order therefore decides
// who wins a contested cell.
func (s *Swarm) round() Phase {
	alive := false
	for _, w := range s.walkers {
		if w.done {
			continue
		}
		alive = true
		switch w.step() {
		case stepDead:
			w.done = true
		case stepFound:
			s.path = s.reconstruct(w)
			s.state = swarmMarking
			return Searching
		}
	}

	if !alive {
		s.state = swarmDone
		s.result = NoSolution
		return NoSolution
	}
	return Searching
}

func (s *Swarm) mark() Phase {
	if s.marked >= len(s.path) {
		s.state = swarmDone
		s.result = Finished
		return Finished
	}
	s.g.Set(s.path[s.marked], maze.OnPath)
	s.marked++
	return Backtracking
}

// reconstruct assembles the full path at the collision cell reported by
// the given walker. The forward half walks parent pointers back to the
// entry; the backward half replays the rival walker's junction stack. A
// failed backward walk truncates that half and is logged, never fatal.
func (s *Swarm) reconstruct(reporter *walker) []maze.Position {
	collision := reporter.targetPos

	path := s.forwardHalf(collision)
	path = append(path, s.backwardHalf(collision)...)

	end := s.g.End()
	if len(path) == 0 || path[len(path)-1] != end {
		path = append(path, end)
	}
	return path
}

// forwardHalf returns the entry-side cells in marking order (entry first).
// When the collision cell itself was never claimed by the forward team the
// walk starts at its first forward-claimed neighbor.
func (s *Swarm) forwardHalf(collision maze.Position) []maze.Position {
	from := collision
	if !s.g.Has(from, maze.VisitedFwd) && from != s.g.Start() {
		found := false
		for _, d := range maze.Dirs {
			if s.g.CanMove(from, d) && s.g.Has(from.Move(d), maze.VisitedFwd) {
				from = from.Move(d)
				found = true
				break
			}
		}
		if !found {
			if collision == s.g.Start() || collision == s.g.End() {
				return nil
			}
			s.logger.Printf("no forward-team cell adjacent to collision %v", collision)
			return nil
		}
	}

	half := parentChain(s.g, from)
	reversePositions(half)
	return half
}

// backwardHalf returns the exit-side cells in marking order, walking the
// rival walker's stack from the collision frame down to its spawn. The
// final exit cell is appended by the caller.
func (s *Swarm) backwardHalf(collision maze.Position) []maze.Position {
	rival := s.findRival(collision)
	if rival == nil {
		// The reporter reached the exit on its own; there is no backward
		// trail to replay.
		return nil
	}

	stack := rival.stack
	k := -1
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].at == collision {
			k = i
			break
		}
	}

	var cells []maze.Position
	if k < 0 {
		// Mid-corridor crossing: coast along the rival's trail until a
		// stacked junction comes up, then replay the stack from there.
		walked, idx, ok := s.walkToStack(collision, rival)
		if !ok {
			s.logger.Printf("backward walk from %v found no stacked junction", collision)
			return cells
		}
		cells = append(cells, walked...)
		k = idx
	}

	for i := k; i >= 1; i-- {
		cells = append(cells, stack[i].at)
		if !stack[i].hasCameFrom {
			s.logger.Printf("stack frame %d at %v has no inbound direction", i, stack[i].at)
			return cells
		}
		seg, ok := s.walkSegment(stack[i].at, stack[i].cameFrom, stack[i-1].at, rival.id)
		cells = append(cells, seg...)
		if !ok {
			s.logger.Printf("backward segment %v -> %v failed", stack[i].at, stack[i-1].at)
			return cells
		}
	}
	return cells
}

// findRival locates the backward-team walker whose trail covers the
// collision cell or one of its walkable neighbors.
func (s *Swarm) findRival(collision maze.Position) *walker {
	candidates := []maze.Position{collision}
	for _, d := range maze.Dirs {
		if s.g.CanMove(collision, d) {
			candidates = append(candidates, collision.Move(d))
		}
	}
	for _, c := range candidates {
		if !s.g.Has(c, maze.VisitedBwd) {
			continue
		}
		if id, ok := s.g.Owner(c); ok && id >= swarmWalkers/2 {
			return s.walkers[id]
		}
	}
	return nil
}

// walkSegment crosses out of a junction through the corridor it was
// entered by, collecting every intermediate cell until the previous stack
// frame's cell is reached. The target cell itself is not collected; it is
// either the next frame the caller emits or the rival's spawn.
func (s *Swarm) walkSegment(from maze.Position, jump maze.Direction, target maze.Position, rivalID int) ([]maze.Position, bool) {
	var cells []maze.Position
	cur := from.Move(jump)
	last := jump

	for steps := 0; cur != target; steps++ {
		if steps > s.g.Width*s.g.Height {
			return cells, false
		}
		cells = append(cells, cur)

		adjacent := false
		for _, d := range maze.Dirs {
			if s.g.CanMove(cur, d) && cur.Move(d) == target {
				cur = target
				adjacent = true
				break
			}
		}
		if adjacent {
			break
		}

		d, ok := s.nextTrailDir(cur, last, rivalID)
		if !ok {
			return cells, false
		}
		cur = cur.Move(d)
		last = d
	}

	return cells, true
}

// walkToStack coasts from a mid-corridor collision cell along the rival's
// trail until it lands on a cell present in the rival's stack, returning
// the collected cells and the stack index reached. Both trail directions
// away from the collision are tried; only one leads down toward a stacked
// junction.
func (s *Swarm) walkToStack(collision maze.Position, rival *walker) ([]maze.Position, int, bool) {
	inStack := func(p maze.Position) int {
		for i := len(rival.stack) - 1; i >= 0; i-- {
			if rival.stack[i].at == p {
				return i
			}
		}
		return -1
	}

	for _, first := range maze.Dirs {
		if !s.g.CanMove(collision, first) {
			continue
		}
		n := collision.Move(first)
		if !s.g.Has(n, maze.VisitedBwd) {
			continue
		}

		cells := []maze.Position{collision}
		cur := n
		last := first
		for steps := 0; steps <= s.g.Width*s.g.Height; steps++ {
			if idx := inStack(cur); idx >= 0 {
				return cells, idx, true
			}
			cells = append(cells, cur)
			d, found := s.nextTrailDir(cur, last, rival.id)
			if !found {
				break
			}
			cur = cur.Move(d)
			last = d
		}
	}

	return nil, -1, false
}

// nextTrailDir picks the forward direction of a backward-team corridor
// walk: walkable, not doubling back, and leading to a cell claimed by the
// rival walker. When strict ownership finds nothing the check relaxes to
// any backward-team cell; ownership can be overwritten by a teammate that
// passed through later.
func (s *Swarm) nextTrailDir(cur maze.Position, last maze.Direction, rivalID int) (maze.Direction, bool) {
	back := last.Reverse()
	for _, d := range maze.Dirs {
		if d == back || !s.g.CanMove(cur, d) {
			continue
		}
		n := cur.Move(d)
		if !s.g.Has(n, maze.VisitedBwd) {
			continue
		}
		if id, ok := s.g.Owner(n); ok && id == rivalID {
			return d, true
		}
	}
	for _, d := range maze.Dirs {
		if d == back || !s.g.CanMove(cur, d) {
			continue
		}
		if s.g.Has(cur.Move(d), maze.VisitedBwd) {
			return d, true
		}
	}
	return maze.North, false
}

// Path returns the marked solution cells once the solver has finished.
func (s *Swarm) Path() []maze.Position {
	if s.result != Finished {
		return nil
	}
	return s.path
}
