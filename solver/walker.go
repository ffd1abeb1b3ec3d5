package solver

import (
	"github.com/beka-birhanu/vinom-solver/maze"
)

type team uint8

const (
	teamFwd team = iota // entry-to-exit
	teamBwd             // exit-to-entry
)

type walkerState uint8

const (
	atJunction walkerState = iota
	inCorridor
	backtracking
)

type stepResult uint8

const (
	stepProgress stepResult = iota
	stepDead
	stepFound
)

// junction is one private stack frame of a walker: the junction cell, the
// direction pointing back toward the previous frame, and the branch set.
type junction struct {
	at          maze.Position
	cameFrom    maze.Direction
	hasCameFrom bool
	branches    Branches
}

// walker is one cooperative searcher of the Swarm solver. Walkers 0-2 form
// the forward team spawned at the entry, walkers 3-5 the backward team at
// the exit. Each walker owns a private junction stack and runs a three
// state machine: junction selection, corridor coasting, visual backtrack.
type walker struct {
	id   int
	team team
	g    *maze.Grid

	state walkerState
	stack []junction

	corridorDir     maze.Direction
	targetPos       maze.Position
	backtrackTarget maze.Position

	done bool
}

func newWalker(g *maze.Grid, id int, t team, spawn maze.Position) *walker {
	return &walker{
		id:        id,
		team:      t,
		g:         g,
		state:     atJunction,
		targetPos: spawn,
		stack: []junction{{
			at:       spawn,
			branches: NewBranches(g, spawn, id),
		}},
	}
}

func (w *walker) teamBit() maze.State {
	if w.team == teamFwd {
		return maze.VisitedFwd
	}
	return maze.VisitedBwd
}

// collided reports whether p carries the rival team's evidence (or, for the
// forward team, is the exit itself). Checked before any claim is staked so
// the rival's ownership trail stays intact for reconstruction.
func (w *walker) collided(p maze.Position) bool {
	if w.team == teamFwd {
		return p == w.g.End() || w.g.Has(p, maze.VisitedBwd)
	}
	return w.g.Has(p, maze.VisitedFwd)
}

func (w *walker) step() stepResult {
	switch w.state {
	case atJunction:
		return w.stepJunction()
	case inCorridor:
		return w.stepCorridor()
	default:
		return w.stepBacktrack()
	}
}

func (w *walker) stepJunction() stepResult {
	top := len(w.stack) - 1
	at := w.stack[top].at

	if w.collided(at) {
		w.targetPos = at
		return stepFound
	}

	w.g.Set(at, w.teamBit())
	w.g.SetOwner(at, w.id)

	d, ok := w.stack[top].branches.NextMT(w.g, at)
	if !ok {
		// Every branch out of this junction is dead: retreat.
		w.stack = w.stack[:top]
		if w.g.IsJunction(at) {
			w.g.Set(at, maze.DeadJunction)
		} else {
			w.g.Clear(at, maze.VisitedFwd|maze.VisitedBwd|maze.Visited)
		}
		if len(w.stack) == 0 {
			return stepDead
		}
		parent := &w.stack[len(w.stack)-1]
		parent.branches.PopCurrent(w.g, parent.at)
		w.state = backtracking
		w.backtrackTarget = parent.at
		w.targetPos = at
		return stepProgress
	}

	w.state = inCorridor
	w.corridorDir = d
	w.targetPos = at
	return stepProgress
}

func (w *walker) stepCorridor() stepResult {
	next := w.targetPos.Move(w.corridorDir)
	parentBack := w.corridorDir.Reverse()

	if w.collided(next) {
		// Record where we crossed over without touching the rival's team
		// bit or ownership at next; reconstruction needs that evidence.
		w.stack = append(w.stack, junction{
			at:          next,
			cameFrom:    parentBack,
			hasCameFrom: true,
			branches:    NewBranches(w.g, next, w.id),
		})
		w.targetPos = next
		return stepFound
	}

	w.g.Set(next, w.teamBit())
	w.g.SetOwner(next, w.id)
	if _, ok := w.g.ParentDir(next); !ok {
		w.g.Set(next, maze.ParentBit(parentBack))
	}
	w.targetPos = next

	br := NewBranches(w.g, next, w.id)
	br.Remove(parentBack)
	if br.Count() != 1 {
		// A real junction (or a dead end): decide on the next round.
		w.stack = append(w.stack, junction{
			at:          next,
			cameFrom:    parentBack,
			hasCameFrom: true,
			branches:    br,
		})
		w.state = atJunction
		return stepProgress
	}

	d, _ := br.Next()
	w.corridorDir = d
	return stepProgress
}

// stepBacktrack rewinds the walker one cell toward the junction it
// retreated to. Purely visual: team bits on abandoned corridor cells are
// wiped as it passes.
func (w *walker) stepBacktrack() stepResult {
	if !w.g.IsJunction(w.targetPos) {
		w.g.Clear(w.targetPos, maze.VisitedFwd|maze.VisitedBwd)
	}

	if w.targetPos == w.backtrackTarget {
		w.state = atJunction
		return stepProgress
	}

	d, ok := w.g.ParentDir(w.targetPos)
	if !ok {
		w.state = atJunction
		return stepProgress
	}
	w.targetPos = w.targetPos.Move(d)
	return stepProgress
}
