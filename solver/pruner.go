package solver

import (
	"github.com/beka-birhanu/vinom-solver/maze"
)

type prunerPhase uint8

const (
	phaseScan prunerPhase = iota
	phasePrune
)

// pruner eliminates dead-end corridors inside one contiguous row band.
// A scan pass collects the band's static dead ends one row per step; the
// prune pass then retires one cell per step, cascading onto neighbors that
// become dead ends in turn. Cascades that leave the band are handed to the
// neighboring pruner through its inbound queue.
type pruner struct {
	g  *maze.Grid
	id int

	rowStart int
	rowEnd   int // exclusive
	above    *pruner
	below    *pruner

	phase   prunerPhase
	scanRow int
	stack   []maze.Position
	inbound []maze.Position
}

func newPruner(g *maze.Grid, id, rowStart, rowEnd int) *pruner {
	p := &pruner{
		g:        g,
		id:       id,
		rowStart: rowStart,
		rowEnd:   rowEnd,
		scanRow:  rowStart,
	}
	if rowStart >= rowEnd {
		p.phase = phasePrune
	}
	return p
}

// bandRange splits height rows over count bands, spreading the remainder
// one row each over the leading bands.
func bandRange(i, count, height int) (int, int) {
	base := height / count
	rem := height % count
	start := i*base + min(i, rem)
	end := (i+1)*base + min(i+1, rem)
	return start, end
}

// liveMoves lists the walkable directions out of p whose target cell has
// not been pruned. Recomputed on every use: a neighbor may have been
// pruned since the cell was queued.
func liveMoves(g *maze.Grid, p maze.Position) []maze.Direction {
	var moves []maze.Direction
	for _, d := range maze.Dirs {
		if g.CanMove(p, d) && !g.Has(p.Move(d), maze.Pruned) {
			moves = append(moves, d)
		}
	}
	return moves
}

func (p *pruner) step() {
	if p.phase == phaseScan {
		p.scanStep()
		return
	}
	p.pruneStep()
}

// scanStep sweeps one row, queueing every cell with at most one live move.
// The entry and exit cells are never queued.
func (p *pruner) scanStep() {
	row := p.scanRow
	start, end := p.g.Start(), p.g.End()
	for col := 0; col < p.g.Width; col++ {
		pos := maze.Position{Row: row, Col: col}
		if pos == start || pos == end {
			continue
		}
		if len(liveMoves(p.g, pos)) <= 1 {
			p.stack = append(p.stack, pos)
		}
	}
	p.scanRow++
	if p.scanRow >= p.rowEnd {
		p.phase = phasePrune
	}
}

// pruneStep retires one queued cell. Kept to a single cell per step so the
// pruning front animates smoothly.
func (p *pruner) pruneStep() {
	if len(p.inbound) > 0 {
		p.stack = append(p.stack, p.inbound...)
		p.inbound = p.inbound[:0]
	}
	if len(p.stack) == 0 {
		return // stay alive; a neighbor band may still send work
	}

	pos := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if p.g.Has(pos, maze.Pruned) {
		return
	}

	p.g.Set(pos, maze.Pruned)
	p.g.SetOwner(pos, p.id)

	moves := liveMoves(p.g, pos)
	if len(moves) != 1 {
		return
	}

	n := pos.Move(moves[0])
	if n == p.g.Start() || n == p.g.End() {
		return
	}
	if len(liveMoves(p.g, n)) > 1 {
		return
	}

	switch {
	case n.Row < p.rowStart:
		if p.above != nil {
			p.above.inbound = append(p.above.inbound, n)
		}
	case n.Row >= p.rowEnd:
		if p.below != nil {
			p.below.inbound = append(p.below.inbound, n)
		}
	default:
		p.stack = append(p.stack, n)
	}
}
