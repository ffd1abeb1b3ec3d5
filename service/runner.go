package service

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-solver/domain"
	"github.com/beka-birhanu/vinom-solver/maze"
	"github.com/beka-birhanu/vinom-solver/service/i"
	"github.com/beka-birhanu/vinom-solver/solver"
	"github.com/google/uuid"
)

const (
	defaultMazeWidth  = 20
	defaultMazeHeight = 10

	// stepBudgetFactor bounds a run to (cells+1)*factor animation steps.
	stepBudgetFactor = 64
)

// Runner errors.
var (
	ErrRunNotFound = errors.New("run not found")
)

type runEntry struct {
	run  *dmn.Run
	grid *maze.Grid
}

// Runner owns the lifecycle of solver runs: it decodes or generates the
// maze, executes the chosen algorithm step by step, streams the frames and
// persists the outcome.
type Runner struct {
	repo        i.RunRepo
	broadcaster i.StepBroadcaster
	mazeFactory func(int, int) (*maze.Grid, error)
	logger      i.Logger

	runs map[uuid.UUID]*runEntry
	sync.RWMutex
}

// RunnerConfig carries the Runner dependencies.
type RunnerConfig struct {
	Repo        i.RunRepo
	Broadcaster i.StepBroadcaster
	MazeFactory func(int, int) (*maze.Grid, error)
	Logger      i.Logger
}

// NewRunner creates a Runner.
func NewRunner(c *RunnerConfig) (*Runner, error) {
	if c.Repo == nil || c.Logger == nil {
		return nil, errors.New("runner requires a run repo and a logger")
	}
	if c.MazeFactory == nil {
		c.MazeFactory = maze.Generate
	}
	return &Runner{
		repo:        c.Repo,
		broadcaster: c.Broadcaster,
		mazeFactory: c.MazeFactory,
		logger:      c.Logger,
		runs:        make(map[uuid.UUID]*runEntry),
	}, nil
}

// Submit registers a run for the given maze blob and solver name. An empty
// blob asks for a freshly generated maze. Execution is deferred to the
// dispatcher.
func (r *Runner) Submit(owner uuid.UUID, solverName string, blob []byte) (*dmn.Run, error) {
	if !slices.Contains(solver.Names(), solverName) {
		return nil, fmt.Errorf("%w: %q", solver.ErrUnknownSolver, solverName)
	}

	var grid *maze.Grid
	var err error
	if len(blob) == 0 {
		grid, err = r.mazeFactory(defaultMazeWidth, defaultMazeHeight)
	} else {
		grid, err = maze.DecodeBytes(blob)
	}
	if err != nil {
		return nil, err
	}

	run := dmn.NewRun(owner, solverName, grid.Width, grid.Height)

	r.Lock()
	r.runs[run.ID] = &runEntry{run: run, grid: grid}
	r.Unlock()

	if err := r.repo.Save(run); err != nil {
		r.logger.Error(fmt.Sprintf("Saving queued run %s: %s", run.ID, err))
	}
	r.logger.Info(fmt.Sprintf("Queued %s run %s over %dx%d maze", solverName, run.ID, grid.Width, grid.Height))
	return run, nil
}

// Execute runs a previously submitted run to completion, streaming one
// frame per solver step.
func (r *Runner) Execute(id uuid.UUID) error {
	r.RLock()
	entry, ok := r.runs[id]
	r.RUnlock()
	if !ok {
		return ErrRunNotFound
	}

	run, grid := entry.run, entry.grid
	grid.Reset()

	s, err := solver.New(run.Solver, grid)
	if err != nil {
		return err
	}

	r.setStatus(run, dmn.RunRunning)

	budget := grid.Width*grid.Height*stepBudgetFactor + stepBudgetFactor
	steps := 0
	var last solver.Phase
	for {
		last = s.Step()
		steps++
		if r.broadcaster != nil {
			r.broadcaster.BroadcastStep(run.ID, uint32(steps), byte(last))
		}
		if last.Terminal() {
			break
		}
		if steps >= budget {
			r.logger.Error(fmt.Sprintf("Run %s exceeded its step budget", run.ID))
			r.finishRun(run, dmn.RunFailed, steps, nil)
			return solver.ErrStepBudget
		}
	}

	switch last {
	case solver.Finished:
		path := s.Path()
		r.finishRun(run, dmn.RunFinished, steps, path)
		if r.broadcaster != nil {
			r.broadcaster.BroadcastPath(run.ID, path)
		}
	case solver.NoSolution:
		r.finishRun(run, dmn.RunNoSolution, steps, nil)
	}

	r.logger.Info(fmt.Sprintf("Run %s ended %s after %d steps", run.ID, run.Status, steps))
	return nil
}

// Status returns the current record of a run, from memory while the run is
// live and from the repository afterwards.
func (r *Runner) Status(id uuid.UUID) (*dmn.Run, error) {
	r.RLock()
	entry, ok := r.runs[id]
	r.RUnlock()
	if ok {
		return entry.run, nil
	}

	run, err := r.repo.ByID(id)
	if err != nil {
		return nil, ErrRunNotFound
	}
	return run, nil
}

func (r *Runner) setStatus(run *dmn.Run, status string) {
	r.Lock()
	run.Status = status
	r.Unlock()
	if err := r.repo.Save(run); err != nil {
		r.logger.Error(fmt.Sprintf("Saving run %s: %s", run.ID, err))
	}
}

func (r *Runner) finishRun(run *dmn.Run, status string, steps int, path []maze.Position) {
	r.Lock()
	run.Status = status
	run.Steps = steps
	run.Path = path
	run.FinishedAt = time.Now().UTC()
	delete(r.runs, run.ID)
	r.Unlock()

	if err := r.repo.Save(run); err != nil {
		r.logger.Error(fmt.Sprintf("Saving finished run %s: %s", run.ID, err))
	}
}
