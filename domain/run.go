package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/beka-birhanu/vinom-solver/maze"
)

// Run statuses.
const (
	RunQueued     = "queued"
	RunRunning    = "running"
	RunFinished   = "finished"
	RunNoSolution = "no_solution"
	RunFailed     = "failed"
)

// Run is one solver execution over one maze: who requested it, which
// algorithm, and what came out.
type Run struct {
	ID         uuid.UUID       `bson:"_id"`
	OwnerID    uuid.UUID       `bson:"ownerId"`
	Solver     string          `bson:"solver"`
	MazeWidth  int             `bson:"mazeWidth"`
	MazeHeight int             `bson:"mazeHeight"`
	Status     string          `bson:"status"`
	Steps      int             `bson:"steps"`
	Path       []maze.Position `bson:"path,omitempty"`
	CreatedAt  time.Time       `bson:"createdAt"`
	FinishedAt time.Time       `bson:"finishedAt,omitempty"`
}

// NewRun creates a queued run record.
func NewRun(owner uuid.UUID, solverName string, width, height int) *Run {
	return &Run{
		ID:         uuid.New(),
		OwnerID:    owner,
		Solver:     solverName,
		MazeWidth:  width,
		MazeHeight: height,
		Status:     RunQueued,
		CreatedAt:  time.Now().UTC(),
	}
}
