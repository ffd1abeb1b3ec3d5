package i

import (
	"github.com/google/uuid"

	dmn "github.com/beka-birhanu/vinom-solver/domain"
	"github.com/beka-birhanu/vinom-solver/maze"
)

// Runner executes queued solver runs and reports their state.
type Runner interface {
	// Submit registers a run for the given maze blob and solver name and
	// returns its record. Execution is deferred to the dispatcher.
	Submit(owner uuid.UUID, solverName string, blob []byte) (*dmn.Run, error)

	// Execute runs a previously submitted run to completion.
	Execute(id uuid.UUID) error

	// Status returns the current record of a run.
	Status(id uuid.UUID) (*dmn.Run, error)
}

// StepBroadcaster streams solver animation frames to run viewers.
type StepBroadcaster interface {
	// BroadcastStep sends one step frame to every viewer of the run.
	BroadcastStep(runID uuid.UUID, seq uint32, phase byte)

	// BroadcastPath sends the final solution path to every viewer.
	BroadcastPath(runID uuid.UUID, path []maze.Position)
}

// ServerSocketManager manages server-side socket communication and client
// interactions. Client handlers and the authenticator are fixed at socket
// construction time.
type ServerSocketManager interface {
	Stop()
	Serve()
	BroadcastToClients([]uuid.UUID, byte, []byte)

	// GetPublicKey returns the server's public key for secure communication.
	GetPublicKey() []byte

	// GetAddr returns the server's socket address.
	GetAddr() string
}
