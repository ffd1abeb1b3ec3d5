/*
Package playback streams solver animation frames to run viewers over the
UDP socket manager. A viewer authenticates with the run id it wants to
watch and from then on receives one step frame per solver step plus a final
path frame.
*/
package playback

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/vinom-solver/maze"
	"github.com/beka-birhanu/vinom-solver/service/i"
	"github.com/google/uuid"
)

// Manager tracks which socket client watches which run and fans frames out
// to them.
type Manager struct {
	socket i.ServerSocketManager
	logger i.Logger

	viewers    map[uuid.UUID][]uuid.UUID // run id -> client ids
	clientRuns map[uuid.UUID]uuid.UUID   // client id -> run id
	sync.RWMutex
}

// Config carries the Manager dependencies.
type Config struct {
	Socket i.ServerSocketManager
	Logger i.Logger
}

// NewManager creates a playback Manager.
func NewManager(c *Config) (*Manager, error) {
	if c.Logger == nil {
		return nil, errors.New("playback manager requires a logger")
	}
	return &Manager{
		socket:     c.Socket,
		logger:     c.Logger,
		viewers:    make(map[uuid.UUID][]uuid.UUID),
		clientRuns: make(map[uuid.UUID]uuid.UUID),
	}, nil
}

// SetSocket attaches the socket manager once it has been constructed. The
// socket itself needs the Manager as its authenticator, so the two are
// wired in two stages.
func (m *Manager) SetSocket(s i.ServerSocketManager) {
	m.Lock()
	m.socket = s
	m.Unlock()
}

// Authenticate implements the socket's client authentication: the token is
// the 16-byte run id the viewer wants to watch. Each connection gets its
// own client id so several viewers can share a run.
func (m *Manager) Authenticate(token []byte) (uuid.UUID, error) {
	runID, err := uuid.FromBytes(token)
	if err != nil {
		m.logger.Error("invalid playback token provided")
		return uuid.Nil, errors.New("invalid token")
	}

	clientID := uuid.New()
	m.Lock()
	m.clientRuns[clientID] = runID
	m.Unlock()

	m.logger.Info(fmt.Sprintf("Authenticated viewer %s for run %s", clientID, runID))
	return clientID, nil
}

// HandleClientRegister attaches a freshly registered socket client to the
// run it authenticated for.
func (m *Manager) HandleClientRegister(clientID uuid.UUID) {
	m.Lock()
	defer m.Unlock()

	runID, ok := m.clientRuns[clientID]
	if !ok {
		m.logger.Warning(fmt.Sprintf("Registered client %s has no run", clientID))
		return
	}
	m.viewers[runID] = append(m.viewers[runID], clientID)
	m.logger.Info(fmt.Sprintf("Viewer %s registered for run %s", clientID, runID))
}

// HandleClientRequest ignores viewer payloads; the playback stream is one
// way.
func (m *Manager) HandleClientRequest(clientID uuid.UUID, recordType byte, _ []byte) {
	m.logger.Warning(fmt.Sprintf("Unexpected record %d from viewer %s", recordType, clientID))
}

// BroadcastStep sends one step frame to every viewer of the run.
func (m *Manager) BroadcastStep(runID uuid.UUID, seq uint32, phase byte) {
	m.RLock()
	ids := m.viewers[runID]
	m.RUnlock()
	if len(ids) == 0 || m.socket == nil {
		return
	}
	m.socket.BroadcastToClients(ids, StepRecordType, encodeStepFrame(seq, phase))
}

// BroadcastPath sends the final solution path and detaches the run's
// viewers.
func (m *Manager) BroadcastPath(runID uuid.UUID, path []maze.Position) {
	m.Lock()
	ids := m.viewers[runID]
	delete(m.viewers, runID)
	for _, id := range ids {
		delete(m.clientRuns, id)
	}
	m.Unlock()
	if len(ids) == 0 || m.socket == nil {
		return
	}
	m.socket.BroadcastToClients(ids, PathRecordType, encodePathFrame(path))
}

// SessionInfo returns the socket's public key and address a viewer needs
// to connect.
func (m *Manager) SessionInfo() ([]byte, string, error) {
	if m.socket == nil {
		return nil, "", errors.New("playback socket not configured")
	}
	return m.socket.GetPublicKey(), m.socket.GetAddr(), nil
}
