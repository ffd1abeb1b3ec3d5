// Package solveapi exposes the solver-run endpoints: submitting runs,
// polling their state and fetching playback connection details.
package solveapi

import (
	"time"
)

// RunRequest asks for a solver run. Maze is the base64-encoded binary maze
// blob; when omitted the service generates a maze instead.
type RunRequest struct {
	Solver string `json:"solver" binding:"required"`
	Maze   string `json:"maze"`
}

// PathCell is one cell of a solution path.
type PathCell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// RunResponse describes a run's current state.
type RunResponse struct {
	ID         string     `json:"id"`
	Solver     string     `json:"solver"`
	Status     string     `json:"status"`
	MazeWidth  int        `json:"maze_width"`
	MazeHeight int        `json:"maze_height"`
	Steps      int        `json:"steps,omitempty"`
	Path       []PathCell `json:"path,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PlaybackInfoResponse carries what a viewer needs to attach to the
// playback socket.
type PlaybackInfoResponse struct {
	SocketPubKey []byte `json:"socket_pubkey"`
	SocketAddr   string `json:"socket_addr"`
}
