package i

import (
	"context"

	"github.com/google/uuid"
)

// SortedQueue is a shared FIFO-by-score queue; the dispatcher uses it to
// buffer pending solve requests across service instances.
type SortedQueue interface {
	// Enqueue adds a member with the given score.
	Enqueue(ctx context.Context, queueKey string, score float64, member interface{}) error

	// DequeTop removes and returns up to amount members with the lowest
	// scores, under a distributed lock.
	DequeTop(ctx context.Context, queueKey string, amount int64) ([]string, error)

	// Count returns the number of queued members.
	Count(ctx context.Context, queueKey string) int64
}

// Dispatcher feeds queued runs to the runner.
type Dispatcher interface {
	// Submit queues a run for execution.
	Submit(ctx context.Context, runID uuid.UUID) error
}
