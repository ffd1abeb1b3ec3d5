package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-solver/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memQueue struct {
	sync.Mutex
	items map[string][]queued
}

type queued struct {
	score  float64
	member string
}

func newMemQueue() *memQueue {
	return &memQueue{items: make(map[string][]queued)}
}

func (q *memQueue) Enqueue(_ context.Context, key string, score float64, member interface{}) error {
	q.Lock()
	defer q.Unlock()
	q.items[key] = append(q.items[key], queued{score: score, member: member.(string)})
	sort.Slice(q.items[key], func(a, b int) bool { return q.items[key][a].score < q.items[key][b].score })
	return nil
}

func (q *memQueue) DequeTop(_ context.Context, key string, amount int64) ([]string, error) {
	q.Lock()
	defer q.Unlock()
	var out []string
	for int64(len(out)) < amount && len(q.items[key]) > 0 {
		out = append(out, q.items[key][0].member)
		q.items[key] = q.items[key][1:]
	}
	return out, nil
}

func (q *memQueue) Count(_ context.Context, key string) int64 {
	q.Lock()
	defer q.Unlock()
	return int64(len(q.items[key]))
}

// recordingRunner implements the Runner interface and records executions.
type recordingRunner struct {
	sync.Mutex
	executed []uuid.UUID
	done     chan struct{}
}

func (r *recordingRunner) Submit(uuid.UUID, string, []byte) (*dmn.Run, error) {
	return nil, nil
}

func (r *recordingRunner) Execute(id uuid.UUID) error {
	r.Lock()
	r.executed = append(r.executed, id)
	r.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *recordingRunner) Status(uuid.UUID) (*dmn.Run, error) {
	return nil, ErrRunNotFound
}

func TestDispatcherExecutesQueuedRuns(t *testing.T) {
	q := newMemQueue()
	runner := &recordingRunner{done: make(chan struct{}, 8)}
	d, err := NewDispatcher(q, runner, nopLogger{}, nil)
	require.NoError(t, err)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		require.NoError(t, d.Submit(context.Background(), id))
	}

	for range ids {
		select {
		case <-runner.done:
		case <-time.After(2 * time.Second):
			t.Fatal("queued run was never executed")
		}
	}

	runner.Lock()
	defer runner.Unlock()
	assert.ElementsMatch(t, ids, runner.executed)
}

func TestDispatcherSkipsGarbageMembers(t *testing.T) {
	q := newMemQueue()
	runner := &recordingRunner{done: make(chan struct{}, 8)}
	d, err := NewDispatcher(q, runner, nopLogger{}, &DispatchOptions{Prefix: "test"})
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(context.Background(), "test:queue:runs", 1, "not-a-uuid"))
	id := uuid.New()
	require.NoError(t, d.Submit(context.Background(), id))

	select {
	case <-runner.done:
	case <-time.After(2 * time.Second):
		t.Fatal("run behind garbage member was never executed")
	}

	runner.Lock()
	defer runner.Unlock()
	assert.Equal(t, []uuid.UUID{id}, runner.executed)
}
