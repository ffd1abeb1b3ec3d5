package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-solver/service/i"
	"github.com/google/uuid"
)

const (
	defaultQueuePrefix   = "solver"
	defaultMaxConcurrent = 4

	runQueueKeyFmt = "%s:queue:runs"
)

// DispatchOptions configures the dispatcher.
type DispatchOptions struct {
	// Prefix namespaces the Redis queue key.
	Prefix string

	// MaxConcurrent bounds the number of runs executing at once.
	MaxConcurrent int
}

// Dispatcher buffers solve requests in the shared sorted queue and feeds
// them to the runner, keeping at most MaxConcurrent runs in flight. The
// queue lives in Redis so several service instances can share one backlog.
type Dispatcher struct {
	queue  i.SortedQueue
	runner i.Runner
	logger i.Logger
	opts   *DispatchOptions

	active int
	sync.Mutex
}

// NewDispatcher creates a Dispatcher with the provided queue and runner.
func NewDispatcher(queue i.SortedQueue, runner i.Runner, logger i.Logger, opts *DispatchOptions) (*Dispatcher, error) {
	if opts == nil {
		opts = &DispatchOptions{}
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultQueuePrefix
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}

	return &Dispatcher{
		queue:  queue,
		runner: runner,
		logger: logger,
		opts:   opts,
	}, nil
}

// Submit queues a run for execution.
func (d *Dispatcher) Submit(ctx context.Context, runID uuid.UUID) error {
	score := float64(time.Now().UnixNano())
	if err := d.queue.Enqueue(ctx, d.queueKey(), score, runID.String()); err != nil {
		d.logger.Error(fmt.Sprintf("Failed to enqueue run %s: %s", runID, err))
		return err
	}

	d.logger.Info(fmt.Sprintf("Run enqueued: %s", runID))
	go d.dispatch(ctx)
	return nil
}

// dispatch pops as many queued runs as the concurrency budget allows and
// executes each in its own goroutine.
func (d *Dispatcher) dispatch(ctx context.Context) {
	// Held until every popped run is counted as active, so concurrent
	// dispatch calls cannot both spend the same free slots.
	d.Lock()
	defer d.Unlock()
	free := int64(d.opts.MaxConcurrent - d.active)
	if free <= 0 {
		return
	}

	ids, err := d.queue.DequeTop(ctx, d.queueKey(), free)
	if err != nil {
		d.logger.Error(fmt.Sprintf("Draining run queue: %s", err))
		return
	}

	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			d.logger.Warning(fmt.Sprintf("Non-UUID value in run queue: %s", raw))
			continue
		}

		d.active++

		go func(runID uuid.UUID) {
			defer func() {
				d.Lock()
				d.active--
				d.Unlock()
				// A slot freed up; pull the next request if any.
				if d.queue.Count(ctx, d.queueKey()) > 0 {
					d.dispatch(ctx)
				}
			}()

			if err := d.runner.Execute(runID); err != nil {
				d.logger.Error(fmt.Sprintf("Executing run %s: %s", runID, err))
			}
		}(id)
	}
}

func (d *Dispatcher) queueKey() string {
	return fmt.Sprintf(runQueueKeyFmt, d.opts.Prefix)
}
