// Package queue implements the shared solve-request queue on Redis sorted
// sets, with a redsync lock guarding the pop so concurrent service
// instances never dispatch the same request twice.
package queue

import (
	"context"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisSortedQueue manages a sorted queue in Redis.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
}

// NewRedisSortedQueue initializes a RedisSortedQueue with the provided Redis client.
func NewRedisSortedQueue(client *redis.Client) (*RedisSortedQueue, error) {
	q := &RedisSortedQueue{client: client}
	pool := goredis.NewPool(client)
	q.locker = redsync.New(pool)
	return q, nil
}

// Enqueue adds a member to the sorted queue with a given score.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member interface{}) error {
	_, err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Result()
	return err
}

// DequeTop removes and retrieves up to `amount` members with the lowest scores.
func (rsq *RedisSortedQueue) DequeTop(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	mutex := rsq.locker.NewMutex(queueKey + ":dispatch_lock")
	if err := mutex.Lock(); err != nil {
		return nil, err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	var members []string
	for _, z := range rsq.client.ZPopMin(ctx, queueKey, amount).Val() {
		if s, ok := z.Member.(string); ok {
			members = append(members, s)
		}
	}
	return members, nil
}

// Count returns the number of members in the sorted queue.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return rsq.client.ZCard(ctx, queueKey).Val()
}
