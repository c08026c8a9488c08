package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const queueKey = "flowdeck:ingest:queue"

// ErrQueueEmpty is returned by Dequeue when no job arrives in time.
var ErrQueueEmpty = errors.New("ingest queue is empty")

// Queue is a redis-backed job queue so ingestion can run outside the API
// request cycle. Jobs are JSON-encoded Requests in a redis list.
type Queue struct {
	client *redis.Client
}

func NewQueue(client *redis.Client) *Queue {
	return &Queue{client: client}
}

func (q *Queue) Enqueue(ctx context.Context, req Request) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode ingest job: %w", err)
	}

	if err := q.client.LPush(ctx, queueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue ingest job: %w", err)
	}

	return nil
}

// Dequeue blocks up to timeout waiting for the next job.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Request, error) {
	result, err := q.client.BRPop(ctx, timeout, queueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQueueEmpty
		}

		return nil, fmt.Errorf("failed to dequeue ingest job: %w", err)
	}

	// BRPop returns the key followed by the value.
	if len(result) < 2 {
		return nil, ErrQueueEmpty
	}

	var req Request
	if err := json.Unmarshal([]byte(result[1]), &req); err != nil {
		return nil, fmt.Errorf("failed to decode ingest job: %w", err)
	}

	return &req, nil
}

// Len reports how many jobs are waiting.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	length, err := q.client.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read queue length: %w", err)
	}

	return length, nil
}
