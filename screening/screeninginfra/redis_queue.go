package screeninginfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talentrail/screening/pkg/kernel"
	"github.com/talentrail/screening/screening"
)

// RedisQueue implements screening.TaskQueue using a Redis list
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based task queue
func NewRedisQueue(client *redis.Client, queueName string) screening.TaskQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue pushes one scoring task onto the queue
func (q *RedisQueue) Enqueue(ctx context.Context, id kernel.ScreeningJobID, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal task for screening %s: %w", id, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue task for screening %s: %w", id, err)
	}

	return nil
}

// Dequeue pops one task from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when timeout occurs
		if err == redis.Nil {
			return nil, nil // No tasks available
		}
		return nil, fmt.Errorf("dequeue task: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// Size returns the number of tasks in the queue
func (q *RedisQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

// Ping checks if Redis connection is alive
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
