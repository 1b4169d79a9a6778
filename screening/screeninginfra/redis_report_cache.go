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

// RedisReportCache implements screening.ReportCache on Redis
type RedisReportCache struct {
	client *redis.Client
	prefix string
}

// NewRedisReportCache creates a Redis-backed analytics report cache
func NewRedisReportCache(client *redis.Client, prefix string) screening.ReportCache {
	return &RedisReportCache{
		client: client,
		prefix: prefix,
	}
}

func (c *RedisReportCache) key(id kernel.ScreeningJobID) string {
	return c.prefix + ":report:" + id.String()
}

// Get returns the cached report, or (nil, nil) on a miss
func (c *RedisReportCache) Get(ctx context.Context, id kernel.ScreeningJobID) (*screening.AnalyticsReport, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached report for %s: %w", id, err)
	}

	var report screening.AnalyticsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal cached report for %s: %w", id, err)
	}

	return &report, nil
}

// Set stores a report with a TTL
func (c *RedisReportCache) Set(ctx context.Context, id kernel.ScreeningJobID, report *screening.AnalyticsReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report for %s: %w", id, err)
	}

	if err := c.client.Set(ctx, c.key(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache report for %s: %w", id, err)
	}

	return nil
}
