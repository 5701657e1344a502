package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// AnalyticsCache keeps dashboard counters as Redis hashes, one hash per group
type AnalyticsCache interface {
	Increment(ctx context.Context, group, field string) error
	Counters(ctx context.Context, group string) (map[string]int64, error)
}

type analyticsCache struct {
	client *redis.Client
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client) AnalyticsCache {
	return &analyticsCache{
		client: client,
	}
}

func (c *analyticsCache) key(group string) string {
	return fmt.Sprintf("analytics:%s", group)
}

func (c *analyticsCache) Increment(ctx context.Context, group, field string) error {
	return c.client.HIncrBy(ctx, c.key(group), field, 1).Err()
}

func (c *analyticsCache) Counters(ctx context.Context, group string) (map[string]int64, error) {
	raw, err := c.client.HGetAll(ctx, c.key(group)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for field, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[field] = n
	}
	return out, nil
}
