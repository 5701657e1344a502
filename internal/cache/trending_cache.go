package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const trendingKey = "forum:trending"

// TrendingCache ranks forum posts by engagement in a Redis ZSET
type TrendingCache interface {
	Bump(ctx context.Context, postID string, by float64) error
	Top(ctx context.Context, limit int) ([]TrendingEntry, error)
}

// TrendingEntry is one ranked post
type TrendingEntry struct {
	PostID string  `json:"postId"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
}

type trendingCache struct {
	client *redis.Client
}

// NewTrendingCache creates a new trending cache
func NewTrendingCache(client *redis.Client) TrendingCache {
	return &trendingCache{
		client: client,
	}
}

func (c *trendingCache) Bump(ctx context.Context, postID string, by float64) error {
	return c.client.ZIncrBy(ctx, trendingKey, by, postID).Err()
}

func (c *trendingCache) Top(ctx context.Context, limit int) ([]TrendingEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, trendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]TrendingEntry, len(results))
	for i, z := range results {
		entries[i] = TrendingEntry{
			PostID: z.Member.(string),
			Score:  z.Score,
			Rank:   i + 1,
		}
	}
	return entries, nil
}
