package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"mindbridge/internal/model"
)

// SessionCache keeps anonymous sessions hot in Redis, keyed by client token
type SessionCache interface {
	Set(ctx context.Context, session *model.AnonymousSession, ttl time.Duration) error
	Get(ctx context.Context, token string) (*model.AnonymousSession, error)
	Delete(ctx context.Context, token string) error
}

type sessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
	}
}

func (c *sessionCache) key(token string) string {
	return "anon:" + token
}

// cachedSession carries the token, which model.AnonymousSession hides from JSON.
type cachedSession struct {
	*model.AnonymousSession
	Token string `json:"token"`
}

func (c *sessionCache) Set(ctx context.Context, session *model.AnonymousSession, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(cachedSession{AnonymousSession: session, Token: session.Token})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.Token), data, ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, token string) (*model.AnonymousSession, error) {
	data, err := c.client.Get(ctx, c.key(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cs cachedSession
	if err := json.Unmarshal([]byte(data), &cs); err != nil {
		return nil, err
	}
	if cs.AnonymousSession == nil {
		return nil, nil
	}
	cs.AnonymousSession.Token = cs.Token
	return cs.AnonymousSession, nil
}

func (c *sessionCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}
