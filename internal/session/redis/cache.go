package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/crm-console/internal/session"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "crm:session:"

// Cache stores token lookups in redis. Keys are the SHA-256 of the token so
// raw tokens never reach redis.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCache(client *goredis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, token string) (*session.User, error) {
	raw, err := c.client.Get(ctx, key(token)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var u session.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode cached session: %w", err)
	}
	return &u, nil
}

func (c *Cache) Set(ctx context.Context, token string, u *session.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(token), raw, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, key(token)).Err()
}

func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}
