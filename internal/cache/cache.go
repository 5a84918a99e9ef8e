package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the Redis connection shared by the profile cache and the
// refresh-token store. Reads and writes fail safe: when Redis is down a Get
// behaves like a miss and a Set is dropped, so profile lookups fall through
// to MySQL instead of erroring. Refresh tokens stored while Redis is down
// are lost, which only forces the user to log in again.
type Client struct {
	client *redis.Client
}

// New connects to the Redis instance described by the config values.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// disabled reports whether there is no usable connection. A nil *Client is
// valid and means caching is off, which the service tests rely on.
func (c *Client) disabled() bool {
	return c == nil || c.client == nil
}

// Get returns the cached value, or nil on a miss or when Redis is
// unreachable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c.disabled() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both read as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value under key for the given TTL, dropping the write when
// Redis is unreachable.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.disabled() {
		return nil
	}
	c.client.Set(ctx, key, value, ttl)
	return nil
}

// Delete removes key, used to invalidate cached profiles and stored refresh
// tokens. Errors from Redis are dropped.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c.disabled() {
		return nil
	}
	c.client.Del(ctx, key)
	return nil
}
