package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Revoke blacklists a token until it would have expired anyway. Only a hash
// of the token is stored.
func (c *Client) Revoke(token string, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, "revoked:"+hashToken(token), 1, ttl).Err()
}

func (c *Client) IsRevoked(token string) (bool, error) {
	ctx := context.Background()
	n, err := c.rdb.Exists(ctx, "revoked:"+hashToken(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
