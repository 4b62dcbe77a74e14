package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/healthbridge/records-api/internal/repository"
)

type tokenRepository struct {
	client *goredis.Client
}

// NewClient connects to Redis using a URL like redis://localhost:6379/0.
func NewClient(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// NewTokenRepository returns the revoked-token denylist backed by Redis.
func NewTokenRepository(client *goredis.Client) repository.TokenRepository {
	return &tokenRepository{client: client}
}

func denyKey(tokenID string) string {
	return "token:denied:" + tokenID
}

func (r *tokenRepository) Deny(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// Already expired, nothing to deny.
		return nil
	}
	if err := r.client.Set(ctx, denyKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to deny token: %w", err)
	}
	return nil
}

func (r *tokenRepository) IsDenied(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, denyKey(tokenID)).Err()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return true, nil
}
