package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect establishes a connection to a Redis server using the provided configuration.
// It attempts to connect multiple times based on the RetryAttempts config value,
// with a delay between attempts specified by RetryInterval.
//
// Returns ErrEmptyConnectionURL when no URL is configured,
// ErrFailedToParseRedisConnString if the connection URL is invalid and
// ErrRedisNotReady if all connection attempts fail.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrEmptyConnectionURL
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	redisConnOpt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}
	if cfg.Token != "" {
		redisConnOpt.Password = cfg.Token
	}

	attempts := max(1, cfg.RetryAttempts)
	var lastErr error

	for attempt := range attempts {
		redisClient := redis.NewClient(redisConnOpt)

		// Check if the redis connection is established before proceeding with the application.
		lastErr = redisClient.Ping(ctx).Err()
		if lastErr == nil {
			return redisClient, nil
		}

		_ = redisClient.Close()

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrRedisNotReady, lastErr)
}
