package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness check that pings client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, err)
		}
		return nil
	}
}
