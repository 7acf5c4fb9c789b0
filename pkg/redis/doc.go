// Package redis provides helpers for connecting to an optional Redis server.
//
// The package wraps the go-redis client and adds:
//
//   - `Connect`, which retries the connection using the supplied configuration
//     and supports an access token in place of the URL password.
//   - A health-check helper for readiness probes.
//
// Configuration is described by the `Config` struct whose fields can be
// populated from environment variables via github.com/caarlos0/env. An empty
// REDIS_URL is a valid state: Config.Enabled reports false and callers are
// expected to fall back to process-local storage.
//
// # Usage
//
//	import "github.com/northlight/website/pkg/redis"
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // fall back or terminate
//	}
//	defer client.Close()
//
//	checker := redis.Healthcheck(client)
//
// # Errors
//
// The package defines sentinel errors (e.g. ErrRedisNotReady) that wrap the
// underlying go-redis errors using errors.Join.
package redis
