package redis

import "time"

// Config describes an optional Redis connection. An empty ConnectionURL means
// Redis is not configured and callers should use a local fallback.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // ConnectionURL in the format "redis://:password@localhost:6379/0" or "rediss://..." for TLS.
	Token          string        `env:"REDIS_TOKEN"`                            // Token overrides the password from the URL when set (hosted Redis access tokens).
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"`   // RetryInterval is the delay between connection attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"` // ConnectTimeout bounds the whole connection procedure.
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
