package contact

import (
	"time"

	"github.com/northlight/website/pkg/idhash"
)

// Config configures the submission pipeline. The hash salts are read from
// IP_HASH_SALT and EMAIL_HASH_SALT.
type Config struct {
	Hasher idhash.Hasher

	RateLimitMax    int           `env:"CONTACT_RATE_LIMIT_MAX" envDefault:"3"`
	RateLimitWindow time.Duration `env:"CONTACT_RATE_LIMIT_WINDOW" envDefault:"1h"`

	// UpstreamTimeout bounds each outbound call: rate limiter, lead store,
	// CRM and e-mail.
	UpstreamTimeout time.Duration `env:"CONTACT_UPSTREAM_TIMEOUT" envDefault:"10s"`

	// NotifyEmail receives a notification for each stored lead. Empty
	// disables notifications.
	NotifyEmail string `env:"CONTACT_NOTIFY_EMAIL"`

	FloodGuardLimit  int           `env:"CONTACT_FLOOD_GUARD_LIMIT" envDefault:"30"`
	FloodGuardWindow time.Duration `env:"CONTACT_FLOOD_GUARD_WINDOW" envDefault:"1m"`
	MaxBodyBytes     int64         `env:"CONTACT_MAX_BODY_BYTES" envDefault:"65536"`
}

// DefaultConfig returns the production limits without salts.
func DefaultConfig() Config {
	return Config{
		RateLimitMax:     3,
		RateLimitWindow:  time.Hour,
		UpstreamTimeout:  10 * time.Second,
		FloodGuardLimit:  30,
		FloodGuardWindow: time.Minute,
		MaxBodyBytes:     64 << 10,
	}
}
