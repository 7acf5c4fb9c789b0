package main

import (
	"fmt"
	"time"

	"github.com/northlight/website/modules/contact"
	"github.com/northlight/website/pkg/config"
	"github.com/northlight/website/pkg/email"
	"github.com/northlight/website/pkg/httpserver"
	"github.com/northlight/website/pkg/hubspot"
	"github.com/northlight/website/pkg/leads"
	"github.com/northlight/website/pkg/logger"
	"github.com/northlight/website/pkg/pg"
	"github.com/northlight/website/pkg/redis"
)

const (
	leadStoreREST     = "rest"
	leadStorePostgres = "postgres"
)

type appConfig struct {
	Env              string        `env:"APP_ENV" envDefault:"development"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"northlight-website"`
	LeadStore        string        `env:"LEAD_STORE" envDefault:"rest"`
	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"3s"`
	MetricsEnabled   bool          `env:"METRICS_ENABLED" envDefault:"true"`
}

// settings groups every config struct the server reads.
type settings struct {
	App     appConfig
	Log     logger.Config
	Contact contact.Config
	HTTP    httpserver.Config
	REST    leads.RESTConfig
	PG      pg.Config
	Redis   redis.Config
	HubSpot hubspot.Config
	Email   email.Config
}

func loadSettings() (settings, error) {
	var s settings
	for _, load := range []func() error{
		func() error { return config.Load(&s.App) },
		func() error { return config.Load(&s.Log) },
		func() error { return config.Load(&s.Contact) },
		func() error { return config.Load(&s.HTTP) },
		func() error { return config.Load(&s.REST) },
		func() error { return config.Load(&s.PG) },
		func() error { return config.Load(&s.Redis) },
		func() error { return config.Load(&s.HubSpot) },
		func() error { return config.Load(&s.Email) },
	} {
		if err := load(); err != nil {
			return settings{}, err
		}
	}

	switch s.App.LeadStore {
	case leadStoreREST, leadStorePostgres:
	default:
		return settings{}, fmt.Errorf("LEAD_STORE must be %q or %q, got %q", leadStoreREST, leadStorePostgres, s.App.LeadStore)
	}
	return s, nil
}
