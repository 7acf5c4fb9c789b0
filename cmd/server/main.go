// Command server runs the website backend: the contact-form lead pipeline
// plus health and metrics endpoints.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/northlight/website/migrations"
	"github.com/northlight/website/modules/contact"
	"github.com/northlight/website/pkg/email"
	"github.com/northlight/website/pkg/environment"
	"github.com/northlight/website/pkg/httpserver"
	"github.com/northlight/website/pkg/hubspot"
	"github.com/northlight/website/pkg/leads"
	"github.com/northlight/website/pkg/logger"
	"github.com/northlight/website/pkg/pg"
	"github.com/northlight/website/pkg/ratelimit"
	"github.com/northlight/website/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(environment.Parse(cfg.App.Env), cfg.App.ServiceName),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	store, checks, closeStore, err := openLeadStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []contact.ServiceOption{contact.WithMetrics(contact.NewMetrics(reg))}

	if cfg.HubSpot.Enabled() {
		crm, err := hubspot.NewClient(cfg.HubSpot)
		if err != nil {
			return err
		}
		opts = append(opts, contact.WithCRM(crm))
	} else {
		log.WarnContext(ctx, "HUBSPOT_ACCESS_TOKEN not set, leads will stay pending")
	}

	if cfg.Contact.NotifyEmail != "" {
		sender, err := email.NewSender(cfg.Email)
		if err != nil {
			return err
		}
		if !cfg.Email.Enabled() {
			log.WarnContext(ctx, "POSTMARK_SERVER_TOKEN not set, notifications are written to disk",
				slog.String("dir", cfg.Email.DevOutputDir),
			)
		}
		opts = append(opts, contact.WithNotifier(contact.NewEmailNotifier(sender, cfg.Contact.NotifyEmail)))
	}

	limiter := contact.NewSubmissionLimiter(
		contact.NewBackend(cfg.Redis, cfg.Contact.RateLimitMax, cfg.Contact.RateLimitWindow, log),
		cfg.Contact.Hasher,
		log,
	)
	defer func() {
		if err := limiter.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close rate limiter", logger.Error(err))
		}
	}()

	if cfg.Redis.Enabled() {
		checks["ratelimit"] = limiter.Healthcheck
	}

	svc, err := contact.NewService(cfg.Contact, store, limiter, log, opts...)
	if err != nil {
		return err
	}

	guardStore := ratelimit.NewMemoryStore()
	defer guardStore.Close()
	guard, err := ratelimit.NewFixedWindow(guardStore, cfg.Contact.FloodGuardLimit, cfg.Contact.FloodGuardWindow)
	if err != nil {
		return err
	}

	router := newRouter(routerDeps{
		log:     log,
		contact: contact.RouterOptions{Service: svc, FloodGuard: guard, MaxBodyBytes: cfg.Contact.MaxBodyBytes, Logger: log},
		ready:   httpserver.Readiness(log, cfg.App.ReadinessTimeout, checks),
		metrics: metricsHandler(cfg.App.MetricsEnabled, reg),
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// openLeadStore connects the configured lead backend and returns its
// readiness checks and a close function.
func openLeadStore(ctx context.Context, cfg settings, log *slog.Logger) (leads.Store, map[string]httpserver.Check, func(), error) {
	switch cfg.App.LeadStore {
	case leadStorePostgres:
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, cfg.PG, log, migrations.FS); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		checks := map[string]httpserver.Check{"leads": pg.Healthcheck(pool)}
		return leads.NewPostgresStore(pool), checks, pool.Close, nil

	default:
		store, err := leads.NewRESTStore(cfg.REST)
		if err != nil {
			return nil, nil, nil, err
		}
		checks := map[string]httpserver.Check{"leads": store.Healthcheck}
		return store, checks, func() {}, nil
	}
}

type routerDeps struct {
	log     *slog.Logger
	contact contact.RouterOptions
	ready   http.Handler
	metrics http.Handler
}

func newRouter(deps routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.Liveness())
	r.Method(http.MethodGet, "/readyz", deps.ready)
	if deps.metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.metrics)
	}
	r.Mount("/api/contact", contact.Router(deps.contact))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	return r
}

func metricsHandler(enabled bool, reg *prometheus.Registry) http.Handler {
	if !enabled {
		return nil
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
