package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/northlight/website/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Liveness answers 200 as long as the process can serve requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}

// Readiness runs every check, in name order, with a shared timeout. It
// answers 200 when all pass and 503 otherwise. Failure details are logged,
// never returned to the caller.
func Readiness(log *slog.Logger, timeout time.Duration, checks map[string]Check) http.HandlerFunc {
	names := slices.Sorted(maps.Keys(checks))

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		resp := healthResponse{Status: "ready", Checks: make(map[string]string, len(names))}
		status := http.StatusOK

		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(name),
					logger.Error(err),
				)
				resp.Checks[name] = "fail"
				resp.Status = "not_ready"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}

		writeHealth(w, status, resp)
	}
}

func writeHealth(w http.ResponseWriter, status int, body healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
