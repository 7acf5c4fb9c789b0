package contact

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northlight/website/pkg/binder"
	"github.com/northlight/website/pkg/clientip"
	"github.com/northlight/website/pkg/logger"
	"github.com/northlight/website/pkg/ratelimit"
)

// MessageBadRequest is returned when the request body cannot be read as a form.
const MessageBadRequest = "Invalid request. Please try again."

// Submitter processes a decoded submission.
type Submitter interface {
	Submit(ctx context.Context, headers http.Header, form Form) Response
}

// RouterOptions configures the contact routes. FloodGuard is optional.
type RouterOptions struct {
	Service      Submitter
	FloodGuard   ratelimit.Limiter
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// Router serves POST / for contact-form submissions. Mount it at
// /api/contact:
//
//	r.Mount("/api/contact", contact.Router(contact.RouterOptions{
//		Service:    svc,
//		FloodGuard: guard,
//	}))
func Router(opts RouterOptions) chi.Router {
	if opts.Service == nil {
		panic("contact.Router: Service is required")
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	h := &handler{
		svc:      opts.Service,
		maxBody:  opts.MaxBodyBytes,
		log:      opts.Logger,
		bindJSON: binder.JSON(),
		bindForm: binder.Form(),
	}

	r := chi.NewRouter()
	if opts.FloodGuard != nil {
		r.Use(ratelimit.Middleware(opts.FloodGuard,
			ratelimit.Prefixed("contact:", clientip.GetIP),
			ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, _ *ratelimit.Result) {
				writeResponse(w, http.StatusTooManyRequests, rateLimited())
			}),
			ratelimit.WithOnError(func(r *http.Request, err error) {
				opts.Logger.ErrorContext(r.Context(), "flood guard failed, allowing request",
					logger.Component("contact"),
					logger.Error(err),
				)
			}),
		))
	}
	r.Post("/", h.submit)

	return r
}

type handler struct {
	svc      Submitter
	maxBody  int64
	log      *slog.Logger
	bindJSON func(*http.Request, any) error
	bindForm func(*http.Request, any) error
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	bind := h.bindJSON
	if binder.IsForm(r) {
		bind = h.bindForm
	}

	var form Form
	if err := bind(r, &form); err != nil {
		h.log.InfoContext(r.Context(), "unreadable contact submission",
			logger.Component("contact"),
			logger.Error(err),
		)
		writeResponse(w, http.StatusBadRequest, Response{Message: MessageBadRequest, Outcome: OutcomeRejected})
		return
	}

	resp := h.svc.Submit(r.Context(), r.Header, form)
	writeResponse(w, statusFor(resp.Outcome), resp)
}

func statusFor(o Outcome) int {
	switch o {
	case OutcomeAccepted:
		return http.StatusOK
	case OutcomeRejected:
		return http.StatusBadRequest
	case OutcomeInvalid:
		return http.StatusUnprocessableEntity
	case OutcomeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeResponse(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
