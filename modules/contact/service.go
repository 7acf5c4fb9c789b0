package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/northlight/website/pkg/clientip"
	"github.com/northlight/website/pkg/leads"
	"github.com/northlight/website/pkg/logger"
	"github.com/northlight/website/pkg/sanitizer"
)

var tracer = otel.Tracer("github.com/northlight/website/modules/contact")

// RateLimiter decides whether a sender may submit again.
type RateLimiter interface {
	Check(ctx context.Context, email, clientIP string) bool
}

// Service runs contact-form submissions through the lead pipeline.
type Service struct {
	cfg      Config
	store    leads.Store
	limiter  RateLimiter
	crm      CRM
	notifier Notifier
	metrics  *Metrics
	log      *slog.Logger
	now      func() time.Time
}

type ServiceOption func(*Service)

// WithCRM enables CRM sync. Without it leads stay pending.
func WithCRM(crm CRM) ServiceOption {
	return func(s *Service) { s.crm = crm }
}

// WithNotifier enables owner notifications.
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) { s.notifier = n }
}

func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func NewService(cfg Config, store leads.Store, limiter RateLimiter, log *slog.Logger, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: lead store is required", ErrInvalidConfig)
	}
	if limiter == nil {
		return nil, fmt.Errorf("%w: rate limiter is required", ErrInvalidConfig)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = DefaultConfig().UpstreamTimeout
	}

	s := &Service{
		cfg:     cfg,
		store:   store,
		limiter: limiter,
		log:     log.With(logger.Component("contact")),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// sanitized holds the cleaned form fields that are stored and forwarded.
type sanitized struct {
	Name           string
	Email          string
	Phone          string
	Company        string
	MarketingSpend string
	HearAboutUs    string
	Message        string
}

func sanitize(f Form) sanitized {
	return sanitized{
		Name:           sanitizer.SanitizeName(f.Name),
		Email:          sanitizer.SanitizeEmail(f.Email),
		Phone:          sanitizer.SanitizeText(f.Phone, phoneMaxLen),
		Company:        sanitizer.SanitizeText(f.Company, companyMaxLen),
		MarketingSpend: sanitizer.SanitizeText(f.MarketingSpend, marketingSpendMaxLen),
		HearAboutUs:    sanitizer.SanitizeText(f.HearAboutUs, hearAboutUsMaxLen),
		Message:        sanitizer.SanitizeText(f.Message, messageMaxLen),
	}
}

// Submit processes one submission. It never returns an error: every failure
// is logged and mapped to a user-facing Response.
func (s *Service) Submit(ctx context.Context, headers http.Header, form Form) (resp Response) {
	start := s.now()
	ctx, span := tracer.Start(ctx, "contact.submit")
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrPanic, r)
			s.log.ErrorContext(ctx, "contact submission failed", logger.Error(err))
			span.RecordError(err)
			resp = failed()
		}
		if resp.Outcome == OutcomeError {
			span.SetStatus(codes.Error, string(resp.Outcome))
		}
		span.SetAttributes(attribute.String("contact.outcome", string(resp.Outcome)))
		span.End()
		s.metrics.ObserveSubmission(resp.Outcome, s.now().Sub(start).Seconds())
	}()

	ip := clientip.FromHeaders(headers)
	ipHash := s.cfg.Hasher.IP(ip)

	if form.IsSpam() {
		s.log.WarnContext(ctx, "honeypot field filled, submission rejected",
			logger.IPHash(ipHash),
			logger.Outcome(string(OutcomeRejected)),
		)
		return rejected()
	}

	if errs := form.Validate(); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, e.Field)
		}
		s.log.InfoContext(ctx, "contact form failed validation",
			slog.String("fields", strings.Join(fields, ",")),
			logger.Outcome(string(OutcomeInvalid)),
		)
		return invalid(errs)
	}

	clean := sanitize(form)
	emailHash := s.cfg.Hasher.Email(clean.Email)

	allowed := s.checkLimit(ctx, clean.Email, ip)
	span.SetAttributes(attribute.Bool("contact.rate_limited", !allowed))

	lead, err := s.insert(ctx, clean, !allowed)
	if err != nil {
		s.log.ErrorContext(ctx, "contact submission failed",
			logger.EmailHash(emailHash),
			logger.Error(err),
		)
		span.RecordError(err)
		return failed()
	}

	if !allowed {
		s.log.WarnContext(ctx, "rate limit exceeded, lead stored as suspicious",
			logger.LeadID(lead.ID),
			logger.EmailHash(emailHash),
			logger.IPHash(ipHash),
		)
	}

	s.syncCRM(ctx, lead, emailHash)
	s.notify(ctx, lead, form, clean, !allowed)

	if !allowed {
		return rateLimited()
	}

	s.log.InfoContext(ctx, "lead captured",
		logger.LeadID(lead.ID),
		logger.Outcome(string(OutcomeAccepted)),
	)
	return accepted()
}

func (s *Service) checkLimit(ctx context.Context, email, ip string) bool {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()
	return s.limiter.Check(ctx, email, ip)
}

func (s *Service) insert(ctx context.Context, clean sanitized, suspicious bool) (*leads.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	newLead := leads.NewLead{
		Name:              clean.Name,
		Email:             clean.Email,
		Phone:             clean.Phone,
		Company:           clean.Company,
		MarketingSpend:    clean.MarketingSpend,
		HearAboutUs:       clean.HearAboutUs,
		Message:           clean.Message,
		IsSuspicious:      suspicious,
		HubspotSyncStatus: leads.SyncPending,
	}
	if suspicious {
		newLead.SuspicionReason = leads.SuspicionRateLimit
	}

	lead, err := s.store.Insert(ctx, newLead)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLeadInsert, err)
	}
	return lead, nil
}

// syncCRM pushes the lead to the CRM and records the outcome on the lead.
// Failures are logged and never reach the caller.
func (s *Service) syncCRM(ctx context.Context, lead *leads.Lead, emailHash string) {
	ctx, span := tracer.Start(ctx, "contact.crm_sync")
	defer span.End()

	crmCtx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	result := syncLead(crmCtx, s.crm, lead)
	cancel()

	s.metrics.ObserveSync(result.Status)
	span.SetAttributes(attribute.String("contact.sync_status", string(result.Status)))

	switch result.Status {
	case SyncSkipped:
		return
	case SyncNeedsSync:
		span.RecordError(result.Err)
		s.log.ErrorContext(ctx, "crm sync failed",
			logger.LeadID(lead.ID),
			logger.EmailHash(emailHash),
			logger.Error(result.Err),
		)
	}

	attempt := s.now().UTC()
	patch := leads.Patch{
		HubspotSyncStatus:      result.LeadStatus(),
		HubspotLastSyncAttempt: &attempt,
	}
	if result.ContactID != "" {
		patch.HubspotContactID = &result.ContactID
	}

	updCtx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()
	if err := s.store.Update(updCtx, lead.ID, patch); err != nil {
		s.log.ErrorContext(ctx, "failed to record crm sync status",
			logger.LeadID(lead.ID),
			logger.SyncStatus(string(result.LeadStatus())),
			logger.Error(err),
		)
		return
	}

	s.log.DebugContext(ctx, "crm sync recorded",
		logger.LeadID(lead.ID),
		logger.SyncStatus(string(result.LeadStatus())),
		slog.Bool("created", result.Created),
	)
}

func (s *Service) notify(ctx context.Context, lead *leads.Lead, form Form, clean sanitized, suspicious bool) {
	if s.notifier == nil {
		return
	}

	receivedAt := lead.CreatedAt
	if receivedAt.IsZero() {
		receivedAt = s.now()
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	err := s.notifier.Notify(ctx, Notification{
		LeadID:         lead.ID,
		Name:           clean.Name,
		SubjectName:    strings.TrimSpace(form.Name),
		Email:          clean.Email,
		Phone:          clean.Phone,
		Company:        clean.Company,
		MarketingSpend: clean.MarketingSpend,
		HearAboutUs:    clean.HearAboutUs,
		Message:        sanitizer.RemoveControlChars(strings.TrimSpace(form.Message)),
		Suspicious:     suspicious,
		ReceivedAt:     receivedAt,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "failed to send lead notification",
			logger.LeadID(lead.ID),
			logger.Error(err),
		)
	}
}
