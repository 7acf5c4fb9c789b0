package contact_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/northlight/website/modules/contact"
	"github.com/northlight/website/pkg/hubspot"
	"github.com/northlight/website/pkg/idhash"
	"github.com/northlight/website/pkg/leads"
	pkgredis "github.com/northlight/website/pkg/redis"
)

var (
	discard = slog.New(slog.DiscardHandler)
	hasher  = idhash.Hasher{IPSalt: "ip-salt", EmailSalt: "email-salt"}
	fixedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
)

type leadUpdate struct {
	ID    string
	Patch leads.Patch
}

type fakeStore struct {
	mu        sync.Mutex
	inserts   []leads.NewLead
	updates   []leadUpdate
	insertErr error
	updateErr error
	panicOn   bool
}

func (s *fakeStore) Insert(_ context.Context, lead leads.NewLead) (*leads.Lead, error) {
	if s.panicOn {
		panic("store exploded")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.inserts = append(s.inserts, lead)

	var reason *string
	if lead.SuspicionReason != "" {
		reason = &lead.SuspicionReason
	}
	return &leads.Lead{
		ID:                fmt.Sprintf("lead-%d", len(s.inserts)),
		Name:              lead.Name,
		Email:             lead.Email,
		Phone:             lead.Phone,
		Company:           lead.Company,
		MarketingSpend:    lead.MarketingSpend,
		HearAboutUs:       lead.HearAboutUs,
		Message:           lead.Message,
		IsSuspicious:      lead.IsSuspicious,
		SuspicionReason:   reason,
		HubspotSyncStatus: lead.HubspotSyncStatus,
		CreatedAt:         fixedAt,
	}, nil
}

func (s *fakeStore) Update(_ context.Context, id string, patch leads.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, leadUpdate{ID: id, Patch: patch})
	return s.updateErr
}

func (s *fakeStore) Inserts() []leads.NewLead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]leads.NewLead(nil), s.inserts...)
}

func (s *fakeStore) Updates() []leadUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]leadUpdate(nil), s.updates...)
}

type fakeCRM struct {
	mu    sync.Mutex
	calls []hubspot.ContactProperties
	err   error
}

func (c *fakeCRM) UpsertContact(_ context.Context, props hubspot.ContactProperties) (*hubspot.Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, props)
	if c.err != nil {
		return nil, c.err
	}
	return &hubspot.Contact{ID: "crm-42", Created: true}, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []contact.Notification
	err   error
}

func (n *fakeNotifier) Notify(_ context.Context, note contact.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note)
	return n.err
}

// recordingLimiter records its arguments and answers with allow.
type recordingLimiter struct {
	mu    sync.Mutex
	calls [][2]string
	allow bool
}

func (l *recordingLimiter) Check(_ context.Context, email, ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, [2]string{email, ip})
	return l.allow
}

type harness struct {
	svc      *contact.Service
	store    *fakeStore
	crm      *fakeCRM
	notifier *fakeNotifier
}

// newHarness wires a service with an in-process limiter and fakes for
// every upstream.
func newHarness(t *testing.T, opts ...contact.ServiceOption) *harness {
	t.Helper()

	limiter := contact.NewSubmissionLimiter(
		contact.NewBackend(pkgredis.Config{}, 3, time.Hour, discard),
		hasher,
		discard,
	)
	t.Cleanup(func() { _ = limiter.Close() })

	return newHarnessWithLimiter(t, limiter, opts...)
}

func newHarnessWithLimiter(t *testing.T, limiter contact.RateLimiter, opts ...contact.ServiceOption) *harness {
	t.Helper()

	h := &harness{store: &fakeStore{}, crm: &fakeCRM{}, notifier: &fakeNotifier{}}

	cfg := contact.DefaultConfig()
	cfg.Hasher = hasher
	cfg.NotifyEmail = "owner@example.com"

	base := []contact.ServiceOption{
		contact.WithCRM(h.crm),
		contact.WithNotifier(h.notifier),
		contact.WithClock(func() time.Time { return fixedAt }),
	}
	svc, err := contact.NewService(cfg, h.store, limiter, discard, append(base, opts...)...)
	require.NoError(t, err)
	h.svc = svc
	return h
}

func validForm(email string) contact.Form {
	return contact.Form{
		Name:    "Ana Lima",
		Email:   email,
		Phone:   "+44 20 7946 0958",
		Message: "We would like help with our paid search campaigns.",
	}
}

func fromIP(ip string) http.Header {
	h := http.Header{}
	h.Set("X-Forwarded-For", ip)
	return h
}

var errUpstream = errors.New("upstream unavailable")
