package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseBody caps how much of a response body is read.
const maxResponseBody = 64 * 1024

// RESTConfig configures the PostgREST lead store.
type RESTConfig struct {
	URL            string        `env:"SUPABASE_URL"`
	ServiceRoleKey string        `env:"SUPABASE_SERVICE_ROLE_KEY"`
	Table          string        `env:"LEADS_TABLE" envDefault:"leads"`
	Timeout        time.Duration `env:"LEADS_TIMEOUT" envDefault:"10s"`
}

// RESTStore stores leads through a PostgREST API using the service-role key.
type RESTStore struct {
	baseURL string
	key     string
	table   string
	client  *http.Client
}

// RESTOption configures a RESTStore.
type RESTOption func(*RESTStore)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) RESTOption {
	return func(s *RESTStore) {
		if client != nil {
			s.client = client
		}
	}
}

// NewRESTStore creates a PostgREST backed Store.
func NewRESTStore(cfg RESTConfig, opts ...RESTOption) (*RESTStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: URL is required", ErrInvalidConfig)
	}
	if cfg.ServiceRoleKey == "" {
		return nil, fmt.Errorf("%w: ServiceRoleKey is required", ErrInvalidConfig)
	}

	table := cfg.Table
	if table == "" {
		table = "leads"
	}

	s := &RESTStore{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		key:     cfg.ServiceRoleKey,
		table:   table,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Insert creates a lead and returns the representation sent back by the server.
func (s *RESTStore) Insert(ctx context.Context, lead NewLead) (*Lead, error) {
	body, err := json.Marshal(lead)
	if err != nil {
		return nil, fmt.Errorf("marshal lead: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, s.resourceURL(url.Values{"select": {"id,created_at"}}), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	respBody, err := s.do(req)
	if err != nil {
		return nil, err
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(respBody, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrStoreRequest, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoRowReturned
	}

	id := rowID(rows[0]["id"])
	if id == "" {
		return nil, ErrNoRowReturned
	}

	return lead.stored(id, rowTime(rows[0]["created_at"])), nil
}

// rowID accepts both text (uuid) and numeric (bigserial) primary keys.
func rowID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

// timestampLayouts covers timestamptz and timestamp columns as PostgREST renders them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
}

// rowTime parses created_at. A missing or unknown format yields the zero time.
func rowTime(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return time.Time{}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

// Update patches the CRM columns of the lead with the given id.
func (s *RESTStore) Update(ctx context.Context, id string, patch Patch) error {
	if id == "" {
		return ErrLeadNotFound
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPatch, s.resourceURL(url.Values{"id": {"eq." + id}}), body)
	if err != nil {
		return err
	}

	_, err = s.do(req)
	return err
}

// Healthcheck issues a minimal read against the leads resource.
func (s *RESTStore) Healthcheck(ctx context.Context) error {
	req, err := s.newRequest(ctx, http.MethodGet, s.resourceURL(url.Values{"select": {"id"}, "limit": {"1"}}), nil)
	if err != nil {
		return err
	}
	_, err = s.do(req)
	return err
}

func (s *RESTStore) resourceURL(query url.Values) string {
	u := s.baseURL + "/rest/v1/" + s.table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (s *RESTStore) newRequest(ctx context.Context, method, u string, body []byte) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRequest, err)
	}

	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (s *RESTStore) do(req *http.Request) ([]byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrStoreRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrStoreRequest, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
