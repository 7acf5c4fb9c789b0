// Package hubspot is a minimal client for the HubSpot CRM v3 contacts API.
// It only supports upserting a contact by e-mail address.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.hubapi.com"
	contactsPath    = "/crm/v3/objects/contacts"
	maxResponseBody = 64 * 1024
)

// Config configures the HubSpot client.
type Config struct {
	AccessToken string        `env:"HUBSPOT_ACCESS_TOKEN"`
	BaseURL     string        `env:"HUBSPOT_BASE_URL" envDefault:"https://api.hubapi.com"`
	Timeout     time.Duration `env:"HUBSPOT_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether an access token is configured.
func (c Config) Enabled() bool {
	return c.AccessToken != ""
}

// ContactProperties are the contact fields written on upsert.
// Empty optional fields are not sent and never overwrite CRM data.
type ContactProperties struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
}

// Contact is a CRM contact reference.
type Contact struct {
	ID      string `json:"id"`
	Created bool   `json:"-"`
}

// Client talks to the HubSpot contacts API with a private app access token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// NewClient creates a HubSpot client. It fails with ErrNotConfigured when no
// access token is set.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties"`
	Limit        int           `json:"limit"`
}

type filterGroup struct {
	Filters []filter `json:"filters"`
}

type filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchResponse struct {
	Total   int       `json:"total"`
	Results []Contact `json:"results"`
}

type propertiesBody struct {
	Properties ContactProperties `json:"properties"`
}

// UpsertContact finds a contact by e-mail and updates it, or creates a new
// one when none exists. Exactly one write request is made.
func (c *Client) UpsertContact(ctx context.Context, props ContactProperties) (*Contact, error) {
	if props.Email == "" {
		return nil, ErrEmailRequired
	}

	existing, err := c.findByEmail(ctx, props.Email)
	if err != nil {
		return nil, err
	}

	body := propertiesBody{Properties: props}

	if existing != nil {
		var updated Contact
		if err := c.do(ctx, http.MethodPatch, contactsPath+"/"+existing.ID, body, &updated); err != nil {
			return nil, err
		}
		if updated.ID == "" {
			updated.ID = existing.ID
		}
		return &updated, nil
	}

	var created Contact
	if err := c.do(ctx, http.MethodPost, contactsPath, body, &created); err != nil {
		return nil, err
	}
	created.Created = true
	return &created, nil
}

func (c *Client) findByEmail(ctx context.Context, email string) (*Contact, error) {
	req := searchRequest{
		FilterGroups: []filterGroup{{
			Filters: []filter{{PropertyName: "email", Operator: "EQ", Value: email}},
		}},
		Properties: []string{"email"},
		Limit:      1,
	}

	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, contactsPath+"/search", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 || resp.Results[0].ID == "" {
		return nil, nil
	}
	return &resp.Results[0], nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrRequestFailed, method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
		}
	}
	return nil
}
