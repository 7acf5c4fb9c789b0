package leads

import (
	"context"
	"time"
)

// SyncStatus tracks whether a lead has been pushed to the CRM.
type SyncStatus string

const (
	SyncPending   SyncStatus = "pending"
	SyncSynced    SyncStatus = "synced"
	SyncNeedsSync SyncStatus = "needs_sync"
)

// SuspicionRateLimit marks a lead stored although its sender was rate limited.
const SuspicionRateLimit = "rate_limit"

// NewLead holds the columns written when a lead is created.
// Optional text fields left empty are stored as NULL.
type NewLead struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone,omitempty"`
	Company           string     `json:"company,omitempty"`
	MarketingSpend    string     `json:"marketing_spend,omitempty"`
	HearAboutUs       string     `json:"hear_about_us,omitempty"`
	Message           string     `json:"message"`
	IsSuspicious      bool       `json:"is_suspicious"`
	SuspicionReason   string     `json:"suspicion_reason,omitempty"`
	HubspotSyncStatus SyncStatus `json:"hubspot_sync_status"`
}

// Lead is a stored lead.
type Lead struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone"`
	Company                string     `json:"company"`
	MarketingSpend         string     `json:"marketing_spend"`
	HearAboutUs            string     `json:"hear_about_us"`
	Message                string     `json:"message"`
	IsSuspicious           bool       `json:"is_suspicious"`
	SuspicionReason        *string    `json:"suspicion_reason"`
	HubspotContactID       *string    `json:"hubspot_contact_id"`
	HubspotSyncStatus      SyncStatus `json:"hubspot_sync_status"`
	HubspotLastSyncAttempt *time.Time `json:"hubspot_last_sync_attempt"`
	CreatedAt              time.Time  `json:"created_at"`
}

// stored builds the Lead written from l under the given id.
func (l NewLead) stored(id string, createdAt time.Time) *Lead {
	status := l.HubspotSyncStatus
	if status == "" {
		status = SyncPending
	}
	return &Lead{
		ID:                id,
		Name:              l.Name,
		Email:             l.Email,
		Phone:             l.Phone,
		Company:           l.Company,
		MarketingSpend:    l.MarketingSpend,
		HearAboutUs:       l.HearAboutUs,
		Message:           l.Message,
		IsSuspicious:      l.IsSuspicious,
		SuspicionReason:   nullString(l.SuspicionReason),
		HubspotSyncStatus: status,
		CreatedAt:         createdAt,
	}
}

// Patch lists the mutable CRM columns. Nil or empty fields are left unchanged.
type Patch struct {
	HubspotContactID       *string    `json:"hubspot_contact_id,omitempty"`
	HubspotSyncStatus      SyncStatus `json:"hubspot_sync_status,omitempty"`
	HubspotLastSyncAttempt *time.Time `json:"hubspot_last_sync_attempt,omitempty"`
}

// Store persists leads.
type Store interface {
	// Insert creates a lead and returns the stored row including its id.
	Insert(ctx context.Context, lead NewLead) (*Lead, error)

	// Update applies patch to the lead with the given id.
	Update(ctx context.Context, id string, patch Patch) error
}

// Healthchecker is implemented by stores that can report readiness.
type Healthchecker interface {
	Healthcheck(ctx context.Context) error
}
