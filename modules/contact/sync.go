package contact

import (
	"context"
	"strings"

	"github.com/northlight/website/pkg/hubspot"
	"github.com/northlight/website/pkg/leads"
)

// CRM creates or updates a contact for a lead.
type CRM interface {
	UpsertContact(ctx context.Context, props hubspot.ContactProperties) (*hubspot.Contact, error)
}

// SyncOutcome is the result of pushing a lead to the CRM.
type SyncOutcome string

const (
	SyncSynced    SyncOutcome = "synced"
	SyncNeedsSync SyncOutcome = "needs_sync"
	SyncSkipped   SyncOutcome = "skipped"
)

// SyncResult describes one CRM sync attempt. ContactID is set when Status is
// SyncSynced, Err when it is SyncNeedsSync.
type SyncResult struct {
	Status    SyncOutcome
	ContactID string
	Created   bool
	Err       error
}

// LeadStatus maps the outcome to the lead's stored sync status. Skipped
// leads stay pending.
func (r SyncResult) LeadStatus() leads.SyncStatus {
	switch r.Status {
	case SyncSynced:
		return leads.SyncSynced
	case SyncNeedsSync:
		return leads.SyncNeedsSync
	default:
		return leads.SyncPending
	}
}

// syncLead upserts the CRM contact for lead. A nil crm yields SyncSkipped.
func syncLead(ctx context.Context, crm CRM, lead *leads.Lead) SyncResult {
	if crm == nil {
		return SyncResult{Status: SyncSkipped}
	}

	first, last := hubspot.SplitName(lead.Name)
	contact, err := crm.UpsertContact(ctx, hubspot.ContactProperties{
		Email:     lead.Email,
		FirstName: first,
		LastName:  last,
		Phone:     strings.TrimSpace(lead.Phone),
		Company:   strings.TrimSpace(lead.Company),
	})
	if err != nil {
		return SyncResult{Status: SyncNeedsSync, Err: err}
	}
	return SyncResult{Status: SyncSynced, ContactID: contact.ID, Created: contact.Created}
}
