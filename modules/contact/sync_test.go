package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/northlight/website/modules/contact"
	"github.com/northlight/website/pkg/leads"
)

func TestSyncResult_LeadStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome contact.SyncOutcome
		want    leads.SyncStatus
	}{
		{contact.SyncSynced, leads.SyncSynced},
		{contact.SyncNeedsSync, leads.SyncNeedsSync},
		{contact.SyncSkipped, leads.SyncPending},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, contact.SyncResult{Status: tt.outcome}.LeadStatus())
		})
	}
}
