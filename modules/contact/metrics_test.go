package contact_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/northlight/website/modules/contact"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := contact.NewMetrics(reg)

	h := newHarness(t, contact.WithMetrics(m))
	h.crm.err = errUpstream

	h.svc.Submit(context.Background(), fromIP("203.0.113.7"), validForm("ana@example.com"))
	form := validForm("ben@example.com")
	form.Website = "spam"
	h.svc.Submit(context.Background(), fromIP("203.0.113.7"), form)

	count, err := testutil.GatherAndCount(reg,
		"contact_submissions_total",
		"contact_crm_sync_total",
		"contact_submission_duration_seconds",
	)
	assert.NoError(t, err)
	assert.Equal(t, 4, count)

	expected := `
# HELP contact_submissions_total Contact form submissions by outcome.
# TYPE contact_submissions_total counter
contact_submissions_total{outcome="accepted"} 1
contact_submissions_total{outcome="rejected"} 1
# HELP contact_crm_sync_total CRM sync attempts by status.
# TYPE contact_crm_sync_total counter
contact_crm_sync_total{status="needs_sync"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"contact_submissions_total",
		"contact_crm_sync_total",
	))
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *contact.Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission(contact.OutcomeAccepted, 0.1)
		m.ObserveSync(contact.SyncSynced)
	})
}
