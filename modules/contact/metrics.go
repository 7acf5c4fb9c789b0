package contact

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes submission counters and latency. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	submissions *prometheus.CounterVec
	crmSync     *prometheus.CounterVec
	duration    prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"outcome"}),
		crmSync: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact",
			Name:      "crm_sync_total",
			Help:      "CRM sync attempts by status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "contact",
			Name:      "submission_duration_seconds",
			Help:      "Time spent processing a contact form submission.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissions, m.crmSync, m.duration)
	return m
}

func (m *Metrics) ObserveSubmission(outcome Outcome, seconds float64) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(string(outcome)).Inc()
	m.duration.Observe(seconds)
}

func (m *Metrics) ObserveSync(status SyncOutcome) {
	if m == nil {
		return
	}
	m.crmSync.WithLabelValues(string(status)).Inc()
}
