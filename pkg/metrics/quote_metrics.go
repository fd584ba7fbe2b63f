package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records submission pipeline outcomes.
type QuoteMetrics struct {
	submissions      *prometheus.CounterVec
	auditFailures    prometheus.Counter
	dispatchDuration *prometheus.HistogramVec
}

// NewQuoteMetrics registers the quote pipeline metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_submissions_total",
		Help: "Quote submissions by outcome.",
	}, []string{"quote_type", "outcome"})
	auditFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_audit_append_failures_total",
		Help: "Swallowed audit log append failures.",
	})
	dispatchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_email_dispatch_seconds",
		Help:    "Duration of operator email dispatch in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	reg.MustRegister(submissions, auditFailures, dispatchDuration)
	return &QuoteMetrics{
		submissions:      submissions,
		auditFailures:    auditFailures,
		dispatchDuration: dispatchDuration,
	}
}

// IncSubmission increments the submission counter for the given type and outcome.
func (m *QuoteMetrics) IncSubmission(quoteType, outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(quoteType), normalizeLabel(outcome)).Inc()
}

// IncAuditFailure counts a swallowed audit append failure.
func (m *QuoteMetrics) IncAuditFailure() {
	if m == nil || m.auditFailures == nil {
		return
	}
	m.auditFailures.Inc()
}

// ObserveDispatch records how long the notify step took.
func (m *QuoteMetrics) ObserveDispatch(outcome string, duration time.Duration) {
	if m == nil || m.dispatchDuration == nil {
		return
	}
	m.dispatchDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
