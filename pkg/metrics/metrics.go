package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the redemption pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Claim outcomes by final status and error code ("" on success)
	ClaimOutcome *prometheus.CounterVec

	// Latency of the outbound redemption call by result code
	RedemptionLatency *prometheus.HistogramVec

	// Bookkeeping faults that were logged and swallowed, by operation
	LedgerFailures *prometheus.CounterVec

	// Live feed publications that could not be delivered
	FeedPublishFailures prometheus.Counter

	// Donated amount of completed claims
	DonatedAmount prometheus.Counter
}

// New registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ClaimOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vdg_claim_outcomes_total",
			Help: "Voucher claims by terminal status and error code",
		}, []string{"status", "code"}),

		RedemptionLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vdg_redemption_duration_seconds",
			Help:    "Duration of the outbound voucher redemption call",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"code"}),

		LedgerFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vdg_ledger_failures_total",
			Help: "Donation ledger faults that did not change a claim outcome",
		}, []string{"operation"}),

		FeedPublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "vdg_feed_publish_failures_total",
			Help: "Live feed events that failed to publish",
		}),

		DonatedAmount: f.NewCounter(prometheus.CounterOpts{
			Name: "vdg_donated_amount_total",
			Help: "Sum of redeemed voucher amounts",
		}),
	}
}

// IncrementOutcome records a claim's terminal state.
func (m *Metrics) IncrementOutcome(status, code string) {
	if m != nil {
		m.ClaimOutcome.WithLabelValues(status, code).Inc()
	}
}

// ObserveRedemption records the duration of one upstream call.
func (m *Metrics) ObserveRedemption(code string, d time.Duration) {
	if m != nil {
		m.RedemptionLatency.WithLabelValues(code).Observe(d.Seconds())
	}
}

// IncrementLedgerFailure records a swallowed ledger fault.
func (m *Metrics) IncrementLedgerFailure(operation string) {
	if m != nil {
		m.LedgerFailures.WithLabelValues(operation).Inc()
	}
}

// IncrementFeedPublishFailure records an undelivered feed event.
func (m *Metrics) IncrementFeedPublishFailure() {
	if m != nil {
		m.FeedPublishFailures.Inc()
	}
}

// AddDonated adds a completed donation's amount.
func (m *Metrics) AddDonated(amount float64) {
	if m != nil && amount > 0 {
		m.DonatedAmount.Add(amount)
	}
}
