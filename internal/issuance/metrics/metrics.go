package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the issuance module.
// Tracks issuance outcomes, whitelist size, and critical path durations.
type Metrics struct {
	IssuancesCompleted   prometheus.Counter
	IssuancesRejected    *prometheus.CounterVec
	AssetsCreated        prometheus.Counter
	WhitelistSize        prometheus.Gauge
	EventPublishFailures prometheus.Counter
	IssueDuration        prometheus.Histogram
	JournalDuration      *prometheus.HistogramVec
}

// New creates a Metrics instance registered with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		IssuancesCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "mintgate_issuances_completed_total",
			Help: "Total number of records issued across all assets",
		}),
		IssuancesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mintgate_issuances_rejected_total",
			Help: "Issuance attempts rejected, by error code",
		}, []string{"reason"}),
		AssetsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "mintgate_assets_created_total",
			Help: "Total number of assets created",
		}),
		WhitelistSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "mintgate_whitelist_size",
			Help: "Current number of whitelisted principals",
		}),
		EventPublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "mintgate_event_publish_failures_total",
			Help: "Notifications that could not be delivered after commit",
		}),
		IssueDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mintgate_issue_duration_seconds",
			Help:    "Duration of Issue operations including journal writes",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		JournalDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mintgate_journal_write_duration_seconds",
			Help:    "Duration of journal writes, by operation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// IncrementIssued records a successful issuance.
func (m *Metrics) IncrementIssued() {
	m.IssuancesCompleted.Inc()
}

// IncrementRejected records a rejected issuance with its error code.
func (m *Metrics) IncrementRejected(reason string) {
	m.IssuancesRejected.WithLabelValues(reason).Inc()
}

// IncrementAssetsCreated records a new asset.
func (m *Metrics) IncrementAssetsCreated() {
	m.AssetsCreated.Inc()
}

// SetWhitelistSize records the current whitelist size.
func (m *Metrics) SetWhitelistSize(n int) {
	m.WhitelistSize.Set(float64(n))
}

// IncrementPublishFailures records an undelivered notification.
func (m *Metrics) IncrementPublishFailures() {
	m.EventPublishFailures.Inc()
}

// ObserveIssue records the duration of an Issue operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveIssue(start time.Time) {
	m.IssueDuration.Observe(time.Since(start).Seconds())
}

// ObserveJournal records the duration of a journal write.
func (m *Metrics) ObserveJournal(operation string, start time.Time) {
	m.JournalDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
