package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "dashboard_"

// Source constants, one per remote endpoint
const (
	SourcePrice   = "price"
	SourceHistory = "history"
)

// Refresh triggers
const (
	TriggerInitial  = "initial"
	TriggerManual   = "manual"
	TriggerSchedule = "schedule"
)

var (
	// Requests to the price API by outcome
	// Cardinality: ~8 (2 sources × success, error, timeout, rate_limited)
	FetchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "fetch_requests_total",
			Help: "Total number of HTTP requests to the price API per source",
		},
		[]string{"source", "status"},
	)

	// Fetch duration per source, including decode
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricsPrefix + "fetch_duration_seconds",
			Help:    "Time taken to fetch and decode a response from the price API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// Fetches currently waiting on the network
	// Cardinality: 2 (price, history)
	FetchInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "fetch_in_flight",
			Help: "Number of fetches currently in flight",
		},
		[]string{"source"},
	)

	// Cardinality: 3 (initial, manual, schedule)
	RefreshCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "refresh_cycles_total",
			Help: "Total number of refresh cycles by trigger",
		},
		[]string{"trigger"},
	)

	CurrentPriceGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "current_price_usd",
			Help: "Latest Bitcoin price held by the dashboard",
		},
	)

	HistoryPointsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "history_points",
			Help: "Number of historical price points held by the dashboard",
		},
	)

	LastSuccessTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "last_success_timestamp_seconds",
			Help: "Unix time of the last successful fetch per source",
		},
		[]string{"source"},
	)
)

// MetricsWriter records metrics for a single source
type MetricsWriter struct {
	source string
}

// NewMetricsWriter creates a new MetricsWriter for the specified source
func NewMetricsWriter(source string) *MetricsWriter {
	return &MetricsWriter{
		source: source,
	}
}

// GetSource returns the source name
func (mw *MetricsWriter) GetSource() string {
	return mw.source
}

// OnRequest records an HTTP request with its status.
// Implements the HTTP status handler used by the price API client.
func (mw *MetricsWriter) OnRequest(status string) {
	FetchRequestsTotal.WithLabelValues(mw.source, status).Inc()
	log.Debug().Str("source", mw.source).Str("status", status).Msg("Metrics: request recorded")
}

// RecordFetchDuration records how long a fetch took
func (mw *MetricsWriter) RecordFetchDuration(duration time.Duration) {
	FetchDuration.WithLabelValues(mw.source).Observe(duration.Seconds())
}

// FetchStarted marks a fetch as in flight
func (mw *MetricsWriter) FetchStarted() {
	FetchInFlight.WithLabelValues(mw.source).Inc()
}

// FetchFinished clears the in-flight mark set by FetchStarted
func (mw *MetricsWriter) FetchFinished() {
	FetchInFlight.WithLabelValues(mw.source).Dec()
}

// RecordSuccess stores the time of the last successful fetch
func (mw *MetricsWriter) RecordSuccess(at time.Time) {
	LastSuccessTimestamp.WithLabelValues(mw.source).Set(float64(at.Unix()))
}

// RecordRefreshCycle counts a refresh cycle for the given trigger
func RecordRefreshCycle(trigger string) {
	RefreshCyclesTotal.WithLabelValues(trigger).Inc()
}

// RecordDashboardState publishes the values currently held by the dashboard
func RecordDashboardState(price float64, hasPrice bool, historyPoints int) {
	if hasPrice {
		CurrentPriceGauge.Set(price)
	}
	HistoryPointsGauge.Set(float64(historyPoints))
}
