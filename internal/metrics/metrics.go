package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the event pipeline and the
// readiness evaluator. A nil *Metrics is valid and records nothing,
// so tests can pass nil instead of wiring a registry.
type Metrics struct {
	// Events accepted onto the bus by topic
	EventsPublished *prometheus.CounterVec

	// Events discarded by a subscriber queue, by topic and overflow policy
	EventsDropped *prometheus.CounterVec

	// Ingestion outcomes by topic (persisted, skipped, failed)
	EntriesIngested *prometheus.CounterVec

	// End-to-end ingestion latency by topic
	IngestDuration *prometheus.HistogramVec

	// Readiness evaluations by resulting alert kind
	ReadinessEvaluations *prometheus.CounterVec
}

// New creates a Metrics instance with all pipeline metrics registered
// on the default registry.
func New() *Metrics {
	return &Metrics{
		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigia_bus_events_published_total",
			Help: "Total events published to the bus by topic",
		}, []string{"topic"}),

		EventsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigia_bus_events_dropped_total",
			Help: "Total events dropped by subscriber queues, by topic and overflow policy",
		}, []string{"topic", "policy"}),

		EntriesIngested: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigia_pipeline_entries_ingested_total",
			Help: "Total ingestion attempts by topic and outcome",
		}, []string{"topic", "outcome"}),

		IngestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vigia_pipeline_ingest_duration_seconds",
			Help:    "Duration of narrative ingestion by topic",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"topic"}),

		ReadinessEvaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigia_readiness_evaluations_total",
			Help: "Total team readiness evaluations by resulting alert kind",
		}, []string{"kind"}),
	}
}

// EventPublished records an event accepted onto the bus.
func (m *Metrics) EventPublished(topic string) {
	if m != nil {
		m.EventsPublished.WithLabelValues(topic).Inc()
	}
}

// EventDropped records an event discarded by a subscriber queue.
func (m *Metrics) EventDropped(topic, policy string) {
	if m != nil {
		m.EventsDropped.WithLabelValues(topic, policy).Inc()
	}
}

// EntryIngested records the outcome of one ingestion attempt.
func (m *Metrics) EntryIngested(topic, outcome string) {
	if m != nil {
		m.EntriesIngested.WithLabelValues(topic, outcome).Inc()
	}
}

// ObserveIngestDuration records how long one ingestion attempt took.
func (m *Metrics) ObserveIngestDuration(topic string, d time.Duration) {
	if m != nil {
		m.IngestDuration.WithLabelValues(topic).Observe(d.Seconds())
	}
}

// ReadinessEvaluated records a readiness evaluation result.
func (m *Metrics) ReadinessEvaluated(kind string) {
	if m != nil {
		m.ReadinessEvaluations.WithLabelValues(kind).Inc()
	}
}
