// Package metrics exposes Prometheus metrics for attendance reconciliation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the reconciler and the attendance service report into.
type Recorder interface {
	RecordReconcile(operation string, duration time.Duration)
	RecordSkippedEvents(count int)
	RecordDroppedSessions(count int)
	RecordNegativeSessions(count int)
	RecordEventStored(action string)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	reconcileLatency *prometheus.HistogramVec
	skippedEvents    prometheus.Counter
	droppedSessions  prometheus.Counter
	negativeSessions prometheus.Counter
	eventsStored     *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		reconcileLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hris_attendance_reconcile_duration_seconds",
			Help:    "Time spent reconciling an event snapshot",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		skippedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hris_attendance_skipped_events_total",
			Help: "Events skipped because their timestamp could not be used",
		}),
		droppedSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hris_attendance_dropped_sessions_total",
			Help: "Logins that never closed and earned no worked time",
		}),
		negativeSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hris_attendance_negative_sessions_total",
			Help: "Sessions whose net worked time came out negative",
		}),
		eventsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hris_attendance_events_stored_total",
			Help: "Attendance events stored, by action",
		}, []string{"action"}),
	}

	reg.MustRegister(
		c.reconcileLatency,
		c.skippedEvents,
		c.droppedSessions,
		c.negativeSessions,
		c.eventsStored,
	)

	return c
}

func (c *Collector) RecordReconcile(operation string, duration time.Duration) {
	c.reconcileLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

func (c *Collector) RecordSkippedEvents(count int) {
	c.skippedEvents.Add(float64(count))
}

func (c *Collector) RecordDroppedSessions(count int) {
	c.droppedSessions.Add(float64(count))
}

func (c *Collector) RecordNegativeSessions(count int) {
	c.negativeSessions.Add(float64(count))
}

func (c *Collector) RecordEventStored(action string) {
	c.eventsStored.WithLabelValues(action).Inc()
}

// Nop discards everything. Used by the CLI and in tests.
type Nop struct{}

func (Nop) RecordReconcile(string, time.Duration) {}
func (Nop) RecordSkippedEvents(int)               {}
func (Nop) RecordDroppedSessions(int)             {}
func (Nop) RecordNegativeSessions(int)            {}
func (Nop) RecordEventStored(string)              {}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
