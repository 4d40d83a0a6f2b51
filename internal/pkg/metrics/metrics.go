// Package metrics holds the prometheus collectors of the service. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes.
const (
	OutcomeDelivered = "delivered"
	OutcomeRetried   = "retried"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)

type Metrics struct {
	transitions       *prometheus.CounterVec
	notifications     *prometheus.CounterVec
	jobDuration       *prometheus.HistogramVec
	jobSuccess        *prometheus.CounterVec
	jobFailure        *prometheus.CounterVec
	availabilityDrift prometheus.Gauge
}

// New registers all collectors on reg. A nil reg yields a no-op *Metrics.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parcel_transitions_total",
			Help: "Committed parcel status changes.",
		}, []string{"from", "to"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification delivery attempts by outcome.",
		}, []string{"outcome"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "job_duration_seconds",
			Help:    "Duration of scheduled jobs in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		jobSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "job_success_total",
			Help: "Successful scheduled job runs.",
		}, []string{"job"}),
		jobFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "job_failure_total",
			Help: "Failed scheduled job runs.",
		}, []string{"job"}),
		availabilityDrift: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "driver_availability_drift",
			Help: "Drivers whose availability flag disagrees with their in-flight parcels.",
		}),
	}
	reg.MustRegister(
		m.transitions,
		m.notifications,
		m.jobDuration,
		m.jobSuccess,
		m.jobFailure,
		m.availabilityDrift,
	)
	return m
}

func (m *Metrics) IncTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

func (m *Metrics) IncNotification(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *Metrics) ObserveJob(job string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	job = normalizeLabel(job)
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
	if err != nil {
		m.jobFailure.WithLabelValues(job).Inc()
		return
	}
	m.jobSuccess.WithLabelValues(job).Inc()
}

func (m *Metrics) SetAvailabilityDrift(n int) {
	if m == nil {
		return
	}
	m.availabilityDrift.Set(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
