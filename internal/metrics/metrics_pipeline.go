package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values of [ServiceRuns].
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeError     = "error"
	OutcomeSkipped   = "skipped"
)

var (
	ServiceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osforge_service_runs_total",
			Help: "Total number of service runs by outcome",
		},
		[]string{"service", "outcome"},
	)

	ServiceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "osforge_service_duration_seconds",
			Help:    "Service run duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200, 1800, 3600},
		},
		[]string{"service"},
	)

	LastTaskStart = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "osforge_last_task_start_timestamp",
			Help: "Unix timestamp of when the last task started",
		},
	)

	LastTaskEnd = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "osforge_last_task_end_timestamp",
			Help: "Unix timestamp of when the last task ended",
		},
	)
)
