package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_computed_total",
			Help: "Total number of assessments scored, by health status",
		},
		[]string{"health_status"},
	)

	AssessmentPercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_percentage",
			Help:    "Distribution of overall assessment percentages",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	AssessmentSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_save_failures_total",
			Help: "Total number of computed assessments that could not be persisted",
		},
	)

	SwotComparisons = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "swot_comparisons_total",
			Help: "Total number of SWOT quarter comparisons",
		},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "rpc_duration_seconds",
			Help: "Duration of gRPC calls in seconds",
		},
		[]string{"method", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"route", "method", "code"},
	)
)
