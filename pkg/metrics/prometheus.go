package metrics

import (
	"flightmail-service/pkg/flightparser"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage outcomes
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	EmailsProcessed prometheus.Counter
	TripsRecorded   *prometheus.CounterVec
	ParseStages     *prometheus.CounterVec
	ModelFallbacks  *prometheus.CounterVec
	ProcessingTime  prometheus.Histogram
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the default registry
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith registers the metrics on reg
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EmailsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_processed_total",
			Help:      "The total number of processed emails",
		}),
		TripsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_recorded_total",
			Help:      "The total number of trips written, by review status",
		}, []string{"status"}),
		ParseStages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_stage_total",
			Help:      "Parser stage attempts by stage and outcome",
		}, []string{"stage", "outcome"}),
		ModelFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_fallback_total",
			Help:      "Model fallback calls by outcome (success or error kind)",
		}, []string{"outcome"}),
		ProcessingTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "email_processing_time_seconds",
			Help:      "Time taken to process emails",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// StageCompleted implements flightparser.Observer
func (m *Metrics) StageCompleted(stage string, result flightparser.ParserResult) {
	outcome := OutcomeAccepted
	if !result.Success {
		outcome = OutcomeRejected
	}
	m.ParseStages.WithLabelValues(stage, outcome).Inc()

	if stage == flightparser.StageModel {
		modelOutcome := "success"
		if !result.Success {
			modelOutcome = string(result.ErrorKind)
		}
		m.ModelFallbacks.WithLabelValues(modelOutcome).Inc()
	}
}
