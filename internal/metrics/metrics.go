// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for recommendation queries.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeInvalid  = "invalid"
	OutcomeNotReady = "not_ready"
	OutcomeError    = "error"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_recommend_queries_total",
			Help: "Total recommendation queries by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_recommend_duration_seconds",
			Help:    "Time spent computing a recommendation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"method"},
	)

	RecommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_recommend_results",
			Help:    "Number of book ids returned per query",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"method"},
	)

	// Index Build Metrics
	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_index_build_duration_seconds",
			Help:    "Duration of complete index builds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	IndexPhaseDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "folio_index_phase_duration_seconds",
			Help: "Duration of each phase of the last successful build",
		},
		[]string{"phase"},
	)

	IndexRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_index_rebuilds_total",
			Help: "Index builds by trigger and result",
		},
		[]string{"trigger", "result"},
	)

	IndexGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_index_generation",
			Help: "Active index generation number",
		},
	)

	IndexLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_index_last_success_timestamp_seconds",
			Help: "Unix time of the last installed generation",
		},
	)

	CatalogBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_catalog_books",
			Help: "Books in the active generation",
		},
	)

	CatalogRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_catalog_ratings",
			Help: "Ratings in the active generation",
		},
	)

	CatalogUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_catalog_users",
			Help: "Distinct raters in the active generation",
		},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_index_vocabulary_terms",
			Help: "TF-IDF vocabulary size of the active generation",
		},
	)

	SimilarityMatrixBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_index_similarity_matrix_bytes",
			Help: "Memory held by the dense content similarity matrix",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_events_published_total",
			Help: "Rebuild requests published",
		},
		[]string{"topic", "result"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_events_consumed_total",
			Help: "Rebuild requests consumed",
		},
		[]string{"topic", "result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "folio_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation query.
func RecordRecommendation(method, outcome string, results int, duration time.Duration) {
	RecommendQueries.WithLabelValues(method, outcome).Inc()
	if outcome != OutcomeOK {
		return
	}
	RecommendDuration.WithLabelValues(method).Observe(duration.Seconds())
	RecommendResults.WithLabelValues(method).Observe(float64(results))
}

// PhaseDuration is one timed build phase.
type PhaseDuration struct {
	Phase    string
	Duration time.Duration
}

// IndexSnapshot is the size of an installed generation.
type IndexSnapshot struct {
	Generation  uint64
	Books       int
	Ratings     int
	Users       int
	Vocabulary  int
	MatrixBytes int64
	Duration    time.Duration
	Phases      []PhaseDuration
}

// RecordIndexBuild records a successful build that was installed.
//
//nolint:gocritic // hugeParam: snapshot is a one-off value
func RecordIndexBuild(trigger string, snapshot IndexSnapshot) {
	IndexRebuilds.WithLabelValues(trigger, "success").Inc()
	IndexBuildDuration.Observe(snapshot.Duration.Seconds())
	for _, p := range snapshot.Phases {
		IndexPhaseDuration.WithLabelValues(p.Phase).Set(p.Duration.Seconds())
	}
	IndexGeneration.Set(float64(snapshot.Generation))
	IndexLastSuccess.Set(float64(time.Now().Unix()))
	CatalogBooks.Set(float64(snapshot.Books))
	CatalogRatings.Set(float64(snapshot.Ratings))
	CatalogUsers.Set(float64(snapshot.Users))
	VocabularySize.Set(float64(snapshot.Vocabulary))
	SimilarityMatrixBytes.Set(float64(snapshot.MatrixBytes))
}

// RecordIndexBuildFailure records a failed or skipped build.
func RecordIndexBuildFailure(trigger, result string) {
	IndexRebuilds.WithLabelValues(trigger, result).Inc()
}

// RecordEventPublished records a publish attempt.
func RecordEventPublished(topic string, err error) {
	EventsPublished.WithLabelValues(topic, resultLabel(err)).Inc()
}

// RecordEventConsumed records a handled message.
func RecordEventConsumed(topic string, err error) {
	EventsConsumed.WithLabelValues(topic, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
