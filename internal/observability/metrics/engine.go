package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

// EngineMetrics implements usecase.Metrics on a dedicated registry.
type EngineMetrics struct {
	registry *prometheus.Registry
	service  string

	resolutionsTotal  *prometheus.CounterVec
	candidatesSkipped prometheus.Counter
	judgeCacheTotal   *prometheus.CounterVec
	judgeFallbacks    prometheus.Counter
	combinedScores    prometheus.Histogram
	answersTotal      *prometheus.CounterVec
}

func NewEngineMetrics(service string) *EngineMetrics {
	registry := prometheus.NewRegistry()

	resolutionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onco",
			Subsystem: "engine",
			Name:      "resolutions_total",
			Help:      "Relevance resolutions by tri-state classification.",
		},
		[]string{"service", "status"},
	)
	candidatesSkipped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "onco",
			Subsystem: "engine",
			Name:      "candidates_skipped_total",
			Help:      "Candidates excluded by evaluation failures.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	judgeCacheTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onco",
			Subsystem: "engine",
			Name:      "judge_cache_total",
			Help:      "Judgment cache lookups by outcome.",
		},
		[]string{"service", "outcome"},
	)
	judgeFallbacks := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "onco",
			Subsystem: "engine",
			Name:      "judge_fallbacks_total",
			Help:      "Judge invocations that degraded to the irrelevant/0.0 verdict.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	combinedScores := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "onco",
			Subsystem: "engine",
			Name:      "combined_score",
			Help:      "Weighted judge+similarity score per evaluated candidate.",
			Buckets:   []float64{-0.2, 0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	answersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onco",
			Subsystem: "engine",
			Name:      "answers_total",
			Help:      "Answers served by source.",
		},
		[]string{"service", "source"},
	)

	registry.MustRegister(
		resolutionsTotal,
		candidatesSkipped,
		judgeCacheTotal,
		judgeFallbacks,
		combinedScores,
		answersTotal,
	)

	m := &EngineMetrics{
		registry:          registry,
		service:           service,
		resolutionsTotal:  resolutionsTotal,
		candidatesSkipped: candidatesSkipped,
		judgeCacheTotal:   judgeCacheTotal,
		judgeFallbacks:    judgeFallbacks,
		combinedScores:    combinedScores,
		answersTotal:      answersTotal,
	}
	return m
}

func (m *EngineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *EngineMetrics) ResolutionCompleted(status domain.MatchStatus) {
	m.resolutionsTotal.WithLabelValues(m.service, string(status)).Inc()
}

func (m *EngineMetrics) CandidateSkipped() {
	m.candidatesSkipped.Inc()
}

func (m *EngineMetrics) JudgeCacheHit() {
	m.judgeCacheTotal.WithLabelValues(m.service, "hit").Inc()
}

func (m *EngineMetrics) JudgeCacheMiss() {
	m.judgeCacheTotal.WithLabelValues(m.service, "miss").Inc()
}

func (m *EngineMetrics) JudgeFallback() {
	m.judgeFallbacks.Inc()
}

func (m *EngineMetrics) CombinedScore(score float64) {
	m.combinedScores.Observe(score)
}

func (m *EngineMetrics) AnswerServed(source domain.AnswerSource) {
	m.answersTotal.WithLabelValues(m.service, string(source)).Inc()
}
