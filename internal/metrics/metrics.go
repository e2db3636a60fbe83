// Package metrics holds the Prometheus instrumentation of the recommender.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RecommendRequests.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics groups the collectors recorded by the engine.
type Metrics struct {
	RecommendRequests *prometheus.CounterVec
	RecommendDuration prometheus.Histogram
	CorpusDocuments   prometheus.Gauge
	VocabularySize    prometheus.Gauge
	CorpusGeneration  prometheus.Gauge
	BuildDuration     prometheus.Histogram
	BuildFailures     prometheus.Counter
}

// New registers the collectors on reg. A nil reg yields unregistered
// collectors, which is handy in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecommendRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partituras_recommend_requests_total",
				Help: "Total number of recommendation requests by outcome",
			},
			[]string{"outcome"},
		),
		RecommendDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "partituras_recommend_duration_seconds",
				Help:    "Time spent ranking the corpus for one request",
				Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.1},
			},
		),
		CorpusDocuments: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "partituras_corpus_documents",
				Help: "Number of scores in the installed corpus",
			},
		),
		VocabularySize: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "partituras_vocabulary_terms",
				Help: "Number of distinct terms in the installed vocabulary",
			},
		),
		CorpusGeneration: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "partituras_corpus_generation",
				Help: "Generation number of the installed corpus",
			},
		),
		BuildDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "partituras_corpus_build_duration_seconds",
				Help:    "Duration of corpus builds in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		BuildFailures: f.NewCounter(
			prometheus.CounterOpts{
				Name: "partituras_corpus_build_failures_total",
				Help: "Total number of failed corpus builds",
			},
		),
	}
}

// ObserveRecommend records one request.
func (m *Metrics) ObserveRecommend(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RecommendRequests.WithLabelValues(outcome).Inc()
	m.RecommendDuration.Observe(d.Seconds())
}

// ObserveCorpus records a successfully installed corpus.
func (m *Metrics) ObserveCorpus(generation uint64, documents, terms int, d time.Duration) {
	if m == nil {
		return
	}
	m.CorpusGeneration.Set(float64(generation))
	m.CorpusDocuments.Set(float64(documents))
	m.VocabularySize.Set(float64(terms))
	m.BuildDuration.Observe(d.Seconds())
}

// ObserveBuildFailure records a corpus build that was not installed.
func (m *Metrics) ObserveBuildFailure() {
	if m == nil {
		return
	}
	m.BuildFailures.Inc()
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format read by node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
