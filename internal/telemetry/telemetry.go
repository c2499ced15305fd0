// Package telemetry keeps Prometheus counters for a batch run and can dump
// them in the node-exporter textfile format when the run ends.
package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes.
const (
	StatusSaved  = "saved"
	StatusFailed = "failed"
	StatusEmpty  = "empty"
)

// Recorder holds the run's collectors on a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	analyzed      prometheus.Counter
	skipped       prometheus.Counter
	words         prometheus.Counter
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "articlescore_fetch_total",
				Help: "Articles fetched, labeled by outcome.",
			},
			[]string{"status"},
		),
		fetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "articlescore_fetch_duration_seconds",
				Help:    "Time spent fetching one article.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),
		analyzed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "articlescore_documents_analyzed_total",
				Help: "Documents turned into report rows.",
			},
		),
		skipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "articlescore_documents_skipped_total",
				Help: "Documents that could not be read.",
			},
		),
		words: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "articlescore_words_total",
				Help: "Cleaned words scored across all documents.",
			},
		),
	}
}

// FetchDone records one fetch attempt.
func (r *Recorder) FetchDone(status string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(status).Inc()
	r.fetchDuration.Observe(d.Seconds())
}

// DocumentAnalyzed records one report row built from totalWords words.
func (r *Recorder) DocumentAnalyzed(totalWords int) {
	if r == nil {
		return
	}
	r.analyzed.Inc()
	r.words.Add(float64(totalWords))
}

// DocumentSkipped records a document that produced no row.
func (r *Recorder) DocumentSkipped() {
	if r == nil {
		return
	}
	r.skipped.Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes all collectors to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
