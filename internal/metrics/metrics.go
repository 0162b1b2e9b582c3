// Package metrics exposes Prometheus collectors for the crawl engine.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pagesTotal            *prometheus.CounterVec
	fetchDurationSeconds  *prometheus.HistogramVec
	targetsFoundTotal     prometheus.Counter
	targetsCrawledTotal   prometheus.Counter
	activeTargets         prometheus.Gauge
	crawlsCompletedTotal  prometheus.Counter
	progressDroppedEvents prometheus.Counter

	once sync.Once
)

// Init registers the collectors with the default registry. Safe to call
// multiple times.
func Init() {
	once.Do(func() {
		pagesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webkin_pages_total",
				Help: "Pages processed, labeled by fetch result.",
			},
			[]string{"result"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webkin_fetch_duration_seconds",
				Help:    "Latency of probe-plus-fetch per page, labeled by result.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"result"},
		)

		targetsFoundTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webkin_targets_found_total",
				Help: "Related hosts promoted to crawl targets.",
			},
		)

		targetsCrawledTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webkin_targets_crawled_total",
				Help: "Targets crawled to exhaustion.",
			},
		)

		activeTargets = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "webkin_active_targets",
				Help: "Coordinators currently crawling a target.",
			},
		)

		crawlsCompletedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webkin_crawls_completed_total",
				Help: "Whole crawl runs that reached completion.",
			},
		)

		progressDroppedEvents = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webkin_progress_dropped_events_total",
				Help: "Progress events dropped under backpressure.",
			},
		)
	})
}

// ObservePage records one processed page.
func ObservePage(result string, dur time.Duration) {
	if pagesTotal == nil {
		return
	}
	pagesTotal.WithLabelValues(result).Inc()
	fetchDurationSeconds.WithLabelValues(result).Observe(dur.Seconds())
}

// TargetFound counts a newly discovered crawl target.
func TargetFound() {
	if targetsFoundTotal != nil {
		targetsFoundTotal.Inc()
	}
}

// TargetStarted marks a coordinator going live.
func TargetStarted() {
	if activeTargets != nil {
		activeTargets.Inc()
	}
}

// TargetFinished marks a coordinator done with its host.
func TargetFinished() {
	if activeTargets != nil {
		activeTargets.Dec()
		targetsCrawledTotal.Inc()
	}
}

// CrawlCompleted counts one finished crawl run.
func CrawlCompleted() {
	if crawlsCompletedTotal != nil {
		crawlsCompletedTotal.Inc()
	}
}

// ProgressDropped adds to the dropped-events counter.
func ProgressDropped(n int64) {
	if progressDroppedEvents != nil && n > 0 {
		progressDroppedEvents.Add(float64(n))
	}
}

// Handler serves the default registry over HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}
