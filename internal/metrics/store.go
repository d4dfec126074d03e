package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every docrepo metric.
const Namespace = "docrepo"

// Store Prometheus metrics.
var (
	DocumentsSavedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "documents_saved_total",
			Help:      "Total document saves by outcome",
		},
		[]string{"outcome"}, // "created" / "updated"
	)

	DocumentsDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "documents_deleted_total",
			Help:      "Total document deletions",
		},
	)

	DocumentsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "documents_stored",
			Help:      "Number of documents currently in the store",
		},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Search scan duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_results",
			Help:      "Number of documents returned per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

var storeMetricsRegistered bool

// RegisterStoreMetrics registers the store collectors on the default registry. Call once from main.
func RegisterStoreMetrics() {
	if storeMetricsRegistered {
		return
	}
	prometheus.MustRegister(DocumentsSavedTotal)
	prometheus.MustRegister(DocumentsDeletedTotal)
	prometheus.MustRegister(DocumentsStored)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	storeMetricsRegistered = true
}

// StoreRecorder feeds the store collectors. It satisfies the document and search
// use case Recorder contracts.
type StoreRecorder struct{}

// DocumentSaved counts a save and tracks the stored gauge for new IDs.
func (StoreRecorder) DocumentSaved(created bool) {
	if created {
		DocumentsSavedTotal.WithLabelValues("created").Inc()
		DocumentsStored.Inc()
		return
	}
	DocumentsSavedTotal.WithLabelValues("updated").Inc()
}

// DocumentDeleted counts a deletion.
func (StoreRecorder) DocumentDeleted() {
	DocumentsDeletedTotal.Inc()
	DocumentsStored.Dec()
}

// SearchCompleted observes latency and result size.
func (StoreRecorder) SearchCompleted(duration time.Duration, _, matched int) {
	SearchDuration.Observe(duration.Seconds())
	SearchResults.Observe(float64(matched))
}
