// Package observability registers the leaderboard Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	rowsAcceptedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "leaderboard",
		Subsystem: "snapshot",
		Name:      "rows_accepted_total",
		Help:      "Number of source rows that passed normalization.",
	})
	rowsRejectedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "leaderboard",
		Subsystem: "snapshot",
		Name:      "rows_rejected_total",
		Help:      "Number of source rows dropped because distance or date could not be coerced.",
	})
	partitionGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "leaderboard",
		Subsystem: "snapshot",
		Name:      "records",
		Help:      "Records in the most recent snapshot, by partition.",
	}, []string{"partition"})
	snapshotGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "leaderboard",
		Subsystem: "snapshot",
		Name:      "last_built_timestamp_seconds",
		Help:      "Unix timestamp of the most recent snapshot build.",
	})
	sourceErrorCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "leaderboard",
		Subsystem: "source",
		Name:      "read_errors_total",
		Help:      "Number of failed reads from the upstream data source.",
	})
	sourceFetchCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leaderboard",
		Subsystem: "source",
		Name:      "fetches_total",
		Help:      "Snapshot cache lookups, labeled hit or miss.",
	}, []string{"result"})
	refreshCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "leaderboard",
		Subsystem: "snapshot",
		Name:      "manual_refreshes_total",
		Help:      "Number of manual refresh requests that invalidated the snapshot cache.",
	})
)

func init() {
	prometheus.MustRegister(
		rowsAcceptedCounter,
		rowsRejectedCounter,
		partitionGauge,
		snapshotGauge,
		sourceErrorCounter,
		sourceFetchCounter,
		refreshCounter,
	)
}

// RecordSnapshot tracks the outcome of one normalization pass.
func RecordSnapshot(accepted, rejected, current, archived int) {
	rowsAcceptedCounter.Add(float64(accepted))
	rowsRejectedCounter.Add(float64(rejected))
	partitionGauge.WithLabelValues("current").Set(float64(current))
	partitionGauge.WithLabelValues("archived").Set(float64(archived))
	snapshotGauge.Set(float64(time.Now().Unix()))
}

// RecordSourceError counts a failed upstream read.
func RecordSourceError() {
	sourceErrorCounter.Inc()
}

// RecordCacheHit counts a snapshot served from cache.
func RecordCacheHit() {
	sourceFetchCounter.WithLabelValues("hit").Inc()
}

// RecordCacheMiss counts a snapshot fetched from the source.
func RecordCacheMiss() {
	sourceFetchCounter.WithLabelValues("miss").Inc()
}

// RecordRefresh counts a manual refresh.
func RecordRefresh() {
	refreshCounter.Inc()
}

// Recorder exposes the snapshot metrics as a value that can be handed to the
// leaderboard service.
type Recorder struct{}

// RecordSnapshot calls the package-level RecordSnapshot.
func (Recorder) RecordSnapshot(accepted, rejected, current, archived int) {
	RecordSnapshot(accepted, rejected, current, archived)
}

// RecordSourceError calls the package-level RecordSourceError.
func (Recorder) RecordSourceError() { RecordSourceError() }

// RecordRefresh calls the package-level RecordRefresh.
func (Recorder) RecordRefresh() { RecordRefresh() }
