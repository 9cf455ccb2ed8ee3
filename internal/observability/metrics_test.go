package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gatherGauge(t *testing.T, name, partition string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name || mf.GetType() != dto.MetricType_GAUGE {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "partition" && lp.GetValue() == partition {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("gauge %s{partition=%q} not found", name, partition)
	return 0
}

func TestRecordSnapshot(t *testing.T) {
	accepted := testutil.ToFloat64(rowsAcceptedCounter)
	rejected := testutil.ToFloat64(rowsRejectedCounter)

	RecordSnapshot(7, 3, 5, 2)

	require.Equal(t, accepted+7, testutil.ToFloat64(rowsAcceptedCounter))
	require.Equal(t, rejected+3, testutil.ToFloat64(rowsRejectedCounter))
	require.Equal(t, 5.0, gatherGauge(t, "leaderboard_snapshot_records", "current"))
	require.Equal(t, 2.0, gatherGauge(t, "leaderboard_snapshot_records", "archived"))
	require.Positive(t, testutil.ToFloat64(snapshotGauge))
}

func TestCacheAndRefreshCounters(t *testing.T) {
	hits := testutil.ToFloat64(sourceFetchCounter.WithLabelValues("hit"))
	misses := testutil.ToFloat64(sourceFetchCounter.WithLabelValues("miss"))
	refreshes := testutil.ToFloat64(refreshCounter)
	errs := testutil.ToFloat64(sourceErrorCounter)

	RecordCacheHit()
	RecordCacheHit()
	RecordCacheMiss()
	RecordRefresh()
	RecordSourceError()

	require.Equal(t, hits+2, testutil.ToFloat64(sourceFetchCounter.WithLabelValues("hit")))
	require.Equal(t, misses+1, testutil.ToFloat64(sourceFetchCounter.WithLabelValues("miss")))
	require.Equal(t, refreshes+1, testutil.ToFloat64(refreshCounter))
	require.Equal(t, errs+1, testutil.ToFloat64(sourceErrorCounter))
}

func TestRecorderForwardsToCollectors(t *testing.T) {
	refreshes := testutil.ToFloat64(refreshCounter)
	errs := testutil.ToFloat64(sourceErrorCounter)

	var r Recorder
	r.RecordRefresh()
	r.RecordSourceError()
	r.RecordSnapshot(1, 0, 4, 6)

	require.Equal(t, refreshes+1, testutil.ToFloat64(refreshCounter))
	require.Equal(t, errs+1, testutil.ToFloat64(sourceErrorCounter))
	require.Equal(t, 6.0, gatherGauge(t, "leaderboard_snapshot_records", "archived"))
}
