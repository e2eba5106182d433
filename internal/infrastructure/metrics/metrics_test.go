package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.ContaMutations == nil || m.HTTPRequests == nil || m.SnapshotLookups == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.RecordContaMutation("create")
	m.RecordHTTPRequest("GET", "/contas/", 200, time.Millisecond)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordContaMutation("create")
	m.RecordContaMutation("create")
	m.RecordContaMutation("delete")
	m.RecordReport("anual", "xlsx", 20*time.Millisecond)
	m.RecordSnapshotLookup(true)
	m.RecordSnapshotLookup(false)
	m.RecordSnapshotLookup(false)

	if got := testutil.ToFloat64(m.ContaMutations.WithLabelValues("create")); got != 2 {
		t.Fatalf("expected 2 creates, got %v", got)
	}
	if got := testutil.ToFloat64(m.ContaMutations.WithLabelValues("delete")); got != 1 {
		t.Fatalf("expected 1 delete, got %v", got)
	}
	if got := testutil.ToFloat64(m.ReportsGenerated.WithLabelValues("anual", "xlsx")); got != 1 {
		t.Fatalf("expected 1 report, got %v", got)
	}
	if got := testutil.ToFloat64(m.SnapshotLookups.WithLabelValues("miss")); got != 2 {
		t.Fatalf("expected 2 misses, got %v", got)
	}
	if got := testutil.ToFloat64(m.SnapshotLookups.WithLabelValues("hit")); got != 1 {
		t.Fatalf("expected 1 hit, got %v", got)
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}
