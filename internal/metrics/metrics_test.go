package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordActionAggregates(t *testing.T) {
	m := NewMetrics()

	m.RecordAction("delivery.assign", 10*time.Millisecond, true)
	m.RecordAction("delivery.assign", 30*time.Millisecond, true)
	m.RecordAction("delivery.assign", 20*time.Millisecond, false)

	stats := m.GetActions()
	stat, ok := stats["delivery.assign"]
	require.True(t, ok)
	require.Equal(t, int64(3), stat.Count)
	require.Equal(t, int64(1), stat.Errors)
	require.InDelta(t, 33.33, stat.ErrorRate, 0.01)
	require.Equal(t, int64(60), stat.TotalTimeMs)
	require.Equal(t, int64(30), stat.MaxTimeMs)
	require.InDelta(t, 20.0, stat.AverageTimeMs, 0.01)
}

func TestHealthChecks(t *testing.T) {
	m := NewMetrics()

	m.SetHealth("backend", true)
	m.SetHealth("redis", false)

	checks := m.GetHealthChecks()
	require.True(t, checks["backend"])
	require.False(t, checks["redis"])
}

func TestGetAllMetricsShape(t *testing.T) {
	m := NewMetrics()
	m.RecordAction("inventory.fetch_companies", 5*time.Millisecond, true)

	out := m.GetAllMetrics()
	require.Contains(t, out, "uptime_seconds")
	require.Contains(t, out, "actions")
	require.Contains(t, out, "health_checks")
}
