// Package metrics collects per-action counters for the ops API: how often
// each store action ran, how long it took, and how often it failed.
package metrics

import (
	"sync"
	"time"
)

// ActionStat is the aggregated view of one store action.
type ActionStat struct {
	Count         int64   `json:"count"`
	Errors        int64   `json:"errors"`
	ErrorRate     float64 `json:"error_rate"`
	TotalTimeMs   int64   `json:"total_time_ms"`
	AverageTimeMs float64 `json:"average_time_ms"`
	MaxTimeMs     int64   `json:"max_time_ms"`
}

type actionRecord struct {
	count       int64
	errors      int64
	totalTimeMs int64
	maxTimeMs   int64
}

// Metrics is the in-process metrics collector.
type Metrics struct {
	mu        sync.RWMutex
	actions   map[string]*actionRecord
	health    map[string]bool
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		actions:   make(map[string]*actionRecord),
		health:    make(map[string]bool),
		startTime: time.Now(),
	}
}

// RecordAction records one completed action with its duration and outcome.
func (m *Metrics) RecordAction(name string, duration time.Duration, success bool) {
	ms := duration.Milliseconds()

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.actions[name]
	if !ok {
		rec = &actionRecord{}
		m.actions[name] = rec
	}

	rec.count++
	if !success {
		rec.errors++
	}
	rec.totalTimeMs += ms
	if ms > rec.maxTimeMs {
		rec.maxTimeMs = ms
	}
}

// SetHealth sets the health status of a component
func (m *Metrics) SetHealth(component string, healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.health[component] = healthy
}

// GetActions returns the aggregated stats for every recorded action.
func (m *Metrics) GetActions() map[string]ActionStat {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]ActionStat, len(m.actions))
	for name, rec := range m.actions {
		stat := ActionStat{
			Count:       rec.count,
			Errors:      rec.errors,
			TotalTimeMs: rec.totalTimeMs,
			MaxTimeMs:   rec.maxTimeMs,
		}
		if rec.count > 0 {
			stat.ErrorRate = float64(rec.errors) / float64(rec.count) * 100.0
			stat.AverageTimeMs = float64(rec.totalTimeMs) / float64(rec.count)
		}
		out[name] = stat
	}
	return out
}

// GetHealthChecks returns all health checks
func (m *Metrics) GetHealthChecks() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	checks := make(map[string]bool, len(m.health))
	for name, healthy := range m.health {
		checks[name] = healthy
	}
	return checks
}

// GetUptimeSeconds returns the service uptime in seconds
func (m *Metrics) GetUptimeSeconds() int64 {
	return int64(time.Since(m.startTime).Seconds())
}

// GetAllMetrics returns all metrics in a structured format
func (m *Metrics) GetAllMetrics() map[string]interface{} {
	return map[string]interface{}{
		"uptime_seconds": m.GetUptimeSeconds(),
		"actions":        m.GetActions(),
		"health_checks":  m.GetHealthChecks(),
	}
}
