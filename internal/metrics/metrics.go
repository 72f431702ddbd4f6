package metrics

import (
	"strings"
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Classification
	ReadingsClassifiedTotal MetricKey = "readings_classified_total"
	HeartRatesClassified    MetricKey = "heart_rates_classified_total"

	// Weekly analysis
	WeeklyAnalysesTotal     MetricKey = "weekly_analyses_total"
	WeeklyInsufficientTotal MetricKey = "weekly_insufficient_total"

	// Export
	ExportsTotal        MetricKey = "exports_total"
	ExportFailuresTotal MetricKey = "export_failures_total"

	// HTTP
	BadRequestsTotal     MetricKey = "bad_requests_total"
	PanicsRecoveredTotal MetricKey = "panics_recovered_total"
)

// CategoryKey returns the per-category classification counter for a label,
// e.g. "category_hypertension_stage_1_total".
func CategoryKey(label string) MetricKey {
	return MetricKey("category_" + slug(label) + "_total")
}

// AdvisoryKey returns the weekly advisory counter for an advisory type,
// e.g. "advisory_warning_total".
func AdvisoryKey(advisoryType string) MetricKey {
	return MetricKey("advisory_" + slug(advisoryType) + "_total")
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Registry stores all metrics.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

// NewRegistry creates a metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()

	if ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	// Slow path: metric not yet initialized
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok = r.counters[key]; ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	var val int64
	r.counters[key] = &val
	atomic.AddInt64(&val, delta)
}
