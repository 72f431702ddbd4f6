package metrics

import (
	"strings"
	"sync/atomic"
)

// Snapshot returns a copy of every counter, keyed by metric name.
func (r *Registry) Snapshot() map[string]int64 {
	return r.SnapshotPrefix("")
}

// SnapshotPrefix returns a copy of the counters whose name starts with
// prefix, e.g. "category_" for the per-category classification tallies.
// The result is safe to mutate.
func (r *Registry) SnapshotPrefix(prefix string) map[string]int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(r.counters))
	for key, ptr := range r.counters {
		if !strings.HasPrefix(string(key), prefix) {
			continue
		}
		out[string(key)] = atomic.LoadInt64(ptr)
	}
	return out
}
