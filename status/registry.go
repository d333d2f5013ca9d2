package status

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Counter names recorded by the editor loop
const (
	Frames       = "frames"
	Keys         = "keys"
	Unrecognized = "keys_unrecognized"
	Moves        = "moves"
	Blocked      = "moves_blocked"
	PollIdle     = "poll_idle"
)

// Registry holds the run counters
type Registry struct {
	Counters *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
	}
}

// Counter returns the counter for name, creating it at zero
func (r *Registry) Counter(name string) *atomic.Int64 {
	return r.Counters.Get(name)
}

// Snapshot copies all counter values
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Counters.Count())
	r.Counters.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}

// String formats counters as "name=value" pairs in key order
func (r *Registry) String() string {
	var sb strings.Builder
	r.Counters.Range(func(key string, ptr *atomic.Int64) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatInt(ptr.Load(), 10))
	})
	return sb.String()
}
