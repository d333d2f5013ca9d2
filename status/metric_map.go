package status

import (
	"sort"
	"sync"
)

// MetricMap holds the editor's named run counters
// The editor resolves each counter once in editor.New and keeps the pointer,
// so the render/poll loop increments without touching the map lock
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty counter set
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the counter registered as name, registering a zero counter on first use
func (m *MetricMap[T]) Get(name string) *T {
	if ptr := m.lookup(name); ptr != nil {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ptr, ok := m.items[name]
	if !ok {
		ptr = new(T)
		m.items[name] = ptr
	}
	return ptr
}

func (m *MetricMap[T]) lookup(name string) *T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[name]
}

// Range visits counters by name in lexical order, as written to the exit log line
func (m *MetricMap[T]) Range(fn func(name string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.items))
	for name := range m.items {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fn(name, m.items[name])
	}
}

// Count returns how many counters have been registered
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
