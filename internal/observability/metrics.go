package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters for requests, errors, and complaint
// lifecycle events. Counters are never reset; Snapshot copies them out for
// inspection.
type Metrics struct {
	mu           sync.RWMutex
	requestCount map[string]int64
	errorCount   map[string]int64
	eventCount   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		eventCount:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request by path, method, and status.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	m.requestCount[key]++
	m.mu.Unlock()
}

// RecordError counts an error response by path, method, and error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	m.errorCount[key]++
	m.mu.Unlock()
}

// RecordEvent counts a published lifecycle event by type.
func (m *Metrics) RecordEvent(eventType string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.eventCount[eventType]++
	m.mu.Unlock()
}

// Snapshot returns copies of all counters.
func (m *Metrics) Snapshot() (requests, errors, events map[string]int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyCounts(m.requestCount), copyCounts(m.errorCount), copyCounts(m.eventCount)
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
