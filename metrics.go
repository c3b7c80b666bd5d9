package qbloch

import (
	"sort"
	"sync"
	"time"
)

/*
Metrics tracks what a view has done: requests, frames and how long gates
actually took to animate. Gate durations overshoot RotationDuration by up to
one frame, which is what the percentiles make visible.
*/
type Metrics struct {
	mu sync.RWMutex

	GatesQueued     int64
	GatesCompleted  int64
	GatesRejected   int64
	FramesPublished int64
	Resets          int64

	AverageGateDuration time.Duration
	P95GateDuration     time.Duration

	durations  []time.Duration
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		durations:  make([]time.Duration, 0, 256),
		windowSize: 256,
	}
}

func (m *Metrics) recordQueued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GatesQueued++
}

func (m *Metrics) recordRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GatesRejected++
}

func (m *Metrics) recordFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FramesPublished++
}

func (m *Metrics) recordReset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resets++
}

func (m *Metrics) recordCompleted(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GatesCompleted++
	m.AverageGateDuration = (m.AverageGateDuration*time.Duration(m.GatesCompleted-1) + duration) /
		time.Duration(m.GatesCompleted)

	m.durations = append(m.durations, duration)
	if len(m.durations) > m.windowSize {
		m.durations = m.durations[1:]
	}

	sorted := make([]time.Duration, len(m.durations))
	copy(sorted, m.durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	p95Index := int(float64(len(sorted)) * 0.95)
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}
	m.P95GateDuration = sorted[p95Index]
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"gates_queued":      m.GatesQueued,
		"gates_completed":   m.GatesCompleted,
		"gates_rejected":    m.GatesRejected,
		"frames_published":  m.FramesPublished,
		"resets":            m.Resets,
		"avg_gate_duration": m.AverageGateDuration.Milliseconds(),
		"p95_gate_duration": m.P95GateDuration.Milliseconds(),
	}
}
