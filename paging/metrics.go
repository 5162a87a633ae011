package paging

import (
	"log/slog"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram tracks run latency distribution with percentile support
type Histogram struct {
	samples []float64 // Latencies in microseconds
	mu      sync.Mutex
	maxSize int // Maximum samples to retain
}

// NewHistogram creates a new histogram with a max sample size
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Histogram{
		samples: make([]float64, 0, maxSize),
		maxSize: maxSize,
	}
}

// Record adds a latency sample (in microseconds)
func (h *Histogram) Record(latencyUs float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// If at capacity, drop the oldest sample
	if len(h.samples) >= h.maxSize {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}
	h.samples = append(h.samples, latencyUs)
}

// Count returns the number of samples
func (h *Histogram) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.samples)
}

// Percentile calculates the given percentile (0-100) with linear interpolation
func (h *Histogram) Percentile(p float64) float64 {
	h.mu.Lock()
	sorted := slices.Clone(h.samples)
	h.mu.Unlock()

	return percentile(sorted, p)
}

func percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	slices.Sort(samples)

	rank := (p / 100.0) * float64(len(samples)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return samples[lower]
	}

	weight := rank - float64(lower)
	return samples[lower]*(1-weight) + samples[upper]*weight
}

// HistogramSnapshot holds percentile statistics at one point in time
type HistogramSnapshot struct {
	Count int
	Mean  float64
	P50   float64 // Median
	P95   float64
	P99   float64
}

// Snapshot captures current histogram statistics
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	samples := slices.Clone(h.samples)
	h.mu.Unlock()

	snap := HistogramSnapshot{Count: len(samples)}
	if len(samples) == 0 {
		return snap
	}

	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	snap.Mean = sum / float64(len(samples))
	snap.P50 = percentile(samples, 50)
	snap.P95 = percentile(samples, 95)
	snap.P99 = percentile(samples, 99)
	return snap
}

// algorithmMetrics holds the counters of one algorithm
type algorithmMetrics struct {
	runs       atomic.Uint64
	references atomic.Uint64
	hits       atomic.Uint64
	faults     atomic.Uint64
	evictions  atomic.Uint64
	latency    *Histogram
}

// Metrics tracks simulation counters per algorithm
type Metrics struct {
	algorithms map[Algorithm]*algorithmMetrics
	startTime  time.Time
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	m := &Metrics{
		algorithms: make(map[Algorithm]*algorithmMetrics, len(Algorithms())),
		startTime:  time.Now(),
	}
	// The map is fixed after construction so reads need no lock
	for _, alg := range Algorithms() {
		m.algorithms[alg] = &algorithmMetrics{latency: NewHistogram(1000)}
	}
	return m
}

// RecordResult adds a finished run to the counters of its algorithm
func (m *Metrics) RecordResult(result *Result, elapsed time.Duration) {
	am, ok := m.algorithms[result.Algorithm]
	if !ok {
		return
	}
	am.runs.Add(1)
	am.references.Add(uint64(len(result.Steps)))
	am.hits.Add(uint64(result.Hits))
	am.faults.Add(uint64(result.Faults))
	am.evictions.Add(uint64(result.Evictions))
	am.latency.Record(float64(elapsed.Microseconds()))
}

// Getters

func (m *Metrics) GetRuns(alg Algorithm) uint64 {
	if am, ok := m.algorithms[alg]; ok {
		return am.runs.Load()
	}
	return 0
}

func (m *Metrics) GetHits(alg Algorithm) uint64 {
	if am, ok := m.algorithms[alg]; ok {
		return am.hits.Load()
	}
	return 0
}

func (m *Metrics) GetFaults(alg Algorithm) uint64 {
	if am, ok := m.algorithms[alg]; ok {
		return am.faults.Load()
	}
	return 0
}

func (m *Metrics) GetEvictions(alg Algorithm) uint64 {
	if am, ok := m.algorithms[alg]; ok {
		return am.evictions.Load()
	}
	return 0
}

// GetHitRate returns hits over references across all runs of an algorithm
func (m *Metrics) GetHitRate(alg Algorithm) float64 {
	am, ok := m.algorithms[alg]
	if !ok {
		return 0.0
	}
	refs := am.references.Load()
	if refs == 0 {
		return 0.0
	}
	return float64(am.hits.Load()) / float64(refs)
}

// GetLatency returns a snapshot of the run latency distribution of an algorithm
func (m *Metrics) GetLatency(alg Algorithm) HistogramSnapshot {
	if am, ok := m.algorithms[alg]; ok {
		return am.latency.Snapshot()
	}
	return HistogramSnapshot{}
}

func (m *Metrics) GetUptime() time.Duration {
	return time.Since(m.startTime)
}

// LogMetrics logs the counters of every algorithm that ran using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	groups := make([]any, 0, len(Algorithms())+1)
	for _, alg := range Algorithms() {
		if m.GetRuns(alg) == 0 {
			continue
		}
		latency := m.GetLatency(alg)
		groups = append(groups, slog.Group(string(alg),
			slog.Uint64("runs", m.GetRuns(alg)),
			slog.Uint64("hits", m.GetHits(alg)),
			slog.Uint64("faults", m.GetFaults(alg)),
			slog.Uint64("evictions", m.GetEvictions(alg)),
			slog.Float64("hit_rate", m.GetHitRate(alg)),
			slog.Group("latency_us",
				slog.Float64("mean", latency.Mean),
				slog.Float64("p95", latency.P95),
			),
		))
	}
	groups = append(groups, slog.Duration("uptime", m.GetUptime()))

	logger.Info("Simulation Metrics", groups...)
}
