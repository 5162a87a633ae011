package paging

import (
	"context"
	"log/slog"
	"time"
)

// simulate drives a replacer over the reference string and records one step per page
func simulate(algorithm Algorithm, r Replacer, pages []Page, capacity int) *Result {
	result := &Result{
		Algorithm: algorithm,
		Capacity:  capacity,
		Steps:     make([]Step, 0, len(pages)),
	}

	for _, p := range pages {
		status, victim, evicted := r.Access(p)
		switch status {
		case Hit:
			result.Hits++
		default:
			result.Faults++
		}
		if evicted {
			result.Evictions++
		}

		result.Steps = append(result.Steps, Step{
			Page:    p,
			Frames:  r.Frames(),
			Status:  status,
			Victim:  victim,
			Evicted: evicted,
		})
	}

	return result
}

// Run simulates a single algorithm over the reference string
func Run(algorithm Algorithm, pages []Page, capacity int) (*Result, error) {
	r, err := NewReplacer(algorithm, pages, capacity)
	if err != nil {
		return nil, err
	}
	return simulate(algorithm, r, pages, capacity), nil
}

// RunFIFO simulates first-in first-out replacement
func RunFIFO(pages []Page, capacity int) (*Result, error) {
	return Run(FIFO, pages, capacity)
}

// RunLRU simulates least-recently-used replacement
func RunLRU(pages []Page, capacity int) (*Result, error) {
	return Run(LRU, pages, capacity)
}

// RunOptimal simulates Belady's optimal replacement
func RunOptimal(pages []Page, capacity int) (*Result, error) {
	return Run(OPTIMAL, pages, capacity)
}

// RunClock simulates second-chance CLOCK replacement
func RunClock(pages []Page, capacity int) (*Result, error) {
	return Run(CLOCK, pages, capacity)
}

// RunLFU simulates least-frequently-used replacement
func RunLFU(pages []Page, capacity int) (*Result, error) {
	return Run(LFU, pages, capacity)
}

// RunAll simulates every algorithm independently over the same input
func RunAll(pages []Page, capacity int) (Report, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity("RunAll", capacity)
	}

	report := make(Report, len(Algorithms()))
	for _, alg := range Algorithms() {
		result, err := Run(alg, pages, capacity)
		if err != nil {
			return nil, err
		}
		report[alg] = result
	}
	return report, nil
}

// Simulator runs configured algorithms with logging and optional metrics
type Simulator struct {
	capacity   int
	algorithms []Algorithm
	logger     *slog.Logger
	metrics    *Metrics // nil when metrics are disabled
}

// NewSimulator creates a simulator from a validated configuration.
// A nil logger falls back to slog.Default().
func NewSimulator(cfg *Config, logger *slog.Logger, metrics *Metrics) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	algorithms, err := cfg.SelectedAlgorithms()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.EnableMetrics {
		metrics = nil
	}

	return &Simulator{
		capacity:   cfg.Capacity,
		algorithms: algorithms,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

// Capacity returns the frame count used for every run
func (s *Simulator) Capacity() int {
	return s.capacity
}

// Algorithms returns the configured algorithms in canonical order
func (s *Simulator) Algorithms() []Algorithm {
	return append([]Algorithm(nil), s.algorithms...)
}

// Run simulates one algorithm and records it
func (s *Simulator) Run(algorithm Algorithm, pages []Page) (*Result, error) {
	start := time.Now()
	result, err := Run(algorithm, pages, s.capacity)
	if err != nil {
		s.logger.Error("simulation failed",
			slog.String("algorithm", string(algorithm)),
			slog.Any("error", err),
		)
		return nil, err
	}
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordResult(result, elapsed)
	}

	s.logger.Debug("simulation finished",
		slog.String("algorithm", string(algorithm)),
		slog.Int("capacity", s.capacity),
		slog.Int("references", len(pages)),
		slog.Int("hits", result.Hits),
		slog.Int("faults", result.Faults),
		slog.Int("evictions", result.Evictions),
		slog.Duration("elapsed", elapsed),
	)
	return result, nil
}

// RunSelected simulates the configured algorithms. Cancellation is checked
// between algorithms; a single run always completes.
func (s *Simulator) RunSelected(ctx context.Context, pages []Page) (Report, error) {
	return s.runEach(ctx, s.algorithms, pages)
}

// RunAll simulates every algorithm regardless of configuration
func (s *Simulator) RunAll(ctx context.Context, pages []Page) (Report, error) {
	return s.runEach(ctx, Algorithms(), pages)
}

func (s *Simulator) runEach(ctx context.Context, algorithms []Algorithm, pages []Page) (Report, error) {
	report := make(Report, len(algorithms))
	for _, alg := range algorithms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := s.Run(alg, pages)
		if err != nil {
			return nil, err
		}
		report[alg] = result
	}
	return report, nil
}
