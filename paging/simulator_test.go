package paging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"reflect"
	"slices"
	"testing"
)

type expectedStep struct {
	page   Page
	frames []Page
	status Status
}

func miss(page Page, frames ...Page) expectedStep {
	return expectedStep{page: page, frames: frames, status: Miss}
}

func hit(page Page, frames ...Page) expectedStep {
	return expectedStep{page: page, frames: frames, status: Hit}
}

func pagesOf(values ...int) []Page {
	pages := make([]Page, len(values))
	for i, v := range values {
		pages[i] = Page(v)
	}
	return pages
}

// textbook is the classic reference string used in OS courses
var textbook = pagesOf(7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1)

func checkTrace(t *testing.T, result *Result, want []expectedStep) {
	t.Helper()

	if len(result.Steps) != len(want) {
		t.Fatalf("Expected %d steps, got %d", len(want), len(result.Steps))
	}
	for i, w := range want {
		got := result.Steps[i]
		if got.Page != w.page {
			t.Errorf("Step %d: expected page %d, got %d", i+1, w.page, got.Page)
		}
		if got.Status != w.status {
			t.Errorf("Step %d (page %d): expected %s, got %s", i+1, w.page, w.status, got.Status)
		}
		if !slices.Equal(got.Frames, w.frames) {
			t.Errorf("Step %d (page %d): expected frames %v, got %v", i+1, w.page, w.frames, got.Frames)
		}
	}
}

func checkCounts(t *testing.T, result *Result, hits, faults int) {
	t.Helper()
	if result.Hits != hits {
		t.Errorf("Expected %d hits, got %d", hits, result.Hits)
	}
	if result.Faults != faults {
		t.Errorf("Expected %d faults, got %d", faults, result.Faults)
	}
}

func TestRunInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		length := r.Intn(60)
		capacity := 1 + r.Intn(6)
		pages := make([]Page, length)
		for i := range pages {
			pages[i] = Page(r.Intn(10))
		}

		for _, alg := range Algorithms() {
			result, err := Run(alg, pages, capacity)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", alg, err)
			}

			if len(result.Steps) != len(pages) {
				t.Errorf("%s: expected %d steps, got %d", alg, len(pages), len(result.Steps))
			}
			if result.Hits+result.Faults != len(pages) {
				t.Errorf("%s: hits %d + faults %d != %d references", alg, result.Hits, result.Faults, len(pages))
			}
			if result.Evictions > result.Faults {
				t.Errorf("%s: evictions %d exceed faults %d", alg, result.Evictions, result.Faults)
			}
			if result.Faults < DistinctPages(pages) {
				t.Errorf("%s: faults %d below compulsory misses %d", alg, result.Faults, DistinctPages(pages))
			}

			for i, step := range result.Steps {
				if step.Page != pages[i] {
					t.Fatalf("%s step %d: expected page %d, got %d", alg, i, pages[i], step.Page)
				}
				if len(step.Frames) > capacity {
					t.Errorf("%s step %d: %d frames exceed capacity %d", alg, i, len(step.Frames), capacity)
				}
				if !slices.Contains(step.Frames, step.Page) {
					t.Errorf("%s step %d: referenced page %d not resident in %v", alg, i, step.Page, step.Frames)
				}
				if step.Evicted && step.Status != Miss {
					t.Errorf("%s step %d: eviction on a hit", alg, i)
				}
			}
		}
	}
}

func TestRunEmptyPages(t *testing.T) {
	for _, alg := range Algorithms() {
		result, err := Run(alg, nil, 3)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", alg, err)
		}
		if len(result.Steps) != 0 || result.Hits != 0 || result.Faults != 0 {
			t.Errorf("%s: expected empty result, got %d steps, %d hits, %d faults",
				alg, len(result.Steps), result.Hits, result.Faults)
		}
	}
}

func TestRunInvalidCapacity(t *testing.T) {
	runs := map[string]func([]Page, int) (*Result, error){
		"FIFO":    RunFIFO,
		"LRU":     RunLRU,
		"OPTIMAL": RunOptimal,
		"CLOCK":   RunClock,
		"LFU":     RunLFU,
	}

	for name, run := range runs {
		for _, capacity := range []int{0, -1} {
			result, err := run(pagesOf(1, 2, 3), capacity)
			if err == nil {
				t.Errorf("%s capacity %d: expected error, got result %+v", name, capacity, result)
				continue
			}
			if !errors.Is(err, ErrCapacity) {
				t.Errorf("%s capacity %d: expected invalid capacity error, got %v", name, capacity, err)
			}
		}
	}

	if _, err := RunAll(pagesOf(1), 0); !IsErrorCode(err, ErrCodeInvalidCapacity) {
		t.Errorf("RunAll: expected invalid capacity error, got %v", err)
	}
}

func TestRunUnknownAlgorithm(t *testing.T) {
	_, err := Run(Algorithm("MRU"), pagesOf(1, 2), 2)
	if !IsErrorCode(err, ErrCodeUnknownAlgorithm) {
		t.Errorf("Expected unknown algorithm error, got %v", err)
	}
}

func TestRunIdempotent(t *testing.T) {
	for _, alg := range Algorithms() {
		first, err := Run(alg, textbook, 3)
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		second, err := Run(alg, textbook, 3)
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: repeated runs differ", alg)
		}
	}
}

func TestStepSnapshotsAreIndependent(t *testing.T) {
	for _, alg := range Algorithms() {
		result, err := Run(alg, pagesOf(1, 2, 3, 4, 1, 2, 5), 3)
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}

		before := slices.Clone(result.Steps[2].Frames)
		result.Steps[1].Frames[0] = 99
		if !slices.Equal(result.Steps[2].Frames, before) {
			t.Errorf("%s: mutating one snapshot changed another", alg)
		}
	}
}

func TestRunDoesNotModifyInput(t *testing.T) {
	pages := pagesOf(3, 1, 3, 2, 1)
	original := slices.Clone(pages)
	if _, err := RunAll(pages, 2); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(pages, original) {
		t.Errorf("Input modified: expected %v, got %v", original, pages)
	}
}

func TestRunAll(t *testing.T) {
	report, err := RunAll(textbook, 3)
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	if !slices.Equal(report.Names(), Algorithms()) {
		t.Fatalf("Expected all algorithms, got %v", report.Names())
	}

	wantFaults := map[Algorithm]int{FIFO: 15, LRU: 12, OPTIMAL: 9, CLOCK: 11, LFU: 13}
	for alg, faults := range wantFaults {
		if report[alg].Faults != faults {
			t.Errorf("%s: expected %d faults, got %d", alg, faults, report[alg].Faults)
		}
		if report[alg].Algorithm != alg {
			t.Errorf("%s: result labelled %s", alg, report[alg].Algorithm)
		}
		if report[alg].Capacity != 3 {
			t.Errorf("%s: expected capacity 3, got %d", alg, report[alg].Capacity)
		}
	}

	// Each entry must match an independent run
	for _, alg := range Algorithms() {
		single, _ := Run(alg, textbook, 3)
		if !reflect.DeepEqual(single, report[alg]) {
			t.Errorf("%s: RunAll result differs from a standalone run", alg)
		}
	}
}

func TestOptimalNeverWorse(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 30; trial++ {
		pages := make([]Page, 40)
		for i := range pages {
			pages[i] = Page(r.Intn(8))
		}
		report, err := RunAll(pages, 1+r.Intn(5))
		if err != nil {
			t.Fatal(err)
		}
		for _, alg := range Algorithms() {
			if report[OPTIMAL].Faults > report[alg].Faults {
				t.Errorf("OPTIMAL faulted %d times, more than %s with %d", report[OPTIMAL].Faults, alg, report[alg].Faults)
			}
		}
	}
}

func TestCapacityAtLeastDistinctPages(t *testing.T) {
	pages := pagesOf(4, 2, 4, 1, 2, 4, 1, 1)
	report, err := RunAll(pages, DistinctPages(pages))
	if err != nil {
		t.Fatal(err)
	}
	for _, alg := range Algorithms() {
		if report[alg].Faults != 3 || report[alg].Evictions != 0 {
			t.Errorf("%s: expected only 3 compulsory misses, got %d faults and %d evictions",
				alg, report[alg].Faults, report[alg].Evictions)
		}
	}
}

func TestSimulatorRunSelected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithms = []string{"lru", "fifo"}
	metrics := NewMetrics()

	sim, err := NewSimulator(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), metrics)
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}

	report, err := sim.RunSelected(context.Background(), textbook)
	if err != nil {
		t.Fatalf("RunSelected failed: %v", err)
	}

	if !slices.Equal(report.Names(), []Algorithm{FIFO, LRU}) {
		t.Errorf("Expected FIFO and LRU, got %v", report.Names())
	}
	if metrics.GetRuns(FIFO) != 1 || metrics.GetRuns(LRU) != 1 {
		t.Errorf("Expected one recorded run each, got FIFO=%d LRU=%d", metrics.GetRuns(FIFO), metrics.GetRuns(LRU))
	}
	if metrics.GetRuns(OPTIMAL) != 0 {
		t.Errorf("OPTIMAL should not have run")
	}
	if metrics.GetFaults(LRU) != 12 {
		t.Errorf("Expected 12 LRU faults recorded, got %d", metrics.GetFaults(LRU))
	}
}

func TestSimulatorMetricsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableMetrics = false
	metrics := NewMetrics()

	sim, err := NewSimulator(cfg, nil, metrics)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sim.RunAll(context.Background(), textbook); err != nil {
		t.Fatal(err)
	}
	if metrics.GetRuns(FIFO) != 0 {
		t.Errorf("Metrics recorded while disabled")
	}
}

func TestSimulatorCancelled(t *testing.T) {
	sim, err := NewSimulator(DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sim.RunAll(ctx, textbook); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestNewSimulatorInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 0

	if _, err := NewSimulator(cfg, nil, nil); !IsErrorCode(err, ErrCodeInvalidCapacity) {
		t.Errorf("Expected invalid capacity error, got %v", err)
	}
}
