package paging

import (
	"slices"
	"strings"
)

// Page identifies a referenced memory page
type Page int

// Status is the outcome of a single page reference
type Status uint8

const (
	Miss Status = iota // Page fault: the page had to be brought in
	Hit                // Page was already resident
)

// String returns "HIT" or "MISS"
func (s Status) String() string {
	if s == Hit {
		return "HIT"
	}
	return "MISS"
}

// MarshalText encodes the status the way it is displayed
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "HIT" or "MISS"
func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "HIT":
		*s = Hit
	case "MISS":
		*s = Miss
	default:
		return ErrTraceCorrupted("Status.UnmarshalText", "unknown status "+string(text), nil)
	}
	return nil
}

// Algorithm names a page replacement policy
type Algorithm string

const (
	FIFO    Algorithm = "FIFO"
	LRU     Algorithm = "LRU"
	OPTIMAL Algorithm = "OPTIMAL"
	CLOCK   Algorithm = "CLOCK"
	LFU     Algorithm = "LFU"
)

// Algorithms returns every supported policy in canonical order
func Algorithms() []Algorithm {
	return []Algorithm{FIFO, LRU, OPTIMAL, CLOCK, LFU}
}

// ParseAlgorithm resolves a policy name, ignoring case and surrounding spaces
func ParseAlgorithm(name string) (Algorithm, error) {
	candidate := Algorithm(strings.ToUpper(strings.TrimSpace(name)))
	if slices.Contains(Algorithms(), candidate) {
		return candidate, nil
	}
	return "", ErrUnknownAlgorithm("ParseAlgorithm", name)
}

// Step records the state of the frames right after one reference
type Step struct {
	Page    Page   `json:"page"`
	Frames  []Page `json:"frames"`
	Status  Status `json:"status"`
	Victim  Page   `json:"victim,omitempty"`
	Evicted bool   `json:"evicted,omitempty"` // Victim is only meaningful when set
}

// Result is the full trace of one algorithm over one reference string
type Result struct {
	Algorithm Algorithm `json:"algorithm"`
	Capacity  int       `json:"capacity"`
	Steps     []Step    `json:"steps"`
	Hits      int       `json:"hits"`
	Faults    int       `json:"faults"`
	Evictions int       `json:"evictions"`
}

// HitRatio returns hits over total references, 0 for an empty trace
func (r *Result) HitRatio() float64 {
	total := r.Hits + r.Faults
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total)
}

// Report maps each algorithm to its result
type Report map[Algorithm]*Result

// Names returns the algorithms present in the report in canonical order
func (rep Report) Names() []Algorithm {
	names := make([]Algorithm, 0, len(rep))
	for _, alg := range Algorithms() {
		if _, ok := rep[alg]; ok {
			names = append(names, alg)
		}
	}
	return names
}
