package paging

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	set "github.com/deckarep/golang-set"
	"github.com/pingcap/go-ycsb/pkg/generator"
)

// Distribution selects how generated page numbers are drawn
type Distribution string

const (
	DistributionUniform    Distribution = "uniform"    // Every page equally likely
	DistributionZipfian    Distribution = "zipfian"    // Few hot pages, long cold tail
	DistributionSequential Distribution = "sequential" // Looping scan 0..MaxPage
)

// ParseDistribution resolves a distribution name, ignoring case
func ParseDistribution(name string) (Distribution, error) {
	switch d := Distribution(strings.ToLower(strings.TrimSpace(name))); d {
	case DistributionUniform, DistributionZipfian, DistributionSequential:
		return d, nil
	default:
		return "", ErrInvalidWorkload("ParseDistribution", fmt.Sprintf("unknown distribution %q", name))
	}
}

// MaxPageLimit is the largest MaxPage a workload accepts; the page domain
// [0, MaxPage] must have a representable size.
const MaxPageLimit = math.MaxInt - 1

// WorkloadOptions describes a generated reference string
type WorkloadOptions struct {
	Length       int
	MaxPage      int
	Distribution Distribution
	ZipfSkew     float64
	Seed         int64 // 0 picks a fresh seed
}

// Workload is a generated reference string and the seed that produced it
type Workload struct {
	Pages []Page
	Seed  int64
}

// NewSeed generates a random non-zero seed using crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}

// GenerateReferenceString draws a reference string of opts.Length pages in
// [0, opts.MaxPage]. The same non-zero seed always yields the same pages.
func GenerateReferenceString(opts WorkloadOptions) (*Workload, error) {
	if opts.Length < 0 {
		return nil, ErrInvalidWorkload("GenerateReferenceString", fmt.Sprintf("length cannot be negative, got %d", opts.Length))
	}
	if opts.MaxPage < 0 {
		return nil, ErrInvalidWorkload("GenerateReferenceString", fmt.Sprintf("max page cannot be negative, got %d", opts.MaxPage))
	}
	if opts.MaxPage > MaxPageLimit {
		return nil, ErrInvalidWorkload("GenerateReferenceString", fmt.Sprintf("max page cannot exceed %d", MaxPageLimit))
	}

	dist := DistributionUniform
	if opts.Distribution != "" {
		var err error
		if dist, err = ParseDistribution(string(opts.Distribution)); err != nil {
			return nil, err
		}
	}

	seed := opts.Seed
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, err
		}
	}
	r := rand.New(rand.NewSource(seed))

	pages := make([]Page, opts.Length)
	switch dist {
	case DistributionUniform:
		for i := range pages {
			pages[i] = Page(r.Intn(opts.MaxPage + 1))
		}

	case DistributionZipfian:
		if opts.ZipfSkew <= 0 || opts.ZipfSkew == 1 {
			return nil, ErrInvalidWorkload("GenerateReferenceString", fmt.Sprintf("zipf skew must be positive and not 1, got %g", opts.ZipfSkew))
		}
		if opts.MaxPage == 0 {
			// Single page domain; the generator needs at least two items
			break
		}
		zip := generator.NewZipfianWithRange(0, int64(opts.MaxPage), opts.ZipfSkew)
		for i := range pages {
			pages[i] = Page(zip.Next(r))
		}

	case DistributionSequential:
		for i := range pages {
			pages[i] = Page(i % (opts.MaxPage + 1))
		}

	default:
		return nil, ErrInvalidWorkload("GenerateReferenceString", fmt.Sprintf("unknown distribution %q", dist))
	}

	return &Workload{Pages: pages, Seed: seed}, nil
}

// DistinctPages counts the distinct pages in a reference string. Every
// algorithm faults at least this many times (compulsory misses).
func DistinctPages(pages []Page) int {
	distinct := set.NewSet()
	for _, p := range pages {
		distinct.Add(p)
	}
	return distinct.Cardinality()
}

// ParsePages parses a reference string such as "1,2,3" or "1 2 3"
func ParsePages(s string) ([]Page, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	pages := make([]Page, 0, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, NewSimulationError(ErrCodeInvalidPage, "ParsePages",
				fmt.Sprintf("invalid page %q at position %d", f, i), err)
		}
		pages = append(pages, Page(n))
	}
	return pages, nil
}
