package paging

// Replacer is the per-run state of one page replacement policy.
// A replacer is created for a single reference string and discarded after it.
type Replacer interface {
	// Access references a page and reports whether it was resident.
	// On a fault with every frame occupied, the evicted page is returned
	// together with evicted=true.
	Access(page Page) (status Status, victim Page, evicted bool)

	// Frames returns a copy of the resident pages in display order
	Frames() []Page

	// Len returns the number of resident pages
	Len() int
}

// NewReplacer creates a fresh replacer for the given algorithm.
// pages is only consulted by OPTIMAL, which needs the whole future.
func NewReplacer(algorithm Algorithm, pages []Page, capacity int) (Replacer, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity("NewReplacer", capacity)
	}

	switch algorithm {
	case FIFO:
		return NewFIFOReplacer(capacity), nil
	case LRU:
		return NewLRUReplacer(capacity), nil
	case OPTIMAL:
		return NewOptimalReplacer(pages, capacity), nil
	case CLOCK:
		return NewClockReplacer(capacity), nil
	case LFU:
		return NewLFUReplacer(capacity), nil
	default:
		return nil, ErrUnknownAlgorithm("NewReplacer", string(algorithm))
	}
}
