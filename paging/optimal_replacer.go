package paging

import (
	"math"
	"slices"
)

// never marks a page with no future reference
const never = math.MaxInt

// OptimalReplacer implements Belady's algorithm: on a fault it evicts the
// resident page whose next reference lies furthest in the future.
//
// It needs the whole reference string up front, so Access must be called
// with the pages of that string in order.
type OptimalReplacer struct {
	capacity int
	pages    []Page
	nextUse  []int // nextUse[i] is the index of the next reference to pages[i]
	pos      int   // Index of the reference being served

	frames []Page       // Resident pages, victim slots overwritten in place
	next   map[Page]int // Next reference index of every resident page
}

// NewOptimalReplacer creates a new OPTIMAL replacer for the given reference string
func NewOptimalReplacer(pages []Page, capacity int) *OptimalReplacer {
	return &OptimalReplacer{
		capacity: capacity,
		pages:    pages,
		nextUse:  nextOccurrences(pages),
		frames:   make([]Page, 0, capacity),
		next:     make(map[Page]int, capacity),
	}
}

// nextOccurrences builds the next-reference table in one backwards pass
func nextOccurrences(pages []Page) []int {
	nextUse := make([]int, len(pages))
	seen := make(map[Page]int)
	for i := len(pages) - 1; i >= 0; i-- {
		if j, ok := seen[pages[i]]; ok {
			nextUse[i] = j
		} else {
			nextUse[i] = never
		}
		seen[pages[i]] = i
	}
	return nextUse
}

// Access references the next page of the reference string
func (o *OptimalReplacer) Access(page Page) (Status, Page, bool) {
	nextRef := never
	if o.pos < len(o.pages) && o.pages[o.pos] == page {
		nextRef = o.nextUse[o.pos]
	}
	o.pos++

	if _, resident := o.next[page]; resident {
		o.next[page] = nextRef
		return Hit, 0, false
	}

	if len(o.frames) < o.capacity {
		o.frames = append(o.frames, page)
		o.next[page] = nextRef
		return Miss, 0, false
	}

	// Furthest next use wins; the first resident page wins ties
	farthest := -1
	victimIndex := -1
	for i, p := range o.frames {
		if o.next[p] > farthest {
			farthest = o.next[p]
			victimIndex = i
		}
	}

	victim := o.frames[victimIndex]
	delete(o.next, victim)
	o.frames[victimIndex] = page
	o.next[page] = nextRef

	return Miss, victim, true
}

// Frames returns the resident pages in slot order
func (o *OptimalReplacer) Frames() []Page {
	return slices.Clone(o.frames)
}

// Len returns the number of resident pages
func (o *OptimalReplacer) Len() int {
	return len(o.frames)
}
