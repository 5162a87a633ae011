package paging

import "slices"

// FIFOReplacer evicts the page that has been resident the longest
type FIFOReplacer struct {
	capacity int
	frames   []Page // Oldest at the front
}

// NewFIFOReplacer creates a new FIFO replacer
func NewFIFOReplacer(capacity int) *FIFOReplacer {
	return &FIFOReplacer{
		capacity: capacity,
		frames:   make([]Page, 0, capacity),
	}
}

// Access references a page. Hits never reorder the frames.
func (f *FIFOReplacer) Access(page Page) (Status, Page, bool) {
	if slices.Contains(f.frames, page) {
		return Hit, 0, false
	}

	var victim Page
	evicted := false
	if len(f.frames) == f.capacity {
		// Shift left (drops the oldest)
		victim = f.frames[0]
		evicted = true
		copy(f.frames, f.frames[1:])
		f.frames = f.frames[:len(f.frames)-1]
	}

	f.frames = append(f.frames, page)
	return Miss, victim, evicted
}

// Frames returns the resident pages, oldest first
func (f *FIFOReplacer) Frames() []Page {
	return slices.Clone(f.frames)
}

// Len returns the number of resident pages
func (f *FIFOReplacer) Len() int {
	return len(f.frames)
}
