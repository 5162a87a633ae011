package paging

import (
	"slices"
)

// LFUReplacer implements LFU (Least Frequently Used) replacement policy.
// Counts are dropped on eviction, so a page that comes back starts at 1.
type LFUReplacer struct {
	capacity int
	frames   []Page
	freq     map[Page]int
}

// NewLFUReplacer creates a new LFU replacer
func NewLFUReplacer(capacity int) *LFUReplacer {
	return &LFUReplacer{
		capacity: capacity,
		frames:   make([]Page, 0, capacity),
		freq:     make(map[Page]int, capacity),
	}
}

// Access references a page, bumping its frequency on a hit
func (l *LFUReplacer) Access(page Page) (Status, Page, bool) {
	if _, resident := l.freq[page]; resident {
		l.freq[page]++
		return Hit, 0, false
	}

	var victim Page
	evicted := false
	if len(l.frames) == l.capacity {
		// Strictly smaller count wins, so the first minimum is kept on ties
		victimIndex := 0
		for i := 1; i < len(l.frames); i++ {
			if l.freq[l.frames[i]] < l.freq[l.frames[victimIndex]] {
				victimIndex = i
			}
		}

		victim = l.frames[victimIndex]
		evicted = true
		l.frames = slices.Delete(l.frames, victimIndex, victimIndex+1)
		delete(l.freq, victim)
	}

	l.frames = append(l.frames, page)
	l.freq[page] = 1
	return Miss, victim, evicted
}

// Frames returns the resident pages in arrival order
func (l *LFUReplacer) Frames() []Page {
	return slices.Clone(l.frames)
}

// Len returns the number of resident pages
func (l *LFUReplacer) Len() int {
	return len(l.frames)
}

// Frequency returns the reference count of a resident page, 0 otherwise
func (l *LFUReplacer) Frequency(page Page) int {
	return l.freq[page]
}
