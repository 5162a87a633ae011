package paging

import (
	"container/list"
)

// LRUReplacer implements LRU (Least Recently Used) replacement policy
type LRUReplacer struct {
	capacity int
	lruList  *list.List // Front is least recently used
	lruMap   map[Page]*list.Element
}

// NewLRUReplacer creates a new LRU replacer
func NewLRUReplacer(capacity int) *LRUReplacer {
	return &LRUReplacer{
		capacity: capacity,
		lruList:  list.New(),
		lruMap:   make(map[Page]*list.Element, capacity),
	}
}

// Access references a page, making it the most recently used
func (lru *LRUReplacer) Access(page Page) (Status, Page, bool) {
	// Hit: move to back (most recently used)
	if elem, exists := lru.lruMap[page]; exists {
		lru.lruList.MoveToBack(elem)
		return Hit, 0, false
	}

	var victim Page
	evicted := false
	if lru.lruList.Len() == lru.capacity {
		// LRU victim is at the front of the list (oldest)
		oldest := lru.lruList.Front()
		victim = oldest.Value.(Page)
		evicted = true

		lru.lruList.Remove(oldest)
		delete(lru.lruMap, victim)
	}

	lru.lruMap[page] = lru.lruList.PushBack(page)
	return Miss, victim, evicted
}

// Frames returns the resident pages from least to most recently used
func (lru *LRUReplacer) Frames() []Page {
	frames := make([]Page, 0, lru.lruList.Len())
	for e := lru.lruList.Front(); e != nil; e = e.Next() {
		frames = append(frames, e.Value.(Page))
	}
	return frames
}

// Len returns the number of resident pages
func (lru *LRUReplacer) Len() int {
	return lru.lruList.Len()
}
