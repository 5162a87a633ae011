package paging

// ClockReplacer implements the CLOCK (second-chance) replacement policy.
//
// Frames are a fixed array of slots with a parallel reference-bit array and
// a single hand. Until every slot has been used once, faults fill the first
// empty slot directly and the hand stays put. After that, faults sweep from
// the hand: a set reference bit is cleared and skipped, and the first slot
// with a clear bit is replaced.
type ClockReplacer struct {
	capacity int
	slots    []Page
	refBits  []bool
	size     int // Occupied slots always form the prefix slots[:size]
	hand     int
}

// NewClockReplacer creates a new CLOCK replacer
func NewClockReplacer(capacity int) *ClockReplacer {
	return &ClockReplacer{
		capacity: capacity,
		slots:    make([]Page, capacity),
		refBits:  make([]bool, capacity),
	}
}

// Access references a page. A hit sets the slot's reference bit without
// moving the hand.
func (c *ClockReplacer) Access(page Page) (Status, Page, bool) {
	for i := 0; i < c.size; i++ {
		if c.slots[i] == page {
			c.refBits[i] = true
			return Hit, 0, false
		}
	}

	// Initial fill ignores the hand
	if c.size < c.capacity {
		c.slots[c.size] = page
		c.refBits[c.size] = false
		c.size++
		return Miss, 0, false
	}

	// Terminates within two revolutions: the first pass clears every bit
	for {
		if c.refBits[c.hand] {
			c.refBits[c.hand] = false
			c.advance()
			continue
		}

		victim := c.slots[c.hand]
		c.slots[c.hand] = page
		c.refBits[c.hand] = false
		c.advance()
		return Miss, victim, true
	}
}

func (c *ClockReplacer) advance() {
	c.hand = (c.hand + 1) % c.capacity
}

// Frames returns the occupied slots in slot-index order
func (c *ClockReplacer) Frames() []Page {
	frames := make([]Page, c.size)
	copy(frames, c.slots[:c.size])
	return frames
}

// Len returns the number of occupied slots
func (c *ClockReplacer) Len() int {
	return c.size
}

// Hand returns the current hand position
func (c *ClockReplacer) Hand() int {
	return c.hand
}

// Referenced reports the reference bit of a slot
func (c *ClockReplacer) Referenced(slot int) bool {
	if slot < 0 || slot >= c.capacity {
		return false
	}
	return c.refBits[slot]
}
