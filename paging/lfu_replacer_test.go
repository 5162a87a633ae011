package paging

import (
	"testing"
)

// TestLFUTrace tests that the least frequently used page is evicted
func TestLFUTrace(t *testing.T) {
	result, err := RunLFU(pagesOf(1, 2, 1, 3), 2)
	if err != nil {
		t.Fatalf("RunLFU failed: %v", err)
	}

	checkTrace(t, result, []expectedStep{
		miss(1, 1),
		miss(2, 1, 2),
		hit(1, 1, 2),
		miss(3, 1, 3),
	})
	checkCounts(t, result, 1, 3)

	if result.Steps[3].Victim != 2 {
		t.Errorf("Expected victim 2, got %d", result.Steps[3].Victim)
	}
}

// TestLFUTieBreak tests that the first page in resident order wins a tie
func TestLFUTieBreak(t *testing.T) {
	result, err := RunLFU(pagesOf(1, 2, 3), 2)
	if err != nil {
		t.Fatalf("RunLFU failed: %v", err)
	}

	// The victim is removed and the new page appended
	checkTrace(t, result, []expectedStep{
		miss(1, 1),
		miss(2, 1, 2),
		miss(3, 2, 3),
	})
}

// TestLFUFrequencyResetOnEviction tests that a returning page starts over at 1
func TestLFUFrequencyResetOnEviction(t *testing.T) {
	result, err := RunLFU(pagesOf(1, 2, 2, 3, 1, 4), 2)
	if err != nil {
		t.Fatalf("RunLFU failed: %v", err)
	}

	checkTrace(t, result, []expectedStep{
		miss(1, 1),
		miss(2, 1, 2),
		hit(2, 1, 2),
		miss(3, 2, 3),
		miss(1, 2, 1),
		miss(4, 2, 4), // 1 came back with count 1, 2 still has 2
	})
	checkCounts(t, result, 1, 5)
}

// TestLFUTextbook tests the classic reference string
func TestLFUTextbook(t *testing.T) {
	result, err := RunLFU(textbook, 3)
	if err != nil {
		t.Fatalf("RunLFU failed: %v", err)
	}
	checkCounts(t, result, 7, 13)
}

// TestLFUReplacerFrequency tests frequency bookkeeping
func TestLFUReplacerFrequency(t *testing.T) {
	replacer := NewLFUReplacer(2)

	replacer.Access(1)
	replacer.Access(1)
	replacer.Access(1)
	replacer.Access(2)

	if replacer.Frequency(1) != 3 {
		t.Errorf("Expected frequency 3, got %d", replacer.Frequency(1))
	}
	if replacer.Frequency(2) != 1 {
		t.Errorf("Expected frequency 1, got %d", replacer.Frequency(2))
	}

	_, victim, _ := replacer.Access(3)
	if victim != 2 {
		t.Errorf("Expected victim 2, got %d", victim)
	}
	if replacer.Frequency(2) != 0 {
		t.Errorf("Expected evicted page to lose its count, got %d", replacer.Frequency(2))
	}
}
