package attempt

import (
	"math/rand"
	"strings"
)

// Board is the word-scramble letter board: two disjoint multisets of
// letter tokens, "available" and "placed". Moving a letter transfers it
// between the two; the current answer is always the concatenation of
// the placed sequence in order.
type Board struct {
	original  []string
	available []string
	placed    []string
}

// NewBoard creates a board from the activity's letter list.
func NewBoard(letters []string) *Board {
	b := &Board{
		original:  append([]string(nil), letters...),
		available: append([]string(nil), letters...),
	}
	return b
}

// Available returns the unplaced letters in their current order.
func (b *Board) Available() []string { return b.available }

// Placed returns the placed letters in placement order.
func (b *Board) Placed() []string { return b.placed }

// Answer returns the concatenation of the placed sequence in order.
func (b *Board) Answer() string { return strings.Join(b.placed, "") }

// Place moves available[i] to the end of the placed sequence.
func (b *Board) Place(i int) bool {
	if i < 0 || i >= len(b.available) {
		return false
	}
	b.placed = append(b.placed, b.available[i])
	b.available = append(b.available[:i], b.available[i+1:]...)
	return true
}

// RemoveAt moves placed[i] back to the available multiset.
func (b *Board) RemoveAt(i int) bool {
	if i < 0 || i >= len(b.placed) {
		return false
	}
	b.available = append(b.available, b.placed[i])
	b.placed = append(b.placed[:i], b.placed[i+1:]...)
	return true
}

// RemoveLast moves the most recently placed letter back.
func (b *Board) RemoveLast() bool {
	return b.RemoveAt(len(b.placed) - 1)
}

// Shuffle randomly permutes only the available multiset's order. The
// placed sequence is never touched.
func (b *Board) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(b.available), func(i, j int) {
		b.available[i], b.available[j] = b.available[j], b.available[i]
	})
}

// Clear returns every placed letter to the available multiset and
// empties the answer. The restored order is unspecified.
func (b *Board) Clear() {
	b.available = append(b.available, b.placed...)
	b.placed = nil
}
