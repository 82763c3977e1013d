package domain

import (
	"slices"
	"time"
)

// HistoryCapacity is the number of versions kept for manual restore
const HistoryCapacity = 10

// HistoryEntry is a timestamped snapshot of one scene's text
type HistoryEntry struct {
	Timestamp time.Time
	SceneID   int // 0 when loaded from a snapshot that did not record it
	Text      string
}

// History is a bounded FIFO of scene versions, oldest first.
// When full, appending evicts the oldest entry.
type History struct {
	entries  []HistoryEntry
	capacity int
}

// NewHistory creates an empty history. Non-positive capacities fall back to HistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &History{
		entries:  make([]HistoryEntry, 0, capacity),
		capacity: capacity,
	}
}

// Append adds an entry, dropping the oldest one at capacity
func (h *History) Append(entry HistoryEntry) {
	if len(h.entries) >= h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries[len(h.entries)-1] = entry
		return
	}
	h.entries = append(h.entries, entry)
}

// At returns the entry at index i, counted from the oldest
func (h *History) At(i int) (HistoryEntry, bool) {
	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, false
	}
	return h.entries[i], true
}

// Latest returns the most recent entry
func (h *History) Latest() (HistoryEntry, bool) {
	return h.At(len(h.entries) - 1)
}

// Len returns the number of retained entries
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of retained entries
func (h *History) Capacity() int {
	return h.capacity
}

// Entries returns a copy of the retained entries, oldest first
func (h *History) Entries() []HistoryEntry {
	return slices.Clone(h.entries)
}

// Clone returns an independent copy
func (h *History) Clone() *History {
	c := NewHistory(h.capacity)
	c.entries = append(c.entries, h.entries...)
	return c
}

// HistoryFrom builds a history from entries oldest first, keeping only the
// most recent capacity entries.
func HistoryFrom(entries []HistoryEntry, capacity int) *History {
	h := NewHistory(capacity)
	for _, e := range entries {
		h.Append(e)
	}
	return h
}
