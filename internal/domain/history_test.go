package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestNewHistory_Capacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{"default when 0", 0, HistoryCapacity},
		{"default when negative", -3, HistoryCapacity},
		{"custom", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.capacity)
			if h.Capacity() != tt.want {
				t.Errorf("Capacity() = %d, want %d", h.Capacity(), tt.want)
			}
		})
	}
}

func TestHistory_NeverExceedsCapacity(t *testing.T) {
	h := NewHistory(HistoryCapacity)
	base := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		h.Append(HistoryEntry{Timestamp: base.Add(time.Duration(i) * 10 * time.Second), SceneID: 1, Text: fmt.Sprintf("v%d", i)})
		if h.Len() > HistoryCapacity {
			t.Fatalf("after %d appends Len() = %d, exceeds %d", i+1, h.Len(), HistoryCapacity)
		}
	}

	entries := h.Entries()
	if len(entries) != HistoryCapacity {
		t.Fatalf("expected %d entries, got %d", HistoryCapacity, len(entries))
	}
	for i, e := range entries {
		want := fmt.Sprintf("v%d", 15+i)
		if e.Text != want {
			t.Errorf("entry %d: expected %q, got %q", i, want, e.Text)
		}
	}
}

func TestHistory_At(t *testing.T) {
	h := NewHistory(3)
	h.Append(HistoryEntry{Text: "first"})
	h.Append(HistoryEntry{Text: "second"})

	if e, ok := h.At(0); !ok || e.Text != "first" {
		t.Errorf("At(0) = %q, %v; want first, true", e.Text, ok)
	}
	if _, ok := h.At(2); ok {
		t.Error("At(2) should be out of range")
	}
	if _, ok := h.At(-1); ok {
		t.Error("At(-1) should be out of range")
	}
	if e, ok := h.Latest(); !ok || e.Text != "second" {
		t.Errorf("Latest() = %q, %v; want second, true", e.Text, ok)
	}
}

func TestHistory_LatestEmpty(t *testing.T) {
	h := NewHistory(3)
	if _, ok := h.Latest(); ok {
		t.Error("Latest() on empty history should report false")
	}
}

func TestHistory_EntriesIsCopy(t *testing.T) {
	h := NewHistory(3)
	h.Append(HistoryEntry{Text: "original"})

	entries := h.Entries()
	entries[0].Text = "mutated"

	if e, _ := h.At(0); e.Text != "original" {
		t.Error("Entries() exposed internal storage")
	}
}

func TestHistoryFrom_KeepsMostRecent(t *testing.T) {
	var entries []HistoryEntry
	for i := 0; i < 12; i++ {
		entries = append(entries, HistoryEntry{Text: fmt.Sprintf("v%d", i)})
	}

	h := HistoryFrom(entries, HistoryCapacity)

	if h.Len() != HistoryCapacity {
		t.Fatalf("expected %d entries, got %d", HistoryCapacity, h.Len())
	}
	if e, _ := h.At(0); e.Text != "v2" {
		t.Errorf("expected oldest kept entry v2, got %q", e.Text)
	}
}
