package game

import (
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
)

// HistoryKind tags a history entry with the kind of move it undoes.
type HistoryKind int

const (
	HistoryPlace HistoryKind = iota
	HistoryHopperMove
	HistoryFusion
)

func (k HistoryKind) String() string {
	switch k {
	case HistoryPlace:
		return "place"
	case HistoryHopperMove:
		return "hopper_move"
	case HistoryFusion:
		return "fusion"
	default:
		return "unknown"
	}
}

// HistoryEntry is the board as it stood before a move, plus who made it.
// At is the placed cell, the hopper destination or the fusion target.
// From is the hopper origin or the fusion center.
type HistoryEntry struct {
	Kind       HistoryKind
	Snapshot   core.Snapshot
	Player     core.Player
	MoveNumber int
	At         core.Coordinate
	From       core.Coordinate
}

// History is the undo stack. With a positive maxDepth the oldest entries are dropped.
type History struct {
	entries  []HistoryEntry
	maxDepth int
}

// NewHistory creates an empty history; maxDepth <= 0 keeps every entry
func NewHistory(maxDepth int) *History {
	return &History{maxDepth: maxDepth}
}

// Push records an entry
func (h *History) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
	if h.maxDepth > 0 && len(h.entries) > h.maxDepth {
		n := copy(h.entries, h.entries[len(h.entries)-h.maxDepth:])
		h.entries = h.entries[:n]
	}
}

// Pop removes and returns the latest entry
func (h *History) Pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Peek returns the latest entry without removing it
func (h *History) Peek() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) Len() int { return len(h.entries) }

// Clear drops every entry
func (h *History) Clear() {
	h.entries = h.entries[:0]
}

// Entries returns the entries oldest first
func (h *History) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}
