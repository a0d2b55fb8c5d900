package editor

import "github.com/matzehuels/erdiagram/pkg/model"

// DefaultHistorySize is the number of undo steps kept when no size is
// configured.
const DefaultHistorySize = 50

// History is a bounded pair of undo and redo stacks of diagram snapshots.
// Every stored snapshot is a deep copy owned by the History.
type History struct {
	undo, redo []model.Diagram
	capacity   int
}

// NewHistory returns a History keeping at most capacity undo steps. A
// non-positive capacity selects DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{capacity: capacity}
}

// Push records a snapshot of d as the newest undo step, evicting the oldest
// step when full, and discards the redo stack.
func (h *History) Push(d model.Diagram) {
	h.undo = append(h.undo, d.Clone())
	if len(h.undo) > h.capacity {
		h.undo = h.undo[len(h.undo)-h.capacity:]
	}
	h.redo = nil
}

// Undo moves current onto the redo stack and returns the newest undo step.
// It returns false and leaves both stacks alone when there is nothing to
// undo.
func (h *History) Undo(current model.Diagram) (model.Diagram, bool) {
	if len(h.undo) == 0 {
		return model.Diagram{}, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current.Clone())
	return prev, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current model.Diagram) (model.Diagram, bool) {
	if len(h.redo) == 0 {
		return model.Diagram{}, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current.Clone())
	return next, true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) { return len(h.undo), len(h.redo) }

// Clear drops every snapshot.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
