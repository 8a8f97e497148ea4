// Package history implements bounded undo/redo stacks (C6.2): every
// successful content-changing command pushes an Entry carrying the
// inverse Operation needed to undo it and the forward Operation needed
// to redo it again. Memory accounting is updated at the push/pop site,
// updating its own resource counters at the mutation site rather than
// recomputing them by walking the whole buffer.
package history

import (
	"fmt"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/document"
	"github.com/assforge/ass/edit"
)

// Entry is one undoable unit of history.
type Entry struct {
	Forward      edit.Operation
	Inverse      edit.Operation
	Description  string
	CursorBefore int
	CursorAfter  int
	MemoryUsage  int
}

// History holds two bounded stacks, undo and redo. Both ceilings are
// enforced on every push: MaxEntries bounds stack length, MaxMemoryBytes
// bounds the sum of every entry's MemoryUsage; whichever is reached first
// drops the oldest (bottom-of-stack) entry until back in bounds.
type History struct {
	MaxEntries     int
	MaxMemoryBytes int

	undo []Entry
	redo []Entry
	mem  int
}

// New returns a History with the given ceilings. A non-positive value
// means unbounded on that axis.
func New(maxEntries, maxMemoryBytes int) *History {
	return &History{MaxEntries: maxEntries, MaxMemoryBytes: maxMemoryBytes}
}

// Push records a successful command's result as a new undo entry and
// clears the redo stack, per the "a successful new edit clears the redo
// stack" invariant. A no-op result (ContentChanged false) is not pushed.
// cursorBefore/cursorAfter are the caller's own cursor bookkeeping.
func (h *History) Push(result edit.CommandResult, description string, cursorBefore, cursorAfter int) {
	if !result.ContentChanged {
		return
	}
	entry := Entry{
		Forward:      result.Forward,
		Inverse:      result.Inverse,
		Description:  description,
		CursorBefore: cursorBefore,
		CursorAfter:  cursorAfter,
		MemoryUsage:  memoryUsage(result),
	}
	h.redo = h.redo[:0]
	h.undo = append(h.undo, entry)
	h.mem += entry.MemoryUsage
	h.enforceCeilings()
}

func memoryUsage(result edit.CommandResult) int {
	n := len(result.Forward.Text) + len(result.Inverse.Text)
	for _, s := range result.Forward.Sections {
		n += len(s.Text)
	}
	for _, s := range result.Inverse.Sections {
		n += len(s.Text)
	}
	return n
}

func (h *History) enforceCeilings() {
	for h.MaxEntries > 0 && len(h.undo) > h.MaxEntries {
		h.dropOldest()
	}
	for h.MaxMemoryBytes > 0 && h.mem > h.MaxMemoryBytes && len(h.undo) > 0 {
		h.dropOldest()
	}
}

func (h *History) dropOldest() {
	oldest := h.undo[0]
	h.undo = h.undo[1:]
	h.mem -= oldest.MemoryUsage
}

// CanUndo reports whether Undo would have an entry to apply.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would have an entry to apply.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo applies the most recent undo entry's Inverse operation to doc,
// moves the entry onto the redo stack, and returns the cursor position
// to restore (CursorBefore).
func (h *History) Undo(doc *document.Document) (int, error) {
	if len(h.undo) == 0 {
		return 0, assutil.NewEditorError(assutil.ErrPreconditionFailed, "nothing to undo")
	}
	entry := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.mem -= entry.MemoryUsage

	if _, err := entry.Inverse.Apply(doc); err != nil {
		// Restore the entry so the stacks stay consistent with doc's
		// actual (unmodified) state.
		h.undo = append(h.undo, entry)
		h.mem += entry.MemoryUsage
		return 0, fmt.Errorf("undo failed: %w", err)
	}
	h.redo = append(h.redo, entry)
	return entry.CursorBefore, nil
}

// Redo re-applies the most recently undone entry's Forward operation to
// doc, moves it back onto the undo stack, and returns CursorAfter.
func (h *History) Redo(doc *document.Document) (int, error) {
	if len(h.redo) == 0 {
		return 0, assutil.NewEditorError(assutil.ErrPreconditionFailed, "nothing to redo")
	}
	entry := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	if _, err := entry.Forward.Apply(doc); err != nil {
		h.redo = append(h.redo, entry)
		return 0, fmt.Errorf("redo failed: %w", err)
	}
	h.undo = append(h.undo, entry)
	h.mem += entry.MemoryUsage
	h.enforceCeilings()
	return entry.CursorAfter, nil
}

// MemoryUsage returns the total tracked memory of the entries currently
// on the undo stack; entries on the redo stack are not counted.
func (h *History) MemoryUsage() int { return h.mem }

// Clear discards both stacks without touching doc.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.mem = 0
}
