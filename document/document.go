// Package document implements the mutable text store (C5): a byte buffer
// with a position/range API, atomic insert/delete/replace, and a generation
// counter that invalidates anything keyed by it (the analysis cache, spans
// captured before the edit). It holds the last successful parse of its own
// text, the way a terminal screen buffer holds derived paint state alongside
// the raw cell grid.
package document

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
)

// Range is a half-open byte range [Start, End). A Range with Start > End is
// normalized (swapped) the first time it reaches a Document method.
type Range struct {
	Start, End int
}

func (r Range) normalize() Range {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

func (r Range) Len() int { return r.End - r.Start }

// Mutation describes what a successful Insert/Delete/Replace actually did,
// in enough detail for the edit package to build the Operation whose
// inverse data the history stack records. Document itself has no notion of
// undo; it only ever moves forward.
type Mutation struct {
	Range   Range // the range in the NEW buffer that now holds NewText
	OldText string
	NewText string
	Gen     int // the generation AFTER this mutation
}

// Document owns one contiguous source buffer and everything derived from
// it: a generation counter, a lazily rebuilt line-start index, and the
// last-known parse of the buffer. Mutators take the write lock; queries
// take the read lock, mirroring a mu sync.RWMutex
// discipline. No method calls another exported method while holding the
// lock.
type Document struct {
	mu sync.RWMutex

	buf []byte
	gen int

	lineStarts     []int // byte offset of the first byte of each line
	lineIndexDirty bool

	lastParse *ast.Script
}

// New creates a Document over initial (copied, so the caller's slice can be
// reused or mutated afterward without aliasing the document's buffer).
func New(initial []byte) *Document {
	buf := make([]byte, len(initial))
	copy(buf, initial)
	d := &Document{buf: buf}
	d.lineIndexDirty = true
	return d
}

// Text returns the full document text. The returned string shares no
// storage with the internal buffer (Go string conversion copies), so it
// remains valid across later mutations.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return string(d.buf)
}

// LenBytes returns the buffer length in bytes.
func (d *Document) LenBytes() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.buf)
}

// IsEmpty reports whether the buffer has zero bytes.
func (d *Document) IsEmpty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.buf) == 0
}

// LenLines returns the number of lines, counting a trailing unterminated
// line as one more line (so "" is 1 line, "a\n" is 2 lines: "a" and "").
func (d *Document) LenLines() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rebuildLineIndexLocked()
	return len(d.lineStarts)
}

// Generation returns the current edit-generation counter. A span taken from
// a parse made at an older generation is stale against this buffer.
func (d *Document) Generation() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.gen
}

// Script returns the last parse recorded via SetScript, or nil if none has
// been recorded yet (fresh document, or a parse that failed outright).
func (d *Document) Script() *ast.Script {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastParse
}

// SetScript records script as the document's last-known parse. Callers
// (the editor/session layer) call this after a successful full or
// incremental reparse; Document does not parse its own buffer.
func (d *Document) SetScript(script *ast.Script) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastParse = script
}

// TextRange returns the text within r. An out-of-bounds or
// UTF-8-boundary-violating range is an error and returns "".
func (d *Document) TextRange(r Range) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r = r.normalize()
	if err := d.checkRangeLocked(r); err != nil {
		return "", err
	}
	return string(d.buf[r.Start:r.End]), nil
}

// Insert inserts text at pos, atomically: on any validation failure the
// document is left byte-for-byte unchanged and a zero Mutation is returned
// alongside the error.
func (d *Document) Insert(pos int, text string) (Mutation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkPositionLocked(pos); err != nil {
		return Mutation{}, err
	}
	if !utf8.ValidString(text) {
		return Mutation{}, assutil.NewEditorError(assutil.ErrUTF8Boundary, "insert text is not valid UTF-8")
	}

	next := make([]byte, 0, len(d.buf)+len(text))
	next = append(next, d.buf[:pos]...)
	next = append(next, text...)
	next = append(next, d.buf[pos:]...)

	d.buf = next
	d.gen++
	d.lineIndexDirty = true

	return Mutation{
		Range:   Range{Start: pos, End: pos + len(text)},
		OldText: "",
		NewText: text,
		Gen:     d.gen,
	}, nil
}

// Delete removes r, atomically.
func (d *Document) Delete(r Range) (Mutation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r = r.normalize()
	if err := d.checkRangeLocked(r); err != nil {
		return Mutation{}, err
	}

	old := string(d.buf[r.Start:r.End])
	next := make([]byte, 0, len(d.buf)-r.Len())
	next = append(next, d.buf[:r.Start]...)
	next = append(next, d.buf[r.End:]...)

	d.buf = next
	d.gen++
	d.lineIndexDirty = true

	return Mutation{
		Range:   Range{Start: r.Start, End: r.Start},
		OldText: old,
		NewText: "",
		Gen:     d.gen,
	}, nil
}

// Replace substitutes r with text, atomically, as a single generation bump
// rather than a Delete followed by an Insert (so history records one
// Operation, not two).
func (d *Document) Replace(r Range, text string) (Mutation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r = r.normalize()
	if err := d.checkRangeLocked(r); err != nil {
		return Mutation{}, err
	}
	if !utf8.ValidString(text) {
		return Mutation{}, assutil.NewEditorError(assutil.ErrUTF8Boundary, "replace text is not valid UTF-8")
	}

	old := string(d.buf[r.Start:r.End])
	next := make([]byte, 0, len(d.buf)-r.Len()+len(text))
	next = append(next, d.buf[:r.Start]...)
	next = append(next, text...)
	next = append(next, d.buf[r.End:]...)

	d.buf = next
	d.gen++
	d.lineIndexDirty = true

	return Mutation{
		Range:   Range{Start: r.Start, End: r.Start + len(text)},
		OldText: old,
		NewText: text,
		Gen:     d.gen,
	}, nil
}

// checkPositionLocked validates an insertion point: in range and not
// inside a UTF-8 multi-byte sequence. Caller must hold d.mu.
func (d *Document) checkPositionLocked(pos int) error {
	if pos < 0 || pos > len(d.buf) {
		return assutil.NewEditorError(assutil.ErrOutOfBounds, fmt.Sprintf("position %d out of bounds [0,%d]", pos, len(d.buf)))
	}
	if pos < len(d.buf) && !utf8.RuneStart(d.buf[pos]) {
		return assutil.NewEditorError(assutil.ErrUTF8Boundary, fmt.Sprintf("position %d falls inside a UTF-8 sequence", pos))
	}
	return nil
}

// checkRangeLocked validates a range's bounds and UTF-8 boundaries. Caller
// must hold d.mu (read or write).
func (d *Document) checkRangeLocked(r Range) error {
	if r.Start < 0 || r.End > len(d.buf) || r.Start > r.End {
		return assutil.NewEditorError(assutil.ErrOutOfBounds, fmt.Sprintf("range [%d,%d) out of bounds [0,%d]", r.Start, r.End, len(d.buf)))
	}
	if r.Start < len(d.buf) && !utf8.RuneStart(d.buf[r.Start]) {
		return assutil.NewEditorError(assutil.ErrUTF8Boundary, fmt.Sprintf("range start %d falls inside a UTF-8 sequence", r.Start))
	}
	if r.End < len(d.buf) && !utf8.RuneStart(d.buf[r.End]) {
		return assutil.NewEditorError(assutil.ErrUTF8Boundary, fmt.Sprintf("range end %d falls inside a UTF-8 sequence", r.End))
	}
	return nil
}
