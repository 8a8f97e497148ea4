// Package reparse implements the incremental reparser (C4): given a
// previous AST, the edit that produced a new buffer, and that new buffer,
// it re-parses only the minimal affected region and shifts everything
// else, instead of re-running the whole parser.
package reparse

import "github.com/assforge/ass/ast"

// TextChange describes one edit: a byte range in the OLD buffer replaced
// by NewText to produce the new buffer.
type TextChange struct {
	Range   Span
	NewText string
}

// Span is a plain byte range; kept distinct from assutil.Span only so this
// package's exported surface doesn't force every caller to import assutil
// for one field. Start/End have the same [Start,End) meaning.
type Span struct {
	Start, End int
}

func (s Span) Len() int { return s.End - s.Start }

// ModifiedSection pairs an old section index with its replacement.
type ModifiedSection struct {
	Index   int
	Section ast.Section
}

// ScriptDelta describes what changed between two Scripts at the section
// granularity, so history and render caches can invalidate precisely
// instead of discarding everything.
type ScriptDelta struct {
	Removed  []int
	Added    []ast.Section
	Modified []ModifiedSection
}

// Empty reports whether the delta carries no changes at all (possible if
// an edit only shifted byte offsets without changing any parsed value,
// which cannot happen for a non-empty TextChange but is a convenient
// zero-value check for callers).
func (d ScriptDelta) Empty() bool {
	return len(d.Removed) == 0 && len(d.Added) == 0 && len(d.Modified) == 0
}
