package reparse

import (
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
)

// rebaseSpan shifts one span by delta. Spans are always non-negative
// offsets into a buffer that grew or shrank by delta at or before this
// span, so a negative result would indicate a caller bug rather than
// valid input.
func rebaseSpan(s assutil.Span, delta int) assutil.Span {
	return assutil.Span{Start: s.Start + delta, End: s.End + delta}
}

// rebaseSection shifts every byte span inside a section by delta, in
// place. Used both to rebase a freshly reparsed section's spans from its
// synthetic scratch buffer into the real new buffer, and to shift an
// untouched trailing section's spans past an earlier edit without
// re-parsing it at all.
func rebaseSection(sec *ast.Section, delta int) {
	if delta == 0 {
		return
	}
	sec.Span = rebaseSpan(sec.Span, delta)
	for i := range sec.Styles {
		sec.Styles[i].Span = rebaseSpan(sec.Styles[i].Span, delta)
	}
	for i := range sec.Events {
		ev := &sec.Events[i]
		ev.Span = rebaseSpan(ev.Span, delta)
		ev.StartSpan = rebaseSpan(ev.StartSpan, delta)
		ev.EndSpan = rebaseSpan(ev.EndSpan, delta)
		ev.TextSpan = rebaseSpan(ev.TextSpan, delta)
	}
	for i := range sec.Binaries {
		sec.Binaries[i].Span = rebaseSpan(sec.Binaries[i].Span, delta)
	}
}

// rebaseStyleRows and rebaseEventRows shift only the row-level spans of one section's Styles or
// Events (not the section's own Span, which its caller updates
// separately when growing/shrinking the section's own extent).
func rebaseStyleRows(rows []ast.Style, delta int) {
	for i := range rows {
		rows[i].Span = rebaseSpan(rows[i].Span, delta)
	}
}

func rebaseEventRows(rows []ast.Event, delta int) {
	for i := range rows {
		rows[i].Span = rebaseSpan(rows[i].Span, delta)
		rows[i].StartSpan = rebaseSpan(rows[i].StartSpan, delta)
		rows[i].EndSpan = rebaseSpan(rows[i].EndSpan, delta)
		rows[i].TextSpan = rebaseSpan(rows[i].TextSpan, delta)
	}
}
