package reparse

import (
	"strings"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/parser"
)

// Reparse applies one edit incrementally: it locates the minimal section
// range the edit could have touched, re-parses only that (at row
// granularity for a single-section Styles/Events edit, at section
// granularity otherwise), and shifts every untouched section's spans past
// the edit instead of re-scanning them. The result is required to be
// byte-for-byte equivalent to parser.Parse(newSource, limits) — the tests
// in reparse_test.go check exactly that for a Script Info edit, a
// single-event edit and an insertion.
func Reparse(prev *ast.Script, change TextChange, newSource []byte, limits parser.Limits) (*ast.Script, ScriptDelta, []assutil.ParseIssue, error) {
	shift := len(change.NewText) - change.Range.Len()

	if len(prev.Sections) == 0 {
		return fullReparse(prev, newSource, limits)
	}

	lo, hi := affectedSectionRange(prev.Sections, change.Range)
	sec := prev.Sections[lo]

	if lo == hi && rowLevelSafe(sec, change.Range) {
		if newSec, issues, ok := reparseRows(sec, change.Range, newSource, shift, limits); ok {
			result := assembleRowLevel(prev, lo, newSec, shift, newSource)
			return result, rowLevelDelta(lo, newSec), issues, nil
		}
	}

	return reparseSections(prev, lo, hi, newSource, shift, limits)
}

// affectedSectionRange finds the contiguous [lo,hi] section indices an
// edit over r could have touched, bounded by the
// nearest header at or before r.Start and the next header at or after
// r.End.
func affectedSectionRange(sections []ast.Section, r Span) (lo, hi int) {
	for i, sec := range sections {
		if sec.Span.Start <= r.Start {
			lo = i
		}
	}
	hi = lo
	for i, sec := range sections {
		if sec.Span.Start <= r.End {
			hi = i
		}
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// rowLevelSafe reports whether an edit can be handled by reparsing only
// the affected Style/Event rows: true only when the section already has
// at least one row and the edit begins at or after that first row, so it
// cannot be touching the section's header or Format line (neither of
// which carries a tracked span to check directly).
func rowLevelSafe(sec ast.Section, r Span) bool {
	switch sec.Kind {
	case ast.SectionStyles:
		return len(sec.Styles) > 0 && sec.Styles[0].Span.Start <= r.Start
	case ast.SectionEvents:
		return len(sec.Events) > 0 && sec.Events[0].Span.Start <= r.Start
	default:
		return false
	}
}

func reparseRows(sec ast.Section, r Span, newSrc []byte, shift int, limits parser.Limits) (ast.Section, []assutil.ParseIssue, bool) {
	switch sec.Kind {
	case ast.SectionStyles:
		return reparseStyleRows(sec, r, newSrc, shift, limits)
	case ast.SectionEvents:
		return reparseEventRows(sec, r, newSrc, shift, limits)
	default:
		return ast.Section{}, nil, false
	}
}

// affectedRowRange finds the contiguous row index range [rlo,rhi] whose
// spans an edit over r could have touched: the row containing r.Start
// through the row starting at or after r.End, conservatively including
// that following row rather than risk missing a line-boundary change.
func affectedRowRange(spans []assutil.Span, r Span) (lo, hi int) {
	for i, s := range spans {
		if s.Start <= r.Start {
			lo = i
		}
	}
	hi = len(spans) - 1
	for i, s := range spans {
		if s.Start >= r.End {
			hi = i
			break
		}
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func reparseEventRows(sec ast.Section, r Span, newSrc []byte, shift int, limits parser.Limits) (ast.Section, []assutil.ParseIssue, bool) {
	rows := sec.Events
	spans := make([]assutil.Span, len(rows))
	for i, row := range rows {
		spans[i] = row.Span
	}
	rlo, rhi := affectedRowRange(spans, r)

	rowsOldStart := rows[rlo].Span.Start
	rowsOldEnd := rows[rhi].Span.End
	rowsNewEnd := rowsOldEnd + shift
	if rowsOldStart < 0 || rowsNewEnd > len(newSrc) || rowsOldStart > rowsNewEnd {
		return ast.Section{}, nil, false
	}

	prefix := syntheticPrefix(sec)
	synthetic := prefix + string(newSrc[rowsOldStart:rowsNewEnd])
	subScript, issues, err := parser.Parse([]byte(synthetic), limits)
	if err != nil || len(subScript.Sections) == 0 {
		return ast.Section{}, nil, false
	}
	sub := subScript.Sections[0]
	delta := rowsOldStart - len(prefix)
	rebaseEventRows(sub.Events, delta)
	for i := range issues {
		issues[i].Span = rebaseSpan(issues[i].Span, delta)
	}

	newRows := make([]ast.Event, 0, rlo+len(sub.Events)+(len(rows)-rhi-1))
	newRows = append(newRows, rows[:rlo]...)
	newRows = append(newRows, sub.Events...)
	suffix := append([]ast.Event(nil), rows[rhi+1:]...)
	rebaseEventRows(suffix, shift)
	newRows = append(newRows, suffix...)

	newSec := sec
	newSec.Events = newRows
	newSec.Span.End += shift
	return newSec, issues, true
}

func reparseStyleRows(sec ast.Section, r Span, newSrc []byte, shift int, limits parser.Limits) (ast.Section, []assutil.ParseIssue, bool) {
	rows := sec.Styles
	spans := make([]assutil.Span, len(rows))
	for i, row := range rows {
		spans[i] = row.Span
	}
	rlo, rhi := affectedRowRange(spans, r)

	rowsOldStart := rows[rlo].Span.Start
	rowsOldEnd := rows[rhi].Span.End
	rowsNewEnd := rowsOldEnd + shift
	if rowsOldStart < 0 || rowsNewEnd > len(newSrc) || rowsOldStart > rowsNewEnd {
		return ast.Section{}, nil, false
	}

	prefix := syntheticPrefix(sec)
	synthetic := prefix + string(newSrc[rowsOldStart:rowsNewEnd])
	subScript, issues, err := parser.Parse([]byte(synthetic), limits)
	if err != nil || len(subScript.Sections) == 0 {
		return ast.Section{}, nil, false
	}
	sub := subScript.Sections[0]
	delta := rowsOldStart - len(prefix)
	rebaseStyleRows(sub.Styles, delta)
	for i := range issues {
		issues[i].Span = rebaseSpan(issues[i].Span, delta)
	}

	newRows := make([]ast.Style, 0, rlo+len(sub.Styles)+(len(rows)-rhi-1))
	newRows = append(newRows, rows[:rlo]...)
	newRows = append(newRows, sub.Styles...)
	suffix := append([]ast.Style(nil), rows[rhi+1:]...)
	rebaseStyleRows(suffix, shift)
	newRows = append(newRows, suffix...)

	newSec := sec
	newSec.Styles = newRows
	newSec.Span.End += shift
	return newSec, issues, true
}

func syntheticPrefix(sec ast.Section) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(sec.Name)
	b.WriteString("]\n")
	if len(sec.Format) > 0 {
		b.WriteString("Format: ")
		b.WriteString(strings.Join(sec.Format, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}

func assembleRowLevel(prev *ast.Script, lo int, newSec ast.Section, shift int, newSrc []byte) *ast.Script {
	sections := make([]ast.Section, 0, len(prev.Sections))
	sections = append(sections, prev.Sections[:lo]...)
	sections = append(sections, newSec)
	suffix := append([]ast.Section(nil), prev.Sections[lo+1:]...)
	for i := range suffix {
		rebaseSection(&suffix[i], shift)
	}
	sections = append(sections, suffix...)
	return &ast.Script{Sections: sections, Source: newSrc, Gen: prev.Gen + 1}
}

func rowLevelDelta(lo int, newSec ast.Section) ScriptDelta {
	return ScriptDelta{Modified: []ModifiedSection{{Index: lo, Section: newSec}}}
}

func reparseSections(prev *ast.Script, lo, hi int, newSrc []byte, shift int, limits parser.Limits) (*ast.Script, ScriptDelta, []assutil.ParseIssue, error) {
	oldStart := prev.Sections[lo].Span.Start
	oldEnd := prev.Sections[hi].Span.End
	newStart := oldStart
	newEnd := oldEnd + shift
	if newStart < 0 || newEnd > len(newSrc) || newStart > newEnd {
		return fullReparse(prev, newSrc, limits)
	}

	subScript, issues, err := parser.Parse(newSrc[newStart:newEnd], limits)
	if err != nil {
		return fullReparse(prev, newSrc, limits)
	}
	for i := range subScript.Sections {
		rebaseSection(&subScript.Sections[i], newStart)
	}
	for i := range issues {
		issues[i].Span = rebaseSpan(issues[i].Span, newStart)
	}

	sections := make([]ast.Section, 0, len(prev.Sections)-(hi-lo+1)+len(subScript.Sections))
	sections = append(sections, prev.Sections[:lo]...)
	sections = append(sections, subScript.Sections...)
	suffix := append([]ast.Section(nil), prev.Sections[hi+1:]...)
	for i := range suffix {
		rebaseSection(&suffix[i], shift)
	}
	sections = append(sections, suffix...)

	newScript := &ast.Script{Sections: sections, Source: newSrc, Gen: prev.Gen + 1}

	var delta ScriptDelta
	if hi-lo+1 == len(subScript.Sections) {
		for k, s := range subScript.Sections {
			delta.Modified = append(delta.Modified, ModifiedSection{Index: lo + k, Section: s})
		}
	} else {
		for idx := lo; idx <= hi; idx++ {
			delta.Removed = append(delta.Removed, idx)
		}
		delta.Added = subScript.Sections
	}
	return newScript, delta, issues, nil
}

func fullReparse(prev *ast.Script, newSrc []byte, limits parser.Limits) (*ast.Script, ScriptDelta, []assutil.ParseIssue, error) {
	script, issues, err := parser.Parse(newSrc, limits)
	if err != nil {
		return nil, ScriptDelta{}, nil, err
	}
	var delta ScriptDelta
	for i := range prev.Sections {
		delta.Removed = append(delta.Removed, i)
	}
	delta.Added = script.Sections
	script.Gen = prev.Gen + 1
	return script, delta, issues, nil
}
