package analyzer

import (
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
)

// Validate runs a set of lint-style rule checks over a parsed script beyond
// what the parser itself records: style references that resolve to nothing,
// events with an inverted or zero-length timespan, and dialogue that reads
// faster than a comfortable pace (slow pacing is not flagged). Every check produces a recoverable issue, never
// a hard error — validation never blocks a document from opening.
func Validate(script *ast.Script) []assutil.ParseIssue {
	var issues []assutil.ParseIssue
	for _, sec := range script.Sections {
		if sec.Kind != ast.SectionEvents {
			continue
		}
		for _, ev := range sec.Events {
			issues = append(issues, validateEvent(script, ev)...)
		}
	}
	return issues
}

func validateEvent(script *ast.Script, ev ast.Event) []assutil.ParseIssue {
	var issues []assutil.ParseIssue

	if ev.Style != "" {
		if _, ok := script.FindStyle(ev.Style); !ok {
			issues = append(issues, assutil.ParseIssue{
				Severity: assutil.Warning,
				Category: assutil.CategoryMissingReference,
				Message:  "event references undefined style " + quote(ev.Style),
				Span:     ev.Span,
				Remedy:   "define a matching [V4+ Styles] row or switch to the Default style",
			})
		}
	}

	start, startOK := ev.Start(script)
	end, endOK := ev.End(script)
	if startOK && endOK {
		if end < start {
			issues = append(issues, assutil.ParseIssue{
				Severity: assutil.Error,
				Category: assutil.CategoryTiming,
				Message:  "event end time precedes its start time",
				Span:     ev.Span,
				Remedy:   "swap Start and End or correct the typo",
			})
		} else if end == start {
			issues = append(issues, assutil.ParseIssue{
				Severity: assutil.Info,
				Category: assutil.CategoryTiming,
				Message:  "event has zero duration and will never be visible",
				Span:     ev.Span,
			})
		} else if ev.Kind == ast.Dialogue {
			scanned := ScanOverrides(ev.Text(script))
			speed := MeasureReadingSpeed(scanned.Plain, end-start)
			if speed.TooFast {
				issues = append(issues, assutil.ParseIssue{
					Severity: assutil.Info,
					Category: assutil.CategoryReadability,
					Message:  "dialogue reads faster than a comfortable pace",
					Span:     ev.TextSpan,
					Remedy:   "extend the duration or shorten the line",
				})
			}
		}
	}

	return issues
}

func quote(s string) string { return "\"" + s + "\"" }
