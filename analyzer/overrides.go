// Package analyzer scans a parsed event's text for override-tag blocks,
// scores it for rendering cost, and sweeps a section's events for timing
// overlaps.
package analyzer

import (
	"strings"

	"github.com/assforge/ass/assutil"
)

// maxBraceNesting bounds how deeply '{' can nest inside an override block
// before the scanner gives up counting and clamps, guarding against
// pathological input built from a long run of unmatched braces.
const maxBraceNesting = 100

// EventText is the result of scanning one event's raw text field: the
// override tags it contains, its plain (shaped) text with \N/\n/\h already
// resolved, and any drawing-mode command runs dropped out of the shaped
// text per a `\p` tag with a nonzero scale level.
type EventText struct {
	Tags    []OverrideTag
	Plain   string
	Drawing []string
	Issues  []assutil.ParseIssue
}

// ScanOverrides walks raw event text byte by byte, tracking brace depth
// like a small state machine: depth 0 is plain text, depth > 0 is inside an
// override block. \N, \n and \h are resolved at depth 0 since they are
// plain-text escapes, not override tags.
func ScanOverrides(text string) EventText {
	var out EventText
	var plain strings.Builder
	var drawing strings.Builder
	drawLevel := 0
	depth := 0
	blockStart := 0

	flushDrawing := func() {
		if drawing.Len() > 0 {
			out.Drawing = append(out.Drawing, drawing.String())
			drawing.Reset()
		}
	}
	appendByte := func(b byte) {
		if drawLevel > 0 {
			drawing.WriteByte(b)
		} else {
			plain.WriteByte(b)
		}
	}

	n := len(text)
	for i := 0; i < n; {
		c := text[i]
		switch {
		case depth == 0 && c == '{':
			depth = 1
			blockStart = i + 1
			i++
		case depth == 0 && c == '}':
			out.Issues = append(out.Issues, assutil.ParseIssue{
				Severity: assutil.Warning,
				Category: assutil.CategoryUnmatchedBrace,
				Message:  "unmatched '}' outside an override block",
				Span:     assutil.Span{Start: i, End: i + 1},
			})
			i++
		case depth == 0 && c == '\\' && i+1 < n && isPlainEscape(text[i+1]):
			switch text[i+1] {
			case 'N', 'n':
				appendByte('\n')
			case 'h':
				plain.WriteString(" ")
			}
			i += 2
		case depth == 0:
			appendByte(c)
			i++
		case c == '{':
			depth++
			if depth > maxBraceNesting {
				out.Issues = append(out.Issues, assutil.ParseIssue{
					Severity: assutil.Error,
					Category: assutil.CategoryMaxNesting,
					Message:  "override block nesting exceeds the 100-brace guard",
					Span:     assutil.Span{Start: blockStart - 1, End: i + 1},
				})
				depth = maxBraceNesting
			}
			i++
		case c == '}':
			depth--
			if depth == 0 {
				block := text[blockStart:i]
				tags, issues := parseBlockTags(block, blockStart)
				if len(tags) == 0 && strings.TrimSpace(block) == "" {
					out.Issues = append(out.Issues, assutil.ParseIssue{
						Severity: assutil.Info,
						Category: assutil.CategoryEmptyOverride,
						Message:  "empty override block",
						Span:     assutil.Span{Start: blockStart - 1, End: i + 1},
					})
				}
				for _, tg := range tags {
					if tg.Name == "p" {
						lvl, ok := assutil.ParseInt(tg.Args)
						if !ok || lvl < 0 {
							lvl = 0
						}
						if drawLevel > 0 && lvl == 0 {
							flushDrawing()
						}
						drawLevel = lvl
					}
				}
				out.Tags = append(out.Tags, tags...)
				out.Issues = append(out.Issues, issues...)
			}
			i++
		default:
			i++
		}
	}
	if depth > 0 {
		block := text[blockStart:]
		tags, issues := parseBlockTags(block, blockStart)
		out.Tags = append(out.Tags, tags...)
		out.Issues = append(out.Issues, issues...)
		out.Issues = append(out.Issues, assutil.ParseIssue{
			Severity: assutil.Warning,
			Category: assutil.CategoryUnmatchedBrace,
			Message:  "unterminated override block runs to end of text",
			Span:     assutil.Span{Start: blockStart - 1, End: n},
		})
	}
	flushDrawing()
	out.Plain = plain.String()
	return out
}

func isPlainEscape(b byte) bool {
	return b == 'N' || b == 'n' || b == 'h'
}

// parseBlockTags splits the content of one `{...}` block into its
// constituent `\tag` directives. A parenthesized argument list may itself
// contain backslash-tags (as in `\t(0,500,\fs20)`); those stay nested inside
// the outer tag's Args rather than being split out, since a tag's own
// paren-depth tracking keeps the top-level split from breaking inside it.
func parseBlockTags(block string, base int) ([]OverrideTag, []assutil.ParseIssue) {
	var tags []OverrideTag
	var issues []assutil.ParseIssue

	i := 0
	n := len(block)
	for i < n && block[i] != '\\' {
		i++ // leading comment text before the first tag, if any
	}
	for i < n {
		start := i
		i++ // consume '\'
		nameStart := i
		end := scanTagBody(block, i)
		body := block[nameStart:end]
		name, args, ok := splitTagBody(body)
		if !ok {
			issues = append(issues, assutil.ParseIssue{
				Severity: assutil.Warning,
				Category: assutil.CategoryUnknownTag,
				Message:  "unrecognized override tag \\" + body,
				Span:     assutil.Span{Start: base + start, End: base + end},
			})
		}
		tags = append(tags, OverrideTag{Name: name, Args: args, Offset: base + start})
		i = end
	}
	return tags, issues
}

// scanTagBody finds where one tag's body ends: the next backslash at paren
// depth 0, or the end of the block.
func scanTagBody(block string, start int) int {
	depth := 0
	i := start
	for i < len(block) {
		switch block[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '\\':
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return i
}
