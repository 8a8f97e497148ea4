package parser

import (
	"strings"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/token"
)

func (p *parser) handleEventLine(tok token.Token) {
	kind, ok := ast.ParseEventKind(tok.Key)
	if !ok {
		p.issue(assutil.ParseIssue{
			Severity: assutil.Warning,
			Category: assutil.CategoryFieldFormat,
			Message:  "unrecognized event type \"" + tok.Key + "\"; treated as Dialogue",
			Span:     tok.Span,
		})
	}

	format := p.formatFor()
	fields := splitFields(tok.Value, len(format))
	ev := ast.Event{Kind: kind, Span: tok.Span}

	get := func(name string) (string, int, bool) {
		idx := fieldIndex(format, name)
		if idx < 0 || idx >= len(fields) {
			return "", 0, false
		}
		return strings.TrimSpace(fields[idx]), idx, true
	}

	if v, _, ok := get("Layer"); ok {
		if n, ok := assutil.ParseInt(v); ok {
			ev.Layer = n
		} else if v != "" {
			p.issue(assutil.ParseIssue{
				Severity: assutil.Info,
				Category: assutil.CategoryNumeric,
				Message:  "invalid layer value \"" + v + "\"",
				Span:     tok.Span,
			})
		}
	}

	ev.StartSpan = p.spanOfField(tok, format, fields, "Start")
	ev.EndSpan = p.spanOfField(tok, format, fields, "End")

	if v, _, ok := get("Style"); ok {
		ev.Style = v
	}
	if v, _, ok := get("Name"); ok {
		ev.Name = v
	}
	if v, _, ok := get("Effect"); ok {
		ev.Effect = v
	}
	ev.MarginL = p.intFieldSimple(get, "MarginL", tok.Span)
	ev.MarginR = p.intFieldSimple(get, "MarginR", tok.Span)
	ev.MarginV = p.intFieldSimple(get, "MarginV", tok.Span)

	ev.TextSpan = p.spanOfField(tok, format, fields, "Text")

	p.cur.Events = append(p.cur.Events, ev)
}

func (p *parser) intFieldSimple(get func(string) (string, int, bool), name string, span assutil.Span) int {
	v, _, ok := get(name)
	if !ok || v == "" {
		return 0
	}
	n, ok := assutil.ParseInt(v)
	if !ok {
		p.issue(assutil.ParseIssue{
			Severity: assutil.Info,
			Category: assutil.CategoryNumeric,
			Message:  "invalid integer value \"" + v + "\"",
			Span:     span,
		})
		return 0
	}
	return n
}

// spanOfField computes the byte span of a named field within the original
// source line, so Start/End/Text can stay zero-copy spans rather than
// fresh strings. It walks the same comma-splitting rule splitFields uses,
// but over byte offsets into tok.Value rather than producing substrings.
func (p *parser) spanOfField(tok token.Token, format []string, fields []string, name string) assutil.Span {
	idx := fieldIndex(format, name)
	if idx < 0 || idx >= len(fields) {
		return assutil.Span{}
	}
	// tok.Span covers the whole line; tok.Value is a suffix of that line
	// (after "Key: "). Re-derive the value's start offset within the line.
	valueStart := tok.Span.End - len(tok.Value)

	offset := valueStart
	rest := tok.Value
	for i := 0; i < idx; i++ {
		commaAt := indexByte(rest, ',')
		if commaAt < 0 {
			return assutil.Span{Start: offset, End: offset}
		}
		offset += commaAt + 1
		rest = rest[commaAt+1:]
	}
	fieldLen := len(fields[idx])
	return assutil.Span{Start: offset, End: offset + fieldLen}
}
