package parser

import (
	"strings"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/token"
)

func (p *parser) handleStyleLine(tok token.Token) {
	format := p.formatFor()
	fields := splitFields(tok.Value, len(format))
	st := ast.Style{Span: tok.Span}
	st.ScaleX, st.ScaleY = 100, 100
	st.BorderStyle = ast.BorderOutline
	st.Alignment = 2

	get := func(name string) (string, bool) {
		idx := fieldIndex(format, name)
		if idx < 0 || idx >= len(fields) {
			return "", false
		}
		return strings.TrimSpace(fields[idx]), true
	}

	if v, ok := get("Name"); ok {
		st.Name = v
	}
	if v, ok := get("Fontname"); ok {
		st.Fontname = v
	}
	st.Fontsize = p.floatField(get, "Fontsize", tok.Span)
	st.Primary = p.colorField(get, "PrimaryColour", tok.Span)
	st.Secondary = p.colorField(get, "SecondaryColour", tok.Span)
	st.Outline = p.colorField(get, "OutlineColour", tok.Span)
	st.Shadow = p.colorField(get, "BackColour", tok.Span)
	st.Bold = p.boolField(get, "Bold", tok.Span)
	st.Italic = p.boolField(get, "Italic", tok.Span)
	st.Underline = p.boolField(get, "Underline", tok.Span)
	st.StrikeOut = p.boolField(get, "StrikeOut", tok.Span)
	if v, ok := get("ScaleX"); ok {
		st.ScaleX = p.floatOrIssue(v, tok.Span)
	}
	if v, ok := get("ScaleY"); ok {
		st.ScaleY = p.floatOrIssue(v, tok.Span)
	}
	st.Spacing = p.floatField(get, "Spacing", tok.Span)
	st.Angle = p.floatField(get, "Angle", tok.Span)
	if v, ok := get("BorderStyle"); ok {
		if n, ok := assutil.ParseInt(v); ok && n == int(ast.BorderBox) {
			st.BorderStyle = ast.BorderBox
		}
	}
	st.OutlineWidth = p.floatField(get, "Outline", tok.Span)
	st.ShadowDepth = p.floatField(get, "Shadow", tok.Span)
	if v, ok := get("Alignment"); ok {
		if n, ok := assutil.ParseInt(v); ok {
			st.Alignment = ast.Alignment(n)
		}
	}
	st.MarginL = p.intField(get, "MarginL", tok.Span)
	st.MarginR = p.intField(get, "MarginR", tok.Span)
	st.MarginV = p.intField(get, "MarginV", tok.Span)
	st.Encoding = p.intField(get, "Encoding", tok.Span)

	p.appendStyle(st, tok.Span)
}

func (p *parser) appendStyle(st ast.Style, span assutil.Span) {
	for i := range p.cur.Styles {
		if strings.EqualFold(p.cur.Styles[i].Name, st.Name) {
			p.issue(assutil.ParseIssue{
				Severity: assutil.Warning,
				Category: assutil.CategoryDuplicateStyle,
				Message:  "duplicate style name \"" + st.Name + "\"; last definition wins",
				Span:     span,
				Remedy:   "rename one of the duplicate styles",
			})
			p.cur.Styles[i] = st
			return
		}
	}
	p.cur.Styles = append(p.cur.Styles, st)
}

type fieldGetter func(name string) (string, bool)

func (p *parser) floatField(get fieldGetter, name string, span assutil.Span) float64 {
	v, ok := get(name)
	if !ok {
		return 0
	}
	return p.floatOrIssue(v, span)
}

func (p *parser) floatOrIssue(v string, span assutil.Span) float64 {
	f, ok := assutil.ParseFloat(v)
	if !ok {
		p.issue(assutil.ParseIssue{
			Severity: assutil.Warning,
			Category: assutil.CategoryNumeric,
			Message:  "invalid numeric value \"" + v + "\"",
			Span:     span,
			Remedy:   "use a plain decimal number",
		})
		return 0
	}
	return f
}

func (p *parser) intField(get fieldGetter, name string, span assutil.Span) int {
	v, ok := get(name)
	if !ok {
		return 0
	}
	n, ok := assutil.ParseInt(v)
	if !ok {
		p.issue(assutil.ParseIssue{
			Severity: assutil.Warning,
			Category: assutil.CategoryNumeric,
			Message:  "invalid integer value \"" + v + "\"",
			Span:     span,
		})
		return 0
	}
	return n
}

func (p *parser) boolField(get fieldGetter, name string, span assutil.Span) bool {
	v, ok := get(name)
	if !ok {
		return false
	}
	b, ok := assutil.ParseBool(v)
	if !ok {
		p.issue(assutil.ParseIssue{
			Severity: assutil.Info,
			Category: assutil.CategoryFieldFormat,
			Message:  "invalid boolean value \"" + v + "\"",
			Span:     span,
		})
		return false
	}
	return b
}

func (p *parser) colorField(get fieldGetter, name string, span assutil.Span) assutil.Color {
	v, ok := get(name)
	if !ok {
		return assutil.Color{A: 255}
	}
	c, ok := assutil.ParseColor(v)
	if !ok {
		p.issue(assutil.ParseIssue{
			Severity: assutil.Warning,
			Category: assutil.CategoryColor,
			Message:  "invalid color value \"" + v + "\"",
			Span:     span,
			Remedy:   "use `&HBBGGRR&` or `&HAABBGGRR&`",
		})
	}
	return c
}
