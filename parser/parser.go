// Package parser implements the parser (C2): tokens from the lexer become
// a borrowed ast.Script, with malformed input degrading to a recorded
// ParseIssue wherever the error model allows it.
package parser

import (
	"strings"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/lexer"
	"github.com/assforge/ass/token"
)

// Limits bounds a parse.
type Limits struct {
	MaxInputBytes int
}

// DefaultLimits returns the default 64 MiB input ceiling.
func DefaultLimits() Limits {
	return Limits{MaxInputBytes: 64 * 1024 * 1024}
}

// Parse parses an ASS source buffer into a Script plus any recoverable
// issues. Only UTF-8 decoding failure and input-too-large abort the parse
// outright; everything else degrades to a best-effort
// value plus an Issue.
func Parse(src []byte, limits Limits) (*ast.Script, []assutil.ParseIssue, error) {
	if limits.MaxInputBytes <= 0 {
		limits = DefaultLimits()
	}
	if len(src) > limits.MaxInputBytes {
		return nil, nil, &assutil.ParseError{
			Kind:   assutil.ErrInputTooLarge,
			Detail: "input exceeds configured size ceiling",
		}
	}
	if !lexer.ValidUTF8(src) {
		return nil, nil, &assutil.ParseError{
			Kind:   assutil.ErrInvalidUTF8,
			Detail: "source buffer is not valid UTF-8",
		}
	}

	p := &parser{src: src, lex: lexer.New(src)}
	p.run()

	return &ast.Script{Sections: p.sections, Source: src, Gen: 0}, p.issues, nil
}

type parser struct {
	src []byte
	lex *lexer.Lexer

	issues   []assutil.ParseIssue
	sections []ast.Section

	cur        *ast.Section
	curFormat  []string
	pendingBin *ast.BinaryEntry
}

func (p *parser) issue(i assutil.ParseIssue) { p.issues = append(p.issues, i) }

func (p *parser) ctx() lexer.SectionContext {
	if p.cur == nil {
		return lexer.CtxUnknown
	}
	switch p.cur.Kind {
	case ast.SectionScriptInfo:
		return lexer.CtxScriptInfo
	case ast.SectionStyles:
		return lexer.CtxStyles
	case ast.SectionEvents:
		return lexer.CtxEvents
	case ast.SectionFonts, ast.SectionGraphics:
		return lexer.CtxFontsGraphics
	default:
		return lexer.CtxUnknown
	}
}

func (p *parser) run() {
	for {
		tok, issue := p.lex.Next(p.ctx())
		if issue != nil {
			p.issue(*issue)
		}
		switch tok.Kind {
		case token.Eof:
			p.closeSection(tok.Span.Start)
			return
		case token.SectionHeader:
			p.closeSection(tok.Span.Start)
			p.openSection(tok)
		case token.BlankLine, token.Comment:
			// stay in current section, no state change
		case token.FormatLine:
			p.handleFormatLine(tok)
		case token.KeyValue:
			p.handleKeyValue(tok)
		case token.DataLine:
			p.handleDataLine(tok)
		case token.BinaryLine:
			p.handleBinaryLine(tok)
		}
	}
}

func (p *parser) openSection(tok token.Token) {
	kind := classifySectionName(tok.Name)
	sec := ast.Section{Kind: kind, Name: tok.Name, Span: assutil.Span{Start: tok.Span.Start}}
	p.cur = &sec
	p.curFormat = nil
	p.pendingBin = nil
}

func (p *parser) closeSection(end int) {
	if p.cur == nil {
		return
	}
	p.flushBinary()
	p.cur.Span.End = end
	p.sections = append(p.sections, *p.cur)
	p.cur = nil
}

func classifySectionName(name string) ast.SectionKind {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "script info" || n == "scriptinfo":
		return ast.SectionScriptInfo
	case strings.Contains(n, "styles"):
		return ast.SectionStyles
	case n == "events":
		return ast.SectionEvents
	case n == "fonts":
		return ast.SectionFonts
	case n == "graphics":
		return ast.SectionGraphics
	default:
		return ast.SectionUnknown
	}
}

func (p *parser) handleFormatLine(tok token.Token) {
	if p.cur == nil {
		return
	}
	fields := strings.Split(tok.Value, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	p.curFormat = fields
}

func (p *parser) formatFor() []string {
	if len(p.curFormat) > 0 {
		return p.curFormat
	}
	if p.cur == nil {
		return nil
	}
	switch p.cur.Kind {
	case ast.SectionStyles:
		return ast.DefaultStyleFormat
	case ast.SectionEvents:
		return ast.DefaultEventFormat
	default:
		return nil
	}
}

func (p *parser) handleKeyValue(tok token.Token) {
	if p.cur == nil {
		return
	}
	for i := range p.cur.ScriptInfo {
		if strings.EqualFold(p.cur.ScriptInfo[i].Key, tok.Key) {
			p.issue(assutil.ParseIssue{
				Severity: assutil.Warning,
				Category: assutil.CategoryFieldFormat,
				Message:  "duplicate key \"" + tok.Key + "\"; last value wins",
				Span:     tok.Span,
			})
			p.cur.ScriptInfo[i].Value = tok.Value
			return
		}
	}
	p.cur.ScriptInfo = append(p.cur.ScriptInfo, ast.KV{Key: tok.Key, Value: tok.Value})
}

func (p *parser) handleDataLine(tok token.Token) {
	if p.cur == nil {
		return
	}
	switch p.cur.Kind {
	case ast.SectionStyles:
		p.handleStyleLine(tok)
	case ast.SectionEvents:
		p.handleEventLine(tok)
	default:
		// Data-shaped line in an unrecognized section: keep it visible as
		// an Unknown key/value so nothing silently disappears.
		p.cur.ScriptInfo = append(p.cur.ScriptInfo, ast.KV{Key: tok.Key, Value: tok.Value})
	}
}

func (p *parser) handleBinaryLine(tok token.Token) {
	if p.cur == nil {
		return
	}
	raw := strings.TrimSpace(string(p.src[tok.Span.Start:tok.Span.End]))
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "fontname:") || strings.HasPrefix(lower, "filename:") {
		p.flushBinary()
		idx := strings.IndexByte(raw, ':')
		name := strings.TrimSpace(raw[idx+1:])
		p.pendingBin = &ast.BinaryEntry{Filename: name, Span: tok.Span}
		return
	}
	if p.pendingBin == nil {
		p.issue(assutil.ParseIssue{
			Severity: assutil.Warning,
			Category: assutil.CategoryUUDecode,
			Message:  "binary line before any fontname:/filename: header",
			Span:     tok.Span,
		})
		return
	}
	p.pendingBin.Lines = append(p.pendingBin.Lines, raw)
	p.pendingBin.Span.End = tok.Span.End
}

func (p *parser) flushBinary() {
	if p.pendingBin == nil || p.cur == nil {
		return
	}
	p.cur.Binaries = append(p.cur.Binaries, *p.pendingBin)
	p.pendingBin = nil
}
