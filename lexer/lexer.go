// Package lexer implements the tokenizer (C1): a byte-stream scanner that
// yields typed span tokens lazily, one source line at a time, without
// copying out of the source buffer.
//
// The scanner is a straightforward byte state machine in the style of an
// ANSI escape-sequence reader: it advances through the buffer looking for
// line terminators and a small set of structural markers ('[', ']', ':',
// ';'), and hands back a Token plus an optional recoverable issue. Section
// context (is the parser currently inside Fonts/Graphics, Styles, Events)
// is threaded in by the caller for each call, since only the parser (C2)
// tracks that state machine — the tokenizer itself holds no section model.
package lexer

import (
	"unicode/utf8"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/token"
)

// SectionContext tells the lexer how to classify a DataLine-shaped row.
type SectionContext int

const (
	CtxScriptInfo SectionContext = iota
	CtxStyles
	CtxEvents
	CtxFontsGraphics
	CtxUnknown
)

// Lexer scans a source buffer line by line. It never reallocates or copies
// the buffer; every Token's Span is a view into it.
type Lexer struct {
	src []byte
	pos int
}

// New returns a Lexer over src. src must outlive every Token the Lexer
// produces.
func New(src []byte) *Lexer {
	return &Lexer{src: src}
}

// Pos reports the current scan offset, for callers that need to resume a
// partial scan (the incremental reparser re-lexes only a sub-range).
func (l *Lexer) Pos() int { return l.pos }

// Done reports whether the scanner has consumed the whole buffer.
func (l *Lexer) Done() bool { return l.pos >= len(l.src) }

// Next scans the next line and classifies it according to ctx. It returns
// an Eof token once the buffer is exhausted. The returned issue, if
// non-nil, is always recoverable — Next never fails outright; whole-buffer
// failures (invalid UTF-8, oversized input) are checked once up front by
// the parser before lexing begins.
func (l *Lexer) Next(ctx SectionContext) (token.Token, *assutil.ParseIssue) {
	if l.Done() {
		return token.Token{Kind: token.Eof, Span: assutil.Span{Start: l.pos, End: l.pos}}, nil
	}

	lineStart := l.pos
	contentEnd, lineEnd := l.scanLine()
	l.pos = lineEnd

	raw := l.src[lineStart:contentEnd]
	return classify(raw, lineStart, ctx)
}

// scanLine advances past one line (LF, CRLF, or bare CR terminated, or the
// final unterminated line) and returns the content end (excluding the
// terminator) and the position just past the terminator.
func (l *Lexer) scanLine() (contentEnd, lineEnd int) {
	i := l.pos
	n := len(l.src)
	for i < n && l.src[i] != '\n' && l.src[i] != '\r' {
		i++
	}
	contentEnd = i
	if i >= n {
		return contentEnd, i
	}
	if l.src[i] == '\r' {
		i++
		if i < n && l.src[i] == '\n' {
			i++
		}
		return contentEnd, i
	}
	// '\n'
	return contentEnd, i + 1
}

func classify(raw []byte, lineStart int, ctx SectionContext) (token.Token, *assutil.ParseIssue) {
	trimmed, leadSpace := trimLeadingASCIISpace(raw)
	span := assutil.Span{Start: lineStart, End: lineStart + len(raw)}

	if len(trimmed) == 0 {
		return token.Token{Kind: token.BlankLine, Span: span}, nil
	}

	if trimmed[0] == ';' || (len(trimmed) >= 2 && trimmed[0] == '!' && trimmed[1] == ':') {
		return token.Token{Kind: token.Comment, Span: span}, nil
	}

	if trimmed[0] == '[' {
		return classifySectionHeader(raw, trimmed, leadSpace, span)
	}

	if ctx == CtxFontsGraphics {
		return token.Token{Kind: token.BinaryLine, Span: span}, nil
	}

	if isFormatLine(trimmed) {
		key, value, _ := splitFirstColon(trimmed)
		return token.Token{Kind: token.FormatLine, Span: span, Key: key, Value: value}, nil
	}

	switch ctx {
	case CtxStyles, CtxEvents:
		key, value, ok := splitFirstColon(trimmed)
		if !ok {
			return token.Token{Kind: token.DataLine, Span: span}, &assutil.ParseIssue{
				Severity: assutil.Warning,
				Category: assutil.CategoryFieldFormat,
				Message:  "data line missing ':' separator",
				Span:     span,
				Remedy:   "use \"Name: field, field, ...\"",
			}
		}
		return token.Token{Kind: token.DataLine, Span: span, Key: key, Value: value}, nil
	default:
		key, value, _ := splitFirstColon(trimmed)
		return token.Token{Kind: token.KeyValue, Span: span, Key: key, Value: value}, nil
	}
}

func classifySectionHeader(raw, trimmed []byte, leadSpace int, span assutil.Span) (token.Token, *assutil.ParseIssue) {
	closeIdx := indexByte(trimmed, ']')
	if closeIdx < 0 {
		// Best-effort: treat everything after '[' as the name.
		name := string(trimmed[1:])
		return token.Token{Kind: token.SectionHeader, Span: span, Name: name}, &assutil.ParseIssue{
			Severity: assutil.Error,
			Category: assutil.CategoryFieldFormat,
			Message:  "unclosed section header: missing ']'",
			Span:     span,
			Remedy:   "close the header with ']' before end of line",
		}
	}
	name := string(trimmed[1:closeIdx])
	return token.Token{Kind: token.SectionHeader, Span: span, Name: name}, nil
}

func isFormatLine(trimmed []byte) bool {
	const prefix = "format:"
	if len(trimmed) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		c := trimmed[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return false
		}
	}
	return true
}

// splitFirstColon splits trimmed at the first ':' into a trimmed key and a
// value that preserves interior whitespace, per the key/value delimiter
// policy: only the first ':' separates key from value.
func splitFirstColon(trimmed []byte) (key, value string, ok bool) {
	idx := indexByte(trimmed, ':')
	if idx < 0 {
		return string(trimmed), "", false
	}
	k, _ := trimLeadingASCIISpace(trimmed[:idx])
	k = trimTrailingASCIISpace(k)
	v := trimmed[idx+1:]
	// Leading space right after ':' is conventional formatting, not content;
	// trim exactly one leading space if present, preserve the rest verbatim.
	if len(v) > 0 && v[0] == ' ' {
		v = v[1:]
	}
	return string(k), string(v), true
}

func trimLeadingASCIISpace(b []byte) (rest []byte, n int) {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	return b[i:], i
}

func trimTrailingASCIISpace(b []byte) []byte {
	i := len(b)
	for i > 0 && (b[i-1] == ' ' || b[i-1] == '\t') {
		i--
	}
	return b[:i]
}

func indexByte(b []byte, c byte) int {
	for i := 0; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// ValidUTF8 checks the whole buffer decodes as UTF-8, the one whole-buffer
// condition the tokenizer itself is responsible for surfacing (everything
// else degrades to a ParseIssue further up in the parser).
func ValidUTF8(src []byte) bool {
	return utf8.Valid(src)
}
