// Package token defines the token kinds the tokenizer (C1) emits over an
// ASS source buffer.
package token

import "github.com/assforge/ass/assutil"

// Kind enumerates the lexical categories the tokenizer recognizes.
type Kind int

const (
	SectionHeader Kind = iota // text within "[ ... ]"
	KeyValue                  // key:value line inside ScriptInfo or Unknown
	FormatLine                // a "Format:" line
	DataLine                  // a "Name: fields..." line in a structured section
	BlankLine
	Comment    // ";" or "!:" prefixed line
	BinaryLine // a line inside Fonts/Graphics
	Eof
)

func (k Kind) String() string {
	switch k {
	case SectionHeader:
		return "SectionHeader"
	case KeyValue:
		return "KeyValue"
	case FormatLine:
		return "FormatLine"
	case DataLine:
		return "DataLine"
	case BlankLine:
		return "BlankLine"
	case Comment:
		return "Comment"
	case BinaryLine:
		return "BinaryLine"
	case Eof:
		return "Eof"
	default:
		return "Unknown"
	}
}

// Token is a typed span over the source buffer. Span never copies; it is a
// byte-offset window that the caller resolves against the original buffer.
type Token struct {
	Kind Kind
	Span assutil.Span

	// Name is set for SectionHeader ("Script Info", "V4+ Styles", ...).
	Name string
	// Key/Value are set for KeyValue tokens; the split point is the first
	// ':' on the line per the key/value delimiter policy.
	Key, Value string
}
