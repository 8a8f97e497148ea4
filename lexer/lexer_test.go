package lexer

import (
	"testing"

	"github.com/assforge/ass/token"
)

func TestNextClassifiesLineKinds(t *testing.T) {
	src := []byte("[Script Info]\n; a comment\nTitle: Example\n\nFormat: Layer, Start, End\nDialogue: 0,0:00:00.00,0:00:05.00\n")
	l := New(src)

	want := []struct {
		kind token.Kind
		name string
	}{
		{token.SectionHeader, "Script Info"},
		{token.Comment, ""},
		{token.KeyValue, ""},
		{token.BlankLine, ""},
		{token.FormatLine, ""},
		{token.DataLine, ""},
		{token.Eof, ""},
	}

	ctx := CtxScriptInfo
	for i, w := range want {
		tok, issue := l.Next(ctx)
		if tok.Kind != w.kind {
			t.Fatalf("token %d: kind = %v, want %v (issue=%v)", i, tok.Kind, w.kind, issue)
		}
		if w.name != "" && tok.Name != w.name {
			t.Errorf("token %d: name = %q, want %q", i, tok.Name, w.name)
		}
		if tok.Kind == token.FormatLine {
			ctx = CtxEvents
		}
	}
}

func TestNextKeyValueSplitsOnFirstColon(t *testing.T) {
	src := []byte("Title: My Movie: Part Two\n")
	l := New(src)
	tok, issue := l.Next(CtxScriptInfo)
	if issue != nil {
		t.Fatalf("unexpected issue: %v", issue)
	}
	if tok.Key != "Title" {
		t.Errorf("Key = %q, want %q", tok.Key, "Title")
	}
	if tok.Value != "My Movie: Part Two" {
		t.Errorf("Value = %q, want %q", tok.Value, "My Movie: Part Two")
	}
}

func TestNextUnclosedSectionHeaderRecovers(t *testing.T) {
	src := []byte("[Script Info\nTitle: x\n")
	l := New(src)
	tok, issue := l.Next(CtxScriptInfo)
	if tok.Kind != token.SectionHeader {
		t.Fatalf("kind = %v, want SectionHeader", tok.Kind)
	}
	if issue == nil {
		t.Fatal("expected a recoverable issue for unclosed header")
	}
}

func TestNextHandlesCRLFAndCR(t *testing.T) {
	for _, src := range [][]byte{
		[]byte("Title: a\r\nTitle: b\r\n"),
		[]byte("Title: a\rTitle: b\r"),
		[]byte("Title: a\nTitle: b\n"),
	} {
		l := New(src)
		tok1, _ := l.Next(CtxScriptInfo)
		tok2, _ := l.Next(CtxScriptInfo)
		if tok1.Value != "a" || tok2.Value != "b" {
			t.Errorf("src %q: got values %q, %q", src, tok1.Value, tok2.Value)
		}
	}
}

func TestBinaryLineContext(t *testing.T) {
	src := []byte("fontname: arial.ttf\nABCDEFG\n")
	l := New(src)
	tok, _ := l.Next(CtxFontsGraphics)
	if tok.Kind != token.BinaryLine {
		t.Fatalf("kind = %v, want BinaryLine", tok.Kind)
	}
}
