package ast

import (
	"testing"

	"github.com/assforge/ass/assutil"
)

func TestSectionKindStringNamesEachKind(t *testing.T) {
	cases := map[SectionKind]string{
		SectionScriptInfo: "Script Info",
		SectionStyles:     "Styles",
		SectionEvents:     "Events",
		SectionFonts:      "Fonts",
		SectionGraphics:   "Graphics",
		SectionUnknown:    "Unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", int(kind), got, want)
		}
	}
}

func newScript(source string) *Script {
	return &Script{Source: []byte(source)}
}

func TestScriptTextResolvesSpanAgainstSource(t *testing.T) {
	s := newScript("Hello world")
	got := s.Text(assutil.Span{Start: 6, End: 11})
	if got != "world" {
		t.Errorf("Text = %q, want %q", got, "world")
	}
}

func TestFindStyleIsCaseInsensitiveAndLastWins(t *testing.T) {
	s := newScript("")
	s.Sections = []Section{
		{
			Kind: SectionStyles,
			Styles: []Style{
				{Name: "Default", Fontsize: 20},
				{Name: "DEFAULT", Fontsize: 30},
			},
		},
	}
	st, ok := s.FindStyle("default")
	if !ok {
		t.Fatal("expected a case-insensitive match")
	}
	if st.Fontsize != 30 {
		t.Errorf("Fontsize = %v, want 30 (last duplicate wins)", st.Fontsize)
	}

	if _, ok := s.FindStyle("Nonexistent"); ok {
		t.Error("expected no match for an unknown style name")
	}
}

func TestScriptInfoValueIsCaseInsensitive(t *testing.T) {
	s := newScript("")
	s.Sections = []Section{
		{Kind: SectionScriptInfo, ScriptInfo: []KV{{Key: "PlayResX", Value: "1920"}}},
	}
	v, ok := s.ScriptInfoValue("playresx")
	if !ok || v != "1920" {
		t.Errorf("ScriptInfoValue(playresx) = %q,%v, want 1920,true", v, ok)
	}
	if _, ok := s.ScriptInfoValue("Missing"); ok {
		t.Error("expected no match for an absent key")
	}
}

func TestEventKindStringAndParseEventKindRoundTrip(t *testing.T) {
	kinds := []EventKind{Dialogue, Comment, Picture, Sound, Movie, Command}
	for _, k := range kinds {
		got, ok := ParseEventKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseEventKind(%q) = %v,%v, want %v,true", k.String(), got, ok, k)
		}
	}

	if got, ok := ParseEventKind("Bogus"); ok || got != Dialogue {
		t.Errorf("ParseEventKind(Bogus) = %v,%v, want Dialogue,false", got, ok)
	}
}

func TestEventStartEndAndTextResolveSpans(t *testing.T) {
	s := newScript("0:00:01.00|0:00:05.00|Hello world")
	ev := Event{
		StartSpan: assutil.Span{Start: 0, End: 10},
		EndSpan:   assutil.Span{Start: 11, End: 21},
		TextSpan:  assutil.Span{Start: 22, End: 33},
	}
	start, ok := ev.Start(s)
	if !ok || start != 100 {
		t.Errorf("Start = %v,%v, want 100,true", start, ok)
	}
	end, ok := ev.End(s)
	if !ok || end != 500 {
		t.Errorf("End = %v,%v, want 500,true", end, ok)
	}
	if text := ev.Text(s); text != "Hello world" {
		t.Errorf("Text = %q, want %q", text, "Hello world")
	}
}

func TestDefaultStyleNameMatchesConstant(t *testing.T) {
	if DefaultStyle().Name != DefaultStyleName {
		t.Errorf("DefaultStyle().Name = %q, want %q", DefaultStyle().Name, DefaultStyleName)
	}
}

func TestScriptInfoTypedAccessorsFallBackToDefaults(t *testing.T) {
	s := newScript("")
	s.Sections = []Section{{Kind: SectionScriptInfo}}
	info := s.Info()
	if info.PlayResX() != 384 {
		t.Errorf("PlayResX() = %v, want 384 default", info.PlayResX())
	}
	if info.PlayResY() != 288 {
		t.Errorf("PlayResY() = %v, want 288 default", info.PlayResY())
	}
	if !info.ScaledBorderAndShadow() {
		t.Error("ScaledBorderAndShadow() should default to true")
	}
	if info.Collisions() != "Normal" {
		t.Errorf("Collisions() = %q, want Normal", info.Collisions())
	}
	if info.Timer() != 100 {
		t.Errorf("Timer() = %v, want 100", info.Timer())
	}
}

func TestScriptInfoTypedAccessorsReadDeclaredValues(t *testing.T) {
	s := newScript("")
	s.Sections = []Section{{
		Kind: SectionScriptInfo,
		ScriptInfo: []KV{
			{Key: "PlayResX", Value: "1280"},
			{Key: "PlayResY", Value: "720"},
			{Key: "WrapStyle", Value: "2"},
			{Key: "ScaledBorderAndShadow", Value: "no"},
			{Key: "Collisions", Value: "Reverse"},
			{Key: "Timer", Value: "150"},
		},
	}}
	info := s.Info()
	if info.PlayResX() != 1280 || info.PlayResY() != 720 {
		t.Errorf("PlayRes = %v,%v, want 1280,720", info.PlayResX(), info.PlayResY())
	}
	if info.WrapStyle() != 2 {
		t.Errorf("WrapStyle() = %v, want 2", info.WrapStyle())
	}
	if info.ScaledBorderAndShadow() {
		t.Error("ScaledBorderAndShadow() should be false for 'no'")
	}
	if info.Collisions() != "Reverse" {
		t.Errorf("Collisions() = %q, want Reverse", info.Collisions())
	}
	if info.Timer() != 150 {
		t.Errorf("Timer() = %v, want 150", info.Timer())
	}
}
