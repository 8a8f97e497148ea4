package shape

import "testing"

func fallbackFace(id string, advanceEm float64) Face {
	return Face{
		FontID:     id,
		UnitsPerEm: 1000,
		Fallback:   &FallbackMetrics{AdvanceEm: advanceEm, AscentEm: 800, DescentEm: 200},
	}
}

func TestShapeAssignsClusterIndicesInSourceOrder(t *testing.T) {
	req := Request{
		Text:   "abc",
		Fonts:  []Face{fallbackFace("f1", 500)},
		SizePt: 20,
		DPI:    72,
	}
	lines := Shape(req)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	run := lines[0].Run
	if len(run.Glyphs) != 3 {
		t.Fatalf("glyphs = %d, want 3", len(run.Glyphs))
	}
	for i, g := range run.Glyphs {
		if g.ClusterIndex != i {
			t.Errorf("glyph %d cluster index = %d, want %d", i, g.ClusterIndex, i)
		}
	}
}

func TestShapeHardBreakSplitsIntoSeparateLines(t *testing.T) {
	req := Request{
		Text:   `line one\Nline two`,
		Fonts:  []Face{fallbackFace("f1", 500)},
		SizePt: 20,
		DPI:    72,
	}
	lines := Shape(req)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Text != "line one" || lines[1].Text != "line two" {
		t.Errorf("lines = %q, %q", lines[0].Text, lines[1].Text)
	}
	if lines[1].Start <= lines[0].Start {
		t.Errorf("second line start %d should be after first line start %d", lines[1].Start, lines[0].Start)
	}
}

func TestShapeFontFallbackSubstitutesNotdef(t *testing.T) {
	// A Face with neither a Font nor Fallback metrics covers nothing, so
	// every rune falls through the chain; with no fallback Face left,
	// notdef (glyph 0, font index -1) results.
	noCoverage := Face{FontID: "empty"}
	req := Request{
		Text:   "x",
		Fonts:  []Face{noCoverage},
		SizePt: 20,
		DPI:    72,
	}
	lines := Shape(req)
	g := lines[0].Run.Glyphs[0]
	if g.FontIndex != -1 || g.GlyphID != 0 {
		t.Errorf("glyph = %+v, want notdef", g)
	}
}

func TestShapeFontFallbackChainPicksSecondFont(t *testing.T) {
	first := Face{FontID: "empty"} // covers nothing
	second := fallbackFace("f2", 600)
	req := Request{
		Text:   "x",
		Fonts:  []Face{first, second},
		SizePt: 20,
		DPI:    72,
	}
	lines := Shape(req)
	g := lines[0].Run.Glyphs[0]
	if g.FontIndex != 1 {
		t.Errorf("font index = %d, want 1 (second face)", g.FontIndex)
	}
}

func TestDetectDirectionArabicIsRTL(t *testing.T) {
	if got := DetectDirection("السلام"); got != RightToLeft {
		t.Errorf("direction = %v, want RightToLeft", got)
	}
}

func TestDetectDirectionMongolianIsTTB(t *testing.T) {
	if got := DetectDirection("ᠠᠡᠢ"); got != TopToBottom {
		t.Errorf("direction = %v, want TopToBottom", got)
	}
}

func TestDetectDirectionPlainLatinIsLTR(t *testing.T) {
	if got := DetectDirection("hello world"); got != LeftToRight {
		t.Errorf("direction = %v, want LeftToRight", got)
	}
}

func TestWrapWidthStyle0BreaksAtWordBoundary(t *testing.T) {
	measure := func(s string) int { return len(s) }
	lines := wrapWidth("aa bb cc dd", 0, 5, measure)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping to produce multiple lines, got %+v", lines)
	}
	for _, l := range lines {
		if len(l.Text) > 8 {
			t.Errorf("line %q exceeds a reasonable width for maxWidth=5", l.Text)
		}
	}
}

func TestWrapWidthStyle2NeverWraps(t *testing.T) {
	measure := func(s string) int { return len(s) }
	lines := wrapWidth("aa bb cc dd", 2, 5, measure)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1 (style 2 never wraps)", len(lines))
	}
}

func TestWrapWidthZeroMaxWidthIsUnbounded(t *testing.T) {
	measure := func(s string) int { return len(s) }
	lines := wrapWidth("aa bb cc dd", 0, 0, measure)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1 (maxWidth=0 is unbounded)", len(lines))
	}
}

func TestGlyphCacheMemoizesAcrossCalls(t *testing.T) {
	cache := NewGlyphCache()
	req := Request{
		Text:   "aaa",
		Fonts:  []Face{fallbackFace("f1", 500)},
		SizePt: 20,
		DPI:    72,
		Cache:  cache,
	}
	Shape(req)
	if cache.Len() == 0 {
		t.Error("expected the glyph cache to gain entries after a Shape call")
	}
}

func TestPxPerUnitScalesLinearly(t *testing.T) {
	a := pxPerUnit(20, 72, 1000)
	b := pxPerUnit(40, 72, 1000)
	if b != a*2 {
		t.Errorf("pxPerUnit(40,...) = %v, want double pxPerUnit(20,...) = %v", b, a)
	}
}
