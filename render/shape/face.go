package shape

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face is one font in a fallback chain. Fonts is tried in request order;
// the first Face whose GlyphAdvance reports coverage for a cluster wins.
// A Face wraps either a real OpenType font.Face (pre-scaled to the
// request's size/DPI the way font/opentype.NewFace's FaceOptions does it)
// or, when no OpenType backend is available, a metrics-only Fallback.
type Face struct {
	FontID     string // cache key component; distinct per underlying font file
	Family     string
	UnitsPerEm int32

	Font font.Face // nil when this Face is metrics-only
	// Index resolves a rune to its real OpenType glyph index, for callers
	// that hold the underlying sfnt.Font (font.Face itself exposes no
	// index lookup). When nil, the shaped Glyph.GlyphID falls back to the
	// rune value truncated to uint16, sufficient for the glyph cache's own
	// keying but not a real glyph index.
	Index func(r rune) (uint16, bool)

	Fallback *FallbackMetrics // non-nil only when Font is nil
}

// FallbackMetrics is the per-code-point advance path the shaper uses when
// OpenType shaping is unavailable: a single average advance width stands
// in for every glyph, kerning and ligatures are not applied, but cluster
// indices still match code-point positions exactly.
type FallbackMetrics struct {
	AdvanceEm float64 // average advance, in font units (per em)
	AscentEm  float64
	DescentEm float64
}

// pxPerUnit converts a font-unit measurement to pixels at a given point
// size and DPI: size * dpi / (72 * upem), the shaper's required scaling
// formula for the metrics-only fallback path.
func pxPerUnit(sizePt, dpi float64, upem int32) float64 {
	if upem <= 0 {
		upem = 1000
	}
	return sizePt * dpi / (72 * float64(upem))
}

// covers reports whether this Face can shape r, and if so its advance in
// fixed.Int26_6 pixel units.
func (f Face) covers(r rune, sizePt, dpi float64) (fixed.Int26_6, bool) {
	if f.Font != nil {
		adv, ok := f.Font.GlyphAdvance(r)
		return adv, ok
	}
	if f.Fallback == nil {
		return 0, false
	}
	px := pxPerUnit(sizePt, dpi, f.UnitsPerEm)
	return fixed.Int26_6(f.Fallback.AdvanceEm * px * 64), true
}

// lineMetrics returns the face's ascent/descent/line-height in pixels.
func (f Face) lineMetrics(sizePt, dpi float64) (ascent, descent, height fixed.Int26_6) {
	if f.Font != nil {
		m := f.Font.Metrics()
		return m.Ascent, m.Descent, m.Height
	}
	if f.Fallback == nil {
		return 0, 0, 0
	}
	px := pxPerUnit(sizePt, dpi, f.UnitsPerEm)
	ascent = fixed.Int26_6(f.Fallback.AscentEm * px * 64)
	descent = fixed.Int26_6(f.Fallback.DescentEm * px * 64)
	return ascent, descent, ascent + descent
}
