package shape

import (
	"golang.org/x/image/math/fixed"
)

// Shape positions a run of plain text per the shaper's contract: it
// resolves hard (\N) and soft line breaks, and for each resulting line
// walks its runes assigning each to the first Face in req.Fonts that
// reports coverage, substituting .notdef (GlyphID 0) when every Face in
// the chain fails. Shape is a pure function of req; req.Cache, if set, is
// the only state that survives the call.
func Shape(req Request) []Line {
	var lines []Line
	for _, seg := range splitHard(req.Text) {
		measure := func(s string) int {
			return fixedToInt(shapeSegment(s, req).Advance)
		}
		for _, w := range wrapWidth(seg.Text, req.WrapStyle, fixedToInt(req.MaxWidth), measure) {
			run := shapeSegment(w.Text, req)
			lines = append(lines, Line{
				Text:  w.Text,
				Start: seg.Start + w.Start,
				End:   seg.Start + w.End,
				Run:   run,
			})
		}
	}
	return lines
}

func fixedToInt(v fixed.Int26_6) int { return int(v >> 6) }

// shapeSegment shapes one already-line-broken string with no further
// break handling: it resolves direction, then walks runes left-to-right
// in storage order (RTL reordering for display is a rasterizer concern —
// cluster indices are always reported in source byte order regardless of
// Direction) assigning each to the first covering Face.
func shapeSegment(text string, req Request) Run {
	dir := DetectDirection(text)
	run := Run{Direction: dir}
	if len(req.Fonts) == 0 {
		return run
	}

	ascent, descent, height := req.Fonts[0].lineMetrics(req.SizePt, req.DPI)
	run.Ascent, run.Descent, run.LineHeight = ascent, descent, height

	var prev rune
	havePrev := false
	for i, r := range text {
		fontIdx, adv, glyphID := resolveGlyph(r, req)
		if havePrev && fontIdx >= 0 && req.Fonts[fontIdx].Font != nil {
			adv += req.Fonts[fontIdx].Font.Kern(prev, r)
		}
		g := Glyph{
			GlyphID:      glyphID,
			ClusterIndex: i,
			XAdvance:     adv,
			FontIndex:    fontIdx,
		}
		run.Glyphs = append(run.Glyphs, g)
		run.Advance += adv
		prev, havePrev = r, true
	}
	return run
}

// resolveGlyph tries each Face in req.Fonts in order, consulting
// req.Cache first when set, and falls back to the .notdef glyph (index 0,
// font -1) when no Face in the chain covers r.
func resolveGlyph(r rune, req Request) (fontIndex int, advance fixed.Int26_6, glyphID uint16) {
	sizeKey := req.SizePt * req.DPI // the cache's size key folds in DPI (see glyphKey)
	for idx, f := range req.Fonts {
		gid := glyphIndexOf(f, r)
		if cached, ok := req.Cache.get(f.FontID, gid, sizeKey); ok {
			return idx, cached.XAdvance, cached.GlyphID
		}
		if adv, ok := f.covers(r, req.SizePt, req.DPI); ok {
			req.Cache.put(f.FontID, gid, sizeKey, Glyph{GlyphID: gid, XAdvance: adv})
			return idx, adv, gid
		}
	}
	return -1, 0, 0
}

func glyphIndexOf(f Face, r rune) uint16 {
	if f.Index != nil {
		if gid, ok := f.Index(r); ok {
			return gid
		}
	}
	return uint16(r)
}
