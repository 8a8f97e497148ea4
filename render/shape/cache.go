package shape

import "sync"

// glyphKey identifies one cached glyph measurement: a font, a glyph within
// it, and the size it was measured at (size folds in DPI since both only
// ever matter as their product through pxPerUnit).
type glyphKey struct {
	fontID string
	glyph  uint16
	sizeX1000 int // size*1000 rounded, to keep the key comparable
}

// GlyphCache memoizes per-(font,glyph,size) advance lookups across Shape
// calls, the only cross-call state the shaper is permitted to hold.
type GlyphCache struct {
	mu      sync.Mutex
	entries map[glyphKey]Glyph
}

// NewGlyphCache returns an empty cache ready to use.
func NewGlyphCache() *GlyphCache {
	return &GlyphCache{entries: make(map[glyphKey]Glyph)}
}

func (c *GlyphCache) key(fontID string, glyphID uint16, sizePt float64) glyphKey {
	return glyphKey{fontID: fontID, glyph: glyphID, sizeX1000: int(sizePt*1000 + 0.5)}
}

func (c *GlyphCache) get(fontID string, glyphID uint16, sizePt float64) (Glyph, bool) {
	if c == nil {
		return Glyph{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.entries[c.key(fontID, glyphID, sizePt)]
	return g, ok
}

func (c *GlyphCache) put(fontID string, glyphID uint16, sizePt float64, g Glyph) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(fontID, glyphID, sizePt)] = g
}

// Len reports the number of cached entries, for diagnostics/tests.
func (c *GlyphCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
