package raster

import (
	"github.com/assforge/ass/render/pipeline"
	"github.com/assforge/ass/render/shape"
)

// Rect is an axis-aligned pixel rectangle, half-open: [MinX,MaxX) x
// [MinY,MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

func (r Rect) empty() bool { return r.MaxX <= r.MinX || r.MaxY <= r.MinY }

func (r Rect) clamp(width, height int) Rect {
	if r.MinX < 0 {
		r.MinX = 0
	}
	if r.MinY < 0 {
		r.MinY = 0
	}
	if r.MaxX > width {
		r.MaxX = width
	}
	if r.MaxY > height {
		r.MaxY = height
	}
	return r
}

// FullFrame returns the rectangle covering an entire width x height
// frame, the dirty set that makes CompositeIncremental equivalent to a
// full Composite.
func FullFrame(width, height int) Rect {
	return Rect{MinX: 0, MinY: 0, MaxX: width, MaxY: height}
}

// CompositeIncremental repaints only the pixels inside dirty, leaving the
// rest of frame untouched, and returns frame for chaining. Painting a
// layer still walks its full glyph list (glyph positions are cheap to
// compute; only the per-pixel blend is worth skipping outside dirty), so
// a call with dirty == FullFrame(width, height) blends exactly the same
// pixels in exactly the same order as Composite, and is therefore
// byte-identical to it.
func CompositeIncremental(frame Frame, layers []pipeline.Layer, dirty Rect, fonts func(name string) []shape.Face, dpi float64, cache *shape.GlyphCache) Frame {
	dirty = dirty.clamp(frame.Width, frame.Height)
	if dirty.empty() {
		return frame
	}
	ordered := orderLayers(layers)
	for _, layer := range ordered {
		paintLayerClipped(frame, layer, dirty, fonts, dpi, cache)
	}
	return frame
}

func paintLayerClipped(frame Frame, layer pipeline.Layer, dirty Rect, fonts func(name string) []shape.Face, dpi float64, cache *shape.GlyphCache) {
	bound := NewRectClip(frame.Width, frame.Height, float64(dirty.MinX), float64(dirty.MinY), float64(dirty.MaxX), float64(dirty.MaxY), false)

	var combined *Clip
	if layer.Clip != nil {
		combined = intersectClip(resolveClip(layer, frame.Width, frame.Height), bound)
	} else {
		combined = bound
	}
	paintLayerWithClip(frame, layer, fonts, dpi, cache, combined)
}

// intersectClip combines two clips by multiplying their coverage, used
// to confine an event's own \clip/\iclip region to the dirty rectangle
// being repainted.
func intersectClip(a, b *Clip) *Clip {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	width, height := a.Width, a.Height
	out := make([]byte, len(a.Alpha))
	for i := range out {
		x, y := i%width, i/width
		av := a.covers(x, y)
		bv := b.covers(x, y)
		out[i] = clampByte(av * bv * 255)
	}
	return &Clip{Width: width, Height: height, Alpha: out}
}
