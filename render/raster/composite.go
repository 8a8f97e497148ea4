package raster

import (
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/render/pipeline"
	"github.com/assforge/ass/render/shape"
	"golang.org/x/image/math/fixed"
)

// Composite paints one time-sampled frame's worth of IR layers onto a
// fresh Frame of the given size, in ascending LayerIndex order (then
// event order within a layer, preserved from layers' own slice order).
// fonts resolves a layer's font name to the shape.Face list the shaper
// should try, in fallback-chain order; dpi is the nominal device DPI used
// for font scaling.
func Composite(layers []pipeline.Layer, width, height int, fonts func(name string) []shape.Face, dpi float64, cache *shape.GlyphCache) (Frame, error) {
	frame, err := newValidatedFrame(width, height)
	if err != nil {
		return Frame{}, err
	}
	ordered := orderLayers(layers)
	for _, layer := range ordered {
		paintLayer(frame, layer, fonts, dpi, cache)
	}
	return frame, nil
}

// newValidatedFrame allocates a Frame after rejecting dimensions that
// would otherwise panic inside make() or render nothing observable.
func newValidatedFrame(width, height int) (Frame, error) {
	if width < 0 || height < 0 {
		return Frame{}, &assutil.RenderError{Kind: assutil.ErrInvalidRenderInput, Detail: "frame width and height must be non-negative"}
	}
	if width == 0 || height == 0 {
		return Frame{}, &assutil.RenderError{Kind: assutil.ErrInvalidRenderInput, Detail: "frame width and height must both be positive"}
	}
	return NewFrame(width, height), nil
}

// orderLayers returns layers sorted by ascending LayerIndex using a
// stable sort, so equal-index layers keep the event order Process
// produced them in.
func orderLayers(layers []pipeline.Layer) []pipeline.Layer {
	out := make([]pipeline.Layer, len(layers))
	copy(out, layers)
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1].LayerIndex > out[j].LayerIndex {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

func paintLayer(frame Frame, layer pipeline.Layer, fonts func(name string) []shape.Face, dpi float64, cache *shape.GlyphCache) {
	var clip *Clip
	if layer.Clip != nil {
		clip = resolveClip(layer, frame.Width, frame.Height)
	}
	paintLayerWithClip(frame, layer, fonts, dpi, cache, clip)
}

// paintLayerWithClip paints layer using an already-resolved clip (which
// may combine the layer's own \clip/\iclip region with an outer bound,
// as CompositeIncremental does to confine painting to a dirty
// rectangle), rather than resolving layer.Clip itself.
func paintLayerWithClip(frame Frame, layer pipeline.Layer, fonts func(name string) []shape.Face, dpi float64, cache *shape.GlyphCache, clip *Clip) {
	if layer.Alpha <= 0 {
		return
	}
	faces := fonts(layer.Font.Name)
	if len(faces) == 0 {
		return
	}

	plain := plainText(layer.Runs)
	req := shape.Request{
		Text:      plain,
		Fonts:     faces,
		SizePt:    layer.Font.Size,
		DPI:       dpi,
		MaxWidth:  0,
		WrapStyle: layer.Format.WrapStyle,
		Cache:     cache,
	}
	lines := shape.Shape(req)

	m := layerMatrix(layer)

	penY := layer.Position.Y
	for _, line := range lines {
		penX := layer.Position.X
		for _, g := range line.Run.Glyphs {
			col := runColorAt(layer.Runs, plain, g.ClusterIndex)
			face := faceFor(faces, g.FontIndex)
			r := runeAt(plain, g.ClusterIndex)
			paintGlyph(frame, layer, g, penX, penY, col, m, clip, face, r)
			penX += fixedToFloat(g.XAdvance)
		}
		penY += fixedToFloat(line.Run.LineHeight)
	}
}

func faceFor(faces []shape.Face, fontIndex int) shape.Face {
	if fontIndex < 0 || fontIndex >= len(faces) {
		return shape.Face{}
	}
	return faces[fontIndex]
}

func runeAt(plain string, clusterIndex int) rune {
	if clusterIndex < 0 || clusterIndex >= len(plain) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(plain[clusterIndex:])
	return r
}

func plainText(runs []pipeline.TextRun) string {
	total := 0
	for _, r := range runs {
		total += len(r.Text)
	}
	buf := make([]byte, 0, total)
	for _, r := range runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}

// runColorAt finds which TextRun owns the byte at clusterIndex within the
// concatenated plain text, and returns its fill color.
func runColorAt(runs []pipeline.TextRun, plain string, clusterIndex int) assutil.Color {
	offset := 0
	for _, r := range runs {
		if clusterIndex < offset+len(r.Text) {
			return r.Color
		}
		offset += len(r.Text)
	}
	if len(runs) > 0 {
		return runs[len(runs)-1].Color
	}
	return assutil.Color{A: 255}
}

func layerMatrix(layer pipeline.Layer) Matrix {
	m := Identity
	m = m.Mul(Scale(layer.Transform.ScaleX/100, layer.Transform.ScaleY/100))
	m = m.Mul(ShearMatrix(layer.Transform.ShearX, layer.Transform.ShearY))
	m = m.Mul(RotateZ(layer.Transform.RotateZ))
	ox, oy := layer.Position.X, layer.Position.Y
	if layer.Transform.Origin != nil {
		ox, oy = layer.Transform.Origin.X, layer.Transform.Origin.Y
	}
	return AboutOrigin(m, ox, oy)
}

func resolveClip(layer pipeline.Layer, width, height int) *Clip {
	c := layer.Clip
	if c.IsRect {
		return NewRectClip(width, height, c.X1, c.Y1, c.X2, c.Y2, c.Inverse)
	}
	return NewDrawingClip(width, height, c.Drawing, Identity, c.Inverse)
}

// paintGlyph paints one glyph's outline, then shadow, then fill, blending
// each straight-alpha source-over onto frame. The fill (and shadow, which
// shares the fill's shape) prefer face's real rasterized outline when
// face wraps an actual OpenType font.Face; paintGlyphBox is the fallback
// for metrics-only faces and is always used for the outline, which needs
// an expanded footprint rather than the glyph's own shape.
func paintGlyph(frame Frame, layer pipeline.Layer, g shape.Glyph, penX, penY float64, fill assutil.Color, m Matrix, clip *Clip, face shape.Face, r rune) {
	gx := penX + fixedToFloat(g.XOffset)
	gy := penY + fixedToFloat(g.YOffset)

	compositeAlpha := layer.Alpha * float64(fill.A) / 255

	if layer.Format.BorderX != 0 || layer.Format.BorderY != 0 {
		ox, oy := m.Apply(gx, gy)
		paintGlyphOutline(frame, int(ox), int(oy), layer.Format.BorderX, layer.Format.BorderY, layer.Colors.Outline, compositeAlpha, clip)
	}
	if layer.Format.ShadowX != 0 || layer.Format.ShadowY != 0 {
		sx, sy := m.Apply(gx+layer.Format.ShadowX, gy+layer.Format.ShadowY)
		if !paintGlyphMask(frame, face, r, sx, sy, layer.Colors.Shadow, compositeAlpha, clip) {
			paintGlyphBox(frame, int(sx), int(sy), layer.Colors.Shadow, compositeAlpha, clip)
		}
	}
	fx, fy := m.Apply(gx, gy)
	if !paintGlyphMask(frame, face, r, fx, fy, fill, compositeAlpha, clip) {
		paintGlyphBox(frame, int(fx), int(fy), fill, compositeAlpha, clip)
	}
}

// paintGlyphMask rasterizes r's real outline through face.Font.Glyph (the
// same accumulate-signed-area scanline fill vector.Rasterizer backends
// implement this with) and composites the resulting coverage mask onto
// frame with the standard library's image/draw, draw.Over. It reports
// false when face carries no real font.Face (a metrics-only fallback
// face) or the font has no outline for r, so the caller can fall back to
// the single-pixel stand-in.
func paintGlyphMask(frame Frame, face shape.Face, r rune, x, y float64, c assutil.Color, alpha float64, clip *Clip) bool {
	if face.Font == nil {
		return false
	}
	dot := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	dr, mask, maskp, _, ok := face.Font.Glyph(dot, r)
	if !ok || dr.Empty() {
		return false
	}

	dst := &image.NRGBA{Pix: frame.Pixels, Stride: frame.Width * 4, Rect: image.Rect(0, 0, frame.Width, frame.Height)}
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: clampByte(alpha * 255)})

	if clip == nil || len(clip.Alpha) == 0 {
		draw.DrawMask(dst, dr, src, image.Point{}, mask, maskp, draw.Over)
		return true
	}
	combined := combineMaskWithClip(dr, mask, maskp, clip)
	draw.DrawMask(dst, dr, src, image.Point{}, combined, image.Point{}, draw.Over)
	return true
}

// combineMaskWithClip multiplies a glyph's coverage mask (anchored so
// that mask.At(maskp) covers dst point dr.Min) by a layer clip's per-pixel
// coverage, producing a mask aligned to dr.Min so the caller can pass
// image.Point{} as the draw.DrawMask source point.
func combineMaskWithClip(dr image.Rectangle, mask image.Image, maskp image.Point, clip *Clip) *image.Alpha {
	w, h := dr.Dx(), dr.Dy()
	out := image.NewAlpha(image.Rect(0, 0, w, h))
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			mv := color.AlphaModel.Convert(mask.At(maskp.X+dx, maskp.Y+dy)).(color.Alpha).A
			cv := clip.covers(dr.Min.X+dx, dr.Min.Y+dy)
			out.SetAlpha(dx, dy, color.Alpha{A: clampByte(float64(mv) / 255 * cv * 255)})
		}
	}
	return out
}

// paintGlyphBox paints a single-pixel stand-in for a shaped glyph's fill
// or shadow, used when no real font outline is available: the rasterizer
// falls back to compositing a glyph's anchor position and resolved color
// rather than rendering nothing for a metrics-only font.
func paintGlyphBox(frame Frame, x, y int, c assutil.Color, alpha float64, clip *Clip) {
	a := alpha * clip.covers(x, y)
	if a <= 0 {
		return
	}
	blendPixel(frame, x, y, c, a)
}

func paintGlyphOutline(frame Frame, x, y int, borderX, borderY float64, c assutil.Color, alpha float64, clip *Clip) {
	bx, by := int(borderX+0.5), int(borderY+0.5)
	if bx < 1 {
		bx = 1
	}
	if by < 1 {
		by = 1
	}
	for dy := -by; dy <= by; dy++ {
		for dx := -bx; dx <= bx; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			paintGlyphBox(frame, x+dx, y+dy, c, alpha, clip)
		}
	}
}

// blendPixel performs standard source-over blending with straight
// (non-premultiplied) alpha: out = src*a + dst*(1-a), per channel.
func blendPixel(frame Frame, x, y int, src assutil.Color, a float64) {
	dr, dg, db, da := frame.At(x, y)
	outA := a + float64(da)/255*(1-a)
	if outA <= 0 {
		frame.Set(x, y, 0, 0, 0, 0)
		return
	}
	blend := func(s, d uint8) uint8 {
		v := (float64(s)*a + float64(d)/255*(1-a)*float64(da)) / outA
		return clampByte(v)
	}
	frame.Set(x, y, blend(src.R, dr), blend(src.G, dg), blend(src.B, db), clampByte(outA*255))
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
