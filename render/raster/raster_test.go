package raster

import (
	"testing"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/render/pipeline"
	"github.com/assforge/ass/render/shape"
)

func TestFrameSetAtRoundTrip(t *testing.T) {
	f := NewFrame(4, 4)
	f.Set(1, 2, 10, 20, 30, 255)
	r, g, b, a := f.At(1, 2)
	if r != 10 || g != 20 || b != 30 || a != 255 {
		t.Fatalf("At = %d,%d,%d,%d, want 10,20,30,255", r, g, b, a)
	}
}

func TestFrameOutOfBoundsIsNoOpAndTransparent(t *testing.T) {
	f := NewFrame(2, 2)
	f.Set(-1, 0, 1, 2, 3, 4)
	f.Set(5, 5, 1, 2, 3, 4)
	r, g, b, a := f.At(-1, 0)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("out-of-bounds read = %d,%d,%d,%d, want all zero", r, g, b, a)
	}
}

func TestMatrixIdentityIsNoOp(t *testing.T) {
	x, y := Identity.Apply(3, 4)
	if x != 3 || y != 4 {
		t.Errorf("Identity.Apply(3,4) = %v,%v, want 3,4", x, y)
	}
}

func TestMatrixTranslateThenScaleComposes(t *testing.T) {
	m := Translate(10, 0).Mul(Scale(2, 2))
	x, y := m.Apply(1, 1)
	if x != 22 || y != 2 {
		t.Errorf("composed Apply(1,1) = %v,%v, want 22,2", x, y)
	}
}

func TestRotateZ90DegreesSwapsAxes(t *testing.T) {
	m := RotateZ(90)
	x, y := m.Apply(1, 0)
	if abs(x) > 1e-9 || abs(y-1) > 1e-9 {
		t.Errorf("RotateZ(90).Apply(1,0) = %v,%v, want ~0,1", x, y)
	}
}

func TestAboutOriginRotatesAroundPivot(t *testing.T) {
	m := AboutOrigin(RotateZ(180), 5, 5)
	x, y := m.Apply(5, 0)
	if abs(x-5) > 1e-9 || abs(y-10) > 1e-9 {
		t.Errorf("AboutOrigin(180, 5,5).Apply(5,0) = %v,%v, want 5,10", x, y)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestDrawPathClosesOpenContourImplicitly(t *testing.T) {
	// A triangle via m/l/l with no trailing c should still close when the
	// path ends or a new m starts.
	cmds := "m 0 0 l 10 0 l 10 10 l 0 0"
	NewDrawingClip(20, 20, cmds, Identity, false)
}

func TestRectClipCoversInsideNotOutside(t *testing.T) {
	c := NewRectClip(10, 10, 2, 2, 8, 8, false)
	if c.covers(5, 5) != 1 {
		t.Errorf("covers(5,5) = %v, want 1 (inside rect)", c.covers(5, 5))
	}
	if c.covers(0, 0) != 0 {
		t.Errorf("covers(0,0) = %v, want 0 (outside rect)", c.covers(0, 0))
	}
}

func TestRectClipInverseFlipsCoverage(t *testing.T) {
	c := NewRectClip(10, 10, 2, 2, 8, 8, true)
	if c.covers(5, 5) != 0 {
		t.Errorf("inverse covers(5,5) = %v, want 0", c.covers(5, 5))
	}
	if c.covers(0, 0) != 1 {
		t.Errorf("inverse covers(0,0) = %v, want 1", c.covers(0, 0))
	}
}

func TestNilClipAlwaysCoversFully(t *testing.T) {
	var c *Clip
	if c.covers(3, 3) != 1 {
		t.Errorf("nil Clip covers = %v, want 1", c.covers(3, 3))
	}
}

func TestGaussianBlurSpreadsASinglePixel(t *testing.T) {
	const w, h = 9, 9
	alpha := make([]byte, w*h)
	alpha[4*w+4] = 255
	GaussianBlurAlpha(alpha, w, h, 1.5)
	if alpha[4*w+4] == 255 {
		t.Error("center pixel should have lost coverage to its neighbors after blur")
	}
	if alpha[4*w+3] == 0 {
		t.Error("a neighboring pixel should have gained coverage after blur")
	}
}

func TestBoxBlurCapsRadiusAtTen(t *testing.T) {
	const w, h = 30, 30
	alpha := make([]byte, w*h)
	for i := range alpha {
		alpha[i] = 100
	}
	BoxBlurAlpha(alpha, w, h, 50)
	// A uniform field blurred at any radius stays uniform; this mainly
	// exercises that an oversized radius doesn't panic or go out of range.
	for _, v := range alpha {
		if v != 100 {
			t.Fatalf("uniform field should stay uniform after box blur, got %d", v)
			break
		}
	}
}

func TestOrderLayersSortsAscendingStable(t *testing.T) {
	layers := []pipeline.Layer{
		{LayerIndex: 2},
		{LayerIndex: 0, Alpha: 0.25},
		{LayerIndex: 1},
		{LayerIndex: 0, Alpha: 0.75},
	}
	ordered := orderLayers(layers)
	for i := 1; i < len(ordered); i++ {
		if ordered[i].LayerIndex < ordered[i-1].LayerIndex {
			t.Fatalf("layers not sorted ascending: %+v", ordered)
		}
	}
	if ordered[0].Alpha != 0.25 || ordered[1].Alpha != 0.75 {
		t.Fatalf("equal-index layers lost their input order: %+v", ordered)
	}
}

func fallbackFace(id string, advanceEm float64) shape.Face {
	return shape.Face{
		FontID:     id,
		UnitsPerEm: 1000,
		Fallback:   &shape.FallbackMetrics{AdvanceEm: advanceEm, AscentEm: 800, DescentEm: 200},
	}
}

func fontLookup(name string) []shape.Face {
	return []shape.Face{fallbackFace(name, 500)}
}

func TestCompositePaintsOpaqueGlyphPixels(t *testing.T) {
	layers := []pipeline.Layer{
		{
			LayerIndex: 0,
			Position:   pipeline.Position{X: 2, Y: 2},
			Transform:  pipeline.Transform{ScaleX: 100, ScaleY: 100},
			Alpha:      1,
			Font:       pipeline.FontState{Name: "Default", Size: 10},
			Colors:     pipeline.ColorSet{Primary: assutil.Color{R: 255, G: 0, B: 0, A: 255}},
			Runs:       []pipeline.TextRun{{Text: "a", Color: assutil.Color{R: 255, G: 0, B: 0, A: 255}}},
		},
	}
	frame, err := Composite(layers, 20, 20, fontLookup, 72, nil)
	if err != nil {
		t.Fatalf("Composite error: %v", err)
	}
	r, _, _, a := frame.At(2, 2)
	if a == 0 {
		t.Error("expected the glyph's anchor pixel to receive some coverage")
	}
	if a > 0 && r == 0 {
		t.Error("expected painted pixel to carry the fill color's red channel")
	}
}

func TestCompositeSkipsFullyTransparentLayer(t *testing.T) {
	layers := []pipeline.Layer{
		{
			LayerIndex: 0,
			Position:   pipeline.Position{X: 2, Y: 2},
			Alpha:      0,
			Font:       pipeline.FontState{Name: "Default", Size: 10},
			Runs:       []pipeline.TextRun{{Text: "a", Color: assutil.Color{A: 255}}},
		},
	}
	frame, err := Composite(layers, 10, 10, fontLookup, 72, nil)
	if err != nil {
		t.Fatalf("Composite error: %v", err)
	}
	for i := range frame.Pixels {
		if frame.Pixels[i] != 0 {
			t.Fatalf("expected a fully transparent frame, found nonzero byte at %d", i)
		}
	}
}

func TestCompositeIncrementalMatchesFullCompositeOverFullDirtyRect(t *testing.T) {
	layers := []pipeline.Layer{
		{
			LayerIndex: 0,
			Position:   pipeline.Position{X: 5, Y: 5},
			Transform:  pipeline.Transform{ScaleX: 100, ScaleY: 100},
			Alpha:      1,
			Font:       pipeline.FontState{Name: "Default", Size: 12},
			Colors:     pipeline.ColorSet{Primary: assutil.Color{R: 10, G: 20, B: 30, A: 255}},
			Runs:       []pipeline.TextRun{{Text: "hi", Color: assutil.Color{R: 10, G: 20, B: 30, A: 255}}},
		},
	}
	full, err := Composite(layers, 16, 16, fontLookup, 72, nil)
	if err != nil {
		t.Fatalf("Composite error: %v", err)
	}

	incremental := NewFrame(16, 16)
	CompositeIncremental(incremental, layers, FullFrame(16, 16), fontLookup, 72, nil)

	for i := range full.Pixels {
		if full.Pixels[i] != incremental.Pixels[i] {
			t.Fatalf("byte %d differs: full=%d incremental=%d", i, full.Pixels[i], incremental.Pixels[i])
		}
	}
}

func TestCompositeFrameSizeMatchesWidthHeightTimesFour(t *testing.T) {
	layers := []pipeline.Layer{
		{
			LayerIndex: 0,
			Position:   pipeline.Position{X: 10, Y: 10},
			Alpha:      1,
			Font:       pipeline.FontState{Name: "Default", Size: 20},
			Runs:       []pipeline.TextRun{{Text: "Hello", Color: assutil.Color{A: 255}}},
		},
	}
	frame, err := Composite(layers, 640, 360, fontLookup, 72, nil)
	if err != nil {
		t.Fatalf("Composite error: %v", err)
	}
	if want := 640 * 360 * 4; len(frame.Pixels) != want {
		t.Fatalf("Pixels length = %d, want %d", len(frame.Pixels), want)
	}
}

func TestCompositeIncrementalLeavesOutsideDirtyUntouched(t *testing.T) {
	layers := []pipeline.Layer{
		{
			LayerIndex: 0,
			Position:   pipeline.Position{X: 5, Y: 5},
			Transform:  pipeline.Transform{ScaleX: 100, ScaleY: 100},
			Alpha:      1,
			Font:       pipeline.FontState{Name: "Default", Size: 12},
			Colors:     pipeline.ColorSet{Primary: assutil.Color{R: 10, G: 20, B: 30, A: 255}},
			Runs:       []pipeline.TextRun{{Text: "hi", Color: assutil.Color{R: 10, G: 20, B: 30, A: 255}}},
		},
	}
	frame := NewFrame(16, 16)
	frame.Set(0, 0, 99, 99, 99, 99)
	CompositeIncremental(frame, layers, Rect{MinX: 8, MinY: 8, MaxX: 16, MaxY: 16}, fontLookup, 72, nil)
	r, g, b, a := frame.At(0, 0)
	if r != 99 || g != 99 || b != 99 || a != 99 {
		t.Errorf("pixel outside the dirty rect changed: got %d,%d,%d,%d", r, g, b, a)
	}
}
