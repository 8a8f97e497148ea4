package pipeline

import (
	"sort"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/plugin"
)

// Transform is the affine transform a layer's coordinate system carries
// before rasterization: rotation about X/Y/Z composed with shear, about
// Origin (the \org point) if set, else the text's own anchor.
type Transform struct {
	RotateX, RotateY, RotateZ float64
	ShearX, ShearY            float64
	ScaleX, ScaleY            float64
	Origin                    *Position
}

// TextRun is one contiguously-colored span of an event's shaped text.
type TextRun struct {
	Text  string
	Color assutil.Color
}

// Layer is one event's fully-resolved, time-sampled render unit: what C9
// actually consumes, ordered by LayerIndex then event order within it.
type Layer struct {
	LayerIndex int
	Position   Position
	Transform  Transform
	Clip       *ClipRegion
	Alpha      float64
	Font       FontState
	Format     FormatState
	Colors     ColorSet
	Runs       []TextRun
}

// Process resolves every active Dialogue event at tCs into an ordered IR
// layer list, per the pipeline's six-step contract: selection, style
// resolution, tag expansion, animation sampling, karaoke coloring, and
// layer emission. registry may be nil.
func Process(script *ast.Script, tCs assutil.Centiseconds, registry *plugin.ExtensionRegistry) []Layer {
	events := ActiveEvents(script, tCs)
	layers := make([]Layer, 0, len(events))
	for _, ev := range events {
		layers = append(layers, buildLayer(script, ev, tCs, registry))
	}
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].LayerIndex < layers[j].LayerIndex })
	return layers
}

func buildLayer(script *ast.Script, ev *ast.Event, tCs assutil.Centiseconds, registry *plugin.ExtensionRegistry) Layer {
	baseStyle := ResolveBaseStyle(script, ev)
	p, parsed := ExpandTags(script, ev, baseStyle, registry)

	start, _ := ev.Start(script)
	end, _ := ev.End(script)
	duration := end - start
	relT := tCs - start

	live := p
	numerics, colors := Sample(p.Animations, relT)
	for _, n := range numerics {
		if _, isAlpha := alphaTags[n.Tag]; isAlpha {
			setAlphaField(&live, n.Tag, clampByte(n.Value))
			continue
		}
		setNumericField(&live, n.Tag, n.Value)
	}
	for _, c := range colors {
		setColorField(&live, c.Tag, c.Value)
		live.Colors = withChannelAlpha(live.Colors, c.Tag, c.Value.A)
	}

	pos := resolvedPosition(p, relT, duration)
	alpha := SampleFade(p.Fade, relT, duration)

	layer := Layer{
		LayerIndex: ev.Layer,
		Position:   pos,
		Transform: Transform{
			RotateX: live.Font.AngleX, RotateY: live.Font.AngleY, RotateZ: live.Font.AngleZ,
			ShearX: live.Font.ShearX, ShearY: live.Font.ShearY,
			ScaleX: live.Font.ScaleX, ScaleY: live.Font.ScaleY,
			Origin: p.Origin,
		},
		Clip:   p.Clip,
		Alpha:  alpha,
		Font:   live.Font,
		Format: live.Format,
		Colors: live.Colors,
		Runs:   buildRuns(live, parsed.Plain, relT),
	}
	return layer
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func withChannelAlpha(c ColorSet, tag string, a uint8) ColorSet {
	switch tag {
	case "1c":
		c.Primary.A = a
	case "2c":
		c.Secondary.A = a
	case "3c":
		c.Outline.A = a
	case "4c":
		c.Shadow.A = a
	}
	return c
}

// resolvedPosition reports an event's on-screen anchor at relT: a \move
// directive's interpolated point takes priority over a fixed \pos, which
// in turn takes priority over the style's own default alignment-derived
// position (left to the shaper, which has the measured text box).
func resolvedPosition(base ProcessedTags, relT, duration assutil.Centiseconds) Position {
	if base.Movement != nil {
		return SampleMovement(*base.Movement, relT, duration)
	}
	if base.Position != nil {
		return *base.Position
	}
	return Position{}
}

// buildRuns splits an event's shaped plain text into karaoke-colored runs
// when the event has karaoke tags, or a single run in the event's
// (possibly animated) primary color otherwise.
func buildRuns(live ProcessedTags, plain string, relT assutil.Centiseconds) []TextRun {
	if len(live.Karaoke) == 0 {
		return []TextRun{{Text: plain, Color: live.Colors.Primary}}
	}
	states := ActiveKaraoke(live.Karaoke, relT)
	runs := make([]TextRun, 0, len(live.Karaoke))
	for i, syl := range live.Karaoke {
		color := KaraokeColor(syl.Kind, live.Colors.Primary, live.Colors.Secondary, states[i])
		runs = append(runs, TextRun{Text: syl.Text, Color: color})
	}
	return runs
}
