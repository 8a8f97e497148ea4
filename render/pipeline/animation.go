package pipeline

import (
	"math"
	"strings"

	"github.com/assforge/ass/analyzer"
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
)

// splitAnimationArgs splits a \t tag's argument text into its leading
// numeric parameters (0-3 of t1, t2, accel) and the tag-list text that
// follows, found as everything from the first backslash onward.
func splitAnimationArgs(args string) (numeric []string, tagText string) {
	idx := strings.IndexByte(args, '\\')
	if idx < 0 {
		return splitNonEmpty(args), ""
	}
	head := strings.TrimRight(args[:idx], ", \t")
	tagText = args[idx:]
	if head == "" {
		return nil, tagText
	}
	return splitNonEmpty(head), tagText
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// applyAnimation resolves one \t(...) directive: it applies the tag
// list's end-state immediately (so the cumulative ProcessedTags reflects
// the post-animation value, as every other tag application does) and
// records an Animation snapshotting each interpolated field's before/after
// value for a later Sample call.
func applyAnimation(script *ast.Script, ev *ast.Event, p *ProcessedTags, tag analyzer.OverrideTag) {
	numericParams, tagText := splitAnimationArgs(tag.Args)

	var duration assutil.Centiseconds
	if start, ok := ev.Start(script); ok {
		if end, ok := ev.End(script); ok && end > start {
			duration = end - start
		}
	}

	// t1/t2, like every other tag timing argument (\move, \fad, \fade),
	// are used directly as centiseconds with no unit conversion.
	t1, t2, accel := assutil.Centiseconds(0), duration, 1.0
	switch len(numericParams) {
	case 1:
		if v, ok := assutil.ParseFloat(numericParams[0]); ok {
			accel = v
		}
	case 2:
		if v, ok := assutil.ParseInt(numericParams[0]); ok {
			t1 = assutil.Centiseconds(v)
		}
		if v, ok := assutil.ParseInt(numericParams[1]); ok {
			t2 = assutil.Centiseconds(v)
		}
	case 3:
		if v, ok := assutil.ParseInt(numericParams[0]); ok {
			t1 = assutil.Centiseconds(v)
		}
		if v, ok := assutil.ParseInt(numericParams[1]); ok {
			t2 = assutil.Centiseconds(v)
		}
		if v, ok := assutil.ParseFloat(numericParams[2]); ok {
			accel = v
		}
	}

	subTags, _ := analyzer.ParseTagSequence(tagText)
	anim := Animation{T1: t1, T2: t2, Accel: accel}
	for _, st := range subTags {
		switch {
		case colorTags[st.Name]:
			from := colorFieldOf(p, st.Name)
			applyColorTag(p, st.Name, st.Args)
			to := colorFieldOf(p, st.Name)
			anim.Colors = append(anim.Colors, AnimatedColor{Tag: st.Name, From: from, To: to})
		case alphaTags[st.Name]:
			from := float64(alphaFieldOf(p, st.Name))
			applyAlphaTag(p, st.Name, st.Args)
			to := float64(alphaFieldOf(p, st.Name))
			anim.Numerics = append(anim.Numerics, AnimatedNumeric{Tag: st.Name, From: from, To: to})
		case interpolableNumeric[st.Name]:
			from := numericFieldOf(p, st.Name)
			applyNumericTag(p, st.Name, st.Args)
			to := numericFieldOf(p, st.Name)
			anim.Numerics = append(anim.Numerics, AnimatedNumeric{Tag: st.Name, From: from, To: to})
		default:
			applyTag(script, ev, p, st, nil)
		}
	}
	p.Animations = append(p.Animations, anim)
}

func colorFieldOf(p *ProcessedTags, name string) assutil.Color {
	switch name {
	case "c", "1c":
		return p.Colors.Primary
	case "2c":
		return p.Colors.Secondary
	case "3c":
		return p.Colors.Outline
	case "4c":
		return p.Colors.Shadow
	default:
		return assutil.Color{}
	}
}

func alphaFieldOf(p *ProcessedTags, name string) uint8 {
	switch name {
	case "1a":
		return p.Colors.Primary.A
	case "2a":
		return p.Colors.Secondary.A
	case "3a":
		return p.Colors.Outline.A
	case "4a":
		return p.Colors.Shadow.A
	case "alpha":
		return p.Colors.Primary.A
	default:
		return 255
	}
}

func numericFieldOf(p *ProcessedTags, name string) float64 {
	switch name {
	case "fscx":
		return p.Font.ScaleX
	case "fscy":
		return p.Font.ScaleY
	case "fsp":
		return p.Font.Spacing
	case "fs":
		return p.Font.Size
	case "frz":
		return p.Font.AngleZ
	case "frx":
		return p.Font.AngleX
	case "fry":
		return p.Font.AngleY
	case "fax":
		return p.Font.ShearX
	case "fay":
		return p.Font.ShearY
	case "bord":
		return p.Format.BorderX
	case "xbord":
		return p.Format.BorderX
	case "ybord":
		return p.Format.BorderY
	case "shad":
		return p.Format.ShadowX
	case "xshad":
		return p.Format.ShadowX
	case "yshad":
		return p.Format.ShadowY
	case "blur":
		return p.Format.Blur
	default:
		return 0
	}
}

// SampledValue is a single interpolated numeric result at one instant.
type SampledValue struct {
	Tag   string
	Value float64
}

// SampledColor is a single interpolated color result at one instant.
type SampledColor struct {
	Tag   string
	Value assutil.Color
}

// progress computes u' = u^accel for t within [t1,t2], clamped to [0,1]
// before t1 and after t2, per the animation sampling rule.
func progress(t, t1, t2 assutil.Centiseconds, accel float64) float64 {
	if t2 <= t1 {
		if t < t1 {
			return 0
		}
		return 1
	}
	u := float64(t-t1) / float64(t2-t1)
	if u < 0 {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	if accel != 1 {
		u = math.Pow(u, accel)
	}
	return u
}

func lerp(a, b, u float64) float64 { return a + (b-a)*u }

func lerpByte(a, b uint8, u float64) uint8 {
	v := lerp(float64(a), float64(b), u)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

// Sample evaluates every Animation active at eventRelativeT (centiseconds
// since the event's own start) and returns the interpolated numeric and
// color values, keyed by tag name, for a caller (the rasterizer prep
// step) to fold over the cumulative ProcessedTags state.
func Sample(animations []Animation, eventRelativeT assutil.Centiseconds) ([]SampledValue, []SampledColor) {
	var numerics []SampledValue
	var colors []SampledColor
	for _, anim := range animations {
		u := progress(eventRelativeT, anim.T1, anim.T2, anim.Accel)
		for _, n := range anim.Numerics {
			numerics = append(numerics, SampledValue{Tag: n.Tag, Value: lerp(n.From, n.To, u)})
		}
		for _, c := range anim.Colors {
			colors = append(colors, SampledColor{Tag: c.Tag, Value: assutil.Color{
				R: lerpByte(c.From.R, c.To.R, u),
				G: lerpByte(c.From.G, c.To.G, u),
				B: lerpByte(c.From.B, c.To.B, u),
				A: lerpByte(c.From.A, c.To.A, u),
			}})
		}
	}
	return numerics, colors
}

// SampleMovement interpolates a \move directive's position at
// eventRelativeT, using the move's own T1/T2 window (or [0, duration] if
// unset).
func SampleMovement(mv Movement, eventRelativeT, duration assutil.Centiseconds) Position {
	t2 := mv.T2
	if t2 == 0 {
		t2 = duration
	}
	u := progress(eventRelativeT, mv.T1, t2, 1)
	return Position{X: lerp(mv.X1, mv.X2, u), Y: lerp(mv.Y1, mv.Y2, u)}
}

// SampleFade returns the alpha multiplier in [0,1] a \fad/\fade directive
// contributes at eventRelativeT within an event of the given duration.
func SampleFade(f *Fade, eventRelativeT, duration assutil.Centiseconds) float64 {
	if f == nil {
		return 1
	}
	t := int(eventRelativeT)
	d := int(duration)
	switch {
	case f.Simple:
		in := clampRatio(t, 0, f.InCs)
		out := clampRatio(d-t, 0, f.OutCs)
		return math.Min(in, out)
	case f.Complex:
		return sampleComplexFade(*f, t)
	default:
		return 1
	}
}

func clampRatio(num, lo, denom int) float64 {
	if denom <= 0 {
		return 1
	}
	v := num
	if v < lo {
		v = lo
	}
	if v > denom {
		v = denom
	}
	return float64(v) / float64(denom)
}

// sampleComplexFade evaluates \fade(a1,a2,a3,t1,t2,t3,t4): alpha is a1
// before t1, ramps to a2 by t2, holds a2 until t3, ramps to a3 by t4, and
// is a3 after. Alpha values here are already ASS's 0(opaque)-255(clear)
// convention; the result is converted to a 0..1 opacity multiplier.
func sampleComplexFade(f Fade, t int) float64 {
	var alpha int
	switch {
	case t <= f.T1:
		alpha = f.A1
	case t <= f.T2:
		alpha = lerpInt(f.A1, f.A2, t, f.T1, f.T2)
	case t <= f.T3:
		alpha = f.A2
	case t <= f.T4:
		alpha = lerpInt(f.A2, f.A3, t, f.T3, f.T4)
	default:
		alpha = f.A3
	}
	return 1 - float64(alpha)/255
}

func lerpInt(a, b, t, t0, t1 int) int {
	if t1 <= t0 {
		return b
	}
	u := float64(t-t0) / float64(t1-t0)
	return int(lerp(float64(a), float64(b), u) + 0.5)
}
