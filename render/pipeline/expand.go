package pipeline

import (
	"strings"

	"github.com/assforge/ass/analyzer"
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
	"github.com/assforge/ass/plugin"
)

// interpolableNumeric is the set of tag names \t may animate as a plain
// float (everything else animatable is a color, handled separately).
var interpolableNumeric = map[string]bool{
	"fscx": true, "fscy": true, "fsp": true, "fs": true,
	"frz": true, "frx": true, "fry": true, "fax": true, "fay": true,
	"bord": true, "xbord": true, "ybord": true,
	"shad": true, "xshad": true, "yshad": true,
	"blur": true, "be": true,
}

// "c" is the bare alias for "1c" ASS scripts commonly use.
var colorTags = map[string]bool{"c": true, "1c": true, "2c": true, "3c": true, "4c": true}
var alphaTags = map[string]bool{"1a": true, "2a": true, "3a": true, "4a": true, "alpha": true}

// ExpandTags resolves an event's cumulative tag state in text order,
// starting from its base style, per the pipeline's step-3 contract.
// registry may be nil; unrecognized tags are then simply ignored, as the
// spec requires for tags with no handler.
func ExpandTags(script *ast.Script, ev *ast.Event, baseStyle ast.Style, registry *plugin.ExtensionRegistry) (ProcessedTags, analyzer.EventText) {
	parsed := analyzer.ScanOverrides(ev.Text(script))

	p := ProcessedTags{
		Colors: ColorSet{
			Primary:   baseStyle.Primary,
			Secondary: baseStyle.Secondary,
			Outline:   baseStyle.Outline,
			Shadow:    baseStyle.Shadow,
		},
		Font: FontState{
			Name:    baseStyle.Fontname,
			Size:    baseStyle.Fontsize,
			ScaleX:  baseStyle.ScaleX,
			ScaleY:  baseStyle.ScaleY,
			Spacing: baseStyle.Spacing,
			AngleZ:  baseStyle.Angle,
		},
		Format: FormatState{
			Bold:      baseStyle.Bold,
			Italic:    baseStyle.Italic,
			Underline: baseStyle.Underline,
			StrikeOut: baseStyle.StrikeOut,
			BorderX:   baseStyle.OutlineWidth,
			BorderY:   baseStyle.OutlineWidth,
			ShadowX:   baseStyle.ShadowDepth,
			ShadowY:   baseStyle.ShadowDepth,
			Alignment: baseStyle.Alignment,
			MarginL:   firstNonZero(ev.MarginL, baseStyle.MarginL),
			MarginR:   firstNonZero(ev.MarginR, baseStyle.MarginR),
			MarginV:   firstNonZero(ev.MarginV, baseStyle.MarginV),
		},
	}
	if ws, ok := script.ScriptInfoValue("WrapStyle"); ok {
		if n, ok := assutil.ParseInt(ws); ok {
			p.Format.WrapStyle = n
		}
	}

	for _, tag := range parsed.Tags {
		applyTag(script, ev, &p, tag, registry)
	}

	var karaokeOffset int
	for _, seg := range analyzer.ScanKaraoke(ev.Text(script)) {
		// \k's argument is already in centiseconds.
		dur, _ := assutil.ParseInt(seg.Args)
		p.Karaoke = append(p.Karaoke, KaraokeSyllable{
			Kind:          karaokeKindOf(seg.TagName),
			DurationCs:    dur,
			StartOffsetCs: karaokeOffset,
			Text:          seg.Text,
		})
		karaokeOffset += dur
	}
	return p, parsed
}

// resetStyle implements \r / \r<name>: the colors, font, and formatting
// override state revert to the named style (or the event's own base style
// if name is empty or unresolved), while position, movement, clip, fade,
// and karaoke state are left untouched since those are not style
// properties.
func resetStyle(script *ast.Script, p *ProcessedTags, name, eventStyle string) {
	lookup := name
	if lookup == "" {
		lookup = eventStyle
	}
	st, ok := script.FindStyle(lookup)
	if !ok {
		st, ok = script.FindStyle(eventStyle)
	}
	if !ok {
		st, ok = script.FindStyle(ast.DefaultStyleName)
	}
	if !ok {
		return
	}
	p.ResetTo = name
	p.Colors = ColorSet{Primary: st.Primary, Secondary: st.Secondary, Outline: st.Outline, Shadow: st.Shadow}
	p.Font.Name = st.Fontname
	p.Font.Size = st.Fontsize
	p.Font.ScaleX = st.ScaleX
	p.Font.ScaleY = st.ScaleY
	p.Font.Spacing = st.Spacing
	p.Font.AngleZ = st.Angle
	p.Font.AngleX, p.Font.AngleY, p.Font.ShearX, p.Font.ShearY = 0, 0, 0, 0
	p.Format.Bold = st.Bold
	p.Format.Italic = st.Italic
	p.Format.Underline = st.Underline
	p.Format.StrikeOut = st.StrikeOut
	p.Format.BorderX = st.OutlineWidth
	p.Format.BorderY = st.OutlineWidth
	p.Format.ShadowX = st.ShadowDepth
	p.Format.ShadowY = st.ShadowDepth
	p.Format.Alignment = st.Alignment
	p.Format.Blur = 0
	p.Format.EdgeBlur = 0
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func karaokeKindOf(name string) KaraokeKind {
	switch name {
	case "k":
		return KaraokeBasic
	case "K", "kf":
		return KaraokeFill
	case "ko":
		return KaraokeOutline
	case "kt":
		return KaraokeSweep
	default:
		return KaraokeBasic
	}
}

// applyTag mutates p in place for one non-animated override tag. \t is
// handled separately since it both applies its target value immediately
// (the end-of-animation state) and records an Animation for sampling.
func applyTag(script *ast.Script, ev *ast.Event, p *ProcessedTags, tag analyzer.OverrideTag, registry *plugin.ExtensionRegistry) {
	switch {
	case tag.Name == "t":
		applyAnimation(script, ev, p, tag)
		return
	case tag.Name == "pos":
		if x, y, ok := parsePair(tag.Args); ok {
			p.Position = &Position{X: x, Y: y}
		}
		return
	case tag.Name == "org":
		if x, y, ok := parsePair(tag.Args); ok {
			p.Origin = &Position{X: x, Y: y}
		}
		return
	case tag.Name == "move":
		if mv, ok := parseMove(tag.Args); ok {
			p.Movement = &mv
		}
		return
	case tag.Name == "fad":
		if a, b, ok := parseIntPair(tag.Args); ok {
			p.Fade = &Fade{Simple: true, InCs: a, OutCs: b}
		}
		return
	case tag.Name == "fade":
		if f, ok := parseFade(tag.Args); ok {
			p.Fade = &f
		}
		return
	case tag.Name == "clip":
		p.Clip = parseClip(tag.Args, false)
		return
	case tag.Name == "iclip":
		p.Clip = parseClip(tag.Args, true)
		return
	case tag.Name == "r":
		resetStyle(script, p, tag.Args, ev.Style)
		return
	case tag.Name == "p":
		if n, ok := assutil.ParseInt(tag.Args); ok {
			p.DrawLevel = n
		}
		return
	case tag.Name == "b":
		p.Format.Bold = tag.Args != "0"
		return
	case tag.Name == "i":
		p.Format.Italic = tag.Args != "0"
		return
	case tag.Name == "u":
		p.Format.Underline = tag.Args != "0"
		return
	case tag.Name == "s":
		p.Format.StrikeOut = tag.Args != "0"
		return
	case tag.Name == "an":
		if n, ok := assutil.ParseInt(tag.Args); ok {
			p.Format.Alignment = ast.Alignment(n)
		}
		return
	case tag.Name == "fn":
		p.Font.Name = tag.Args
		return
	case tag.Name == "fe":
		if n, ok := assutil.ParseInt(tag.Args); ok {
			p.Font.Encoding = n
		}
		return
	case tag.Name == "be":
		if n, ok := assutil.ParseInt(tag.Args); ok {
			p.Format.EdgeBlur = n
			if p.Format.EdgeBlur > 10 {
				p.Format.EdgeBlur = 10
			}
		}
		return
	case colorTags[tag.Name]:
		applyColorTag(p, tag.Name, tag.Args)
		return
	case alphaTags[tag.Name]:
		applyAlphaTag(p, tag.Name, tag.Args)
		return
	case interpolableNumeric[tag.Name]:
		applyNumericTag(p, tag.Name, tag.Args)
		return
	}

	if registry == nil {
		return
	}
	if handler, ok := registry.Lookup(tag.Name); ok {
		parsedArgs, err := handler.ParseArgs(tag.Args)
		if err == nil {
			handler.Apply(p, parsedArgs)
		}
	}
}

func applyColorTag(p *ProcessedTags, name, args string) {
	c, ok := assutil.ParseColor(args)
	if !ok {
		return
	}
	switch name {
	case "c", "1c":
		p.Colors.Primary = withRGB(p.Colors.Primary, c)
	case "2c":
		p.Colors.Secondary = withRGB(p.Colors.Secondary, c)
	case "3c":
		p.Colors.Outline = withRGB(p.Colors.Outline, c)
	case "4c":
		p.Colors.Shadow = withRGB(p.Colors.Shadow, c)
	}
}

func withRGB(base, c assutil.Color) assutil.Color {
	return assutil.Color{R: c.R, G: c.G, B: c.B, A: base.A}
}

func applyAlphaTag(p *ProcessedTags, name, args string) {
	c, ok := assutil.ParseColor("&H" + padAlpha(args))
	if !ok {
		return
	}
	setAlphaField(p, name, c.A)
}

// setAlphaField writes an already-resolved alpha byte into the
// ProcessedTags color channel named by a tag name, shared the same way
// setNumericField is between parsing and animation folding.
func setAlphaField(p *ProcessedTags, name string, a uint8) {
	switch name {
	case "alpha":
		p.Colors.Primary.A, p.Colors.Secondary.A, p.Colors.Outline.A, p.Colors.Shadow.A = a, a, a, a
	case "1a":
		p.Colors.Primary.A = a
	case "2a":
		p.Colors.Secondary.A = a
	case "3a":
		p.Colors.Outline.A = a
	case "4a":
		p.Colors.Shadow.A = a
	}
}

// setColorField writes an already-resolved RGB color into the
// ProcessedTags channel named by a tag name, preserving that channel's
// existing alpha (colors and alpha are independent tags in ASS).
func setColorField(p *ProcessedTags, name string, c assutil.Color) {
	switch name {
	case "c", "1c":
		p.Colors.Primary = withRGB(p.Colors.Primary, c)
	case "2c":
		p.Colors.Secondary = withRGB(p.Colors.Secondary, c)
	case "3c":
		p.Colors.Outline = withRGB(p.Colors.Outline, c)
	case "4c":
		p.Colors.Shadow = withRGB(p.Colors.Shadow, c)
	}
}

// padAlpha turns a bare "&HAA&"/"AA" alpha literal into an 8-digit
// AABBGGRR string ParseColor accepts, since ParseColor otherwise expects
// a full color literal.
func padAlpha(args string) string {
	s := strings.Trim(args, "& \t")
	if len(s) < 2 {
		return "000000" + "00"
	}
	if len(s) < 8 {
		return s + strings.Repeat("0", 8-len(s))
	}
	return s
}

func applyNumericTag(p *ProcessedTags, name, args string) {
	v, ok := assutil.ParseFloat(args)
	if !ok {
		return
	}
	setNumericField(p, name, v)
}

// setNumericField writes an already-resolved float value into the
// ProcessedTags field named by a tag name. Shared by applyNumericTag
// (parses the tag's raw args first) and the animation-sampling fold step
// (the value is already an interpolated float, nothing to parse).
func setNumericField(p *ProcessedTags, name string, v float64) {
	switch name {
	case "fscx":
		p.Font.ScaleX = v
	case "fscy":
		p.Font.ScaleY = v
	case "fsp":
		p.Font.Spacing = v
	case "fs":
		p.Font.Size = v
	case "frz":
		p.Font.AngleZ = v
	case "frx":
		p.Font.AngleX = v
	case "fry":
		p.Font.AngleY = v
	case "fax":
		p.Font.ShearX = v
	case "fay":
		p.Font.ShearY = v
	case "bord":
		p.Format.BorderX, p.Format.BorderY = v, v
	case "xbord":
		p.Format.BorderX = v
	case "ybord":
		p.Format.BorderY = v
	case "shad":
		p.Format.ShadowX, p.Format.ShadowY = v, v
	case "xshad":
		p.Format.ShadowX = v
	case "yshad":
		p.Format.ShadowY = v
	case "blur":
		p.Format.Blur = v
	}
}

func parsePair(args string) (float64, float64, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	x, ok1 := assutil.ParseFloat(strings.TrimSpace(parts[0]))
	y, ok2 := assutil.ParseFloat(strings.TrimSpace(parts[1]))
	return x, y, ok1 && ok2
}

func parseIntPair(args string) (int, int, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, ok1 := assutil.ParseInt(strings.TrimSpace(parts[0]))
	b, ok2 := assutil.ParseInt(strings.TrimSpace(parts[1]))
	return a, b, ok1 && ok2
}

func parseFloats(args string) ([]float64, bool) {
	parts := strings.Split(args, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, ok := assutil.ParseFloat(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func parseMove(args string) (Movement, bool) {
	vals, ok := parseFloats(args)
	if !ok || (len(vals) != 4 && len(vals) != 6) {
		return Movement{}, false
	}
	mv := Movement{X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3]}
	if len(vals) == 6 {
		mv.T1 = assutil.Centiseconds(vals[4])
		mv.T2 = assutil.Centiseconds(vals[5])
	}
	return mv, true
}

// parseFade reads \fade(a1,a2,a3,t1,t2,t3,t4): every argument, including
// t1..t4, is used as-is. The pipeline's sampling rule (C7) compares tag
// times directly against the event-relative time in centiseconds, with
// no unit conversion.
func parseFade(args string) (Fade, bool) {
	vals, ok := parseFloats(args)
	if !ok || len(vals) != 7 {
		return Fade{}, false
	}
	return Fade{
		Complex: true,
		A1:      int(vals[0]), A2: int(vals[1]), A3: int(vals[2]),
		T1: int(vals[3]), T2: int(vals[4]), T3: int(vals[5]), T4: int(vals[6]),
	}, true
}

func parseClip(args string, inverse bool) *ClipRegion {
	if vals, ok := parseFloats(args); ok && len(vals) == 4 {
		return &ClipRegion{IsRect: true, X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3], Inverse: inverse}
	}
	// Scale prefix form \clip(scale,drawing) or bare drawing commands.
	if idx := strings.Index(args, ","); idx >= 0 {
		if _, ok := assutil.ParseInt(strings.TrimSpace(args[:idx])); ok {
			return &ClipRegion{Drawing: args[idx+1:], Inverse: inverse}
		}
	}
	return &ClipRegion{Drawing: args, Inverse: inverse}
}
