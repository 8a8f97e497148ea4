// Package pipeline implements the render pipeline (C7): for a requested
// (script, time) it selects active events, resolves cumulative style/tag
// state in text order, expands animations and karaoke, and emits an
// intermediate-representation layer list for the rasterizer (C9) to
// consume. The pipeline is a pure function of its inputs, the way the
// shaper (C8) is specified to be: no cross-call state survives a Process
// call except what a caller chooses to cache keyed by the script's
// generation.
package pipeline

import (
	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/ast"
)

// Position is a 2D point in script coordinates (PlayResX/PlayResY space).
type Position struct{ X, Y float64 }

// Movement is the resolved state of a \move tag: interpolate Position
// between (X1,Y1) and (X2,Y2) over [T1,T2] (event-relative centiseconds).
type Movement struct {
	X1, Y1, X2, Y2 float64
	T1, T2         assutil.Centiseconds
}

// ColorSet is the four color channels a style or tag override carries.
type ColorSet struct {
	Primary, Secondary, Outline, Shadow assutil.Color
}

// FontState is the cumulative font-related override state.
type FontState struct {
	Name                     string
	Size                     float64
	ScaleX, ScaleY           float64
	Spacing                  float64
	AngleX, AngleY, AngleZ   float64 // \frx, \fry, \frz
	ShearX, ShearY           float64 // \fax, \fay
	Encoding                 int
}

// FormatState is the cumulative formatting-related override state.
type FormatState struct {
	Bold, Italic, Underline, StrikeOut bool
	BorderX, BorderY                   float64
	ShadowX, ShadowY                   float64
	Blur                               float64
	EdgeBlur                           int
	Alignment                          ast.Alignment
	WrapStyle                          int
	MarginL, MarginR, MarginV          int
}

// ClipRegion is a resolved \clip/\iclip region: either a rectangle or a
// drawing-command string, never both.
type ClipRegion struct {
	IsRect         bool
	X1, Y1, X2, Y2 float64
	Drawing        string
	Inverse        bool
}

// Fade is a resolved \fad or \fade envelope. All timing fields are
// event-relative centiseconds, the tag's raw arguments used as-is.
type Fade struct {
	// Simple \fad(a,b): fade in over InCs, fade out over OutCs.
	Simple bool
	InCs   int
	OutCs  int
	// Complex \fade(a1,a2,a3,t1,t2,t3,t4): three-stage alpha envelope.
	Complex        bool
	A1, A2, A3     int
	T1, T2, T3, T4 int
}

// AnimatedNumeric is one numeric property \t interpolates.
type AnimatedNumeric struct {
	Tag      string
	From, To float64
}

// AnimatedColor is one color-channel property \t interpolates.
type AnimatedColor struct {
	Tag      string
	From, To assutil.Color
}

// Animation is one \t(...) directive's resolved interpolation window.
type Animation struct {
	T1, T2   assutil.Centiseconds
	Accel    float64
	Numerics []AnimatedNumeric
	Colors   []AnimatedColor
}

// KaraokeKind selects which of the four karaoke recoloring behaviors a
// syllable's tag requests.
type KaraokeKind int

const (
	KaraokeBasic   KaraokeKind = iota // \k: color switches at the syllable boundary
	KaraokeFill                      // \K, \kf: fill progressively across the syllable
	KaraokeOutline                   // \ko: outline color swaps at the boundary
	KaraokeSweep                     // \kt: blends progressively, the same as Fill
)

// KaraokeSyllable is one \k-delimited run of text within an event.
type KaraokeSyllable struct {
	Kind          KaraokeKind
	DurationCs    int
	StartOffsetCs int // cumulative offset from the event's own start
	Text          string
}

// ProcessedTags is the fully-resolved per-event tag state C7 step 3
// produces: cumulative overrides applied in text order, plus the
// animations and karaoke syllables a later sampling step consumes.
type ProcessedTags struct {
	Position  *Position
	Origin    *Position
	Movement  *Movement
	Colors    ColorSet
	Font      FontState
	Format    FormatState
	Clip      *ClipRegion
	Fade      *Fade
	DrawLevel int
	Karaoke   []KaraokeSyllable
	Animations []Animation
	ResetTo   string // named style a trailing \r requested, "" if none

	custom map[string]any
}

// SetCustom implements plugin.IRState, letting a registered TagHandler
// stash arbitrary per-event state without this package depending on the
// plugin package's handler types.
func (p *ProcessedTags) SetCustom(key string, value any) {
	if p.custom == nil {
		p.custom = make(map[string]any)
	}
	p.custom[key] = value
}

// Custom returns a value a TagHandler previously stored via SetCustom.
func (p *ProcessedTags) Custom(key string) (any, bool) {
	v, ok := p.custom[key]
	return v, ok
}
