package ast

import "github.com/assforge/ass/assutil"

// BorderStyle is the ASS BorderStyle field: 1 = outline+shadow, 3 = opaque box.
type BorderStyle int

const (
	BorderOutline BorderStyle = 1
	BorderBox     BorderStyle = 3
)

// Alignment is the ASS numpad alignment (1-9).
type Alignment int

// DefaultStyleName is the built-in fallback style used when an Event's
// style reference does not resolve.
const DefaultStyleName = "Default"

// Style is one row of a [V4+ Styles] section.
type Style struct {
	Name     string
	Fontname string
	Fontsize float64

	Primary   assutil.Color
	Secondary assutil.Color
	Outline   assutil.Color
	Shadow    assutil.Color

	Bold      bool
	Italic    bool
	Underline bool
	StrikeOut bool

	ScaleX  float64
	ScaleY  float64
	Spacing float64
	Angle   float64

	BorderStyle  BorderStyle
	OutlineWidth float64
	ShadowDepth  float64
	Alignment    Alignment

	MarginL, MarginR, MarginV int
	Encoding                  int

	Span assutil.Span
}

// DefaultStyle returns the built-in style used to render an Event whose
// style reference does not resolve against any declared Style.
func DefaultStyle() Style {
	return Style{
		Name:         DefaultStyleName,
		Fontname:     "Arial",
		Fontsize:     48,
		Primary:      assutil.Color{R: 255, G: 255, B: 255, A: 255},
		Secondary:    assutil.Color{R: 255, G: 0, B: 0, A: 255},
		Outline:      assutil.Color{R: 0, G: 0, B: 0, A: 255},
		Shadow:       assutil.Color{R: 0, G: 0, B: 0, A: 255},
		ScaleX:       100,
		ScaleY:       100,
		BorderStyle:  BorderOutline,
		OutlineWidth: 2,
		ShadowDepth:  2,
		Alignment:    2,
		Encoding:     1,
	}
}

// DefaultStyleFormat is the field order used when a [V4+ Styles] section
// has no Format: line.
var DefaultStyleFormat = []string{
	"Name", "Fontname", "Fontsize",
	"PrimaryColour", "SecondaryColour", "OutlineColour", "BackColour",
	"Bold", "Italic", "Underline", "StrikeOut",
	"ScaleX", "ScaleY", "Spacing", "Angle",
	"BorderStyle", "Outline", "Shadow", "Alignment",
	"MarginL", "MarginR", "MarginV", "Encoding",
}
