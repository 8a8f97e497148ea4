package raster

import (
	"image"

	"golang.org/x/image/vector"
)

// Clip is a rasterized scissor mask: Alpha[y*Width+x] is the 0..255
// coverage at that pixel, 255 meaning fully inside the clip region. A
// zero-value Clip (nil Alpha) means "no clip", matching the common case
// where most events carry none.
type Clip struct {
	Width, Height int
	Alpha         []byte
	Inverse       bool
}

// covers reports the 0..1 coverage multiplier a clip contributes at
// (x, y); a nil/empty Clip always covers fully.
func (c *Clip) covers(x, y int) float64 {
	if c == nil || len(c.Alpha) == 0 {
		return 1
	}
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		if c.Inverse {
			return 1
		}
		return 0
	}
	a := float64(c.Alpha[y*c.Width+x]) / 255
	if c.Inverse {
		return 1 - a
	}
	return a
}

// NewRectClip builds an axis-aligned rectangular clip (ASS's \clip(x1,
// y1,x2,y2) / \iclip(x1,y1,x2,y2) form) at frame resolution.
func NewRectClip(width, height int, x1, y1, x2, y2 float64, inverse bool) *Clip {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	alpha := make([]byte, width*height)
	minX, maxX := clampInt(int(x1), 0, width), clampInt(int(x2), 0, width)
	minY, maxY := clampInt(int(y1), 0, height), clampInt(int(y2), 0, height)
	for y := minY; y < maxY; y++ {
		row := y * width
		for x := minX; x < maxX; x++ {
			alpha[row+x] = 255
		}
	}
	return &Clip{Width: width, Height: height, Alpha: alpha, Inverse: inverse}
}

// NewDrawingClip builds a clip from an ASS drawing-command string (the
// \clip(<scale>,<commands>) / \iclip(<scale>,<commands>) form), replaying
// it through a vector.Rasterizer to get anti-aliased polygon coverage.
func NewDrawingClip(width, height int, commands string, m Matrix, inverse bool) *Clip {
	z := vector.NewRasterizer(width, height)
	DrawPath(z, commands, m)
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return &Clip{Width: width, Height: height, Alpha: mask.Pix, Inverse: inverse}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
