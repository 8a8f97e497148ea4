package raster

import (
	"strconv"
	"strings"

	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"
)

// point is one drawing-command coordinate pair, always in script (not
// device) space.
type point struct{ X, Y float32 }

// DrawPath replays an ASS drawing-command string (the \p<N> argument, or
// a \clip/\iclip bare-drawing argument) onto a vector.Rasterizer already
// sized for the destination frame, applying m to every coordinate first.
// Supported commands: m/n (move), l (line), b (cubic Bezier, 3 points per
// segment), c (close the current contour). s/p (uniform b-spline and its
// extension) are accepted but rendered as straight line segments between
// their control points rather than fitted splines — drawing-mode b-spline
// commands are rare in practice and a full spline-to-bezier conversion
// was not worth the added surface for this renderer.
func DrawPath(z *vector.Rasterizer, commands string, m Matrix) {
	toks := tokenize(commands)
	i := 0
	var cur, start point
	haveCur := false
	nextPoint := func() (point, bool) {
		if i+1 >= len(toks) {
			return point{}, false
		}
		x, ok1 := strconv.ParseFloat(toks[i], 64)
		y, ok2 := strconv.ParseFloat(toks[i+1], 64)
		i += 2
		if !ok1 || !ok2 {
			return point{}, false
		}
		dx, dy := m.Apply(x, y)
		return point{X: float32(dx), Y: float32(dy)}, true
	}

	for i < len(toks) {
		cmd := toks[i]
		i++
		switch cmd {
		case "m", "n":
			p, ok := nextPoint()
			if !ok {
				return
			}
			if haveCur {
				z.ClosePath()
			}
			z.MoveTo(f32.Vec2{p.X, p.Y})
			cur, start, haveCur = p, p, true
		case "l":
			for {
				p, ok := nextPoint()
				if !ok {
					break
				}
				z.LineTo(f32.Vec2{p.X, p.Y})
				cur = p
				if !isCoordNext(toks, i) {
					break
				}
			}
		case "b":
			for {
				p1, ok1 := nextPoint()
				p2, ok2 := nextPoint()
				p3, ok3 := nextPoint()
				if !ok1 || !ok2 || !ok3 {
					break
				}
				z.CubeTo(f32.Vec2{p1.X, p1.Y}, f32.Vec2{p2.X, p2.Y}, f32.Vec2{p3.X, p3.Y})
				cur = p3
				if !isCoordNext(toks, i) {
					break
				}
			}
		case "s", "p":
			for {
				p, ok := nextPoint()
				if !ok {
					break
				}
				z.LineTo(f32.Vec2{p.X, p.Y})
				cur = p
				if !isCoordNext(toks, i) {
					break
				}
			}
		case "c":
			if haveCur {
				z.LineTo(f32.Vec2{start.X, start.Y})
				z.ClosePath()
				cur = start
			}
		default:
			// Unrecognized token: skip it rather than abort the whole path,
			// matching the core's general "recoverable issue, not a hard
			// failure" posture for malformed drawing data.
		}
	}
	if haveCur {
		z.ClosePath()
	}
}

func tokenize(commands string) []string {
	return strings.Fields(commands)
}

// isCoordNext reports whether toks[i] (and toks[i+1]) still look like a
// coordinate pair rather than the next command letter, so multi-point
// commands (l/b/s/p accept a run of points) know when to stop consuming.
func isCoordNext(toks []string, i int) bool {
	if i >= len(toks) {
		return false
	}
	_, err := strconv.ParseFloat(toks[i], 64)
	return err == nil
}
