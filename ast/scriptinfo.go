package ast

import "github.com/assforge/ass/assutil"

// ScriptInfo exposes typed accessors over the well-known [Script Info]
// keys on top of the generic KV map; unknown keys stay reachable only
// through ScriptInfoValue.
type ScriptInfo struct {
	script *Script
}

// Info returns a typed view over this script's [Script Info] section.
func (s *Script) Info() ScriptInfo { return ScriptInfo{script: s} }

// PlayResX is the authoring resolution width used to scale renders,
// defaulting to 384 when absent (libass's historical default).
func (i ScriptInfo) PlayResX() int {
	return i.intOr("PlayResX", 384)
}

// PlayResY is the authoring resolution height, defaulting to 288.
func (i ScriptInfo) PlayResY() int {
	return i.intOr("PlayResY", 288)
}

// WrapStyle is the default line-wrap mode (0-3), defaulting to 0.
func (i ScriptInfo) WrapStyle() int {
	return i.intOr("WrapStyle", 0)
}

// ScaledBorderAndShadow reports whether outline/shadow widths scale with
// PlayRes rather than the video frame.
func (i ScriptInfo) ScaledBorderAndShadow() bool {
	v, ok := i.script.ScriptInfoValue("ScaledBorderAndShadow")
	if !ok {
		return true
	}
	b, ok := assutil.ParseBool(normalizeYesNo(v))
	if !ok {
		return true
	}
	return b
}

// Collisions is the libass "Normal"/"Reverse" collision mode for
// overlapping karaoke/typesetting, defaulting to "Normal".
func (i ScriptInfo) Collisions() string {
	v, ok := i.script.ScriptInfoValue("Collisions")
	if !ok {
		return "Normal"
	}
	return v
}

// Timer is the Timer: speed multiplier percentage, defaulting to 100.
func (i ScriptInfo) Timer() float64 {
	v, ok := i.script.ScriptInfoValue("Timer")
	if !ok {
		return 100
	}
	f, ok := assutil.ParseFloat(v)
	if !ok {
		return 100
	}
	return f
}

func (i ScriptInfo) intOr(key string, def int) int {
	v, ok := i.script.ScriptInfoValue(key)
	if !ok {
		return def
	}
	n, ok := assutil.ParseInt(v)
	if !ok {
		return def
	}
	return n
}

func normalizeYesNo(v string) string {
	switch v {
	case "yes", "Yes", "YES":
		return "1"
	case "no", "No", "NO":
		return "0"
	default:
		return v
	}
}
