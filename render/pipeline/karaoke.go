package pipeline

import "github.com/assforge/ass/assutil"

// KaraokeState is the resolved per-syllable recoloring decision at one
// instant: which syllable is active, how far through it playback has
// progressed (0..1, meaningful only for the Fill/Sweep styles), and
// whether the syllable has already completed.
type KaraokeState struct {
	Index    int
	Progress float64
	Past     bool // the syllable has already finished playing
}

// ActiveKaraoke computes, for every karaoke syllable in an event, whether
// it is past, active, or upcoming at eventRelativeT (centiseconds since
// the event's own start), per the pipeline's karaoke-coloring step.
func ActiveKaraoke(syllables []KaraokeSyllable, eventRelativeT assutil.Centiseconds) []KaraokeState {
	states := make([]KaraokeState, len(syllables))
	t := int(eventRelativeT)
	for i, syl := range syllables {
		start := syl.StartOffsetCs
		end := start + syl.DurationCs
		switch {
		case t >= end:
			states[i] = KaraokeState{Index: i, Progress: 1, Past: true}
		case t < start:
			states[i] = KaraokeState{Index: i, Progress: 0, Past: false}
		default:
			progress := 0.0
			if syl.DurationCs > 0 {
				progress = float64(t-start) / float64(syl.DurationCs)
			}
			states[i] = KaraokeState{Index: i, Progress: progress, Past: false}
		}
	}
	return states
}

// KaraokeColor resolves the color a syllable's text should be painted
// with, given its recoloring kind, its primary/secondary colors, and its
// karaoke playback state:
//   - Basic switches wholesale from Secondary to Primary at the boundary.
//   - Fill blends Secondary to Primary proportional to Progress (a
//     progressive left-to-right fill is the shaper/rasterizer's
//     per-glyph-position concern; this reports the blended color the
//     active glyph falls at).
//   - Outline switches from Secondary to Primary at the boundary, exactly
//     as Basic does. The result is the one color the syllable's run is
//     painted with; the outline color is not changed.
//   - Sweep reports the same progressive blend as Fill; it differs only
//     in which rasterizer stage consumes Progress (a sweep position
//     marker rather than a fill amount).
func KaraokeColor(kind KaraokeKind, primary, secondary assutil.Color, state KaraokeState) assutil.Color {
	switch kind {
	case KaraokeBasic:
		if state.Past {
			return primary
		}
		return secondary
	case KaraokeFill, KaraokeSweep:
		if state.Past {
			return primary
		}
		if state.Progress <= 0 {
			return secondary
		}
		return assutil.Color{
			R: lerpByte(secondary.R, primary.R, state.Progress),
			G: lerpByte(secondary.G, primary.G, state.Progress),
			B: lerpByte(secondary.B, primary.B, state.Progress),
			A: lerpByte(secondary.A, primary.A, state.Progress),
		}
	case KaraokeOutline:
		if state.Past {
			return primary
		}
		return secondary
	default:
		return primary
	}
}
