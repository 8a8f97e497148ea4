package analyzer

import "github.com/assforge/ass/assutil"

// ReadingSpeed is a dialogue line's characters-per-second rate, the
// standard subtitle QC metric for whether a line can plausibly be read
// before it disappears.
type ReadingSpeed struct {
	CharsPerSecond float64
	TooFast        bool
	TooSlow        bool
}

// maxComfortableCPS and minComfortableCPS bound readable subtitle pacing;
// lines outside this band are flagged but never rejected.
const (
	maxComfortableCPS = 21.0
	minComfortableCPS = 2.0
)

// MeasureReadingSpeed computes CPS from an event's shaped (override-tag
// stripped) text length and its on-screen duration. Zero-duration events
// report a zero rate rather than dividing by zero.
func MeasureReadingSpeed(plainText string, duration assutil.Centiseconds) ReadingSpeed {
	chars := runeCount(plainText)
	if duration == 0 || chars == 0 {
		return ReadingSpeed{}
	}
	seconds := float64(duration) / 100.0
	cps := float64(chars) / seconds
	return ReadingSpeed{
		CharsPerSecond: cps,
		TooFast:        cps > maxComfortableCPS,
		TooSlow:        cps < minComfortableCPS,
	}
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
