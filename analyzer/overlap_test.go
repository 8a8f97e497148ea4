package analyzer

import (
	"reflect"
	"testing"

	"github.com/assforge/ass/assutil"
)

func cs(v int) assutil.Centiseconds { return assutil.Centiseconds(v) }

func TestDetectOverlapsMatchesSweepScenario(t *testing.T) {
	starts := []assutil.Centiseconds{cs(0), cs(200), cs(300), cs(600), cs(1100)}
	ends := []assutil.Centiseconds{cs(1000), cs(500), cs(800), cs(900), cs(1500)}

	got := DetectOverlaps(starts, ends)
	want := []TimingPair{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("overlaps = %+v, want %+v", got, want)
	}
}

func TestDetectOverlapsTouchingIntervalsDoNotOverlap(t *testing.T) {
	starts := []assutil.Centiseconds{cs(0), cs(100)}
	ends := []assutil.Centiseconds{cs(100), cs(200)}

	got := DetectOverlaps(starts, ends)
	if len(got) != 0 {
		t.Errorf("overlaps = %+v, want none for touching intervals", got)
	}
}

func TestDetectOverlapsIgnoresZeroDuration(t *testing.T) {
	starts := []assutil.Centiseconds{cs(0), cs(0)}
	ends := []assutil.Centiseconds{cs(0), cs(500)}

	got := DetectOverlaps(starts, ends)
	if len(got) != 0 {
		t.Errorf("overlaps = %+v, want none (first event has zero duration)", got)
	}
}

// sequentialNonOverlapping builds N back-to-back, non-overlapping events so
// the sweep's active set never grows past a handful of entries: the only
// cost that can blow up with N is the endpoint sort, isolating the sort's
// own comparison count from the (separately output-sensitive) pair scan.
func sequentialNonOverlapping(n int) (starts, ends []assutil.Centiseconds) {
	starts = make([]assutil.Centiseconds, n)
	ends = make([]assutil.Centiseconds, n)
	for i := 0; i < n; i++ {
		starts[i] = assutil.Centiseconds(i * 10)
		ends[i] = assutil.Centiseconds(i*10 + 9)
	}
	return starts, ends
}

func TestDetectOverlapsComparisonsStayLogLinear(t *testing.T) {
	small := 500
	large := small * 8

	sStarts, sEnds := sequentialNonOverlapping(small)
	_, smallComparisons := DetectOverlapsCounted(sStarts, sEnds)

	lStarts, lEnds := sequentialNonOverlapping(large)
	_, largeComparisons := DetectOverlapsCounted(lStarts, lEnds)

	// An 8x input growing quadratically would cost ~64x comparisons; an
	// O(N log N) sort costs roughly 8 * log2(8) = 24x. Allow generous
	// headroom above the log-linear bound while still catching a collapse
	// to quadratic behavior.
	maxExpected := smallComparisons * 40
	if largeComparisons > maxExpected {
		t.Errorf("comparisons grew to %d for 8x input (base %d), want <= %d (log-linear bound)",
			largeComparisons, smallComparisons, maxExpected)
	}
}
