package analyzer

import (
	"sort"

	"github.com/assforge/ass/assutil"
)

// TimingPair is one pair of event indices whose [start,end) intervals
// overlap, always stored with A < B.
type TimingPair struct {
	A, B int
}

// sweepEvent is one endpoint in the timing sweep: a Start or an End at a
// given time, tagged with the event it belongs to.
type sweepEvent struct {
	t       assutil.Centiseconds
	isStart bool
	idx     int
}

// DetectOverlaps finds every pair of events whose intervals genuinely
// overlap, using a sweep over 2N endpoints: O(N log N) for the sort plus
// O(N + P) for the sweep, where P is the number of reported pairs.
// Zero-duration events (end <= start) are ignored entirely, and touching
// intervals (one ends exactly where another starts) do not count as
// overlapping — enforced by sorting End before Start at equal times.
func DetectOverlaps(starts, ends []assutil.Centiseconds) []TimingPair {
	pairs, _ := DetectOverlapsCounted(starts, ends)
	return pairs
}

// DetectOverlapsCounted behaves exactly like DetectOverlaps but also
// returns how many ordering comparisons the two sort.Slice passes
// performed, so a caller can verify the sweep stays at O(N log N)
// comparisons rather than degrading to a quadratic scan as N grows.
func DetectOverlapsCounted(starts, ends []assutil.Centiseconds) ([]TimingPair, int) {
	events := make([]sweepEvent, 0, 2*len(starts))
	for idx := range starts {
		if ends[idx] <= starts[idx] {
			continue
		}
		events = append(events, sweepEvent{starts[idx], true, idx})
		events = append(events, sweepEvent{ends[idx], false, idx})
	}

	comparisons := 0
	sort.Slice(events, func(i, j int) bool {
		comparisons++
		if events[i].t != events[j].t {
			return events[i].t < events[j].t
		}
		return !events[i].isStart && events[j].isStart
	})

	active := make(map[int]struct{})
	var pairs []TimingPair
	for _, e := range events {
		if e.isStart {
			for other := range active {
				a, b := other, e.idx
				if a > b {
					a, b = b, a
				}
				pairs = append(pairs, TimingPair{a, b})
			}
			active[e.idx] = struct{}{}
		} else {
			delete(active, e.idx)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		comparisons++
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs, comparisons
}
