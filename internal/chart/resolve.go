package chart

import (
	"math"
	"sort"
	"time"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

// Resolve finds the record under the horizontal pixel px.
//
// px is inverted through the time scale and bisected against the instants at
// which each record from index 1 onwards takes over the pointer. Record k
// takes over where band k-1 ends, so a pointer exactly on a band edge, or in
// the padding gap after it, resolves to the band on the right. It reports
// false for an empty series or a pixel outside the plot range; neither is an
// error.
func Resolve(px float64, sc Scales, s *series.Series) (int, series.EnrichedRecord, bool) {
	n := s.Len()
	if n == 0 || sc.Empty() || math.IsNaN(px) || !sc.Contains(px) {
		return -1, series.EnrichedRecord{}, false
	}
	d0 := sc.Time.Invert(px)
	idx := clamp(bisectRight(1, n, d0, sc.takeover)-1, 0, n-1)
	return idx, s.At(idx), true
}

// takeover returns the instant from which record k owns the pointer: the end
// of band k-1 inverted through the time scale.
func (s Scales) takeover(k int) time.Time {
	_, end := s.Band.At(k - 1)
	return s.Time.Invert(end)
}

// bisectRight returns the first k in [lo, hi) whose instant is after d, or hi
// when there is none. at must be non-decreasing over the interval.
func bisectRight(lo, hi int, d time.Time, at func(k int) time.Time) int {
	if lo >= hi {
		return hi
	}
	return lo + sort.Search(hi-lo, func(i int) bool {
		return at(lo + i).After(d)
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
