// Package chart maps an enriched daily series onto pixel space and resolves
// pointer positions back to records for the national bar+line curve.
package chart

import (
	"time"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

// DefaultPadding is the inner padding ratio between bands.
const DefaultPadding = 0.07

// Margins reserve space around the plot area, in pixels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins leaves a 10px gutter on each side, 50px of headroom and a
// 30px strip for the axis.
func DefaultMargins() Margins {
	return Margins{Top: 50, Right: 10, Bottom: 30, Left: 10}
}

// BandScale lays out one equal-width band per record. Padding applies between
// bands only, never at the outer edges.
type BandScale struct {
	Start, End float64
	Padding    float64
	n          int
	step       float64
	bandwidth  float64
}

func newBandScale(n int, start, end, padding float64) BandScale {
	b := BandScale{Start: start, End: end, Padding: padding, n: n}
	span := end - start
	switch {
	case n <= 0:
	case n == 1:
		b.step, b.bandwidth = span, span
	default:
		b.step = span / (float64(n) - padding)
		b.bandwidth = b.step * (1 - padding)
	}
	return b
}

func (b BandScale) Len() int { return b.n }

func (b BandScale) Step() float64 { return b.step }

func (b BandScale) Bandwidth() float64 { return b.bandwidth }

// At returns the [start, end) pixel interval of band i.
func (b BandScale) At(i int) (float64, float64) {
	x := b.Start + float64(i)*b.step
	return x, x + b.bandwidth
}

func (b BandScale) Center(i int) float64 {
	x, _ := b.At(i)
	return x + b.bandwidth/2
}

// TimeScale is a continuous date → pixel mapping used for inverting pointer
// positions. It does not draw anything.
type TimeScale struct {
	From, To   time.Time
	Start, End float64
}

func (t TimeScale) span() time.Duration { return t.To.Sub(t.From) }

func (t TimeScale) Scale(d time.Time) float64 {
	span := t.span()
	if span <= 0 {
		return (t.Start + t.End) / 2
	}
	frac := float64(d.Sub(t.From)) / float64(span)
	return t.Start + frac*(t.End-t.Start)
}

// Invert maps a pixel back to an instant. A zero-length domain always inverts
// to its single date.
func (t TimeScale) Invert(px float64) time.Time {
	span := t.span()
	width := t.End - t.Start
	if span <= 0 || width == 0 {
		return t.From
	}
	frac := (px - t.Start) / width
	return t.From.Add(time.Duration(frac * float64(span)))
}

// LinearScale maps case counts to pixel rows. Its range is inverted so larger
// values sit higher on screen.
type LinearScale struct {
	Min, Max    float64
	Bottom, Top float64
}

func (l LinearScale) Scale(v float64) float64 {
	if l.Max == l.Min {
		return l.Bottom
	}
	frac := (v - l.Min) / (l.Max - l.Min)
	return l.Bottom + frac*(l.Top-l.Bottom)
}

func (l LinearScale) Invert(px float64) float64 {
	if l.Top == l.Bottom {
		return l.Min
	}
	frac := (px - l.Bottom) / (l.Top - l.Bottom)
	return l.Min + frac*(l.Max-l.Min)
}

// Scales groups the three axes built from one series and viewport.
type Scales struct {
	Band  BandScale
	Time  TimeScale
	Value LinearScale
}

// Empty reports whether the scales were built from an empty series.
func (s Scales) Empty() bool { return s.Band.Len() == 0 }

// Contains reports whether px falls inside the horizontal plot range.
func (s Scales) Contains(px float64) bool {
	return px >= s.Band.Start && px <= s.Band.End
}

// BuildScales derives band, time and value scales for s in a width×height
// viewport. An empty series produces scales with empty domains.
func BuildScales(s *series.Series, width, height float64, m Margins, padding float64) Scales {
	if padding < 0 || padding >= 1 {
		padding = DefaultPadding
	}
	start, end := m.Left, width-m.Right
	from, to := s.Extent()
	return Scales{
		Band: newBandScale(s.Len(), start, end, padding),
		Time: TimeScale{From: from, To: to, Start: start, End: end},
		Value: LinearScale{
			Min:    0,
			Max:    float64(s.MaxNewConfirmed()),
			Bottom: height - m.Bottom,
			Top:    m.Top,
		},
	}
}
