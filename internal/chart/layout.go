package chart

import (
	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

type Bar struct {
	Index         int
	X, Y          float64
	Width, Height float64
	Active        bool
}

type Tick struct {
	Index int
	X     float64
	Label string
}

// Frame is everything a backend needs to draw one chart: pure data, no
// drawing surface.
type Frame struct {
	Width, Height float64
	Scales        Scales
	Bars          []Bar
	Line          Path
	LinePoints    []Point
	Ticks         []Tick
	Baseline      float64 // y of the value axis zero, where the x-axis sits
	Tooltip       Tooltip
	Empty         bool
}

// Ready reports whether a viewport has been measured. Drawing is skipped for
// an unmeasured viewport; it is not an error.
func Ready(width, height float64) bool {
	return width > 0 && height > 0
}

// Layout places bars, the moving-average line and month ticks for s using
// prebuilt scales. An empty series produces a frame with Empty set and no
// marks.
func Layout(s *series.Series, sc Scales, width, height float64, st Interaction) Frame {
	f := Frame{
		Width:    width,
		Height:   height,
		Scales:   sc,
		Baseline: sc.Value.Bottom,
		Tooltip:  Tooltip{Index: -1},
	}
	n := s.Len()
	if n == 0 || sc.Empty() {
		f.Empty = true
		return f
	}

	f.Bars = make([]Bar, n)
	f.LinePoints = make([]Point, n)
	bw := sc.Band.Bandwidth()
	for i := 0; i < n; i++ {
		rec := s.At(i)
		x, _ := sc.Band.At(i)
		y := sc.Value.Scale(float64(rec.NewConfirmed))
		f.Bars[i] = Bar{
			Index:  i,
			X:      x,
			Y:      y,
			Width:  bw,
			Height: sc.Value.Bottom - y,
			Active: st.Hovering() && st.Index == i,
		}
		f.LinePoints[i] = Point{X: sc.Band.Center(i), Y: sc.Value.Scale(rec.MovingAvg)}
	}
	f.Line = BasisPath(f.LinePoints)
	f.Ticks = MonthTicks(s, sc)
	f.Tooltip = TooltipFor(st, sc, s)
	return f
}

// MonthTicks places one tick, labelled with the abbreviated month, at the
// first record of every calendar month.
func MonthTicks(s *series.Series, sc Scales) []Tick {
	var ticks []Tick
	lastYear, lastMonth := 0, 0
	for i := 0; i < s.Len(); i++ {
		d := s.At(i).Date
		if d.Year() == lastYear && int(d.Month()) == lastMonth {
			continue
		}
		lastYear, lastMonth = d.Year(), int(d.Month())
		ticks = append(ticks, Tick{Index: i, X: sc.Band.Center(i), Label: MonthLabel(d)})
	}
	return ticks
}
