package chart

import "github.com/plumsirawit/the-researcher-covid-bot/internal/series"

// Options configure a Chart's geometry.
type Options struct {
	Width, Height float64
	Margins       Margins
	Padding       float64
}

func DefaultOptions() Options {
	return Options{Margins: DefaultMargins(), Padding: DefaultPadding}
}

// Chart is one mounted chart: its series, viewport, cached scales and hover
// state. Instances share nothing, so several charts may show the same series.
type Chart struct {
	series *series.Series
	opts   Options
	cache  ScaleCache
	state  Interaction
}

func New(s *series.Series, opts Options) *Chart {
	if opts.Padding < 0 || opts.Padding >= 1 {
		opts.Padding = DefaultPadding
	}
	return &Chart{series: s, opts: opts, state: IdleState}
}

func (c *Chart) Series() *series.Series { return c.series }

func (c *Chart) Options() Options { return c.opts }

// SetSeries swaps in a new series and drops the hover state.
func (c *Chart) SetSeries(s *series.Series) {
	if s == c.series {
		return
	}
	c.series = s
	c.state = IdleState
}

func (c *Chart) Resize(width, height float64) {
	c.opts.Width, c.opts.Height = width, height
}

func (c *Chart) SetMargins(m Margins) { c.opts.Margins = m }

func (c *Chart) Ready() bool { return Ready(c.opts.Width, c.opts.Height) }

// Scales returns the cached scales for the current series and viewport.
func (c *Chart) Scales() Scales {
	return c.cache.Get(c.series, c.opts.Width, c.opts.Height, c.opts.Margins, c.opts.Padding)
}

// ScaleBuilds reports how often scales were rebuilt.
func (c *Chart) ScaleBuilds() int { return c.cache.Builds() }

func (c *Chart) State() Interaction { return c.state }

// PointerMove resolves px and advances the hover state.
func (c *Chart) PointerMove(px float64) Interaction {
	if !c.Ready() {
		c.state = IdleState
		return c.state
	}
	idx, _, ok := Resolve(px, c.Scales(), c.series)
	c.state = Transition(c.state, Event{Kind: PointerMove, X: px}, Resolution{Index: idx, OK: ok})
	return c.state
}

func (c *Chart) PointerLeave() Interaction {
	c.state = Transition(c.state, Event{Kind: PointerLeave}, Resolution{})
	return c.state
}

// Step moves the hover by delta records, starting from the latest record
// when idle. It is the keyboard counterpart of PointerMove.
func (c *Chart) Step(delta int) Interaction {
	n := c.series.Len()
	if n == 0 {
		c.state = IdleState
		return c.state
	}
	idx := n - 1
	if c.state.Hovering() {
		idx = clamp(c.state.Index+delta, 0, n-1)
	}
	c.state = Transition(c.state, Event{Kind: PointerMove}, Resolution{Index: idx, OK: true})
	return c.state
}

func (c *Chart) Tooltip() Tooltip {
	if !c.Ready() {
		return Tooltip{Index: -1}
	}
	return TooltipFor(c.state, c.Scales(), c.series)
}

// Frame lays out the chart. It reports false while the viewport is
// unmeasured.
func (c *Chart) Frame() (Frame, bool) {
	if !c.Ready() {
		return Frame{}, false
	}
	return Layout(c.series, c.Scales(), c.opts.Width, c.opts.Height, c.state), true
}
