// Package export renders the national chart to image files and plain-text
// summaries, outside the interactive dashboard.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/chart"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("export: unknown format %q (want svg or png)", s)
	}
}

// FormatForPath picks the format from a file extension, falling back to
// fallback when the extension says nothing.
func FormatForPath(path string, fallback Format) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return fallback
}

// Options control one export.
type Options struct {
	Chart chart.Options
	Style chart.Style
	// Highlight, when in range, renders the chart as if record Highlight were
	// hovered. Negative means no highlight.
	Highlight int
}

// Frame lays out s for export, applying the highlight.
func Frame(s *series.Series, opts Options) (chart.Frame, error) {
	c := chart.New(s, opts.Chart)
	if !c.Ready() {
		return chart.Frame{}, fmt.Errorf("export: invalid size %vx%v", opts.Chart.Width, opts.Chart.Height)
	}
	if opts.Highlight >= 0 && opts.Highlight < s.Len() {
		c.PointerMove(c.Scales().Band.Center(opts.Highlight))
	}
	f, _ := c.Frame()
	return f, nil
}

// Render writes s to w in the given format.
func Render(w io.Writer, format Format, s *series.Series, opts Options) error {
	f, err := Frame(s, opts)
	if err != nil {
		return err
	}
	switch format {
	case FormatSVG:
		return chart.WriteSVG(w, f, opts.Style)
	case FormatPNG:
		return WritePNG(w, f, opts.Style)
	default:
		return fmt.Errorf("export: unknown format %q", format)
	}
}

// WriteSummary prints the last days records, newest first, as an aligned
// table followed by the series totals.
func WriteSummary(w io.Writer, s *series.Series, days int) error {
	if s.Empty() {
		_, err := fmt.Fprintln(w, "no records")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "DATE\tNEW CASES\t%d-DAY AVG\t\n", s.Window())
	rows := lo.Map(s.Tail(days), func(r series.EnrichedRecord, _ int) string {
		return fmt.Sprintf("%s\t%s\t%s\t", r.Date.Format(series.DateLayout),
			chart.FormatCount(r.NewConfirmed), chart.FormatCount(int(r.MovingAvg+0.5)))
	})
	for _, row := range rows {
		fmt.Fprintln(tw, row)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	from, to := s.Extent()
	_, err := fmt.Fprintf(w, "\n%d days from %s to %s, %s cases in total, peak %s\n",
		s.Len(), from.Format(series.DateLayout), to.Format(series.DateLayout),
		chart.FormatCount(s.Total()), chart.FormatCount(s.MaxNewConfirmed()))
	return err
}
