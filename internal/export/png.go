package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/chart"
)

const curveSteps = 8

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}

func px(v float64) int { return int(math.Round(v)) }

// WritePNG rasterises f with go-chart's PNG renderer. It draws the same
// marks as the SVG backend, with the basis curve flattened into segments.
func WritePNG(w io.Writer, f chart.Frame, st chart.Style) error {
	width, height := px(f.Width), px(f.Height)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export: invalid image size %dx%d", width, height)
	}
	r, err := gochart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("export: creating png renderer: %w", err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("export: loading font: %w", err)
	}
	r.SetFont(font)

	if st.Background != "" {
		fillRect(r, 0, 0, f.Width, f.Height, hexColor(st.Background))
	}

	if f.Empty {
		drawText(r, "No data", f.Width/2, f.Height/2, st.FontSize, hexColor(st.Axis), true)
		return r.Save(w)
	}

	for _, b := range f.Bars {
		c := hexColor(st.Bar)
		if b.Active {
			c = hexColor(st.ActiveBar)
		}
		fillRect(r, b.X, b.Y, b.Width, b.Height, c)
	}

	if pts := f.Line.Flatten(curveSteps); len(pts) > 1 {
		r.SetStrokeColor(hexColor(st.Line))
		r.SetStrokeWidth(2)
		r.MoveTo(px(pts[0].X), px(pts[0].Y))
		for _, p := range pts[1:] {
			r.LineTo(px(p.X), px(p.Y))
		}
		r.Stroke()
	}

	axis := hexColor(st.Axis)
	r.SetStrokeColor(axis)
	r.SetStrokeWidth(1)
	r.MoveTo(px(f.Scales.Band.Start), px(f.Baseline))
	r.LineTo(px(f.Scales.Band.End), px(f.Baseline))
	r.Stroke()
	for _, t := range f.Ticks {
		r.SetStrokeColor(axis)
		r.MoveTo(px(t.X), px(f.Baseline))
		r.LineTo(px(t.X), px(f.Baseline+8))
		r.Stroke()
		drawText(r, t.Label, t.X, f.Baseline+20, st.FontSize, axis, true)
	}

	if f.Tooltip.Visible {
		drawTooltip(r, f, st)
	}
	return r.Save(w)
}

func fillRect(r gochart.Renderer, x, y, w, h float64, c drawing.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r.SetFillColor(c)
	r.SetStrokeColor(drawing.ColorTransparent)
	r.MoveTo(px(x), px(y))
	r.LineTo(px(x+w), px(y))
	r.LineTo(px(x+w), px(y+h))
	r.LineTo(px(x), px(y+h))
	r.Close()
	r.Fill()
}

func drawText(r gochart.Renderer, body string, x, y, size float64, c drawing.Color, centered bool) {
	r.SetFontColor(c)
	r.SetFontSize(size)
	if centered {
		x -= float64(r.MeasureText(body).Width()) / 2
	}
	r.Text(body, px(x), px(y))
}

func drawTooltip(r gochart.Renderer, f chart.Frame, st chart.Style) {
	lines := chart.TooltipLines(f.Tooltip)
	const boxW, lineH, pad = 160.0, 16.0, 12.0
	boxH := pad*2 + lineH*float64(len(lines))

	x := math.Max(0, math.Min(f.Tooltip.X-boxW/2, f.Width-boxW))
	y := math.Max(0, f.Tooltip.Y-boxH-8)

	fillRect(r, x, y, boxW, boxH, drawing.Color{R: 255, G: 255, B: 255, A: 230})
	text := drawing.Color{R: 51, G: 51, B: 51, A: 255}
	for i, line := range lines {
		drawText(r, line, x+pad, y+pad+lineH*float64(i+1)-4, st.FontSize+1, text, false)
	}
}
