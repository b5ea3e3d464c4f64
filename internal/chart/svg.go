package chart

import (
	"bufio"
	"html"
	"io"
	"strings"

	"github.com/midbel/svg"
)

// Style holds the colours of a rendered chart.
type Style struct {
	Background string
	Bar        string
	ActiveBar  string
	Line       string
	Axis       string
	Text       string
	FontSize   float64
}

func DefaultStyle() Style {
	return Style{
		Background: "#1e1e1e",
		Bar:        "#fa9ba4",
		ActiveBar:  "#ff5e6f",
		Line:       "#cf1111",
		Axis:       "#bfbfbf",
		Text:       "#ffffff",
		FontSize:   11,
	}
}

const (
	tickLength  = 8.0
	tickLabelY  = 20.0
	lineWidth   = 2.0
	tooltipW    = 160.0
	tooltipLine = 16.0
	tooltipPad  = 12.0
)

// WriteSVG draws f as a standalone SVG document: bars, the smoothed
// moving-average line, a month axis and, when visible, the tooltip.
func WriteSVG(w io.Writer, f Frame, st Style) error {
	doc := svg.NewSVG()
	doc.Dim = svg.NewDim(f.Width, f.Height)
	if st.Background != "" {
		bg := svg.Rect{Dim: doc.Dim, Fill: solid(st.Background, 1)}
		doc.Append(bg.AsElement())
	}

	if f.Empty {
		txt := svgText("No data", svg.NewPos(f.Width/2, f.Height/2), st.Axis, st.FontSize)
		txt.Anchor = "middle"
		doc.Append(txt.AsElement())
	} else {
		doc.Append(svgBars(f, st))
		if len(f.Line) > 0 {
			line := svgPath(f.Line)
			line.Class = []string{"moving-average"}
			line.Fill = svg.Fill{Color: "none"}
			line.Stroke = svg.NewStroke(st.Line, lineWidth)
			doc.Append(line.AsElement())
		}
		doc.Append(svgAxis(f, st))
		if f.Tooltip.Visible {
			doc.Append(svgTooltip(f, st))
		}
	}

	bw := bufio.NewWriter(w)
	doc.Render(bw)
	bw.WriteByte('\n')
	return bw.Flush()
}

func svgBars(f Frame, st Style) svg.Element {
	g := svg.Group{}
	g.Class = []string{"bars"}
	for _, b := range f.Bars {
		color := st.Bar
		if b.Active {
			color = st.ActiveBar
		}
		r := svg.Rect{
			Pos:  svg.NewPos(b.X, b.Y),
			Dim:  svg.NewDim(b.Width, b.Height),
			Fill: solid(color, 1),
		}
		g.Append(r.AsElement())
	}
	return g.AsElement()
}

// svgPath turns the basis spline into path commands.
func svgPath(p Path) svg.Path {
	var out svg.Path
	for _, seg := range p {
		switch seg.Kind {
		case MoveTo:
			out.AbsMoveTo(svgPos(seg.Points[0]))
		case LineTo:
			out.AbsLineTo(svgPos(seg.Points[0]))
		case CubicTo:
			out.AbsCubicCurve(svgPos(seg.Points[2]), svgPos(seg.Points[0]), svgPos(seg.Points[1]))
		}
	}
	return out
}

func svgAxis(f Frame, st Style) svg.Element {
	stroke := svg.NewStroke(st.Axis, 1)

	g := svg.Group{Transform: svg.Translate(0, f.Baseline)}
	g.Class = []string{"axis"}
	domain := svg.NewLine(svg.NewPos(f.Scales.Band.Start, 0), svg.NewPos(f.Scales.Band.End, 0))
	domain.Stroke = stroke
	g.Append(domain.AsElement())

	for _, t := range f.Ticks {
		grp := svg.Group{Transform: svg.Translate(t.X, 0)}
		tick := svg.NewLine(svg.NewPos(0, 0), svg.NewPos(0, tickLength))
		tick.Stroke = stroke
		label := svgText(t.Label, svg.NewPos(0, tickLabelY), st.Axis, st.FontSize)
		label.Anchor = "middle"
		grp.Append(tick.AsElement())
		grp.Append(label.AsElement())
		g.Append(grp.AsElement())
	}
	return g.AsElement()
}

func svgTooltip(f Frame, st Style) svg.Element {
	lines := TooltipLines(f.Tooltip)
	boxH := tooltipPad*2 + tooltipLine*float64(len(lines))

	x := f.Tooltip.X - tooltipW/2
	if x < 0 {
		x = 0
	}
	if x+tooltipW > f.Width {
		x = f.Width - tooltipW
	}
	y := f.Tooltip.Y - boxH - tickLength
	if y < 0 {
		y = 0
	}

	g := svg.Group{Transform: svg.Translate(x, y)}
	g.Class = []string{"tooltip"}
	box := svg.Rect{
		RX:   3,
		Dim:  svg.NewDim(tooltipW, boxH),
		Fill: solid("#ffffff", 0.9),
	}
	g.Append(box.AsElement())
	for i, line := range lines {
		pos := svg.NewPos(tooltipPad, tooltipPad+tooltipLine*float64(i+1)-4)
		txt := svgText(line, pos, "#333333", st.FontSize+1)
		if i == 0 {
			txt.Font.Weight = "bold"
		}
		g.Append(txt.AsElement())
	}
	return g.AsElement()
}

func svgText(str string, pos svg.Pos, color string, size float64) svg.Text {
	txt := svg.NewText(html.EscapeString(str))
	txt.Pos = pos
	txt.Font = svg.NewFont(size)
	txt.Font.Fill = color
	return txt
}

func svgPos(p Point) svg.Pos { return svg.NewPos(p.X, p.Y) }

func solid(color string, opacity float64) svg.Fill {
	return svg.Fill{Color: color, Opacity: opacity}
}

// SVGString is WriteSVG into a string.
func SVGString(f Frame, st Style) string {
	var sb strings.Builder
	_ = WriteSVG(&sb, f, st)
	return sb.String()
}
