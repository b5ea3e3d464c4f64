package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/chart"
)

// Canvas layers, lowest first. A higher layer wins a dot and colours its cell.
const (
	layerBar = iota
	layerActiveBar
	layerLine
)

const (
	yAxisW    = 8
	plotLeft  = yAxisW + 2 // "  " + label + " " + "┤"
	plotRight = 2          // gutter after the plot
)

// terminalMargins are in braille dots. Two dots of headroom keep the tallest
// bar off the top row; the axis is drawn outside the canvas.
var terminalMargins = chart.Margins{Top: 2}

var brailleDots = [4][2]rune{
	{0x01, 0x08}, // top
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80}, // bottom
}

type brailleCanvas struct {
	cw, ch int   // character dimensions
	pw, ph int   // pixel dimensions (cw*2, ch*4)
	grid   []int // flat [ph*pw], layer per pixel (-1 = empty)
}

func newBrailleCanvas(cw, ch int) *brailleCanvas {
	pw, ph := cw*2, ch*4
	grid := make([]int, pw*ph)
	for i := range grid {
		grid[i] = -1
	}
	return &brailleCanvas{cw: cw, ch: ch, pw: pw, ph: ph, grid: grid}
}

func (c *brailleCanvas) set(px, py, layer int) {
	if px >= 0 && px < c.pw && py >= 0 && py < c.ph {
		if i := py*c.pw + px; layer > c.grid[i] {
			c.grid[i] = layer
		}
	}
}

// fillRect sets every dot in [x0, x1) × [y0, y1).
func (c *brailleCanvas) fillRect(x0, y0, x1, y1, layer int) {
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.set(px, py, layer)
		}
	}
}

func (c *brailleCanvas) drawLine(x0, y0, x1, y1, layer int) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	steps := math.Abs(dx)
	if math.Abs(dy) > steps {
		steps = math.Abs(dy)
	}
	if steps == 0 {
		c.set(x0, y0, layer)
		return
	}
	xInc := dx / steps
	yInc := dy / steps
	x, y := float64(x0), float64(y0)
	for i := 0; i <= int(steps); i++ {
		c.set(int(math.Round(x)), int(math.Round(y)), layer)
		x += xInc
		y += yInc
	}
}

// cell returns the braille pattern of one character cell and the highest
// layer drawn in it, or -1 when the cell is blank.
func (c *brailleCanvas) cell(cx, cy int) (rune, int) {
	pattern := rune(0x2800)
	top := -1
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			layer := c.grid[(cy*4+dy)*c.pw+cx*2+dx]
			if layer >= 0 {
				pattern |= brailleDots[dy][dx]
				if layer > top {
					top = layer
				}
			}
		}
	}
	return pattern, top
}

func (c *brailleCanvas) render(colors []lipgloss.Color) []string {
	lines := make([]string, c.ch)
	for cy := 0; cy < c.ch; cy++ {
		var sb strings.Builder
		for cx := 0; cx < c.cw; cx++ {
			pattern, layer := c.cell(cx, cy)
			if layer < 0 {
				sb.WriteRune(' ')
				continue
			}
			color := colorSubtext
			if layer < len(colors) {
				color = colors[layer]
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(pattern)))
		}
		lines[cy] = sb.String()
	}
	return lines
}

// rasterize draws a frame laid out in dot space onto a cols×rows canvas.
func rasterize(f chart.Frame, cols, rows int) *brailleCanvas {
	c := newBrailleCanvas(cols, rows)
	if f.Empty {
		return c
	}
	for _, b := range f.Bars {
		x0 := int(math.Floor(b.X))
		x1 := int(math.Ceil(b.X + b.Width))
		if x1 <= x0 {
			x1 = x0 + 1
		}
		y0 := int(math.Round(b.Y))
		if b.Height > 0 && y0 >= c.ph {
			y0 = c.ph - 1
		}
		layer := layerBar
		if b.Active {
			layer = layerActiveBar
		}
		c.fillRect(x0, y0, x1, c.ph, layer)
	}

	pts := f.Line.Flatten(4)
	for i, p := range pts {
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		if i == 0 {
			c.set(x, y, layerLine)
			continue
		}
		prev := pts[i-1]
		c.drawLine(int(math.Round(prev.X)), int(math.Round(prev.Y)), x, y, layerLine)
	}
	return c
}

// renderPlot draws the canvas rows with value labels, the x axis and the
// month labels. Every returned line is exactly w cells wide.
func renderPlot(f chart.Frame, cols, rows, w int) []string {
	canvas := rasterize(f, cols, rows)
	plotLines := canvas.render(chartLayerColors())

	numTicks := 5
	if rows < 6 {
		numTicks = 3
	}
	tickRows := make(map[int]float64, numTicks)
	for t := 0; t < numTicks; t++ {
		row := t * (rows - 1) / (numTicks - 1)
		tickRows[row] = f.Scales.Value.Invert(float64(row*4 + 2))
	}

	lines := make([]string, 0, rows+2)
	for row := 0; row < rows; row++ {
		label := ""
		if val, ok := tickRows[row]; ok && !f.Empty {
			label = chart.FormatAxisValue(math.Max(val, 0))
		}
		line := "  " + dimStyle.Render(padLeft(label, yAxisW-2)) + " " + axisStyle.Render("┤") + plotLines[row]
		lines = append(lines, fitAnsiWidth(line, w))
	}

	axis := "  " + strings.Repeat(" ", yAxisW-2) + " " + axisStyle.Render("└"+strings.Repeat("─", cols))
	lines = append(lines, fitAnsiWidth(axis, w))
	lines = append(lines, fitAnsiWidth(strings.Repeat(" ", plotLeft)+dimStyle.Render(monthLabelRow(f.Ticks, cols)), w))
	return lines
}

// monthLabelRow places tick labels at their cell columns, dropping any label
// that would touch the previous one.
func monthLabelRow(ticks []chart.Tick, cols int) string {
	row := []rune(strings.Repeat(" ", cols))
	next := 0
	for _, tk := range ticks {
		col := int(tk.X / 2)
		label := []rune(tk.Label)
		if col < next || col+len(label) > cols {
			continue
		}
		copy(row[col:], label)
		next = col + len(label) + 1
	}
	return string(row)
}
