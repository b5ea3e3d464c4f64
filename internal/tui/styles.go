package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ─── Color Palette (rebound by applyTheme) ──────────────────────────────────

var (
	colorBase     lipgloss.Color
	colorSurface1 lipgloss.Color
	colorText     lipgloss.Color
	colorSubtext  lipgloss.Color
	colorDim      lipgloss.Color
	colorAccent   lipgloss.Color
	colorLavender lipgloss.Color
	colorSapphire lipgloss.Color
	colorRed      lipgloss.Color

	colorBar       lipgloss.Color
	colorActiveBar lipgloss.Color
	colorLine      lipgloss.Color
)

// ─── Reusable Styles ────────────────────────────────────────────────────────

var (
	headerStyle      lipgloss.Style
	headerBrandStyle lipgloss.Style
	helpStyle        lipgloss.Style
	helpKeyStyle     lipgloss.Style
	labelStyle       lipgloss.Style
	valueStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	axisStyle        lipgloss.Style
	errorStyle       lipgloss.Style
	tooltipStyle     lipgloss.Style
	metricValueStyle lipgloss.Style
)

func applyTheme(t Theme) {
	colorBase = t.Base
	colorSurface1 = t.Surface1
	colorText = t.Text
	colorSubtext = t.Subtext
	colorDim = t.Dim
	colorAccent = t.Accent
	colorLavender = t.Lavender
	colorSapphire = t.Sapphire
	colorRed = t.Red
	colorBar = t.Bar
	colorActiveBar = t.ActiveBar
	colorLine = t.Line

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorLavender)

	headerBrandStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent)

	helpStyle = lipgloss.NewStyle().
		Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
		Foreground(colorSapphire).
		Bold(true)

	labelStyle = lipgloss.NewStyle().
		Foreground(colorSubtext)

	valueStyle = lipgloss.NewStyle().
		Foreground(colorText)

	dimStyle = lipgloss.NewStyle().
		Foreground(colorDim)

	axisStyle = lipgloss.NewStyle().
		Foreground(colorSurface1)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorRed).
		Bold(true)

	// Hover readout under the plot
	tooltipStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(colorActiveBar).
		Bold(true)
}

// chartLayerColors is indexed by canvas layer.
func chartLayerColors() []lipgloss.Color {
	return []lipgloss.Color{colorBar, colorActiveBar, colorLine}
}

func fitAnsiWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	out := ansi.Cut(s, 0, width)
	if pad := width - lipgloss.Width(out); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
