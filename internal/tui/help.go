package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─── Help Overlay ───────────────────────────────────────────────────────────

type keyHelp struct {
	key, desc string
}

var dashboardKeys = []keyHelp{
	{"mouse", "hover a bar to read its day"},
	{"← / h", "previous day"},
	{"→ / l", "next day"},
	{"esc", "clear the highlight"},
	{"r", "reload the dataset"},
	{"t", "cycle theme"},
	{"?", "toggle this help"},
	{"q", "quit"},
}

// renderHelpOverlay draws a centered popup with the chart legend and key
// bindings. Dismissed by pressing any key.
func (m Model) renderHelpOverlay(screenW, screenH int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSapphire)
	descStyle := lipgloss.NewStyle().Foreground(colorSubtext)
	dimHintStyle := lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	var lines []string
	lines = append(lines, titleStyle.Render("  covidboard"))
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Legend"))
	lines = append(lines, "    "+lipgloss.NewStyle().Foreground(colorBar).Render("⣿⣿")+" "+descStyle.Render("new confirmed cases per day"))
	lines = append(lines, "    "+lipgloss.NewStyle().Foreground(colorActiveBar).Render("⣿⣿")+" "+descStyle.Render("highlighted day"))
	lines = append(lines, "    "+lipgloss.NewStyle().Foreground(colorLine).Render("⠤⠤")+" "+descStyle.Render(fmt.Sprintf("%d-day trailing average, the day itself excluded", m.window)))
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Keys"))
	for _, k := range dashboardKeys {
		lines = append(lines, "    "+helpKeyStyle.Render(padRight(k.key, 8))+descStyle.Render(k.desc))
	}
	lines = append(lines, "")
	lines = append(lines, "  "+dimHintStyle.Render("Press any key to dismiss"))

	content := strings.Join(lines, "\n")

	contentW := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > contentW {
			contentW = w
		}
	}

	boxW := contentW + 4
	if boxW > screenW-4 {
		boxW = screenW - 4
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(boxW)

	box := boxStyle.Render(content)

	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}
