package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/chart"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/config"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/dataset"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

const (
	headerLines = 4 // title, separator, headline, blank
	footerLines = 4 // tooltip, blank, separator, status
	axisLines   = 2 // x axis, month labels
	minPlotRows = 3
	minPlotCols = 10
	sparklineW  = 24
)

// DatasetMsg carries a freshly loaded dataset, or the error that prevented
// loading it. The watcher sends one on every change of the source file.
type DatasetMsg struct {
	Dataset dataset.Dataset
	Err     error
}

type Model struct {
	source    dataset.Source
	window    int
	chartRows int

	data   dataset.Dataset
	series *series.Series
	chart  *chart.Chart
	err    error

	hasData  bool // true after the first successful DatasetMsg
	loading  bool
	showHelp bool
	status   string

	width  int
	height int
}

func NewModel(cfg config.Config) Model {
	return Model{
		source:    cfg.Source(),
		window:    cfg.Chart.Window,
		chartRows: cfg.UI.ChartRows,
		chart:     chart.New(nil, chart.Options{Margins: terminalMargins, Padding: cfg.Chart.Padding}),
		loading:   true,
	}
}

func (m Model) Init() tea.Cmd { return m.loadCmd() }

func (m Model) loadCmd() tea.Cmd {
	src := m.source
	return func() tea.Msg {
		d, err := dataset.Load(context.Background(), src)
		return DatasetMsg{Dataset: d, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case DatasetMsg:
		return m.applyDataset(msg), nil

	case tea.BlurMsg:
		m.chart.PointerLeave()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) applyDataset(msg DatasetMsg) Model {
	m.loading = false
	if msg.Err != nil {
		log.Printf("dataset load: %v", msg.Err)
		m.err = msg.Err
		return m
	}
	s, err := msg.Dataset.Enrich(m.window)
	if err != nil {
		log.Printf("dataset %s: %v", msg.Dataset.Source, err)
		m.err = err
		return m
	}
	m.err = nil
	m.data = msg.Dataset
	m.series = s
	m.hasData = true
	m.chart.SetSeries(s)
	m.status = fmt.Sprintf("loaded %d days", s.Len())
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.err != nil {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionMotion, tea.MouseActionPress:
	default:
		return m, nil
	}
	g, ok := m.plotGeometry()
	if !ok {
		return m, nil
	}
	if !g.contains(msg.X, msg.Y) {
		m.chart.PointerLeave()
		return m, nil
	}
	m.chart.PointerMove(g.dotX(msg.X))
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if msg.String() == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "t":
		m.status = "theme: " + CycleTheme()
	case "r":
		m.loading = true
		m.status = "reloading…"
		return m, m.loadCmd()
	case "left", "h":
		m.chart.Step(-1)
	case "right", "l":
		m.chart.Step(1)
	case "home":
		m.chart.Step(-m.series.Len())
	case "end":
		m.chart.Step(m.series.Len())
	case "esc":
		m.chart.PointerLeave()
	}
	return m, nil
}

// plotGeometry locates the braille plot inside the view, in terminal cells.
type plotGeometry struct {
	left, top  int
	cols, rows int
}

func (g plotGeometry) contains(x, y int) bool {
	return x >= g.left && x < g.left+g.cols && y >= g.top && y < g.top+g.rows
}

// dotX maps a terminal column to the dot at the centre of that cell.
func (g plotGeometry) dotX(x int) float64 {
	return float64((x-g.left)*2) + 1
}

func (m Model) plotGeometry() (plotGeometry, bool) {
	rows := m.height - headerLines - axisLines - footerLines
	if m.chartRows > 0 && rows > m.chartRows {
		rows = m.chartRows
	}
	cols := m.width - plotLeft - plotRight
	if rows < minPlotRows || cols < minPlotCols {
		return plotGeometry{}, false
	}
	return plotGeometry{left: plotLeft, top: headerLines, cols: cols, rows: rows}, true
}

func (m *Model) resizeChart() {
	g, ok := m.plotGeometry()
	if !ok {
		m.chart.Resize(0, 0)
		return
	}
	m.chart.Resize(float64(g.cols*2), float64(g.rows*4))
}

func (m Model) View() string {
	if m.width < 30 || m.height < 8 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Render("\n  Terminal too small. Resize to at least 30×8.")
	}
	if m.showHelp {
		return m.renderHelpOverlay(m.width, m.height)
	}

	w := m.width
	var lines []string
	lines = append(lines, m.renderHeader(w), axisStyle.Render(strings.Repeat("━", w)))
	lines = append(lines, m.renderHeadline(w), "")
	lines = append(lines, m.renderBody(w)...)
	lines = append(lines, m.renderTooltip(w), "")
	lines = append(lines, m.renderFooter(w)...)
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader(w int) string {
	left := headerBrandStyle.Render("COVID-19") + " " + headerStyle.Render("national new cases")
	info := ThemeName()
	if !m.data.UpdatedOn.IsZero() {
		info = "updated " + m.data.UpdatedOn.Format("02 Jan 2006 15:04") + " · " + info
	}
	infoRendered := labelStyle.Render(info)
	gap := w - lipgloss.Width(left) - lipgloss.Width(infoRendered)
	if gap < 1 {
		gap = 1
	}
	return fitAnsiWidth(left+strings.Repeat(" ", gap)+infoRendered, w)
}

func (m Model) renderHeadline(w int) string {
	latest, ok := m.series.Latest()
	if !ok {
		return fitAnsiWidth("  "+dimStyle.Render("no daily records yet"), w)
	}
	parts := []string{
		labelStyle.Render("latest ") + metricValueStyle.Render(chart.FormatCount(latest.NewConfirmed)) +
			dimStyle.Render(" ("+chart.TooltipDate(latest.Date)+")"),
		labelStyle.Render(fmt.Sprintf("%d-day avg ", m.series.Window())) + valueStyle.Render(chart.FormatCount(int(latest.MovingAvg+0.5))),
		labelStyle.Render("total ") + valueStyle.Render(chart.FormatCount(m.series.Total())),
	}
	line := "  " + strings.Join(parts, dimStyle.Render(" · "))
	if spark := m.renderSparkline(); spark != "" && lipgloss.Width(line)+sparklineW+4 <= w {
		line += strings.Repeat(" ", w-lipgloss.Width(line)-sparklineW-2) + spark
	}
	return fitAnsiWidth(line, w)
}

// renderSparkline shows the most recent moving averages.
func (m Model) renderSparkline() string {
	avgs := m.series.MovingAverages()
	if len(avgs) == 0 {
		return ""
	}
	if len(avgs) > sparklineW {
		avgs = avgs[len(avgs)-sparklineW:]
	}
	sl := sparkline.New(sparklineW, 1, sparkline.WithStyle(lipgloss.NewStyle().Foreground(colorLine)))
	sl.PushAll(avgs)
	sl.Draw()
	return sl.View()
}

func (m Model) renderBody(w int) []string {
	g, ok := m.plotGeometry()
	if !ok {
		return []string{fitAnsiWidth("  "+dimStyle.Render("Resize the terminal to show the chart."), w)}
	}

	placeholder := func(msg string) []string {
		out := make([]string, g.rows+axisLines)
		for i := range out {
			out[i] = strings.Repeat(" ", w)
		}
		out[g.rows/2] = fitAnsiWidth(strings.Repeat(" ", g.left)+msg, w)
		return out
	}

	switch {
	case m.err != nil:
		return placeholder(errorStyle.Render(describeLoadError(m.err)))
	case !m.hasData:
		return placeholder(dimStyle.Render("Loading " + m.source.Path + "…"))
	}

	f, ready := m.chart.Frame()
	if !ready {
		return placeholder(dimStyle.Render("Measuring…"))
	}
	if f.Empty {
		return placeholder(dimStyle.Render("No data"))
	}
	return renderPlot(f, g.cols, g.rows, w)
}

func describeLoadError(err error) string {
	var shape *series.DataShapeError
	if errors.As(err, &shape) {
		return "Malformed dataset: " + shape.Error()
	}
	return err.Error()
}

func (m Model) renderTooltip(w int) string {
	tip := m.chart.Tooltip()
	if m.err != nil || !tip.Visible {
		return fitAnsiWidth("  "+dimStyle.Render("hover a bar or press ←/→ to inspect a day"), w)
	}
	lines := chart.TooltipLines(tip)
	text := tooltipStyle.Render(lines[0]) + dimStyle.Render(" · ") + valueStyle.Render(lines[1]) +
		dimStyle.Render(" · ") + labelStyle.Render(fmt.Sprintf("avg %s", chart.FormatCount(int(tip.Record.MovingAvg+0.5))))
	marker := lipgloss.NewStyle().Foreground(colorActiveBar).Render("▲") + " "

	col := plotLeft + int(tip.X/2)
	width := lipgloss.Width(marker + text)
	if col+width > w {
		col = w - width
	}
	if col < 0 {
		col = 0
	}
	return fitAnsiWidth(strings.Repeat(" ", col)+marker+text, w)
}

func (m Model) renderFooter(w int) []string {
	sep := axisStyle.Render(strings.Repeat("━", w))
	status := helpKeyStyle.Render("?") + helpStyle.Render(" help  ") +
		helpKeyStyle.Render("r") + helpStyle.Render(" reload  ") +
		helpKeyStyle.Render("t") + helpStyle.Render(" theme  ") +
		helpKeyStyle.Render("q") + helpStyle.Render(" quit")
	if m.loading {
		status = dimStyle.Render("loading… ") + status
	} else if m.status != "" {
		status = dimStyle.Render(m.status+" · ") + status
	}
	return []string{sep, fitAnsiWidth(" "+status, w)}
}
