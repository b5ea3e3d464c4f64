package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/chart"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/dataset"
	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

type DatasetConfig struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Table  string `json:"table"`
}

type MarginsConfig struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

type ChartConfig struct {
	Window  int           `json:"window"`
	Padding float64       `json:"padding"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Margins MarginsConfig `json:"margins"`
}

type UIConfig struct {
	Watch     bool `json:"watch"`
	ChartRows int  `json:"chart_rows"`
}

type Config struct {
	Theme   string        `json:"theme"`
	Dataset DatasetConfig `json:"dataset"`
	Chart   ChartConfig   `json:"chart"`
	UI      UIConfig      `json:"ui"`
}

func DefaultConfig() Config {
	m := chart.DefaultMargins()
	return Config{
		Theme: "Catppuccin Mocha",
		Dataset: DatasetConfig{
			Path:  "national-timeseries.json",
			Table: dataset.DefaultTable,
		},
		Chart: ChartConfig{
			Window:  series.DefaultWindow,
			Padding: chart.DefaultPadding,
			Width:   800,
			Height:  300,
			Margins: MarginsConfig{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left},
		},
		UI: UIConfig{
			Watch:     true,
			ChartRows: 16,
		},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "covidboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "covidboard")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = def.Theme
	}
	if strings.TrimSpace(c.Dataset.Path) == "" {
		c.Dataset.Path = def.Dataset.Path
	}
	if strings.TrimSpace(c.Dataset.Table) == "" {
		c.Dataset.Table = def.Dataset.Table
	}
	if c.Chart.Window <= 0 {
		c.Chart.Window = def.Chart.Window
	}
	if c.Chart.Padding < 0 || c.Chart.Padding >= 1 {
		c.Chart.Padding = def.Chart.Padding
	}
	if c.Chart.Width <= 0 {
		c.Chart.Width = def.Chart.Width
	}
	if c.Chart.Height <= 0 {
		c.Chart.Height = def.Chart.Height
	}
	if c.UI.ChartRows <= 0 {
		c.UI.ChartRows = def.UI.ChartRows
	}
}

// Source describes where the dashboard reads its data from.
func (c Config) Source() dataset.Source {
	return dataset.Source{
		Path:   c.Dataset.Path,
		Format: dataset.Format(c.Dataset.Format),
		Table:  c.Dataset.Table,
	}
}

// ChartOptions maps the chart settings onto export geometry.
func (c Config) ChartOptions() chart.Options {
	m := c.Chart.Margins
	return chart.Options{
		Width:   float64(c.Chart.Width),
		Height:  float64(c.Chart.Height),
		Margins: chart.Margins{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left},
		Padding: c.Chart.Padding,
	}
}
