package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/dataset"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chart.Window != 7 {
		t.Errorf("default window = %d, want 7", cfg.Chart.Window)
	}
	if cfg.Chart.Padding != 0.07 {
		t.Errorf("default padding = %f, want 0.07", cfg.Chart.Padding)
	}
	if cfg.Chart.Height != 300 {
		t.Errorf("default height = %d, want 300", cfg.Chart.Height)
	}
	if m := cfg.Chart.Margins; m.Top != 50 || m.Right != 10 || m.Bottom != 30 || m.Left != 10 {
		t.Errorf("default margins = %+v", m)
	}
	if cfg.Theme != "Catppuccin Mocha" {
		t.Errorf("default theme = %q", cfg.Theme)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chart.Window != 7 || cfg.Dataset.Path != "national-timeseries.json" {
		t.Error("should return defaults for missing file")
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	content := `{
  "theme": "Nord",
  "dataset": {"path": "/data/covid.db", "format": "sqlite", "table": "daily"},
  "chart": {"window": 14, "padding": 0.2, "height": 400, "margins": {"top": 20, "bottom": 40}},
  "ui": {"watch": false}
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Theme != "Nord" {
		t.Errorf("theme = %q, want Nord", cfg.Theme)
	}
	if cfg.Chart.Window != 14 {
		t.Errorf("window = %d, want 14", cfg.Chart.Window)
	}
	if cfg.UI.Watch {
		t.Error("watch should be disabled")
	}
	if cfg.UI.ChartRows != 16 {
		t.Errorf("chart rows = %d, want default 16", cfg.UI.ChartRows)
	}
	if cfg.Chart.Width != 800 {
		t.Errorf("width = %d, want default 800", cfg.Chart.Width)
	}

	src := cfg.Source()
	if src.Path != "/data/covid.db" || src.Format != dataset.FormatSQLite || src.Table != "daily" {
		t.Errorf("source = %+v", src)
	}

	opts := cfg.ChartOptions()
	if opts.Height != 400 || opts.Padding != 0.2 || opts.Margins.Top != 20 || opts.Margins.Bottom != 40 {
		t.Errorf("chart options = %+v", opts)
	}
	// Margins given explicitly are kept even when partially zero.
	if opts.Margins.Left != 10 || opts.Margins.Right != 10 {
		t.Errorf("unset margins = %+v, want defaults for left/right", opts.Margins)
	}
}

func TestLoadFrom_NormalizesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{"theme": " ", "dataset": {"path": ""}, "chart": {"window": -3, "padding": 1.5, "height": 0}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Theme != def.Theme || cfg.Dataset.Path != def.Dataset.Path {
		t.Errorf("theme/path not defaulted: %+v", cfg)
	}
	if cfg.Chart.Window != 7 || cfg.Chart.Padding != 0.07 || cfg.Chart.Height != 300 {
		t.Errorf("chart not normalised: %+v", cfg.Chart)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"theme":`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.Chart.Window != 7 {
		t.Error("should return defaults on parse error")
	}
}
