package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// COVIDBOARD_THEME_DIR can point to one or more additional theme directories
// (path-list separated, e.g. ":" on unix, ";" on Windows).
const themeDirEnvVar = "COVIDBOARD_THEME_DIR"

const defaultThemeName = "Catppuccin Mocha"

// Theme represents the full visual token set used by the dashboard.
//
// External themes can be defined as JSON files with matching snake_case fields,
// for example: {"name":"My Theme","base":"#111111","bar":"#fa9ba4",...}.
type Theme struct {
	Name string `json:"name"`
	Icon string `json:"icon"`

	Base     lipgloss.Color `json:"base"`
	Surface1 lipgloss.Color `json:"surface1"`

	Text    lipgloss.Color `json:"text"`
	Subtext lipgloss.Color `json:"subtext"`
	Dim     lipgloss.Color `json:"dim"`

	Accent   lipgloss.Color `json:"accent"`
	Lavender lipgloss.Color `json:"lavender"`
	Sapphire lipgloss.Color `json:"sapphire"`
	Red      lipgloss.Color `json:"red"`

	Bar       lipgloss.Color `json:"bar"`
	ActiveBar lipgloss.Color `json:"active_bar"`
	Line      lipgloss.Color `json:"line"`
}

var (
	themeMu        sync.RWMutex
	themes         []Theme
	activeThemeIdx int
)

func init() {
	themes = builtinThemes()
	activeThemeIdx = defaultThemeIndex(themes)
	if len(themes) > 0 {
		applyTheme(themes[activeThemeIdx])
	}
}

func builtinThemes() []Theme {
	return []Theme{
		{
			Name: "Catppuccin Mocha", Icon: "🐱",
			Base: "#1E1E2E", Surface1: "#45475A",
			Text: "#CDD6F4", Subtext: "#A6ADC8", Dim: "#585B70",
			Accent: "#CBA6F7", Lavender: "#B4BEFE", Sapphire: "#74C7EC", Red: "#F38BA8",
			Bar: "#F2CDCD", ActiveBar: "#EBA0AC", Line: "#F38BA8",
		},
		{
			Name: "Researcher", Icon: "🦠",
			Base: "#FFFFFF", Surface1: "#BFBFBF",
			Text: "#212529", Subtext: "#495057", Dim: "#8C8C8C",
			Accent: "#CF1111", Lavender: "#343A40", Sapphire: "#0D6EFD", Red: "#CF1111",
			Bar: "#FA9BA4", ActiveBar: "#FF5E6F", Line: "#CF1111",
		},
		{
			Name: "Gruvbox", Icon: "🌻",
			Base: "#282828", Surface1: "#504945",
			Text: "#EBDBB2", Subtext: "#D5C4A1", Dim: "#665C54",
			Accent: "#D3869B", Lavender: "#D3869B", Sapphire: "#83A598", Red: "#FB4934",
			Bar: "#D3869B", ActiveBar: "#FE8019", Line: "#FB4934",
		},
		{
			Name: "Dracula", Icon: "🧛",
			Base: "#282A36", Surface1: "#6272A4",
			Text: "#F8F8F2", Subtext: "#BFBFBF", Dim: "#6272A4",
			Accent: "#BD93F9", Lavender: "#BD93F9", Sapphire: "#8BE9FD", Red: "#FF5555",
			Bar: "#FF79C6", ActiveBar: "#FFB86C", Line: "#FF5555",
		},
		{
			Name: "Nord", Icon: "❄",
			Base: "#2E3440", Surface1: "#434C5E",
			Text: "#ECEFF4", Subtext: "#D8DEE9", Dim: "#4C566A",
			Accent: "#B48EAD", Lavender: "#B48EAD", Sapphire: "#88C0D0", Red: "#BF616A",
			Bar: "#B48EAD", ActiveBar: "#D08770", Line: "#BF616A",
		},
		{
			Name: "Tokyo Night", Icon: "🌃",
			Base: "#1A1B26", Surface1: "#414868",
			Text: "#C0CAF5", Subtext: "#A9B1D6", Dim: "#565F89",
			Accent: "#BB9AF7", Lavender: "#BB9AF7", Sapphire: "#7DCFFF", Red: "#F7768E",
			Bar: "#BB9AF7", ActiveBar: "#FF9E64", Line: "#F7768E",
		},
		{
			Name: "Grayscale", Icon: "⬛",
			Base: "#101010", Surface1: "#3A3A3A",
			Text: "#E0E0E0", Subtext: "#B0B0B0", Dim: "#5A5A5A",
			Accent: "#FFFFFF", Lavender: "#D0D0D0", Sapphire: "#C0C0C0", Red: "#FFFFFF",
			Bar: "#707070", ActiveBar: "#B0B0B0", Line: "#FFFFFF",
		},
	}
}

func defaultThemeIndex(all []Theme) int {
	for i, t := range all {
		if strings.EqualFold(strings.TrimSpace(t.Name), defaultThemeName) {
			return i
		}
	}
	return 0
}

func trimColor(c lipgloss.Color) lipgloss.Color {
	return lipgloss.Color(strings.TrimSpace(string(c)))
}

func normalizeTheme(in Theme) Theme {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if in.Icon == "" {
		in.Icon = "🎨"
	}

	in.Base = trimColor(in.Base)
	in.Surface1 = trimColor(in.Surface1)
	in.Text = trimColor(in.Text)
	in.Subtext = trimColor(in.Subtext)
	in.Dim = trimColor(in.Dim)
	in.Accent = trimColor(in.Accent)
	in.Lavender = trimColor(in.Lavender)
	in.Sapphire = trimColor(in.Sapphire)
	in.Red = trimColor(in.Red)
	in.Bar = trimColor(in.Bar)
	in.ActiveBar = trimColor(in.ActiveBar)
	in.Line = trimColor(in.Line)

	return in
}

func (t Theme) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("missing required field: name")
	}
	fields := []struct {
		name  string
		value lipgloss.Color
	}{
		{"base", t.Base}, {"surface1", t.Surface1},
		{"text", t.Text}, {"subtext", t.Subtext}, {"dim", t.Dim},
		{"accent", t.Accent}, {"lavender", t.Lavender}, {"sapphire", t.Sapphire}, {"red", t.Red},
		{"bar", t.Bar}, {"active_bar", t.ActiveBar}, {"line", t.Line},
	}
	missing := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(string(f.value)) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required color fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func themeSearchDirs(configDir string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}

	if strings.TrimSpace(configDir) != "" {
		add(filepath.Join(configDir, "themes"))
	}
	if env := strings.TrimSpace(os.Getenv(themeDirEnvVar)); env != "" {
		for _, part := range strings.Split(env, string(os.PathListSeparator)) {
			add(part)
		}
	}
	return out
}

func loadThemesFromDir(dir string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read theme dir %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	loaded := make([]Theme, 0, len(entries))
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, readErr))
			continue
		}

		var t Theme
		if unmarshalErr := json.Unmarshal(data, &t); unmarshalErr != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", path, unmarshalErr))
			continue
		}

		t = normalizeTheme(t)
		if validateErr := t.validate(); validateErr != nil {
			errs = append(errs, fmt.Errorf("validate %s: %w", path, validateErr))
			continue
		}
		loaded = append(loaded, t)
	}

	return loaded, errors.Join(errs...)
}

func mergeThemes(base, extra []Theme) []Theme {
	if len(extra) == 0 {
		return base
	}
	merged := append([]Theme(nil), base...)
	indexByName := make(map[string]int, len(merged))
	for i, t := range merged {
		indexByName[strings.ToLower(strings.TrimSpace(t.Name))] = i
	}
	for _, t := range extra {
		k := strings.ToLower(strings.TrimSpace(t.Name))
		if i, ok := indexByName[k]; ok {
			merged[i] = t
			continue
		}
		indexByName[k] = len(merged)
		merged = append(merged, t)
	}
	return merged
}

func setActiveThemeByNameLocked(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(themes) == 0 {
		return false
	}
	needle := strings.ToLower(name)
	for i, t := range themes {
		if t.Name == name || strings.ToLower(t.Name) == needle {
			activeThemeIdx = i
			applyTheme(t)
			return true
		}
	}
	return false
}

// LoadThemes reloads the theme catalog from built-ins plus external theme files.
//
// External files are loaded from:
//  1. <configDir>/themes
//  2. each path in COVIDBOARD_THEME_DIR (path-list separated)
//
// Invalid theme files are skipped. The function returns an aggregated error when
// one or more files fail to load, while still keeping valid themes available.
func LoadThemes(configDir string) error {
	themeMu.Lock()
	defer themeMu.Unlock()

	currentName := ""
	if len(themes) > 0 && activeThemeIdx >= 0 && activeThemeIdx < len(themes) {
		currentName = themes[activeThemeIdx].Name
	}

	nextThemes := builtinThemes()
	var errs []error
	for _, dir := range themeSearchDirs(configDir) {
		loaded, err := loadThemesFromDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		nextThemes = mergeThemes(nextThemes, loaded)
	}

	themes = nextThemes
	if !setActiveThemeByNameLocked(currentName) {
		activeThemeIdx = defaultThemeIndex(themes)
		if len(themes) > 0 {
			applyTheme(themes[activeThemeIdx])
		}
	}

	return errors.Join(errs...)
}

func AvailableThemes() []Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()

	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

func ActiveTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if len(themes) == 0 {
		return Theme{Name: "Theme", Icon: "🎨"}
	}
	if activeThemeIdx < 0 || activeThemeIdx >= len(themes) {
		return themes[0]
	}
	return themes[activeThemeIdx]
}

func CycleTheme() string {
	themeMu.Lock()
	defer themeMu.Unlock()

	if len(themes) == 0 {
		return ""
	}
	activeThemeIdx = (activeThemeIdx + 1) % len(themes)
	applyTheme(themes[activeThemeIdx])
	return themes[activeThemeIdx].Name
}

func ThemeName() string {
	t := ActiveTheme()
	if t.Name == "" {
		return "🎨 Theme"
	}
	if strings.TrimSpace(t.Icon) == "" {
		return t.Name
	}
	return t.Icon + " " + t.Name
}

func SetThemeByName(name string) bool {
	themeMu.Lock()
	defer themeMu.Unlock()
	return setActiveThemeByNameLocked(name)
}
