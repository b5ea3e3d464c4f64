// Package dataset reads the pre-built national timeseries into typed daily
// records. It never writes to its sources.
package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "national_timeseries"

// Dataset is one immutable snapshot of the source data.
type Dataset struct {
	Records   []series.DailyRecord
	UpdatedOn time.Time // zero when the source does not say
	Source    string
}

// Source locates a dataset.
type Source struct {
	Path   string
	Format Format
	Table  string // SQLite only
}

func (s Source) resolvedFormat() Format {
	if s.Format != FormatAuto {
		return Format(strings.ToLower(string(s.Format)))
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Load reads the dataset described by src.
func Load(ctx context.Context, src Source) (Dataset, error) {
	if strings.TrimSpace(src.Path) == "" {
		return Dataset{}, fmt.Errorf("dataset: no path configured")
	}
	switch f := src.resolvedFormat(); f {
	case FormatJSON:
		return LoadJSONFile(src.Path)
	case FormatSQLite:
		return LoadSQLite(ctx, src.Path, src.Table)
	default:
		return Dataset{}, fmt.Errorf("dataset: unsupported format %q", f)
	}
}

// Enrich builds the chart series for d.
func (d Dataset) Enrich(window int) (*series.Series, error) {
	return series.Enrich(d.Records, window)
}

var dateLayouts = []string{
	series.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006",
	"01/02/2006 15:04",
}

// ParseDate accepts the date formats seen in published timeseries files.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}
