package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func configureReadOnlyConnection(db *sql.DB) error {
	if db == nil {
		return nil
	}
	if _, err := db.Exec(`PRAGMA query_only = ON;`); err != nil {
		return fmt.Errorf("set query_only: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		return fmt.Errorf("set busy_timeout: %w", err)
	}
	db.SetMaxOpenConns(1)
	return nil
}

// sqlCount converts a scanned new_confirmed cell. NULL and text that is not a
// number become NaN, which validation later reports as a DataShapeError.
func sqlCount(v any) float64 {
	switch v := v.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	case []byte:
		return parseCount(string(v))
	case string:
		return parseCount(v)
	default:
		return math.NaN()
	}
}

func parseCount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// LoadSQLite reads table (date TEXT, new_confirmed INTEGER|REAL) from the
// database at path, ordered by date. The file is opened read-only.
func LoadSQLite(ctx context.Context, path, table string) (Dataset, error) {
	path = strings.TrimSpace(path)
	if table = strings.TrimSpace(table); table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return Dataset{}, fmt.Errorf("dataset: invalid table name %q", table)
	}
	if _, err := os.Stat(path); err != nil {
		return Dataset{}, fmt.Errorf("dataset: opening %s: %w", path, err)
	}

	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer db.Close()
	if err := configureReadOnlyConnection(db); err != nil {
		return Dataset{}, fmt.Errorf("dataset: configure %s: %w", path, err)
	}

	rows, err := db.QueryContext(ctx, `SELECT date, new_confirmed FROM `+table+` ORDER BY date`)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset: query %s: %w", table, err)
	}
	defer rows.Close()

	d := Dataset{Source: path}
	for i := 0; rows.Next(); i++ {
		var (
			rawDate string
			count   any
		)
		if err := rows.Scan(&rawDate, &count); err != nil {
			return Dataset{}, fmt.Errorf("dataset: scan row %d: %w", i, err)
		}
		date, err := ParseDate(rawDate)
		if err != nil {
			return Dataset{}, series.NewDataShapeError(i, date, "Date", math.NaN(), err)
		}
		d.Records = append(d.Records, series.DailyRecord{Date: date, NewConfirmed: sqlCount(count)})
	}
	if err := rows.Err(); err != nil {
		return Dataset{}, fmt.Errorf("dataset: read %s: %w", table, err)
	}
	return d, nil
}
