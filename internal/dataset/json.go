package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

type jsonRecord struct {
	Date         string          `json:"Date"`
	NewConfirmed json.RawMessage `json:"NewConfirmed"`
}

type jsonFile struct {
	Data       []jsonRecord `json:"Data"`
	UpdateDate string       `json:"UpdateDate"`
}

func LoadJSONFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset: opening %s: %w", path, err)
	}
	defer f.Close()

	d, err := ReadJSON(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset: reading %s: %w", path, err)
	}
	d.Source = path
	return d, nil
}

// ReadJSON decodes either {"Data":[...],"UpdateDate":"..."} or a bare array
// of {"Date":..., "NewConfirmed":...} objects.
//
// A NewConfirmed that is not a JSON number (a string, null, or absent) is
// carried as NaN so the aggregator rejects it with a DataShapeError. An
// unreadable date is rejected here.
func ReadJSON(r io.Reader) (Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, err
	}
	raw = bytes.TrimSpace(raw)

	var file jsonFile
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &file.Data); err != nil {
			return Dataset{}, fmt.Errorf("parsing records: %w", err)
		}
	} else if err := json.Unmarshal(raw, &file); err != nil {
		return Dataset{}, fmt.Errorf("parsing dataset: %w", err)
	}

	d := Dataset{Records: make([]series.DailyRecord, 0, len(file.Data))}
	for i, jr := range file.Data {
		date, err := ParseDate(jr.Date)
		if err != nil {
			return Dataset{}, series.NewDataShapeError(i, time.Time{}, "Date", math.NaN(), err)
		}
		d.Records = append(d.Records, series.DailyRecord{
			Date:         date,
			NewConfirmed: decodeCount(jr.NewConfirmed),
		})
	}

	if file.UpdateDate != "" {
		if t, err := ParseDate(file.UpdateDate); err == nil {
			d.UpdatedOn = t
		} else {
			log.Printf("dataset: ignoring UpdateDate: %v", err)
		}
	}
	return d, nil
}

func decodeCount(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || raw[0] == 'n' {
		return math.NaN()
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return math.NaN()
	}
	return v
}
