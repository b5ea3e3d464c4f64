// Package series turns daily case records into the enriched series the
// national curve is drawn from.
package series

import (
	"math"
	"slices"
	"time"

	"github.com/samber/lo"
)

// DateLayout is the calendar date format used across the dataset.
const DateLayout = "2006-01-02"

// DefaultWindow is the trailing moving-average window in days.
const DefaultWindow = 7

// DailyRecord is one day of the source dataset.
//
// NewConfirmed is a float so that a value the loader could not read as a
// number survives as NaN until validation rejects it.
type DailyRecord struct {
	Date         time.Time
	NewConfirmed float64
}

// EnrichedRecord is a validated DailyRecord with its trailing average.
type EnrichedRecord struct {
	Date         time.Time
	NewConfirmed int
	MovingAvg    float64
}

// TooltipPayload is what a presentation layer needs to label a hovered day.
type TooltipPayload struct {
	Date         time.Time
	NewConfirmed int
}

// Series is an immutable, date-ordered run of enriched records. The index is
// the unit of alignment between scales, averages and pointer resolution.
type Series struct {
	records []EnrichedRecord
	window  int
}

// Enrich validates records, computes their moving averages and zips both into
// a new Series. The input slice is left untouched.
func Enrich(records []DailyRecord, window int) (*Series, error) {
	avgs, err := MovingAverages(records, window)
	if err != nil {
		return nil, err
	}
	out := make([]EnrichedRecord, len(records))
	for i, r := range records {
		out[i] = EnrichedRecord{
			Date:         CalendarDate(r.Date),
			NewConfirmed: int(r.NewConfirmed),
			MovingAvg:    avgs[i],
		}
	}
	return &Series{records: out, window: normalizeWindow(window)}, nil
}

// Len returns the number of records; a nil Series is empty.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

func (s *Series) Empty() bool { return s.Len() == 0 }

func (s *Series) Window() int {
	if s == nil {
		return DefaultWindow
	}
	return s.window
}

// At returns the record at index i. It panics when i is out of range.
func (s *Series) At(i int) EnrichedRecord {
	return s.records[i]
}

// Records returns a copy of the enriched records.
func (s *Series) Records() []EnrichedRecord {
	if s == nil {
		return nil
	}
	out := make([]EnrichedRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Series) Dates() []time.Time {
	if s == nil {
		return nil
	}
	return lo.Map(s.records, func(r EnrichedRecord, _ int) time.Time { return r.Date })
}

func (s *Series) MovingAverages() []float64 {
	if s == nil {
		return nil
	}
	return lo.Map(s.records, func(r EnrichedRecord, _ int) float64 { return r.MovingAvg })
}

// MaxNewConfirmed returns the largest daily count, or 0 for an empty series.
func (s *Series) MaxNewConfirmed() int {
	if s.Empty() {
		return 0
	}
	return lo.MaxBy(s.records, func(a, b EnrichedRecord) bool {
		return a.NewConfirmed > b.NewConfirmed
	}).NewConfirmed
}

// Extent returns the first and last dates of the series.
func (s *Series) Extent() (time.Time, time.Time) {
	if s.Empty() {
		return time.Time{}, time.Time{}
	}
	minD, maxD := s.records[0].Date, s.records[0].Date
	for _, r := range s.records[1:] {
		if r.Date.Before(minD) {
			minD = r.Date
		}
		if r.Date.After(maxD) {
			maxD = r.Date
		}
	}
	return minD, maxD
}

func (s *Series) Total() int {
	if s == nil {
		return 0
	}
	return lo.SumBy(s.records, func(r EnrichedRecord) int { return r.NewConfirmed })
}

// Latest returns the most recent record.
func (s *Series) Latest() (EnrichedRecord, bool) {
	if s.Empty() {
		return EnrichedRecord{}, false
	}
	return s.records[len(s.records)-1], true
}

// Tail returns up to n most recent records, newest first.
func (s *Series) Tail(n int) []EnrichedRecord {
	if s.Empty() || n <= 0 {
		return nil
	}
	if n > len(s.records) {
		n = len(s.records)
	}
	tail := append([]EnrichedRecord(nil), s.records[len(s.records)-n:]...)
	slices.Reverse(tail)
	return tail
}

func (s *Series) Payload(i int) TooltipPayload {
	r := s.records[i]
	return TooltipPayload{Date: r.Date, NewConfirmed: r.NewConfirmed}
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizeWindow(window int) int {
	if window <= 0 {
		return DefaultWindow
	}
	return window
}

// MaxCount is the largest daily count accepted. Above 2^53 a float64 no
// longer holds every integer, and past math.MaxInt the conversion to int is
// undefined.
const MaxCount = min(1<<53, math.MaxInt)

func validCount(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= MaxCount && v == math.Trunc(v)
}
