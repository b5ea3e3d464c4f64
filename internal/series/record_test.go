package series

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestEnrich_ZipsAverages(t *testing.T) {
	recs := recordsOf(10, 20, 30, 40, 50, 60, 70, 100)
	s, err := Enrich(recs, 7)
	if err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}
	if s.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", s.Len())
	}
	last := s.At(7)
	if last.NewConfirmed != 100 || last.MovingAvg != 40 {
		t.Fatalf("At(7) = %+v, want count 100 avg 40", last)
	}
	if !last.Date.Equal(day(7)) {
		t.Fatalf("At(7).Date = %v, want %v", last.Date, day(7))
	}
	if s.Window() != 7 {
		t.Fatalf("Window() = %d, want 7", s.Window())
	}
}

func TestEnrich_PropagatesShapeError(t *testing.T) {
	s, err := Enrich(recordsOf(1, math.NaN()), 7)
	if s != nil {
		t.Fatal("expected nil series on error")
	}
	if !errors.Is(err, ErrDataShape) {
		t.Fatalf("err = %v, want ErrDataShape", err)
	}
	if !strings.Contains(err.Error(), "2021-01-02") {
		t.Fatalf("error %q should name the record date", err)
	}
}

func TestEnrich_NormalizesDates(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	recs := []DailyRecord{{Date: time.Date(2021, 3, 4, 18, 30, 0, 0, loc), NewConfirmed: 3}}
	s, err := Enrich(recs, 7)
	if err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}
	want := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := s.At(0).Date; !got.Equal(want) {
		t.Fatalf("date = %v, want %v", got, want)
	}
}

func TestSeries_Summaries(t *testing.T) {
	s, err := Enrich(recordsOf(4, 9, 2, 7), 2)
	if err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}
	if got := s.MaxNewConfirmed(); got != 9 {
		t.Fatalf("MaxNewConfirmed() = %d, want 9", got)
	}
	if got := s.Total(); got != 22 {
		t.Fatalf("Total() = %d, want 22", got)
	}
	latest, ok := s.Latest()
	if !ok || latest.NewConfirmed != 7 || latest.MovingAvg != 5.5 {
		t.Fatalf("Latest() = %+v, %v", latest, ok)
	}
	first, last := s.Extent()
	if !first.Equal(day(0)) || !last.Equal(day(3)) {
		t.Fatalf("Extent() = %v..%v", first, last)
	}
	tail := s.Tail(2)
	if len(tail) != 2 || tail[0].NewConfirmed != 7 || tail[1].NewConfirmed != 2 {
		t.Fatalf("Tail(2) = %+v, want newest first", tail)
	}
	if p := s.Payload(1); p.NewConfirmed != 9 || !p.Date.Equal(day(1)) {
		t.Fatalf("Payload(1) = %+v", p)
	}
}

func TestSeries_NilIsEmpty(t *testing.T) {
	var s *Series
	if !s.Empty() || s.Len() != 0 || s.MaxNewConfirmed() != 0 || s.Total() != 0 {
		t.Fatal("nil series should behave as empty")
	}
	if _, ok := s.Latest(); ok {
		t.Fatal("Latest() on nil series should report false")
	}
}

func TestSeries_RecordsIsCopy(t *testing.T) {
	s, _ := Enrich(recordsOf(1, 2, 3), 7)
	recs := s.Records()
	recs[0].NewConfirmed = 999
	if s.At(0).NewConfirmed != 1 {
		t.Fatal("Records() should return a copy")
	}
}
