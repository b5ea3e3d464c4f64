package series

import (
	"errors"
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func recordsOf(counts ...float64) []DailyRecord {
	out := make([]DailyRecord, len(counts))
	for i, c := range counts {
		out[i] = DailyRecord{Date: day(i), NewConfirmed: c}
	}
	return out
}

func TestMovingAverages_ExcludesCurrentDay(t *testing.T) {
	recs := recordsOf(10, 20, 30, 40, 50, 60, 70, 100)
	got, err := MovingAverages(recs, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	if math.Abs(got[7]-40) > 1e-9 {
		t.Fatalf("avg[7] = %v, want 40", got[7])
	}
}

func TestMovingAverages_ZeroPrefix(t *testing.T) {
	for _, n := range []int{0, 1, 3, 7, 8, 20} {
		counts := make([]float64, n)
		for i := range counts {
			counts[i] = float64(i*3 + 1)
		}
		got, err := MovingAverages(recordsOf(counts...), 7)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(got) != n {
			t.Fatalf("n=%d: len = %d", n, len(got))
		}
		for i := 0; i < min(7, n); i++ {
			if got[i] != 0 {
				t.Fatalf("n=%d: avg[%d] = %v, want 0", n, i, got[i])
			}
		}
	}
}

func TestMovingAverages_MatchesWindowMean(t *testing.T) {
	counts := []float64{5, 0, 12, 7, 88, 3, 14, 9, 41, 0, 0, 17, 250, 6, 1}
	for _, window := range []int{1, 3, 7} {
		got, err := MovingAverages(recordsOf(counts...), window)
		if err != nil {
			t.Fatalf("window=%d: unexpected error: %v", window, err)
		}
		for i := window; i < len(counts); i++ {
			var sum float64
			for j := i - window; j < i; j++ {
				sum += counts[j]
			}
			want := sum / float64(window)
			if math.Abs(got[i]-want) > 1e-9 {
				t.Fatalf("window=%d: avg[%d] = %v, want %v", window, i, got[i], want)
			}
		}
	}
}

func TestMovingAverages_DefaultWindow(t *testing.T) {
	recs := recordsOf(10, 20, 30, 40, 50, 60, 70, 100)
	got, err := MovingAverages(recs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[6] != 0 || got[7] != 40 {
		t.Fatalf("avg = %v, want default window of 7", got)
	}
}

func TestMovingAverages_Empty(t *testing.T) {
	got, err := MovingAverages(nil, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", got)
	}
}

func TestMovingAverages_DoesNotMutateInput(t *testing.T) {
	recs := recordsOf(1, 2, 3, 4, 5, 6, 7, 8, 9)
	before := append([]DailyRecord(nil), recs...)

	first, err := MovingAverages(recs, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := MovingAverages(recs, 7)

	for i := range recs {
		if recs[i] != before[i] {
			t.Fatalf("record %d mutated: %+v, was %+v", i, recs[i], before[i])
		}
		if first[i] != second[i] {
			t.Fatalf("avg[%d] differs between calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestMovingAverages_RejectsNaN(t *testing.T) {
	recs := recordsOf(10, 20, math.NaN(), 40)
	got, err := MovingAverages(recs, 7)
	if err == nil {
		t.Fatal("expected error for NaN count")
	}
	if got != nil {
		t.Fatalf("expected no partial output, got %v", got)
	}
	if !errors.Is(err, ErrDataShape) {
		t.Fatalf("error %v does not match ErrDataShape", err)
	}
	var shapeErr *DataShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("error %T is not *DataShapeError", err)
	}
	if shapeErr.Index != 2 || shapeErr.Field != "NewConfirmed" {
		t.Fatalf("shape error = %+v, want index 2 field NewConfirmed", shapeErr)
	}
	if !shapeErr.Date.Equal(day(2)) {
		t.Fatalf("shape error date = %v, want %v", shapeErr.Date, day(2))
	}
}

func TestMovingAverages_RejectsInvalidCounts(t *testing.T) {
	for _, bad := range []float64{-1, 2.5, math.Inf(1), 1e300, MaxCount + 2} {
		if _, err := MovingAverages(recordsOf(1, bad), 7); !errors.Is(err, ErrDataShape) {
			t.Fatalf("count %v: err = %v, want ErrDataShape", bad, err)
		}
	}
}

func TestMovingAverages_AcceptsLargestCount(t *testing.T) {
	got, err := MovingAverages(recordsOf(MaxCount, 0), 1)
	if err != nil {
		t.Fatalf("MovingAverages() error: %v", err)
	}
	if got[1] != MaxCount {
		t.Fatalf("average = %v, want %v", got[1], float64(MaxCount))
	}
}

func TestEnrich_RejectsHugeCount(t *testing.T) {
	_, err := Enrich(recordsOf(10, 1e300), 7)
	var shapeErr *DataShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("err = %v, want *DataShapeError", err)
	}
	if shapeErr.Index != 1 || shapeErr.Field != "NewConfirmed" || shapeErr.Value != 1e300 {
		t.Fatalf("shape error = %+v, want index 1 field NewConfirmed", shapeErr)
	}
}

func TestMovingAverages_RejectsMissingDate(t *testing.T) {
	recs := []DailyRecord{{Date: day(0), NewConfirmed: 1}, {NewConfirmed: 2}}
	_, err := MovingAverages(recs, 7)
	var shapeErr *DataShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("err = %v, want *DataShapeError", err)
	}
	if shapeErr.Field != "Date" || shapeErr.Index != 1 {
		t.Fatalf("shape error = %+v, want index 1 field Date", shapeErr)
	}
}
