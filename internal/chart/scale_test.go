package chart

import (
	"math"
	"testing"
	"time"

	"github.com/plumsirawit/the-researcher-covid-bot/internal/series"
)

func testDay(n int) time.Time {
	return time.Date(2020, time.December, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func testSeries(t *testing.T, counts ...float64) *series.Series {
	t.Helper()
	recs := make([]series.DailyRecord, len(counts))
	for i, c := range counts {
		recs[i] = series.DailyRecord{Date: testDay(i), NewConfirmed: c}
	}
	s, err := series.Enrich(recs, 7)
	if err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}
	return s
}

func rampSeries(t *testing.T, n int) *series.Series {
	t.Helper()
	counts := make([]float64, n)
	for i := range counts {
		counts[i] = float64((i*37)%101 + 1)
	}
	return testSeries(t, counts...)
}

func TestBuildScales_BandsStayInRange(t *testing.T) {
	for _, n := range []int{1, 2, 5, 31, 120} {
		s := rampSeries(t, n)
		sc := BuildScales(s, 800, 300, DefaultMargins(), DefaultPadding)
		if sc.Band.Len() != n {
			t.Fatalf("n=%d: band len = %d", n, sc.Band.Len())
		}
		const eps = 1e-9
		for i := 0; i < n; i++ {
			start, end := sc.Band.At(i)
			if start < sc.Band.Start-eps || end > sc.Band.End+eps {
				t.Fatalf("n=%d: band %d = [%v,%v) outside [%v,%v]", n, i, start, end, sc.Band.Start, sc.Band.End)
			}
			if math.Abs((end-start)-sc.Band.Bandwidth()) > eps {
				t.Fatalf("n=%d: band %d width %v, want %v", n, i, end-start, sc.Band.Bandwidth())
			}
		}
		if _, end := sc.Band.At(n - 1); math.Abs(end-sc.Band.End) > 1e-6 {
			t.Fatalf("n=%d: last band ends at %v, want flush with %v", n, end, sc.Band.End)
		}
		if start, _ := sc.Band.At(0); start != sc.Band.Start {
			t.Fatalf("n=%d: first band starts at %v, want %v", n, start, sc.Band.Start)
		}
	}
}

func TestBuildScales_PaddingBetweenBands(t *testing.T) {
	s := rampSeries(t, 10)
	sc := BuildScales(s, 200, 100, Margins{}, 0.07)
	_, end0 := sc.Band.At(0)
	start1, _ := sc.Band.At(1)
	gap := start1 - end0
	if math.Abs(gap-0.07*sc.Band.Step()) > 1e-9 {
		t.Fatalf("gap = %v, want 7%% of step %v", gap, sc.Band.Step())
	}
}

func TestBuildScales_SingleRecordSpansRange(t *testing.T) {
	s := testSeries(t, 42)
	sc := BuildScales(s, 400, 300, DefaultMargins(), DefaultPadding)
	start, end := sc.Band.At(0)
	if start != 10 || end != 390 {
		t.Fatalf("band = [%v,%v), want [10,390)", start, end)
	}
}

func TestBuildScales_Empty(t *testing.T) {
	s := testSeries(t)
	sc := BuildScales(s, 800, 300, DefaultMargins(), DefaultPadding)
	if !sc.Empty() {
		t.Fatal("expected empty scales")
	}
	if sc.Band.Bandwidth() != 0 {
		t.Fatalf("bandwidth = %v, want 0", sc.Band.Bandwidth())
	}
	if v := sc.Value.Scale(10); math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("value scale on empty domain = %v", v)
	}
	if t0 := sc.Time.Invert(100); !t0.IsZero() {
		t.Fatalf("time invert on empty domain = %v", t0)
	}
}

func TestBuildScales_ValueRangeInverted(t *testing.T) {
	s := testSeries(t, 0, 50, 100)
	sc := BuildScales(s, 800, 300, DefaultMargins(), DefaultPadding)
	if got := sc.Value.Scale(0); got != 270 {
		t.Fatalf("Scale(0) = %v, want 270 (plot bottom)", got)
	}
	if got := sc.Value.Scale(100); got != 50 {
		t.Fatalf("Scale(max) = %v, want 50 (top margin)", got)
	}
	if got := sc.Value.Scale(50); got != 160 {
		t.Fatalf("Scale(50) = %v, want 160", got)
	}
	if got := sc.Value.Invert(160); math.Abs(got-50) > 1e-9 {
		t.Fatalf("Invert(160) = %v, want 50", got)
	}
}

func TestBuildScales_TimeScaleRoundTrip(t *testing.T) {
	s := rampSeries(t, 30)
	sc := BuildScales(s, 800, 300, DefaultMargins(), DefaultPadding)
	if got := sc.Time.Scale(testDay(0)); got != 10 {
		t.Fatalf("Scale(first) = %v, want 10", got)
	}
	if got := sc.Time.Scale(testDay(29)); got != 790 {
		t.Fatalf("Scale(last) = %v, want 790", got)
	}
	mid := testDay(10)
	if back := sc.Time.Invert(sc.Time.Scale(mid)); back.Sub(mid).Abs() > time.Millisecond {
		t.Fatalf("Invert(Scale(%v)) = %v", mid, back)
	}
}

func TestBuildScales_InvalidPaddingFallsBack(t *testing.T) {
	s := rampSeries(t, 4)
	sc := BuildScales(s, 800, 300, DefaultMargins(), 1.5)
	if sc.Band.Padding != DefaultPadding {
		t.Fatalf("padding = %v, want %v", sc.Band.Padding, DefaultPadding)
	}
}
