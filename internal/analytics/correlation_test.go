package analytics

import (
	"math"
	"testing"
)

func TestPearsonPerfectCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{2, 4, 6, 8}
	if got := Pearson(x, y); got != 1.0 {
		t.Errorf("Pearson: got %f, want 1.0", got)
	}
	inv := []float64{8, 6, 4, 2}
	if got := Pearson(x, inv); got != -1.0 {
		t.Errorf("Pearson inverse: got %f, want -1.0", got)
	}
}

func TestPearsonSymmetry(t *testing.T) {
	x := []float64{0.1, -0.4, 0.9, 0.3, -0.2}
	y := []float64{1.5, 0.2, 3.1, 2.0, 0.8}
	if Pearson(x, y) != Pearson(y, x) {
		t.Errorf("Pearson not symmetric: %f vs %f", Pearson(x, y), Pearson(y, x))
	}
}

func TestPearsonSelf(t *testing.T) {
	x := []float64{0.2, 0.5, -0.3, 0.7}
	if got := Pearson(x, x); math.Abs(got-1.0) > 0.001 {
		t.Errorf("Pearson(x,x): got %f, want ~1.0", got)
	}
}

func TestPearsonDegenerateInputs(t *testing.T) {
	cases := []struct {
		name string
		x, y []float64
	}{
		{"empty", nil, nil},
		{"single point", []float64{1}, []float64{2}},
		{"mismatched lengths", []float64{1, 2, 3}, []float64{1, 2}},
		{"zero variance x", []float64{5, 5, 5}, []float64{1, 2, 3}},
		{"zero variance y", []float64{1, 2, 3}, []float64{5, 5, 5}},
	}
	for _, c := range cases {
		if got := Pearson(c.x, c.y); got != 0.0 {
			t.Errorf("%s: got %f, want exactly 0.0", c.name, got)
		}
	}
}

func TestPearsonRounding(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{1, 2, 4}
	got := Pearson(x, y)
	if got != math.Round(got*1000)/1000 {
		t.Errorf("result not rounded to 3 decimals: %v", got)
	}
}

func TestCorrelateAlignsByDate(t *testing.T) {
	a := DailySeries{"2025-06-10": 1, "2025-06-11": 2, "2025-06-12": 3, "2025-06-13": 9}
	b := DailySeries{"2025-06-10": 2, "2025-06-11": 4, "2025-06-12": 6, "2025-06-09": -50}
	// Shared dates 10..12 correlate perfectly; the stray points are ignored.
	if got := Correlate(a, b); got != 1.0 {
		t.Errorf("Correlate: got %f, want 1.0", got)
	}
}

func TestCorrelateTooFewSharedDates(t *testing.T) {
	a := DailySeries{"2025-06-10": 1, "2025-06-11": 2}
	b := DailySeries{"2025-06-11": 5, "2025-06-12": 6}
	if got := Correlate(a, b); got != 0.0 {
		t.Errorf("Correlate with one shared date: got %f, want 0.0", got)
	}
	if got := Correlate(a, DailySeries{}); got != 0.0 {
		t.Errorf("Correlate with empty series: got %f, want 0.0", got)
	}
}

func TestAverageMood(t *testing.T) {
	if got := AverageMood(DailySeries{}); got != 0.0 {
		t.Errorf("empty series: got %f, want 0.0", got)
	}
	s := DailySeries{"2025-06-10": 0.25, "2025-06-11": 0.5, "2025-06-12": 0.25}
	if got := AverageMood(s); got != 0.333 {
		t.Errorf("AverageMood: got %f, want 0.333", got)
	}
}
