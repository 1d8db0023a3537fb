package analytics

import (
	"math"
	"sort"
)

// Pearson returns the Pearson correlation coefficient of two equal-length
// vectors, rounded to 3 decimals. Degenerate input — mismatched lengths, fewer
// than two points, or zero variance in either vector — yields 0.0 rather than
// an error; insights must render even with no usable data.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0.0
	}
	mx := mean(x)
	my := mean(y)

	var num, sqx, sqy float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		num += dx * dy
		sqx += dx * dx
		sqy += dy * dy
	}

	den := math.Sqrt(sqx * sqy)
	if den == 0 {
		return 0.0
	}
	return round3(num / den)
}

// Correlate aligns two daily series on their shared dates, ascending, and
// correlates the paired values. Fewer than two shared dates yields 0.0.
func Correlate(a, b DailySeries) float64 {
	dates := commonDates(a, b)
	if len(dates) < 2 {
		return 0.0
	}
	return Pearson(pick(a, dates), pick(b, dates))
}

// AverageMood is the mean of a mood series' per-day averages, rounded to 3
// decimals; 0.0 for an empty series.
func AverageMood(mood DailySeries) float64 {
	if len(mood) == 0 {
		return 0.0
	}
	return round3(mean(values(mood)))
}

// commonDates intersects the date keys of all given series, ascending.
func commonDates(series ...DailySeries) []string {
	if len(series) == 0 {
		return nil
	}
	var dates []string
	for k := range series[0] {
		shared := true
		for _, s := range series[1:] {
			if _, ok := s[k]; !ok {
				shared = false
				break
			}
		}
		if shared {
			dates = append(dates, k)
		}
	}
	sort.Strings(dates)
	return dates
}

func pick(s DailySeries, dates []string) []float64 {
	out := make([]float64, len(dates))
	for i, d := range dates {
		out[i] = s[d]
	}
	return out
}

func values(s DailySeries) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	return out
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
