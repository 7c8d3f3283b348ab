package grid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Positive returns the finite pixel values strictly greater than zero.
func Positive(g *Grid) []float64 {
	out := make([]float64, 0, len(g.values))
	for _, v := range g.values {
		if v > 0 && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// SigmaClippedStats iteratively discards samples more than sigma standard
// deviations from the mean, then returns the mean and standard deviation of
// the survivors. An empty input returns NaNs.
func SigmaClippedStats(values []float64, sigma float64, iters int) (mean, std float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	kept := append([]float64(nil), values...)
	for i := 0; i < iters; i++ {
		m := stat.Mean(kept, nil)
		s := stddev(kept)
		next := kept[:0]
		for _, v := range kept {
			if math.Abs(v-m) <= sigma*s {
				next = append(next, v)
			}
		}
		if len(next) == 0 || len(next) == len(kept) {
			break
		}
		kept = next
	}
	return stat.Mean(kept, nil), stddev(kept)
}

// stddev is the sample standard deviation, defined as 0 for fewer than two
// samples.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return math.Sqrt(stat.Variance(values, nil))
}

// Percentile returns the p-th percentile (0-100) of values using linear
// interpolation between order statistics. An empty input returns NaN.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
