package simulation

import (
	"math"
	"slices"
)

// Summary holds the percentile reduction of an outcome distribution.
type Summary struct {
	P10                float64
	P25                float64
	P50                float64
	P75                float64
	P90                float64
	Mean               float64
	StdDev             float64
	Min                float64
	Max                float64
	ProbabilitySuccess float64
	// CI95 is the 95% confidence interval of the MEAN (mean ± 1.96·s/√N),
	// not of the distribution. Outcome distributions here are frequently
	// capped and skewed, so the interval deliberately answers "how well is
	// the mean pinned down" and narrows as trials increase.
	CI95 [2]float64
}

// Summarize reduces outcomes to the statistical fields of a Result. Standard
// deviation uses the sample formula (N-1) consistently across all scenarios.
// success may be nil when no predicate applies.
func Summarize(outcomes []float64, success []bool) Summary {
	if len(outcomes) == 0 {
		return Summary{}
	}

	sorted := sortedCopy(outcomes)
	m := mean(outcomes)
	sd := sampleStdDev(outcomes, m)

	half := 1.96 * sd / math.Sqrt(float64(len(outcomes)))

	s := Summary{
		P10:    percentileSorted(sorted, 10),
		P25:    percentileSorted(sorted, 25),
		P50:    percentileSorted(sorted, 50),
		P75:    percentileSorted(sorted, 75),
		P90:    percentileSorted(sorted, 90),
		Mean:   m,
		StdDev: sd,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		CI95:   [2]float64{m - half, m + half},
	}

	if len(success) > 0 {
		hits := 0
		for _, ok := range success {
			if ok {
				hits++
			}
		}
		s.ProbabilitySuccess = float64(hits) / float64(len(success))
	}

	return s
}

// percentile computes the p-th percentile (0-100) with linear interpolation
// between closest ranks, matching the usual default of numeric libraries.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return percentileSorted(sortedCopy(values), p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	if lo == hi {
		return sorted[lo]
	}

	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func sampleStdDev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

// skewness uses the adjusted Fisher-Pearson coefficient to label the
// distribution shape in result metadata.
func skewness(values []float64, m, sd float64) float64 {
	n := float64(len(values))
	if n < 3 || sd == 0 {
		return 0
	}
	var cubed float64
	for _, v := range values {
		d := (v - m) / sd
		cubed += d * d * d
	}
	return n / ((n - 1) * (n - 2)) * cubed
}

func classifyDistribution(outcomes []float64, s Summary) string {
	if s.StdDev == 0 {
		return "degenerate"
	}
	skew := skewness(outcomes, s.Mean, s.StdDev)
	switch {
	case skew > 0.5:
		return "right_skewed"
	case skew < -0.5:
		return "left_skewed"
	default:
		return "approximately_normal"
	}
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	slices.Sort(sorted)
	return sorted
}
