package simulation

import "math"

// convergenceThreshold is the relative split-half difference below which the
// trial count is considered sufficient for stable statistics.
const convergenceThreshold = 0.01

// Convergence reports whether the trial count was large enough.
type Convergence struct {
	Converged          bool    `json:"converged"`
	RelativeDifference float64 `json:"relative_difference"`
}

// CheckConvergence splits the outcomes by index into two halves and compares
// their means. A relative difference under 1% means adding more trials would
// barely move the summary statistics.
func CheckConvergence(outcomes []float64) Convergence {
	if len(outcomes) < 4 {
		return Convergence{Converged: false, RelativeDifference: math.Inf(1)}
	}

	half := len(outcomes) / 2
	mean1 := mean(outcomes[:half])
	mean2 := mean(outcomes[half:])

	denom := math.Max(math.Abs(mean1), 1e-9)
	rel := math.Abs(mean1-mean2) / denom

	return Convergence{
		Converged:          rel < convergenceThreshold,
		RelativeDifference: rel,
	}
}

// CountOutliers counts values beyond the 1.5x IQR fences. Clamped scenario
// outputs rarely trip this; a high count usually means the distribution is
// heavy-tailed and the percentile summary should be read with care.
func CountOutliers(outcomes []float64) int {
	if len(outcomes) < 4 {
		return 0
	}

	sorted := sortedCopy(outcomes)
	q1 := percentileSorted(sorted, 25)
	q3 := percentileSorted(sorted, 75)
	iqr := q3 - q1
	if iqr <= 0 {
		return 0
	}

	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	count := 0
	for _, v := range outcomes {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
