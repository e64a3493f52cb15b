package evaluator

import "github.com/evalgate/evalgate/pkg/types"

// metricAverages computes the arithmetic mean per metric across all cases,
// ignoring cases where a metric was not evaluated. Full float64 precision
// is retained; rounding happens only at render time.
func metricAverages(cases []types.CaseResult) map[types.Metric]float64 {
	sums := make(map[types.Metric]float64)
	counts := make(map[types.Metric]int)
	for i := range cases {
		for _, r := range cases[i].Results {
			sums[r.Metric] += r.Score
			counts[r.Metric]++
		}
	}

	averages := make(map[types.Metric]float64, len(sums))
	for m, sum := range sums {
		averages[m] = sum / float64(counts[m])
	}
	return averages
}

// overallAverage is the mean over every metric score in the run.
func overallAverage(cases []types.CaseResult) float64 {
	var sum float64
	var n int
	for i := range cases {
		for _, r := range cases[i].Results {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// allPassed is the logical AND over case verdicts.
func allPassed(cases []types.CaseResult) bool {
	for i := range cases {
		if !cases[i].Passed {
			return false
		}
	}
	return true
}

// anyCritical reports whether any zero-tolerance metric scored above 0.0
// anywhere in the run.
func anyCritical(cases []types.CaseResult) bool {
	for i := range cases {
		for _, r := range cases[i].Results {
			if r.Metric.ZeroTolerance() && r.Score > types.ZeroToleranceThreshold {
				return true
			}
		}
	}
	return false
}
