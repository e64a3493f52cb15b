package types

import "time"

// MetricResult is the score and explanation the oracle produced for one
// (TestCase, Metric) pair. Pass/fail is always derived from the score and
// the metric's policy via Passed; it is never stored, so it cannot drift
// from the score.
type MetricResult struct {
	Metric      Metric  `json:"metric"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
	Cost        float64 `json:"cost"`
	DurationMS  int64   `json:"duration_ms"`
}

// Passed applies the metric's policy to the stored score.
func (r *MetricResult) Passed(threshold float64) bool {
	return r.Metric.Passes(r.Score, threshold)
}

// CaseResult groups every MetricResult for one test case. Passed is set
// once by the evaluator's case-pass policy when the CaseResult is built.
type CaseResult struct {
	Index   int            `json:"test_case_id"`
	Input   string         `json:"input"`
	Results []MetricResult `json:"results"`
	Passed  bool           `json:"passed"`
}

// MeanScore returns the arithmetic mean over the case's metric scores, at
// full float64 precision.
func (c *CaseResult) MeanScore() float64 {
	if len(c.Results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range c.Results {
		sum += r.Score
	}
	return sum / float64(len(c.Results))
}

// Result returns the case's result for the given metric, or nil if the
// metric was not evaluated for this case.
func (c *CaseResult) Result(m Metric) *MetricResult {
	for i := range c.Results {
		if c.Results[i].Metric == m {
			return &c.Results[i]
		}
	}
	return nil
}

// ResultSet is the full, immutable output of one evaluation run. It is
// created once by the evaluator and never mutated afterwards; the overall
// verdict is a pure function of the contained CaseResults and the
// subsystem's policy.
type ResultSet struct {
	RunID     string    `json:"run_id"`
	System    System    `json:"system"`
	Threshold float64   `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`

	Cases    []CaseResult       `json:"cases"`
	Averages map[Metric]float64 `json:"averages"`

	// OverallAverage is the mean over every metric score in the run.
	OverallAverage float64 `json:"overall_average"`

	// Passed is the logical AND over all case verdicts.
	Passed bool `json:"passed"`

	// Critical is set when any zero-tolerance metric scored above 0.0.
	Critical bool `json:"critical"`

	TotalCost  float64 `json:"total_cost"`
	DurationMS int64   `json:"duration_ms"`
}

// TotalCases returns the number of evaluated cases.
func (rs *ResultSet) TotalCases() int {
	return len(rs.Cases)
}

// FailedCases returns the indices of cases that did not pass.
func (rs *ResultSet) FailedCases() []int {
	var failed []int
	for _, c := range rs.Cases {
		if !c.Passed {
			failed = append(failed, c.Index)
		}
	}
	return failed
}
