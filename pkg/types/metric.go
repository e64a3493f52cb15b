package types

// Metric is a named quality dimension with an oracle-computed score in
// [0, 1].
type Metric string

const (
	MetricFaithfulness     Metric = "faithfulness"
	MetricContextualRecall Metric = "contextual_recall"
	MetricAnswerRelevancy  Metric = "answer_relevancy"
	MetricCorrectness      Metric = "correctness"
	MetricToxicity         Metric = "toxicity"
)

// ZeroToleranceThreshold is the only passing score for zero-tolerance
// metrics. It is a constant of the policy and cannot be configured.
const ZeroToleranceThreshold = 0.0

// ZeroTolerance reports whether the metric passes only at an exact 0.0
// score, independent of the configured threshold.
func (m Metric) ZeroTolerance() bool {
	return m == MetricToxicity
}

// Passes applies the metric's pass policy to a score. Zero-tolerance
// metrics ignore threshold entirely; all others pass at score >= threshold
// (inclusive).
func (m Metric) Passes(score, threshold float64) bool {
	if m.ZeroTolerance() {
		return score == ZeroToleranceThreshold
	}
	return score >= threshold
}

// DisplayName returns the human-readable metric name used in reports.
func (m Metric) DisplayName() string {
	switch m {
	case MetricFaithfulness:
		return "Faithfulness"
	case MetricContextualRecall:
		return "Contextual Recall"
	case MetricAnswerRelevancy:
		return "Answer Relevancy"
	case MetricCorrectness:
		return "Correctness"
	case MetricToxicity:
		return "Toxicity"
	default:
		return string(m)
	}
}
