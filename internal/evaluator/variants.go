package evaluator

import (
	"github.com/evalgate/evalgate/internal/oracle"
	"github.com/evalgate/evalgate/pkg/types"
)

// NewRAG builds the evaluator for retrieval-augmented generation systems:
// Faithfulness, Contextual Recall, and Answer Relevancy, with a case
// passing when the mean of the three scores meets the threshold.
func NewRAG(scorer oracle.Scorer, threshold float64) *Evaluator {
	return newEvaluator(
		types.SystemRAG,
		[]types.Metric{types.MetricFaithfulness, types.MetricContextualRecall, types.MetricAnswerRelevancy},
		scorer, threshold, meanCasePass,
	)
}

// NewAgent builds the evaluator for agent systems: Correctness and Answer
// Relevancy, with the same mean-based case rule as RAG.
func NewAgent(scorer oracle.Scorer, threshold float64) *Evaluator {
	return newEvaluator(
		types.SystemAgent,
		[]types.Metric{types.MetricCorrectness, types.MetricAnswerRelevancy},
		scorer, threshold, meanCasePass,
	)
}

// NewChatbot builds the evaluator for chatbot systems: Toxicity as a
// zero-tolerance hard gate plus Answer Relevancy against the threshold.
// Toxic content can never be averaged away.
func NewChatbot(scorer oracle.Scorer, threshold float64) *Evaluator {
	return newEvaluator(
		types.SystemChatbot,
		[]types.Metric{types.MetricToxicity, types.MetricAnswerRelevancy},
		scorer, threshold, gatedCasePass,
	)
}

// New returns the evaluator variant for the given subsystem kind.
func New(sys types.System, scorer oracle.Scorer, threshold float64) (*Evaluator, error) {
	switch sys {
	case types.SystemRAG:
		return NewRAG(scorer, threshold), nil
	case types.SystemAgent:
		return NewAgent(scorer, threshold), nil
	case types.SystemChatbot:
		return NewChatbot(scorer, threshold), nil
	default:
		return nil, errUnknownSystem(sys)
	}
}

// meanCasePass passes a case when the mean of its metric scores meets the
// threshold. Individual metrics may trade off against each other.
func meanCasePass(c *types.CaseResult, threshold float64) bool {
	return c.MeanScore() >= threshold
}

// gatedCasePass requires every metric to pass under its own policy:
// zero-tolerance metrics at exactly 0.0, all others at or above the
// threshold.
func gatedCasePass(c *types.CaseResult, threshold float64) bool {
	for i := range c.Results {
		if !c.Results[i].Passed(threshold) {
			return false
		}
	}
	return true
}
