// Package evaluator implements the evaluation orchestration core: it runs
// a metric oracle over a test-case collection, aggregates scores, and
// applies the subsystem's pass/fail policy to produce an immutable
// ResultSet.
package evaluator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evalgate/evalgate/internal/oracle"
	"github.com/evalgate/evalgate/pkg/types"
)

// DefaultThreshold is the minimum mean score for non-zero-tolerance
// metrics when no threshold is configured.
const DefaultThreshold = 0.7

// casePassFunc decides whether one scored case passes. Variants supply
// their policy as data; there is no per-variant control flow.
type casePassFunc func(c *types.CaseResult, threshold float64) bool

// Evaluator scores test cases for one subsystem kind. It owns its test
// cases and ResultSet exclusively for the duration of a run; nothing is
// shared across runs.
type Evaluator struct {
	system    types.System
	metrics   []types.Metric
	threshold float64
	scorer    oracle.Scorer
	casePass  casePassFunc
}

func newEvaluator(sys types.System, metrics []types.Metric, scorer oracle.Scorer, threshold float64, casePass casePassFunc) *Evaluator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Evaluator{
		system:    sys,
		metrics:   metrics,
		threshold: threshold,
		scorer:    scorer,
		casePass:  casePass,
	}
}

// System returns the subsystem kind this evaluator scores.
func (e *Evaluator) System() types.System { return e.system }

// Threshold returns the configured pass threshold.
func (e *Evaluator) Threshold() float64 { return e.threshold }

// Metrics returns the evaluator's metric set in evaluation order.
func (e *Evaluator) Metrics() []types.Metric {
	return append([]types.Metric(nil), e.metrics...)
}

// Evaluate scores every test case against every configured metric, in
// input order, one oracle call per (case, metric) pair.
//
// The run is all-or-nothing: an empty input returns ErrEmptyDataset, a
// case missing a required field returns MalformedTestCaseError before the
// first oracle call, and any oracle failure returns ScoringUnavailableError
// with no partial ResultSet.
func (e *Evaluator) Evaluate(ctx context.Context, testCases []types.TestCase) (*types.ResultSet, error) {
	start := time.Now()

	if len(testCases) == 0 {
		return nil, types.ErrEmptyDataset
	}

	// Validate the whole collection up front so a malformed case costs no
	// oracle calls at all.
	for i := range testCases {
		if err := testCases[i].Validate(e.system, i); err != nil {
			return nil, err
		}
	}

	cases := make([]types.CaseResult, 0, len(testCases))
	var totalCost float64

	for i := range testCases {
		cr := types.CaseResult{
			Index:   i,
			Input:   testCases[i].Input,
			Results: make([]types.MetricResult, 0, len(e.metrics)),
		}
		for _, m := range e.metrics {
			result, err := e.scorer.Score(ctx, &testCases[i], m)
			if err != nil {
				return nil, &types.ScoringUnavailableError{Metric: m, CaseIndex: i, Err: err}
			}
			totalCost += result.Cost
			cr.Results = append(cr.Results, *result)
		}
		cr.Passed = e.casePass(&cr, e.threshold)
		cases = append(cases, cr)
	}

	return &types.ResultSet{
		RunID:          uuid.NewString(),
		System:         e.system,
		Threshold:      e.threshold,
		Timestamp:      time.Now().UTC(),
		Cases:          cases,
		Averages:       metricAverages(cases),
		OverallAverage: overallAverage(cases),
		Passed:         allPassed(cases),
		Critical:       anyCritical(cases),
		TotalCost:      totalCost,
		DurationMS:     time.Since(start).Milliseconds(),
	}, nil
}

// RecomputeCasePassed re-derives a case verdict from its stored scores and
// this evaluator's policy. It must always agree with the stored flag.
func (e *Evaluator) RecomputeCasePassed(c *types.CaseResult) bool {
	return e.casePass(c, e.threshold)
}

func errUnknownSystem(sys types.System) error {
	return fmt.Errorf("unknown subsystem kind: %q", sys)
}
