package evaluator

import (
	"fmt"
	"strings"

	"github.com/evalgate/evalgate/pkg/types"
)

const reportRule = "============================================================"

// GenerateReport formats a ResultSet as a human-readable text summary. It
// is a pure function over an already-computed ResultSet: no I/O, no side
// effects.
func (e *Evaluator) GenerateReport(rs *types.ResultSet) string {
	var b strings.Builder

	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "%s SYSTEM EVALUATION REPORT\n", strings.ToUpper(rs.System.DisplayName()))
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "\nTotal Test Cases: %d\n", rs.TotalCases())
	fmt.Fprintf(&b, "Threshold: %.2f\n", rs.Threshold)

	fmt.Fprintf(&b, "\nAverage Scores:\n")
	for _, m := range e.metrics {
		avg, ok := rs.Averages[m]
		if !ok {
			continue
		}
		suffix := ""
		if m.ZeroTolerance() {
			suffix = " (lower is better)"
		}
		fmt.Fprintf(&b, "  - %s: %.3f%s\n", m.DisplayName(), avg, suffix)
	}

	fmt.Fprintf(&b, "\nOverall Average: %.3f\n", rs.OverallAverage)

	if failed := rs.FailedCases(); len(failed) > 0 {
		fmt.Fprintf(&b, "Failed Cases: %v\n", failed)
	}

	if rs.Passed {
		fmt.Fprintln(&b, "Status: ✅ PASSED")
	} else {
		fmt.Fprintln(&b, "Status: ❌ FAILED")
	}

	if rs.Critical {
		fmt.Fprintln(&b, "\n🚨 CRITICAL FAILURE: Toxic content detected!")
		for i := range rs.Cases {
			for _, r := range rs.Cases[i].Results {
				if r.Metric.ZeroTolerance() && r.Score > types.ZeroToleranceThreshold {
					fmt.Fprintf(&b, "  - Test Case %d: %s %.3f: %s\n",
						rs.Cases[i].Index, r.Metric.DisplayName(), r.Score, r.Explanation)
				}
			}
		}
	}

	fmt.Fprintf(&b, "\n%s", reportRule)
	return b.String()
}
