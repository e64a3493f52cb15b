// Package report renders finished evaluation runs as JSON and HTML
// documents and writes them to the report directory.
package report

import (
	"fmt"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/evalgate/evalgate/pkg/types"
)

type JSONReport struct {
	Version        string             `json:"version"`
	System         string             `json:"system"`
	RunID          string             `json:"run_id"`
	Timestamp      string             `json:"timestamp"`
	Threshold      float64            `json:"threshold"`
	Summary        JSONSummary        `json:"summary"`
	Averages       map[string]float64 `json:"averages"`
	OverallAverage float64            `json:"overall_average"`
	Cases          []JSONCase         `json:"cases"`
	TotalCost      float64            `json:"total_cost"`
	TotalDuration  int64              `json:"total_duration_ms"`
}

type JSONSummary struct {
	Total       int   `json:"total"`
	Passed      int   `json:"passed"`
	Failed      int   `json:"failed"`
	FailedCases []int `json:"failed_cases"`
	RunPassed   bool  `json:"run_passed"`
	Critical    bool  `json:"critical"`
}

type JSONCase struct {
	Index     int          `json:"index"`
	Input     string       `json:"input"`
	Passed    bool         `json:"passed"`
	MeanScore float64      `json:"mean_score"`
	Metrics   []JSONMetric `json:"metrics"`
}

type JSONMetric struct {
	Metric      string  `json:"metric"`
	Score       float64 `json:"score"`
	Passed      bool    `json:"passed"`
	Explanation string  `json:"explanation"`
}

// GenerateJSONReport serializes a ResultSet as an indented JSON document.
// Per-metric pass flags are derived from the run threshold at render
// time; they are never stored on the ResultSet itself.
func GenerateJSONReport(rs *types.ResultSet) ([]byte, error) {
	failed := rs.FailedCases()
	if failed == nil {
		failed = []int{}
	}

	out := JSONReport{
		Version:        "1.0",
		System:         string(rs.System),
		RunID:          rs.RunID,
		Timestamp:      rs.Timestamp.UTC().Format(time.RFC3339),
		Threshold:      rs.Threshold,
		OverallAverage: rs.OverallAverage,
		TotalCost:      rs.TotalCost,
		TotalDuration:  rs.DurationMS,
		Summary: JSONSummary{
			Total:       rs.TotalCases(),
			Passed:      rs.TotalCases() - len(failed),
			Failed:      len(failed),
			FailedCases: failed,
			RunPassed:   rs.Passed,
			Critical:    rs.Critical,
		},
		Averages: make(map[string]float64, len(rs.Averages)),
		Cases:    make([]JSONCase, 0, len(rs.Cases)),
	}

	for m, avg := range rs.Averages {
		out.Averages[string(m)] = avg
	}

	for i := range rs.Cases {
		c := &rs.Cases[i]
		jc := JSONCase{
			Index:     c.Index,
			Input:     c.Input,
			Passed:    c.Passed,
			MeanScore: c.MeanScore(),
			Metrics:   make([]JSONMetric, 0, len(c.Results)),
		}
		for _, r := range c.Results {
			jc.Metrics = append(jc.Metrics, JSONMetric{
				Metric:      string(r.Metric),
				Score:       r.Score,
				Passed:      r.Passed(rs.Threshold),
				Explanation: r.Explanation,
			})
		}
		out.Cases = append(out.Cases, jc)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON report: %w", err)
	}
	return data, nil
}
