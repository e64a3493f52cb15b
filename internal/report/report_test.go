package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/evalgate/evalgate/internal/report"
	"github.com/evalgate/evalgate/pkg/types"
)

func sampleResultSet() *types.ResultSet {
	return &types.ResultSet{
		RunID:     "run-123",
		System:    types.SystemRAG,
		Threshold: 0.7,
		Timestamp: time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC),
		Cases: []types.CaseResult{
			{
				Index: 0,
				Input: "What is the capital of France?",
				Results: []types.MetricResult{
					{Metric: types.MetricFaithfulness, Score: 0.9, Explanation: "grounded"},
					{Metric: types.MetricContextualRecall, Score: 0.8, Explanation: "covers expected"},
					{Metric: types.MetricAnswerRelevancy, Score: 0.75, Explanation: "on topic"},
				},
				Passed: true,
			},
			{
				Index: 1,
				Input: "Who wrote Hamlet?",
				Results: []types.MetricResult{
					{Metric: types.MetricFaithfulness, Score: 0.5, Explanation: "unsupported claims"},
					{Metric: types.MetricContextualRecall, Score: 0.4, Explanation: "misses expected"},
					{Metric: types.MetricAnswerRelevancy, Score: 0.6, Explanation: "partially on topic"},
				},
				Passed: false,
			},
		},
		Averages: map[types.Metric]float64{
			types.MetricFaithfulness:     0.7,
			types.MetricContextualRecall: 0.6,
			types.MetricAnswerRelevancy:  0.675,
		},
		OverallAverage: 0.658,
		Passed:         false,
		TotalCost:      0.0042,
		DurationMS:     1234,
	}
}

func toxicResultSet() *types.ResultSet {
	return &types.ResultSet{
		RunID:     "run-456",
		System:    types.SystemChatbot,
		Threshold: 0.7,
		Timestamp: time.Date(2026, 8, 23, 11, 0, 0, 0, time.UTC),
		Cases: []types.CaseResult{
			{
				Index: 0,
				Input: "hello",
				Results: []types.MetricResult{
					{Metric: types.MetricToxicity, Score: 0.2, Explanation: "dismissive tone"},
					{Metric: types.MetricAnswerRelevancy, Score: 0.9, Explanation: "on topic"},
				},
				Passed: false,
			},
		},
		Averages: map[types.Metric]float64{
			types.MetricToxicity:        0.2,
			types.MetricAnswerRelevancy: 0.9,
		},
		OverallAverage: 0.55,
		Passed:         false,
		Critical:       true,
	}
}

func TestGenerateJSONReport(t *testing.T) {
	data, err := report.GenerateJSONReport(sampleResultSet())
	if err != nil {
		t.Fatalf("GenerateJSONReport: %v", err)
	}

	var got report.JSONReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	if got.System != "rag" || got.RunID != "run-123" {
		t.Errorf("header = %q/%q", got.System, got.RunID)
	}
	if got.Summary.Total != 2 || got.Summary.Passed != 1 || got.Summary.Failed != 1 {
		t.Errorf("summary = %+v", got.Summary)
	}
	if len(got.Summary.FailedCases) != 1 || got.Summary.FailedCases[0] != 1 {
		t.Errorf("failed cases = %v, want [1]", got.Summary.FailedCases)
	}
	if got.Summary.RunPassed {
		t.Error("run_passed must be false")
	}
	if got.Averages["faithfulness"] != 0.7 {
		t.Errorf("faithfulness average = %v", got.Averages["faithfulness"])
	}
	if len(got.Cases) != 2 || len(got.Cases[0].Metrics) != 3 {
		t.Fatalf("cases = %+v", got.Cases)
	}

	// Per-metric pass flags are derived from the threshold at render time.
	first := got.Cases[0].Metrics[0]
	if first.Metric != "faithfulness" || !first.Passed {
		t.Errorf("first metric = %+v, want faithfulness passed at 0.9 >= 0.7", first)
	}
	second := got.Cases[1].Metrics[0]
	if second.Passed {
		t.Errorf("faithfulness 0.5 must not pass at threshold 0.7: %+v", second)
	}
}

func TestGenerateJSONReport_EmptyFailedCases(t *testing.T) {
	rs := sampleResultSet()
	rs.Cases = rs.Cases[:1]
	rs.Passed = true

	data, err := report.GenerateJSONReport(rs)
	if err != nil {
		t.Fatalf("GenerateJSONReport: %v", err)
	}
	// failed_cases serializes as [] rather than null.
	if !strings.Contains(string(data), `"failed_cases": []`) {
		t.Errorf("report missing empty failed_cases array:\n%s", data)
	}
}

func TestGenerateHTMLReport(t *testing.T) {
	data, err := report.GenerateHTMLReport(sampleResultSet())
	if err != nil {
		t.Fatalf("GenerateHTMLReport: %v", err)
	}

	html := string(data)
	for _, want := range []string{
		"<title>RAG Evaluation Report</title>",
		"RAG System Evaluation Report",
		"Total Test Cases: 2",
		"Average Faithfulness",
		"Overall Average",
		`class="status fail"`,
		"What is the capital of France?",
		`<td class="pass">0.900</td>`,
		`<td class="fail">0.500</td>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Contains(html, "CRITICAL") {
		t.Error("non-critical run must not render the critical block")
	}
}

func TestGenerateHTMLReport_CriticalBlock(t *testing.T) {
	data, err := report.GenerateHTMLReport(toxicResultSet())
	if err != nil {
		t.Fatalf("GenerateHTMLReport: %v", err)
	}

	html := string(data)
	for _, want := range []string{
		"CRITICAL: Toxic Content Detected",
		"1 toxic responses found",
		"Test Case 0: Score 0.200",
		`class="status fail"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestGenerateHTMLReport_EscapesInput(t *testing.T) {
	rs := toxicResultSet()
	rs.Cases[0].Input = `<script>alert("x")</script>`

	data, err := report.GenerateHTMLReport(rs)
	if err != nil {
		t.Fatalf("GenerateHTMLReport: %v", err)
	}
	if strings.Contains(string(data), "<script>alert") {
		t.Error("test case input must be HTML-escaped")
	}
}

func TestWriter_SaveJSONAndHTML(t *testing.T) {
	dir := t.TempDir()
	w, err := report.NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	jsonPath, err := w.SaveJSON(sampleResultSet())
	if err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	htmlPath, err := w.SaveHTML(sampleResultSet())
	if err != nil {
		t.Fatalf("SaveHTML: %v", err)
	}

	jsonName := regexp.MustCompile(`^rag_evaluation_\d{8}_\d{6}\.json$`)
	if base := filepath.Base(jsonPath); !jsonName.MatchString(base) {
		t.Errorf("JSON filename = %q, want rag_evaluation_<timestamp>.json", base)
	}
	htmlName := regexp.MustCompile(`^rag_evaluation_\d{8}_\d{6}\.html$`)
	if base := filepath.Base(htmlPath); !htmlName.MatchString(base) {
		t.Errorf("HTML filename = %q, want rag_evaluation_<timestamp>.html", base)
	}

	for _, path := range []string{jsonPath, htmlPath} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("report %s missing or empty: %v", path, err)
		}
	}
}

func TestNewWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	if _, err := report.NewWriter(dir); err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("report directory not created: %v", err)
	}
}
