package history_test

import (
	"database/sql"
	"math"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/evalgate/evalgate/internal/history"
	"github.com/evalgate/evalgate/pkg/types"
)

func newTestStore(t *testing.T) *history.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := history.NewStore(db)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func chatbotRun(runID string, toxicity, relevancy float64, passed, critical bool) *types.ResultSet {
	return &types.ResultSet{
		RunID:     runID,
		System:    types.SystemChatbot,
		Threshold: 0.7,
		Timestamp: time.Now(),
		Cases: []types.CaseResult{
			{
				Index: 0,
				Input: "hello",
				Results: []types.MetricResult{
					{Metric: types.MetricToxicity, Score: toxicity},
					{Metric: types.MetricAnswerRelevancy, Score: relevancy},
				},
				Passed: passed,
			},
		},
		Averages: map[types.Metric]float64{
			types.MetricToxicity:        toxicity,
			types.MetricAnswerRelevancy: relevancy,
		},
		OverallAverage: (toxicity + relevancy) / 2,
		Passed:         passed,
		Critical:       critical,
	}
}

func TestStore_RecordRunAndRecentRuns(t *testing.T) {
	store := newTestStore(t)

	if err := store.RecordRun(chatbotRun("run-1", 0.0, 0.9, true, false)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := store.RecordRun(chatbotRun("run-2", 0.1, 0.95, false, true)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := store.RecentRuns(types.SystemChatbot, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns returned %d runs, want 2", len(runs))
	}
	// Most recent first.
	if runs[0].RunID != "run-2" {
		t.Errorf("first run = %q, want run-2", runs[0].RunID)
	}
	if !runs[0].Critical || runs[0].Passed {
		t.Errorf("run-2 flags = passed:%v critical:%v", runs[0].Passed, runs[0].Critical)
	}
	if runs[1].RunID != "run-1" || !runs[1].Passed {
		t.Errorf("run-1 summary = %+v", runs[1])
	}
	if runs[0].TotalCases != 1 {
		t.Errorf("TotalCases = %d, want 1", runs[0].TotalCases)
	}
}

func TestStore_RecentRunsIsolatedBySystem(t *testing.T) {
	store := newTestStore(t)

	if err := store.RecordRun(chatbotRun("run-1", 0.0, 0.9, true, false)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := store.RecentRuns(types.SystemRAG, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("RAG runs = %d, want 0 (only a chatbot run was recorded)", len(runs))
	}
}

func TestStore_MetricWindow(t *testing.T) {
	store := newTestStore(t)

	scores := []float64{0.5, 0.6, 0.7, 0.8, 0.9}
	for i, s := range scores {
		run := chatbotRun("run", 0.0, s, true, false)
		run.RunID = run.RunID + string(rune('a'+i))
		if err := store.RecordRun(run); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	got, err := store.MetricWindow(types.SystemChatbot, types.MetricAnswerRelevancy, 3)
	if err != nil {
		t.Fatalf("MetricWindow: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("window size = %d, want 3", len(got))
	}
	if got[0] != 0.9 {
		t.Errorf("most recent score = %f, want 0.9", got[0])
	}
}

func TestStore_MetricStats(t *testing.T) {
	store := newTestStore(t)

	for i, s := range []float64{0.6, 0.8, 1.0} {
		run := chatbotRun("run", 0.0, s, true, false)
		run.RunID = run.RunID + string(rune('a'+i))
		if err := store.RecordRun(run); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	mean, stddev, count, err := store.MetricStats(types.SystemChatbot, types.MetricAnswerRelevancy)
	if err != nil {
		t.Fatalf("MetricStats: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if math.Abs(mean-0.8) > 1e-9 {
		t.Errorf("mean = %f, want 0.8", mean)
	}
	wantStddev := math.Sqrt(0.08 / 3.0)
	if math.Abs(stddev-wantStddev) > 1e-9 {
		t.Errorf("stddev = %f, want %f", stddev, wantStddev)
	}
}

func TestStore_EmptyHistoryReturnsZeroValues(t *testing.T) {
	store := newTestStore(t)

	scores, err := store.MetricWindow(types.SystemRAG, types.MetricFaithfulness, 10)
	if err != nil {
		t.Fatalf("MetricWindow: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("scores = %v, want empty", scores)
	}

	mean, stddev, count, err := store.MetricStats(types.SystemRAG, types.MetricFaithfulness)
	if err != nil {
		t.Fatalf("MetricStats: %v", err)
	}
	if count != 0 || mean != 0 || stddev != 0 {
		t.Errorf("stats = (%f, %f, %d), want zeros", mean, stddev, count)
	}
}

func TestOpen_InMemory(t *testing.T) {
	store, err := history.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.RecordRun(chatbotRun("run-1", 0.0, 0.9, true, false)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
}
