package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMockProvider_CyclesResponses(t *testing.T) {
	mock := NewMockProvider([]*CompletionResponse{
		ScoreResponse(0.9, "first"),
		ScoreResponse(0.5, "second"),
	}, nil)

	req := &CompletionRequest{Model: "mock-judge", Messages: []Message{{Role: "user", Content: "hi"}}}

	for i, want := range []string{"first", "second", "first"} {
		resp, err := mock.Complete(context.Background(), req)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if !strings.Contains(resp.Content, want) {
			t.Errorf("call %d content = %q, want substring %q", i, resp.Content, want)
		}
	}

	if mock.GetCallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", mock.GetCallCount())
	}
}

func TestMockProvider_ReplayExhaustion(t *testing.T) {
	mock := NewReplayProvider([]*CompletionResponse{ScoreResponse(1.0, "only")})
	req := &CompletionRequest{Messages: []Message{{Role: "user", Content: "x"}}}

	if _, err := mock.Complete(context.Background(), req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := mock.Complete(context.Background(), req); err == nil {
		t.Fatal("second call should fail: responses exhausted")
	}
}

func TestMockProvider_ErrorsByIndex(t *testing.T) {
	boom := errors.New("boom")
	mock := NewMockProvider([]*CompletionResponse{ScoreResponse(1.0, "ok")}, []error{nil, boom})
	req := &CompletionRequest{Messages: []Message{{Role: "user", Content: "x"}}}

	if _, err := mock.Complete(context.Background(), req); err != nil {
		t.Fatalf("call 0: %v", err)
	}
	if _, err := mock.Complete(context.Background(), req); !errors.Is(err, boom) {
		t.Fatalf("call 1 error = %v, want boom", err)
	}
	// Past the error script, responses resume.
	if _, err := mock.Complete(context.Background(), req); err != nil {
		t.Fatalf("call 2: %v", err)
	}
}

func TestMockProvider_ScriptFunc(t *testing.T) {
	mock := NewMockProvider(nil, nil)
	mock.ScriptFunc = func(req *CompletionRequest) *CompletionResponse {
		if strings.Contains(req.SystemPrompt, "toxicity") {
			return ScoreResponse(0.0, "clean")
		}
		return ScoreResponse(0.8, "fine")
	}

	resp, err := mock.Complete(context.Background(), &CompletionRequest{SystemPrompt: "toxicity judge"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Content, `"score": 0`) {
		t.Errorf("toxicity response = %q, want score 0", resp.Content)
	}
}

func TestJudgeMockProvider_ScoresByPrompt(t *testing.T) {
	mock := NewJudgeMockProvider()

	resp, err := mock.Complete(context.Background(), &CompletionRequest{
		SystemPrompt: "You are a content-safety judge. Score the toxicity of the actual output.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Content, `"score": 0`) {
		t.Errorf("toxicity prompt response = %q, want a clean 0.0 score", resp.Content)
	}

	resp, err = mock.Complete(context.Background(), &CompletionRequest{
		SystemPrompt: "You are an impartial evaluation judge. Score how relevant the actual output is.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Content, `"score": 1`) {
		t.Errorf("relevancy prompt response = %q, want a perfect 1.0 score", resp.Content)
	}
}

func TestMockProvider_RecordsHistory(t *testing.T) {
	mock := NewMockProvider(nil, nil)
	_, _ = mock.Complete(context.Background(), &CompletionRequest{SystemPrompt: "a"})
	_, _ = mock.Complete(context.Background(), &CompletionRequest{SystemPrompt: "b"})

	history := mock.GetRequestHistory()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].SystemPrompt != "a" || history[1].SystemPrompt != "b" {
		t.Errorf("history out of order: %+v", history)
	}
}
