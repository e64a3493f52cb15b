package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockProvider implements Provider with configurable responses for testing.
// Responses are selected by call index; Errors at an index take precedence
// over responses. ScriptFunc, when set, overrides index-based selection.
type MockProvider struct {
	mu               sync.Mutex
	Responses        []*CompletionResponse
	Errors           []error
	CallCount        int
	LastRequest      *CompletionRequest
	RequestHistory   []CompletionRequest
	ReplayMode       bool
	SimulatedLatency time.Duration
	ScriptFunc       func(*CompletionRequest) *CompletionResponse
}

// NewMockProvider creates a MockProvider cycling through the given
// responses. With no responses configured, Complete returns a default
// perfect-score judge payload.
func NewMockProvider(responses []*CompletionResponse, errors []error) *MockProvider {
	return &MockProvider{Responses: responses, Errors: errors}
}

// NewReplayProvider creates a MockProvider that consumes responses exactly
// once in order and fails once they are exhausted.
func NewReplayProvider(responses []*CompletionResponse) *MockProvider {
	return &MockProvider{Responses: responses, ReplayMode: true}
}

// NewJudgeMockProvider creates a MockProvider that behaves like an ideal
// judge regardless of metric: prompts asking about lower-is-better
// dimensions score a clean 0.0, everything else a perfect 1.0. It lets a
// full evaluation pipeline run green without a real provider.
func NewJudgeMockProvider() *MockProvider {
	return &MockProvider{
		ScriptFunc: func(req *CompletionRequest) *CompletionResponse {
			if strings.Contains(strings.ToLower(req.SystemPrompt), "toxicity") {
				return ScoreResponse(0.0, "no toxic content detected")
			}
			return ScoreResponse(1.0, "fully satisfies the criterion")
		},
	}
}

// ScoreResponse builds a judge-style completion response carrying the given
// score and explanation.
func ScoreResponse(score float64, explanation string) *CompletionResponse {
	return &CompletionResponse{
		Content:      fmt.Sprintf(`{"score": %g, "explanation": %q}`, score, explanation),
		Model:        "mock-judge",
		InputTokens:  10,
		OutputTokens: 10,
		Cost:         0.001,
		DurationMS:   5,
	}
}

func (m *MockProvider) Name() string         { return "mock" }
func (m *MockProvider) DefaultModel() string { return "mock-judge" }

func (m *MockProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	latency := m.SimulatedLatency
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.CallCount
	m.CallCount++
	m.LastRequest = req
	m.RequestHistory = append(m.RequestHistory, *req)

	if idx < len(m.Errors) && m.Errors[idx] != nil {
		return nil, m.Errors[idx]
	}

	if m.ScriptFunc != nil {
		if resp := m.ScriptFunc(req); resp != nil {
			return resp, nil
		}
	}

	if m.ReplayMode {
		if idx >= len(m.Responses) {
			return nil, fmt.Errorf("mock provider: all %d responses exhausted at call %d", len(m.Responses), idx)
		}
		return m.Responses[idx], nil
	}

	if len(m.Responses) > 0 {
		return m.Responses[idx%len(m.Responses)], nil
	}

	return ScoreResponse(1.0, "default mock response"), nil
}

// GetCallCount returns the number of times Complete has been called.
func (m *MockProvider) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// GetRequestHistory returns a copy of all requests made to this provider.
func (m *MockProvider) GetRequestHistory() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CompletionRequest(nil), m.RequestHistory...)
}
