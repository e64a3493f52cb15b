// Package llm provides the scoring model providers behind the metric
// oracle: Gemini and OpenAI clients, plus mock, rate-limited, and
// fault-injecting wrappers used in tests.
package llm

import "context"

// Message is a single chat message sent to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one completion call.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	Messages     []Message
	Temperature  float64
	MaxTokens    int
}

// CompletionResponse is the provider's answer to one completion call.
type CompletionResponse struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
	Cost         float64
	DurationMS   int64
}

// Provider is the narrow synchronous interface to a scoring model. Each
// Complete call is exactly one remote request; rate limiting and retries
// live in wrapping providers, never in callers.
type Provider interface {
	Name() string
	DefaultModel() string
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}
