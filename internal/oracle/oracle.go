// Package oracle turns (test case, metric) pairs into scored results by
// asking a judge model exactly one question per pair. It owns the judge
// prompts and the strict response parsing; it performs no caching and no
// retries of its own.
package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/evalgate/evalgate/internal/llm"
	"github.com/evalgate/evalgate/pkg/types"
)

const (
	judgeTemperature = 0.0
	judgeMaxTokens   = 256
)

// Scorer is the metric oracle contract consumed by the evaluator.
type Scorer interface {
	Score(ctx context.Context, tc *types.TestCase, metric types.Metric) (*types.MetricResult, error)
}

// Oracle scores test cases with an LLM judge. Each Score call is exactly
// one provider request.
type Oracle struct {
	provider llm.Provider
	model    string
}

// New creates an Oracle on the given provider. model may be empty to use
// the provider's default.
func New(provider llm.Provider, model string) *Oracle {
	if model == "" {
		model = provider.DefaultModel()
	}
	return &Oracle{provider: provider, model: model}
}

// Score asks the judge to rate one metric for one test case. Any provider
// or parse failure is returned as an error; no sentinel score is ever
// substituted.
func (o *Oracle) Score(ctx context.Context, tc *types.TestCase, metric types.Metric) (*types.MetricResult, error) {
	start := time.Now()

	req := &llm.CompletionRequest{
		Model:        o.model,
		SystemPrompt: systemPrompt(metric),
		Messages:     []llm.Message{{Role: "user", Content: userContent(tc, metric)}},
		Temperature:  judgeTemperature,
		MaxTokens:    judgeMaxTokens,
	}

	resp, err := o.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("judge call for %s: %w", metric, err)
	}

	score, explanation, err := ParseScoreResult(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("judge response for %s: %w", metric, err)
	}

	slog.Debug("metric scored",
		"metric", string(metric),
		"score", score,
		"provider", o.provider.Name(),
		"model", o.model)

	return &types.MetricResult{
		Metric:      metric,
		Score:       score,
		Explanation: explanation,
		Cost:        resp.Cost,
		DurationMS:  time.Since(start).Milliseconds(),
	}, nil
}
