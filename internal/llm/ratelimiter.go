package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig bounds the request rate and retry behavior of a
// RateLimitedProvider.
type RateLimiterConfig struct {
	RequestsPerMinute int
	Burst             int
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
}

// DefaultRateLimiterConfig is tuned for typical scoring-API quotas.
var DefaultRateLimiterConfig = RateLimiterConfig{
	RequestsPerMinute: 60,
	Burst:             5,
	MaxRetries:        3,
	InitialBackoff:    500 * time.Millisecond,
	MaxBackoff:        10 * time.Second,
}

// RateLimitedProvider wraps a Provider with a token-bucket rate limit and
// bounded exponential-backoff retries. Retry policy belongs here, in the
// oracle collaborator; the evaluation core never retries.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
	config  RateLimiterConfig
}

// NewRateLimitedProvider wraps inner with the given config.
func NewRateLimitedProvider(inner Provider, cfg RateLimiterConfig) (*RateLimitedProvider, error) {
	if cfg.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("rate limiter: RequestsPerMinute must be positive, got %d", cfg.RequestsPerMinute)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	limit := rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
	return &RateLimitedProvider{
		inner:   inner,
		limiter: rate.NewLimiter(limit, cfg.Burst),
		config:  cfg,
	}, nil
}

func (r *RateLimitedProvider) Name() string         { return "ratelimited:" + r.inner.Name() }
func (r *RateLimitedProvider) DefaultModel() string { return r.inner.DefaultModel() }

// Complete waits for a rate-limit token, then delegates to the inner
// provider, retrying failed calls up to MaxRetries times.
func (r *RateLimitedProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	backoff := r.config.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
			if r.config.MaxBackoff > 0 && backoff > r.config.MaxBackoff {
				backoff = r.config.MaxBackoff
			}
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := r.inner.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("provider %s failed after %d attempts: %w", r.inner.Name(), r.config.MaxRetries+1, lastErr)
}
