package llm

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// FaultConfig defines the fault injection parameters for a FaultInjector.
type FaultConfig struct {
	// FailAfter makes every call with index >= FailAfter fail when > 0.
	// The first FailAfter calls succeed; zero disables. Use ErrorRate 1.0
	// to fail from the very first call.
	FailAfter int
	// ErrorRate is the probability [0,1] of a random injected error.
	ErrorRate float64
	// LatencyJitter adds random latency in [0, LatencyJitter).
	LatencyJitter time.Duration
	// ContentCorruption randomly shuffles response content when true.
	ContentCorruption bool
}

// FaultInjector wraps a Provider and injects configurable faults. It backs
// the oracle-failure tests: a deterministic FailAfter exercises the
// all-or-nothing abort contract without real network errors.
type FaultInjector struct {
	inner  Provider
	config FaultConfig
	rng    *rand.Rand
	calls  int
	mu     sync.Mutex
}

// NewFaultInjector creates a FaultInjector with a time-based seed.
func NewFaultInjector(inner Provider, config FaultConfig) *FaultInjector {
	return NewFaultInjectorWithSeed(inner, config, time.Now().UnixNano())
}

// NewFaultInjectorWithSeed creates a FaultInjector with a deterministic
// seed for testing.
func NewFaultInjectorWithSeed(inner Provider, config FaultConfig, seed int64) *FaultInjector {
	return &FaultInjector{
		inner:  inner,
		config: config,
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec
	}
}

// Name returns the provider name prefixed with "fault:".
func (f *FaultInjector) Name() string {
	return "fault:" + f.inner.Name()
}

// DefaultModel delegates to the inner provider.
func (f *FaultInjector) DefaultModel() string {
	return f.inner.DefaultModel()
}

// Complete injects faults according to FaultConfig before delegating to the
// inner provider.
func (f *FaultInjector) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	errorRoll := f.rng.Float64()
	var jitter time.Duration
	if f.config.LatencyJitter > 0 {
		jitter = time.Duration(f.rng.Int63n(int64(f.config.LatencyJitter)))
	}
	f.mu.Unlock()

	if f.config.FailAfter > 0 && idx >= f.config.FailAfter {
		return nil, fmt.Errorf("injected fault: call %d failed", idx)
	}

	if f.config.ErrorRate > 0 && errorRoll < f.config.ErrorRate {
		return nil, fmt.Errorf("injected fault: simulated error")
	}

	if jitter > 0 {
		select {
		case <-time.After(jitter):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	resp, err := f.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if f.config.ContentCorruption && resp != nil && len(resp.Content) > 0 {
		resp.Content = f.corruptContent(resp.Content)
	}

	return resp, nil
}

// corruptContent randomly swaps adjacent characters in the content string.
func (f *FaultInjector) corruptContent(content string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	chars := []rune(content)
	for i := 0; i < len(chars)-1; i++ {
		if f.rng.Float64() < 0.3 {
			chars[i], chars[i+1] = chars[i+1], chars[i]
		}
	}
	return string(chars)
}
