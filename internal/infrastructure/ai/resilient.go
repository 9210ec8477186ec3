package ai

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/testplanhq/testplan/pkg/domain/ai"
)

// ResilienceConfig tunes transport-level retry and timeout around a provider.
type ResilienceConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxRetries: 2,
		RetryDelay: time.Second,
		Timeout:    300 * time.Second,
	}
}

// ResilientProvider wraps a provider with retry and timeout. This covers
// transport failures only; semantic retries on malformed replies are the
// extractor's job.
type ResilientProvider struct {
	inner  ai.Provider
	config ResilienceConfig
}

func NewResilientProvider(inner ai.Provider) *ResilientProvider {
	return NewResilientProviderWithConfig(inner, DefaultResilienceConfig())
}

func NewResilientProviderWithConfig(inner ai.Provider, cfg ResilienceConfig) *ResilientProvider {
	defaults := DefaultResilienceConfig()
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaults.RetryDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	return &ResilientProvider{inner: inner, config: cfg}
}

func (p *ResilientProvider) ID() string {
	return p.inner.ID()
}

func (p *ResilientProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	r := retry.New[*ai.CompletionResponse](retry.Config{
		MaxAttempts:   p.config.MaxRetries,
		InitialDelay:  p.config.RetryDelay,
		BackoffPolicy: retry.BackoffExponential,
	})

	t := timeout.New[*ai.CompletionResponse](timeout.Config{
		DefaultTimeout: p.config.Timeout,
	})

	return t.Execute(ctx, p.config.Timeout, func(ctx context.Context) (*ai.CompletionResponse, error) {
		return r.Do(ctx, func(ctx context.Context) (*ai.CompletionResponse, error) {
			return p.inner.Complete(ctx, req)
		})
	})
}
