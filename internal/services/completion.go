package services

import (
	"context"
	"fmt"
	"time"

	"alfredoptarigan/resume-analyzer/internal/config"
)

// CompletionClient sends a single prompt to a hosted model and returns the
// raw text of its reply.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

// NewCompletionClient builds the client for the configured provider.
func NewCompletionClient(ctx context.Context, cfg config.LLMConfig) (CompletionClient, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Temperature, cfg.Timeout), nil
	case config.ProviderGemini:
		return NewGeminiService(ctx, GeminiOptions{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.Provider)
	}
}

// withTimeout bounds a completion call when a positive timeout is configured.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
