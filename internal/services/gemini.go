package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/config"
)

type GeminiOptions struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
	// BaseURL overrides the Gemini API endpoint. Empty uses the default.
	BaseURL string
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	timeout     time.Duration
}

func NewGeminiService(ctx context.Context, opts GeminiOptions) (CompletionClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      opts.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   opts.Model,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
	}, nil
}

func (g *geminiService) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	temperature := g.temperature
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %w", ErrCompletion, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrCompletion)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned no text (finish reason %q)", ErrCompletion, resp.Candidates[0].FinishReason)
	}

	return text, nil
}

func (g *geminiService) Provider() string { return config.ProviderGemini }

func (g *geminiService) Model() string { return g.modelName }
