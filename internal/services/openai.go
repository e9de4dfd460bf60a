package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"alfredoptarigan/resume-analyzer/internal/config"
)

type openAIService struct {
	client      *openai.Client
	modelName   string
	temperature float32
	timeout     time.Duration
}

// NewOpenAIService returns a chat-completions client. An empty baseURL keeps
// the library default.
func NewOpenAIService(apiKey, baseURL, model string, temperature float32, timeout time.Duration) CompletionClient {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
	}

	return &openAIService{
		client:      openai.NewClientWithConfig(clientConfig),
		modelName:   model,
		temperature: temperature,
		timeout:     timeout,
	}
}

func (o *openAIService) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: o.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %w", ErrCompletion, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrCompletion)
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *openAIService) Provider() string { return config.ProviderOpenAI }

func (o *openAIService) Model() string { return o.modelName }
