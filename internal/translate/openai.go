package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
)

const openAISystemPrompt = "You are a translation engine. Reply with the translation only."

// OpenAIProvider translates with an OpenAI chat model.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewOpenAIProvider builds a provider for apiKey. baseURL overrides the API endpoint
// when not empty.
func NewOpenAIProvider(apiKey, baseURL, model string, rps float64) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(rps), rateLimiterBurst),
	}
}

// Translate implements Provider.
func (p *OpenAIProvider) Translate(ctx context.Context, text, _, target string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("openai rate limiter: %w", err)
	}

	name := LanguageName(target)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(translatePromptFmt, name, name, text)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai translation: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai translation: %w", apperrors.ErrEmptyResponse)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai translation: %w", apperrors.ErrEmptyResponse)
	}

	return out, nil
}
