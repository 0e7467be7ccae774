package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/yousafroja/comment-analyzer/internal/gemini"
)

const summaryPromptFormat = "Summarize these YouTube video comments in one short paragraph:\n\nComments:\n\"%s\""

type generativeModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	CountTokens(ctx context.Context, parts ...genai.Part) (*genai.CountTokensResponse, error)
}

// GeminiModel implements Model with a Gemini model in deterministic mode.
type GeminiModel struct {
	model   generativeModel
	timeout time.Duration
}

// NewGeminiModel configures name for greedy decoding (temperature 0, top-k 1, one
// candidate). timeout bounds each call.
func NewGeminiModel(client *genai.Client, name string, timeout time.Duration) *GeminiModel {
	model := client.GenerativeModel(name)
	model.SetTemperature(0)
	model.SetTopK(1)
	model.SetCandidateCount(1)

	return &GeminiModel{model: model, timeout: timeout}
}

// CountTokens implements Model.
func (g *GeminiModel) CountTokens(ctx context.Context, text string) (int, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.model.CountTokens(ctx, genai.Text(gemini.SanitizeUTF8(text)))
	if err != nil {
		return 0, fmt.Errorf("gemini CountTokens failed: %w", err)
	}

	return int(resp.TotalTokens), nil
}

// Summarize implements Model.
func (g *GeminiModel) Summarize(ctx context.Context, text string) ([]string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	prompt := fmt.Sprintf(summaryPromptFormat, text)

	resp, err := g.model.GenerateContent(ctx, genai.Text(gemini.SanitizeUTF8(prompt)))
	if err != nil {
		return nil, fmt.Errorf("gemini GenerateContent failed: %w", err)
	}

	summary := strings.TrimSpace(gemini.ResponseText(resp))
	if summary == "" {
		return nil, nil
	}

	return []string{summary}, nil
}

func (g *GeminiModel) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, g.timeout)
}
