package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
	"github.com/yousafroja/comment-analyzer/internal/gemini"
)

const (
	translatePromptFmt = "Translate to %s. Output ONLY the translation, nothing else. The output must be in %s language.\n\n%s"
	rateLimiterBurst   = 5
)

// contentGenerator is the part of *genai.GenerativeModel the provider uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiProvider translates with a Gemini model.
type GeminiProvider struct {
	model   contentGenerator
	limiter *rate.Limiter
}

// NewGeminiProvider wraps model. The model is configured for deterministic output.
func NewGeminiProvider(model *genai.GenerativeModel, rps float64) *GeminiProvider {
	model.SetTemperature(0)

	return newGeminiProvider(model, rps)
}

func newGeminiProvider(model contentGenerator, rps float64) *GeminiProvider {
	return &GeminiProvider{
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(rps), rateLimiterBurst),
	}
}

// Translate implements Provider. The source language is left to the model.
func (p *GeminiProvider) Translate(ctx context.Context, text, _, target string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini rate limiter: %w", err)
	}

	name := LanguageName(target)

	resp, err := p.model.GenerateContent(ctx, genai.Text(gemini.SanitizeUTF8(fmt.Sprintf(translatePromptFmt, name, name, text))))
	if err != nil {
		return "", fmt.Errorf("gemini translation: %w", err)
	}

	out := strings.TrimSpace(gemini.ResponseText(resp))
	if out == "" {
		return "", fmt.Errorf("gemini translation: %w", apperrors.ErrEmptyResponse)
	}

	return out, nil
}
