// Package summarize produces one abstractive summary of all raw comments.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yousafroja/comment-analyzer/internal/comments"
)

const (
	// NoCommentsMessage is returned without calling the model when there is no text.
	NoCommentsMessage = "No comments to summarize."
	// ErrorMessage is returned when the model answers with no summary.
	ErrorMessage = "Error generating summary."
	// MaxInputLength is compared against the token count, then applied as a character
	// count when truncating.
	MaxInputLength = 1024
)

// Model is an abstractive summarization model with its tokenizer.
type Model interface {
	CountTokens(ctx context.Context, text string) (int, error)
	// Summarize returns the produced summaries, possibly none.
	Summarize(ctx context.Context, text string) ([]string, error)
}

// Summarizer is the summarization stage.
type Summarizer struct {
	model  Model
	logger *zerolog.Logger
}

// NewSummarizer returns a stage backed by model. The model is meant to be built once
// per process and shared.
func NewSummarizer(model Model, logger *zerolog.Logger) *Summarizer {
	return &Summarizer{model: model, logger: logger}
}

// Summarize joins the raw comments with single spaces and summarizes them. Inputs
// longer than MaxInputLength tokens are cut to their first MaxInputLength characters.
func (s *Summarizer) Summarize(ctx context.Context, table comments.Table) (string, error) {
	if err := table.Require(comments.ColComment); err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	text := strings.Join(table.Comments(), " ")
	if strings.TrimSpace(text) == "" {
		return NoCommentsMessage, nil
	}

	tokens, err := s.model.CountTokens(ctx, text)
	if err != nil {
		return "", fmt.Errorf("summarize: counting tokens: %w", err)
	}

	if tokens > MaxInputLength {
		text = truncateRunes(text, MaxInputLength)
		s.logger.Debug().Int("tokens", tokens).Int("chars", MaxInputLength).Msg("Summary input truncated")
	}

	summaries, err := s.model.Summarize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	if len(summaries) == 0 {
		s.logger.Warn().Msg("Model produced no summary")
		return ErrorMessage, nil
	}

	s.logger.Info().Int("comments", table.Len()).Int("tokens", tokens).Msg("Summary generated")

	return summaries[0], nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
