// Package translate decides which comments need translation and translates them through
// a pluggable provider with a fixed retry policy.
package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yousafroja/comment-analyzer/internal/comments"
	"github.com/yousafroja/comment-analyzer/internal/retry"
)

// FailedPrefix marks a comment whose translation attempts were all used up.
const FailedPrefix = "[TRANSLATION FAILED] "

const (
	// SourceAuto asks the provider to detect the source language.
	SourceAuto = "auto"

	defaultAttempts       = 3
	defaultRetryDelay     = 1 * time.Second
	defaultRateLimitDelay = 500 * time.Millisecond
	rateLimitEvery        = 5
)

// Provider translates a single string.
type Provider interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Translator is the translation stage.
type Translator struct {
	provider Provider
	target   string
	logger   *zerolog.Logger

	// Attempts is the number of provider calls per comment.
	Attempts int
	// RetryDelay is slept after each failed provider call.
	RetryDelay time.Duration
	// RateLimitDelay is slept after every fifth record (indexes 0, 5, 10, ...).
	RateLimitDelay time.Duration
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// NewTranslator returns a stage translating into target (a BCP 47 tag such as "en").
func NewTranslator(provider Provider, target string, logger *zerolog.Logger) *Translator {
	return &Translator{
		provider:       provider,
		target:         target,
		logger:         logger,
		Attempts:       defaultAttempts,
		RetryDelay:     defaultRetryDelay,
		RateLimitDelay: defaultRateLimitDelay,
		Sleep:          time.Sleep,
	}
}

// TranslateTable returns a copy of table with the translated column filled, one value
// per row in row order. Per-row failures never escape: exhausted retries give
// FailedPrefix + comment, and a panic while handling a row falls back to the comment.
// The only error is a missing comment column.
func (t *Translator) TranslateTable(ctx context.Context, table comments.Table) (comments.Table, error) {
	if err := table.Require(comments.ColComment); err != nil {
		return comments.Table{}, fmt.Errorf("translate: %w", err)
	}

	source := table.Comments()
	translated := make([]string, len(source))
	failures := 0

	for i, text := range source {
		var failed bool

		translated[i], failed = t.translateRecord(ctx, i, text)
		if failed {
			failures++
		}

		if i%rateLimitEvery == 0 {
			t.sleep(t.RateLimitDelay)
		}
	}

	t.logger.Info().Int("comments", len(source)).Int("failed", failures).Msg("Translation finished")

	return table.WithTranslated(translated)
}

func (t *Translator) translateRecord(ctx context.Context, index int, text string) (out string, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error().Int("index", index).Interface("panic", r).Msg("Unexpected error translating comment, keeping original")

			out, failed = text, false
		}
	}()

	if !NeedsTranslation(text) {
		return text, false
	}

	res := retry.WithFallback(ctx,
		retry.Policy{
			Attempts: t.Attempts,
			Delay:    t.RetryDelay,
			Sleep:    t.sleep,
			OnFailure: func(attempt int, err error) {
				t.logger.Debug().Err(err).Int("index", index).Int("attempt", attempt).Msg("Translation attempt failed")
			},
		},
		func(ctx context.Context) (string, error) {
			return t.provider.Translate(ctx, text, SourceAuto, t.target)
		},
		func(error) string { return FailedPrefix + text },
	)

	if res.FellBack() {
		t.logger.Error().Err(res.Err).Int("index", index).Str("comment", text).Msg("Translation failed")
	}

	return res.Value, res.FellBack()
}

func (t *Translator) sleep(d time.Duration) {
	if d <= 0 {
		return
	}

	if t.Sleep != nil {
		t.Sleep(d)
		return
	}

	time.Sleep(d)
}
