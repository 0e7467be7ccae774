// Package pipeline composes the comment stages into one analysis run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yousafroja/comment-analyzer/internal/comments"
	"github.com/yousafroja/comment-analyzer/internal/summarize"
)

// Fetcher lists the top-level comments of a video.
type Fetcher interface {
	Fetch(ctx context.Context, input string, maxComments int) comments.Table
}

// Translator fills the translated column.
type Translator interface {
	TranslateTable(ctx context.Context, table comments.Table) (comments.Table, error)
}

// Analyzer fills the sentiment column.
type Analyzer interface {
	AnalyzeTable(table comments.Table) (comments.Table, error)
}

// SuggestionExtractor returns viewer suggestions in row order.
type SuggestionExtractor interface {
	ViewerSuggestions(ctx context.Context, table comments.Table) ([]string, error)
}

// Summarizer produces one summary for the raw comments.
type Summarizer interface {
	Summarize(ctx context.Context, table comments.Table) (string, error)
}

// Analysis is the output of one run.
type Analysis struct {
	RunID          string         `json:"run_id"`
	Input          string         `json:"input"`
	Table          comments.Table `json:"comments"`
	Suggestions    []string       `json:"suggestions"`
	Summary        string         `json:"summary,omitempty"`
	SummaryError   string         `json:"summary_error,omitempty"`
	SummarySkipped bool           `json:"summary_skipped"`
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     time.Time      `json:"finished_at"`
}

// Pipeline runs fetch, translation and sentiment to build the base table, then
// derives suggestions and the summary from it.
type Pipeline struct {
	fetcher    Fetcher
	translator Translator
	analyzer   Analyzer
	extractor  SuggestionExtractor
	summarizer Summarizer
	logger     *zerolog.Logger
	now        func() time.Time
}

// New returns a Pipeline. summarizer may be nil, in which case runs skip the summary.
func New(fetcher Fetcher, translator Translator, analyzer Analyzer, extractor SuggestionExtractor, summarizer Summarizer, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		translator: translator,
		analyzer:   analyzer,
		extractor:  extractor,
		summarizer: summarizer,
		logger:     logger,
		now:        time.Now,
	}
}

// Run analyzes up to maxComments comments of the video at input (URL or bare ID).
// Stages run sequentially and each gets the previous stage's table. A failing
// summarizer does not fail the run: Summary becomes summarize.ErrorMessage and
// SummaryError carries the cause.
func (p *Pipeline) Run(ctx context.Context, input string, maxComments int) (*Analysis, error) {
	runID := uuid.NewString()
	logger := p.logger.With().Str("run_id", runID).Logger()

	analysis := &Analysis{RunID: runID, Input: input, StartedAt: p.now()}

	logger.Info().Str("input", input).Int("max_comments", maxComments).Msg("Analysis started")

	table := p.fetcher.Fetch(ctx, input, maxComments)
	logger.Info().Int("comments", table.Len()).Msg("Comments fetched")

	table, err := p.translator.TranslateTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	table, err = p.analyzer.AnalyzeTable(table)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	analysis.Table = table

	analysis.Suggestions, err = p.extractor.ViewerSuggestions(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if p.summarizer == nil {
		analysis.SummarySkipped = true
		logger.Warn().Msg("No summarization model configured, skipping summary")
	} else {
		summary, err := p.summarizer.Summarize(ctx, table)
		if err != nil {
			logger.Error().Err(err).Msg("Summarization failed, keeping the analysis")

			summary = summarize.ErrorMessage
			analysis.SummaryError = err.Error()
		}

		analysis.Summary = summary
	}

	analysis.FinishedAt = p.now()

	logger.Info().
		Int("comments", table.Len()).
		Int("suggestions", len(analysis.Suggestions)).
		Dur("elapsed", analysis.FinishedAt.Sub(analysis.StartedAt)).
		Msg("Analysis finished")

	return analysis, nil
}
