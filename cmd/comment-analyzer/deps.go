package main

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
	"github.com/yousafroja/comment-analyzer/internal/config"
	"github.com/yousafroja/comment-analyzer/internal/gemini"
	"github.com/yousafroja/comment-analyzer/internal/pipeline"
	"github.com/yousafroja/comment-analyzer/internal/sentiment"
	"github.com/yousafroja/comment-analyzer/internal/suggest"
	"github.com/yousafroja/comment-analyzer/internal/summarize"
	"github.com/yousafroja/comment-analyzer/internal/translate"
	"github.com/yousafroja/comment-analyzer/internal/youtube"
)

// buildPipeline wires every stage from cfg. The returned cleanup releases the Gemini
// client when one was created.
func buildPipeline(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*pipeline.Pipeline, func(), error) {
	service, err := youtube.NewService(ctx, cfg.YoutubeAPIKey)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}

	var geminiClient *genai.Client
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}

		cleanup = func() {
			if err := geminiClient.Close(); err != nil {
				logger.Warn().Err(err).Msg("Closing Gemini client")
			}
		}
	}

	provider, err := newProvider(cfg, geminiClient)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	translator := translate.NewTranslator(provider, cfg.TargetLanguage, logger)

	var summarizer pipeline.Summarizer
	if cfg.SummarizationEnabled() {
		model := summarize.NewGeminiModel(geminiClient, cfg.GeminiModel, cfg.LLMTimeout)
		summarizer = summarize.NewSummarizer(model, logger)
	} else {
		logger.Warn().Msg("GEMINI_API_KEY is not set, summaries are disabled")
	}

	p := pipeline.New(
		youtube.NewFetcher(service, logger),
		translator,
		sentiment.NewAnalyzer(sentiment.NewVaderScorer(), logger),
		suggest.NewExtractor(translator, logger),
		summarizer,
		logger,
	)

	return p, cleanup, nil
}

func newProvider(cfg *config.Config, geminiClient *genai.Client) (translate.Provider, error) {
	switch cfg.TranslationProvider {
	case config.ProviderGoogle:
		return translate.NewGoogleProvider(cfg.GoogleTranslateURL, cfg.HTTPTimeout), nil
	case config.ProviderGemini:
		if geminiClient == nil {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY", apperrors.ErrMissingCredential)
		}
		return translate.NewGeminiProvider(geminiClient.GenerativeModel(cfg.GeminiModel), cfg.LLMRateLimitRPS), nil
	case config.ProviderOpenAI:
		return translate.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.LLMRateLimitRPS), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownProvider, cfg.TranslationProvider)
	}
}
