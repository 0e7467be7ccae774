package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
	"github.com/yousafroja/comment-analyzer/internal/config"
	"github.com/yousafroja/comment-analyzer/internal/translate"
)

func TestAnalyzeOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    analyzeOptions
		wantErr bool
	}{
		{name: "defaults", opts: analyzeOptions{sentiment: "All Sentiments"}},
		{name: "empty sentiment", opts: analyzeOptions{}},
		{name: "known sentiment", opts: analyzeOptions{sentiment: "Negative"}},
		{name: "lowercase sentiment", opts: analyzeOptions{sentiment: "negative"}, wantErr: true},
		{name: "negative limit", opts: analyzeOptions{maxComments: -5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewProvider(t *testing.T) {
	cfg := &config.Config{TranslationProvider: config.ProviderGoogle, GoogleTranslateURL: translate.DefaultGoogleURL}

	p, err := newProvider(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &translate.GoogleProvider{}, p)

	cfg = &config.Config{TranslationProvider: config.ProviderOpenAI, OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-4o-mini", LLMRateLimitRPS: 1}

	p, err = newProvider(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &translate.OpenAIProvider{}, p)

	_, err = newProvider(&config.Config{TranslationProvider: config.ProviderGemini}, nil)
	assert.ErrorIs(t, err, apperrors.ErrMissingCredential)

	_, err = newProvider(&config.Config{TranslationProvider: "deepl"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnknownProvider)
}

func TestAnalyzeCommand_RequiresOneArgument(t *testing.T) {
	cmd := newRootCommandWith(&commandContext{loadConfig: func() (*config.Config, error) {
		t.Fatal("config must not be loaded")
		return nil, nil
	}})
	cmd.SetArgs([]string{"analyze"})
	cmd.SetOut(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestAnalyzeCommand_InvalidSentimentBeforeConfig(t *testing.T) {
	cmd := newRootCommandWith(&commandContext{loadConfig: func() (*config.Config, error) {
		t.Fatal("config must not be loaded")
		return nil, nil
	}})
	cmd.SetArgs([]string{"analyze", "dQw4w9WgXcQ", "--sentiment", "happy"})

	assert.Error(t, cmd.Execute())
}

func TestAnalyzeCommand_ConfigErrorIsFatal(t *testing.T) {
	errMissing := errors.Join(apperrors.ErrMissingCredential, errors.New("YOUTUBE_API_KEY environment variable must be set"))

	cmd := newRootCommandWith(&commandContext{loadConfig: func() (*config.Config, error) {
		return nil, errMissing
	}})
	cmd.SetArgs([]string{"analyze", "dQw4w9WgXcQ"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, apperrors.ErrMissingCredential)
}

func TestServeCommand_ConfigError(t *testing.T) {
	cmd := newRootCommandWith(&commandContext{loadConfig: func() (*config.Config, error) {
		return nil, apperrors.ErrMissingCredential
	}})
	cmd.SetArgs([]string{"serve"})

	assert.ErrorIs(t, cmd.Execute(), apperrors.ErrMissingCredential)
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "analyze")
	assert.Contains(t, names, "serve")
}
