package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
)

const testYoutubeKey = "yt-test-key"

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"YOUTUBE_API_KEY", "MAX_COMMENTS", "TARGET_LANGUAGE", "TRANSLATION_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "LLM_RATE_LIMIT_RPS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_MissingYoutubeKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingCredential)
	assert.Contains(t, err.Error(), "YOUTUBE_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", testYoutubeKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testYoutubeKey, cfg.YoutubeAPIKey)
	assert.Equal(t, 100, cfg.MaxComments)
	assert.Equal(t, "en", cfg.TargetLanguage)
	assert.Equal(t, ProviderGoogle, cfg.TranslationProvider)
	assert.Equal(t, "gemini-1.5-flash-latest", cfg.GeminiModel)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.False(t, cfg.SummarizationEnabled())
}

func TestLoad_MaxCommentsOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", testYoutubeKey)
	t.Setenv("MAX_COMMENTS", "250")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.MaxComments)
}

func TestLoad_MaxCommentsNotANumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", testYoutubeKey)
	t.Setenv("MAX_COMMENTS", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid google",
			cfg:  Config{YoutubeAPIKey: testYoutubeKey, MaxComments: 10, TargetLanguage: "en", TranslationProvider: "google"},
		},
		{
			name:    "zero max comments",
			cfg:     Config{YoutubeAPIKey: testYoutubeKey, MaxComments: 0, TargetLanguage: "en", TranslationProvider: "google"},
			wantErr: apperrors.ErrInvalidConfig,
		},
		{
			name:    "bad language tag",
			cfg:     Config{YoutubeAPIKey: testYoutubeKey, MaxComments: 10, TargetLanguage: "not a tag!", TranslationProvider: "google"},
			wantErr: apperrors.ErrInvalidConfig,
		},
		{
			name:    "gemini without key",
			cfg:     Config{YoutubeAPIKey: testYoutubeKey, MaxComments: 10, TargetLanguage: "en", TranslationProvider: "gemini"},
			wantErr: apperrors.ErrMissingCredential,
		},
		{
			name:    "openai without key",
			cfg:     Config{YoutubeAPIKey: testYoutubeKey, MaxComments: 10, TargetLanguage: "en", TranslationProvider: "openai"},
			wantErr: apperrors.ErrMissingCredential,
		},
		{
			name: "openai with key, mixed case",
			cfg:  Config{YoutubeAPIKey: testYoutubeKey, MaxComments: 10, TargetLanguage: "de", TranslationProvider: " OpenAI ", OpenAIAPIKey: "sk"},
		},
		{
			name:    "unknown provider",
			cfg:     Config{YoutubeAPIKey: testYoutubeKey, MaxComments: 10, TargetLanguage: "en", TranslationProvider: "babelfish"},
			wantErr: apperrors.ErrUnknownProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, cfg.LLMRateLimitRPS)
		})
	}
}
