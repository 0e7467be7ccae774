package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
)

// Translation provider names accepted in TRANSLATION_PROVIDER.
const (
	ProviderGoogle = "google"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

const (
	envYoutubeAPIKey = "YOUTUBE_API_KEY"
	envGeminiAPIKey  = "GEMINI_API_KEY"
	envOpenAIAPIKey  = "OPENAI_API_KEY"
)

// Config is the process-wide configuration loaded from the environment.
type Config struct {
	YoutubeAPIKey string `env:"YOUTUBE_API_KEY"`
	MaxComments   int    `env:"MAX_COMMENTS" envDefault:"100"`

	TargetLanguage      string        `env:"TARGET_LANGUAGE" envDefault:"en"`
	TranslationProvider string        `env:"TRANSLATION_PROVIDER" envDefault:"google"`
	GoogleTranslateURL  string        `env:"GOOGLE_TRANSLATE_URL" envDefault:"https://translate.googleapis.com/translate_a/single"`
	HTTPTimeout         time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash-latest"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	// OpenAIBaseURL points the OpenAI client at a compatible endpoint when set.
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	LLMRateLimitRPS float64       `env:"LLM_RATE_LIMIT_RPS" envDefault:"1"`
	LLMTimeout      time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	APIAddr   string `env:"API_ADDR" envDefault:":8080"`
}

// Load reads an optional .env file, parses the environment and validates the result.
// A missing YOUTUBE_API_KEY is reported as apperrors.ErrMissingCredential.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required credentials and value ranges.
func (c *Config) Validate() error {
	if c.YoutubeAPIKey == "" {
		return fmt.Errorf("%w: %s environment variable must be set", apperrors.ErrMissingCredential, envYoutubeAPIKey)
	}

	if c.MaxComments <= 0 {
		return fmt.Errorf("%w: MAX_COMMENTS must be positive, got %d", apperrors.ErrInvalidConfig, c.MaxComments)
	}

	if _, err := language.Parse(c.TargetLanguage); err != nil {
		return fmt.Errorf("%w: TARGET_LANGUAGE %q: %v", apperrors.ErrInvalidConfig, c.TargetLanguage, err)
	}

	c.TranslationProvider = strings.ToLower(strings.TrimSpace(c.TranslationProvider))
	switch c.TranslationProvider {
	case ProviderGoogle:
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: %s is required for the gemini translation provider", apperrors.ErrMissingCredential, envGeminiAPIKey)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: %s is required for the openai translation provider", apperrors.ErrMissingCredential, envOpenAIAPIKey)
		}
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownProvider, c.TranslationProvider)
	}

	if c.LLMRateLimitRPS <= 0 {
		c.LLMRateLimitRPS = 1
	}

	return nil
}

// SummarizationEnabled reports whether a Gemini key is available for the summarizer.
func (c *Config) SummarizationEnabled() bool {
	return c.GeminiAPIKey != ""
}
