// Package gemini holds the Gemini client setup and response helpers shared by the
// translation provider and the summarizer.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// NewClient creates a Gemini client for apiKey.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*genai.Client, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return client, nil
}

// ResponseText concatenates the text parts of the first candidate. It returns ""
// when the response carries no text.
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String()
}

// SanitizeUTF8 replaces invalid byte sequences with utf8.RuneError. The Gemini API
// rejects requests that are not valid UTF-8.
func SanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
			i++

			continue
		}

		sb.WriteRune(r)
		i += size
	}

	return sb.String()
}
