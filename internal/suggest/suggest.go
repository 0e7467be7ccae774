// Package suggest finds comments in which viewers ask for future content.
package suggest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/yousafroja/comment-analyzer/internal/comments"
)

// Keywords are matched as case-sensitive substrings of the translated text, so
// "should" also matches "shouldn't".
var Keywords = []string{"should", "make", "video on", "talk about", "cover", "do a video on"}

// spaceClass is the Unicode whitespace set: RE2's \s only covers ASCII tab, newline,
// form feed, carriage return and space.
const spaceClass = `\s\v\x1c-\x1f\x85\p{Z}`

var (
	urlPattern     = regexp.MustCompile(`http[^` + spaceClass + `]+|www[^` + spaceClass + `]+|https[^` + spaceClass + `]+`)
	mentionPattern = regexp.MustCompile(`@[\p{L}\p{N}_]+|#`)
	nonWordPattern = regexp.MustCompile(`[^A-Za-z0-9` + spaceClass + `]`)
)

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// CleanText strips URLs, @mentions, '#' and every character that is not an ASCII
// letter, digit or whitespace, then lowercases and trims.
func CleanText(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = nonWordPattern.ReplaceAllString(text, "")

	return strings.TrimFunc(strings.ToLower(text), isSpace)
}

// ExtractSuggestions returns, in row order and without de-duplication, every translated
// comment containing one of Keywords.
func ExtractSuggestions(table comments.Table) ([]string, error) {
	if err := table.Require(comments.ColTranslated); err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	suggestions := []string{}

	for _, text := range table.Translated() {
		if containsKeyword(text) {
			suggestions = append(suggestions, text)
		}
	}

	return suggestions, nil
}

func containsKeyword(text string) bool {
	for _, kw := range Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return false
}

// TableTranslator is the translation stage as seen by the extractor.
type TableTranslator interface {
	TranslateTable(ctx context.Context, table comments.Table) (comments.Table, error)
}

// Extractor runs the full suggestion path: clean, translate again, match.
type Extractor struct {
	translator TableTranslator
	logger     *zerolog.Logger
}

// NewExtractor returns an Extractor that re-translates through translator.
func NewExtractor(translator TableTranslator, logger *zerolog.Logger) *Extractor {
	return &Extractor{translator: translator, logger: logger}
}

// ViewerSuggestions adds the cleaned_comment column, recomputes the translated column
// from the raw comments (any earlier translation is ignored) and extracts suggestions.
func (e *Extractor) ViewerSuggestions(ctx context.Context, table comments.Table) ([]string, error) {
	if err := table.Require(comments.ColComment); err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	raw := table.Comments()
	cleaned := make([]string, len(raw))

	for i, text := range raw {
		cleaned[i] = CleanText(text)
	}

	withCleaned, err := table.WithCleaned(cleaned)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	translated, err := e.translator.TranslateTable(ctx, withCleaned)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	suggestions, err := ExtractSuggestions(translated)
	if err != nil {
		return nil, err
	}

	e.logger.Info().Int("comments", table.Len()).Int("suggestions", len(suggestions)).Msg("Viewer suggestions extracted")

	return suggestions, nil
}
