package translate

import (
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
)

var latinRun = regexp.MustCompile(`[a-zA-Z]{3,}`)

// NeedsTranslation reports whether text should be sent to a translation provider.
// It is a heuristic, not a language detector: once emoji are stripped, any run of three
// or more ASCII letters marks the text as already English, even when most of it is in
// another script.
func NeedsTranslation(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	clean := gomoji.RemoveEmojis(text)
	if strings.TrimSpace(clean) == "" {
		return false
	}

	return !latinRun.MatchString(clean)
}
