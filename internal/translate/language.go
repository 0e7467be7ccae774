package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageName returns the English name of a BCP 47 tag ("de" -> "German"), or the tag
// itself when it cannot be parsed or named.
func LanguageName(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}

	if name := display.English.Tags().Name(parsed); name != "" {
		return name
	}

	return tag
}
