package name

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var separators = strings.NewReplacer("-", " ", "_", " ")

// Normalize turns handwritten free text into a title-cased name made of
// ASCII letters separated by single spaces.
func Normalize(raw string) (string, error) {
	lowered := strings.ToLower(separators.Replace(raw))
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, lowered)

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return "", ErrUnparseable
	}

	// Casers keep state between calls, so each call gets its own.
	return cases.Title(language.Und).String(strings.Join(words, " ")), nil
}
