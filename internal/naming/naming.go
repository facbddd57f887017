// Package naming derives human-readable titles from file and directory names.
package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize turns a slug into a title: hyphens and underscores become spaces
// and each word is capitalized. The rest of each word is left as written so
// acronyms survive ("REST-api" becomes "REST Api"). A slug made only of
// separators is returned unchanged, so a non-empty slug never yields an empty
// title.
func Humanize(slug string) string {
	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	words := strings.Fields(replaced)
	if len(words) == 0 {
		return strings.TrimSpace(slug)
	}
	// A Caser keeps internal state and must not be shared across goroutines.
	caser := cases.Title(language.Und, cases.NoLower)
	return caser.String(strings.Join(words, " "))
}

// Slug returns a file name without its extension.
func Slug(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
