package anime

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

// Slugify turns a human title into a URL-safe slug: lowercase, ASCII
// letters/digits/hyphens only, whitespace runs become single hyphens.
// Accented letters are dropped, not transliterated ("Épico" -> "pico");
// cache keys and upstream slug guesses were built on that behavior, so it
// stays the default. See SlugifyTransliterated for the alternative.
func Slugify(title string) string {
	return slugify(title)
}

// SlugifyTransliterated folds accented letters to ASCII before slugging
// ("Épico" -> "epico"). Opt-in via config; guesses more real upstream
// slugs for accented titles but produces different cache keys.
func SlugifyTransliterated(title string) string {
	return slugify(unidecode.Unidecode(title))
}

func slugify(title string) string {
	title = strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(title))
	sepPending := false
	for _, r := range title {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if sepPending {
				b.WriteByte('-')
				sepPending = false
			}
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			sepPending = true
		}
		// anything else is stripped without acting as a separator
	}
	if sepPending && b.Len() > 0 {
		b.WriteByte('-')
	}
	return b.String()
}
