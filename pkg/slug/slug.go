// Package slug converts arbitrary strings into URL-safe identifiers.
// Clinic names arrive with Portuguese diacritics ("Clínica São João"), so
// normalization transliterates accented letters before slugifying.
package slug

import (
	"strings"
	"unicode"
)

// Option configures slug generation.
type Option func(*config)

type config struct {
	maxLength int
	separator string
}

// MaxLength truncates the slug to at most n characters (runes, not bytes).
func MaxLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

// Separator replaces the default hyphen separator.
func Separator(sep string) Option {
	return func(c *config) {
		if sep != "" {
			c.separator = sep
		}
	}
}

// translit maps accented letters common in Portuguese names to ASCII.
var translit = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n',
}

// Make converts s into a lowercase slug: diacritics transliterated, runs of
// non-alphanumeric characters collapsed into a single separator.
func Make(s string, opts ...Option) string {
	cfg := &config{separator: "-"}
	for _, opt := range opts {
		opt(cfg)
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if t, ok := translit[r]; ok {
			r = t
		}
		if unicode.IsLetter(r) && r <= unicode.MaxASCII || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	out := b.String()
	if cfg.maxLength > 0 {
		runes := []rune(out)
		if len(runes) > cfg.maxLength {
			out = strings.TrimSuffix(string(runes[:cfg.maxLength]), cfg.separator)
		}
	}
	return out
}
