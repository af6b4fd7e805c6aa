package docsearch

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	markupTagRe   = regexp.MustCompile(`<[^>]*>`)
	punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)

	// NFKD-decompose, then drop everything outside ASCII. Decomposition
	// turns accented letters into a base letter plus combining marks, so
	// the ASCII filter keeps the base letter and discards the accent.
	asciiFold = transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII
		})),
	)
)

// Normalize cleans text for indexing and querying: lowercase, hyphens to
// spaces, markup tags stripped, punctuation removed (underscores kept),
// accents folded to ASCII, whitespace collapsed and trimmed.
//
// Normalize is pure and idempotent. Texts differing only by case,
// hyphenation, punctuation, or accents normalize identically, which is the
// basis of the content-identity collision documented on Registry.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "-", " ")
	text = markupTagRe.ReplaceAllString(text, "")
	text = punctuationRe.ReplaceAllString(text, "")
	if folded, _, err := transform.String(asciiFold, text); err == nil {
		text = folded
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
