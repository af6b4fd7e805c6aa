package docsearch

import (
	"strings"
	"unicode"
)

// MaxSlugWords caps the number of words an anchor slug carries. The cap
// matches the anchor ids the site's front end derives from element text, so
// reconstructed links resolve to the same elements.
const MaxSlugWords = 6

// Slug derives a URL-safe anchor slug from element text: lowercase, keep
// only ASCII letters, digits and whitespace, collapse whitespace, take the
// first MaxSlugWords words and join them with hyphens.
func Slug(text string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}

	words := strings.Fields(sb.String())
	if len(words) > MaxSlugWords {
		words = words[:MaxSlugWords]
	}
	return strings.Join(words, "-")
}

// AnchorURL reconstructs the deep link for an element: the page URL plus a
// fragment of the element's type tag and text slug. The result must match,
// character for character, the anchor the page itself exposes.
func AnchorURL(pageURL, elementType, rawText string) string {
	return pageURL + "#" + elementType + "-" + Slug(rawText)
}
