package search

import "strings"

const (
	// snippetContext is how many characters of surrounding text a snippet
	// keeps on each side of the first match.
	snippetContext = 50

	// fallbackSnippetLen bounds the snippet when the literal query does
	// not occur in the normalized text (the query matched a substring
	// chunk that normalization rewrote, e.g. a hyphenated form).
	fallbackSnippetLen = 200

	highlightOpen  = "<strong>"
	highlightClose = "</strong>"
)

// Snippet returns an excerpt of normalized text around the first
// case-insensitive occurrence of the literal query, with every occurrence
// inside the excerpt wrapped in emphasis markers. When the query does not
// occur, it returns the first fallbackSnippetLen characters, unwrapped.
func Snippet(text, query string) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	if lowerQuery == "" {
		return fallback(text)
	}

	idx := strings.Index(lowerText, lowerQuery)
	if idx < 0 {
		return fallback(text)
	}

	qlen := len(lowerQuery)
	start := idx - snippetContext
	if start < 0 {
		start = 0
	}
	end := idx + qlen + snippetContext
	if end > len(text) {
		end = len(text)
	}

	// Wrap every occurrence inside the window. Normalized text is ASCII,
	// so lowercased offsets line up with the original text.
	window := text[start:end]
	lowerWindow := lowerText[start:end]

	var sb strings.Builder
	pos := 0
	for {
		i := strings.Index(lowerWindow[pos:], lowerQuery)
		if i < 0 {
			sb.WriteString(window[pos:])
			break
		}
		i += pos
		sb.WriteString(window[pos:i])
		sb.WriteString(highlightOpen)
		sb.WriteString(window[i : i+qlen])
		sb.WriteString(highlightClose)
		pos = i + qlen
	}
	return sb.String()
}

func fallback(text string) string {
	if len(text) > fallbackSnippetLen {
		return text[:fallbackSnippetLen]
	}
	return text
}
