package docsearch

import "context"

// Result is one search hit, ready to render: a highlighted snippet and a
// deep link into the source page.
type Result struct {
	// Content id of the matched unit.
	ParagraphID string `json:"paragraph_id"`

	// Title of the page the unit came from.
	Title string `json:"title"`

	// Page URL with the unit's reconstructed anchor fragment.
	URL string `json:"url"`

	// Excerpt of the unit's normalized text with query matches wrapped
	// in emphasis markers.
	Snippet string `json:"snippet"`

	// Section ancestry of the unit, outermost first.
	Ancestors []SectionRef `json:"ancestors"`
}

// Searcher resolves a raw query to paginated results.
type Searcher interface {
	// Resolve normalizes the query, looks it up as a single exact key,
	// deduplicates the matched content ids preserving first-occurrence
	// order, and returns the slice [offset, offset+topK) as results.
	//
	// An empty (post-trim) query and an offset past the end of the
	// sequence both yield an empty result, not an error.
	Resolve(ctx context.Context, query string, offset, topK int) ([]Result, error)
}
