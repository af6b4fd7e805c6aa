package docsearch

import (
	"context"
	"time"
)

// Page is a fetched documentation page as stored in the page cache.
type Page struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	HTML        string    `json:"html"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageService persists fetched pages between the collect/fetch and build
// stages so rebuilds do not refetch.
type PageService interface {
	// CreatePage stores a page, replacing any page previously stored
	// for the same URL.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByURL retrieves a page by URL.
	// Returns ENOTFOUND if no page is stored for the URL.
	FindPageByURL(ctx context.Context, url string) (*Page, error)

	// FindPages retrieves pages matching the filter, ordered by position.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// DeletePages removes all stored pages.
	DeletePages(ctx context.Context) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML document at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Extractor parses page markup into content units, one per structural
// element, annotated with the element's enclosing-section hierarchy.
type Extractor interface {
	// Extract returns the page's content units in document order.
	Extract(pageURL, html string) ([]ContentUnit, error)
}

// URLSource discovers documentation page URLs for a site.
// Implementations hide sitemap vs. recursive link discovery.
type URLSource interface {
	// Discover returns page paths relative to baseURL, in a stable
	// order. An empty result means the source found nothing; callers
	// may fall back to another source.
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
