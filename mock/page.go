package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

// Compile-time interface verification.
var (
	_ docsearch.Fetcher     = (*Fetcher)(nil)
	_ docsearch.Extractor   = (*Extractor)(nil)
	_ docsearch.PageService = (*PageService)(nil)
	_ docsearch.URLSource   = (*URLSource)(nil)
)

// Fetcher is a mock implementation of docsearch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// Extractor is a mock implementation of docsearch.Extractor.
type Extractor struct {
	ExtractFn func(pageURL, html string) ([]docsearch.ContentUnit, error)
}

func (e *Extractor) Extract(pageURL, html string) ([]docsearch.ContentUnit, error) {
	return e.ExtractFn(pageURL, html)
}

// PageService is a mock implementation of docsearch.PageService.
type PageService struct {
	CreatePageFn    func(ctx context.Context, page *docsearch.Page) error
	FindPageByURLFn func(ctx context.Context, url string) (*docsearch.Page, error)
	FindPagesFn     func(ctx context.Context, filter docsearch.PageFilter) ([]*docsearch.Page, error)
	DeletePagesFn   func(ctx context.Context) error
}

func (s *PageService) CreatePage(ctx context.Context, page *docsearch.Page) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByURL(ctx context.Context, url string) (*docsearch.Page, error) {
	return s.FindPageByURLFn(ctx, url)
}

func (s *PageService) FindPages(ctx context.Context, filter docsearch.PageFilter) ([]*docsearch.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) DeletePages(ctx context.Context) error {
	return s.DeletePagesFn(ctx)
}

// URLSource is a mock implementation of docsearch.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}
