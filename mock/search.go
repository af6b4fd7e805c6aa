package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docsearch.Searcher.
type Searcher struct {
	ResolveFn func(ctx context.Context, query string, offset, topK int) ([]docsearch.Result, error)
}

func (s *Searcher) Resolve(ctx context.Context, query string, offset, topK int) ([]docsearch.Result, error) {
	return s.ResolveFn(ctx, query, offset, topK)
}
