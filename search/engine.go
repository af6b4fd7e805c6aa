// Package search provides the query engine: it resolves a raw query against
// the loaded index store and content registry and renders highlighted,
// anchor-linked results.
package search

import (
	"context"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Compile-time interface verification.
var _ docsearch.Searcher = (*Engine)(nil)

// Engine implements docsearch.Searcher over a loaded index store and
// content registry. Both are read-only after load, so one Engine is safe
// for any number of concurrent connections.
type Engine struct {
	index   docsearch.IndexStore
	records docsearch.RecordStore
}

// NewEngine creates a new Engine.
func NewEngine(index docsearch.IndexStore, records docsearch.RecordStore) *Engine {
	return &Engine{index: index, records: records}
}

// Resolve implements docsearch.Searcher.
//
// The query is normalized with the same Normalizer the build used and looked
// up as one exact key; a multi-word query is never split into sub-chunks and
// there is no prefix fallback. Matched ids are deduplicated preserving
// first-occurrence order, then paginated.
func (e *Engine) Resolve(ctx context.Context, query string, offset, topK int) ([]docsearch.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []docsearch.Result{}, nil
	}

	ids := e.index.Get(docsearch.Normalize(trimmed))
	if len(ids) == 0 {
		return []docsearch.Result{}, nil
	}

	deduped := dedupe(ids)

	if offset < 0 {
		offset = 0
	}
	if topK < 0 {
		topK = 0
	}
	if offset >= len(deduped) {
		return []docsearch.Result{}, nil
	}
	end := offset + topK
	if end > len(deduped) {
		end = len(deduped)
	}

	results := make([]docsearch.Result, 0, end-offset)
	for _, id := range deduped[offset:end] {
		rec, ok := e.records.Record(id)
		if !ok {
			continue
		}

		ancestors := rec.Ancestors
		if ancestors == nil {
			ancestors = []docsearch.SectionRef{}
		}

		results = append(results, docsearch.Result{
			ParagraphID: id,
			Title:       rec.Title,
			URL:         docsearch.AnchorURL(rec.URL, rec.Type, rec.RawText),
			Snippet:     Snippet(rec.CleanedText, trimmed),
			Ancestors:   ancestors,
		})
	}
	return results, nil
}

// dedupe removes duplicate ids preserving first-occurrence order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
