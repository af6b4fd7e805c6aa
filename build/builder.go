// Package build provides the offline index builder. It turns a site's
// ordered page list into the persisted index store and content registry,
// coordinating fetching, extraction, normalization and chunk insertion.
package build

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"net/url"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsearch"
	"golang.org/x/sync/errgroup"
)

// ContentID returns the deterministic digest of a unit's normalized text,
// as a hex string. Units whose normalized text is byte-identical share an
// id; see docsearch.Registry for the resulting last-write-wins semantics.
func ContentID(cleaned string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(cleaned))
	return hex.EncodeToString(b[:])
}

// Builder populates an index store and content registry from a site's
// pages. It runs once, offline and single-threaded with respect to the
// index; only page fetching is concurrent.
type Builder struct {
	Fetcher     docsearch.Fetcher
	Extractor   docsearch.Extractor
	Pages       docsearch.PageService // optional fetch cache
	Index       docsearch.IndexStore
	Registry    *docsearch.Registry
	Logger      *slog.Logger
	Concurrency int
}

// Result holds the outcome of a build.
type Result struct {
	Pages   int // pages indexed
	Units   int // content units indexed
	Skipped int // pages skipped due to fetch or extraction errors
}

type fetchResult struct {
	position int
	url      string
	html     string
	cached   bool
	err      error
}

// BuildSite fetches every page path under baseURL and indexes its content
// units in page order. Unreachable or unparseable pages are reported and
// skipped; the build continues with the remaining pages. An index key
// outside the key alphabet aborts the build: it signals a defect in the
// normalization pipeline, not bad input.
func (b *Builder) BuildSite(ctx context.Context, baseURL string, paths []string) (*Result, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	urls := make([]string, 0, len(paths))
	for _, path := range paths {
		full, err := url.JoinPath(baseURL, path)
		if err != nil {
			return nil, docsearch.Errorf(docsearch.EINVALID, "invalid page path %q: %v", path, err)
		}
		urls = append(urls, full)
	}

	fetched := b.fetchAll(ctx, urls)

	res := &Result{}
	for _, f := range fetched {
		if f.err != nil {
			logger.Warn("skipping page", "url", f.url, "error", f.err)
			res.Skipped++
			continue
		}

		units, err := b.Extractor.Extract(f.url, f.html)
		if err != nil {
			logger.Warn("skipping unparseable page", "url", f.url, "error", err)
			res.Skipped++
			continue
		}

		b.cachePage(ctx, logger, f, units)

		logger.Info("indexing page", "url", f.url, "units", len(units))
		for i := range units {
			if err := units[i].Validate(); err != nil {
				logger.Warn("skipping invalid unit", "url", f.url, "order", units[i].Order, "error", err)
				continue
			}
			if err := b.IndexUnit(units[i]); err != nil {
				return nil, err
			}
			res.Units++
		}
		res.Pages++
	}
	return res, nil
}

// IndexUnit normalizes one unit, registers its content record and inserts
// every chunk of its normalized text into the index store.
func (b *Builder) IndexUnit(unit docsearch.ContentUnit) error {
	cleaned := docsearch.Normalize(unit.RawText)
	id := ContentID(cleaned)

	b.Registry.Put(id, &docsearch.ContentRecord{
		URL:         unit.URL,
		Type:        unit.Type,
		Order:       unit.Order,
		ID:          unit.ID,
		Ancestors:   unit.Ancestors,
		Title:       unit.Title,
		RawText:     unit.RawText,
		CleanedText: cleaned,
	})

	for _, chunk := range docsearch.Chunks(cleaned) {
		if err := b.Index.Insert(chunk, id); err != nil {
			return err
		}
	}
	return nil
}

// fetchAll retrieves all URLs concurrently, consulting the page cache
// first, and returns results in position order.
func (b *Builder) fetchAll(ctx context.Context, urls []string) []fetchResult {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	results := make([]fetchResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			html, cached, err := b.fetchPage(gctx, u)
			results[i] = fetchResult{position: i, url: u, html: html, cached: cached, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// fetchPage returns the page HTML, consulting the cache first. The second
// result reports a cache hit.
func (b *Builder) fetchPage(ctx context.Context, pageURL string) (string, bool, error) {
	if b.Pages != nil {
		page, err := b.Pages.FindPageByURL(ctx, pageURL)
		if err == nil {
			return page.HTML, true, nil
		}
		if docsearch.ErrorCode(err) != docsearch.ENOTFOUND {
			return "", false, err
		}
	}

	html, err := b.Fetcher.Fetch(ctx, pageURL)
	return html, false, err
}

// cachePage stores a freshly fetched page, titled from its extracted
// units. Pages served from the cache are not rewritten.
func (b *Builder) cachePage(ctx context.Context, logger *slog.Logger, f fetchResult, units []docsearch.ContentUnit) {
	if b.Pages == nil || f.cached {
		return
	}

	var title string
	if len(units) > 0 {
		title = units[0].Title
	}

	err := b.Pages.CreatePage(ctx, &docsearch.Page{
		URL:      f.url,
		Title:    title,
		HTML:     f.html,
		Position: f.position,
	})
	if err != nil {
		// The cache is an optimization; a write failure must not
		// fail the build.
		logger.Warn("page cache write failed", "url", f.url, "error", err)
	}
}
