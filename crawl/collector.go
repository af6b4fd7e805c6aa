// Package crawl implements breadth-first URL collection over a single
// documentation site, producing the ordered list of page paths that the
// index builder consumes.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/goquery"
)

// Compile-time interface verification.
var _ docsearch.URLSource = (*Collector)(nil)

// Collector discovers the pages of a documentation site by following
// same-host links breadth-first from a start URL.
type Collector struct {
	Fetcher  docsearch.Fetcher
	Frontier docsearch.URLFrontier
	Limiter  docsearch.DomainLimiter
	Logger   *slog.Logger
}

// Discover visits pages reachable from startURL and returns their paths
// relative to the site root, in discovery order. Pages that fail to fetch
// are logged and skipped; directory links (paths ending in "/") are
// ignored. The start page itself is visited but only appears in the result
// if another page links to it.
func (c *Collector) Discover(ctx context.Context, startURL string) ([]string, error) {
	start, err := url.Parse(startURL)
	if err != nil || start.Host == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "invalid start URL %q", startURL)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	frontier := c.Frontier
	if frontier == nil {
		frontier = NewFrontier(100000, 0.001)
	}
	frontier.Push(startURL)

	collected := make(map[string]bool)
	var paths []string

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx, start.Host); err != nil {
				return nil, err
			}
		}

		logger.Info("visiting page", "url", pageURL)

		html, err := c.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			logger.Warn("failed to fetch page", "url", pageURL, "error", err)
			continue
		}

		links, err := goquery.ExtractLinks(html, pageURL)
		if err != nil {
			logger.Warn("failed to parse page", "url", pageURL, "error", err)
			continue
		}

		for _, link := range links {
			rel := relativePath(link)
			if rel == "" || strings.HasSuffix(rel, "/") || collected[rel] {
				continue
			}
			collected[rel] = true
			paths = append(paths, rel)
			frontier.Push(link)
		}
	}

	return paths, nil
}

// relativePath returns the URL's path without the leading slash, or ""
// if the URL cannot be parsed.
func relativePath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
