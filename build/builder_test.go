package build_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/build"
	"github.com/fwojciec/docsearch/mock"
	"github.com/fwojciec/docsearch/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentID(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, build.ContentID("ocaml basics"), build.ContentID("ocaml basics"))
		assert.NotEqual(t, build.ContentID("ocaml basics"), build.ContentID("ocaml"))
	})

	t.Run("identical normalized text collides by construction", func(t *testing.T) {
		t.Parallel()

		a := build.ContentID(docsearch.Normalize("Pattern-Matching!"))
		b := build.ContentID(docsearch.Normalize("pattern matching"))

		assert.Equal(t, a, b)
	})
}

func newTestBuilder(pages map[string]string) (*build.Builder, *trie.Trie, *docsearch.Registry) {
	idx := trie.New()
	reg := docsearch.NewRegistry()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", fmt.Errorf("HTTP 404 for %s", url)
			}
			return html, nil
		},
	}
	extractor := &mock.Extractor{
		ExtractFn: func(pageURL, html string) ([]docsearch.ContentUnit, error) {
			return []docsearch.ContentUnit{
				{URL: pageURL, Type: "p", Order: 0, Title: "T", RawText: html},
			}, nil
		},
	}

	return &build.Builder{
		Fetcher:   fetcher,
		Extractor: extractor,
		Index:     idx,
		Registry:  reg,
	}, idx, reg
}

func TestBuilder_BuildSite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("indexes pages in list order", func(t *testing.T) {
		t.Parallel()

		builder, idx, reg := newTestBuilder(map[string]string{
			"http://x/a.html": "shared alpha",
			"http://x/b.html": "shared beta",
		})

		res, err := builder.BuildSite(ctx, "http://x", []string{"a.html", "b.html"})
		require.NoError(t, err)

		assert.Equal(t, 2, res.Pages)
		assert.Equal(t, 2, res.Units)
		assert.Equal(t, 0, res.Skipped)
		assert.Equal(t, 2, reg.Len())

		idA := build.ContentID("shared alpha")
		idB := build.ContentID("shared beta")

		// The shared chunk lists the first page's unit before the
		// second page's: insertion order across the build is preserved.
		assert.Equal(t, []string{idA, idB}, idx.Get("shared"))
		assert.Equal(t, []string{idA}, idx.Get("shared alpha"))
		assert.Equal(t, []string{idB}, idx.Get("beta"))
	})

	t.Run("registers record metadata", func(t *testing.T) {
		t.Parallel()

		builder, _, reg := newTestBuilder(map[string]string{"http://x/a.html": "Some Text"})

		_, err := builder.BuildSite(ctx, "http://x", []string{"a.html"})
		require.NoError(t, err)

		rec, ok := reg.Record(build.ContentID("some text"))
		require.True(t, ok)
		assert.Equal(t, "http://x/a.html", rec.URL)
		assert.Equal(t, "p", rec.Type)
		assert.Equal(t, "Some Text", rec.RawText)
		assert.Equal(t, "some text", rec.CleanedText)
	})

	t.Run("identical normalized text collapses to one record", func(t *testing.T) {
		t.Parallel()

		builder, idx, reg := newTestBuilder(map[string]string{
			"http://x/a.html": "Pattern-Matching!",
			"http://x/b.html": "pattern matching",
		})

		_, err := builder.BuildSite(ctx, "http://x", []string{"a.html", "b.html"})
		require.NoError(t, err)

		id := build.ContentID("pattern matching")

		// One record, holding the later page's metadata.
		require.Equal(t, 1, reg.Len())
		rec, ok := reg.Record(id)
		require.True(t, ok)
		assert.Equal(t, "http://x/b.html", rec.URL)

		// The index still lists the id once per occurrence.
		assert.Equal(t, []string{id, id}, idx.Get("pattern matching"))
	})

	t.Run("skips unreachable pages and continues", func(t *testing.T) {
		t.Parallel()

		builder, idx, _ := newTestBuilder(map[string]string{"http://x/b.html": "beta"})

		res, err := builder.BuildSite(ctx, "http://x", []string{"missing.html", "b.html"})
		require.NoError(t, err)

		assert.Equal(t, 1, res.Pages)
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, []string{build.ContentID("beta")}, idx.Get("beta"))
	})

	t.Run("aborts on keys outside the index alphabet", func(t *testing.T) {
		t.Parallel()

		// Normalization keeps underscores but the key alphabet excludes
		// them; such a key is a pipeline defect, not recoverable input.
		builder, _, _ := newTestBuilder(map[string]string{"http://x/a.html": "List_map"})

		_, err := builder.BuildSite(ctx, "http://x", []string{"a.html"})
		require.Error(t, err)
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("caches fetched pages with the extracted title", func(t *testing.T) {
		t.Parallel()

		var created *docsearch.Page
		builder, _, _ := newTestBuilder(map[string]string{"http://x/a.html": "alpha"})
		builder.Pages = &mock.PageService{
			FindPageByURLFn: func(_ context.Context, url string) (*docsearch.Page, error) {
				return nil, docsearch.Errorf(docsearch.ENOTFOUND, "page not found: %s", url)
			},
			CreatePageFn: func(_ context.Context, page *docsearch.Page) error {
				created = page
				return nil
			},
		}

		_, err := builder.BuildSite(ctx, "http://x", []string{"a.html"})
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.Equal(t, "http://x/a.html", created.URL)
		assert.Equal(t, "T", created.Title)
		assert.Equal(t, "alpha", created.HTML)
		assert.Equal(t, 0, created.Position)
	})

	t.Run("prefers the page cache over refetching", func(t *testing.T) {
		t.Parallel()

		fetchCalls := 0
		builder, idx, _ := newTestBuilder(nil)
		builder.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				fetchCalls++
				return "", fmt.Errorf("network down")
			},
		}
		builder.Pages = &mock.PageService{
			FindPageByURLFn: func(_ context.Context, url string) (*docsearch.Page, error) {
				return &docsearch.Page{URL: url, HTML: "cached text"}, nil
			},
		}

		res, err := builder.BuildSite(ctx, "http://x", []string{"a.html"})
		require.NoError(t, err)

		assert.Equal(t, 0, fetchCalls)
		assert.Equal(t, 1, res.Pages)
		assert.Equal(t, []string{build.ContentID("cached text")}, idx.Get("cached text"))
	})
}
