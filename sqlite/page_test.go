package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageService_CreatePage(t *testing.T) {
	t.Parallel()

	t.Run("stores a page and assigns metadata", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewPageService(MustOpenDB(t))
		ctx := context.Background()

		page := &docsearch.Page{
			URL:   "http://camel.example.com/lists.html",
			Title: "Lists",
			HTML:  "<html><body>lists</body></html>",
		}
		require.NoError(t, s.CreatePage(ctx, page))

		assert.NotEmpty(t, page.ID)
		assert.NotEmpty(t, page.ContentHash)
		assert.False(t, page.FetchedAt.IsZero())

		got, err := s.FindPageByURL(ctx, "http://camel.example.com/lists.html")
		require.NoError(t, err)
		assert.Equal(t, "Lists", got.Title)
		assert.Equal(t, page.HTML, got.HTML)
		assert.Equal(t, page.ContentHash, got.ContentHash)
	})

	t.Run("replaces the page stored for the same URL", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewPageService(MustOpenDB(t))
		ctx := context.Background()

		first := &docsearch.Page{URL: "http://x/a.html", HTML: "v1"}
		require.NoError(t, s.CreatePage(ctx, first))

		second := &docsearch.Page{URL: "http://x/a.html", HTML: "v2"}
		require.NoError(t, s.CreatePage(ctx, second))

		got, err := s.FindPageByURL(ctx, "http://x/a.html")
		require.NoError(t, err)
		assert.Equal(t, "v2", got.HTML)

		pages, err := s.FindPages(ctx, docsearch.PageFilter{})
		require.NoError(t, err)
		assert.Len(t, pages, 1)
	})

	t.Run("rejects a page without a URL", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewPageService(MustOpenDB(t))

		err := s.CreatePage(context.Background(), &docsearch.Page{HTML: "x"})
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("identical content hashes identically", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewPageService(MustOpenDB(t))
		ctx := context.Background()

		a := &docsearch.Page{URL: "http://x/a.html", HTML: "same"}
		b := &docsearch.Page{URL: "http://x/b.html", HTML: "same"}
		require.NoError(t, s.CreatePage(ctx, a))
		require.NoError(t, s.CreatePage(ctx, b))

		assert.Equal(t, a.ContentHash, b.ContentHash)
	})
}

func TestPageService_FindPageByURL(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for an unknown URL", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewPageService(MustOpenDB(t))

		_, err := s.FindPageByURL(context.Background(), "http://x/missing.html")
		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	})
}

func TestPageService_FindPages(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.PageService {
		t.Helper()

		s := sqlite.NewPageService(MustOpenDB(t))
		ctx := context.Background()
		for i, url := range []string{"http://x/c.html", "http://x/a.html", "http://x/b.html"} {
			require.NoError(t, s.CreatePage(ctx, &docsearch.Page{URL: url, Position: i}))
		}
		return s
	}

	t.Run("orders pages by position", func(t *testing.T) {
		t.Parallel()

		s := seed(t)

		pages, err := s.FindPages(context.Background(), docsearch.PageFilter{})
		require.NoError(t, err)

		require.Len(t, pages, 3)
		assert.Equal(t, "http://x/c.html", pages[0].URL)
		assert.Equal(t, "http://x/a.html", pages[1].URL)
		assert.Equal(t, "http://x/b.html", pages[2].URL)
	})

	t.Run("filters by URL", func(t *testing.T) {
		t.Parallel()

		s := seed(t)

		url := "http://x/a.html"
		pages, err := s.FindPages(context.Background(), docsearch.PageFilter{URL: &url})
		require.NoError(t, err)

		require.Len(t, pages, 1)
		assert.Equal(t, url, pages[0].URL)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		s := seed(t)

		pages, err := s.FindPages(context.Background(), docsearch.PageFilter{Offset: 1, Limit: 1})
		require.NoError(t, err)

		require.Len(t, pages, 1)
		assert.Equal(t, "http://x/a.html", pages[0].URL)
	})
}

func TestPageService_DeletePages(t *testing.T) {
	t.Parallel()

	s := sqlite.NewPageService(MustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreatePage(ctx, &docsearch.Page{URL: "http://x/a.html"}))
	require.NoError(t, s.DeletePages(ctx))

	pages, err := s.FindPages(ctx, docsearch.PageFilter{})
	require.NoError(t, err)
	assert.Empty(t, pages)
}
