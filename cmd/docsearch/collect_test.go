package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/docsearch/cmd/docsearch"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeps(t *testing.T) *main.Dependencies {
	t.Helper()

	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
		Dir:    t.TempDir(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestCollectCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes discovered paths to pages.json", func(t *testing.T) {
		t.Parallel()

		deps := newTestDeps(t)
		deps.Source = &mock.URLSource{
			DiscoverFn: func(_ context.Context, baseURL string) ([]string, error) {
				assert.Equal(t, "http://camel.example.com/", baseURL)
				return []string{"index.html", "lists.html"}, nil
			},
		}

		cmd := &main.CollectCmd{URL: "http://camel.example.com/"}
		require.NoError(t, cmd.Run(deps))

		paths, err := fs.LoadPaths(filepath.Join(deps.Dir, "pages.json"))
		require.NoError(t, err)
		assert.Equal(t, []string{"index.html", "lists.html"}, paths)

		assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "collected 2 pages")
	})

	t.Run("fails when the source finds nothing", func(t *testing.T) {
		t.Parallel()

		deps := newTestDeps(t)
		deps.Source = &mock.URLSource{
			DiscoverFn: func(context.Context, string) ([]string, error) {
				return nil, nil
			},
		}

		cmd := &main.CollectCmd{URL: "http://camel.example.com/"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no pages found")
	})
}
