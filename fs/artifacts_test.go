package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactStore(t *testing.T) {
	t.Parallel()

	t.Run("saves and loads the artifact pair", func(t *testing.T) {
		t.Parallel()

		idx := trie.New()
		require.NoError(t, idx.Insert("ocaml", "p1"))
		require.NoError(t, idx.Insert("ocaml", "p2"))

		anchorID := "intro"
		reg := docsearch.NewRegistry()
		reg.Put("p1", &docsearch.ContentRecord{
			URL:   "http://x/a.html",
			Type:  "p",
			Order: 3,
			Ancestors: []docsearch.SectionRef{
				{Type: "h1", ID: &anchorID, Text: "Introduction"},
			},
			Title:       "A",
			RawText:     "OCaml!",
			CleanedText: "ocaml",
		})
		reg.Put("p2", &docsearch.ContentRecord{URL: "http://x/b.html", Type: "li", CleanedText: "ocaml"})

		store := fs.NewArtifactStore(t.TempDir(), "artifacts")
		require.NoError(t, store.Save(idx, reg))
		require.NoError(t, store.Commit())

		loadedIdx, loadedReg, err := store.Load()
		require.NoError(t, err)

		assert.Equal(t, []string{"p1", "p2"}, loadedIdx.Get("ocaml"))
		assert.Equal(t, 2, loadedReg.Len())

		rec, ok := loadedReg.Record("p1")
		require.True(t, ok)
		assert.Equal(t, "A", rec.Title)
		require.Len(t, rec.Ancestors, 1)
		require.NotNil(t, rec.Ancestors[0].ID)
		assert.Equal(t, "intro", *rec.Ancestors[0].ID)

		rec, ok = loadedReg.Record("p2")
		require.True(t, ok)
		assert.Nil(t, rec.ID)
	})

	t.Run("uncommitted save is not observable", func(t *testing.T) {
		t.Parallel()

		store := fs.NewArtifactStore(t.TempDir(), "artifacts")
		require.NoError(t, store.Save(trie.New(), docsearch.NewRegistry()))

		_, _, err := store.Load()
		assert.Error(t, err)
	})

	t.Run("abort preserves the committed pair", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArtifactStore(dir, "artifacts")

		idx := trie.New()
		require.NoError(t, idx.Insert("keep", "p1"))
		require.NoError(t, store.Save(idx, docsearch.NewRegistry()))
		require.NoError(t, store.Commit())

		// A second build fails after saving; abort discards it.
		idx2 := trie.New()
		require.NoError(t, idx2.Insert("discard", "p9"))
		require.NoError(t, store.Save(idx2, docsearch.NewRegistry()))
		require.NoError(t, store.Abort())

		loadedIdx, _, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"p1"}, loadedIdx.Get("keep"))
		assert.Nil(t, loadedIdx.Get("discard"))

		_, err = os.Stat(filepath.Join(dir, "artifacts.tmp"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestPathsRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pages.json")
	paths := []string{"index.html", "lists.html", "error-handling.html"}

	require.NoError(t, fs.SavePaths(path, paths))

	loaded, err := fs.LoadPaths(path)
	require.NoError(t, err)
	assert.Equal(t, paths, loaded)
}
