package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/build"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/fwojciec/docsearch/trie"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	paths, err := fs.LoadPaths(filepath.Join(deps.Dir, pagesFileName))
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Run 'docsearch collect' first to discover the site's pages")
		return fmt.Errorf("failed to load page list: %w", err)
	}

	idx := trie.New()
	reg := docsearch.NewRegistry()

	builder := &build.Builder{
		Fetcher:     deps.Fetcher,
		Extractor:   goquery.NewExtractor(),
		Pages:       deps.Pages,
		Index:       idx,
		Registry:    reg,
		Logger:      deps.Logger,
		Concurrency: c.Concurrency,
	}

	result, err := builder.BuildSite(deps.Ctx, c.URL, paths)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	if result.Pages == 0 {
		// An all-pages-skipped build is a site outage, not an empty site.
		// Committing would replace a working index with nothing.
		return fmt.Errorf("no pages indexed (%d skipped); keeping existing artifacts", result.Skipped)
	}

	// The previously committed artifacts stay live until Commit succeeds.
	store := fs.NewArtifactStore(deps.Dir, artifactsName)
	if err := store.Save(idx, reg); err != nil {
		store.Abort()
		return fmt.Errorf("failed to write artifacts: %w", err)
	}
	if err := store.Commit(); err != nil {
		store.Abort()
		return fmt.Errorf("failed to commit artifacts: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "indexed %d pages: %d units, %d keys, %d skipped\n",
		result.Pages, result.Units, idx.Len(), result.Skipped)
	return nil
}
