package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
)

// Run executes the collect command.
func (c *CollectCmd) Run(deps *Dependencies) error {
	paths, err := deps.Source.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if len(paths) == 0 {
		return fmt.Errorf("no pages found under %q", c.URL)
	}

	out := filepath.Join(deps.Dir, pagesFileName)
	if err := fs.SavePaths(out, paths); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "collected %d pages to %s\n", len(paths), out)
	return nil
}
