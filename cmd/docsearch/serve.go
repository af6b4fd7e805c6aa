package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/search"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/ws"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	idx, reg, err := fs.NewArtifactStore(deps.Dir, artifactsName).Load()
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Run 'docsearch build' first to build the index")
		return fmt.Errorf("failed to load index artifacts: %w", err)
	}

	searcher := dsslog.NewLoggingSearcher(search.NewEngine(idx, reg), deps.Logger)

	mux := http.NewServeMux()
	mux.Handle("/search/ws", ws.NewServer(searcher,
		ws.WithTopK(c.TopK),
		ws.WithLogger(deps.Logger),
	))

	srv := &http.Server{Addr: c.Addr, Handler: mux}

	go func() {
		<-deps.Ctx.Done()
		srv.Shutdown(context.Background())
	}()

	fmt.Fprintf(deps.Stdout, "serving %d keys at ws://%s/search/ws\n", idx.Len(), c.Addr)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
