package ws_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mock"
	"github.com/fwojciec/docsearch/ws"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, server *ws.Server) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestServer(t *testing.T) {
	t.Parallel()

	t.Run("answers each message with a result array", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			ResolveFn: func(_ context.Context, query string, offset, topK int) ([]docsearch.Result, error) {
				assert.Equal(t, "ocaml", query)
				assert.Equal(t, 2, offset)
				assert.Equal(t, ws.DefaultTopK, topK)
				return []docsearch.Result{{ParagraphID: "p1", Title: "T", URL: "u", Snippet: "s", Ancestors: []docsearch.SectionRef{}}}, nil
			},
		}
		conn := dial(t, ws.NewServer(searcher))

		require.NoError(t, conn.WriteJSON(ws.Request{Query: "ocaml", Offset: 2}))

		var results []docsearch.Result
		require.NoError(t, conn.ReadJSON(&results))
		require.Len(t, results, 1)
		assert.Equal(t, "p1", results[0].ParagraphID)
	})

	t.Run("malformed payload yields an empty array and keeps the connection open", func(t *testing.T) {
		t.Parallel()

		queries := make(chan string, 2)
		searcher := &mock.Searcher{
			ResolveFn: func(_ context.Context, query string, offset, topK int) ([]docsearch.Result, error) {
				queries <- query
				return []docsearch.Result{}, nil
			},
		}
		conn := dial(t, ws.NewServer(searcher))

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

		var results []docsearch.Result
		require.NoError(t, conn.ReadJSON(&results))
		assert.Empty(t, results)

		// The connection is still usable after the malformed frame.
		require.NoError(t, conn.WriteJSON(ws.Request{Query: "still alive"}))
		require.NoError(t, conn.ReadJSON(&results))

		assert.Equal(t, "", <-queries)
		assert.Equal(t, "still alive", <-queries)
	})

	t.Run("searcher errors never reach the client", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			ResolveFn: func(context.Context, string, int, int) ([]docsearch.Result, error) {
				return nil, docsearch.Errorf(docsearch.EINTERNAL, "registry corrupted: secret path /var/lib/x")
			},
		}
		conn := dial(t, ws.NewServer(searcher))

		require.NoError(t, conn.WriteJSON(ws.Request{Query: "ocaml"}))

		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(raw))
	})

	t.Run("nil result slices are sent as an empty array", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			ResolveFn: func(context.Context, string, int, int) ([]docsearch.Result, error) {
				return nil, nil
			},
		}
		conn := dial(t, ws.NewServer(searcher))

		require.NoError(t, conn.WriteJSON(ws.Request{Query: "ocaml"}))

		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(raw))
	})

	t.Run("configured page size is passed through", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			ResolveFn: func(_ context.Context, _ string, _ int, topK int) ([]docsearch.Result, error) {
				assert.Equal(t, 3, topK)
				return []docsearch.Result{}, nil
			},
		}
		conn := dial(t, ws.NewServer(searcher, ws.WithTopK(3)))

		require.NoError(t, conn.WriteJSON(ws.Request{Query: "ocaml"}))

		var results []docsearch.Result
		require.NoError(t, conn.ReadJSON(&results))
	})
}
