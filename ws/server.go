// Package ws provides the websocket session layer: one long-lived duplex
// connection per client, one search request processed to completion per
// inbound message.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fwojciec/docsearch"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultTopK is the page size used for every request. Pagination is driven
// by the client-supplied offset; the page size is server configuration.
const DefaultTopK = 10

// Request is the wire format of one inbound search message.
type Request struct {
	Query  string `json:"query"`
	Offset int    `json:"offset"`
}

// Server serves search queries over websocket connections. The wrapped
// Searcher is shared by all connections and must be read-only; the server
// never mutates it and connections never block each other.
type Server struct {
	searcher docsearch.Searcher
	logger   *slog.Logger
	topK     int
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithTopK sets the number of results returned per request.
func WithTopK(k int) Option {
	return func(s *Server) {
		s.topK = k
	}
}

// WithLogger sets the logger used for connection lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new Server around the given searcher.
func NewServer(searcher docsearch.Searcher, opts ...Option) *Server {
	s := &Server{
		searcher: searcher,
		logger:   slog.Default(),
		topK:     DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		// The search endpoint is public and read-only; cross-origin
		// pages are allowed to connect.
		CheckOrigin: func(*http.Request) bool { return true },
	}
	return s
}

// ServeHTTP upgrades the request to a websocket connection and runs its
// message loop until the peer disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	connID := uuid.New().String()
	s.logger.Info("client connected", "conn", connID, "remote", conn.RemoteAddr().String())

	s.serveConn(r.Context(), connID, conn)
}

// serveConn processes one inbound message to completion before reading the
// next. The only suspension point is the read of the next message; a normal
// or abnormal peer disconnect ends the loop and releases the connection.
func (s *Server) serveConn(ctx context.Context, connID string, conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("client disconnected", "conn", connID, "error", err)
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			// Malformed payloads are recovered locally: the request
			// is treated as an empty query and the connection stays
			// open.
			s.logger.Warn("malformed request", "conn", connID, "error", err)
			req = Request{}
		}

		results, err := s.searcher.Resolve(ctx, req.Query, req.Offset, s.topK)
		if err != nil {
			// Internal error text never crosses the boundary; the
			// client sees an empty result set.
			s.logger.Error("resolve failed", "conn", connID, "error", err)
			results = []docsearch.Result{}
		}
		if results == nil {
			results = []docsearch.Result{}
		}

		if err := conn.WriteJSON(results); err != nil {
			s.logger.Info("client disconnected", "conn", connID, "error", err)
			return
		}
	}
}
