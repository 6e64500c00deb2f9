// Package watchserver serves the live output of a layering run over a
// websocket, reloading and re-running whenever a watched input file
// changes. There is no teacher file for this exact shape, since the
// example's own watch mode renders diagrams rather than streaming layering
// results, but the ingredients (fsnotify-driven reload loop, a broadcast
// websocket hub) are both direct dependencies of the teacher and standard
// idioms for each library.
package watchserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"cdr.dev/slog"
	"github.com/fsnotify/fsnotify"
	"nhooyr.io/websocket"

	"oss.terrastruct.com/layercore"
)

// Loader builds a fresh *layercore.Graph from whatever source the caller is
// watching, typically by reading and parsing a file from disk.
type Loader func() (*layercore.Graph, error)

// Update is broadcast to every connected client whenever the watched input
// changes and a new layering completes.
type Update struct {
	Ranks      []int `json:"ranks"`
	PivotCount int   `json:"pivot_count"`
}

// Server watches a file for changes, re-runs the layering pipeline on every
// change, and fans the result out to every connected websocket client.
type Server struct {
	logger slog.Logger
	load   Loader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New creates a Server that calls load whenever it needs to rebuild the
// graph being watched.
func New(logger slog.Logger, load Loader) *Server {
	return &Server{logger: logger, load: load, clients: map[*websocket.Conn]struct{}{}}
}

// Watch blocks, watching path for writes and rebroadcasting on every one,
// until ctx is canceled or the watcher's event channel closes.
func (s *Server) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watchserver: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watchserver: watch %s: %w", path, err)
	}

	s.reload(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.reload(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn(ctx, "watch error", slog.Error(err))
		}
	}
}

func (s *Server) reload(ctx context.Context) {
	g, err := s.load()
	if err != nil {
		s.logger.Warn(ctx, "reload failed", slog.Error(err))
		return
	}
	result, err := layercore.Run(ctx, g, s.logger)
	if err != nil {
		s.logger.Warn(ctx, "layering failed", slog.Error(err))
		return
	}
	s.Broadcast(ctx, Update{Ranks: result.Ranks, PivotCount: result.PivotCount})
}

// Broadcast sends u as JSON to every currently connected client. Exported
// so a caller that drives its own reload logic (rather than Watch) can
// still push results through the same hub.
func (s *Server) Broadcast(ctx context.Context, u Update) {
	data, err := json.Marshal(u)
	if err != nil {
		s.logger.Warn(ctx, "marshal update failed", slog.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		if err := c.Write(ctx, websocket.MessageText, data); err != nil {
			s.logger.Warn(ctx, "broadcast to client failed", slog.Error(err))
		}
	}
}

// ServeHTTP upgrades the request to a websocket and keeps the connection
// registered for broadcasts until the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}
