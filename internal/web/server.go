// Package web serves the browser host: an embedded page plus a WebSocket
// endpoint that runs one session per connection.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tomz197/alienfield/internal/loop/server"
	"github.com/tomz197/alienfield/internal/sim"
)

//go:embed index.html
var indexPage []byte

type entry struct {
	runner *server.Runner
	cancel context.CancelFunc
}

// Server tracks the live sessions behind its handler.
type Server struct {
	newConfig func() sim.Config
	log       *zap.SugaredLogger
	upgrader  websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]entry
	wg       sync.WaitGroup
}

// New creates a web host. newConfig is called once per connection.
func New(newConfig func() sim.Config, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{
		newConfig: newConfig,
		log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Demo host: any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sessions: make(map[string]entry),
	}
}

// Handler routes /, /ws, /metrics and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

// handleWS runs a fresh session for the lifetime of the connection:
// /ws?codec=json|msgpack
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	codec, ok := CodecByName(r.URL.Query().Get("codec"))
	if !ok {
		http.Error(w, "unknown codec", http.StatusBadRequest)
		return
	}
	cfg := s.newConfig()
	id := uuid.NewString()
	runner, err := server.NewRunner(id, cfg, s.log)
	if err != nil {
		s.log.Errorw("session config rejected", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.add(id, entry{runner: runner, cancel: cancel})
	defer s.remove(id)
	defer cancel()

	go runner.Run(ctx)

	c := &conn{ws: ws, codec: codec, runner: runner, every: cfg.TickInterval, log: s.log.With("session", id)}
	welcome := Welcome{
		Type:    MsgWelcome,
		Session: id,
		Codec:   codec.Name(),
		Field:   sim.Field{W: cfg.FieldWidth, H: cfg.FieldHeight},
		TickMs:  cfg.TickInterval.Milliseconds(),
	}
	if err := c.write(welcome); err != nil {
		ws.Close()
		return
	}
	s.log.Infow("web session connected", "session", id, "codec", codec.Name(), "remote", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writePump(ctx)
	}()
	c.readPump()
	cancel()
	<-done
	<-runner.Done()
	s.log.Infow("web session closed", "session", id)
}

func (s *Server) add(id string, e entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = e
	s.wg.Add(1)
}

func (s *Server) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		s.wg.Done()
	}
}

func (s *Server) lookup(id string) (*server.Runner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	return e.runner, ok
}

// Sessions returns the IDs of the live sessions, sorted.
func (s *Server) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Shutdown stops every session and waits for their connections to close
// or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, e := range s.sessions {
		e.cancel()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handleMetrics serves GET /metrics?session=<id>. Without a session it
// lists the live sessions.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	var payload map[string]any
	if id == "" {
		ids := s.Sessions()
		payload = map[string]any{"sessions": len(ids), "ids": ids}
	} else {
		runner, ok := s.lookup(id)
		if !ok {
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}
		snap := runner.Snapshot()
		payload = map[string]any{
			"session": id,
			"tick":    snap.Tick,
			"status":  snap.Status,
			"metrics": runner.Metrics().Snapshot(),
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
