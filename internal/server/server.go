// Package server hosts Blackjack Survival sessions over WebSocket, one
// session per connection.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack-survival/internal/game"
	"github.com/lox/blackjack-survival/internal/randutil"
	"github.com/lox/blackjack-survival/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultIdleTimeout closes connections that send nothing for this long.
const DefaultIdleTimeout = 10 * time.Minute

// Server represents the WebSocket server
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	logger      *log.Logger
	clock       quartz.Clock
	rules       game.Rules
	seed        int64
	idleTimeout time.Duration

	mu          sync.RWMutex
	connections map[*Connection]statistics.Stats
	finished    statistics.Stats // totals from closed connections
	sessions    atomic.Int64
}

// Option configures a Server.
type Option func(*Server)

// WithRules sets the rules every session plays by.
func WithRules(rules game.Rules) Option {
	return func(s *Server) { s.rules = rules }
}

// WithSeed makes session shuffles reproducible. Each connection derives its
// own stream from the seed in connection order.
func WithSeed(seed int64) Option {
	return func(s *Server) { s.seed = seed }
}

// WithClock sets the clock driving idle timeouts and message timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithIdleTimeout sets how long a connection may stay silent.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// NewServer creates a new WebSocket server
func NewServer(addr string, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The game page may be served from anywhere
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("server"),
		clock:       quartz.NewReal(),
		rules:       game.DefaultRules(),
		seed:        time.Now().UnixNano(),
		idleTimeout: DefaultIdleTimeout,
		connections: make(map[*Connection]statistics.Stats),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes served by the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down and closes every open connection.
func (s *Server) Serve(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down WebSocket server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		s.Stop()
		return err
	})
	return g.Wait()
}

// Stop closes all connections
func (s *Server) Stop() {
	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.Close() // Ignore close errors during shutdown
	}
}

// ConnectionCount returns the number of open connections.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// Stats returns statistics summed over every session the server has hosted.
func (s *Server) Stats() statistics.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := s.finished
	for _, st := range s.connections {
		total.Merge(st)
	}
	return total
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = statistics.Stats{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", conn.ID(), "total", total)
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	st, ok := s.connections[conn]
	if ok {
		delete(s.connections, conn)
		s.finished.Merge(st)
	}
	total := len(s.connections)
	s.mu.Unlock()
	if ok {
		s.logger.Info("Client disconnected", "session", conn.ID(), "total", total)
	}
}

func (s *Server) updateStats(conn *Connection, st statistics.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.connections[conn]; ok {
		s.connections[conn] = st
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	n := int(s.sessions.Add(1))
	rng := randutil.New(randutil.Derive(s.seed, n))
	conn := newConnection(uuid.NewString(), ws, s)
	conn.session = game.NewSession(rng,
		game.WithRules(s.rules),
		game.WithLogger(conn.logger),
		game.WithStatsListener(game.StatsListenerFunc(func(st statistics.Stats) {
			s.updateStats(conn, st)
		})),
	)

	s.register(conn)
	conn.Start()

	go func() {
		<-conn.ctx.Done()
		s.unregister(conn)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

type statsResponse struct {
	Connections int              `json:"connections"`
	Sessions    int64            `json:"sessions"`
	Stats       statistics.Stats `json:"stats"`
}

// handleStats reports aggregate statistics as JSON
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{
		Connections: s.ConnectionCount(),
		Sessions:    s.sessions.Load(),
		Stats:       s.Stats(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Failed to write stats", "error", err)
	}
}
