package server

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Server accepts WebSocket clients and routes their messages to tables.
type Server struct {
	config      *Config
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	tables      map[string]*Table
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server
}

// New creates a server with one Table per configured table block. Each
// table gets its own RNG stream split off the configured seed.
func New(config *Config, logger *log.Logger, clock quartz.Clock, rng func(i int) *rand.Rand) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		tables:      make(map[string]*Table),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}

	for i, tc := range config.Tables {
		s.tables[tc.Name] = NewTable(tc, config.Server, logger, clock, rng(i))
	}
	return s
}

// Run serves WebSocket clients until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{Addr: s.config.Server.Addr(), Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", s.config.Server.Addr())
		err := s.httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.Stop()
	})
	return g.Wait()
}

// Stop shuts the server down and closes every client connection.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Table returns the table with the given name, or nil.
func (s *Server) Table(name string) *Table {
	return s.tables[name]
}

// ListTables returns the lobby listing for all tables.
func (s *Server) ListTables() []TableInfo {
	infos := make([]TableInfo, 0, len(s.tables))
	for _, tc := range s.config.Tables {
		if t := s.tables[tc.Name]; t != nil {
			infos = append(infos, t.Info())
		}
	}
	return infos
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
			}
			total := len(s.connections)
			s.mu.Unlock()

			if ok {
				// Detach the player from their table so their turns
				// resolve with the default action.
				if tableName := conn.Table(); tableName != "" {
					if t := s.Table(tableName); t != nil {
						t.Detach(conn)
					}
				}
				_ = conn.Close()
			}
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
