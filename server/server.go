// Package server implements the relay core: a TCP listener that
// authenticates each connection against a credential store, tracks the set
// of live sessions in a registry, and fans chat messages and presence
// updates out to every authenticated peer.
package server

import (
	"errors"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"chatrelay/credstore"
)

type Config struct {
	Addr             string
	HandshakeTimeout time.Duration // 0 disables
	WriteTimeout     time.Duration // 0 disables
	SendQueue        int
}

type Server struct {
	store    credstore.Store
	config   *Config
	registry *Registry
	logger   *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

func New(store credstore.Store, config *Config, logger *slog.Logger) *Server {
	if config.SendQueue <= 0 {
		config.SendQueue = 256
	}

	return &Server{
		store:    store,
		config:   config,
		registry: NewRegistry(),
		logger:   logger,
	}
}

// Start binds the listener and accepts connections until Shutdown. A failed
// accept never stops the loop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return nil
	}
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("server listening", "addr", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// Shutdown stops accepting and closes every live session. Handlers observe
// the closed connections and clean up through their normal paths.
func (s *Server) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener.Close()
	}

	for _, sess := range s.registry.Snapshot() {
		sess.close()
	}
}

// Stats returns server statistics as a formatted string.
func (s *Server) Stats() string {
	users := s.registry.Usernames()
	return "connections=" + strconv.Itoa(len(users)) + ",users=" + strings.Join(users, ";")
}
