// Package server runs the TCP listener and per-connection goroutine loop
// that feeds decoded LDAP requests to a protocol controller.
package server

import (
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/patchwork-oss/ldapd/internal/berwire"
	"github.com/patchwork-oss/ldapd/internal/directory"
	"github.com/patchwork-oss/ldapd/internal/ldapproto"
	"github.com/patchwork-oss/ldapd/pkg/config"
)

// Server accepts TCP connections and runs one goroutine per connection,
// each processing messages sequentially with blocking I/O. Concurrency
// across connections comes from the goroutine-per-connection model, not
// from any connection-level parallelism.
type Server[T directory.ID] struct {
	cfg        *config.Config
	controller *ldapproto.Controller[T]

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// NewServer wires a server to its configuration and protocol controller.
func NewServer[T directory.ID](cfg *config.Config, controller *ldapproto.Controller[T]) *Server[T] {
	return &Server[T]{cfg: cfg, controller: controller}
}

// Start opens the listening socket and begins accepting connections in
// the background. It returns once the socket is bound.
func (s *Server[T]) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.BindAddress, s.cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.wg.Add(1)
	go s.acceptLoop(ln)

	return nil
}

// Addr returns the listener's bound address. Only valid after Start
// returns; useful for tests that bind to port 0 and need the actual
// port chosen by the kernel.
func (s *Server[T]) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener.Addr()
}

// Stop closes the listening socket. In-flight connections are left to
// finish or hit a read error on their own; Stop does not force-close
// them.
func (s *Server[T]) Stop() {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln != nil {
		ln.Close()
	}
	s.wg.Wait()
}

func (s *Server[T]) acceptLoop(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			slog.Info("listener closed, accept loop exiting", "error", err)
			return
		}
		go s.handleConnection(conn)
	}
}

func (s *Server[T]) handleConnection(conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	slog.Debug("connection accepted", "remote", remote)

	for {
		req, err := berwire.ReadMessage(conn)
		if err != nil {
			slog.Debug("connection closing on read error", "remote", remote, "error", err)
			return
		}

		resp, shouldClose := s.controller.Handle(req)
		if shouldClose {
			slog.Debug("connection closing on unbind", "remote", remote)
			return
		}

		if resp == nil {
			continue
		}
		if err := berwire.WriteMessage(conn, resp); err != nil {
			slog.Debug("connection closing on write error", "remote", remote, "error", err)
			return
		}
	}
}
