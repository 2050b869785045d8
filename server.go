package bedrock

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Handler is the interface for handling upgraded websocket connections.
// Implementations own the connection, typically wrapping it with NewConn.
type Handler interface {
	// Handle is called for each new connection on its own goroutine.
	Handle(ws *websocket.Conn)
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func(ws *websocket.Conn)

// Handle calls f(ws).
func (f HandlerFunc) Handle(ws *websocket.Conn) {
	f(ws)
}

// Server accepts websocket connections speaking the Bedrock protocol.
// It is the peer side of Dial, used for local testing and tooling.
type Server struct {
	listener        *net.TCPListener
	upgrader        websocket.Upgrader
	logger          Logger
	shutdownTimeout time.Duration

	mu          sync.Mutex
	shutdown    bool
	httpServer  *http.Server
	shutdownNow chan struct{} // signals immediate shutdown, bypassing timeout
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// ServerLoggerOption sets the logger for the server.
func ServerLoggerOption(logger Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// ServerShutdownTimeoutOption sets the graceful shutdown timeout.
// When the context is canceled, the server will wait up to this duration
// before closing the listener. Default is 0 (immediate shutdown).
//
// Upgraded connections are not tracked by the server; cancel them with the
// context passed to Conn.Run().
func ServerShutdownTimeoutOption(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}

// ServerCheckOriginOption sets the origin check applied to upgrade requests.
// By default requests carrying a foreign Origin header are rejected.
func ServerCheckOriginOption(check func(r *http.Request) bool) ServerOption {
	return func(s *Server) {
		s.upgrader.CheckOrigin = check
	}
}

// New creates a new server bound to the specified address.
// Returns an error if the address cannot be bound.
func New(addr *net.TCPAddr, opts ...ServerOption) (*Server, error) {
	listener, err := net.ListenTCP(addr.Network(), addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		listener:    listener,
		logger:      defaultLogger(),
		shutdownNow: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Serve upgrades incoming HTTP requests and dispatches the websockets to
// the handler. It blocks until the context is canceled, Close is called, or
// an unrecoverable error occurs.
// If ServerShutdownTimeoutOption is set, the server waits up to the specified
// duration after cancellation before stopping. Call Close() to bypass the
// timeout and shut down immediately.
func (s *Server) Serve(ctx context.Context, handler Handler) error {
	httpServer := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ws, err := s.upgrader.Upgrade(w, r, nil)
			if err != nil {
				s.logger.Debug("upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
				return
			}

			s.logger.Debug("accepted connection", "remote_addr", ws.RemoteAddr())
			handler.Handle(ws)
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return ctx.Err()
	}
	s.httpServer = httpServer
	s.mu.Unlock()

	s.logger.Info("server started", "addr", s.listener.Addr())

	// Start a goroutine to handle context cancellation
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
			return
		}

		// Wait for shutdown timeout if configured, but allow early exit via Close()
		if s.shutdownTimeout > 0 {
			s.logger.Info("graceful shutdown initiated", "timeout", s.shutdownTimeout)
			select {
			case <-time.After(s.shutdownTimeout):
				// Timeout expired, proceed with shutdown
			case <-s.shutdownNow:
				// Close() was called, skip remaining timeout
				s.logger.Debug("shutdown timeout bypassed via Close()")
			}
		}

		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		_ = httpServer.Close()
	}()

	err := httpServer.Serve(s.listener)

	s.mu.Lock()
	isShutdown := s.shutdown
	s.mu.Unlock()

	if isShutdown || errors.Is(err, http.ErrServerClosed) {
		s.logger.Info("server stopped", "addr", s.listener.Addr())
		return ctx.Err()
	}

	s.logger.Error("serve error", "error", err)
	return err
}

// Close stops the server immediately.
// If a shutdown timeout is configured, Close() bypasses the remaining timeout.
func (s *Server) Close() error {
	s.mu.Lock()
	s.shutdown = true
	httpServer := s.httpServer
	s.mu.Unlock()

	// Signal to bypass any pending shutdown timeout
	select {
	case s.shutdownNow <- struct{}{}:
	default:
		// Channel already has a signal or no one is listening
	}

	if httpServer != nil {
		return httpServer.Close()
	}
	return s.listener.Close()
}

// Addr returns the listener's network address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// URL returns the ws:// URL clients can Dial.
func (s *Server) URL() string {
	return "ws://" + s.listener.Addr().String()
}
