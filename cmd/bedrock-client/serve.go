package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/Zereker/bedrock"
	"github.com/Zereker/bedrock/packet"
	"github.com/Zereker/bedrock/protocol"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// defaultReplyTimeout bounds how long a read loop waits to queue replies.
const defaultReplyTimeout = 5 * time.Second

// echoServer answers logins and chunk requests and echoes chat back to
// the sender.
type echoServer struct {
	connID       atomic.Int64
	logger       *slog.Logger
	ctx          context.Context
	replyTimeout time.Duration

	sync.RWMutex
	connections map[int64]*bedrock.Conn
}

func (s *echoServer) Handle(ws *websocket.Conn) {
	connID := s.connID.Add(1)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	var conn *bedrock.Conn
	onPacket := func(pk packet.Packet) error {
		s.logger.Debug("received packet", "connID", connID, "packet", pk.ID())

		switch pk := pk.(type) {
		case *packet.Login:
			return conn.Queue(&packet.PlayStatus{Status: packet.PlayStatusLoginSuccess})
		case *packet.RequestChunkRadius:
			return conn.Queue(&packet.ChunkRadiusUpdated{Radius: pk.Radius})
		case *packet.Text:
			return conn.Queue(pk)
		}
		return nil
	}

	conn, err := bedrock.NewConn(ws,
		bedrock.OnPacketOption(func(pk packet.Packet) error {
			if err := onPacket(pk); err != nil {
				return err
			}
			// Replies to one frame go back as one frame.
			return s.reply(ctx, conn)
		}),
		bedrock.OnErrorOption(func(err error) bedrock.ErrorAction {
			s.logger.Error("connection error", "connID", connID, "error", err)
			return bedrock.Continue
		}),
		bedrock.LoggerOption(s.logger),
		bedrock.BufferSizeOption(16),
	)
	if err != nil {
		s.logger.Error("failed to wrap connection", "error", err)
		ws.Close()
		return
	}

	s.addConn(connID, conn)
	defer s.deleteConn(connID)

	_ = conn.Run(ctx)
}

// reply flushes the queued replies of conn. A peer that stops reading fails
// the flush after replyTimeout, which ends the connection's read loop.
func (s *echoServer) reply(ctx context.Context, conn *bedrock.Conn) error {
	timeout := s.replyTimeout
	if timeout <= 0 {
		timeout = defaultReplyTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return conn.FlushBlocking(ctx)
}

func (s *echoServer) addConn(connID int64, conn *bedrock.Conn) {
	s.Lock()
	defer s.Unlock()

	s.logger.Info("add new conn", "connID", connID, "addr", conn.Addr())
	s.connections[connID] = conn
}

func (s *echoServer) deleteConn(connID int64) {
	s.Lock()
	defer s.Unlock()

	delete(s.connections, connID)
}

func serveCmd() *cobra.Command {
	var (
		listen      string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local echo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			addr, err := net.ResolveTCPAddr("tcp", listen)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				protocol.RegisterMetrics()
				metrics := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.Handler(),
					ReadHeaderTimeout: 10 * time.Second,
				}
				go func() {
					if err := metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server error", "error", err)
					}
				}()
				defer metrics.Close()
			}

			server, err := bedrock.New(addr,
				bedrock.ServerLoggerOption(logger),
				bedrock.ServerShutdownTimeoutOption(5*time.Second),
			)
			if err != nil {
				return err
			}

			handler := &echoServer{
				logger:      logger,
				ctx:         ctx,
				connections: make(map[int64]*bedrock.Conn),
			}

			logger.Info("server start", "url", server.URL())
			err = server.Serve(ctx, handler)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:19132", "address to listen on")
	cmd.Flags().StringVar(&metricsAddr, "metrics", "", "address to serve Prometheus metrics on (disabled when empty)")

	return cmd
}
