// Package bedrock connects a Bedrock protocol client to a server over
// websocket. Each binary websocket message is one transport frame holding
// one or more packets encoded by the protocol package.
package bedrock

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Zereker/bedrock/packet"
	"github.com/Zereker/bedrock/protocol"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Errors returned by connection operations.
var (
	// ErrInvalidOnPacket is returned when no packet handler is provided.
	ErrInvalidOnPacket = errors.New("invalid on packet callback")
	// ErrMessageTooLarge is returned when a message exceeds the maximum allowed size.
	ErrMessageTooLarge = errors.New("message too large")
)

// ErrConnectionClosed is returned when operating on a closed connection.
var ErrConnectionClosed = errors.New("connection closed")

// ErrBufferFull is returned when the send buffer is full and cannot accept more frames.
// This error indicates backpressure - the server is not consuming frames fast enough.
// Recommended handling strategies:
//   - Drop the packet (for data the next update supersedes, like movement)
//   - Use WriteBlocking or WriteTimeout to wait for buffer space
//   - Queue packets and Flush them later as one batch
var ErrBufferFull = errors.New("send buffer full")

// Default configuration values.
const (
	// defaultBufferSize is the default size of the frame channel buffer.
	defaultBufferSize = 1
	// defaultMaxPackageLength is the default maximum size of a single frame (1MB).
	defaultMaxPackageLength = 1024 * 1024
	// defaultHeartbeat is the default heartbeat interval.
	defaultHeartbeat = time.Second * 30
	// closeGracePeriod bounds the wait for sending a close frame.
	closeGracePeriod = time.Second
)

// Conn is a packet connection over a websocket.
// It encodes outgoing packets, batches them on request, and decodes every
// packet of every incoming frame in order.
type Conn struct {
	ws     *websocket.Conn
	logger Logger

	opts options

	mu    sync.Mutex // guards batch
	batch protocol.Batch

	sendMsg chan []byte
	closed  atomic.Bool

	cancelMu sync.Mutex
	cancel   context.CancelFunc
}

// Dial opens a websocket connection to url, for example ws://host:19132,
// and wraps it in a Conn.
func Dial(ctx context.Context, url string, opt ...Option) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	conn, err := NewConn(ws, opt...)
	if err != nil {
		ws.Close()
		return nil, err
	}

	return conn, nil
}

// NewConn creates a new connection wrapper around the given websocket.
// It applies the provided options and validates them before returning.
// Returns an error if the required onPacket option is missing.
func NewConn(ws *websocket.Conn, opt ...Option) (*Conn, error) {
	var opts options
	for _, o := range opt {
		o(&opts)
	}

	err := checkOptions(&opts)
	if err != nil {
		return nil, err
	}

	return newConnWithOptions(ws, opts), nil
}

// checkOptions validates and sets default values for connection options.
func checkOptions(opts *options) error {
	if opts.bufferSize <= 0 {
		opts.bufferSize = defaultBufferSize
	}

	if opts.maxReadLength <= 0 {
		opts.maxReadLength = defaultMaxPackageLength
	}

	if opts.onPacket == nil {
		return ErrInvalidOnPacket
	}

	if opts.heartbeat <= 0 {
		opts.heartbeat = defaultHeartbeat
	}

	if opts.codec == nil {
		opts.codec = packet.NewRegistry()
	}

	if opts.pool == nil {
		opts.pool = protocol.DefaultPool
	}

	if opts.onError == nil {
		opts.onError = func(err error) ErrorAction { return Disconnect }
	}

	if opts.logger == nil {
		opts.logger = defaultLogger()
	}

	return nil
}

func newConnWithOptions(ws *websocket.Conn, opts options) *Conn {
	ws.SetReadLimit(int64(opts.maxReadLength))

	return &Conn{
		ws:      ws,
		logger:  opts.logger,
		opts:    opts,
		sendMsg: make(chan []byte, opts.bufferSize),
	}
}

// Run starts the connection's read and write loops.
// It blocks until an error occurs or the context is canceled.
// The connection is automatically closed when Run returns.
func (c *Conn) Run(ctx context.Context) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	c.logger.Info("connection established", "addr", c.Addr())
	c.logger.Debug("connection options", "addr", c.Addr(),
		"buffer_size", c.opts.bufferSize,
		"max_read_length", c.opts.maxReadLength,
		"heartbeat", c.opts.heartbeat)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancelMu.Lock()
	c.cancel = cancel
	c.cancelMu.Unlock()

	group, child := errgroup.WithContext(ctx)

	group.Go(func() error {
		return c.readLoop(child)
	})

	group.Go(func() error {
		return c.writeLoop(child)
	})

	// ReadMessage does not observe the context; closing the socket unblocks it.
	group.Go(func() error {
		<-child.Done()
		c.closeConn()
		return nil
	})

	err := group.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Info("connection closed with error", "addr", c.Addr(), "error", err)
	} else {
		c.logger.Info("connection closed", "addr", c.Addr())
	}

	return err
}

// Close sends a normal-closure frame and closes the connection.
// Safe to call multiple times.
func (c *Conn) Close() error {
	if c.closed.Swap(true) {
		return nil // already closed
	}

	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client disconnect"),
		time.Now().Add(closeGracePeriod))

	c.cancelMu.Lock()
	cancel := c.cancel
	c.cancelMu.Unlock()
	if cancel != nil {
		cancel()
	}
	return c.ws.Close()
}

// IsClosed returns true if the connection has been closed.
func (c *Conn) IsClosed() bool {
	return c.closed.Load()
}

// Addr returns the remote address of the connection.
func (c *Conn) Addr() net.Addr {
	return c.ws.RemoteAddr()
}

// encode renders pk into a frame-sized copy using a pooled writer.
func (c *Conn) encode(pk packet.Packet) ([]byte, error) {
	w := c.opts.pool.Acquire()
	defer c.opts.pool.Release(w)

	if err := c.opts.codec.Encode(w, pk); err != nil {
		return nil, err
	}

	return append([]byte(nil), w.Bytes()...), nil
}

// Write sends pk as a frame of its own without blocking.
//
// Returns:
//   - nil: the frame was queued (not yet sent)
//   - ErrBufferFull: send buffer is full, the packet was NOT queued
//   - ErrConnectionClosed: connection is closed
//   - encoding error: if the codec fails
func (c *Conn) Write(pk packet.Packet) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	frame, err := c.encode(pk)
	if err != nil {
		return err
	}

	select {
	case c.sendMsg <- frame:
		return nil
	default:
		return ErrBufferFull
	}
}

// WriteBlocking sends pk as a frame of its own, blocking until the frame
// is queued or the context is canceled.
func (c *Conn) WriteBlocking(ctx context.Context, pk packet.Packet) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	frame, err := c.encode(pk)
	if err != nil {
		return err
	}

	select {
	case c.sendMsg <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WriteTimeout is WriteBlocking with a timeout instead of a context.
// ErrBufferFull is returned when the timeout expires.
func (c *Conn) WriteTimeout(pk packet.Packet, timeout time.Duration) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	frame, err := c.encode(pk)
	if err != nil {
		return err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case c.sendMsg <- frame:
		return nil
	case <-timer.C:
		return ErrBufferFull
	}
}

// Queue adds pk to the connection's pending batch. Nothing is sent until
// Flush is called.
func (c *Conn) Queue(pk packet.Packet) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	w := c.opts.pool.Acquire()
	defer c.opts.pool.Release(w)

	if err := c.opts.codec.Encode(w, pk); err != nil {
		return err
	}

	c.mu.Lock()
	c.batch.PushWriter(w)
	c.mu.Unlock()
	return nil
}

// Flush sends every queued packet as one frame without blocking.
// Nothing is sent when no packets are queued. If the send buffer is full,
// ErrBufferFull is returned and the packets stay queued.
func (c *Conn) Flush() error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	frame := c.batch.Bytes()
	if frame == nil {
		return nil
	}

	select {
	case c.sendMsg <- frame:
		c.batch.Flush()
		return nil
	default:
		return ErrBufferFull
	}
}

// FlushBlocking sends every queued packet as one frame, blocking until the
// frame is queued or the context is canceled. Queue blocks meanwhile. On
// cancellation the packets stay queued.
func (c *Conn) FlushBlocking(ctx context.Context) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	frame := c.batch.Bytes()
	if frame == nil {
		return nil
	}

	select {
	case c.sendMsg <- frame:
		c.batch.Flush()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of queued packets.
func (c *Conn) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batch.Len()
}

// readLoop reads frames until the context is canceled or the socket fails.
// A websocket read error is permanent, so it always ends the loop; decode
// errors are passed to onError.
func (c *Conn) readLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			_ = c.ws.SetReadDeadline(time.Now().Add(c.opts.heartbeat * 2))

			typ, data, err := c.ws.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if errors.Is(err, websocket.ErrReadLimit) {
					err = ErrMessageTooLarge
				}
				c.logger.Debug("read error", "addr", c.Addr(), "error", err)
				return err
			}

			if typ != websocket.BinaryMessage {
				c.logger.Warn("ignoring non-binary message", "addr", c.Addr(), "type", typ)
				continue
			}

			if err = c.dispatch(data); err != nil {
				return err
			}
		}
	}
}

// dispatch decodes every packet in one frame and hands each to onPacket.
// After a decode error the remainder of the frame cannot be located, so it
// is dropped.
func (c *Conn) dispatch(frame []byte) error {
	r := protocol.NewReader(frame)
	for r.Len() > 0 {
		pk, err := c.opts.codec.Decode(r)
		if err != nil {
			c.logger.Debug("decode error", "addr", c.Addr(),
				"offset", r.Offset(), "bytes", len(frame), "error", err)
			if c.opts.onError(err) == Disconnect {
				return err
			}
			return nil
		}

		if err = c.opts.onPacket(pk); err != nil {
			return err
		}
	}
	return nil
}

// writeLoop sends frames from the send channel until the context is canceled
// or an unrecoverable error occurs.
func (c *Conn) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data := <-c.sendMsg:
			if err := c.write(data); err != nil {
				return err
			}
		}
	}
}

// write sends one frame with a deadline.
// If onError returns Disconnect the error is propagated, otherwise the frame
// is dropped and writing continues.
func (c *Conn) write(data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.heartbeat * 2))

	err := c.ws.WriteMessage(websocket.BinaryMessage, data)
	if err != nil {
		c.logger.Debug("write error", "addr", c.Addr(), "error", err)
		if c.opts.onError(err) == Disconnect {
			return err
		}
	}

	return nil
}

// closeConn marks the connection as closed and closes the underlying socket.
func (c *Conn) closeConn() {
	c.closed.Store(true)
	_ = c.ws.Close()
}
