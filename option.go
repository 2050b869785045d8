package bedrock

import (
	"time"

	"github.com/Zereker/bedrock/packet"
	"github.com/Zereker/bedrock/protocol"
)

// ErrorAction defines the action to take when an error occurs.
type ErrorAction int

const (
	// Disconnect closes the connection when an error occurs.
	Disconnect ErrorAction = iota
	// Continue suppresses the error and continues processing.
	Continue
)

// options holds the configuration for a connection.
type options struct {
	codec  Codec
	logger Logger
	pool   *protocol.Pool

	onPacket func(pk packet.Packet) error
	// onError is called for decode and write errors.
	// Returns Disconnect to close the connection, Continue to suppress the error.
	onError func(error) ErrorAction

	bufferSize    int           // size of the send channel
	maxReadLength int           // maximum size of one websocket message
	heartbeat     time.Duration // read/write deadlines are twice this
}

// Option is a function that configures connection options.
type Option func(*options)

// CodecOption sets the packet codec. Defaults to packet.NewRegistry().
func CodecOption(codec Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// BufferSizeOption sets how many frames may wait in the send channel.
func BufferSizeOption(size int) Option {
	return func(o *options) {
		o.bufferSize = size
	}
}

// HeartbeatOption sets the heartbeat interval.
// The read/write deadline is heartbeat * 2.
func HeartbeatOption(heartbeat time.Duration) Option {
	return func(o *options) {
		o.heartbeat = heartbeat
	}
}

// MessageMaxSize sets the largest websocket message that will be read.
// Larger messages fail with ErrMessageTooLarge and close the connection.
func MessageMaxSize(size int) Option {
	return func(o *options) {
		o.maxReadLength = size
	}
}

// OnErrorOption sets the error callback.
// Return Disconnect to close the connection. Return Continue to drop the
// rest of the offending frame and keep reading.
func OnErrorOption(cb func(error) ErrorAction) Option {
	return func(o *options) {
		o.onError = cb
	}
}

// OnPacketOption sets the callback that receives every decoded packet.
// It is required. Returning an error closes the connection.
func OnPacketOption(cb func(packet.Packet) error) Option {
	return func(o *options) {
		o.onPacket = cb
	}
}

// LoggerOption sets the logger. Defaults to slog.Default().
func LoggerOption(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// PoolOption sets the pool that packets are encoded into.
// Defaults to protocol.DefaultPool.
func PoolOption(pool *protocol.Pool) Option {
	return func(o *options) {
		o.pool = pool
	}
}
