package bedrock

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Zereker/bedrock/packet"
	"github.com/gorilla/websocket"
)

func TestLogger_Interface(t *testing.T) {
	// Verify that *slog.Logger implements our Logger interface
	var _ Logger = slog.Default()
}

func TestDefaultLogger(t *testing.T) {
	if defaultLogger() != slog.Default() {
		t.Error("defaultLogger did not return slog.Default()")
	}
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

// mockLogger records every call for inspection
type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *mockLogger) log(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *mockLogger) Debug(msg string, args ...any) { l.log("debug", msg, args) }
func (l *mockLogger) Info(msg string, args ...any)  { l.log("info", msg, args) }
func (l *mockLogger) Warn(msg string, args ...any)  { l.log("warn", msg, args) }
func (l *mockLogger) Error(msg string, args ...any) { l.log("error", msg, args) }

func (l *mockLogger) find(level, msg string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.level == level && e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

func TestConn_LogsDecodeError(t *testing.T) {
	serverWS, clientWS := createTestWSPair(t)

	logger := &mockLogger{}
	client, err := NewConn(clientWS, OnPacketOption(nopOnPacket), LoggerOption(logger))
	if err != nil {
		t.Fatalf("NewConn failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- client.Run(context.Background()) }()

	if err = serverWS.WriteMessage(websocket.BinaryMessage, []byte{0x7f}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for Run to return")
	}

	if _, ok := logger.find("info", "connection established"); !ok {
		t.Error("missing connection established entry")
	}

	entry, ok := logger.find("debug", "decode error")
	if !ok {
		t.Fatal("missing decode error entry")
	}
	if len(entry.args) < 2 || entry.args[0] != "addr" {
		t.Errorf("decode error args = %v, want addr first", entry.args)
	}

	if _, ok := logger.find("info", "connection closed with error"); !ok {
		t.Error("missing connection closed with error entry")
	}
}

func TestConn_LogsNonBinaryMessage(t *testing.T) {
	serverWS, clientWS := createTestWSPair(t)

	logger := &mockLogger{}
	received := make(chan packet.Packet, 1)
	client, err := NewConn(clientWS, LoggerOption(logger), OnPacketOption(func(pk packet.Packet) error {
		received <- pk
		return nil
	}))
	if err != nil {
		t.Fatalf("NewConn failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx)

	if err = serverWS.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err = serverWS.WriteMessage(websocket.BinaryMessage, encodeFrame(t, &packet.SetTime{})); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	waitPacket(t, received)

	if _, ok := logger.find("warn", "ignoring non-binary message"); !ok {
		t.Error("missing non-binary warning")
	}
}
