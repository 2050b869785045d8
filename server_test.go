package bedrock

import (
	"context"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Zereker/bedrock/packet"
	"github.com/gorilla/websocket"
)

// mockHandler implements Handler interface for testing
type mockHandler struct {
	mu       sync.Mutex
	conns    []*websocket.Conn
	handleCh chan *websocket.Conn
}

func newMockHandler() *mockHandler {
	return &mockHandler{
		conns:    make([]*websocket.Conn, 0),
		handleCh: make(chan *websocket.Conn, 10),
	}
}

func (h *mockHandler) Handle(ws *websocket.Conn) {
	h.mu.Lock()
	h.conns = append(h.conns, ws)
	h.mu.Unlock()

	select {
	case h.handleCh <- ws:
	default:
	}
}

func (h *mockHandler) getConns() []*websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conns
}

func newTestServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()

	server, err := New(&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0}, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return server
}

func TestNew(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	if server.listener == nil {
		t.Error("listener is nil")
	}
}

func TestNew_InvalidAddr(t *testing.T) {
	server1 := newTestServer(t)
	defer server1.Close()

	// Try to listen on the same port - should fail
	occupiedAddr := server1.listener.Addr().(*net.TCPAddr)
	if _, err := New(occupiedAddr); err == nil {
		t.Error("expected error for occupied port")
	}
}

func TestServer_Close(t *testing.T) {
	server := newTestServer(t)

	if err := server.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	// Verify listener is closed by trying to accept
	if _, err := server.listener.AcceptTCP(); err == nil {
		t.Error("expected error after close")
	}
}

func TestServer_AddrAndURL(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	if server.Addr() == nil {
		t.Fatal("Addr returned nil")
	}

	if want := "ws://" + server.Addr().String(); server.URL() != want {
		t.Errorf("URL = %s, want %s", server.URL(), want)
	}
}

func TestServer_Serve(t *testing.T) {
	server := newTestServer(t)

	handler := newMockHandler()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, handler)
	}()

	clientWS, _, err := websocket.DefaultDialer.Dial(server.URL(), nil)
	if err != nil {
		t.Fatalf("client dial failed: %v", err)
	}
	defer clientWS.Close()

	select {
	case ws := <-handler.handleCh:
		if ws == nil {
			t.Error("handler received nil connection")
		} else {
			ws.Close()
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for handler")
	}

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for Serve to return")
	}
}

func TestServer_Serve_MultipleConnections(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	handler := newMockHandler()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go server.Serve(ctx, handler)

	numClients := 5
	clients := make([]*websocket.Conn, numClients)
	for i := 0; i < numClients; i++ {
		clientWS, _, err := websocket.DefaultDialer.Dial(server.URL(), nil)
		if err != nil {
			t.Fatalf("client %d dial failed: %v", i, err)
		}
		clients[i] = clientWS
	}

	for i := 0; i < numClients; i++ {
		select {
		case ws := <-handler.handleCh:
			if ws == nil {
				t.Errorf("handler %d received nil connection", i)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timeout waiting for handler %d", i)
		}
	}

	for _, ws := range clients {
		ws.Close()
	}

	conns := handler.getConns()
	if len(conns) != numClients {
		t.Errorf("handler received %d connections, want %d", len(conns), numClients)
	}

	for _, ws := range conns {
		ws.Close()
	}
}

func TestServer_Serve_RejectsPlainHTTP(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	handler := newMockHandler()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go server.Serve(ctx, handler)

	resp, err := http.Get("http://" + server.Addr().String())
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if len(handler.getConns()) != 0 {
		t.Error("handler should not see non-websocket requests")
	}
}

func TestServer_CheckOriginOption(t *testing.T) {
	server := newTestServer(t, ServerCheckOriginOption(func(*http.Request) bool { return false }))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go server.Serve(ctx, newMockHandler())

	if _, _, err := websocket.DefaultDialer.Dial(server.URL(), nil); err == nil {
		t.Error("expected dial to fail when origin check rejects")
	}
}

func TestServer_Serve_ShutdownTimeoutBypassedByClose(t *testing.T) {
	server := newTestServer(t, ServerShutdownTimeoutOption(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, newMockHandler())
	}()

	// Give server time to start
	time.Sleep(time.Millisecond * 50)

	cancel()
	time.Sleep(time.Millisecond * 50)

	if err := server.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not bypass the shutdown timeout")
	}
}

func TestDial(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	serverReceived := make(chan packet.Packet, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go server.Serve(ctx, HandlerFunc(func(ws *websocket.Conn) {
		conn, err := NewConn(ws, OnPacketOption(func(pk packet.Packet) error {
			serverReceived <- pk
			return nil
		}))
		if err != nil {
			ws.Close()
			return
		}
		_ = conn.Run(ctx)
	}))

	conn, err := Dial(ctx, server.URL(), OnPacketOption(nopOnPacket))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	go conn.Run(ctx)

	login := &packet.Login{Protocol: packet.ProtocolVersion, ChainData: "chain", SkinData: "skin"}
	if err = conn.WriteBlocking(ctx, login); err != nil {
		t.Fatalf("WriteBlocking failed: %v", err)
	}

	got, ok := waitPacket(t, serverReceived).(*packet.Login)
	if !ok || *got != *login {
		t.Errorf("server received %+v, want %+v", got, login)
	}
}

func TestDial_MissingOnPacket(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go server.Serve(ctx, newMockHandler())

	if _, err := Dial(ctx, server.URL()); err != ErrInvalidOnPacket {
		t.Errorf("expected ErrInvalidOnPacket, got %v", err)
	}
}

func TestDial_Unreachable(t *testing.T) {
	server := newTestServer(t)
	url := server.URL()
	server.Close()

	if _, err := Dial(context.Background(), url, OnPacketOption(nopOnPacket)); err == nil {
		t.Error("expected dial error for closed server")
	}
}
