package relayws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/halvora/aa-wallet-cli/internal/log"
	"github.com/halvora/aa-wallet-cli/internal/ports"
)

const (
	relayPath        = "/relay"
	maxIntentBytes   = 64 << 10
	writeTimeout     = 10 * time.Second
	incomingCapacity = 16
)

var ErrClosed = errors.New("relay transport closed")

// Transport serves the embedded-app websocket endpoint and adapts it to
// the envelope interface. Each inbound frame is tagged with the
// connection's Origin header; trust decisions stay with the consumer.
// One embedded client is connected at a time: a new connection replaces
// the previous one.
type Transport struct {
	server   *http.Server
	listener net.Listener
	upgrader websocket.Upgrader
	incoming chan ports.Envelope
	closed   chan struct{}
	log      zerolog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

var _ ports.IntentTransport = (*Transport)(nil)

// Listen binds the websocket endpoint on addr ("127.0.0.1:0" picks a
// free port) and starts serving in the background.
func Listen(addr string) (*Transport, error) {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen relay endpoint: %w", err)
	}

	t := &Transport{
		listener: listener,
		incoming: make(chan ports.Envelope, incomingCapacity),
		closed:   make(chan struct{}),
		log:      log.With("relayws"),
		upgrader: websocket.Upgrader{
			// The consumer validates origins per message; rejecting here
			// would hide the attempt from its logs.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(relayPath, t.handleUpgrade)
	t.server = &http.Server{Handler: mux}

	go func() {
		if serveErr := t.server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			t.log.Error().Err(serveErr).Msg("relay endpoint stopped")
		}
	}()

	return t, nil
}

// URL returns the ws:// endpoint embedded clients dial.
func (t *Transport) URL() string {
	return "ws://" + t.listener.Addr().String() + relayPath
}

func (t *Transport) Receive(ctx context.Context) (ports.Envelope, error) {
	select {
	case env := <-t.incoming:
		return env, nil
	case <-ctx.Done():
		return ports.Envelope{}, ctx.Err()
	case <-t.closed:
		return ports.Envelope{}, ErrClosed
	}
}

func (t *Transport) Send(ctx context.Context, env ports.Envelope) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return errors.New("no embedded client connected")
	}

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, env.Payload); err != nil {
		return fmt.Errorf("write relay message: %w", err)
	}
	return nil
}

func (t *Transport) Close() error {
	select {
	case <-t.closed:
		return nil
	default:
	}
	close(t.closed)

	t.mu.Lock()
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
	t.mu.Unlock()

	return t.server.Close()
}

func (t *Transport) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(maxIntentBytes)

	origin := r.Header.Get("Origin")
	t.adopt(conn)
	t.log.Info().Str("origin", origin).Msg("embedded client connected")

	go t.readLoop(conn, origin)
}

// adopt makes conn the active client, closing any predecessor.
func (t *Transport) adopt(conn *websocket.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		_ = t.conn.Close()
	}
	t.conn = conn
}

func (t *Transport) readLoop(conn *websocket.Conn, origin string) {
	defer func() {
		t.mu.Lock()
		if t.conn == conn {
			t.conn = nil
		}
		t.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				t.log.Warn().Err(err).Str("origin", origin).Msg("embedded client dropped")
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		env := ports.Envelope{Origin: origin, Payload: payload}
		select {
		case t.incoming <- env:
		case <-t.closed:
			return
		default:
			t.log.Warn().Str("origin", origin).Msg("inbound intent queue full, dropping message")
		}
	}
}
