package relayws

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvora/aa-wallet-cli/internal/ports"
)

func envelope(origin, payload string) ports.Envelope {
	return ports.Envelope{Origin: origin, Payload: []byte(payload)}
}

func dial(t *testing.T, transport *Transport, origin string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	conn, resp, err := websocket.DefaultDialer.Dial(transport.URL(), header)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestReceiveTagsEnvelopeWithOrigin(t *testing.T) {
	transport, err := Listen("")
	require.NoError(t, err)
	defer func() { _ = transport.Close() }()

	conn := dial(t, transport, "https://app.example")
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"hello":1}`)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	env, err := transport.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://app.example", env.Origin)
	assert.JSONEq(t, `{"hello":1}`, string(env.Payload))
}

func TestSendReachesConnectedClient(t *testing.T) {
	transport, err := Listen("")
	require.NoError(t, err)
	defer func() { _ = transport.Close() }()

	conn := dial(t, transport, "https://app.example")

	// Wire-up is asynchronous; the first Send may race the upgrade, so
	// prove the client is adopted by round-tripping a message first.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = transport.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, transport.Send(ctx, envelope("https://app.example", `{"type":"transaction_confirmed"}`)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"transaction_confirmed"}`, string(payload))
}

func TestSendWithoutClientFails(t *testing.T) {
	transport, err := Listen("")
	require.NoError(t, err)
	defer func() { _ = transport.Close() }()

	err = transport.Send(context.Background(), envelope("https://app.example", "{}"))
	require.ErrorContains(t, err, "no embedded client")
}

func TestReceiveHonorsContext(t *testing.T) {
	transport, err := Listen("")
	require.NoError(t, err)
	defer func() { _ = transport.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = transport.Receive(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseUnblocksReceive(t *testing.T) {
	transport, err := Listen("")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, receiveErr := transport.Receive(context.Background())
		done <- receiveErr
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, transport.Close())

	select {
	case receiveErr := <-done:
		assert.ErrorIs(t, receiveErr, ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("Receive did not return after Close")
	}
}

func TestNewConnectionReplacesPrevious(t *testing.T) {
	transport, err := Listen("")
	require.NoError(t, err)
	defer func() { _ = transport.Close() }()

	first := dial(t, transport, "https://app.example")
	second := dial(t, transport, "https://app.example")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Drain until the second client's message arrives; the first one's
	// connection is closed underneath it.
	require.NoError(t, second.WriteMessage(websocket.TextMessage, []byte("from-second")))
	env, err := transport.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "from-second", string(env.Payload))

	require.NoError(t, transport.Send(ctx, envelope("https://app.example", "reply")))
	require.NoError(t, second.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := second.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "reply", string(payload))

	require.NoError(t, first.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = first.ReadMessage()
	assert.Error(t, err, "replaced connection is closed")
}
