package relayws

import (
	"context"

	"github.com/halvora/aa-wallet-cli/internal/ports"
)

// Loopback is an in-process IntentTransport for tests and embedding:
// what one end sends, the other receives. Both ends share the Close.
type Loopback struct {
	in     chan ports.Envelope
	out    chan ports.Envelope
	closed chan struct{}
}

var _ ports.IntentTransport = (*Loopback)(nil)

// NewLoopbackPair returns two connected transports. Envelopes sent on
// one end arrive at the other with Origin preserved.
func NewLoopbackPair(buffer int) (*Loopback, *Loopback) {
	if buffer <= 0 {
		buffer = 16
	}
	a := make(chan ports.Envelope, buffer)
	b := make(chan ports.Envelope, buffer)
	closed := make(chan struct{})

	return &Loopback{in: a, out: b, closed: closed},
		&Loopback{in: b, out: a, closed: closed}
}

func (l *Loopback) Receive(ctx context.Context) (ports.Envelope, error) {
	select {
	case env := <-l.in:
		return env, nil
	case <-l.closed:
		return ports.Envelope{}, ErrClosed
	case <-ctx.Done():
		return ports.Envelope{}, ctx.Err()
	}
}

func (l *Loopback) Send(ctx context.Context, env ports.Envelope) error {
	select {
	case l.out <- env:
		return nil
	case <-l.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loopback) Close() error {
	select {
	case <-l.closed:
	default:
		close(l.closed)
	}
	return nil
}
