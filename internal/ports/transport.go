package ports

import "context"

// Envelope is one message crossing the boundary between the host session
// and an embedded application, tagged with the origin it arrived from.
type Envelope struct {
	Origin  string
	Payload []byte
}

// IntentTransport is the asynchronous message channel an embedded
// application uses to reach the relay. Receive blocks until a message
// arrives or ctx is done; Send delivers a reply to the embedded side.
// The transport carries opaque payloads; schema validation happens in
// the relay, at the trust boundary.
type IntentTransport interface {
	Receive(ctx context.Context) (Envelope, error)
	Send(ctx context.Context, env Envelope) error
}
