package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/halvora/aa-wallet-cli/internal/domain"
	"github.com/halvora/aa-wallet-cli/internal/log"
	"github.com/halvora/aa-wallet-cli/internal/metrics"
	"github.com/halvora/aa-wallet-cli/internal/platform/ratelimit"
	"github.com/halvora/aa-wallet-cli/internal/ports"
)

// RelayConfig scopes the relay to one trusted origin and bounds the
// intent rate per origin.
type RelayConfig struct {
	TrustedOrigin string
	IntentsPerSec float64
	IntentBurst   int
}

// RelayService bridges a sandboxed embedded application to the
// dispatcher. Intents arrive as envelopes over an asynchronous
// transport; replies correlate strictly by the origin-supplied id.
// Forwarding is serialized: one goroutine consumes the transport, which
// satisfies the dispatcher's single-in-flight assumption.
type RelayService struct {
	transport ports.IntentTransport
	dispatch  *DispatchService
	sessions  *SessionService
	clock     ports.Clock
	cfg       RelayConfig
	limiter   *ratelimit.KeyLimiter
	active    atomic.Bool
	log       zerolog.Logger
}

func NewRelayService(transport ports.IntentTransport, dispatch *DispatchService, sessions *SessionService, clock ports.Clock, cfg RelayConfig) *RelayService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if cfg.IntentsPerSec <= 0 {
		cfg.IntentsPerSec = 1
	}
	if cfg.IntentBurst <= 0 {
		cfg.IntentBurst = 5
	}

	return &RelayService{
		transport: transport,
		dispatch:  dispatch,
		sessions:  sessions,
		clock:     clock,
		cfg:       cfg,
		limiter:   ratelimit.New(cfg.IntentsPerSec, cfg.IntentBurst, 0),
		log:       log.With("relay"),
	}
}

// Run consumes the transport until ctx is done or the transport fails.
// It subscribes to session status explicitly and only forwards intents
// while the session is active. Malformed or mis-origin messages are
// dropped with a log; nothing that arrives over the wire can crash the
// loop.
func (r *RelayService) Run(ctx context.Context) error {
	statusCh, unsubscribe := r.sessions.Subscribe()
	defer unsubscribe()
	r.active.Store(r.sessions.Snapshot().Status.CanSubmit())

	go func() {
		for status := range statusCh {
			r.active.Store(status.CanSubmit())
		}
	}()

	for {
		env, err := r.transport.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("receive intent: %w", err)
		}
		r.handle(ctx, env)
	}
}

func (r *RelayService) handle(ctx context.Context, env ports.Envelope) {
	if !r.originTrusted(env.Origin) {
		metrics.RelayIntentTotal.WithLabelValues("dropped_origin").Inc()
		r.log.Warn().Err(domain.ErrOriginRejected).Str("origin", env.Origin).Msg("dropping message")
		return
	}

	msg, err := decodeIntentMessage(env.Payload)
	if err != nil {
		metrics.RelayIntentTotal.WithLabelValues("dropped_malformed").Inc()
		r.log.Warn().Err(err).Msg("dropping unrecognized message")
		return
	}

	intent, err := validateIntent(msg)
	if err != nil {
		metrics.RelayIntentTotal.WithLabelValues("rejected").Inc()
		r.reject(ctx, msg.ID, rejectInvalidIntent, err)
		return
	}
	intent.ObservedAt = r.clock.Now()

	if !r.limiter.Allow(env.Origin, r.clock.Now()) {
		metrics.RelayIntentTotal.WithLabelValues("rate_limited").Inc()
		r.reject(ctx, intent.ID, rejectRateLimited, errors.New("too many intents"))
		return
	}

	if !r.active.Load() {
		metrics.RelayIntentTotal.WithLabelValues("rejected").Inc()
		r.reject(ctx, intent.ID, rejectSessionNotActive, domain.ErrNotActive)
		return
	}

	record, err := r.dispatch.SubmitRaw(ctx, intent.Target, intent.CallData, intent.Value)
	if err != nil {
		metrics.RelayIntentTotal.WithLabelValues("rejected").Inc()
		r.reject(ctx, intent.ID, rejectCodeFor(err), err)
		return
	}

	record, err = r.dispatch.AwaitConfirmation(ctx, record)
	if err != nil {
		metrics.RelayIntentTotal.WithLabelValues("rejected").Inc()
		r.reject(ctx, intent.ID, rejectCodeFor(err), err)
		return
	}

	payload, err := encodeConfirmed(intent.ID, record)
	if err != nil {
		r.log.Error().Err(err).Str("intent_id", intent.ID).Msg("encode confirmation")
		return
	}
	if err := r.send(ctx, payload); err != nil {
		r.log.Warn().Err(err).Str("intent_id", intent.ID).Msg("deliver confirmation")
		return
	}

	metrics.RelayIntentTotal.WithLabelValues("confirmed").Inc()
	r.log.Info().
		Str("intent_id", intent.ID).
		Str("tx_hash", record.TransactionHash).
		Msg("intent confirmed")
}

func (r *RelayService) reject(ctx context.Context, id, code string, cause error) {
	payload, err := encodeRejected(id, code, cause.Error())
	if err != nil {
		r.log.Error().Err(err).Str("intent_id", id).Msg("encode rejection")
		return
	}
	if err := r.send(ctx, payload); err != nil {
		r.log.Warn().Err(err).Str("intent_id", id).Msg("deliver rejection")
		return
	}
	r.log.Info().Str("intent_id", id).Str("code", code).Msg("intent rejected")
}

func (r *RelayService) send(ctx context.Context, payload []byte) error {
	return r.transport.Send(ctx, ports.Envelope{
		Origin:  r.cfg.TrustedOrigin,
		Payload: payload,
	})
}

func (r *RelayService) originTrusted(origin string) bool {
	return strings.EqualFold(strings.TrimSpace(origin), strings.TrimSpace(r.cfg.TrustedOrigin)) &&
		strings.TrimSpace(origin) != ""
}

func rejectCodeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotActive):
		return rejectSessionNotActive
	case errors.Is(err, domain.ErrConcurrentSubmission):
		return rejectBusy
	case errors.Is(err, domain.ErrInvalidAddress), errors.Is(err, domain.ErrInvalidAmount):
		return rejectInvalidIntent
	case errors.Is(err, domain.ErrConfirmationTimeout):
		return rejectConfirmationTimeout
	default:
		return rejectSubmissionFailed
	}
}
