package application

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/halvora/aa-wallet-cli/internal/domain"
	"github.com/halvora/aa-wallet-cli/internal/log"
	"github.com/halvora/aa-wallet-cli/internal/metrics"
	"github.com/halvora/aa-wallet-cli/internal/ports"
)

// errNotMined marks a receipt poll that came back empty; it keeps the
// backoff loop going until the confirmation bound is hit.
var errNotMined = errors.New("user operation not yet mined")

// DispatchConfig bounds the confirmation wait. Zero values fall back to
// the defaults below.
type DispatchConfig struct {
	ConfirmInitialInterval time.Duration
	ConfirmMaxInterval     time.Duration
	ConfirmMaxElapsed      time.Duration
}

const (
	defaultConfirmInitialInterval = 500 * time.Millisecond
	defaultConfirmMaxInterval     = 8 * time.Second
	defaultConfirmMaxElapsed      = 90 * time.Second
)

func (c DispatchConfig) withDefaults() DispatchConfig {
	if c.ConfirmInitialInterval <= 0 {
		c.ConfirmInitialInterval = defaultConfirmInitialInterval
	}
	if c.ConfirmMaxInterval <= 0 {
		c.ConfirmMaxInterval = defaultConfirmMaxInterval
	}
	if c.ConfirmMaxElapsed <= 0 {
		c.ConfirmMaxElapsed = defaultConfirmMaxElapsed
	}
	return c
}

// DispatchService builds, submits, and tracks user operations against
// the active session. It assumes at most one in-flight submission at a
// time; an overlapping second submission is a caller error, never
// silently queued.
type DispatchService struct {
	sessions *SessionService
	clock    ports.Clock
	cfg      DispatchConfig
	log      zerolog.Logger

	mu       sync.Mutex
	inFlight bool
	records  map[string]domain.UserOperationRecord
}

func NewDispatchService(sessions *SessionService, clock ports.Clock, cfg DispatchConfig) *DispatchService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &DispatchService{
		sessions: sessions,
		clock:    clock,
		cfg:      cfg.withDefaults(),
		log:      log.With("dispatch"),
		records:  make(map[string]domain.UserOperationRecord),
	}
}

// SubmitTransfer encodes a standard token-transfer call for the given
// recipient and amount (a decimal string in smallest units) and submits
// it. All input validation happens before any network call.
func (d *DispatchService) SubmitTransfer(ctx context.Context, to string, amount string) (domain.UserOperationRecord, error) {
	target, err := domain.ParseAddress(to)
	if err != nil {
		metrics.UserOpSubmitTotal.WithLabelValues("invalid_input").Inc()
		return domain.UserOperationRecord{}, fmt.Errorf("transfer recipient: %w", err)
	}

	value, err := domain.ParseAmount(amount)
	if err != nil {
		metrics.UserOpSubmitTotal.WithLabelValues("invalid_input").Inc()
		return domain.UserOperationRecord{}, fmt.Errorf("transfer amount: %w", err)
	}

	callData, err := domain.EncodeTransferCall(target, value)
	if err != nil {
		metrics.UserOpSubmitTotal.WithLabelValues("invalid_input").Inc()
		return domain.UserOperationRecord{}, fmt.Errorf("encode transfer call: %w", err)
	}

	req, err := domain.NewUserOperationRequest(target, callData, value)
	if err != nil {
		metrics.UserOpSubmitTotal.WithLabelValues("invalid_input").Inc()
		return domain.UserOperationRecord{}, err
	}

	return d.submit(ctx, req)
}

// SubmitRaw submits a call without transfer-specific encoding; the
// embedded relay forwards validated intents through here.
func (d *DispatchService) SubmitRaw(ctx context.Context, target common.Address, callData []byte, value *big.Int) (domain.UserOperationRecord, error) {
	req, err := domain.NewUserOperationRequest(target, callData, value)
	if err != nil {
		metrics.UserOpSubmitTotal.WithLabelValues("invalid_input").Inc()
		return domain.UserOperationRecord{}, err
	}

	return d.submit(ctx, req)
}

func (d *DispatchService) submit(ctx context.Context, req domain.UserOperationRequest) (domain.UserOperationRecord, error) {
	client, err := d.sessions.ActiveClient()
	if err != nil {
		metrics.UserOpSubmitTotal.WithLabelValues("not_active").Inc()
		return domain.UserOperationRecord{}, err
	}

	d.mu.Lock()
	if d.inFlight {
		d.mu.Unlock()
		metrics.UserOpSubmitTotal.WithLabelValues("concurrent").Inc()
		return domain.UserOperationRecord{}, domain.ErrConcurrentSubmission
	}
	d.inFlight = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.inFlight = false
		d.mu.Unlock()
	}()

	record := domain.UserOperationRecord{
		RequestID:   uuid.NewString(),
		State:       domain.OperationBuilding,
		SubmittedAt: d.clock.Now(),
	}

	opHash, err := client.SendUserOperation(ctx, req)
	if err != nil {
		metrics.UserOpSubmitTotal.WithLabelValues("rejected").Inc()
		// A cancelled or rejected submission leaves no record behind.
		if ctx.Err() != nil {
			return domain.UserOperationRecord{}, fmt.Errorf("send user operation: %w", err)
		}
		return domain.UserOperationRecord{}, fmt.Errorf("send user operation: %w", errors.Join(domain.ErrSubmissionFailed, err))
	}

	record.OperationHash = opHash
	record.State = domain.OperationSubmitted

	d.mu.Lock()
	d.records[record.RequestID] = record
	d.mu.Unlock()

	metrics.UserOpSubmitTotal.WithLabelValues("accepted").Inc()
	d.log.Info().
		Str("request_id", record.RequestID).
		Str("op_hash", opHash).
		Msg("user operation submitted")

	return record, nil
}

// AwaitConfirmation polls the bundler for the mined transaction of a
// submitted record, backing off exponentially up to the configured
// bound. Exhausting the bound does not fail the operation: the record
// comes back still submitted alongside ErrConfirmationTimeout, and the
// caller may poll again.
func (d *DispatchService) AwaitConfirmation(ctx context.Context, record domain.UserOperationRecord) (domain.UserOperationRecord, error) {
	switch record.State {
	case domain.OperationConfirmed:
		return record, nil
	case domain.OperationSubmitted:
	default:
		return record, fmt.Errorf("record %s is %s, nothing to await", record.RequestID, record.State)
	}

	client, err := d.sessions.ActiveClient()
	if err != nil {
		return record, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = d.cfg.ConfirmInitialInterval
	bo.MaxInterval = d.cfg.ConfirmMaxInterval
	bo.MaxElapsedTime = d.cfg.ConfirmMaxElapsed

	var txHash string
	poll := func() error {
		hash, found, pollErr := client.UserOperationReceipt(ctx, record.OperationHash)
		if pollErr != nil {
			d.log.Debug().Err(pollErr).Str("op_hash", record.OperationHash).Msg("receipt poll failed, retrying")
			return pollErr
		}
		if !found {
			return errNotMined
		}
		txHash = hash
		return nil
	}

	started := d.clock.Now()
	if err := backoff.Retry(poll, backoff.WithContext(bo, ctx)); err != nil {
		if ctx.Err() != nil {
			return record, fmt.Errorf("await confirmation: %w", ctx.Err())
		}
		return record, fmt.Errorf("await confirmation of %s: %w", record.OperationHash, errors.Join(domain.ErrConfirmationTimeout, err))
	}

	metrics.UserOpConfirmSeconds.Observe(d.clock.Now().Sub(started).Seconds())

	record.TransactionHash = txHash
	record.State = domain.OperationConfirmed

	d.mu.Lock()
	delete(d.records, record.RequestID)
	d.mu.Unlock()

	d.log.Info().
		Str("request_id", record.RequestID).
		Str("tx_hash", txHash).
		Msg("user operation confirmed")

	return record, nil
}

// Record returns the tracked state of an in-flight submission.
func (d *DispatchService) Record(requestID string) (domain.UserOperationRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	record, ok := d.records[requestID]
	return record, ok
}
