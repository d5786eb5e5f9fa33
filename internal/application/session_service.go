package application

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/halvora/aa-wallet-cli/internal/domain"
	"github.com/halvora/aa-wallet-cli/internal/log"
	"github.com/halvora/aa-wallet-cli/internal/metrics"
	"github.com/halvora/aa-wallet-cli/internal/ports"
)

// ConnectConfig carries the caller-supplied configuration for one
// connect attempt. Nothing in it is ever hard-coded here.
type ConnectConfig struct {
	APIKey      string
	Chain       domain.Chain
	GasPolicyID string
}

// SessionService owns the session state machine. It is the only
// component that mutates session status; the dispatcher and relay borrow
// the account client through ActiveClient for the duration of one call.
//
// Connect and Disconnect are serialized on one mutex, so a disconnect
// issued while a connect is in flight waits for the connect to settle.
// That is what keeps half-connected states (signer without account,
// stale account with fresh signer) unrepresentable.
type SessionService struct {
	signer  ports.SignerAdapter
	factory ports.AccountClientFactory

	mu      sync.Mutex
	session domain.Session
	client  ports.AccountClient

	subMu   sync.Mutex
	subs    map[int]chan domain.SessionStatus
	nextSub int

	log zerolog.Logger
}

func NewSessionService(signer ports.SignerAdapter, factory ports.AccountClientFactory) *SessionService {
	return &SessionService{
		signer:  signer,
		factory: factory,
		session: domain.NewSession(),
		subs:    make(map[int]chan domain.SessionStatus),
		log:     log.With("session"),
	}
}

// Connect drives signer authentication and account provisioning as one
// atomic transition: either the session ends up active with address,
// display name and balance populated, or it ends up disconnected with no
// partial state. Calling Connect on an already active session is a no-op.
func (s *SessionService) Connect(ctx context.Context, cfg ConnectConfig) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Status == domain.SessionActive {
		return s.snapshotLocked(), nil
	}

	s.setStatusLocked(domain.SessionAuthenticating)

	if err := s.signer.Authenticate(ctx); err != nil {
		s.failLocked()
		return s.snapshotLocked(), fmt.Errorf("authenticate signer: %w", errors.Join(domain.ErrAuthFailed, err))
	}

	client, err := s.factory.CreateAccountClient(ctx, ports.ProvisionConfig{
		APIKey:      cfg.APIKey,
		Chain:       cfg.Chain,
		Signer:      s.signer,
		GasPolicyID: cfg.GasPolicyID,
	})
	if err != nil {
		s.logoutQuietly(ctx)
		s.failLocked()
		return s.snapshotLocked(), fmt.Errorf("provision account: %w", errors.Join(domain.ErrAccountProvisioning, err))
	}

	address, err := client.Address(ctx)
	if err != nil {
		s.logoutQuietly(ctx)
		s.failLocked()
		return s.snapshotLocked(), fmt.Errorf("resolve account address: %w", errors.Join(domain.ErrAccountProvisioning, err))
	}

	balance, err := client.Balance(ctx, address)
	if err != nil {
		s.logoutQuietly(ctx)
		s.failLocked()
		return s.snapshotLocked(), fmt.Errorf("fetch account balance: %w", errors.Join(domain.ErrAccountProvisioning, err))
	}

	displayName := ""
	if identity, err := s.signer.IdentityInfo(ctx); err != nil {
		s.log.Warn().Err(err).Msg("identity info unavailable, continuing without display name")
	} else {
		displayName = identity.DisplayName
	}

	s.client = client
	s.session.AccountAddress = address
	s.session.Balance = balance
	s.session.DisplayName = displayName
	s.session.ChainID = cfg.Chain.ID
	s.setStatusLocked(domain.SessionActive)

	s.log.Info().
		Str("address", address.Hex()).
		Uint64("chain_id", cfg.Chain.ID).
		Msg("session active")

	return s.snapshotLocked(), nil
}

// Refresh returns the cached account address and a freshly fetched
// balance. The address is stable for the session lifetime; the balance
// changes externally and is never cached.
func (s *SessionService) Refresh(ctx context.Context) (common.Address, *big.Int, error) {
	s.mu.Lock()
	if !s.session.Status.CanSubmit() {
		s.mu.Unlock()
		return common.Address{}, nil, domain.ErrNotActive
	}
	client := s.client
	address := s.session.AccountAddress
	s.mu.Unlock()

	balance, err := client.Balance(ctx, address)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("fetch balance: %w", err)
	}

	s.mu.Lock()
	if s.session.Status == domain.SessionActive {
		s.session.Balance = new(big.Int).Set(balance)
	}
	s.mu.Unlock()

	return address, balance, nil
}

// Disconnect logs the signer out and unconditionally clears local
// session state. A logout failure is logged and swallowed: local
// teardown must never be blocked by a remote failure. Disconnecting an
// already disconnected session is a no-op.
func (s *SessionService) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Status == domain.SessionDisconnected {
		return nil
	}

	s.logoutQuietly(ctx)

	s.client = nil
	s.session = domain.NewSession()
	s.setStatusLocked(domain.SessionDisconnected)
	s.log.Info().Msg("session disconnected")
	return nil
}

// ActiveClient lends the account-client handle for the duration of one
// dispatcher call. It re-validates the session on every lease.
func (s *SessionService) ActiveClient() (ports.AccountClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Status.CanSubmit() || s.client == nil {
		return nil, domain.ErrNotActive
	}
	return s.client, nil
}

// Snapshot returns a copy of the current session.
func (s *SessionService) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers for session status changes. The returned cancel
// func releases the subscription; slow consumers miss updates rather
// than blocking the state machine.
func (s *SessionService) Subscribe() (<-chan domain.SessionStatus, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.SessionStatus, 8)
	s.subs[id] = ch

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}

func (s *SessionService) snapshotLocked() domain.Session {
	snap := s.session
	if s.session.Balance != nil {
		snap.Balance = new(big.Int).Set(s.session.Balance)
	}
	return snap
}

// failLocked applies the failed -> disconnected reset so that every
// failure path settles in a previously valid state with nothing retained.
func (s *SessionService) failLocked() {
	s.setStatusLocked(domain.SessionFailed)
	s.client = nil
	s.session = domain.NewSession()
	s.setStatusLocked(domain.SessionDisconnected)
}

func (s *SessionService) logoutQuietly(ctx context.Context) {
	if err := s.signer.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("signer logout failed, clearing local session anyway")
	}
}

func (s *SessionService) setStatusLocked(status domain.SessionStatus) {
	s.session.Status = status
	metrics.SessionTransitionTotal.WithLabelValues(string(status)).Inc()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- status:
		default:
		}
	}
}
