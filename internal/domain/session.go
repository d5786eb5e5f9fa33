package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SessionStatus is the client-visible lifecycle of a smart-account session.
type SessionStatus string

const (
	SessionDisconnected   SessionStatus = "disconnected"
	SessionAuthenticating SessionStatus = "authenticating"
	SessionActive         SessionStatus = "active"
	SessionFailed         SessionStatus = "failed"
)

// CanSubmit reports whether user operations may be dispatched in this status.
func (s SessionStatus) CanSubmit() bool {
	return s == SessionActive
}

// Settled reports whether the session is in a resting state, i.e. no
// connect attempt is in flight.
func (s SessionStatus) Settled() bool {
	return s == SessionDisconnected || s == SessionActive
}

// Session is a snapshot of one smart-account session. AccountAddress,
// DisplayName and Balance carry values only while Status is active.
type Session struct {
	Status         SessionStatus
	AccountAddress common.Address
	DisplayName    string
	Balance        *big.Int
	ChainID        uint64
}

// NewSession returns the zero session every lifecycle starts from.
func NewSession() Session {
	return Session{Status: SessionDisconnected}
}
