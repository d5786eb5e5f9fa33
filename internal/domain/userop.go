package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// UserOperationRequest is a single call to execute through the smart
// account. It is immutable once constructed and consumed exactly once.
type UserOperationRequest struct {
	Target   common.Address
	CallData []byte
	Value    *big.Int
}

// NewUserOperationRequest validates the call parameters up front so that
// malformed input never reaches the bundler. A nil value is treated as
// zero; a negative value is rejected.
func NewUserOperationRequest(target common.Address, callData []byte, value *big.Int) (UserOperationRequest, error) {
	if target == (common.Address{}) {
		return UserOperationRequest{}, fmt.Errorf("zero target: %w", ErrInvalidAddress)
	}
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return UserOperationRequest{}, fmt.Errorf("negative value: %w", ErrInvalidAmount)
	}

	data := make([]byte, len(callData))
	copy(data, callData)

	return UserOperationRequest{
		Target:   target,
		CallData: data,
		Value:    new(big.Int).Set(value),
	}, nil
}

// OperationState is the dispatcher-owned lifecycle of one user operation.
type OperationState string

const (
	OperationBuilding  OperationState = "building"
	OperationSubmitted OperationState = "submitted"
	OperationConfirmed OperationState = "confirmed"
	OperationFailed    OperationState = "failed"
)

// IsTerminal reports whether no further state transition is possible.
func (s OperationState) IsTerminal() bool {
	return s == OperationConfirmed || s == OperationFailed
}

// UserOperationRecord tracks one submission from construction to its
// mined transaction. OperationHash is set once the bundler accepts the
// operation, TransactionHash once it is mined.
type UserOperationRecord struct {
	RequestID       string
	OperationHash   string
	TransactionHash string
	State           OperationState
	SubmittedAt     time.Time
}

// RelayIntent is a transaction request observed from an embedded
// application, correlated by the origin-supplied id.
type RelayIntent struct {
	ID         string
	Target     common.Address
	CallData   []byte
	Value      *big.Int
	ObservedAt time.Time
}
