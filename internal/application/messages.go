package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/halvora/aa-wallet-cli/internal/domain"
)

// Wire shapes of the embedded-app message protocol. Every message
// carries a type discriminator and the origin-supplied correlation id.
const (
	msgTypeIntent    = "transaction_intent"
	msgTypeConfirmed = "transaction_confirmed"
	msgTypeRejected  = "transaction_rejected"
)

// Error codes carried by transaction_rejected messages.
const (
	rejectInvalidIntent       = "invalid_intent"
	rejectSessionNotActive    = "session_not_active"
	rejectRateLimited         = "rate_limited"
	rejectBusy                = "busy"
	rejectSubmissionFailed    = "submission_failed"
	rejectConfirmationTimeout = "confirmation_timeout"
)

type intentMessage struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value"`
}

type confirmedMessage struct {
	Type            string `json:"type"`
	ID              string `json:"id"`
	OperationHash   string `json:"operationHash"`
	TransactionHash string `json:"transactionHash"`
}

type rejectedMessage struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// decodeIntentMessage parses an inbound payload into the raw intent
// message. Payloads that are not a transaction_intent at all (bad JSON,
// unknown fields, wrong type tag, missing id) fail here and are dropped
// by the caller; there is nothing to correlate a reply to.
func decodeIntentMessage(payload []byte) (intentMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()

	var msg intentMessage
	if err := dec.Decode(&msg); err != nil {
		return intentMessage{}, fmt.Errorf("decode intent: %w: %w", domain.ErrIntentMalformed, err)
	}
	if msg.Type != msgTypeIntent {
		return intentMessage{}, fmt.Errorf("message type %q: %w", msg.Type, domain.ErrIntentMalformed)
	}
	if strings.TrimSpace(msg.ID) == "" {
		return intentMessage{}, fmt.Errorf("missing intent id: %w", domain.ErrIntentMalformed)
	}
	return msg, nil
}

// validateIntent turns a structurally sound message into a RelayIntent,
// enforcing the field-level rules: well-formed target address, hex
// calldata, exact-integer value. An absent value means zero.
func validateIntent(msg intentMessage) (domain.RelayIntent, error) {
	target, err := domain.ParseAddress(msg.To)
	if err != nil {
		return domain.RelayIntent{}, fmt.Errorf("intent %s target: %w", msg.ID, err)
	}

	var callData []byte
	if trimmed := strings.TrimSpace(msg.Data); trimmed != "" && trimmed != "0x" {
		callData, err = hexutil.Decode(trimmed)
		if err != nil {
			return domain.RelayIntent{}, fmt.Errorf("intent %s calldata: %w: %w", msg.ID, domain.ErrIntentMalformed, err)
		}
	}

	value, err := domain.ParseAmount(coalesceAmount(msg.Value))
	if err != nil {
		return domain.RelayIntent{}, fmt.Errorf("intent %s value: %w", msg.ID, err)
	}

	return domain.RelayIntent{
		ID:       msg.ID,
		Target:   target,
		CallData: callData,
		Value:    value,
	}, nil
}

// Embedded apps routinely omit the value field on plain contract calls.
func coalesceAmount(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "0"
	}
	return raw
}

func encodeConfirmed(id string, record domain.UserOperationRecord) ([]byte, error) {
	return json.Marshal(confirmedMessage{
		Type:            msgTypeConfirmed,
		ID:              id,
		OperationHash:   record.OperationHash,
		TransactionHash: record.TransactionHash,
	})
}

func encodeRejected(id, code, message string) ([]byte, error) {
	return json.Marshal(rejectedMessage{
		Type:      msgTypeRejected,
		ID:        id,
		ErrorCode: code,
		Message:   message,
	})
}
