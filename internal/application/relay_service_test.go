package application

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/halvora/aa-wallet-cli/internal/ports"
	"github.com/halvora/aa-wallet-cli/internal/ports/mocks"
)

const trustedOrigin = "https://app.uniswap.org"

var errTransportClosed = errors.New("transport closed")

func relayConfig() RelayConfig {
	return RelayConfig{TrustedOrigin: trustedOrigin, IntentsPerSec: 100, IntentBurst: 100}
}

func intentPayload(t *testing.T, id, to, data, value string) []byte {
	t.Helper()
	payload, err := json.Marshal(intentMessage{Type: msgTypeIntent, ID: id, To: to, Data: data, Value: value})
	require.NoError(t, err)
	return payload
}

// runRelayWith feeds the given envelopes through a relay and collects
// every reply sent back to the embedded side.
func runRelayWith(t *testing.T, sessions *SessionService, dispatch *DispatchService, envs ...ports.Envelope) [][]byte {
	t.Helper()

	transport := mocks.NewMockIntentTransport(t)
	for _, env := range envs {
		transport.EXPECT().Receive(mockAnyContext()).Return(env, nil).Once()
	}
	transport.EXPECT().Receive(mockAnyContext()).Return(ports.Envelope{}, errTransportClosed).Once()

	var replies [][]byte
	transport.EXPECT().Send(mockAnyContext(), mock.Anything).RunAndReturn(func(_ context.Context, env ports.Envelope) error {
		replies = append(replies, env.Payload)
		return nil
	}).Maybe()

	relay := NewRelayService(transport, dispatch, sessions, nil, relayConfig())
	err := relay.Run(context.Background())
	require.ErrorIs(t, err, errTransportClosed)

	return replies
}

func TestRelayDropsUntrustedOrigin(t *testing.T) {
	sessions, _ := newActiveSession(t)
	dispatch := NewDispatchService(sessions, nil, fastConfirmConfig())

	replies := runRelayWith(t, sessions, dispatch, ports.Envelope{
		Origin:  "https://evil.example",
		Payload: intentPayload(t, "abc", "0x1111111111111111111111111111111111111111", "0x", "1"),
	})

	assert.Empty(t, replies, "no dispatcher call and no outgoing message")
}

func TestRelayDropsMalformedMessages(t *testing.T) {
	sessions, _ := newActiveSession(t)
	dispatch := NewDispatchService(sessions, nil, fastConfirmConfig())

	replies := runRelayWith(t, sessions, dispatch,
		ports.Envelope{Origin: trustedOrigin, Payload: []byte("not json")},
		ports.Envelope{Origin: trustedOrigin, Payload: []byte(`{"type":"transaction_intent","id":"x","unknown":1}`)},
		ports.Envelope{Origin: trustedOrigin, Payload: []byte(`{"type":"something_else","id":"x"}`)},
		ports.Envelope{Origin: trustedOrigin, Payload: []byte(`{"type":"transaction_intent","to":"0x1111111111111111111111111111111111111111"}`)},
	)

	assert.Empty(t, replies)
}

func TestRelayRejectsInvalidIntentFields(t *testing.T) {
	sessions, _ := newActiveSession(t)
	dispatch := NewDispatchService(sessions, nil, fastConfirmConfig())

	replies := runRelayWith(t, sessions, dispatch, ports.Envelope{
		Origin:  trustedOrigin,
		Payload: intentPayload(t, "abc", "nowhere", "0x", "1"),
	})

	require.Len(t, replies, 1)
	var rejected rejectedMessage
	require.NoError(t, json.Unmarshal(replies[0], &rejected))
	assert.Equal(t, msgTypeRejected, rejected.Type)
	assert.Equal(t, "abc", rejected.ID)
	assert.Equal(t, rejectInvalidIntent, rejected.ErrorCode)
}

func TestRelayRejectsOnSubmissionFailure(t *testing.T) {
	sessions, client := newActiveSession(t)
	dispatch := NewDispatchService(sessions, nil, fastConfirmConfig())

	client.EXPECT().SendUserOperation(mockAnyContext(), mock.Anything).Return("", errors.New("insufficient funds"))

	replies := runRelayWith(t, sessions, dispatch, ports.Envelope{
		Origin:  trustedOrigin,
		Payload: intentPayload(t, "abc", "0x1111111111111111111111111111111111111111", "0x", "5"),
	})

	require.Len(t, replies, 1, "exactly one rejection for intent abc")
	var rejected rejectedMessage
	require.NoError(t, json.Unmarshal(replies[0], &rejected))
	assert.Equal(t, "abc", rejected.ID)
	assert.Equal(t, rejectSubmissionFailed, rejected.ErrorCode)
}

func TestRelayRejectsWhileSessionInactive(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	sessions := NewSessionService(signer, factory)
	dispatch := NewDispatchService(sessions, nil, fastConfirmConfig())

	replies := runRelayWith(t, sessions, dispatch, ports.Envelope{
		Origin:  trustedOrigin,
		Payload: intentPayload(t, "idle-1", "0x1111111111111111111111111111111111111111", "0x", "0"),
	})

	require.Len(t, replies, 1)
	var rejected rejectedMessage
	require.NoError(t, json.Unmarshal(replies[0], &rejected))
	assert.Equal(t, "idle-1", rejected.ID)
	assert.Equal(t, rejectSessionNotActive, rejected.ErrorCode)
}

func TestRelayConfirmsForwardedIntent(t *testing.T) {
	sessions, client := newActiveSession(t)
	dispatch := NewDispatchService(sessions, nil, fastConfirmConfig())

	client.EXPECT().SendUserOperation(mockAnyContext(), mock.Anything).Return("0xop", nil)
	client.EXPECT().UserOperationReceipt(mockAnyContext(), "0xop").Return("0xtx", true, nil)

	replies := runRelayWith(t, sessions, dispatch, ports.Envelope{
		Origin:  trustedOrigin,
		Payload: intentPayload(t, "swap-7", "0x1111111111111111111111111111111111111111", "0xdeadbeef", "1000"),
	})

	require.Len(t, replies, 1)
	var confirmed confirmedMessage
	require.NoError(t, json.Unmarshal(replies[0], &confirmed))
	assert.Equal(t, msgTypeConfirmed, confirmed.Type)
	assert.Equal(t, "swap-7", confirmed.ID)
	assert.Equal(t, "0xop", confirmed.OperationHash)
	assert.Equal(t, "0xtx", confirmed.TransactionHash)
}

func TestValidateIntentDefaultsMissingValueToZero(t *testing.T) {
	msg := intentMessage{Type: msgTypeIntent, ID: "i", To: "0x1111111111111111111111111111111111111111"}
	intent, err := validateIntent(msg)
	require.NoError(t, err)
	assert.Zero(t, intent.Value.Cmp(big.NewInt(0)))
	assert.Nil(t, intent.CallData)
}
