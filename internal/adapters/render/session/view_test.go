package session

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvora/aa-wallet-cli/internal/domain"
)

func activeCard() Card {
	return Card{
		Session: domain.Session{
			Status:         domain.SessionActive,
			AccountAddress: common.HexToAddress("0x692be0A2Aabb8a72AE17479FC096ce0032e78954"),
			DisplayName:    "Alice",
			Balance:        big.NewInt(1500000000000000000),
			ChainID:        11155111,
		},
		Chain: domain.Chain{
			ID:             11155111,
			Name:           "sepolia",
			NativeSymbol:   "ETH",
			NativeDecimals: 18,
		},
	}
}

func TestRenderActiveSession(t *testing.T) {
	output, err := Render(activeCard())
	require.NoError(t, err)

	assert.Contains(t, output, "Smart Account Session")
	assert.Contains(t, output, "status: active")
	assert.Contains(t, output, "0x692be0A2Aabb8a72AE17479FC096ce0032e78954")
	assert.Contains(t, output, "sepolia (11155111)")
	assert.Contains(t, output, "1.5 ETH")
	assert.Contains(t, output, "Alice")
	assert.NotContains(t, output, "pending")
}

func TestRenderDisconnectedSession(t *testing.T) {
	output, err := Render(Card{Session: domain.NewSession()})
	require.NoError(t, err)

	assert.Contains(t, output, "status: disconnected")
	assert.Contains(t, output, "Connect to provision")
	assert.NotContains(t, output, "balance")
}

func TestRenderPendingOperation(t *testing.T) {
	card := activeCard()
	card.Pending = &domain.UserOperationRecord{
		RequestID:     "req-1",
		OperationHash: "0xop",
		State:         domain.OperationSubmitted,
	}

	output, err := Render(card)
	require.NoError(t, err)
	assert.Contains(t, output, "pending")
	assert.Contains(t, output, "submitted 0xop")
}

func TestRenderUnknownBalanceAndChain(t *testing.T) {
	card := activeCard()
	card.Session.Balance = nil
	card.Chain = domain.Chain{}

	output, err := Render(card)
	require.NoError(t, err)
	assert.Contains(t, output, "unknown")
	assert.Contains(t, output, "chain id 11155111")
}
