package domain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "zero", raw: "0", want: "0"},
		{name: "one", raw: "1", want: "1"},
		{name: "large", raw: "9007199254740991", want: "9007199254740991"},
		{name: "surrounding whitespace", raw: "  42 ", want: "42"},
		{name: "negative", raw: "-1", wantErr: ErrInvalidAmount},
		{name: "fractional", raw: "1.5", wantErr: ErrInvalidAmount},
		{name: "non-numeric", raw: "lots", wantErr: ErrInvalidAmount},
		{name: "empty", raw: "", wantErr: ErrInvalidAmount},
		{name: "hex is rejected", raw: "0x10", wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x692be0A2Aabb8a72AE17479FC096ce0032e78954")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x692be0A2Aabb8a72AE17479FC096ce0032e78954"), addr)

	_, err = ParseAddress("not-an-address")
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = ParseAddress("0x0000000000000000000000000000000000000000")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestTransferCallRoundTrip(t *testing.T) {
	to := common.HexToAddress("0x692be0A2Aabb8a72AE17479FC096ce0032e78954")

	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	amounts := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(9007199254740991),
		maxUint256,
	}

	for _, amount := range amounts {
		data, err := EncodeTransferCall(to, amount)
		require.NoError(t, err)

		gotTo, gotAmount, err := DecodeTransferCall(data)
		require.NoError(t, err)
		assert.Equal(t, to, gotTo)
		assert.Zero(t, amount.Cmp(gotAmount), "amount %s survives the round trip", amount)
	}
}

func TestEncodeTransferCallRejectsBadInput(t *testing.T) {
	to := common.HexToAddress("0x692be0A2Aabb8a72AE17479FC096ce0032e78954")

	_, err := EncodeTransferCall(common.Address{}, big.NewInt(1))
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = EncodeTransferCall(to, big.NewInt(-1))
	require.ErrorIs(t, err, ErrInvalidAmount)

	overflow := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = EncodeTransferCall(to, overflow)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDecodeTransferCallRejectsForeignCalldata(t *testing.T) {
	_, _, err := DecodeTransferCall([]byte{0xde, 0xad, 0xbe, 0xef})
	require.ErrorIs(t, err, ErrIntentMalformed)

	data, err := EncodeTransferCall(common.HexToAddress("0x1111111111111111111111111111111111111111"), big.NewInt(7))
	require.NoError(t, err)
	data[0] ^= 0xff
	_, _, err = DecodeTransferCall(data)
	require.ErrorIs(t, err, ErrIntentMalformed)
}

func TestNewUserOperationRequestCopiesAndValidates(t *testing.T) {
	target := common.HexToAddress("0x2222222222222222222222222222222222222222")
	callData := []byte{1, 2, 3}

	req, err := NewUserOperationRequest(target, callData, big.NewInt(5))
	require.NoError(t, err)

	callData[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, req.CallData, "request owns its calldata")

	_, err = NewUserOperationRequest(target, nil, big.NewInt(-5))
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewUserOperationRequest(common.Address{}, nil, nil)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestSessionStatusHelpers(t *testing.T) {
	assert.True(t, SessionActive.CanSubmit())
	assert.False(t, SessionAuthenticating.CanSubmit())
	assert.True(t, SessionDisconnected.Settled())
	assert.True(t, SessionActive.Settled())
	assert.False(t, SessionAuthenticating.Settled())
	assert.False(t, SessionFailed.Settled())
}

func TestOperationStateTerminal(t *testing.T) {
	assert.False(t, OperationBuilding.IsTerminal())
	assert.False(t, OperationSubmitted.IsTerminal())
	assert.True(t, OperationConfirmed.IsTerminal())
	assert.True(t, OperationFailed.IsTerminal())
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
	}{
		{name: "zero", amount: "0", decimals: 18, want: "0"},
		{name: "whole", amount: "2000000000000000000", decimals: 18, want: "2"},
		{name: "fraction trims zeros", amount: "1500000000000000000", decimals: 18, want: "1.5"},
		{name: "sub-unit", amount: "1", decimals: 18, want: "0.000000000000000001"},
		{name: "no decimals", amount: "123", decimals: 0, want: "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := new(big.Int).SetString(tt.amount, 10)
			require.True(t, ok)
			assert.Equal(t, tt.want, FormatUnits(amount, tt.decimals))
		})
	}
}
