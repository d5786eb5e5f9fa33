package domain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// transferSelector is the 4-byte selector of transfer(address,uint256),
// keccak256("transfer(address,uint256)")[:4].
var transferSelector = []byte{0xa9, 0x05, 0x9c, 0xbb}

const transferCallLength = 4 + 32 + 32

// EncodeTransferCall builds the calldata for a standard token transfer:
// selector, then the recipient and amount ABI-encoded as 32-byte words.
func EncodeTransferCall(to common.Address, amount *big.Int) ([]byte, error) {
	if to == (common.Address{}) {
		return nil, fmt.Errorf("zero recipient: %w", ErrInvalidAddress)
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, fmt.Errorf("transfer amount: %w", ErrInvalidAmount)
	}
	if amount.BitLen() > 256 {
		return nil, fmt.Errorf("transfer amount exceeds uint256: %w", ErrInvalidAmount)
	}

	data := make([]byte, 0, transferCallLength)
	data = append(data, transferSelector...)
	data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), 32)...)
	return data, nil
}

// DecodeTransferCall recovers the recipient and amount from calldata
// produced by EncodeTransferCall.
func DecodeTransferCall(data []byte) (common.Address, *big.Int, error) {
	if len(data) != transferCallLength {
		return common.Address{}, nil, fmt.Errorf("calldata length %d: %w", len(data), ErrIntentMalformed)
	}
	for i, b := range transferSelector {
		if data[i] != b {
			return common.Address{}, nil, fmt.Errorf("not a transfer call: %w", ErrIntentMalformed)
		}
	}

	to := common.BytesToAddress(data[4:36])
	amount := new(big.Int).SetBytes(data[36:68])
	return to, amount, nil
}
