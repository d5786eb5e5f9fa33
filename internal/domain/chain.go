package domain

import "github.com/ethereum/go-ethereum/common"

// Chain describes one supported network: where its bundler RPC lives,
// which entrypoint and account factory contracts to use, and how its
// native unit is rendered.
type Chain struct {
	ID             uint64
	Name           string
	RPCURL         string
	EntryPoint     common.Address
	AccountFactory common.Address
	NativeSymbol   string
	NativeDecimals int
}
