package chainreg

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/halvora/aa-wallet-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Chains  []chainSchema `toml:"chains"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported chains schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	return nil
}

type chainSchema struct {
	ID             uint64 `toml:"id"`
	Name           string `toml:"name"`
	RPCURL         string `toml:"rpc_url"`
	EntryPoint     string `toml:"entry_point"`
	AccountFactory string `toml:"account_factory"`
	NativeSymbol   string `toml:"native_symbol"`
	NativeDecimals int    `toml:"native_decimals,omitempty"`
}

func toSchema(chain domain.Chain) chainSchema {
	return chainSchema{
		ID:             chain.ID,
		Name:           chain.Name,
		RPCURL:         chain.RPCURL,
		EntryPoint:     chain.EntryPoint.Hex(),
		AccountFactory: chain.AccountFactory.Hex(),
		NativeSymbol:   chain.NativeSymbol,
		NativeDecimals: chain.NativeDecimals,
	}
}

func fromSchema(entry chainSchema) (domain.Chain, error) {
	if entry.ID == 0 {
		return domain.Chain{}, fmt.Errorf("chain %q has no id", entry.Name)
	}
	if entry.Name == "" {
		return domain.Chain{}, fmt.Errorf("chain %d has no name", entry.ID)
	}
	if !common.IsHexAddress(entry.EntryPoint) {
		return domain.Chain{}, fmt.Errorf("chain %q entry point %q is not an address", entry.Name, entry.EntryPoint)
	}
	if !common.IsHexAddress(entry.AccountFactory) {
		return domain.Chain{}, fmt.Errorf("chain %q account factory %q is not an address", entry.Name, entry.AccountFactory)
	}

	decimals := entry.NativeDecimals
	if decimals == 0 {
		decimals = 18
	}
	symbol := entry.NativeSymbol
	if symbol == "" {
		symbol = "ETH"
	}

	return domain.Chain{
		ID:             entry.ID,
		Name:           entry.Name,
		RPCURL:         entry.RPCURL,
		EntryPoint:     common.HexToAddress(entry.EntryPoint),
		AccountFactory: common.HexToAddress(entry.AccountFactory),
		NativeSymbol:   symbol,
		NativeDecimals: decimals,
	}, nil
}
