package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseAmount parses a human-supplied decimal string into an exact
// integer amount in the chain's smallest unit. Anything that is not a
// plain non-negative base-10 integer is rejected; there is no rounding
// and no floating point on this path.
func ParseAmount(raw string) (*big.Int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty amount: %w", ErrInvalidAmount)
	}

	amount, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("amount %q is not a base-10 integer: %w", trimmed, ErrInvalidAmount)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("amount %q is negative: %w", trimmed, ErrInvalidAmount)
	}

	return amount, nil
}

// ParseAddress parses a 0x-prefixed hex address and rejects anything
// else, including the zero address.
func ParseAddress(raw string) (common.Address, error) {
	trimmed := strings.TrimSpace(raw)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, fmt.Errorf("address %q: %w", trimmed, ErrInvalidAddress)
	}

	addr := common.HexToAddress(trimmed)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("zero address: %w", ErrInvalidAddress)
	}

	return addr, nil
}

// FormatUnits renders an integer amount in smallest units as a decimal
// string with the given number of fractional digits, trimming trailing
// zeros. Rendering stays in integer arithmetic.
func FormatUnits(amount *big.Int, decimals int) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}
	if decimals <= 0 {
		return amount.String()
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(amount, scale, new(big.Int))
	if frac.Sign() == 0 {
		return whole.String()
	}

	fracDigits := strings.TrimRight(fmt.Sprintf("%0*s", decimals, frac.String()), "0")
	return whole.String() + "." + fracDigits
}
