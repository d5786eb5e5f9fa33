package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Identity is the provider-supplied metadata of an authenticated signer.
type Identity struct {
	DisplayName string
	Email       string
}

// SignerAdapter wraps an external authentication provider and the signing
// capability it yields. Authenticate may drive a popup or redirect flow
// and can be slow; every method honours ctx. IdentityInfo, SignerAddress
// and SignMessage fail with domain.ErrNotAuthenticated before a
// successful Authenticate.
type SignerAdapter interface {
	Authenticate(ctx context.Context) error
	IdentityInfo(ctx context.Context) (Identity, error)
	SignerAddress(ctx context.Context) (common.Address, error)
	SignMessage(ctx context.Context, digest []byte) ([]byte, error)
	Logout(ctx context.Context) error
}
