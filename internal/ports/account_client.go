package ports

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/halvora/aa-wallet-cli/internal/domain"
)

// AccountClient is the handle to one provisioned smart account on one
// chain. All methods are opaque network calls; any backend rejection of
// a well-formed operation surfaces as domain.ErrSubmissionFailed from
// the caller's perspective.
type AccountClient interface {
	Address(ctx context.Context) (common.Address, error)
	Balance(ctx context.Context, address common.Address) (*big.Int, error)
	SendUserOperation(ctx context.Context, req domain.UserOperationRequest) (opHash string, err error)
	// UserOperationReceipt polls once for the mined transaction of a
	// previously accepted operation. found is false while the bundler has
	// not yet included it.
	UserOperationReceipt(ctx context.Context, opHash string) (txHash string, found bool, err error)
}

// ProvisionConfig carries everything needed to bind a smart account to
// an authenticated signer on a chain.
type ProvisionConfig struct {
	APIKey      string
	Chain       domain.Chain
	Signer      SignerAdapter
	GasPolicyID string
}

// AccountClientFactory provisions an account client for a signer. The
// session manager owns the returned handle for the session's lifetime.
type AccountClientFactory interface {
	CreateAccountClient(ctx context.Context, cfg ProvisionConfig) (AccountClient, error)
}
