package chainreg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvora/aa-wallet-cli/internal/domain"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chains.toml")

	cfg := viper.New()
	cfg.Set(chainsPathKey, path)

	registry, err := NewRegistry(cfg)
	require.NoError(t, err)
	return registry, path
}

func TestLookupBuiltinByNameAndID(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	chain, err := registry.Lookup(ctx, "sepolia")
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), chain.ID)
	assert.Equal(t, defaultEntryPoint, chain.EntryPoint)
	assert.Equal(t, 18, chain.NativeDecimals)

	upper, err := registry.Lookup(ctx, "SEPOLIA")
	require.NoError(t, err)
	assert.Equal(t, chain, upper)

	byID, err := registry.Lookup(ctx, "8453")
	require.NoError(t, err)
	assert.Equal(t, "base", byID.Name)
}

func TestLookupUnknownChain(t *testing.T) {
	registry, _ := newTestRegistry(t)

	_, err := registry.Lookup(context.Background(), "gnosis")
	require.ErrorIs(t, err, domain.ErrUnknownChain)
}

func TestSaveCustomChainRoundTrip(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	custom := domain.Chain{
		ID:             31337,
		Name:           "anvil",
		RPCURL:         "http://127.0.0.1:8545",
		EntryPoint:     defaultEntryPoint,
		AccountFactory: defaultAccountFactory,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	}
	require.NoError(t, registry.Save(ctx, custom))

	loaded, err := registry.Lookup(ctx, "anvil")
	require.NoError(t, err)
	assert.Equal(t, custom, loaded)

	chains, err := registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, chains, len(builtinChains)+1)
}

func TestSaveOverridesBuiltinByID(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	override, err := registry.Lookup(ctx, "sepolia")
	require.NoError(t, err)
	override.RPCURL = "https://sepolia.example/rpc"
	require.NoError(t, registry.Save(ctx, override))

	loaded, err := registry.Lookup(ctx, "sepolia")
	require.NoError(t, err)
	assert.Equal(t, "https://sepolia.example/rpc", loaded.RPCURL)

	chains, err := registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, chains, len(builtinChains), "override replaces, not appends")
}

func TestListRejectsNewerSchemaVersion(t *testing.T) {
	registry, path := newTestRegistry(t)
	require.NoError(t, os.WriteFile(path, []byte("version = 99\n"), 0o600))

	_, err := registry.List(context.Background())
	require.ErrorContains(t, err, "unsupported chains schema version")
}

func TestListRejectsEntryWithBadAddress(t *testing.T) {
	registry, path := newTestRegistry(t)
	content := `version = 1

[[chains]]
id = 7
name = "broken"
rpc_url = "http://localhost:1"
entry_point = "not-an-address"
account_factory = "` + common.Address{}.Hex() + `"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := registry.List(context.Background())
	require.ErrorContains(t, err, "entry point")
}

func TestChainsFileWrittenWithTightPermissions(t *testing.T) {
	registry, path := newTestRegistry(t)

	require.NoError(t, registry.Save(context.Background(), builtinChains[0]))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
