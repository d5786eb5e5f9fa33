package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvora/aa-wallet-cli/internal/domain"
	"github.com/halvora/aa-wallet-cli/internal/version"
)

// hardhat development key #0, public and long since burned.
const (
	testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testOwnerHex   = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

var (
	testAccount    = common.HexToAddress("0x692be0A2Aabb8a72AE17479FC096ce0032e78954")
	testEntryPoint = common.HexToAddress("0x5FF137D4b0FDCD49DcA30c7CF57E578a026d2789")
	testFactory    = common.HexToAddress("0x00004EC70002a32400f8ae005A26081065620D20")
)

func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	root.SetIn(bytes.NewReader(nil))

	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

// newBundlerStub serves JSON-RPC on any path so the api-key path
// segment the client appends does not matter. eth_call is routed by
// callee, everything else by method; unrouted calls fail the test.
func newBundlerStub(t *testing.T, methods map[string]any, calls map[common.Address]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     any               `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var result any
		if req.Method == "eth_call" {
			var call struct {
				To string `json:"to"`
			}
			require.NoError(t, json.Unmarshal(req.Params[0], &call))
			routed, ok := calls[common.HexToAddress(call.To)]
			require.True(t, ok, "unexpected eth_call to %s", call.To)
			result = routed
		} else {
			routed, ok := methods[req.Method]
			require.True(t, ok, "unrouted rpc method %s", req.Method)
			result = routed
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		}))
	}))
}

func setupWallet(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AW_SIGNER", "local")

	out, err := executeCLI(t, "auth", "import-key", "--private-key", testPrivateKey)
	require.NoError(t, err)
	require.Contains(t, out, testOwnerHex)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version.Version)
}

func TestAuthSetAPIKeyRequiresValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := executeCLI(t, "auth", "set-api-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value")
}

func TestAuthShowPrintsSignerAddress(t *testing.T) {
	setupWallet(t)

	out, err := executeCLI(t, "auth", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "signer: "+testOwnerHex)
}

func TestAuthForgetRemovesCredentials(t *testing.T) {
	setupWallet(t)

	out, err := executeCLI(t, "auth", "forget")
	require.NoError(t, err)
	assert.Contains(t, out, "credentials removed")

	_, err = executeCLI(t, "status")
	require.Error(t, err)
}

func TestStatusWithoutAPIKeyFails(t *testing.T) {
	setupWallet(t)

	_, err := executeCLI(t, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AW_API_KEY")
}

func TestStatusUnknownChain(t *testing.T) {
	setupWallet(t)
	t.Setenv("AW_API_KEY", "test-key")
	t.Setenv("AW_CHAIN", "no-such-chain")

	_, err := executeCLI(t, "status")
	require.ErrorIs(t, err, domain.ErrUnknownChain)
}

func TestStatusJSONAgainstStubbedBundler(t *testing.T) {
	setupWallet(t)

	stub := newBundlerStub(t,
		map[string]any{
			"eth_getBalance": "0xde0b6b3a7640000", // 1 ETH
		},
		map[common.Address]string{
			testFactory: hexutil.Encode(common.LeftPadBytes(testAccount.Bytes(), 32)),
		},
	)
	defer stub.Close()

	t.Setenv("AW_API_KEY", "test-key")
	t.Setenv("AW_CHAIN", "sepolia")
	t.Setenv("AW_RPC_URL", stub.URL)

	out, err := executeCLI(t, "status", "--json")
	require.NoError(t, err)

	var payload sessionJSON
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, string(domain.SessionActive), payload.Status)
	assert.Equal(t, testAccount.Hex(), payload.Account)
	assert.Equal(t, "1000000000000000000", payload.Balance)
	assert.Equal(t, uint64(11155111), payload.ChainID)
}

func TestTransferConfirmsAgainstStubbedBundler(t *testing.T) {
	setupWallet(t)

	stub := newBundlerStub(t,
		map[string]any{
			"eth_getBalance":           "0xde0b6b3a7640000",
			"eth_getCode":              "0x6080",
			"eth_maxPriorityFeePerGas": "0x3b9aca00",
			"eth_gasPrice":             "0x77359400",
			"eth_estimateUserOperationGas": map[string]string{
				"callGasLimit":         "0x55f0",
				"verificationGasLimit": "0x186a0",
				"preVerificationGas":   "0xafc8",
			},
			"eth_sendUserOperation": "0xoperation",
			"eth_getUserOperationReceipt": map[string]any{
				"success": true,
				"receipt": map[string]string{"transactionHash": "0xmined"},
			},
		},
		map[common.Address]string{
			testFactory:    hexutil.Encode(common.LeftPadBytes(testAccount.Bytes(), 32)),
			testEntryPoint: hexutil.Encode(common.LeftPadBytes([]byte{0x07}, 32)),
		},
	)
	defer stub.Close()

	t.Setenv("AW_API_KEY", "test-key")
	t.Setenv("AW_CHAIN", "sepolia")
	t.Setenv("AW_RPC_URL", stub.URL)

	out, err := executeCLI(t, "transfer", "--to", "0x1111111111111111111111111111111111111111", "--amount", "250000000000000000")
	require.NoError(t, err)
	assert.Contains(t, out, "submitted: 0xoperation")
	assert.Contains(t, out, "confirmed: 0xmined")
}

func TestTransferRejectsBadRecipient(t *testing.T) {
	setupWallet(t)

	stub := newBundlerStub(t,
		map[string]any{"eth_getBalance": "0x0"},
		map[common.Address]string{
			testFactory: hexutil.Encode(common.LeftPadBytes(testAccount.Bytes(), 32)),
		},
	)
	defer stub.Close()

	t.Setenv("AW_API_KEY", "test-key")
	t.Setenv("AW_RPC_URL", stub.URL)

	_, err := executeCLI(t, "transfer", "--to", "not-an-address", "--amount", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient")
}

func TestRelayRequiresOrigin(t *testing.T) {
	setupWallet(t)

	_, err := executeCLI(t, "relay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origin")
}

func TestChainsListShowsBuiltins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := executeCLI(t, "chains", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sepolia")
	assert.Contains(t, out, "11155111")
	assert.Contains(t, out, "base")
}

func TestChainsAddThenStatusUsesOverride(t *testing.T) {
	setupWallet(t)

	stub := newBundlerStub(t,
		map[string]any{
			"eth_getBalance": "0x0",
		},
		map[common.Address]string{
			testFactory: hexutil.Encode(common.LeftPadBytes(testAccount.Bytes(), 32)),
		},
	)
	defer stub.Close()

	out, err := executeCLI(t, "chains", "add",
		"--id", "31337",
		"--name", "devnet",
		"--rpc-url", stub.URL,
		"--entry-point", testEntryPoint.Hex(),
		"--account-factory", testFactory.Hex(),
	)
	require.NoError(t, err)
	assert.Contains(t, out, "devnet")

	t.Setenv("AW_API_KEY", "test-key")
	t.Setenv("AW_CHAIN", "devnet")

	jsonOut, err := executeCLI(t, "status", "--json")
	require.NoError(t, err)

	var payload sessionJSON
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &payload))
	assert.Equal(t, uint64(31337), payload.ChainID)
}
