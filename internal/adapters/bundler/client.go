package bundler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"

	"github.com/halvora/aa-wallet-cli/internal/domain"
	"github.com/halvora/aa-wallet-cli/internal/log"
	"github.com/halvora/aa-wallet-cli/internal/ports"
)

// 4-byte selectors of the contract calls this adapter makes. The account
// exposes execute(address,uint256,bytes); the factory exposes
// createAccount(address,uint256) and getAddress(address,uint256); the
// entrypoint exposes getNonce(address,uint192).
var (
	executeSelector       = []byte{0xb6, 0x1d, 0x27, 0xf6}
	createAccountSelector = []byte{0x5f, 0xbf, 0xb9, 0xcf}
	getAddressSelector    = []byte{0x8c, 0xb8, 0x4e, 0x18}
	getNonceSelector      = []byte{0x35, 0x56, 0x7e, 0x1a}
)

// dummySignature keeps gas estimation honest: 65 bytes shaped like a
// real ECDSA signature, never valid.
const dummySignature = "0x" +
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe" +
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe" +
	"1c"

// Factory provisions bundler-backed account clients. The zero value is
// usable; HTTPClient and RequestTimeout override the defaults for tests.
type Factory struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.AccountClientFactory = Factory{}

// CreateAccountClient resolves the signer's counterfactual account
// address through the factory contract and returns a client bound to
// it. The address is stable across sessions for the same signer.
func (f Factory) CreateAccountClient(ctx context.Context, cfg ports.ProvisionConfig) (ports.AccountClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	if cfg.Signer == nil {
		return nil, errors.New("signer is required")
	}
	if cfg.Chain.EntryPoint == (common.Address{}) || cfg.Chain.AccountFactory == (common.Address{}) {
		return nil, fmt.Errorf("chain %s is missing contract addresses", cfg.Chain.Name)
	}

	caller, err := newRPCCaller(joinEndpoint(cfg.Chain.RPCURL, cfg.APIKey), f.HTTPClient, f.RequestTimeout)
	if err != nil {
		return nil, err
	}

	owner, err := cfg.Signer.SignerAddress(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve signer address: %w", err)
	}

	client := &Client{
		rpc:      caller,
		chain:    cfg.Chain,
		signer:   cfg.Signer,
		policyID: cfg.GasPolicyID,
		owner:    owner,
		log:      log.With("bundler"),
	}

	account, err := client.counterfactualAddress(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve account address: %w", err)
	}
	client.account = account

	client.log.Debug().
		Str("account", account.Hex()).
		Str("owner", owner.Hex()).
		Uint64("chain_id", cfg.Chain.ID).
		Msg("account client provisioned")

	return client, nil
}

// Client talks ERC-4337 to a hosted bundler endpoint for one smart
// account. Gas and paymaster data come from the sponsorship service
// when a policy id is configured, from plain estimation otherwise.
type Client struct {
	rpc      *rpcCaller
	chain    domain.Chain
	signer   ports.SignerAdapter
	policyID string
	owner    common.Address
	account  common.Address
	log      zerolog.Logger
}

var _ ports.AccountClient = (*Client)(nil)

func (c *Client) Address(ctx context.Context) (common.Address, error) {
	return c.account, nil
}

func (c *Client) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	var balance hexutil.Big
	if err := c.rpc.call(ctx, "eth_getBalance", &balance, address.Hex(), "latest"); err != nil {
		return nil, err
	}
	return (*big.Int)(&balance), nil
}

// SendUserOperation wraps the request in the account's execute call,
// fills gas and paymaster data, signs the operation digest with the
// session signer and hands it to the bundler. The returned hash
// identifies the operation, not the eventual transaction.
func (c *Client) SendUserOperation(ctx context.Context, req domain.UserOperationRequest) (string, error) {
	op, err := c.buildOperation(ctx, req)
	if err != nil {
		return "", err
	}

	if err := c.fillGasAndPaymaster(ctx, op); err != nil {
		return "", err
	}

	signature, err := c.signer.SignMessage(ctx, c.operationDigest(op))
	if err != nil {
		return "", fmt.Errorf("sign operation: %w", err)
	}
	op.signature = signature

	var opHash string
	if err := c.rpc.call(ctx, "eth_sendUserOperation", &opHash, op.wire(), c.chain.EntryPoint.Hex()); err != nil {
		return "", err
	}

	c.log.Info().
		Str("op_hash", opHash).
		Str("target", req.Target.Hex()).
		Msg("user operation accepted")
	return opHash, nil
}

// UserOperationReceipt asks the bundler once whether the operation has
// been mined. A null receipt means still pending, not failure.
func (c *Client) UserOperationReceipt(ctx context.Context, opHash string) (string, bool, error) {
	var receipt struct {
		Success bool `json:"success"`
		Receipt struct {
			TransactionHash string `json:"transactionHash"`
		} `json:"receipt"`
	}
	err := c.rpc.call(ctx, "eth_getUserOperationReceipt", &receipt, opHash)
	if errors.Is(err, errNullResult) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !receipt.Success {
		return "", false, fmt.Errorf("operation %s reverted on chain", opHash)
	}
	return receipt.Receipt.TransactionHash, true, nil
}

// userOperation carries the ERC-4337 envelope with numeric fields as
// big integers; wire() renders the JSON form bundlers accept.
type userOperation struct {
	sender               common.Address
	nonce                *big.Int
	initCode             []byte
	callData             []byte
	callGasLimit         *big.Int
	verificationGasLimit *big.Int
	preVerificationGas   *big.Int
	maxFeePerGas         *big.Int
	maxPriorityFeePerGas *big.Int
	paymasterAndData     []byte
	signature            []byte
}

type wireUserOperation struct {
	Sender               string `json:"sender"`
	Nonce                string `json:"nonce"`
	InitCode             string `json:"initCode"`
	CallData             string `json:"callData"`
	CallGasLimit         string `json:"callGasLimit"`
	VerificationGasLimit string `json:"verificationGasLimit"`
	PreVerificationGas   string `json:"preVerificationGas"`
	MaxFeePerGas         string `json:"maxFeePerGas"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas"`
	PaymasterAndData     string `json:"paymasterAndData"`
	Signature            string `json:"signature"`
}

func (op *userOperation) wire() wireUserOperation {
	return wireUserOperation{
		Sender:               op.sender.Hex(),
		Nonce:                hexutil.EncodeBig(op.nonce),
		InitCode:             hexutil.Encode(op.initCode),
		CallData:             hexutil.Encode(op.callData),
		CallGasLimit:         hexutil.EncodeBig(op.callGasLimit),
		VerificationGasLimit: hexutil.EncodeBig(op.verificationGasLimit),
		PreVerificationGas:   hexutil.EncodeBig(op.preVerificationGas),
		MaxFeePerGas:         hexutil.EncodeBig(op.maxFeePerGas),
		MaxPriorityFeePerGas: hexutil.EncodeBig(op.maxPriorityFeePerGas),
		PaymasterAndData:     hexutil.Encode(op.paymasterAndData),
		Signature:            hexutil.Encode(op.signature),
	}
}

func (c *Client) buildOperation(ctx context.Context, req domain.UserOperationRequest) (*userOperation, error) {
	nonce, err := c.accountNonce(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch account nonce: %w", err)
	}

	initCode, err := c.initCodeIfUndeployed(ctx)
	if err != nil {
		return nil, fmt.Errorf("check account deployment: %w", err)
	}

	return &userOperation{
		sender:               c.account,
		nonce:                nonce,
		initCode:             initCode,
		callData:             packExecuteCall(req.Target, req.Value, req.CallData),
		callGasLimit:         new(big.Int),
		verificationGasLimit: new(big.Int),
		preVerificationGas:   new(big.Int),
		maxFeePerGas:         new(big.Int),
		maxPriorityFeePerGas: new(big.Int),
	}, nil
}

// fillGasAndPaymaster completes the envelope. With a sponsorship policy
// the gas manager returns both the gas fields and paymasterAndData in
// one call; without one, the bundler estimates and the account pays.
func (c *Client) fillGasAndPaymaster(ctx context.Context, op *userOperation) error {
	if c.policyID != "" {
		return c.requestSponsorship(ctx, op)
	}
	return c.estimateGas(ctx, op)
}

func (c *Client) requestSponsorship(ctx context.Context, op *userOperation) error {
	wire := op.wire()
	wire.Signature = dummySignature

	var result struct {
		PaymasterAndData     hexutil.Bytes `json:"paymasterAndData"`
		CallGasLimit         hexutil.Big   `json:"callGasLimit"`
		VerificationGasLimit hexutil.Big   `json:"verificationGasLimit"`
		PreVerificationGas   hexutil.Big   `json:"preVerificationGas"`
		MaxFeePerGas         hexutil.Big   `json:"maxFeePerGas"`
		MaxPriorityFeePerGas hexutil.Big   `json:"maxPriorityFeePerGas"`
	}
	params := map[string]any{
		"policyId":       c.policyID,
		"entryPoint":     c.chain.EntryPoint.Hex(),
		"dummySignature": dummySignature,
		"userOperation":  wire,
	}
	if err := c.rpc.call(ctx, "alchemy_requestGasAndPaymasterAndData", &result, params); err != nil {
		return fmt.Errorf("request gas sponsorship: %w", err)
	}

	op.paymasterAndData = result.PaymasterAndData
	op.callGasLimit = (*big.Int)(&result.CallGasLimit)
	op.verificationGasLimit = (*big.Int)(&result.VerificationGasLimit)
	op.preVerificationGas = (*big.Int)(&result.PreVerificationGas)
	op.maxFeePerGas = (*big.Int)(&result.MaxFeePerGas)
	op.maxPriorityFeePerGas = (*big.Int)(&result.MaxPriorityFeePerGas)
	return nil
}

func (c *Client) estimateGas(ctx context.Context, op *userOperation) error {
	var priority hexutil.Big
	if err := c.rpc.call(ctx, "eth_maxPriorityFeePerGas", &priority); err != nil {
		return fmt.Errorf("fetch priority fee: %w", err)
	}
	var gasPrice hexutil.Big
	if err := c.rpc.call(ctx, "eth_gasPrice", &gasPrice); err != nil {
		return fmt.Errorf("fetch gas price: %w", err)
	}
	op.maxPriorityFeePerGas = (*big.Int)(&priority)
	op.maxFeePerGas = (*big.Int)(&gasPrice)

	wire := op.wire()
	wire.Signature = dummySignature

	var estimate struct {
		CallGasLimit         hexutil.Big `json:"callGasLimit"`
		VerificationGasLimit hexutil.Big `json:"verificationGasLimit"`
		PreVerificationGas   hexutil.Big `json:"preVerificationGas"`
	}
	if err := c.rpc.call(ctx, "eth_estimateUserOperationGas", &estimate, wire, c.chain.EntryPoint.Hex()); err != nil {
		return fmt.Errorf("estimate operation gas: %w", err)
	}
	op.callGasLimit = (*big.Int)(&estimate.CallGasLimit)
	op.verificationGasLimit = (*big.Int)(&estimate.VerificationGasLimit)
	op.preVerificationGas = (*big.Int)(&estimate.PreVerificationGas)
	return nil
}

// operationDigest computes the canonical v0.6 operation hash:
// keccak256(abi.encode(keccak256(packedOp), entryPoint, chainId)).
func (c *Client) operationDigest(op *userOperation) []byte {
	packed := bytes.Join([][]byte{
		common.LeftPadBytes(op.sender.Bytes(), 32),
		common.LeftPadBytes(op.nonce.Bytes(), 32),
		crypto.Keccak256(op.initCode),
		crypto.Keccak256(op.callData),
		common.LeftPadBytes(op.callGasLimit.Bytes(), 32),
		common.LeftPadBytes(op.verificationGasLimit.Bytes(), 32),
		common.LeftPadBytes(op.preVerificationGas.Bytes(), 32),
		common.LeftPadBytes(op.maxFeePerGas.Bytes(), 32),
		common.LeftPadBytes(op.maxPriorityFeePerGas.Bytes(), 32),
		crypto.Keccak256(op.paymasterAndData),
	}, nil)

	outer := bytes.Join([][]byte{
		crypto.Keccak256(packed),
		common.LeftPadBytes(c.chain.EntryPoint.Bytes(), 32),
		common.LeftPadBytes(new(big.Int).SetUint64(c.chain.ID).Bytes(), 32),
	}, nil)
	return crypto.Keccak256(outer)
}

func (c *Client) counterfactualAddress(ctx context.Context) (common.Address, error) {
	data := bytes.Join([][]byte{
		getAddressSelector,
		common.LeftPadBytes(c.owner.Bytes(), 32),
		common.LeftPadBytes(nil, 32), // salt 0
	}, nil)

	raw, err := c.ethCall(ctx, c.chain.AccountFactory, data)
	if err != nil {
		return common.Address{}, err
	}
	if len(raw) != 32 {
		return common.Address{}, fmt.Errorf("unexpected getAddress result length %d", len(raw))
	}
	address := common.BytesToAddress(raw[12:])
	if address == (common.Address{}) {
		return common.Address{}, errors.New("factory returned zero address")
	}
	return address, nil
}

func (c *Client) accountNonce(ctx context.Context) (*big.Int, error) {
	data := bytes.Join([][]byte{
		getNonceSelector,
		common.LeftPadBytes(c.account.Bytes(), 32),
		common.LeftPadBytes(nil, 32), // nonce key 0
	}, nil)

	raw, err := c.ethCall(ctx, c.chain.EntryPoint, data)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

// initCodeIfUndeployed returns factory‖createAccount(owner, 0) until the
// account contract exists on chain, empty afterwards.
func (c *Client) initCodeIfUndeployed(ctx context.Context) ([]byte, error) {
	var code hexutil.Bytes
	if err := c.rpc.call(ctx, "eth_getCode", &code, c.account.Hex(), "latest"); err != nil {
		return nil, err
	}
	if len(code) > 0 {
		return nil, nil
	}

	return bytes.Join([][]byte{
		c.chain.AccountFactory.Bytes(),
		createAccountSelector,
		common.LeftPadBytes(c.owner.Bytes(), 32),
		common.LeftPadBytes(nil, 32),
	}, nil), nil
}

func (c *Client) ethCall(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	var result hexutil.Bytes
	call := map[string]any{
		"to":   to.Hex(),
		"data": hexutil.Encode(data),
	}
	if err := c.rpc.call(ctx, "eth_call", &result, call, "latest"); err != nil {
		return nil, err
	}
	return result, nil
}

// packExecuteCall encodes execute(target, value, data) with the dynamic
// bytes argument placed after the three head words.
func packExecuteCall(target common.Address, value *big.Int, data []byte) []byte {
	if value == nil {
		value = new(big.Int)
	}

	padded := len(data)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}

	out := bytes.Join([][]byte{
		executeSelector,
		common.LeftPadBytes(target.Bytes(), 32),
		common.LeftPadBytes(value.Bytes(), 32),
		common.LeftPadBytes(big.NewInt(96).Bytes(), 32),
		common.LeftPadBytes(big.NewInt(int64(len(data))).Bytes(), 32),
	}, nil)
	out = append(out, common.RightPadBytes(data, padded)...)
	return out
}
