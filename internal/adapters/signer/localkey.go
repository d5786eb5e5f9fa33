package signer

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/halvora/aa-wallet-cli/internal/domain"
	"github.com/halvora/aa-wallet-cli/internal/ports"
)

// SigningKeyRef is where the local signer keeps its secp256k1 key.
const SigningKeyRef = "wallet://signing-key"

// LocalKeySigner owns a raw secp256k1 key loaded from the secret store.
// It never prompts; Authenticate fails when no key has been imported.
type LocalKeySigner struct {
	store       ports.SecretStore
	displayName string

	mu  sync.Mutex
	key *ecdsa.PrivateKey
}

var _ ports.SignerAdapter = (*LocalKeySigner)(nil)

func NewLocalKeySigner(store ports.SecretStore, displayName string) *LocalKeySigner {
	return &LocalKeySigner{store: store, displayName: displayName}
}

// ImportKey validates and stores a hex-encoded private key so that a
// later Authenticate can load it. A leading 0x is accepted.
func ImportKey(ctx context.Context, store ports.SecretStore, hexKey string) (common.Address, error) {
	key, err := parsePrivateKey(hexKey)
	if err != nil {
		return common.Address{}, err
	}
	if err := store.Put(ctx, SigningKeyRef, common.Bytes2Hex(crypto.FromECDSA(key))); err != nil {
		return common.Address{}, fmt.Errorf("store signing key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

func (s *LocalKeySigner) Authenticate(ctx context.Context) error {
	raw, err := s.store.Get(ctx, SigningKeyRef)
	if err != nil {
		return fmt.Errorf("load signing key: %w", err)
	}
	key, err := parsePrivateKey(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.key = key
	s.mu.Unlock()
	return nil
}

func (s *LocalKeySigner) IdentityInfo(ctx context.Context) (ports.Identity, error) {
	key, err := s.currentKey()
	if err != nil {
		return ports.Identity{}, err
	}

	name := s.displayName
	if name == "" {
		name = shortAddress(crypto.PubkeyToAddress(key.PublicKey))
	}
	return ports.Identity{DisplayName: name}, nil
}

func (s *LocalKeySigner) SignerAddress(ctx context.Context) (common.Address, error) {
	key, err := s.currentKey()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

func (s *LocalKeySigner) SignMessage(ctx context.Context, digest []byte) ([]byte, error) {
	key, err := s.currentKey()
	if err != nil {
		return nil, err
	}
	return signDigest(key, digest)
}

func (s *LocalKeySigner) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.key = nil
	s.mu.Unlock()
	return nil
}

func (s *LocalKeySigner) currentKey() (*ecdsa.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.key, nil
}

func parsePrivateKey(raw string) (*ecdsa.PrivateKey, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if trimmed == "" {
		return nil, errors.New("signing key is empty")
	}
	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return key, nil
}

func shortAddress(addr common.Address) string {
	hex := addr.Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}
