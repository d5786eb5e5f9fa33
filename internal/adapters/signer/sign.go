package signer

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// personalDigest applies the EIP-191 personal-message prefix. Smart
// account owner validation recovers against this prefixed hash, so both
// signer adapters sign it rather than the raw digest.
func personalDigest(digest []byte) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(digest))
	return crypto.Keccak256(append([]byte(prefix), digest...))
}

// signDigest produces a 65-byte [R‖S‖V] signature with V in {27, 28}.
func signDigest(key *ecdsa.PrivateKey, digest []byte) ([]byte, error) {
	sig, err := crypto.Sign(personalDigest(digest), key)
	if err != nil {
		return nil, fmt.Errorf("sign digest: %w", err)
	}
	sig[64] += 27
	return sig, nil
}
