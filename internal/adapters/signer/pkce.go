package signer

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

const pkceChallengeMethodS256 = "S256"

type pkcePair struct {
	verifier  string
	challenge string
}

func newPKCEPair() (pkcePair, error) {
	verifierBytes := make([]byte, 32)
	if _, err := rand.Read(verifierBytes); err != nil {
		return pkcePair{}, err
	}

	verifier := base64.RawURLEncoding.EncodeToString(verifierBytes)
	hash := sha256.Sum256([]byte(verifier))

	return pkcePair{
		verifier:  verifier,
		challenge: base64.RawURLEncoding.EncodeToString(hash[:]),
	}, nil
}

func newState() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
