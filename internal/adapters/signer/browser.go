package signer

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/hkdf"

	"github.com/halvora/aa-wallet-cli/internal/domain"
	"github.com/halvora/aa-wallet-cli/internal/log"
	"github.com/halvora/aa-wallet-cli/internal/ports"
)

const (
	// DeviceSecretRef stores the random per-device secret that, mixed
	// with the provider subject, yields the signing key. Losing it means
	// a new key and a new account.
	DeviceSecretRef = "wallet://device-secret"

	keyDerivationInfo    = "aa-wallet signing key v1"
	maxTokenBytes        = 1 << 20
	defaultFlowTimeout   = 5 * time.Minute
	defaultRequestScopes = "openid profile email"
)

// BrowserConfig wires the social-login signer to an OpenID provider.
type BrowserConfig struct {
	Issuer   string
	AuthURL  string // defaults to Issuer + "/authorize"
	ClientID string
	Scopes   []string

	ListenAddr      string
	CallbackTimeout time.Duration
	OpenBrowser     func(url string) error
	HTTPClient      *http.Client
}

// BrowserSigner authenticates through a browser OAuth flow with PKCE
// and derives a deterministic secp256k1 key from the provider subject
// and a per-device secret. The key never leaves the process.
type BrowserSigner struct {
	cfg   BrowserConfig
	store ports.SecretStore
	log   zerolog.Logger

	mu       sync.Mutex
	key      *ecdsa.PrivateKey
	identity ports.Identity
}

var _ ports.SignerAdapter = (*BrowserSigner)(nil)

func NewBrowserSigner(cfg BrowserConfig, store ports.SecretStore) *BrowserSigner {
	if cfg.AuthURL == "" && cfg.Issuer != "" {
		cfg.AuthURL = strings.TrimRight(cfg.Issuer, "/") + "/authorize"
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = strings.Fields(defaultRequestScopes)
	}
	if cfg.CallbackTimeout <= 0 {
		cfg.CallbackTimeout = defaultFlowTimeout
	}
	return &BrowserSigner{cfg: cfg, store: store, log: log.With("signer")}
}

// Authenticate runs the full flow: open the provider's consent page,
// wait for the loopback redirect, exchange the code, then derive the
// signing key from the id-token subject.
func (s *BrowserSigner) Authenticate(ctx context.Context) error {
	if s.cfg.ClientID == "" {
		return errors.New("oauth client id is required")
	}
	if s.cfg.Issuer == "" {
		return errors.New("oauth issuer is required")
	}

	pkce, err := newPKCEPair()
	if err != nil {
		return fmt.Errorf("generate pkce pair: %w", err)
	}
	state, err := newState()
	if err != nil {
		return fmt.Errorf("generate state: %w", err)
	}

	cb, err := startCallbackServer(s.cfg.ListenAddr, state)
	if err != nil {
		return err
	}

	authURL, err := authorizationURL(s.cfg, cb.redirectURI(), state, pkce.challenge)
	if err != nil {
		_ = cb.close()
		return err
	}

	if s.cfg.OpenBrowser != nil {
		if err := s.cfg.OpenBrowser(authURL); err != nil {
			s.log.Warn().Err(err).Msg("could not open browser, continue manually")
		}
	}
	s.log.Info().Str("url", authURL).Msg("complete sign-in in your browser")

	code, err := cb.waitForCode(ctx, s.cfg.CallbackTimeout)
	if err != nil {
		return fmt.Errorf("wait for authorization: %w", err)
	}

	tokens, err := exchangeCode(ctx, s.httpClient(), s.cfg, cb.redirectURI(), code, pkce.verifier)
	if err != nil {
		return err
	}

	claims, err := parseIDTokenClaims(tokens.IDToken)
	if err != nil {
		return err
	}

	key, err := s.deriveKey(ctx, claims.Subject)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.key = key
	s.identity = ports.Identity{DisplayName: claims.Name, Email: claims.Email}
	if s.identity.DisplayName == "" {
		s.identity.DisplayName = claims.Email
	}
	s.mu.Unlock()

	s.log.Info().
		Str("signer", crypto.PubkeyToAddress(key.PublicKey).Hex()).
		Msg("signer authenticated")
	return nil
}

func (s *BrowserSigner) IdentityInfo(ctx context.Context) (ports.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return ports.Identity{}, domain.ErrNotAuthenticated
	}
	return s.identity, nil
}

func (s *BrowserSigner) SignerAddress(ctx context.Context) (common.Address, error) {
	key, err := s.currentKey()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

func (s *BrowserSigner) SignMessage(ctx context.Context, digest []byte) ([]byte, error) {
	key, err := s.currentKey()
	if err != nil {
		return nil, err
	}
	return signDigest(key, digest)
}

func (s *BrowserSigner) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.key = nil
	s.identity = ports.Identity{}
	s.mu.Unlock()
	return nil
}

func (s *BrowserSigner) currentKey() (*ecdsa.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.key, nil
}

func (s *BrowserSigner) httpClient() *http.Client {
	if s.cfg.HTTPClient != nil {
		return s.cfg.HTTPClient
	}
	return http.DefaultClient
}

// deriveKey stretches HKDF(device secret, subject) onto the secp256k1
// scalar field. The same subject on the same device always yields the
// same key, so the smart account address is stable across sessions.
func (s *BrowserSigner) deriveKey(ctx context.Context, subject string) (*ecdsa.PrivateKey, error) {
	if subject == "" {
		return nil, errors.New("id token subject is empty")
	}

	secret, err := s.deviceSecret(ctx)
	if err != nil {
		return nil, err
	}

	reader := hkdf.New(sha256.New, secret, []byte(subject), []byte(keyDerivationInfo))
	seed := make([]byte, 32)
	if _, err := io.ReadFull(reader, seed); err != nil {
		return nil, fmt.Errorf("derive key material: %w", err)
	}

	order := crypto.S256().Params().N
	scalar := new(big.Int).SetBytes(seed)
	scalar.Mod(scalar, new(big.Int).Sub(order, big.NewInt(1)))
	scalar.Add(scalar, big.NewInt(1))

	key, err := crypto.ToECDSA(common.LeftPadBytes(scalar.Bytes(), 32))
	if err != nil {
		return nil, fmt.Errorf("materialize signing key: %w", err)
	}
	return key, nil
}

func (s *BrowserSigner) deviceSecret(ctx context.Context) ([]byte, error) {
	stored, err := s.store.Get(ctx, DeviceSecretRef)
	if err == nil && stored != "" {
		return base64.RawStdEncoding.DecodeString(stored)
	}

	fresh := make([]byte, 32)
	if _, err := rand.Read(fresh); err != nil {
		return nil, fmt.Errorf("generate device secret: %w", err)
	}
	if err := s.store.Put(ctx, DeviceSecretRef, base64.RawStdEncoding.EncodeToString(fresh)); err != nil {
		return nil, fmt.Errorf("persist device secret: %w", err)
	}
	return fresh, nil
}

func authorizationURL(cfg BrowserConfig, redirectURI, state, challenge string) (string, error) {
	parsed, err := url.Parse(cfg.AuthURL)
	if err != nil {
		return "", fmt.Errorf("parse auth url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("auth url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("auth url host is required")
	}

	q := parsed.Query()
	q.Set("response_type", "code")
	q.Set("client_id", cfg.ClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", strings.Join(cfg.Scopes, " "))
	q.Set("state", state)
	q.Set("code_challenge", challenge)
	q.Set("code_challenge_method", pkceChallengeMethodS256)
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

type exchangedTokens struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func exchangeCode(ctx context.Context, client *http.Client, cfg BrowserConfig, redirectURI, code, verifier string) (exchangedTokens, error) {
	endpoint := strings.TrimRight(cfg.Issuer, "/") + "/oauth/token"

	values := url.Values{}
	values.Set("grant_type", "authorization_code")
	values.Set("code", code)
	values.Set("redirect_uri", redirectURI)
	values.Set("client_id", cfg.ClientID)
	values.Set("code_verifier", verifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return exchangedTokens{}, fmt.Errorf("create token exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return exchangedTokens{}, fmt.Errorf("exchange code for tokens: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return exchangedTokens{}, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokens exchangedTokens
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxTokenBytes)).Decode(&tokens); err != nil {
		return exchangedTokens{}, fmt.Errorf("decode token response: %w", err)
	}
	if tokens.AccessToken == "" || tokens.IDToken == "" {
		return exchangedTokens{}, errors.New("token response missing required fields")
	}
	return tokens, nil
}

type idTokenClaims struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// parseIDTokenClaims extracts the payload without signature
// verification: the token arrived over TLS directly from the issuer's
// token endpoint in exchange for our one-time code.
func parseIDTokenClaims(idToken string) (idTokenClaims, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return idTokenClaims{}, errors.New("malformed id token")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return idTokenClaims{}, fmt.Errorf("decode id token payload: %w", err)
	}
	var claims idTokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return idTokenClaims{}, fmt.Errorf("parse id token claims: %w", err)
	}
	if claims.Subject == "" {
		return idTokenClaims{}, errors.New("id token missing subject")
	}
	return claims, nil
}
