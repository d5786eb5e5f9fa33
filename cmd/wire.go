package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/halvora/aa-wallet-cli/internal/adapters/bundler"
	"github.com/halvora/aa-wallet-cli/internal/adapters/chainreg"
	sessioncard "github.com/halvora/aa-wallet-cli/internal/adapters/render/session"
	chainstore "github.com/halvora/aa-wallet-cli/internal/adapters/secrets/chain"
	signeradapter "github.com/halvora/aa-wallet-cli/internal/adapters/signer"
	"github.com/halvora/aa-wallet-cli/internal/application"
	"github.com/halvora/aa-wallet-cli/internal/ports"
)

// APIKeyRef is where `aw auth set-api-key` stores the bundler key when
// AW_API_KEY is not set.
const APIKeyRef = "wallet://api-key"

type app struct {
	sessions    *application.SessionService
	dispatch    *application.DispatchService
	registry    *chainreg.Registry
	secretStore ports.SecretStore
	renderCard  func(sessioncard.Card) (string, error)
	cfg         appConfig
}

type appConfig struct {
	apiKey      string
	chainRef    string
	rpcURL      string
	policyID    string
	signerKind  string
	relayListen string
	relayOrigin string
	authIssuer  string
	authClient  string
	authListen  string
}

func wireApp() (*app, error) {
	registry, err := chainreg.NewRegistry(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire chain registry: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(homeDir, ".aa-wallet", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	cfg := appConfig{
		apiKey:      os.Getenv("AW_API_KEY"),
		chainRef:    envOrDefault("AW_CHAIN", "sepolia"),
		rpcURL:      os.Getenv("AW_RPC_URL"),
		policyID:    os.Getenv("AW_POLICY_ID"),
		signerKind:  envOrDefault("AW_SIGNER", "local"),
		relayListen: envOrDefault("AW_RELAY_LISTEN", "127.0.0.1:8572"),
		relayOrigin: os.Getenv("AW_RELAY_ORIGIN"),
		authIssuer:  envOrDefault("AW_AUTH_ISSUER", "https://auth.web3auth.io"),
		authClient:  os.Getenv("AW_AUTH_CLIENT_ID"),
		authListen:  envOrDefault("AW_AUTH_LISTEN", "127.0.0.1:8571"),
	}

	signer, err := buildSigner(cfg, secretStore)
	if err != nil {
		return nil, err
	}

	sessions := application.NewSessionService(signer, bundler.Factory{})
	dispatch := application.NewDispatchService(sessions, ports.SystemClock{}, application.DispatchConfig{})

	return &app{
		sessions:    sessions,
		dispatch:    dispatch,
		registry:    registry,
		secretStore: secretStore,
		renderCard:  sessioncard.Render,
		cfg:         cfg,
	}, nil
}

func buildSigner(cfg appConfig, store ports.SecretStore) (ports.SignerAdapter, error) {
	switch strings.ToLower(cfg.signerKind) {
	case "local", "":
		return signeradapter.NewLocalKeySigner(store, ""), nil
	case "browser":
		return signeradapter.NewBrowserSigner(signeradapter.BrowserConfig{
			Issuer:          cfg.authIssuer,
			ClientID:        cfg.authClient,
			ListenAddr:      cfg.authListen,
			CallbackTimeout: 5 * time.Minute,
		}, store), nil
	default:
		return nil, fmt.Errorf("unknown signer %q (want local or browser)", cfg.signerKind)
	}
}

// connectConfig resolves the session parameters: the API key from the
// environment or the secret store, and the chain from the registry with
// an optional RPC override.
func (a *app) connectConfig(ctx context.Context) (application.ConnectConfig, error) {
	apiKey := a.cfg.apiKey
	if apiKey == "" {
		stored, err := a.secretStore.Get(ctx, APIKeyRef)
		if err != nil {
			return application.ConnectConfig{}, fmt.Errorf("no bundler api key: set AW_API_KEY or run `aw auth set-api-key`: %w", err)
		}
		apiKey = strings.TrimSpace(stored)
	}

	chain, err := a.registry.Lookup(ctx, a.cfg.chainRef)
	if err != nil {
		return application.ConnectConfig{}, err
	}
	if a.cfg.rpcURL != "" {
		chain.RPCURL = a.cfg.rpcURL
	}

	return application.ConnectConfig{
		APIKey:      apiKey,
		Chain:       chain,
		GasPolicyID: a.cfg.policyID,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
