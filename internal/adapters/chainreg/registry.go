package chainreg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/halvora/aa-wallet-cli/internal/domain"
)

const (
	configName      = "config"
	configType      = "toml"
	chainsPathKey   = "chains.path"
	chainsFileMode  = 0o600
	chainsDirMode   = 0o700
	configDir       = ".aa-wallet"
	chainsFile      = "chains.toml"
	tempFilePattern = ".chains-*.toml.tmp"
)

// Contract addresses shared by the built-in networks: the v0.6
// entrypoint and the light account factory, deployed at the same
// address on every chain below.
var (
	defaultEntryPoint     = common.HexToAddress("0x5FF137D4b0FDCD49DcA30c7CF57E578a026d2789")
	defaultAccountFactory = common.HexToAddress("0x00004EC70002a32400f8ae005A26081065620D20")
)

var builtinChains = []domain.Chain{
	{
		ID:             1,
		Name:           "mainnet",
		RPCURL:         "https://eth-mainnet.g.alchemy.com/v2",
		EntryPoint:     defaultEntryPoint,
		AccountFactory: defaultAccountFactory,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	},
	{
		ID:             11155111,
		Name:           "sepolia",
		RPCURL:         "https://eth-sepolia.g.alchemy.com/v2",
		EntryPoint:     defaultEntryPoint,
		AccountFactory: defaultAccountFactory,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	},
	{
		ID:             8453,
		Name:           "base",
		RPCURL:         "https://base-mainnet.g.alchemy.com/v2",
		EntryPoint:     defaultEntryPoint,
		AccountFactory: defaultAccountFactory,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	},
	{
		ID:             421614,
		Name:           "arbitrum-sepolia",
		RPCURL:         "https://arb-sepolia.g.alchemy.com/v2",
		EntryPoint:     defaultEntryPoint,
		AccountFactory: defaultAccountFactory,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	},
}

// Registry resolves chain names to their network parameters. Built-in
// networks are always available; a chains.toml next to the wallet
// config adds custom networks and overrides built-ins by id.
type Registry struct {
	chainsPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

func NewRegistry(cfg *viper.Viper) (*Registry, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDir, chainsFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(chainsPathKey, defaultPath)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	chainsPath := cfg.GetString(chainsPathKey)
	if chainsPath == "" {
		return nil, errors.New("chains path is empty")
	}
	chainsPath, err = normalizePath(chainsPath)
	if err != nil {
		return nil, err
	}

	return &Registry{chainsPath: chainsPath, mu: lockForPath(chainsPath)}, nil
}

// Lookup resolves a chain by name or decimal chain id.
func (r *Registry) Lookup(ctx context.Context, ref string) (domain.Chain, error) {
	if err := ctx.Err(); err != nil {
		return domain.Chain{}, err
	}

	chains, err := r.List(ctx)
	if err != nil {
		return domain.Chain{}, err
	}

	ref = strings.TrimSpace(ref)
	id, byID := parseChainID(ref)
	for _, chain := range chains {
		if strings.EqualFold(chain.Name, ref) || (byID && chain.ID == id) {
			return chain, nil
		}
	}

	return domain.Chain{}, fmt.Errorf("chain %q: %w", ref, domain.ErrUnknownChain)
}

// List returns built-ins merged with the user file; a user entry with a
// built-in id replaces it.
func (r *Registry) List(ctx context.Context) ([]domain.Chain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]int, len(builtinChains))
	merged := make([]domain.Chain, 0, len(builtinChains)+len(file.Chains))
	for _, chain := range builtinChains {
		byID[chain.ID] = len(merged)
		merged = append(merged, chain)
	}

	for _, entry := range file.Chains {
		chain, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		if i, ok := byID[chain.ID]; ok {
			merged[i] = chain
			continue
		}
		byID[chain.ID] = len(merged)
		merged = append(merged, chain)
	}

	return merged, nil
}

// Save adds or replaces a custom chain in the user file.
func (r *Registry) Save(ctx context.Context, chain domain.Chain) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fromSchema(toSchema(chain)); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(chain)
	updated := false
	for i := range file.Chains {
		if file.Chains[i].ID == encoded.ID {
			file.Chains[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Chains = append(file.Chains, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return r.writeSchema(file)
}

func (r *Registry) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.chainsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read chains file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode chains file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Registry) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.chainsPath), chainsDirMode); err != nil {
		return fmt.Errorf("create chains directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode chains file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.chainsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp chains file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp chains file: %w", err)
	}
	if err := tempFile.Chmod(chainsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp chains file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp chains file: %w", err)
	}
	if err := os.Rename(tempName, r.chainsPath); err != nil {
		return fmt.Errorf("replace chains file: %w", err)
	}
	cleanup = false

	if err := os.Chmod(r.chainsPath, chainsFileMode); err != nil {
		return fmt.Errorf("chmod chains file: %w", err)
	}
	return nil
}

func parseChainID(ref string) (uint64, bool) {
	id, err := strconv.ParseUint(ref, 10, 64)
	return id, err == nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve chains path: %w", err)
	}
	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}
	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
