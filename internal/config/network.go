package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
)

// Built-in local network, matching the default Hardhat/anvil node
const (
	LocalNetworkName = "localhost"
	LocalRPCURL      = "http://127.0.0.1:8545"
	LocalChainID     = 31337
)

// ChainIDFetcher looks up the chain ID served by an RPC endpoint
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	dataDir    string
	networks   map[string]config.NetworkConfig
	cache      *NetworkCache
	fetchChain ChainIDFetcher
	mu         sync.RWMutex
}

// NetworkCache caches chain ID lookups
type NetworkCache struct {
	Networks  map[string]uint64 `json:"networks"` // name -> chainID
	RPCs      map[string]uint64 `json:"rpcs"`     // rpcURL -> chainID
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(dataDir string, networks map[string]config.NetworkConfig) *NetworkResolver {
	if networks == nil {
		networks = make(map[string]config.NetworkConfig)
	}
	r := &NetworkResolver{
		dataDir:    dataDir,
		networks:   networks,
		fetchChain: fetchChainID,
	}

	// Load cache
	r.loadCache()

	return r
}

// WithChainIDFetcher replaces the RPC chain ID lookup
func (r *NetworkResolver) WithChainIDFetcher(fetch ChainIDFetcher) *NetworkResolver {
	r.fetchChain = fetch
	return r
}

// Names returns all configured network names plus the built-in local network, sorted
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.networks)+1)
	for name := range r.networks {
		names = append(names, name)
	}
	if _, ok := r.networks[LocalNetworkName]; !ok {
		names = append(names, LocalNetworkName)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	netCfg, exists := r.networks[networkName]
	if !exists {
		netCfg, exists = r.fallback(networkName)
	}
	if !exists {
		return nil, fmt.Errorf("network '%s' not found in %s [networks] and %s is not set",
			networkName, ProjectFileName, RPCURLEnvVar(networkName))
	}
	if netCfg.RPCURL == "" {
		return nil, fmt.Errorf("network '%s' has no rpc_url", networkName)
	}

	chainID := netCfg.ChainID
	if chainID == 0 {
		r.mu.RLock()
		cached, ok := r.cache.RPCs[netCfg.RPCURL]
		r.mu.RUnlock()

		if ok {
			chainID = cached
		} else {
			fetched, err := r.fetchChain(ctx, netCfg.RPCURL)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
			}
			chainID = fetched
			r.updateCache(networkName, netCfg.RPCURL, chainID)
		}
	}

	explorer := netCfg.ExplorerURL
	if explorer == "" {
		explorer = defaultExplorerURL(chainID)
	}

	return &config.Network{
		Name:        networkName,
		ChainID:     chainID,
		RPCURL:      netCfg.RPCURL,
		ExplorerURL: explorer,
	}, nil
}

// fallback resolves networks that are not declared in the project file:
// <NAME>_RPC_URL from the environment, then the built-in local node.
func (r *NetworkResolver) fallback(networkName string) (config.NetworkConfig, bool) {
	if url := os.Getenv(RPCURLEnvVar(networkName)); url != "" {
		return config.NetworkConfig{RPCURL: url}, true
	}
	if networkName == LocalNetworkName {
		return config.NetworkConfig{RPCURL: LocalRPCURL, ChainID: LocalChainID}, true
	}
	return config.NetworkConfig{}, false
}

// fetchChainID fetches the chain ID from an RPC endpoint
func fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("eth_chainId failed: %w", err)
	}
	return chainID.Uint64(), nil
}

// defaultExplorerURL returns the explorer URL for well-known chains
func defaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 80002:
		return "https://amoy.polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 84532:
		return "https://sepolia.basescan.org"
	case 42161:
		return "https://arbiscan.io"
	default:
		return ""
	}
}

// loadCache loads the chain ID cache from disk
func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = &NetworkCache{
		Networks:  make(map[string]uint64),
		RPCs:      make(map[string]uint64),
		UpdatedAt: time.Now(),
	}

	if r.dataDir == "" {
		return
	}

	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		// Cache doesn't exist yet, that's fine
		return
	}

	var loaded NetworkCache
	if err := json.Unmarshal(data, &loaded); err != nil || loaded.Networks == nil || loaded.RPCs == nil {
		// Invalid cache, start fresh
		return
	}
	r.cache = &loaded
}

// updateCache updates the cache with new chain ID information
func (r *NetworkResolver) updateCache(networkName, rpcURL string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[networkName] = chainID
	r.cache.RPCs[rpcURL] = chainID
	r.cache.UpdatedAt = time.Now()

	// Save to disk (ignore errors, cache is just for performance)
	_ = r.saveCache()
}

func (r *NetworkResolver) cachePath() string {
	return filepath.Join(r.dataDir, "cache", "chainIds.json")
}

// saveCache saves the cache to disk
func (r *NetworkResolver) saveCache() error {
	if r.dataDir == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.cachePath()), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.cachePath(), data, 0644)
}
