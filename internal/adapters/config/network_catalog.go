package config

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/mintmuse/mintmuse-cli/internal/config"
	domainconfig "github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/samber/lo"
)

const rpcURLSuffix = "_RPC_URL"

// NetworkCatalog lists the networks a command can target: everything declared
// in mintmuse.toml, the built-in local node, and any <NAME>_RPC_URL exported
// in the environment.
type NetworkCatalog struct {
	resolver *config.NetworkResolver
	environ  func() []string
}

// NewNetworkCatalog creates a catalog backed by the project resolver
func NewNetworkCatalog(resolver *config.NetworkResolver) *NetworkCatalog {
	return &NetworkCatalog{resolver: resolver, environ: os.Environ}
}

// GetNetworks returns every known network name, sorted
func (c *NetworkCatalog) GetNetworks(_ context.Context) []string {
	names := append(c.resolver.Names(), c.environmentNetworks()...)
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

// ResolveNetwork resolves a network name to its configuration
func (c *NetworkCatalog) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	return c.resolver.Resolve(ctx, networkName)
}

// environmentNetworks maps BASE_SEPOLIA_RPC_URL=... to base-sepolia.
// Empty values are skipped since the resolver ignores them too.
func (c *NetworkCatalog) environmentNetworks() []string {
	return lo.FilterMap(c.environ(), func(entry string, _ int) (string, bool) {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" || !strings.HasSuffix(key, rpcURLSuffix) {
			return "", false
		}
		name := strings.TrimSuffix(key, rpcURLSuffix)
		if name == "" {
			return "", false
		}
		name = strings.ToLower(strings.ReplaceAll(name, "_", "-"))
		// only names that resolve back to the same variable
		if config.RPCURLEnvVar(name) != key {
			return "", false
		}
		return name, true
	})
}

var _ usecase.NetworkResolver = (*NetworkCatalog)(nil)
