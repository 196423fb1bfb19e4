package usecase

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"golang.org/x/sync/errgroup"
)

// probeLimit bounds concurrent eth_chainId lookups
const probeLimit = 8

// ListNetworksResult contains every known network, in catalog order
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus is one row of `mintmuse networks`
type NetworkStatus struct {
	Name     string
	ChainID  uint64
	RPCURL   string // credentials masked
	Explorer string
	Current  bool
	Error    error
}

// ListNetworks resolves every network the catalog knows about
type ListNetworks struct {
	cfg      *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		cfg:      cfg,
		resolver: resolver,
	}
}

// Run resolves networks concurrently. A network that fails to resolve is
// reported on its row and does not fail the listing.
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := uc.resolver.GetNetworks(ctx)
	statuses := make([]NetworkStatus, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(probeLimit)
	for i, name := range names {
		g.Go(func() error {
			status := NetworkStatus{
				Name:    name,
				Current: uc.cfg.Network != nil && uc.cfg.Network.Name == name,
			}
			network, err := uc.resolver.ResolveNetwork(gctx, name)
			if err != nil {
				status.Error = err
			} else {
				status.ChainID = network.ChainID
				status.RPCURL = maskRPCURL(network.RPCURL)
				status.Explorer = network.ExplorerURL
			}
			statuses[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &ListNetworksResult{Networks: statuses}, nil
}

// maskRPCURL hides provider API keys: user info, the query string, and a
// trailing path segment that looks like a key (https://x.alchemy.com/v2/<key>).
func maskRPCURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	// url.URL.String would escape the mask characters, so the result is assembled by hand
	var b strings.Builder
	b.WriteString(u.Scheme + "://")
	if u.User != nil {
		b.WriteString("***@")
	}
	b.WriteString(u.Host)

	p := u.EscapedPath()
	if last := path.Base(u.Path); len(last) >= 16 && !strings.Contains(last, ".") {
		p = p[:strings.LastIndex(p, "/")+1] + "***"
	}
	b.WriteString(p)

	if u.RawQuery != "" || u.ForceQuery {
		b.WriteString("?***")
	}
	return b.String()
}
