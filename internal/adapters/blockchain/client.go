package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// Backend is the part of the JSON-RPC client the adapters use. Both
// *ethclient.Client and the simulated backend client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
}

// RPCCaller issues raw JSON-RPC requests for node-managed accounts
type RPCCaller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Client is a connection to the configured network
type Client struct {
	Backend
	rpc     RPCCaller
	chainID *big.Int

	mu       sync.Mutex
	verified bool
}

// NewClient dials the configured network. HTTP endpoints connect lazily, so
// commands that never touch the chain pay nothing.
func NewClient(cfg *config.RuntimeConfig) (*Client, func(), error) {
	if cfg.Network == nil {
		return nil, nil, fmt.Errorf("no network configured")
	}
	rpcClient, err := rpc.Dial(cfg.Network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.Network.RPCURL, err)
	}
	client := ethclient.NewClient(rpcClient)

	return NewClientWithBackend(client, rpcClient, cfg.Network.ChainID), client.Close, nil
}

// NewClientWithBackend wraps an existing backend
func NewClientWithBackend(backend Backend, caller RPCCaller, chainID uint64) *Client {
	return &Client{
		Backend: backend,
		rpc:     caller,
		chainID: new(big.Int).SetUint64(chainID),
	}
}

// ChainIDBig returns the chain ID used for signing
func (c *Client) ChainIDBig() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// VerifyChainID checks once per client that the node serves the configured
// chain. Failures are not cached so a restarted node can be retried.
func (c *Client) VerifyChainID(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.verified {
		return nil
	}
	served, err := c.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to read chain ID from node: %w", err)
	}
	if served.Cmp(c.chainID) != 0 {
		return fmt.Errorf("node serves chain ID %s but the network is configured with chain ID %s", served, c.chainID)
	}
	c.verified = true
	return nil
}

// Call issues a raw JSON-RPC request
func (c *Client) Call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if c.rpc == nil {
		return fmt.Errorf("%s: raw RPC is not available on this backend", method)
	}
	return c.rpc.CallContext(ctx, result, method, args...)
}

// NodeAccounts returns the accounts unlocked on the node (eth_accounts)
func (c *Client) NodeAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := c.Call(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts failed: %w", err)
	}
	return accounts, nil
}

// BalanceOf returns the latest balance in ether
func (c *Client) BalanceOf(ctx context.Context, address common.Address) (string, error) {
	wei, err := c.BalanceAt(ctx, address, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get balance of %s: %w", address.Hex(), err)
	}
	return FormatEther(wei), nil
}

// FormatEther renders a wei amount in ether with four decimals
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0000"
	}
	ether := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether))
	return ether.Text('f', 4)
}

// Ensure the adapter implements the interface
var _ usecase.BalanceReader = (*Client)(nil)
