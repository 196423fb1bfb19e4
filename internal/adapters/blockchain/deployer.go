package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// errReverted is reported when a creation transaction is mined with a failed status
var errReverted = errors.New("creation transaction reverted")

// Deployer submits creation transactions and waits for them
type Deployer struct {
	client *Client
	log    *slog.Logger

	mu      sync.Mutex
	pending map[common.Hash]*types.Transaction
}

// NewDeployer creates a new deployer
func NewDeployer(client *Client, log *slog.Logger) *Deployer {
	return &Deployer{
		client:  client,
		log:     log.With("component", "Deployer"),
		pending: make(map[common.Hash]*types.Transaction),
	}
}

// Submit signs and broadcasts the creation transaction. Key signers sign
// locally; node signers go through eth_sendTransaction.
func (d *Deployer) Submit(ctx context.Context, request models.DeploymentRequest) (*models.DeployedContract, error) {
	factory := request.Factory
	if factory == nil {
		return nil, fmt.Errorf("deployment request has no factory")
	}
	// Surface argument mismatches before anything is signed
	if _, err := factory.PackConstructor(request.ConstructorArgs...); err != nil {
		return nil, err
	}
	if err := d.client.VerifyChainID(ctx); err != nil {
		return nil, &domain.DeploymentFailedError{Err: err}
	}

	var (
		tx  *types.Transaction
		err error
	)
	if factory.Signer.CanSignLocally() {
		tx, err = d.submitSigned(ctx, factory, request.ConstructorArgs)
	} else {
		tx, err = d.submitViaNode(ctx, factory, request.ConstructorArgs)
	}
	if err != nil {
		return nil, &domain.DeploymentFailedError{Err: err}
	}

	d.mu.Lock()
	d.pending[tx.Hash()] = tx
	d.mu.Unlock()

	d.log.Debug("submitted creation transaction",
		"contract", factory.Description.Name, "tx", tx.Hash().Hex(), "nonce", tx.Nonce())
	return models.NewPendingDeployment(factory.Description, factory.Signer.Address, tx.Hash(), tx.Nonce()), nil
}

func (d *Deployer) submitSigned(ctx context.Context, factory *models.ContractFactory, args []any) (*types.Transaction, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(factory.Signer.PrivateKey, d.client.ChainIDBig())
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	_, tx, _, err := bind.DeployContract(opts, factory.Description.ABI, factory.Description.Bytecode, d.client, args...)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (d *Deployer) submitViaNode(ctx context.Context, factory *models.ContractFactory, args []any) (*types.Transaction, error) {
	data, err := factory.CreationData(args...)
	if err != nil {
		return nil, err
	}

	var hash common.Hash
	if err := d.client.Call(ctx, &hash, "eth_sendTransaction", map[string]any{
		"from": factory.Signer.Address,
		"data": hexutil.Bytes(data),
	}); err != nil {
		return nil, fmt.Errorf("eth_sendTransaction failed: %w", err)
	}

	tx, _, err := d.client.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("node accepted %s but the transaction could not be fetched: %w", hash.Hex(), err)
	}
	return tx, nil
}

// AwaitConfirmation waits for the creation transaction and confirms the handle.
func (d *Deployer) AwaitConfirmation(ctx context.Context, handle *models.DeployedContract, strategy config.ConfirmationStrategy) error {
	tx, err := d.transaction(ctx, handle.TxHash)
	if err != nil {
		return &domain.DeploymentFailedError{TxHash: handle.TxHash.Hex(), Err: err}
	}

	var receipt *types.Receipt
	switch strategy {
	case config.ConfirmationLegacy:
		receipt, err = d.awaitMined(ctx, tx)
	case config.ConfirmationExplicit:
		receipt, err = d.awaitDeployed(ctx, tx)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidConfirmationStrategy, strategy)
	}
	if err != nil {
		return &domain.DeploymentFailedError{TxHash: handle.TxHash.Hex(), Err: err}
	}

	d.mu.Lock()
	delete(d.pending, tx.Hash())
	d.mu.Unlock()

	d.log.Debug("deployment confirmed", "strategy", strategy,
		"address", receipt.ContractAddress.Hex(), "block", receipt.BlockNumber, "gas", receipt.GasUsed)
	return handle.Confirm(receipt.ContractAddress, receipt.BlockNumber.Uint64(), receipt.GasUsed)
}

// awaitMined reads the address from the receipt once the transaction is mined
func (d *Deployer) awaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, d.client, tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, errReverted
	}
	if receipt.ContractAddress == (common.Address{}) {
		return nil, fmt.Errorf("receipt for %s carries no contract address", tx.Hash().Hex())
	}
	return receipt, nil
}

// awaitDeployed additionally requires runtime code at the new address
func (d *Deployer) awaitDeployed(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	address, err := bind.WaitDeployed(ctx, d.client, tx)
	if err != nil {
		if errors.Is(err, bind.ErrNoCodeAfterDeploy) {
			return nil, fmt.Errorf("%w: %v", errReverted, err)
		}
		return nil, err
	}

	receipt, err := d.client.TransactionReceipt(ctx, tx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipt: %w", err)
	}
	if receipt.ContractAddress != address {
		return nil, fmt.Errorf("receipt address %s does not match deployed address %s",
			receipt.ContractAddress.Hex(), address.Hex())
	}
	return receipt, nil
}

func (d *Deployer) transaction(ctx context.Context, hash common.Hash) (*types.Transaction, error) {
	d.mu.Lock()
	tx, ok := d.pending[hash]
	d.mu.Unlock()
	if ok {
		return tx, nil
	}

	tx, _, err := d.client.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", hash.Hex(), err)
	}
	return tx, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*Deployer)(nil)
