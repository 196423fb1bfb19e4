package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// MintMethod is the contract method called to mint a token
const MintMethod = "mintNFT"

// Minter calls mintNFT(recipient, tokenURI) on a published contract
type Minter struct {
	client *Client
	log    *slog.Logger
}

// NewMinter creates a new minter
func NewMinter(client *Client, log *slog.Logger) *Minter {
	return &Minter{
		client: client,
		log:    log.With("component", "Minter"),
	}
}

// Mint sends the mint transaction and waits for it to be mined
func (m *Minter) Mint(ctx context.Context, request models.MintRequest) (*models.MintResult, error) {
	address, err := request.Artifact.ContractAddress()
	if err != nil {
		return nil, err
	}
	parsed, err := request.Artifact.ParsedABI()
	if err != nil {
		return nil, fmt.Errorf("artifact abi is invalid: %w", err)
	}
	if _, ok := parsed.Methods[MintMethod]; !ok {
		return nil, fmt.Errorf("contract at %s has no %s method", address.Hex(), MintMethod)
	}

	if err := m.client.VerifyChainID(ctx); err != nil {
		return nil, err
	}

	var tx *types.Transaction
	if request.Signer.CanSignLocally() {
		opts, err := bind.NewKeyedTransactorWithChainID(request.Signer.PrivateKey, m.client.ChainIDBig())
		if err != nil {
			return nil, fmt.Errorf("failed to create transactor: %w", err)
		}
		opts.Context = ctx

		contract := bind.NewBoundContract(address, parsed, m.client, m.client, m.client)
		tx, err = contract.Transact(opts, MintMethod, request.Recipient, request.TokenURI)
		if err != nil {
			return nil, fmt.Errorf("failed to send %s: %w", MintMethod, err)
		}
	} else {
		data, err := parsed.Pack(MintMethod, request.Recipient, request.TokenURI)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", MintMethod, err)
		}
		var hash common.Hash
		if err := m.client.Call(ctx, &hash, "eth_sendTransaction", map[string]any{
			"from": request.Signer.Address,
			"to":   address,
			"data": hexutil.Bytes(data),
		}); err != nil {
			return nil, fmt.Errorf("eth_sendTransaction failed: %w", err)
		}
		if tx, _, err = m.client.TransactionByHash(ctx, hash); err != nil {
			return nil, fmt.Errorf("failed to fetch transaction %s: %w", hash.Hex(), err)
		}
	}
	m.log.Debug("mint transaction sent", "tx", tx.Hash().Hex(), "recipient", request.Recipient.Hex())

	receipt, err := bind.WaitMined(ctx, m.client, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}

	status := models.MintStatusSuccess
	if receipt.Status != types.ReceiptStatusSuccessful {
		status = models.MintStatusFailed
	}

	return &models.MintResult{
		Status:      status,
		Contract:    address,
		Recipient:   request.Recipient,
		TokenURI:    request.TokenURI,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

// Ensure the adapter implements the interface
var _ usecase.TokenMinter = (*Minter)(nil)
