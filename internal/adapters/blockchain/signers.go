package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/samber/lo"
)

// SignerResolver picks signing accounts from mintmuse.toml and the node
type SignerResolver struct {
	cfg    *config.RuntimeConfig
	client *Client
	log    *slog.Logger
}

// NewSignerResolver creates a new signer resolver
func NewSignerResolver(cfg *config.RuntimeConfig, client *Client, log *slog.Logger) *SignerResolver {
	return &SignerResolver{
		cfg:    cfg,
		client: client,
		log:    log.With("component", "SignerResolver"),
	}
}

// ResolveSigner returns the named sender if configured, else the first
// private key account, else the first node account. Only reads are made.
func (r *SignerResolver) ResolveSigner(ctx context.Context) (*models.Signer, error) {
	if name := r.cfg.Deploy.Sender; name != "" {
		account, ok := lo.Find(r.cfg.Accounts, func(a config.NamedAccount) bool { return a.Name == name })
		if !ok {
			return nil, fmt.Errorf("sender %q is not defined in [accounts]", name)
		}
		return r.fromAccount(ctx, account)
	}

	if account, ok := lo.Find(r.cfg.Accounts, func(a config.NamedAccount) bool {
		return a.Type == config.AccountTypePrivateKey
	}); ok {
		return r.fromAccount(ctx, account)
	}

	nodeAccounts, err := r.client.NodeAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(nodeAccounts) == 0 {
		return nil, domain.ErrNoSignerAvailable
	}
	r.log.Debug("using node account", "address", nodeAccounts[0].Hex(), "available", len(nodeAccounts))
	return &models.Signer{Address: nodeAccounts[0], Source: models.SignerSourceNode}, nil
}

// ListSigners returns the configured sender, private key accounts, named
// node accounts, then the remaining node accounts, without duplicates. The
// first entry is the one ResolveSigner picks.
func (r *SignerResolver) ListSigners(ctx context.Context) ([]*models.Signer, error) {
	var signers []*models.Signer

	if r.cfg.Deploy.Sender != "" {
		sender, err := r.ResolveSigner(ctx)
		if err != nil {
			return nil, err
		}
		signers = append(signers, sender)
	}

	keyAccounts := lo.Filter(r.cfg.Accounts, func(a config.NamedAccount, _ int) bool {
		return a.Type == config.AccountTypePrivateKey
	})
	namedNodeAccounts := lo.Filter(r.cfg.Accounts, func(a config.NamedAccount, _ int) bool {
		return a.Type == config.AccountTypeNode && a.Address != ""
	})
	for _, account := range append(keyAccounts, namedNodeAccounts...) {
		signer, err := r.fromAccount(ctx, account)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}

	nodeAccounts, err := r.client.NodeAccounts(ctx)
	if err != nil {
		if len(signers) == 0 {
			return nil, err
		}
		r.log.Debug("skipping node accounts", "error", err)
	}
	for _, address := range nodeAccounts {
		signers = append(signers, &models.Signer{Address: address, Source: models.SignerSourceNode})
	}

	signers = lo.UniqBy(signers, func(s *models.Signer) common.Address { return s.Address })
	if len(signers) == 0 {
		return nil, domain.ErrNoSignerAvailable
	}
	return signers, nil
}

func (r *SignerResolver) fromAccount(ctx context.Context, account config.NamedAccount) (*models.Signer, error) {
	if len(account.MissingEnv) > 0 {
		return nil, fmt.Errorf("account %s: environment variable(s) not set: %s",
			account.Name, strings.Join(account.MissingEnv, ", "))
	}

	switch account.Type {
	case config.AccountTypePrivateKey:
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(account.PrivateKey), "0x"))
		if err != nil {
			return nil, fmt.Errorf("account %s: invalid private key: %w", account.Name, err)
		}
		return &models.Signer{
			Name:       account.Name,
			Address:    crypto.PubkeyToAddress(key.PublicKey),
			Source:     models.SignerSourceKey,
			PrivateKey: key,
		}, nil

	case config.AccountTypeNode:
		if account.Address != "" {
			if !common.IsHexAddress(account.Address) {
				return nil, fmt.Errorf("account %s: %w: %q", account.Name, domain.ErrInvalidAddress, account.Address)
			}
			return &models.Signer{
				Name:    account.Name,
				Address: common.HexToAddress(account.Address),
				Source:  models.SignerSourceNode,
			}, nil
		}
		nodeAccounts, err := r.client.NodeAccounts(ctx)
		if err != nil {
			return nil, err
		}
		if len(nodeAccounts) == 0 {
			return nil, domain.ErrNoSignerAvailable
		}
		return &models.Signer{Name: account.Name, Address: nodeAccounts[0], Source: models.SignerSourceNode}, nil

	default:
		return nil, fmt.Errorf("account %s: unsupported type %q", account.Name, account.Type)
	}
}

// Ensure the adapter implements the interface
var _ usecase.SignerResolver = (*SignerResolver)(nil)
