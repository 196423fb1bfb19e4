package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
)

// MintTokenParams contains parameters for minting a token
type MintTokenParams struct {
	Recipient string
	TokenURI  string
	// ArtifactPath overrides deploy.output as the source of address and ABI
	ArtifactPath string
}

// MintToken mints a token through the contract described by a published artifact
type MintToken struct {
	cfg      *config.RuntimeConfig
	signers  SignerResolver
	store    ArtifactStore
	minter   TokenMinter
	progress ProgressSink
}

// NewMintToken creates a new MintToken use case
func NewMintToken(
	cfg *config.RuntimeConfig,
	signers SignerResolver,
	store ArtifactStore,
	minter TokenMinter,
	progress ProgressSink,
) *MintToken {
	return &MintToken{
		cfg:      cfg,
		signers:  signers,
		store:    store,
		minter:   minter,
		progress: progress,
	}
}

// Run validates the recipient, loads the artifact and sends mintNFT
func (uc *MintToken) Run(ctx context.Context, params MintTokenParams) (*models.MintResult, error) {
	recipient := strings.TrimSpace(params.Recipient)
	if !common.IsHexAddress(recipient) {
		return nil, fmt.Errorf("%w: recipient %q", domain.ErrInvalidAddress, params.Recipient)
	}
	if strings.TrimSpace(params.TokenURI) == "" {
		return nil, fmt.Errorf("token URI is required")
	}

	path := params.ArtifactPath
	if path == "" {
		path = uc.cfg.Deploy.OutputPath
	}
	artifact, err := uc.store.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact (run 'mintmuse deploy' first?): %w", err)
	}

	signer, err := uc.signers.ResolveSigner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signer: %w", err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "minting",
		Message: fmt.Sprintf("Minting to %s...", common.HexToAddress(recipient).Hex()),
		Spinner: true,
	})

	result, err := uc.minter.Mint(ctx, models.MintRequest{
		Artifact:  artifact,
		Signer:    signer,
		Recipient: common.HexToAddress(recipient),
		TokenURI:  params.TokenURI,
	})
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "minted"})
	if err != nil {
		return nil, err
	}

	if result.ExplorerLink == "" && uc.cfg.Network != nil {
		result.ExplorerLink = models.TxExplorerLink(uc.cfg.Network.ExplorerURL, result.TxHash)
	}
	return result, nil
}
