package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
)

// PublishArtifactParams contains parameters for re-publishing an artifact
type PublishArtifactParams struct {
	Address  string
	Contract string // defaults to deploy.contract
}

// PublishArtifactResult contains the published artifact and where it went
type PublishArtifactResult struct {
	Contract   *models.ContractDescription
	Artifact   *models.ContractArtifact
	OutputPath string
}

// PublishArtifact writes the {address, abi} artifact for a contract that is
// already deployed, without sending any transaction.
type PublishArtifact struct {
	cfg       *config.RuntimeConfig
	contracts ContractRepository
	code      CodeReader
	store     ArtifactStore
	progress  ProgressSink
}

// NewPublishArtifact creates a new PublishArtifact use case
func NewPublishArtifact(
	cfg *config.RuntimeConfig,
	contracts ContractRepository,
	code CodeReader,
	store ArtifactStore,
	progress ProgressSink,
) *PublishArtifact {
	return &PublishArtifact{
		cfg:       cfg,
		contracts: contracts,
		code:      code,
		store:     store,
		progress:  progress,
	}
}

// Run verifies code exists at the address and publishes the artifact
func (uc *PublishArtifact) Run(ctx context.Context, params PublishArtifactParams) (*PublishArtifactResult, error) {
	if !common.IsHexAddress(params.Address) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, params.Address)
	}
	address := common.HexToAddress(params.Address)

	contractName := params.Contract
	if contractName == "" {
		contractName = uc.cfg.Deploy.Contract
	}

	description, err := uc.contracts.GetContract(ctx, contractName)
	if err != nil {
		return nil, err
	}

	size, err := uc.code.CodeSize(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to check deployment: %w", err)
	}
	if size == 0 {
		return nil, fmt.Errorf("no contract code at %s on %s", address.Hex(), uc.cfg.Network.Name)
	}

	artifact, err := models.NewContractArtifact(address, description.RawABI)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Publish(ctx, artifact, uc.cfg.Deploy.OutputPath); err != nil {
		return nil, err
	}
	uc.progress.Info(fmt.Sprintf("Contract address and ABI saved to %s", uc.cfg.Deploy.OutputPath))

	return &PublishArtifactResult{
		Contract:   description,
		Artifact:   artifact,
		OutputPath: uc.cfg.Deploy.OutputPath,
	}, nil
}
