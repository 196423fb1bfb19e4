package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
)

// DeployContractParams contains parameters for a deployment run
type DeployContractParams struct {
	// Contract overrides deploy.contract when set
	Contract string
	// Owner overrides deploy.owner when set; both empty means the deployer
	Owner string
}

// DeployContractResult contains the result of a deployment run
type DeployContractResult struct {
	Network    *config.Network
	Signer     *models.Signer
	Contract   *models.ContractDescription
	Deployment *models.DeployedContract
	Artifact   *models.ContractArtifact
	OutputPath string
	Strategy   config.ConfirmationStrategy
	Stages     []domain.PipelineStage
}

// PublishAfterDeployError is returned when the contract is live on chain but
// the artifact could not be written. The address lets the operator publish
// again without redeploying.
type PublishAfterDeployError struct {
	Address  common.Address
	TxHash   common.Hash
	Contract string
	Network  string
	Path     string
	Err      error
}

func (e *PublishAfterDeployError) Error() string {
	return fmt.Sprintf("contract deployed at %s but publishing failed: %v", e.Address.Hex(), e.Err)
}

func (e *PublishAfterDeployError) Unwrap() error {
	return e.Err
}

// DeployContract resolves a signer, deploys the configured contract, waits
// for confirmation and publishes the {address, abi} artifact.
type DeployContract struct {
	cfg       *config.RuntimeConfig
	signers   SignerResolver
	contracts ContractRepository
	deployer  ContractDeployer
	store     ArtifactStore
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	signers SignerResolver,
	contracts ContractRepository,
	deployer ContractDeployer,
	store ArtifactStore,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		cfg:       cfg,
		signers:   signers,
		contracts: contracts,
		deployer:  deployer,
		store:     store,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "DeployContract"),
	}
}

// Run executes the pipeline. Every stage must succeed for the next to start;
// on failure the error of the failing stage is returned unchanged in kind.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	contractName := params.Contract
	if contractName == "" {
		contractName = uc.cfg.Deploy.Contract
	}
	strategy := uc.cfg.Deploy.ConfirmationStrategy
	if !strategy.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidConfirmationStrategy, strategy)
	}

	result := &DeployContractResult{
		Network:    uc.cfg.Network,
		OutputPath: uc.cfg.Deploy.OutputPath,
		Strategy:   strategy,
	}
	pipeline := domain.NewPipeline()
	defer func() { result.Stages = pipeline.History() }()

	// Signer
	signer, err := uc.signers.ResolveSigner(ctx)
	if err != nil {
		return nil, pipeline.Fail(fmt.Errorf("failed to resolve signer: %w", err))
	}
	result.Signer = signer
	if err := uc.advance(ctx, pipeline, domain.StageSignerResolved,
		fmt.Sprintf("Deploying contracts with the account: %s", signer.Address.Hex())); err != nil {
		return nil, err
	}

	// Factory
	description, err := uc.contracts.GetContract(ctx, contractName)
	if err != nil {
		return nil, pipeline.Fail(err)
	}
	factory, err := models.NewContractFactory(description, signer)
	if err != nil {
		return nil, pipeline.Fail(err)
	}
	args, err := constructorArgs(description, signer, firstNonEmpty(params.Owner, uc.cfg.Deploy.Owner))
	if err != nil {
		return nil, pipeline.Fail(err)
	}
	result.Contract = description
	if err := uc.advance(ctx, pipeline, domain.StageFactoryLoaded,
		fmt.Sprintf("Loaded %s from %s", description.Name, description.SourcePath)); err != nil {
		return nil, err
	}

	if err := uc.confirmBroadcast(ctx, description, signer); err != nil {
		return nil, pipeline.Fail(err)
	}

	// Submit
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(domain.StageTxSubmitted),
		Message: fmt.Sprintf("Deploying %s...", description.Name),
		Spinner: true,
	})
	handle, err := uc.deployer.Submit(ctx, models.DeploymentRequest{
		Factory:         factory,
		ConstructorArgs: args,
	})
	if err != nil {
		return nil, pipeline.Fail(err)
	}
	result.Deployment = handle
	uc.log.Debug("creation transaction broadcast", "tx", handle.TxHash.Hex(), "nonce", handle.Nonce)
	if err := uc.advance(ctx, pipeline, domain.StageTxSubmitted,
		fmt.Sprintf("Transaction %s sent, waiting for confirmation (%s)", handle.TxHash.Hex(), strategy)); err != nil {
		return nil, err
	}

	// Confirm
	if err := uc.deployer.AwaitConfirmation(ctx, handle, strategy); err != nil {
		return nil, pipeline.Fail(err)
	}
	address, err := handle.Address()
	if err != nil {
		return nil, pipeline.Fail(err)
	}
	if err := uc.advance(ctx, pipeline, domain.StageConfirmed,
		fmt.Sprintf("%s deployed to: %s", description.Name, address.Hex())); err != nil {
		return nil, err
	}

	// Serialize
	artifact, err := models.SerializeArtifact(handle)
	if err != nil {
		return nil, pipeline.Fail(err)
	}
	result.Artifact = artifact
	if err := uc.advance(ctx, pipeline, domain.StageSerialized, ""); err != nil {
		return nil, err
	}

	// Publish
	if err := uc.store.Publish(ctx, artifact, result.OutputPath); err != nil {
		perr := &PublishAfterDeployError{
			Address:  address,
			TxHash:   handle.TxHash,
			Contract: description.Name,
			Path:     result.OutputPath,
			Err:      err,
		}
		if uc.cfg.Network != nil {
			perr.Network = uc.cfg.Network.Name
		}
		return nil, pipeline.Fail(perr)
	}
	if err := uc.advance(ctx, pipeline, domain.StagePublished,
		fmt.Sprintf("Contract address and ABI saved to %s", result.OutputPath)); err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *DeployContract) advance(ctx context.Context, pipeline *domain.Pipeline, stage domain.PipelineStage, message string) error {
	if err := pipeline.Advance(stage); err != nil {
		return err
	}
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(stage),
		Message: message,
	})
	return nil
}

// confirmBroadcast asks before spending funds on a non-local chain
func (uc *DeployContract) confirmBroadcast(ctx context.Context, description *models.ContractDescription, signer *models.Signer) error {
	if uc.confirmer == nil || uc.cfg.NonInteractive || uc.cfg.Network.IsLocal() {
		return nil
	}
	ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy %s to %s (chain %d) from %s",
		description.Name, uc.cfg.Network.Name, uc.cfg.Network.ChainID, signer.Address.Hex()))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCancelled
	}
	return nil
}

// constructorArgs supports parameterless constructors and a single owner
// address, which defaults to the deployer.
func constructorArgs(description *models.ContractDescription, signer *models.Signer, owner string) ([]any, error) {
	inputs := description.ABI.Constructor.Inputs
	switch {
	case len(inputs) == 0:
		return nil, nil
	case len(inputs) == 1 && inputs[0].Type.T == abi.AddressTy:
		if owner == "" {
			return []any{signer.Address}, nil
		}
		if !common.IsHexAddress(owner) {
			return nil, fmt.Errorf("%w: owner %q", domain.ErrInvalidAddress, owner)
		}
		return []any{common.HexToAddress(owner)}, nil
	default:
		return nil, fmt.Errorf("constructor of %s takes %d arguments; only a single owner address is supported",
			description.Name, len(inputs))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
