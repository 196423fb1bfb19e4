package usecase

import (
	"context"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
)

// SignerResolver picks the account that authorizes transactions
type SignerResolver interface {
	// ResolveSigner returns the first available account, or domain.ErrNoSignerAvailable
	ResolveSigner(ctx context.Context) (*models.Signer, error)
	// ListSigners returns every resolvable account in resolution order
	ListSigners(ctx context.Context) ([]*models.Signer, error)
}

// ContractRepository provides access to compiled contracts
type ContractRepository interface {
	GetContract(ctx context.Context, name string) (*models.ContractDescription, error)
	ListContracts(ctx context.Context) ([]*models.ContractDescription, error)
}

// ContractDeployer broadcasts creation transactions and confirms them
type ContractDeployer interface {
	// Submit broadcasts the creation transaction and returns a pending handle
	Submit(ctx context.Context, request models.DeploymentRequest) (*models.DeployedContract, error)
	// AwaitConfirmation blocks until the handle is confirmed using the given strategy
	AwaitConfirmation(ctx context.Context, handle *models.DeployedContract, strategy config.ConfirmationStrategy) error
}

// ArtifactStore persists published contract artifacts
type ArtifactStore interface {
	// Publish fully replaces the file at path, or leaves it untouched on failure
	Publish(ctx context.Context, artifact *models.ContractArtifact, path string) error
	Load(ctx context.Context, path string) (*models.ContractArtifact, error)
}

// CodeReader reports how much runtime bytecode lives at an address
type CodeReader interface {
	CodeSize(ctx context.Context, address common.Address) (int, error)
}

// TokenMinter sends mint transactions to a published contract
type TokenMinter interface {
	Mint(ctx context.Context, request models.MintRequest) (*models.MintResult, error)
}

// PreviewGenerator requests artwork previews from the generation service
type PreviewGenerator interface {
	Generate(ctx context.Context, prompt string) (*models.Preview, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// FileWriter handles file system operations outside the artifact store
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	FileExists(ctx context.Context, path string) (bool, error)
}

// AnvilManager manages local anvil node instances
type AnvilManager interface {
	Start(ctx context.Context, instance *domain.AnvilInstance) error
	Stop(ctx context.Context, instance *domain.AnvilInstance) error
	GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error)
	StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// AccountInfo is a resolvable signer with its on-chain balance
type AccountInfo struct {
	Signer  *models.Signer
	Balance string // ether, formatted; empty when unavailable
	Error   error
}

// BalanceReader reads native balances
type BalanceReader interface {
	BalanceOf(ctx context.Context, address common.Address) (string, error)
}

// LocalConfigStore persists per-checkout overrides
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, local *config.LocalConfig) error
	GetPath() string
}
