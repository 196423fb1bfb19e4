package adapters

import (
	"github.com/google/wire"
	"github.com/mintmuse/mintmuse-cli/internal/adapters/anvil"
	"github.com/mintmuse/mintmuse-cli/internal/adapters/blockchain"
	internalconfig "github.com/mintmuse/mintmuse-cli/internal/adapters/config"
	"github.com/mintmuse/mintmuse-cli/internal/adapters/fs"
	"github.com/mintmuse/mintmuse-cli/internal/adapters/generation"
	"github.com/mintmuse/mintmuse-cli/internal/adapters/interactive"
	"github.com/mintmuse/mintmuse-cli/internal/adapters/repository/contracts"
	"github.com/mintmuse/mintmuse-cli/internal/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewArtifactStore,
	wire.Bind(new(usecase.ArtifactStore), new(*fs.ArtifactStore)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.FileWriter), new(*fs.FileWriterAdapter)),

	fs.NewLocalConfigStore,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStore)),
)

// RepositorySet provides the compiled contract repository
var RepositorySet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.BalanceReader), new(*blockchain.Client)),

	blockchain.NewSignerResolver,
	wire.Bind(new(usecase.SignerResolver), new(*blockchain.SignerResolver)),

	blockchain.NewDeployer,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Deployer)),

	blockchain.NewCodeReader,
	wire.Bind(new(usecase.CodeReader), new(*blockchain.CodeReader)),

	blockchain.NewMinter,
	wire.Bind(new(usecase.TokenMinter), new(*blockchain.Minter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.ConfirmerAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkCatalog,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkCatalog)),
)

// GenerationSet provides the preview generation client
var GenerationSet = wire.NewSet(
	generation.NewClient,
	wire.Bind(new(usecase.PreviewGenerator), new(*generation.Client)),
)

// AnvilSet provides the local node manager
var AnvilSet = wire.NewSet(
	anvil.NewManager,
	wire.Bind(new(usecase.AnvilManager), new(*anvil.Manager)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	RepositorySet,
	BlockchainSet,
	InteractiveSet,
	ConfigSet,
	GenerationSet,
	AnvilSet,
)
