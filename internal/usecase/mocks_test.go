package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSignerResolver is a mock implementation of SignerResolver
type MockSignerResolver struct {
	mock.Mock
}

func (m *MockSignerResolver) ResolveSigner(ctx context.Context) (*models.Signer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Signer), args.Error(1)
}

func (m *MockSignerResolver) ListSigners(ctx context.Context) ([]*models.Signer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Signer), args.Error(1)
}

// MockContractRepository is a mock implementation of ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) GetContract(ctx context.Context, name string) (*models.ContractDescription, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractDescription), args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context) ([]*models.ContractDescription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContractDescription), args.Error(1)
}

// MockContractDeployer is a mock implementation of ContractDeployer
type MockContractDeployer struct {
	mock.Mock
}

func (m *MockContractDeployer) Submit(ctx context.Context, request models.DeploymentRequest) (*models.DeployedContract, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeployedContract), args.Error(1)
}

func (m *MockContractDeployer) AwaitConfirmation(ctx context.Context, handle *models.DeployedContract, strategy config.ConfirmationStrategy) error {
	args := m.Called(ctx, handle, strategy)
	return args.Error(0)
}

// MockArtifactStore is a mock implementation of ArtifactStore
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Publish(ctx context.Context, artifact *models.ContractArtifact, path string) error {
	args := m.Called(ctx, artifact, path)
	return args.Error(0)
}

func (m *MockArtifactStore) Load(ctx context.Context, path string) (*models.ContractArtifact, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractArtifact), args.Error(1)
}

// MockCodeReader is a mock implementation of CodeReader
type MockCodeReader struct {
	mock.Mock
}

func (m *MockCodeReader) CodeSize(ctx context.Context, address common.Address) (int, error) {
	args := m.Called(ctx, address)
	return args.Int(0), args.Error(1)
}

// MockTokenMinter is a mock implementation of TokenMinter
type MockTokenMinter struct {
	mock.Mock
}

func (m *MockTokenMinter) Mint(ctx context.Context, request models.MintRequest) (*models.MintResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MintResult), args.Error(1)
}

// MockPreviewGenerator is a mock implementation of PreviewGenerator
type MockPreviewGenerator struct {
	mock.Mock
}

func (m *MockPreviewGenerator) Generate(ctx context.Context, prompt string) (*models.Preview, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preview), args.Error(1)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	args := m.Called(ctx, networkName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

// MockFileWriter is a mock implementation of FileWriter
type MockFileWriter struct {
	mock.Mock
}

func (m *MockFileWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	args := m.Called(ctx, path, data)
	return args.Error(0)
}

func (m *MockFileWriter) FileExists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

// MockAnvilManager is a mock implementation of AnvilManager
type MockAnvilManager struct {
	mock.Mock
}

func (m *MockAnvilManager) Start(ctx context.Context, instance *domain.AnvilInstance) error {
	return m.Called(ctx, instance).Error(0)
}

func (m *MockAnvilManager) Stop(ctx context.Context, instance *domain.AnvilInstance) error {
	return m.Called(ctx, instance).Error(0)
}

func (m *MockAnvilManager) GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error) {
	args := m.Called(ctx, instance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnvilStatus), args.Error(1)
}

func (m *MockAnvilManager) StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error {
	return m.Called(ctx, instance, writer).Error(0)
}

// MockBalanceReader is a mock implementation of BalanceReader
type MockBalanceReader struct {
	mock.Mock
}

func (m *MockBalanceReader) BalanceOf(ctx context.Context, address common.Address) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

// MockLocalConfigStore is a mock implementation of LocalConfigStore
type MockLocalConfigStore struct {
	mock.Mock
}

func (m *MockLocalConfigStore) Exists() bool {
	return m.Called().Bool(0)
}

func (m *MockLocalConfigStore) Load(ctx context.Context) (*config.LocalConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.LocalConfig), args.Error(1)
}

func (m *MockLocalConfigStore) Save(ctx context.Context, local *config.LocalConfig) error {
	return m.Called(ctx, local).Error(0)
}

func (m *MockLocalConfigStore) GetPath() string {
	return m.Called().String(0)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {
	m.errors = append(m.errors, message)
}

// stages returns the stage of every non-spinner event
func (m *MockProgressSink) stages() []string {
	var out []string
	for _, e := range m.events {
		if !e.Spinner {
			out = append(out, e.Stage)
		}
	}
	return out
}

const (
	ownableABI = `[{"type":"constructor","inputs":[{"name":"initialOwner","type":"address"}],"stateMutability":"nonpayable"},{"type":"function","name":"owner","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"}]`
	plainABI   = `[{"type":"function","name":"ping","inputs":[],"outputs":[],"stateMutability":"nonpayable"}]`
)

var (
	deployerAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")
	contractAddress = common.HexToAddress("0x2222222222222222222222222222222222222222")
	ownerAddress    = common.HexToAddress("0x3333333333333333333333333333333333333333")
	creationTxHash  = common.HexToHash("0xabcdef")
)

func testDescription(t *testing.T, rawABI string) *models.ContractDescription {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(rawABI))
	require.NoError(t, err)
	return &models.ContractDescription{
		Name:         "MintMuseNFT",
		SourcePath:   "contracts/MintMuseNFT.sol",
		ArtifactPath: "artifacts/contracts/MintMuseNFT.sol/MintMuseNFT.json",
		Bytecode:     []byte{0x60, 0x80, 0x60, 0x40},
		ABI:          parsed,
		RawABI:       []byte(rawABI),
	}
}

func testSigner() *models.Signer {
	return &models.Signer{Name: "deployer", Address: deployerAddress, Source: models.SignerSourceNode}
}

func localNetwork() *config.Network {
	return &config.Network{Name: "localhost", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"}
}

func sepoliaNetwork() *config.Network {
	return &config.Network{
		Name:        "sepolia",
		ChainID:     11155111,
		RPCURL:      "https://rpc.sepolia.org",
		ExplorerURL: "https://sepolia.etherscan.io",
	}
}
