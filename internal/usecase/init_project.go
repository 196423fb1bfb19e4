package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
)

// InitProject handles project initialization
type InitProject struct {
	cfg        *config.RuntimeConfig
	fileWriter FileWriter
	progress   ProgressSink
}

// NewInitProject creates a new init project use case
func NewInitProject(cfg *config.RuntimeConfig, fileWriter FileWriter, progress ProgressSink) *InitProject {
	return &InitProject{
		cfg:        cfg,
		fileWriter: fileWriter,
		progress:   progress,
	}
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	ArtifactsFound     bool
	ProjectFileCreated bool
	EnvExampleCreated  bool
	AlreadyInitialized bool
	Steps              []InitStep
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Message string
	Error   error
}

const projectFileTemplate = `# mintmuse.toml

# --- Networks ---
# localhost is built in (http://127.0.0.1:8545, chain 31337).
# Networks without chain_id are looked up once with eth_chainId and cached.

[networks.sepolia]
rpc_url = "${SEPOLIA_RPC_URL}"

# --- Accounts ---
# Tried in declaration order. Without any, the node's first unlocked account signs.
# Uncomment after setting DEPLOYER_PRIVATE_KEY in .env.

# [accounts.deployer]
# type = "private_key"
# private_key = "${DEPLOYER_PRIVATE_KEY}"

# --- Deploy ---

[deploy]
contract = "MintMuseNFT"
artifacts_dir = "artifacts"
output = "../../solidity/MintMuseNFT.json"
confirmation_strategy = "explicit"

# --- Preview generation ---

[generator]
url = "http://localhost:8000/generate"
timeout = "2m"
`

const envExampleTemplate = `# mintmuse configuration

# Private key used by [accounts.deployer]
DEPLOYER_PRIVATE_KEY=

# RPC URLs
SEPOLIA_RPC_URL=
`

// Execute writes a starter mintmuse.toml and .env.example. Existing files
// are left alone.
func (i *InitProject) Execute(ctx context.Context) (*InitProjectResult, error) {
	result := &InitProjectResult{
		Steps: []InitStep{},
	}

	step, found := i.checkArtifacts(ctx)
	result.ArtifactsFound = found
	result.Steps = append(result.Steps, step)

	step, created := i.writeIfMissing(ctx, "Create mintmuse.toml", "mintmuse.toml", projectFileTemplate)
	result.Steps = append(result.Steps, step)
	if step.Error != nil {
		return result, step.Error
	}
	result.ProjectFileCreated = created
	result.AlreadyInitialized = !created

	step, created = i.writeIfMissing(ctx, "Create Environment Example", ".env.example", envExampleTemplate)
	result.Steps = append(result.Steps, step)
	if step.Error != nil {
		return result, step.Error
	}
	result.EnvExampleCreated = created

	return result, nil
}

func (i *InitProject) checkArtifacts(ctx context.Context) (InitStep, bool) {
	dir := i.cfg.Deploy.ArtifactsDir
	if dir == "" {
		dir = filepath.Join(i.cfg.ProjectRoot, "artifacts")
	}

	exists, err := i.fileWriter.FileExists(ctx, dir)
	if err != nil || !exists {
		// Not fatal: contracts may simply not be compiled yet
		return InitStep{
			Name:    "Check Build Artifacts",
			Success: true,
			Message: fmt.Sprintf("No build artifacts at %s yet, compile the contracts before deploying", dir),
		}, false
	}

	return InitStep{
		Name:    "Check Build Artifacts",
		Success: true,
		Message: fmt.Sprintf("Build artifacts found at %s", dir),
	}, true
}

func (i *InitProject) writeIfMissing(ctx context.Context, name, file, content string) (InitStep, bool) {
	path := filepath.Join(i.cfg.ProjectRoot, file)

	exists, err := i.fileWriter.FileExists(ctx, path)
	if err != nil {
		return InitStep{
			Name:    name,
			Success: false,
			Error:   fmt.Errorf("failed to check %s: %w", file, err),
		}, false
	}

	if exists {
		return InitStep{
			Name:    name,
			Success: true,
			Message: fmt.Sprintf("%s already exists", file),
		}, false
	}

	if err := i.fileWriter.WriteFile(ctx, path, []byte(content)); err != nil {
		return InitStep{
			Name:    name,
			Success: false,
			Error:   fmt.Errorf("failed to create %s: %w", file, err),
		}, false
	}

	i.progress.Info(fmt.Sprintf("Created %s", file))
	return InitStep{
		Name:    name,
		Success: true,
		Message: fmt.Sprintf("Created %s", file),
	}, true
}
