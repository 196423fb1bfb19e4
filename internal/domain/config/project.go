package config

// ProjectFile represents the full mintmuse.toml configuration file
type ProjectFile struct {
	Networks  map[string]NetworkConfig `toml:"networks"`
	Accounts  map[string]AccountConfig `toml:"accounts"`
	Deploy    DeploySection            `toml:"deploy"`
	Generator GeneratorSection         `toml:"generator"`
}

// NetworkConfig represents a [networks.<name>] section
type NetworkConfig struct {
	RPCURL      string `toml:"rpc_url"`
	ChainID     uint64 `toml:"chain_id,omitempty"`
	ExplorerURL string `toml:"explorer_url,omitempty"`
}

type AccountType string

var (
	AccountTypePrivateKey AccountType = "private_key"
	AccountTypeNode       AccountType = "node"
)

// AccountConfig represents a named signing entity in [accounts.*] sections.
type AccountConfig struct {
	Type       AccountType `toml:"type"`
	PrivateKey string      `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Address    string      `toml:"address,omitempty"`     // For node accounts

	// MissingEnv names ${VAR} references that were unset when the file was loaded
	MissingEnv []string `toml:"-"`
}

// DeploySection represents the [deploy] section
type DeploySection struct {
	Contract             string `toml:"contract,omitempty"`
	ArtifactsDir         string `toml:"artifacts_dir,omitempty"`
	Output               string `toml:"output,omitempty"`
	Owner                string `toml:"owner,omitempty"`
	Sender               string `toml:"sender,omitempty"`
	ConfirmationStrategy string `toml:"confirmation_strategy,omitempty"`
}

// GeneratorSection represents the [generator] section
type GeneratorSection struct {
	URL     string `toml:"url,omitempty"`
	Timeout string `toml:"timeout,omitempty"`
}
