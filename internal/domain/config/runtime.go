package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Network *Network // resolved from [networks.<name>]

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Resolved configurations
	Accounts  []NamedAccount // declaration order from mintmuse.toml
	Networks  map[string]NetworkConfig
	Deploy    DeployConfig
	Generator GeneratorConfig
}

// Network represents network configuration
type Network struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// IsLocal reports whether the network is a local development chain
func (n *Network) IsLocal() bool {
	return n != nil && (n.ChainID == 31337 || n.ChainID == 1337)
}

// ConfirmationStrategy selects how a deployment transaction is confirmed
type ConfirmationStrategy string

const (
	// ConfirmationLegacy waits for the receipt and reads the contract address from it
	ConfirmationLegacy ConfirmationStrategy = "legacy"
	// ConfirmationExplicit waits until the contract code is present before reading the address
	ConfirmationExplicit ConfirmationStrategy = "explicit"
)

// IsValid reports whether s is a recognized strategy
func (s ConfirmationStrategy) IsValid() bool {
	return s == ConfirmationLegacy || s == ConfirmationExplicit
}

// DeployConfig holds the [deploy] section plus flag overrides
type DeployConfig struct {
	Contract             string
	ArtifactsDir         string // absolute
	OutputPath           string // absolute, resolved once from the project root
	Owner                string // constructor owner; empty means the deployer
	Sender               string // account name; empty means first available
	ConfirmationStrategy ConfirmationStrategy
}

// GeneratorConfig points at the preview generation service
type GeneratorConfig struct {
	URL     string
	Timeout time.Duration
}

// NamedAccount is an [accounts.<name>] entry with its name attached
type NamedAccount struct {
	Name string
	AccountConfig
}
