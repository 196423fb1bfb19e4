package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Defaults applied when neither flags, environment, local config nor mintmuse.toml set a value
const (
	DefaultNetwork              = LocalNetworkName
	DefaultContract             = "MintMuseNFT"
	DefaultArtifactsDir         = "artifacts"
	DefaultConfirmationStrategy = config.ConfirmationExplicit
	DefaultGeneratorURL         = "http://localhost:8000/generate"
	DefaultTimeout              = 5 * time.Minute
	DataDirName                 = ".mintmuse"
)

// DefaultOutputPath returns the historical artifact location for a contract,
// two directories above the project root.
func DefaultOutputPath(contract string) string {
	return filepath.Join("..", "..", "solidity", contract+".json")
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	project, err := LoadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}
	file := project.File

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        DefaultTimeout,
	}
	if v.IsSet("timeout") {
		cfg.Timeout = v.GetDuration("timeout")
	}

	// Deploy settings
	contract := pick(v, "contract", file.Deploy.Contract, DefaultContract)
	strategy := config.ConfirmationStrategy(strings.ToLower(
		pick(v, "confirmation_strategy", file.Deploy.ConfirmationStrategy, string(DefaultConfirmationStrategy)),
	))
	if !strategy.IsValid() {
		return nil, fmt.Errorf("%w %q: expected %q or %q", domain.ErrInvalidConfirmationStrategy,
			strategy, config.ConfirmationLegacy, config.ConfirmationExplicit)
	}

	cfg.Deploy = config.DeployConfig{
		Contract:             contract,
		ArtifactsDir:         resolvePath(projectRoot, pick(v, "artifacts_dir", file.Deploy.ArtifactsDir, DefaultArtifactsDir)),
		OutputPath:           resolvePath(projectRoot, pick(v, "output", file.Deploy.Output, DefaultOutputPath(contract))),
		Owner:                pick(v, "owner", file.Deploy.Owner, ""),
		Sender:               pick(v, "sender", file.Deploy.Sender, ""),
		ConfirmationStrategy: strategy,
	}

	// Generator settings
	cfg.Generator = config.GeneratorConfig{
		URL:     pick(v, "generator_url", file.Generator.URL, DefaultGeneratorURL),
		Timeout: 2 * time.Minute,
	}
	if file.Generator.Timeout != "" {
		d, err := time.ParseDuration(file.Generator.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid generator timeout %q: %w", file.Generator.Timeout, err)
		}
		cfg.Generator.Timeout = d
	}

	// Accounts in declaration order
	cfg.Accounts = lo.FilterMap(project.AccountOrder, func(name string, _ int) (config.NamedAccount, bool) {
		acct, ok := file.Accounts[name]
		return config.NamedAccount{Name: name, AccountConfig: acct}, ok
	})

	cfg.Networks = file.Networks

	// Resolve network
	networkName := pick(v, "network", "", DefaultNetwork)
	resolver := ProvideNetworkResolver(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	network, err := resolver.Resolve(ctx, networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = network

	return cfg, nil
}

// pick returns the viper value when explicitly set (flag, env, local config),
// then the project file value, then the default.
func pick(v *viper.Viper, key, fileValue, def string) string {
	if v.IsSet(key) {
		if val := v.GetString(key); val != "" {
			return val
		}
	}
	if fileValue != "" {
		return fileValue
	}
	return def
}

// resolvePath makes p absolute against the project root, once
func resolvePath(projectRoot, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(projectRoot, p)
}

// FindProjectRoot walks up from current directory to find mintmuse.toml.
// Without one, the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("MINTMUSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			panic(err)
		}
	})

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for the configured networks
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.DataDir, cfg.Networks)
}
