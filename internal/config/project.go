package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/samber/lo"
)

// ProjectFileName is the project configuration file looked up from the project root
const ProjectFileName = "mintmuse.toml"

// LoadedProject is a parsed mintmuse.toml with env vars expanded
type LoadedProject struct {
	File config.ProjectFile
	// AccountOrder preserves the declaration order of [accounts.*] tables
	AccountOrder []string
	// Exists is false when no mintmuse.toml was found and defaults are used
	Exists bool
}

// loadEnvFiles loads .env files from the project root for variable expansion
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				slog.Warn("failed to load env file", "path", envFile, "error", err)
			}
		}
	}
}

// LoadProjectFile loads and parses mintmuse.toml. A missing file is not an
// error: the zero project with Exists=false is returned.
func LoadProjectFile(projectRoot string) (*LoadedProject, error) {
	loadEnvFiles(projectRoot)

	path := filepath.Join(projectRoot, ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &LoadedProject{}, nil
	}

	var file config.ProjectFile
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Debug("ignoring unknown keys in project file", "keys", undecoded)
	}

	loaded := &LoadedProject{
		File:         file,
		AccountOrder: accountOrder(md),
		Exists:       true,
	}

	expandProjectEnv(&loaded.File)
	return loaded, nil
}

// accountOrder returns [accounts.<name>] table names in the order they were declared
func accountOrder(md toml.MetaData) []string {
	var order []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != "accounts" {
			continue
		}
		if !seen[key[1]] {
			seen[key[1]] = true
			order = append(order, key[1])
		}
	}
	return order
}

// expandProjectEnv expands ${VAR} references in every string value that may hold one
func expandProjectEnv(file *config.ProjectFile) {
	for name, network := range file.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		file.Networks[name] = network
	}

	for name, account := range file.Accounts {
		// Reported when the account is used, so unrelated commands still run
		account.MissingEnv = lo.Uniq(append(UnsetEnvVars(account.PrivateKey), UnsetEnvVars(account.Address)...))
		account.PrivateKey = os.ExpandEnv(account.PrivateKey)
		account.Address = os.ExpandEnv(account.Address)
		file.Accounts[name] = account
	}

	file.Deploy.Owner = os.ExpandEnv(file.Deploy.Owner)
	file.Deploy.Output = os.ExpandEnv(file.Deploy.Output)
	file.Generator.URL = os.ExpandEnv(file.Generator.URL)
}
