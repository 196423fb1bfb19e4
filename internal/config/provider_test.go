package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("network", "", "")
	cmd.Flags().String("contract", "", "")
	cmd.Flags().String("output", "", "")
	cmd.Flags().String("confirmation-strategy", "", "")
	cmd.Flags().String("sender", "", "")
	cmd.Flags().Duration("timeout", 0, "")
	return cmd
}

func TestProvider(t *testing.T) {
	t.Run("defaults without project file", func(t *testing.T) {
		root := t.TempDir()
		cfg, err := Provider(SetupViper(root, newTestCommand()))
		require.NoError(t, err)

		assert.Equal(t, DefaultContract, cfg.Deploy.Contract)
		assert.Equal(t, filepath.Join(root, "artifacts"), cfg.Deploy.ArtifactsDir)
		assert.Equal(t, filepath.Join(root, "..", "..", "solidity", "MintMuseNFT.json"), cfg.Deploy.OutputPath)
		assert.Equal(t, config.ConfirmationExplicit, cfg.Deploy.ConfirmationStrategy)
		assert.Equal(t, DefaultGeneratorURL, cfg.Generator.URL)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
		assert.Equal(t, LocalNetworkName, cfg.Network.Name)
		assert.Equal(t, uint64(LocalChainID), cfg.Network.ChainID)
		assert.Empty(t, cfg.Accounts)
	})

	t.Run("project file values", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, `
[networks.sepolia]
rpc_url = "https://sepolia.example"
chain_id = 11155111

[accounts.ops]
type = "node"

[accounts.deployer]
type = "private_key"
private_key = "0x01"

[deploy]
contract = "Gallery"
artifacts_dir = "out"
output = "abi/Gallery.json"
confirmation_strategy = "legacy"
sender = "deployer"

[generator]
url = "http://gen.internal/generate"
timeout = "30s"
`)
		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("network", "sepolia"))

		cfg, err := Provider(SetupViper(root, cmd))
		require.NoError(t, err)

		assert.Equal(t, "Gallery", cfg.Deploy.Contract)
		assert.Equal(t, filepath.Join(root, "out"), cfg.Deploy.ArtifactsDir)
		assert.Equal(t, filepath.Join(root, "abi", "Gallery.json"), cfg.Deploy.OutputPath)
		assert.Equal(t, config.ConfirmationLegacy, cfg.Deploy.ConfirmationStrategy)
		assert.Equal(t, "deployer", cfg.Deploy.Sender)
		assert.Equal(t, "http://gen.internal/generate", cfg.Generator.URL)
		assert.Equal(t, 30*time.Second, cfg.Generator.Timeout)
		assert.Equal(t, "sepolia", cfg.Network.Name)
		require.Len(t, cfg.Accounts, 2)
		assert.Equal(t, "ops", cfg.Accounts[0].Name)
		assert.Equal(t, "deployer", cfg.Accounts[1].Name)
	})

	t.Run("flags override project file", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, `
[deploy]
confirmation_strategy = "legacy"
output = "/abs/out.json"
`)
		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("confirmation-strategy", "explicit"))
		require.NoError(t, cmd.Flags().Set("timeout", "90s"))

		cfg, err := Provider(SetupViper(root, cmd))
		require.NoError(t, err)
		assert.Equal(t, config.ConfirmationExplicit, cfg.Deploy.ConfirmationStrategy)
		assert.Equal(t, "/abs/out.json", cfg.Deploy.OutputPath)
		assert.Equal(t, 90*time.Second, cfg.Timeout)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("MINTMUSE_CONTRACT", "Collectible")
		root := t.TempDir()

		cfg, err := Provider(SetupViper(root, newTestCommand()))
		require.NoError(t, err)
		assert.Equal(t, "Collectible", cfg.Deploy.Contract)
		assert.Equal(t, filepath.Join(root, "..", "..", "solidity", "Collectible.json"), cfg.Deploy.OutputPath)
	})

	t.Run("invalid confirmation strategy", func(t *testing.T) {
		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("confirmation-strategy", "eventually"))

		_, err := Provider(SetupViper(t.TempDir(), cmd))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidConfirmationStrategy)
	})

	t.Run("unknown network", func(t *testing.T) {
		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("network", "mm-nonexistent"))

		_, err := Provider(SetupViper(t.TempDir(), cmd))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mm-nonexistent")
	})
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("..", "..", "solidity", "MintMuseNFT.json"), DefaultOutputPath("MintMuseNFT"))
}
