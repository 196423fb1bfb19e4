package cli

import (
	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// NewPublishCmd creates the publish command
func NewPublishCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the artifact for an already deployed contract",
		Long: `Write {"address", "abi"} for a contract that is already on chain,
without deploying again. Use this when deploy succeeded on chain but the
artifact file could not be written.

The address must hold contract code on the selected network.

Examples:
  mintmuse publish --address 0x5FbDB2315678afecb367f032d93F642f64180aa3
  mintmuse publish --address 0x5FbD... --network sepolia --output ./MintMuseNFT.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			contract, _ := cmd.Flags().GetString("contract")
			result, err := app.PublishArtifact.Run(cmd.Context(), usecase.PublishArtifactParams{
				Address:  address,
				Contract: contract,
			})
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderPublish(result)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Address of the deployed contract")
	cmd.Flags().String("contract", "", "Contract whose ABI is published (default from mintmuse.toml, then MintMuseNFT)")
	cmd.Flags().String("output", "", "Artifact file to publish (default ../../solidity/<contract>.json)")
	cmd.Flags().String("artifacts-dir", "", "Directory holding compiled build artifacts")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}
