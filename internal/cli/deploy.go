package cli

import (
	"errors"

	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Deploy the contract and publish its address and ABI",
		Long: `Deploy a compiled contract from the build artifacts and publish
{"address", "abi"} to the artifact file read by the frontend and the minting
backend.

The first available account signs: the --sender account, then the first
private key account in mintmuse.toml, then the node's first unlocked account.

Confirmation strategies:
  explicit  wait until code is present at the new address (default)
  legacy    read the address from the mined receipt

Examples:
  mintmuse deploy
  mintmuse deploy MintMuseNFT --network sepolia
  mintmuse deploy --confirmation-strategy legacy --output ./MintMuseNFT.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployContractParams{Owner: owner}
			if len(args) == 1 {
				params.Contract = args[0]
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout())
			result, err := app.DeployContract.Run(cmd.Context(), params)
			if err != nil {
				var publishErr *usecase.PublishAfterDeployError
				if errors.As(err, &publishErr) {
					render.NewDeployRenderer(cmd.ErrOrStderr()).RenderPublishHint(publishErr, app.Config.ProjectRoot)
				}
				return err
			}

			return renderer.Render(result)
		},
	}

	cmd.Flags().String("contract", "", "Contract to deploy (default from mintmuse.toml, then MintMuseNFT)")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner passed to the constructor (defaults to the deployer)")
	cmd.Flags().String("output", "", "Artifact file to publish (default ../../solidity/<contract>.json)")
	cmd.Flags().String("artifacts-dir", "", "Directory holding compiled build artifacts")
	cmd.Flags().String("confirmation-strategy", "", "How to confirm the deployment: explicit or legacy")
	cmd.Flags().String("sender", "", "Account name from mintmuse.toml to sign with")

	return cmd
}
