package cli

import (
	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// NewMintCmd creates the mint command
func NewMintCmd() *cobra.Command {
	var artifactPath string

	cmd := &cobra.Command{
		Use:   "mint <recipient> <token-uri>",
		Short: "Mint a token through the published contract",
		Long: `Call mintNFT(recipient, tokenURI) on the contract described by the
published artifact file, signed by the resolved account, and wait for the
transaction to be mined.

Examples:
  mintmuse mint 0x70997970C51812dc3A010C7d01b50e0d17dc79C8 ipfs://bafy.../1.json
  mintmuse mint 0x7099... https://example.com/meta/1.json --artifact ./MintMuseNFT.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.MintToken.Run(cmd.Context(), usecase.MintTokenParams{
				Recipient:    args[0],
				TokenURI:     args[1],
				ArtifactPath: artifactPath,
			})
			if err != nil {
				return err
			}

			return render.NewMintRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&artifactPath, "artifact", "", "Published artifact file (defaults to the deploy output)")
	cmd.Flags().String("sender", "", "Account name from mintmuse.toml to sign with")

	return cmd
}
