package cli

import (
	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "Show the networks deploy and mint can target",
		Long: `Lists [networks] from mintmuse.toml, the built-in localhost node and
any network exported as <NAME>_RPC_URL, with chain IDs and explorers.
The active network is marked with *.

Networks declared without chain_id are asked with eth_chainId once and
the answer is cached under .mintmuse/cache. RPC API keys are masked.`,
		Aliases: []string{"network"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}
}
