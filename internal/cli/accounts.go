package cli

import (
	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts that can sign on the selected network",
		Long: `List the private key accounts from mintmuse.toml followed by the
accounts unlocked on the node, in the order deploy tries them, with their
current balances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListAccounts.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewAccountsRenderer(cmd.OutOrStdout(), app.Config.Network).Render(result)
		},
	}

	cmd.Flags().String("sender", "", "Account name from mintmuse.toml to list first")

	return cmd
}
