package cli

import (
	"strings"

	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	keys := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string { return string(k) })

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit local overrides in .mintmuse/config.local.json",
		Long: `Without a subcommand, prints every managed key with its local override
and the value commands will use.

Local overrides sit between mintmuse.toml and MINTMUSE_* environment
variables; flags still win over both.

Keys: ` + strings.Join(keys, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			view, err := app.LocalSettings.Show(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderView(view)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Store a local override",
			Example: `  mintmuse config set network sepolia
  mintmuse config set confirmation-strategy legacy`,
			Args:      cobra.ExactArgs(2),
			ValidArgs: keys,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := getApp(cmd)
				if err != nil {
					return err
				}
				change, err := app.LocalSettings.Set(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return render.NewConfigRenderer(cmd.OutOrStdout()).RenderChange(change)
			},
		},
		&cobra.Command{
			Use:     "remove <key>",
			Aliases: []string{"rm", "unset"},
			Short:   "Drop a local override",
			Example: `  mintmuse config remove sender`,
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := getApp(cmd)
				if err != nil {
					return err
				}
				change, err := app.LocalSettings.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render.NewConfigRenderer(cmd.OutOrStdout()).RenderChange(change)
			},
		},
	)

	return cmd
}
