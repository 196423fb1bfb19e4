package cli

import (
	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter mintmuse.toml and .env.example",
		Long: `Scaffolds mintmuse.toml (networks, accounts, deploy and generator
sections) and .env.example in the project root. Files that already exist
are never overwritten, so init is safe to re-run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, runErr := app.InitProject.Execute(cmd.Context())
			if result != nil {
				// steps completed before a failure are still worth showing
				_ = render.NewInitRenderer(cmd.OutOrStdout()).Render(result)
			}
			return runErr
		},
	}
}
