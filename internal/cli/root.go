package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mintmuse/mintmuse-cli/internal/adapters/progress"
	"github.com/mintmuse/mintmuse-cli/internal/app"
	"github.com/mintmuse/mintmuse-cli/internal/config"
	"github.com/spf13/cobra"
)

type appContextKey struct{}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mintmuse",
		Short: "Deploy and operate the MintMuse NFT contract",
		Long: `mintmuse deploys the MintMuse NFT contract from compiled build artifacts,
publishes its address and ABI for the frontend and minting backend, and
drives the surrounding workflow: minting, preview generation and a local
development node.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipAppInit(cmd) {
				return nil
			}
			return attachApp(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "Log debug output and show stage names")
	flags.Bool("non-interactive", false, "Never prompt; confirmations are answered yes")
	flags.StringP("network", "n", "", "Network from mintmuse.toml, <NAME>_RPC_URL or localhost")
	flags.Duration("timeout", config.DefaultTimeout, "Give up on the whole command after this long")

	rootCmd.AddGroup(
		&cobra.Group{ID: "main", Title: "Contract Commands"},
		&cobra.Group{ID: "management", Title: "Project Commands"},
	)
	addGroup(rootCmd, "main", NewDeployCmd(), NewPublishCmd(), NewMintCmd(), NewGenerateCmd())
	addGroup(rootCmd, "management", NewInitCmd(), NewAccountsCmd(), NewNetworksCmd(), NewConfigCmd(), NewDevCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func addGroup(root *cobra.Command, groupID string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.GroupID = groupID
		root.AddCommand(cmd)
	}
}

// attachApp loads configuration for the project containing the working
// directory, wires the app and stores it on the command context. Teardown
// runs after RunE whether it succeeds or not.
func attachApp(cmd *cobra.Command) error {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	v := config.SetupViper(projectRoot, cmd)

	reporter := progress.NewSpinnerProgressReporterWithWriter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if v.GetBool("debug") {
		reporter.WithStageNames()
	}

	instance, cleanup, err := app.InitApp(v, reporter)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	base := context.WithValue(cmd.Context(), appContextKey{}, instance)
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if instance.Config.Timeout > 0 {
		ctx, cancel = context.WithTimeout(base, instance.Config.Timeout)
	} else {
		ctx, cancel = context.WithCancel(base)
	}
	cmd.SetContext(ctx)

	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		defer func() {
			reporter.Stop()
			cancel()
			cleanup()
		}()
		if run == nil {
			return cmd.Help()
		}
		return run(cmd, args)
	}
	return nil
}

// skipAppInit reports whether cmd runs without a project or network
func skipAppInit(cmd *cobra.Command) bool {
	if !cmd.Runnable() {
		return true
	}
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// getApp returns the app attached by the root command
func getApp(cmd *cobra.Command) (*app.App, error) {
	instance, ok := cmd.Context().Value(appContextKey{}).(*app.App)
	if !ok || instance == nil {
		return nil, errors.New("app not initialized")
	}
	return instance, nil
}
