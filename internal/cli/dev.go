package cli

import (
	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/spf13/cobra"
)

var nodeOpHelp = map[usecase.NodeOp][2]string{
	usecase.NodeStart:   {"Start a background anvil node", "Starts anvil in the background and waits until it answers eth_chainId.\nFails when the instance is already running."},
	usecase.NodeStop:    {"Stop the anvil node", "Stops the instance. Not running is not an error."},
	usecase.NodeRestart: {"Restart the anvil node on a fresh chain", "Stops the instance when it is running, then starts it again.\nAll chain state is discarded."},
	usecase.NodeStatus:  {"Show whether the anvil node is up", "Reports the PID and whether the RPC endpoint answers."},
	usecase.NodeLogs:    {"Follow the anvil log", "Streams the instance log file until interrupted."},
}

// NewDevCmd creates the dev command
func NewDevCmd() *cobra.Command {
	node := &cobra.Command{
		Use:     "node",
		Aliases: []string{"anvil"},
		Short:   "Run the local anvil node behind the localhost network",
	}
	for _, op := range usecase.NodeOps() {
		node.AddCommand(newNodeOpCmd(op))
	}

	dev := &cobra.Command{
		Use:   "dev",
		Short: "Local development helpers",
	}
	dev.AddCommand(node)
	return dev
}

func newNodeOpCmd(op usecase.NodeOp) *cobra.Command {
	params := usecase.DevNodeParams{Op: op}

	cmd := &cobra.Command{
		Use:   string(op),
		Short: nodeOpHelp[op][0],
		Long:  nodeOpHelp[op][1],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DevNode.Execute(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewNodeRenderer(cmd.OutOrStdout())
			if op == usecase.NodeLogs {
				renderer.RenderLogsHeader(result)
				return app.AnvilManager.StreamLogs(cmd.Context(), result.Instance, cmd.OutOrStdout())
			}
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "anvil0", "Instance name; each name keeps its own pid and log file")
	cmd.Flags().StringVar(&params.Port, "port", "8545", "RPC port")
	if op.Launches() {
		cmd.Flags().StringVar(&params.ChainID, "chain-id", "", "Chain ID (anvil default 31337)")
		cmd.Flags().StringVar(&params.ForkURL, "fork-url", "", "Fork state from this RPC URL")
	}
	return cmd
}
