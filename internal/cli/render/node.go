package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// NodeRenderer renders `mintmuse dev node` results
type NodeRenderer struct {
	out io.Writer
}

// NewNodeRenderer creates a new node renderer
func NewNodeRenderer(out io.Writer) *NodeRenderer {
	return &NodeRenderer{out: out}
}

// Render prints the outcome of a start, stop, restart or status
func (r *NodeRenderer) Render(result *usecase.DevNodeResult) error {
	if result.Op == usecase.NodeStatus {
		r.renderStatus(result)
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(result.Message))
	if result.Status == nil {
		return nil
	}
	t := newTable(table.Row{"RPC URL", "Chain ID", "Logs"})
	chainID := "-"
	if result.Status.ChainID != 0 {
		chainID = fmt.Sprint(result.Status.ChainID)
	}
	t.AppendRow(table.Row{result.Status.RPCURL, chainID, displayPath(result.Status.LogFile)})
	fmt.Fprintln(r.out, t.Render())
	return nil
}

func (r *NodeRenderer) renderStatus(result *usecase.DevNodeResult) {
	status, instance := result.Status, result.Instance
	faint := color.New(color.Faint)

	if !status.Running {
		fmt.Fprintf(r.out, "%s %s is not running\n", color.RedString("●"), instance.Name)
		faint.Fprintf(r.out, "  pid file: %s\n", displayPath(instance.PidFile))
		faint.Fprintf(r.out, "  log file: %s\n", displayPath(instance.LogFile))
		return
	}

	health := color.GreenString("responding (chain %d)", status.ChainID)
	if !status.RPCHealthy {
		health = color.RedString("not responding")
	}
	fmt.Fprintf(r.out, "%s %s is running (PID %d)\n", color.GreenString("●"), instance.Name, status.PID)
	fmt.Fprintf(r.out, "  rpc:      %s, %s\n", status.RPCURL, health)
	if !status.RPCHealthy && status.Error != "" {
		faint.Fprintf(r.out, "            %s\n", status.Error)
	}
	faint.Fprintf(r.out, "  log file: %s\n", displayPath(status.LogFile))
}

// RenderLogsHeader precedes a log stream
func (r *NodeRenderer) RenderLogsHeader(result *usecase.DevNodeResult) {
	color.New(color.Faint).Fprintf(r.out, "==> %s <== (Ctrl+C to stop)\n", displayPath(result.Status.LogFile))
}
