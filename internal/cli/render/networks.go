package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// NetworksRenderer renders `mintmuse networks`
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList prints one row per network; unresolvable networks
// keep their row with the reason in place of the RPC URL.
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	t := newTable(table.Row{"", "Network", "Chain ID", "RPC URL", "Explorer"})
	failed := 0
	for _, n := range result.Networks {
		marker, name := " ", n.Name
		if n.Current {
			marker, name = color.GreenString("*"), color.New(color.Bold).Sprint(n.Name)
		}
		if n.Error != nil {
			failed++
			t.AppendRow(table.Row{color.RedString("!"), name, "-", color.RedString(n.Error.Error()), "-"})
			continue
		}
		explorer := n.Explorer
		if explorer == "" {
			explorer = "-"
		}
		t.AppendRow(table.Row{marker, name, n.ChainID, n.RPCURL, explorer})
	}
	fmt.Fprintln(r.out, t.Render())

	if failed > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d of %d networks could not be resolved", failed, len(result.Networks))))
	}
	return nil
}
