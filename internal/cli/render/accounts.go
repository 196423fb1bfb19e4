package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// AccountsRenderer renders resolvable signer accounts
type AccountsRenderer struct {
	out     io.Writer
	network *config.Network
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer, network *config.Network) *AccountsRenderer {
	return &AccountsRenderer{
		out:     out,
		network: network,
	}
}

// Render renders the accounts table. The first row is the deploy signer.
func (r *AccountsRenderer) Render(result *usecase.ListAccountsResult) error {
	if len(result.Accounts) == 0 {
		fmt.Fprintln(r.out, FormatWarning("No accounts available: configure [accounts] in mintmuse.toml or unlock an account on the node"))
		return nil
	}

	if r.network != nil {
		fmt.Fprintf(r.out, "👛 Accounts on %s (chain %d):\n\n", r.network.Name, r.network.ChainID)
	}

	t := newTable(table.Row{"", "Name", "Address", "Source", "Balance (ETH)"})
	for i, account := range result.Accounts {
		marker := " "
		if i == 0 {
			marker = color.GreenString("*")
		}
		name := account.Signer.Name
		if name == "" {
			name = "-"
		}
		balance := account.Balance
		if account.Error != nil {
			balance = color.RedString("unavailable")
		}
		t.AppendRow(table.Row{marker, name, account.Signer.Address.Hex(), string(account.Signer.Source), balance})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)
	color.New(color.Faint).Fprintln(r.out, "* used by deploy and mint")

	return nil
}
