package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
)

// MintRenderer renders mint results
type MintRenderer struct {
	out io.Writer
}

// NewMintRenderer creates a new mint renderer
func NewMintRenderer(out io.Writer) *MintRenderer {
	return &MintRenderer{
		out: out,
	}
}

// Render renders a mined mint transaction
func (r *MintRenderer) Render(result *models.MintResult) error {
	if result.Status == models.MintStatusSuccess {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Minted to %s", result.Recipient.Hex())))
	} else {
		fmt.Fprintln(r.out, color.RedString("❌ Mint transaction failed"))
	}

	fmt.Fprintf(r.out, "Contract:     %s\n", result.Contract.Hex())
	fmt.Fprintf(r.out, "Token URI:    %s\n", result.TokenURI)
	fmt.Fprintf(r.out, "Transaction:  %s\n", result.TxHash.Hex())
	fmt.Fprintf(r.out, "Block:        %d\n", result.BlockNumber)
	fmt.Fprintf(r.out, "Gas used:     %d\n", result.GasUsed)
	if result.ExplorerLink != "" {
		fmt.Fprintf(r.out, "Explorer:     %s\n", result.ExplorerLink)
	}
	return nil
}
