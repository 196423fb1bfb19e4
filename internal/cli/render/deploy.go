package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	projectconfig "github.com/mintmuse/mintmuse-cli/internal/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// DeployRenderer renders deploy and publish results
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{
		out: out,
	}
}

// Render prints the deployment summary. Stage lines were already printed
// by the progress sink.
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	address, err := result.Deployment.Address()
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "📦 Deployment Summary:")
	fmt.Fprintf(r.out, "Contract:     %s\n", result.Contract.Name)
	fmt.Fprintf(r.out, "Address:      %s\n", color.GreenString(address.Hex()))
	fmt.Fprintf(r.out, "Network:      %s (chain %d)\n", result.Network.Name, result.Network.ChainID)
	fmt.Fprintf(r.out, "Deployer:     %s\n", result.Signer.DisplayName())
	fmt.Fprintf(r.out, "Transaction:  %s\n", result.Deployment.TxHash.Hex())
	fmt.Fprintf(r.out, "Block:        %d\n", result.Deployment.BlockNumber())
	fmt.Fprintf(r.out, "Gas used:     %d\n", result.Deployment.GasUsed())
	fmt.Fprintf(r.out, "Confirmation: %s\n", result.Strategy)
	fmt.Fprintf(r.out, "Artifact:     %s\n", displayPath(result.OutputPath))
	if link := addressLink(result.Network, address.Hex()); link != "" {
		fmt.Fprintf(r.out, "Explorer:     %s\n", link)
	}
	return nil
}

// RenderPublish prints the result of re-publishing an existing deployment
func (r *DeployRenderer) RenderPublish(result *usecase.PublishArtifactResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Published %s at %s", result.Contract.Name, result.Artifact.Address)))
	fmt.Fprintf(r.out, "📁 artifact: %s\n", displayPath(result.OutputPath))
	return nil
}

// RenderPublishHint tells the operator how to recover after a failed publish.
// The suggested command repeats every setting that publish would not pick by
// default for a project rooted at projectRoot.
func (r *DeployRenderer) RenderPublishHint(perr *usecase.PublishAfterDeployError, projectRoot string) {
	fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("The contract is live at %s (tx %s) but %s was not written.",
		perr.Address.Hex(), perr.TxHash.Hex(), displayPath(perr.Path))))
	fmt.Fprintln(r.out, "Fix the problem and publish without redeploying:")
	color.New(color.FgHiBlack).Fprintf(r.out, "   %s\n", publishCommand(perr, projectRoot))
}

func publishCommand(perr *usecase.PublishAfterDeployError, projectRoot string) string {
	args := []string{"mintmuse", "publish", "--address", perr.Address.Hex()}
	if perr.Network != "" && perr.Network != projectconfig.DefaultNetwork {
		args = append(args, "--network", shellQuote(perr.Network))
	}
	contract := perr.Contract
	if contract == "" {
		contract = projectconfig.DefaultContract
	}
	if contract != projectconfig.DefaultContract {
		args = append(args, "--contract", shellQuote(contract))
	}
	defaultPath := filepath.Join(projectRoot, projectconfig.DefaultOutputPath(contract))
	if perr.Path != "" && filepath.Clean(perr.Path) != defaultPath {
		// publish resolves --output against the project root
		output := perr.Path
		if rel, err := filepath.Rel(projectRoot, perr.Path); err == nil {
			output = rel
		}
		args = append(args, "--output", shellQuote(output))
	}
	return strings.Join(args, " ")
}

func shellQuote(s string) string {
	if strings.ContainsAny(s, " \t'\"$\\") {
		return strconv.Quote(s)
	}
	return s
}

func addressLink(network *config.Network, address string) string {
	if network == nil || network.ExplorerURL == "" {
		return ""
	}
	return strings.TrimRight(network.ExplorerURL, "/") + "/address/" + address
}
