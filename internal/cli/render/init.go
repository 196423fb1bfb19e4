package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// InitRenderer renders init command results
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init project result
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	// Show steps
	for _, step := range result.Steps {
		if step.Success {
			if step.Message != "" {
				color.New(color.FgGreen).Fprintf(r.out, "✅ %s\n", step.Message)
			} else {
				color.New(color.FgGreen).Fprintf(r.out, "✅ %s\n", step.Name)
			}
		} else {
			color.New(color.FgRed).Fprintf(r.out, "❌ %s\n", step.Name)
			if step.Message != "" {
				fmt.Fprintf(r.out, "   %s\n", step.Message)
			}
			if step.Error != nil {
				fmt.Fprintf(r.out, "   %s\n", step.Error.Error())
			}
		}
	}

	r.printNextSteps(result)
	return nil
}

func (r *InitRenderer) printNextSteps(result *usecase.InitProjectResult) {
	fmt.Fprintln(r.out)
	if result.AlreadyInitialized {
		color.New(color.FgYellow).Fprintln(r.out, "⚠️  mintmuse was already initialized in this project")
	} else {
		color.New(color.FgGreen, color.Bold).Fprintln(r.out, "🎉 mintmuse initialized successfully!")
	}

	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "📋 Next steps:")

	step := 1
	if !result.ArtifactsFound {
		fmt.Fprintf(r.out, "%d. Compile the contracts so artifacts/ exists\n", step)
		step++
	}
	fmt.Fprintf(r.out, "%d. Copy .env.example to .env and fill in keys and RPC URLs\n", step)
	step++
	fmt.Fprintf(r.out, "%d. Start a local node and deploy:\n", step)
	color.New(color.FgHiBlack).Fprintln(r.out, "   mintmuse dev node start")
	color.New(color.FgHiBlack).Fprintln(r.out, "   mintmuse deploy")
	step++
	fmt.Fprintf(r.out, "%d. Mint a token through the published artifact:\n", step)
	color.New(color.FgHiBlack).Fprintln(r.out, "   mintmuse mint <recipient> <token-uri>")
}
