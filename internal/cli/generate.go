package cli

import (
	"strings"

	"github.com/mintmuse/mintmuse-cli/internal/cli/render"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var savePath string

	cmd := &cobra.Command{
		Use:     "generate <prompt...>",
		Aliases: []string{"gen"},
		Short:   "Request an artwork preview from the generation service",
		Long: `Send a prompt to the generation service and show the returned preview
URL and token metadata. With --save, an embedded data: preview is decoded and
written to a file.

Examples:
  mintmuse generate a lighthouse in a storm, oil painting
  mintmuse generate "pixel art cat" --save cat.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.GeneratePreview.Run(cmd.Context(), usecase.GeneratePreviewParams{
				Prompt:   strings.Join(args, " "),
				SavePath: savePath,
			})
			if err != nil {
				return err
			}

			return render.NewPreviewRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "", "Write the decoded preview image to this file")
	cmd.Flags().String("generator-url", "", "Generation endpoint (default http://localhost:8000/generate)")

	return cmd
}
