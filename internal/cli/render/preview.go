package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// maxInlineURL keeps data: URLs from flooding the terminal
const maxInlineURL = 96

// PreviewRenderer renders generated previews
type PreviewRenderer struct {
	out io.Writer
}

// NewPreviewRenderer creates a new preview renderer
func NewPreviewRenderer(out io.Writer) *PreviewRenderer {
	return &PreviewRenderer{
		out: out,
	}
}

// Render renders the preview URL and metadata
func (r *PreviewRenderer) Render(result *usecase.GeneratePreviewResult) error {
	preview := result.Preview

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "🎨 Preview for %q\n", preview.Prompt)

	url := preview.PreviewURL
	if preview.IsDataURL() && len(url) > maxInlineURL {
		url = fmt.Sprintf("%s... (%d bytes, use --save to write it to a file)", url[:maxInlineURL], len(url))
	}
	fmt.Fprintf(r.out, "Preview URL: %s\n", url)

	fmt.Fprintln(r.out, "Metadata:")
	fmt.Fprintln(r.out, preview.MetadataString())

	if result.SavedPath != "" {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Saved %s to %s", result.MediaType, displayPath(result.SavedPath))))
	}
	return nil
}
