package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
)

// GeneratePreviewParams contains parameters for preview generation
type GeneratePreviewParams struct {
	Prompt string
	// SavePath writes an embedded data: preview to disk when set
	SavePath string
}

// GeneratePreviewResult contains the generated preview
type GeneratePreviewResult struct {
	Preview   *models.Preview
	SavedPath string
	MediaType string
}

// GeneratePreview asks the generation service for an artwork preview
type GeneratePreview struct {
	generator PreviewGenerator
	writer    FileWriter
	progress  ProgressSink
}

// NewGeneratePreview creates a new GeneratePreview use case
func NewGeneratePreview(generator PreviewGenerator, writer FileWriter, progress ProgressSink) *GeneratePreview {
	return &GeneratePreview{
		generator: generator,
		writer:    writer,
		progress:  progress,
	}
}

// Run sends the prompt and optionally saves the decoded image
func (uc *GeneratePreview) Run(ctx context.Context, params GeneratePreviewParams) (*GeneratePreviewResult, error) {
	prompt := strings.TrimSpace(params.Prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "generating",
		Message: "Generating preview...",
		Spinner: true,
	})
	preview, err := uc.generator.Generate(ctx, prompt)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "generated"})
	if err != nil {
		return nil, err
	}
	preview.Prompt = prompt

	result := &GeneratePreviewResult{Preview: preview}
	if params.SavePath == "" {
		return result, nil
	}

	mediaType, data, err := preview.DecodeImage()
	if err != nil {
		return nil, fmt.Errorf("cannot save preview: %w", err)
	}
	if err := uc.writer.WriteFile(ctx, params.SavePath, data); err != nil {
		return nil, fmt.Errorf("failed to save preview: %w", err)
	}
	result.SavedPath = params.SavePath
	result.MediaType = mediaType
	return result, nil
}
