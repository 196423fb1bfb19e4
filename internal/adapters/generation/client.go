package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

const (
	// maxErrorBody bounds how much of a failed response is echoed back
	maxErrorBody = 512
	// maxResponseBytes bounds a response body; previews may embed the image as a data URL
	maxResponseBytes = 32 << 20
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Client talks to the preview generation service
type Client struct {
	endpoint    string
	httpClient  *http.Client
	maxResponse int64
	log         *slog.Logger
}

// NewClient creates a generation client for the configured endpoint
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.Generator.URL,
		httpClient: &http.Client{
			Timeout: cfg.Generator.Timeout,
		},
		maxResponse: maxResponseBytes,
		log:         log.With("component", "GenerationClient"),
	}
}

// Generate posts the prompt and returns the preview
func (c *Client) Generate(ctx context.Context, prompt string) (*models.Preview, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, domain.ErrEmptyPrompt
	}

	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Debug("requesting preview", "endpoint", c.endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponse+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(respBody)) > c.maxResponse {
		return nil, fmt.Errorf("generation service response exceeds %d bytes", c.maxResponse)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(respBody))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody] + "..."
		}
		return nil, fmt.Errorf("generation service returned %s: %s", resp.Status, snippet)
	}

	var preview models.Preview
	if err := json.Unmarshal(respBody, &preview); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if preview.PreviewURL == "" {
		return nil, fmt.Errorf("generation service response has no preview_url")
	}
	preview.Prompt = prompt

	c.log.Debug("preview received", "data_url", preview.IsDataURL(), "metadata_bytes", len(preview.Metadata))
	return &preview, nil
}

// Ensure the adapter implements the interface
var _ usecase.PreviewGenerator = (*Client)(nil)
