package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Preview is the generation service response for a prompt
type Preview struct {
	Prompt     string          `json:"-"`
	PreviewURL string          `json:"preview_url"`
	Metadata   json.RawMessage `json:"metadata"`
}

// IsDataURL reports whether the preview is embedded rather than hosted
func (p *Preview) IsDataURL() bool {
	return strings.HasPrefix(p.PreviewURL, "data:")
}

// MetadataString returns the metadata pretty-printed, or "{}" when absent
func (p *Preview) MetadataString() string {
	if len(p.Metadata) == 0 || string(p.Metadata) == "null" {
		return "{}"
	}
	// Indent the raw bytes so key order and number precision survive
	var out bytes.Buffer
	if err := json.Indent(&out, p.Metadata, "", "  "); err != nil {
		return string(p.Metadata)
	}
	return out.String()
}

// DecodeImage decodes a data: preview URL into its media type and bytes
func (p *Preview) DecodeImage() (mediaType string, data []byte, err error) {
	if !p.IsDataURL() {
		return "", nil, fmt.Errorf("preview is not a data URL: %s", p.PreviewURL)
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(p.PreviewURL, "data:"), ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: missing payload")
	}

	mediaType = header
	isBase64 := false
	if before, found := strings.CutSuffix(header, ";base64"); found {
		mediaType = before
		isBase64 = true
	}
	if mediaType == "" {
		mediaType = "text/plain"
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
		}
		return mediaType, data, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to unescape payload: %w", err)
	}
	return mediaType, []byte(unescaped), nil
}
