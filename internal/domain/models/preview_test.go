package models

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview_DecodeImage(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantType  string
		wantData  string
		wantError string
	}{
		{name: "base64", url: "data:image/png;base64,aGVsbG8=", wantType: "image/png", wantData: "hello"},
		{name: "percent encoded", url: "data:image/svg+xml,%3Csvg%2F%3E", wantType: "image/svg+xml", wantData: "<svg/>"},
		{name: "no media type", url: "data:,plain", wantType: "text/plain", wantData: "plain"},
		{name: "hosted", url: "https://cdn.example/a.png", wantError: "not a data URL"},
		{name: "missing payload", url: "data:image/png;base64", wantError: "missing payload"},
		{name: "bad base64", url: "data:image/png;base64,!!!", wantError: "base64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Preview{PreviewURL: tt.url}
			mediaType, data, err := p.DecodeImage()
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, mediaType)
			assert.Equal(t, tt.wantData, string(data))
		})
	}
}

func TestPreview_MetadataString(t *testing.T) {
	assert.Equal(t, "{}", (&Preview{}).MetadataString())
	assert.Equal(t, "{}", (&Preview{Metadata: []byte("null")}).MetadataString())
	assert.Equal(t, "{\n  \"seed\": 42\n}", (&Preview{Metadata: []byte(`{"seed":42}`)}).MetadataString())
	assert.Equal(t, "not json", (&Preview{Metadata: []byte("not json")}).MetadataString())

	// Keys keep service order and large integers are not rounded through float64
	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": 12345678901234567890\n}",
		(&Preview{Metadata: []byte(`{"z":1,"a":12345678901234567890}`)}).MetadataString())
}

func TestTxExplorerLink(t *testing.T) {
	hash := common.HexToHash("0x01")
	assert.Empty(t, TxExplorerLink("", hash))
	assert.Equal(t, "https://sepolia.etherscan.io/tx/"+hash.Hex(), TxExplorerLink("https://sepolia.etherscan.io/", hash))
}

func TestSigner_DisplayName(t *testing.T) {
	s := &Signer{Address: common.HexToAddress("0x01")}
	assert.Equal(t, s.Address.Hex(), s.DisplayName())
	assert.False(t, s.CanSignLocally())

	s.Name = "deployer"
	assert.Equal(t, "deployer", s.DisplayName())
}
