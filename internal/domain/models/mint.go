package models

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// MintStatus is the outcome of a mint transaction
type MintStatus string

const (
	MintStatusSuccess MintStatus = "success"
	MintStatusFailed  MintStatus = "failed"
)

// MintRequest mints a token through a published contract artifact
type MintRequest struct {
	Artifact  *ContractArtifact
	Signer    *Signer
	Recipient common.Address
	TokenURI  string
}

// MintResult reports a mined mint transaction
type MintResult struct {
	Status      MintStatus     `json:"status"`
	Contract    common.Address `json:"contract"`
	Recipient   common.Address `json:"recipient"`
	TokenURI    string         `json:"tokenUri"`
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`
	GasUsed     uint64         `json:"gasUsed"`
	// ExplorerLink is empty when the network has no known explorer
	ExplorerLink string `json:"explorerLink,omitempty"`
}

// TxExplorerLink joins an explorer base URL and a transaction hash
func TxExplorerLink(explorerURL string, txHash common.Hash) string {
	if explorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(explorerURL, "/"), txHash.Hex())
}
