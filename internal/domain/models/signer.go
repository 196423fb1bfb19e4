package models

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// SignerSource identifies who holds the key for a signer
type SignerSource string

const (
	// SignerSourceKey is a private key held locally from configuration
	SignerSourceKey SignerSource = "key"
	// SignerSourceNode is an account unlocked on the RPC node (eth_accounts)
	SignerSourceNode SignerSource = "node"
)

// Signer is the account that authorizes transactions for one run. It is
// never persisted.
type Signer struct {
	Name       string            `json:"name,omitempty"`
	Address    common.Address    `json:"address"`
	Source     SignerSource      `json:"source"`
	PrivateKey *ecdsa.PrivateKey `json:"-"`
}

// CanSignLocally reports whether transactions can be signed without the node
func (s *Signer) CanSignLocally() bool {
	return s.Source == SignerSourceKey && s.PrivateKey != nil
}

// DisplayName returns the configured name, falling back to the address
func (s *Signer) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Address.Hex()
}
