package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
)

// ContractArtifact is the address + interface record published for other
// processes. Its JSON shape is consumed by the frontend and the minting
// backend and must stay {"address": "...", "abi": [...]}.
type ContractArtifact struct {
	Address string          `json:"address"`
	ABI     json.RawMessage `json:"abi"`
}

// SerializeArtifact builds the artifact for a confirmed deployment. The ABI
// is carried through verbatim from the build output.
func SerializeArtifact(handle *DeployedContract) (*ContractArtifact, error) {
	if handle == nil {
		return nil, fmt.Errorf("deployment handle is nil")
	}
	address, err := handle.Address()
	if err != nil {
		return nil, err
	}
	if handle.Description == nil || len(handle.Description.RawABI) == 0 {
		return nil, fmt.Errorf("deployment %s has no interface description", handle.TxHash.Hex())
	}
	return NewContractArtifact(address, handle.Description.RawABI)
}

// NewContractArtifact validates rawABI and pairs it with address
func NewContractArtifact(address common.Address, rawABI json.RawMessage) (*ContractArtifact, error) {
	if address == (common.Address{}) {
		return nil, fmt.Errorf("%w: zero address", domain.ErrInvalidAddress)
	}
	if !json.Valid(rawABI) {
		return nil, fmt.Errorf("interface description is not valid JSON")
	}
	abiCopy := make(json.RawMessage, len(rawABI))
	copy(abiCopy, rawABI)
	return &ContractArtifact{
		Address: address.Hex(),
		ABI:     abiCopy,
	}, nil
}

// MarshalIndented renders the artifact with 2-space indentation
func (a *ContractArtifact) MarshalIndented() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// ParsedABI parses the artifact interface
func (a *ContractArtifact) ParsedABI() (abi.ABI, error) {
	return abi.JSON(bytes.NewReader(a.ABI))
}

// ContractAddress returns the artifact address as a typed address
func (a *ContractArtifact) ContractAddress() (common.Address, error) {
	if !common.IsHexAddress(a.Address) {
		return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, a.Address)
	}
	return common.HexToAddress(a.Address), nil
}

// ParseContractArtifact decodes and validates a published artifact file
func ParseContractArtifact(data []byte) (*ContractArtifact, error) {
	var artifact ContractArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact: %w", err)
	}
	if _, err := artifact.ContractAddress(); err != nil {
		return nil, err
	}
	if _, err := artifact.ParsedABI(); err != nil {
		return nil, fmt.Errorf("artifact abi is invalid: %w", err)
	}
	return &artifact, nil
}
