package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BuildArtifact is a compiled contract as written by Foundry (out/) or Hardhat (artifacts/).
// Foundry nests the creation bytecode under bytecode.object, Hardhat stores it as a string.
type BuildArtifact struct {
	Format       string           `json:"_format,omitempty"`
	ContractName string           `json:"contractName,omitempty"`
	SourceName   string           `json:"sourceName,omitempty"`
	ABI          json.RawMessage  `json:"abi"`
	Bytecode     json.RawMessage  `json:"bytecode"`
	Metadata     ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// bytecodeObject is the Foundry bytecode layout
type bytecodeObject struct {
	Object string `json:"object"`
}

// CreationBytecode returns the hex-encoded creation bytecode in either layout
func (a *BuildArtifact) CreationBytecode() string {
	if len(a.Bytecode) == 0 {
		return ""
	}
	var hardhat string
	if err := json.Unmarshal(a.Bytecode, &hardhat); err == nil {
		return hardhat
	}
	var foundry bytecodeObject
	if err := json.Unmarshal(a.Bytecode, &foundry); err == nil {
		return foundry.Object
	}
	return ""
}

// Target returns the source path and contract name the artifact was compiled from
func (a *BuildArtifact) Target() (source, name string) {
	if a.ContractName != "" {
		return a.SourceName, a.ContractName
	}
	for s, n := range a.Metadata.Settings.CompilationTarget {
		return s, n
	}
	return "", ""
}

// ContractDescription is the immutable compiled form of a contract: creation
// bytecode plus its interface, both as parsed ABI and as the raw JSON found
// in the build output.
type ContractDescription struct {
	Name         string          `json:"name"`
	SourcePath   string          `json:"sourcePath,omitempty"`
	ArtifactPath string          `json:"artifactPath"`
	Compiler     string          `json:"compiler,omitempty"`
	Bytecode     []byte          `json:"-"`
	ABI          abi.ABI         `json:"-"`
	RawABI       json.RawMessage `json:"abi"`
}

// NewContractDescription validates a build artifact and turns it into a description.
// Artifacts without creation bytecode (interfaces, abstract contracts) are rejected.
func NewContractDescription(artifactPath string, artifact *BuildArtifact) (*ContractDescription, error) {
	source, name := artifact.Target()
	if name == "" {
		return nil, fmt.Errorf("artifact %s has no contract name", artifactPath)
	}

	code := artifact.CreationBytecode()
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("artifact %s for %s has no creation bytecode", artifactPath, name)
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("artifact %s has malformed bytecode: %w", artifactPath, err)
	}

	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("artifact %s has malformed abi: %w", artifactPath, err)
	}

	return &ContractDescription{
		Name:         name,
		SourcePath:   source,
		ArtifactPath: artifactPath,
		Compiler:     artifact.Metadata.Compiler.Version,
		Bytecode:     bytecode,
		ABI:          parsed,
		RawABI:       artifact.ABI,
	}, nil
}

// ContractFactory is a contract description bound to the signer that will deploy it.
type ContractFactory struct {
	Description *ContractDescription
	Signer      *Signer
}

// NewContractFactory binds description to signer
func NewContractFactory(description *ContractDescription, signer *Signer) (*ContractFactory, error) {
	if description == nil {
		return nil, fmt.Errorf("contract description is required")
	}
	if signer == nil {
		return nil, fmt.Errorf("signer is required to bind %s", description.Name)
	}
	return &ContractFactory{Description: description, Signer: signer}, nil
}

// PackConstructor ABI-encodes constructor arguments (without bytecode)
func (f *ContractFactory) PackConstructor(args ...any) ([]byte, error) {
	packed, err := f.Description.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments for %s: %w", f.Description.Name, err)
	}
	return packed, nil
}

// CreationData returns the full init code: bytecode followed by encoded constructor arguments
func (f *ContractFactory) CreationData(args ...any) ([]byte, error) {
	packed, err := f.PackConstructor(args...)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 0, len(f.Description.Bytecode)+len(packed))
	data = append(data, f.Description.Bytecode...)
	return append(data, packed...), nil
}
