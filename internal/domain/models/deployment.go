package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
)

// DeploymentRequest is a factory together with its constructor arguments.
// It is created per run and consumed once.
type DeploymentRequest struct {
	Factory         *ContractFactory
	ConstructorArgs []any
}

// DeploymentStatus is the lifecycle state of a deployed contract handle
type DeploymentStatus string

const (
	DeploymentPending   DeploymentStatus = "pending"
	DeploymentConfirmed DeploymentStatus = "confirmed"
)

// DeployedContract is a live reference to a contract creation transaction.
// It starts pending with only a transaction hash and becomes confirmed once
// the chain includes the transaction and the address is known.
type DeployedContract struct {
	Description *ContractDescription
	Deployer    common.Address
	TxHash      common.Hash
	Nonce       uint64

	status      DeploymentStatus
	address     common.Address
	blockNumber uint64
	gasUsed     uint64
}

// NewPendingDeployment returns a handle for a broadcast but unconfirmed creation transaction
func NewPendingDeployment(description *ContractDescription, deployer common.Address, txHash common.Hash, nonce uint64) *DeployedContract {
	return &DeployedContract{
		Description: description,
		Deployer:    deployer,
		TxHash:      txHash,
		Nonce:       nonce,
		status:      DeploymentPending,
	}
}

// Status returns the handle state
func (d *DeployedContract) Status() DeploymentStatus {
	return d.status
}

// IsConfirmed reports whether the handle has an address
func (d *DeployedContract) IsConfirmed() bool {
	return d.status == DeploymentConfirmed
}

// Confirm records inclusion. A handle confirms exactly once.
func (d *DeployedContract) Confirm(address common.Address, blockNumber, gasUsed uint64) error {
	if d.status == DeploymentConfirmed {
		return fmt.Errorf("deployment %s already confirmed at %s", d.TxHash.Hex(), d.address.Hex())
	}
	if address == (common.Address{}) {
		return fmt.Errorf("deployment %s confirmed with zero address", d.TxHash.Hex())
	}
	d.address = address
	d.blockNumber = blockNumber
	d.gasUsed = gasUsed
	d.status = DeploymentConfirmed
	return nil
}

// Address returns the deployed address, or ErrHandleNotConfirmed while pending
func (d *DeployedContract) Address() (common.Address, error) {
	if d.status != DeploymentConfirmed {
		return common.Address{}, domain.ErrHandleNotConfirmed
	}
	return d.address, nil
}

// BlockNumber returns the inclusion block; zero while pending
func (d *DeployedContract) BlockNumber() uint64 {
	return d.blockNumber
}

// GasUsed returns gas consumed by the creation transaction; zero while pending
func (d *DeployedContract) GasUsed() uint64 {
	return d.gasUsed
}
